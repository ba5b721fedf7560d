package gym

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianstm/fithub-orbital25-sub001/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockService) GetAllGyms(ctx context.Context) ([]Gym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func (m *MockService) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockService) UpdateGym(ctx context.Context, id int, req CreateGymRequest) (*Gym, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockService) DeleteGym(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	api.RegisterValidators()

	h := NewHandler(svc)
	router := gin.New()
	router.POST("/admin/gyms", h.CreateGym)
	router.GET("/gyms", h.ListGyms)
	router.GET("/gyms/:gymID", h.GetGym)
	router.PUT("/admin/gyms/:gymID", h.UpdateGym)
	router.DELETE("/admin/gyms/:gymID", h.DeleteGym)
	return router
}

func TestCreateGymHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockService)
		router := setupRouter(svc)

		svc.On("CreateGym", mock.Anything, mock.AnythingOfType("gym.CreateGymRequest")).
			Return(&Gym{ID: 1, Name: "Downtown"}, nil)

		body := `{
			"name": "Downtown", "address": "1 Main St", "capacity": 20,
			"weekday_open": "06:00", "weekday_close": "22:00",
			"weekend_open": "08:00", "weekend_close": "20:00"
		}`
		req := httptest.NewRequest("POST", "/admin/gyms", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Bad opening hours rejected with field details", func(t *testing.T) {
		svc := new(MockService)
		router := setupRouter(svc)

		body := `{
			"name": "Downtown", "address": "1 Main St", "capacity": 20,
			"weekday_open": "6am", "weekday_close": "22:00",
			"weekend_open": "08:00", "weekend_close": "20:00"
		}`
		req := httptest.NewRequest("POST", "/admin/gyms", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "hhmm", resp.Details[0].Tag)
		svc.AssertNotCalled(t, "CreateGym")
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		svc := new(MockService)
		router := setupRouter(svc)

		req := httptest.NewRequest("POST", "/admin/gyms", bytes.NewBufferString(`{"name": "oops`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetGymHandler(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockService)
		router := setupRouter(svc)

		svc.On("GetGymByID", mock.Anything, 1).Return(&Gym{ID: 1, Name: "Downtown"}, nil)

		req := httptest.NewRequest("GET", "/gyms/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got Gym
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Downtown", got.Name)
	})

	t.Run("Missing", func(t *testing.T) {
		svc := new(MockService)
		router := setupRouter(svc)

		svc.On("GetGymByID", mock.Anything, 99).Return(nil, ErrGymNotFound)

		req := httptest.NewRequest("GET", "/gyms/99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Non-numeric ID", func(t *testing.T) {
		svc := new(MockService)
		router := setupRouter(svc)

		req := httptest.NewRequest("GET", "/gyms/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteGymHandler(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc)

	svc.On("DeleteGym", mock.Anything, 99).Return(ErrGymNotFound)

	req := httptest.NewRequest("DELETE", "/admin/gyms/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
