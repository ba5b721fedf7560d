package gym

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

var gymRows = []string{
	"id", "name", "address", "description", "capacity",
	"weekday_open", "weekday_close", "weekend_open", "weekend_close",
	"amenities", "created_at", "updated_at",
}

func TestCreateGym(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	req := CreateGymRequest{
		Name: "Downtown", Address: "1 Main St", Description: "Flagship",
		Capacity: 20,
		WeekdayOpen: "06:00", WeekdayClose: "22:00",
		WeekendOpen: "08:00", WeekendClose: "20:00",
		Amenities: []string{"pool", "sauna"},
	}

	mock.ExpectQuery(`INSERT INTO gyms`).
		WithArgs("Downtown", "1 Main St", "Flagship", 20,
			"06:00", "22:00", "08:00", "20:00", pq.StringArray{"pool", "sauna"}).
		WillReturnRows(sqlmock.NewRows(gymRows).
			AddRow(1, "Downtown", "1 Main St", "Flagship", 20,
				"06:00", "22:00", "08:00", "20:00",
				pq.StringArray{"pool", "sauna"}, now, now))

	g, err := repo.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, g.ID)
	assert.Equal(t, pq.StringArray{"pool", "sauna"}, g.Amenities)
}

func TestGetGymByIDRow(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM gyms WHERE id = \$1`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(gymRows).
				AddRow(1, "Downtown", "1 Main St", "", 20,
					"06:00", "22:00", "08:00", "20:00",
					pq.StringArray{}, now, now))

		g, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Downtown", g.Name)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM gyms WHERE id = \$1`).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(gymRows))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetAllOrdersByName(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM gyms ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows(gymRows).
			AddRow(2, "Alpha", "", "", 10, "06:00", "22:00", "08:00", "20:00", pq.StringArray{}, now, now).
			AddRow(1, "Beta", "", "", 10, "06:00", "22:00", "08:00", "20:00", pq.StringArray{}, now, now))

	gyms, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, gyms, 2)
	assert.Equal(t, "Alpha", gyms[0].Name)
}

func TestDeleteGymRow(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM gyms WHERE id = \$1`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 1))
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM gyms WHERE id = \$1`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrNotFound)
	})
}
