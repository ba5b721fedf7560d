package availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brianstm/fithub-orbital25-sub001/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Gym availability for a date
// @Description  Per-hour occupancy, busy level and peak flags for one gym and date.
// @Tags         gyms
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path  int    true "Gym ID"
// @Param        date  query string true "Date in YYYY-MM-DD format"
// @Success      200 {object} availability.AvailabilityResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date query param is required"})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.GetAvailability(ctx, gymID, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrGymNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute availability"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Gym peak hours
// @Description  Weekly peak/off-peak classification with scheduling recommendations. Empty analysis when history is too thin.
// @Tags         gyms
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} availability.PeakHoursResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/peak-hours [get]
func (h *Handler) GetPeakHours(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.GetPeakHours(ctx, gymID)
	if err != nil {
		switch {
		case errors.Is(err, ErrGymNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute peak hours"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      List bookable slots
// @Description  30-minute picker slots with per-slot availability for one gym and date.
// @Tags         gyms
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path  int    true "Gym ID"
// @Param        date  query string true "Date in YYYY-MM-DD format"
// @Success      200 {object} availability.SlotsResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/slots [get]
func (h *Handler) GetSlots(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date query param is required"})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.GetSlots(ctx, gymID, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrGymNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch slots"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
