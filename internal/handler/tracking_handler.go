package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/accommodation-tracker/internal/dto"
	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/pkg/response"
)

type trackingService interface {
	GetTracking(ctx context.Context, classID int64, start, end string) ([]models.StudentTracking, error)
	ToggleService(ctx context.Context, classID, accommodationID int64, date string) (bool, error)
	GetWeek(ctx context.Context, req dto.WeekRequest) (*dto.WeekView, error)
}

// TrackingHandler serves the service-log grid.
type TrackingHandler struct {
	service trackingService
}

// NewTrackingHandler builds a new handler.
func NewTrackingHandler(service trackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Tracking godoc
// @Summary Tracking data for a class and date range
// @Tags Tracking
// @Produce json
// @Param id path int true "Class ID"
// @Param start query string true "First date (YYYY-MM-DD)"
// @Param end query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/tracking [get]
func (h *TrackingHandler) Tracking(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tracking, err := h.service.GetTracking(c.Request.Context(), classID, c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tracking, map[string]interface{}{
		"start": c.Query("start"),
		"end":   c.Query("end"),
	})
}

// Week godoc
// @Summary Week view for a class
// @Description Resolves the Mon-Thu window (current week when week_start is empty), optionally moving one week.
// @Tags Tracking
// @Produce json
// @Param id path int true "Class ID"
// @Param period_id query int false "Six-week period ID"
// @Param week_start query string false "Any date in the week (YYYY-MM-DD)"
// @Param direction query string false "prev or next"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/week [get]
func (h *TrackingHandler) Week(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	periodID, ok := optionalIDQuery(c, "period_id")
	if !ok {
		return
	}
	view, err := h.service.GetWeek(c.Request.Context(), dto.WeekRequest{
		ClassID:   classID,
		PeriodID:  periodID,
		WeekStart: c.Query("week_start"),
		Direction: c.Query("direction"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Toggle godoc
// @Summary Toggle a service mark
// @Description The first toggle records the service as provided; each further toggle flips it.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body dto.ToggleServiceRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/service-logs/toggle [post]
func (h *TrackingHandler) Toggle(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ToggleServiceRequest
	if !bindJSON(c, &req, "invalid toggle payload") {
		return
	}
	provided, err := h.service.ToggleService(c.Request.Context(), classID, req.AccommodationID, req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ToggleServiceResponse{
		ClassID:         classID,
		AccommodationID: req.AccommodationID,
		Date:            req.Date,
		Provided:        provided,
	})
}
