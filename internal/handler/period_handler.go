package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/internal/service"
	"github.com/noah-isme/accommodation-tracker/pkg/response"
)

type periodService interface {
	List(ctx context.Context, filter models.PeriodFilter) ([]models.SixWeekPeriod, error)
	Get(ctx context.Context, id int64) (*models.SixWeekPeriod, error)
	Create(ctx context.Context, req service.PeriodRequest) (*models.SixWeekPeriod, error)
	Update(ctx context.Context, id int64, req service.PeriodRequest) (*models.SixWeekPeriod, error)
	Delete(ctx context.Context, id int64) error
}

// PeriodHandler exposes six-week period endpoints.
type PeriodHandler struct {
	service periodService
}

// NewPeriodHandler builds a new handler.
func NewPeriodHandler(service periodService) *PeriodHandler {
	return &PeriodHandler{service: service}
}

// List godoc
// @Summary List six-week periods
// @Tags Periods
// @Produce json
// @Param year query string false "School year filter"
// @Success 200 {object} response.Envelope
// @Router /periods [get]
func (h *PeriodHandler) List(c *gin.Context) {
	periods, err := h.service.List(c.Request.Context(), models.PeriodFilter{Year: c.Query("year")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods)
}

// Get godoc
// @Summary Get a six-week period
// @Tags Periods
// @Produce json
// @Param id path int true "Period ID"
// @Success 200 {object} response.Envelope
// @Router /periods/{id} [get]
func (h *PeriodHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	period, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, period)
}

// Create godoc
// @Summary Create a six-week period
// @Tags Periods
// @Accept json
// @Produce json
// @Param payload body service.PeriodRequest true "Period payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /periods [post]
func (h *PeriodHandler) Create(c *gin.Context) {
	var req service.PeriodRequest
	if !bindJSON(c, &req, "invalid period payload") {
		return
	}
	period, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, period)
}

// Update godoc
// @Summary Update a six-week period
// @Tags Periods
// @Accept json
// @Produce json
// @Param id path int true "Period ID"
// @Param payload body service.PeriodRequest true "Period payload"
// @Success 200 {object} response.Envelope
// @Router /periods/{id} [put]
func (h *PeriodHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req service.PeriodRequest
	if !bindJSON(c, &req, "invalid period payload") {
		return
	}
	period, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, period)
}

// Delete godoc
// @Summary Delete a six-week period
// @Tags Periods
// @Param id path int true "Period ID"
// @Success 204
// @Router /periods/{id} [delete]
func (h *PeriodHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
