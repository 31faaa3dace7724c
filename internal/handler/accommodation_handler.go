package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/internal/service"
	"github.com/noah-isme/accommodation-tracker/pkg/response"
)

type accommodationService interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Accommodation, error)
	Create(ctx context.Context, studentID int64, req service.AccommodationRequest) (*models.Accommodation, error)
	Update(ctx context.Context, id int64, req service.AccommodationRequest) (*models.Accommodation, error)
	Delete(ctx context.Context, id int64) error
}

// AccommodationHandler exposes accommodation endpoints.
type AccommodationHandler struct {
	service accommodationService
}

// NewAccommodationHandler builds a new handler.
func NewAccommodationHandler(service accommodationService) *AccommodationHandler {
	return &AccommodationHandler{service: service}
}

// ListByStudent godoc
// @Summary List a student's accommodations
// @Tags Accommodations
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/accommodations [get]
func (h *AccommodationHandler) ListByStudent(c *gin.Context) {
	studentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	accs, err := h.service.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, accs)
}

// Create godoc
// @Summary Add an accommodation to a student
// @Tags Accommodations
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.AccommodationRequest true "Accommodation payload"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/accommodations [post]
func (h *AccommodationHandler) Create(c *gin.Context) {
	studentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req service.AccommodationRequest
	if !bindJSON(c, &req, "invalid accommodation payload") {
		return
	}
	acc, err := h.service.Create(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, acc)
}

// Update godoc
// @Summary Update an accommodation
// @Tags Accommodations
// @Accept json
// @Produce json
// @Param id path int true "Accommodation ID"
// @Param payload body service.AccommodationRequest true "Accommodation payload"
// @Success 200 {object} response.Envelope
// @Router /accommodations/{id} [put]
func (h *AccommodationHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req service.AccommodationRequest
	if !bindJSON(c, &req, "invalid accommodation payload") {
		return
	}
	acc, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, acc)
}

// Delete godoc
// @Summary Delete an accommodation
// @Tags Accommodations
// @Param id path int true "Accommodation ID"
// @Success 204
// @Router /accommodations/{id} [delete]
func (h *AccommodationHandler) Delete(c *gin.Context) {
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
