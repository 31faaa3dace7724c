package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/internal/service"
	"github.com/noah-isme/accommodation-tracker/pkg/response"
)

type classService interface {
	List(ctx context.Context) ([]models.Class, error)
	Get(ctx context.Context, id int64) (*models.Class, error)
	Create(ctx context.Context, req service.ClassRequest) (*models.Class, error)
	Update(ctx context.Context, id int64, req service.ClassRequest) (*models.Class, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, id int64) (*models.ClassSummary, error)
}

// ClassHandler exposes class endpoints.
type ClassHandler struct {
	service classService
}

// NewClassHandler builds a new handler.
func NewClassHandler(service classService) *ClassHandler {
	return &ClassHandler{service: service}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Get godoc
// @Summary Get a class
// @Description Returns null data when the class does not exist.
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	class, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Create godoc
// @Summary Create a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.ClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.ClassRequest
	if !bindJSON(c, &req, "invalid class payload") {
		return
	}
	class, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Update godoc
// @Summary Update a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body service.ClassRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req service.ClassRequest
	if !bindJSON(c, &req, "invalid class payload") {
		return
	}
	class, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Delete godoc
// @Summary Delete a class
// @Tags Classes
// @Param id path int true "Class ID"
// @Success 204
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
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

// Summary godoc
// @Summary Class roster with accommodations
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/summary [get]
func (h *ClassHandler) Summary(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
