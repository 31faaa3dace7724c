package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/accommodation-tracker/internal/dto"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
	"github.com/noah-isme/accommodation-tracker/pkg/response"
)

type exportService interface {
	ExportTrackingCSV(ctx context.Context, classID int64, start, end string) (*dto.CSVExportResult, error)
	ExportRosterCSV(ctx context.Context, classID int64) (*dto.CSVExportResult, error)
	ExportPeriodPDFs(ctx context.Context, classID, periodID int64) (*dto.PDFExportResult, error)
}

// ExportHandler generates CSV and PDF exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// TrackingCSV godoc
// @Summary Export tracking data as CSV
// @Description Saves to the exports directory, falling back to the clipboard and then to inline content.
// @Tags Exports
// @Produce json
// @Param id path int true "Class ID"
// @Param start query string true "First date (YYYY-MM-DD)"
// @Param end query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/export/csv [get]
func (h *ExportHandler) TrackingCSV(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	result, err := h.service.ExportTrackingCSV(c.Request.Context(), classID, c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// RosterCSV godoc
// @Summary Export the class roster with accommodations as CSV
// @Tags Exports
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/export/roster.csv [get]
func (h *ExportHandler) RosterCSV(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	result, err := h.service.ExportRosterCSV(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// PeriodPDFs godoc
// @Summary Export one service log PDF per student for a period
// @Tags Exports
// @Produce json
// @Param id path int true "Class ID"
// @Param period_id query int true "Six-week period ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/export/pdf [post]
func (h *ExportHandler) PeriodPDFs(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	periodID, ok := optionalIDQuery(c, "period_id")
	if !ok {
		return
	}
	if periodID == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "period_id is required"))
		return
	}
	result, err := h.service.ExportPeriodPDFs(c.Request.Context(), classID, *periodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
