package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/internal/service"
	"github.com/noah-isme/accommodation-tracker/pkg/response"
)

type enrollmentService interface {
	ListStudents(ctx context.Context, classID int64) ([]models.Student, error)
	ListAvailable(ctx context.Context, classID int64) ([]models.Student, error)
	Enroll(ctx context.Context, classID, studentID int64) (*models.Enrollment, error)
	Unenroll(ctx context.Context, classID, studentID int64) error
}

// EnrollmentHandler manages class rosters.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler builds a new handler.
func NewEnrollmentHandler(service enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// List godoc
// @Summary List students in a class
// @Description With available=true, lists students not yet enrolled instead.
// @Tags Enrollments
// @Produce json
// @Param id path int true "Class ID"
// @Param available query bool false "List students not in the class"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var (
		students []models.Student
		err      error
	)
	if c.Query("available") == "true" {
		students, err = h.service.ListAvailable(c.Request.Context(), classID)
	} else {
		students, err = h.service.ListStudents(c.Request.Context(), classID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Enroll godoc
// @Summary Enroll a student in a class
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body service.EnrollRequest true "Student to enroll"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /classes/{id}/students [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req service.EnrollRequest
	if !bindJSON(c, &req, "invalid enrollment payload") {
		return
	}
	enrollment, err := h.service.Enroll(c.Request.Context(), classID, req.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Unenroll godoc
// @Summary Remove a student from a class
// @Tags Enrollments
// @Param id path int true "Class ID"
// @Param studentId path int true "Student ID"
// @Success 204
// @Router /classes/{id}/students/{studentId} [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := idParam(c, "studentId")
	if !ok {
		return
	}
	if err := h.service.Unenroll(c.Request.Context(), classID, studentID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
