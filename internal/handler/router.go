package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the tracker serves.
type Handlers struct {
	Classes        *ClassHandler
	Students       *StudentHandler
	Accommodations *AccommodationHandler
	Enrollments    *EnrollmentHandler
	Periods        *PeriodHandler
	Tracking       *TrackingHandler
	Exports        *ExportHandler
}

// Register mounts the API routes on r.
func Register(r gin.IRouter, h Handlers) {
	classes := r.Group("/classes")
	classes.GET("", h.Classes.List)
	classes.POST("", h.Classes.Create)
	classes.GET("/:id", h.Classes.Get)
	classes.PUT("/:id", h.Classes.Update)
	classes.DELETE("/:id", h.Classes.Delete)
	classes.GET("/:id/summary", h.Classes.Summary)

	classes.GET("/:id/students", h.Enrollments.List)
	classes.POST("/:id/students", h.Enrollments.Enroll)
	classes.DELETE("/:id/students/:studentId", h.Enrollments.Unenroll)

	classes.GET("/:id/tracking", h.Tracking.Tracking)
	classes.GET("/:id/week", h.Tracking.Week)
	classes.POST("/:id/service-logs/toggle", h.Tracking.Toggle)

	classes.GET("/:id/export/csv", h.Exports.TrackingCSV)
	classes.GET("/:id/export/roster.csv", h.Exports.RosterCSV)
	classes.POST("/:id/export/pdf", h.Exports.PeriodPDFs)

	students := r.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/accommodations", h.Accommodations.ListByStudent)
	students.POST("/:id/accommodations", h.Accommodations.Create)

	accommodations := r.Group("/accommodations")
	accommodations.PUT("/:id", h.Accommodations.Update)
	accommodations.DELETE("/:id", h.Accommodations.Delete)

	periods := r.Group("/periods")
	periods.GET("", h.Periods.List)
	periods.POST("", h.Periods.Create)
	periods.GET("/:id", h.Periods.Get)
	periods.PUT("/:id", h.Periods.Update)
	periods.DELETE("/:id", h.Periods.Delete)
}
