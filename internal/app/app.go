// Package app wires configuration, storage, services and HTTP handlers into a
// runnable gin engine.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/accommodation-tracker/api/swagger"
	"github.com/noah-isme/accommodation-tracker/internal/handler"
	"github.com/noah-isme/accommodation-tracker/internal/middleware"
	"github.com/noah-isme/accommodation-tracker/internal/repository"
	"github.com/noah-isme/accommodation-tracker/internal/service"
	"github.com/noah-isme/accommodation-tracker/pkg/clipboard"
	"github.com/noah-isme/accommodation-tracker/pkg/config"
	"github.com/noah-isme/accommodation-tracker/pkg/logger"
	corsmiddleware "github.com/noah-isme/accommodation-tracker/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/accommodation-tracker/pkg/middleware/requestid"
	"github.com/noah-isme/accommodation-tracker/pkg/storage"
)

// Options overrides collaborators that differ between the desktop build and tests.
type Options struct {
	Clipboard interface{ WriteAll(text string) error }
}

// NewRouter builds the HTTP engine over an open, migrated database.
func NewRouter(cfg *config.Config, db *sqlx.DB, logr *zap.Logger, opts Options) (*gin.Engine, error) {
	if logr == nil {
		logr = zap.NewNop()
	}

	exportStore, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		return nil, err
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewSystem()
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}
	validate := validator.New()

	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	accommodationRepo := repository.NewAccommodationRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	serviceLogRepo := repository.NewServiceLogRepository(db)

	classSvc := service.NewClassService(classRepo, studentRepo, accommodationRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	accommodationSvc := service.NewAccommodationService(accommodationRepo, studentRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, classRepo, studentRepo, logr)
	periodSvc := service.NewPeriodService(periodRepo, validate, logr)
	trackingSvc := service.NewTrackingService(classRepo, studentRepo, accommodationRepo, periodRepo, serviceLogRepo, metricsSvc, logr)
	exportSvc := service.NewExportService(trackingSvc, classSvc, classRepo, exportStore, clip,
		service.ExportConfig{ClipboardFallback: cfg.Exports.ClipboardFallback, PDFWorkers: cfg.Exports.PDFWorkers}, metricsSvc, logr, nil, nil)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	ops := handler.NewMetricsHandler(metricsSvc, db)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	if metricsSvc != nil {
		r.GET("/metrics", ops.Prometheus)
	}
	if cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r.Group(cfg.APIPrefix), handler.Handlers{
		Classes:        handler.NewClassHandler(classSvc),
		Students:       handler.NewStudentHandler(studentSvc),
		Accommodations: handler.NewAccommodationHandler(accommodationSvc),
		Enrollments:    handler.NewEnrollmentHandler(enrollmentSvc),
		Periods:        handler.NewPeriodHandler(periodSvc),
		Tracking:       handler.NewTrackingHandler(trackingSvc),
		Exports:        handler.NewExportHandler(exportSvc),
	})

	return r, nil
}
