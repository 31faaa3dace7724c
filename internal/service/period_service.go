package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
)

type periodRepository interface {
	List(ctx context.Context, filter models.PeriodFilter) ([]models.SixWeekPeriod, error)
	FindByID(ctx context.Context, id int64) (*models.SixWeekPeriod, error)
	Create(ctx context.Context, period *models.SixWeekPeriod) error
	Update(ctx context.Context, period *models.SixWeekPeriod) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// PeriodRequest captures the editable six-week period fields.
type PeriodRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Year      string `json:"year" validate:"required,max=20"`
}

// PeriodService manages six-week grading periods.
type PeriodService struct {
	repo      periodRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPeriodService constructs PeriodService.
func NewPeriodService(repo periodRepository, validate *validator.Validate, logger *zap.Logger) *PeriodService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodService{repo: repo, validator: validate, logger: logger}
}

// List returns periods. With a year filter they are in start order, otherwise newest first.
func (s *PeriodService) List(ctx context.Context, filter models.PeriodFilter) ([]models.SixWeekPeriod, error) {
	periods, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list periods")
	}
	return periods, nil
}

// Get returns a period or nil when missing.
func (s *PeriodService) Get(ctx context.Context, id int64) (*models.SixWeekPeriod, error) {
	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, internalError(err, "failed to load period")
	}
	return period, nil
}

// Create stores a period after checking its bounds.
func (s *PeriodService) Create(ctx context.Context, req PeriodRequest) (*models.SixWeekPeriod, error) {
	period, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, period); err != nil {
		return nil, internalError(err, "failed to create period")
	}
	s.logger.Info("period created", zap.Int64("period_id", period.ID), zap.String("name", period.Name))
	return period, nil
}

// Update rewrites a period. It returns nil when the period does not exist.
func (s *PeriodService) Update(ctx context.Context, id int64, req PeriodRequest) (*models.SixWeekPeriod, error) {
	period, err := s.build(req)
	if err != nil {
		return nil, err
	}
	period.ID = id
	found, err := s.repo.Update(ctx, period)
	if err != nil {
		return nil, internalError(err, "failed to update period")
	}
	if !found {
		return nil, nil
	}
	return period, nil
}

// Delete removes a period. Service logs are keyed by date and are unaffected.
func (s *PeriodService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete period")
	}
	return nil
}

func (s *PeriodService) build(req PeriodRequest) (*models.SixWeekPeriod, error) {
	trimAll(&req.Name, &req.StartDate, &req.EndDate, &req.Year)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid period payload")
	}
	// YYYY-MM-DD compares correctly as text.
	if req.StartDate > req.EndDate {
		return nil, appErrors.ErrInvalidPeriodRange
	}
	return &models.SixWeekPeriod{Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate, Year: req.Year}, nil
}
