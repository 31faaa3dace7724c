package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
)

type accommodationRepository interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Accommodation, error)
	ListByStudents(ctx context.Context, studentIDs []int64) (map[int64][]models.Accommodation, error)
	FindByID(ctx context.Context, id int64) (*models.Accommodation, error)
	Create(ctx context.Context, acc *models.Accommodation) error
	Update(ctx context.Context, acc *models.Accommodation) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// AccommodationRequest captures the editable accommodation fields.
type AccommodationRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	Category    string `json:"category" validate:"required,max=100"`
}

// AccommodationService manages the accommodations owned by students.
type AccommodationService struct {
	repo      accommodationRepository
	students  studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAccommodationService constructs AccommodationService.
func NewAccommodationService(repo accommodationRepository, students studentRepository, validate *validator.Validate, logger *zap.Logger) *AccommodationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccommodationService{repo: repo, students: students, validator: validate, logger: logger}
}

// ListByStudent returns a student's accommodations ordered by category then description.
func (s *AccommodationService) ListByStudent(ctx context.Context, studentID int64) ([]models.Accommodation, error) {
	accs, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, internalError(err, "failed to list accommodations")
	}
	return accs, nil
}

// Create adds an accommodation to an existing student.
func (s *AccommodationService) Create(ctx context.Context, studentID int64, req AccommodationRequest) (*models.Accommodation, error) {
	trimAll(&req.Description, &req.Category)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid accommodation payload")
	}
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, internalError(err, "failed to load student")
	}

	acc := &models.Accommodation{StudentID: studentID, Description: req.Description, Category: req.Category}
	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, internalError(err, "failed to create accommodation")
	}
	s.logger.Info("accommodation created", zap.Int64("accommodation_id", acc.ID), zap.Int64("student_id", studentID))
	return acc, nil
}

// Update edits description and category. It returns nil when the accommodation does not exist.
func (s *AccommodationService) Update(ctx context.Context, id int64, req AccommodationRequest) (*models.Accommodation, error) {
	trimAll(&req.Description, &req.Category)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid accommodation payload")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, internalError(err, "failed to load accommodation")
	}
	existing.Description = req.Description
	existing.Category = req.Category

	found, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, internalError(err, "failed to update accommodation")
	}
	if !found {
		return nil, nil
	}
	return existing, nil
}

// Delete removes an accommodation and its service logs.
func (s *AccommodationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete accommodation")
	}
	s.logger.Info("accommodation deleted", zap.Int64("accommodation_id", id))
	return nil
}
