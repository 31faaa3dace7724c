package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/internal/repository"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	ListByClass(ctx context.Context, classID int64) ([]models.Student, error)
	ListNotInClass(ctx context.Context, classID int64) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// StudentRequest captures the editable student fields.
type StudentRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	StudentID string `json:"student_id" validate:"required,max=50"`
	PlanType  string `json:"plan_type" validate:"required,oneof=504 IEP"`
}

// StudentService manages students.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns all students ordered by last then first name.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list students")
	}
	return students, nil
}

// Get returns a student or nil when missing.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, internalError(err, "failed to load student")
	}
	return student, nil
}

// Create registers a student. External student ids are unique.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	student, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, s.writeError(err, "failed to create student")
	}
	s.logger.Info("student created", zap.Int64("student_id", student.ID), zap.String("plan_type", string(student.PlanType)))
	return student, nil
}

// Update rewrites a student. It returns nil when the student does not exist.
func (s *StudentService) Update(ctx context.Context, id int64, req StudentRequest) (*models.Student, error) {
	student, err := s.build(req)
	if err != nil {
		return nil, err
	}
	student.ID = id
	found, err := s.repo.Update(ctx, student)
	if err != nil {
		return nil, s.writeError(err, "failed to update student")
	}
	if !found {
		return nil, nil
	}
	return student, nil
}

// Delete removes a student, cascading to accommodations, enrollments and logs.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}

func (s *StudentService) build(req StudentRequest) (*models.Student, error) {
	trimAll(&req.FirstName, &req.LastName, &req.StudentID, &req.PlanType)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	return &models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		StudentID: req.StudentID,
		PlanType:  models.PlanType(req.PlanType),
	}, nil
}

func (s *StudentService) writeError(err error, message string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return appErrors.Clone(appErrors.ErrConflict, "student id already exists")
	}
	return internalError(err, message)
}
