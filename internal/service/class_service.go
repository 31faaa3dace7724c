package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

type classRepository interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ClassRequest captures the editable class fields.
type ClassRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Subject string `json:"subject" validate:"max=200"`
	Period  string `json:"period" validate:"max=50"`
	Year    string `json:"year" validate:"max=20"`
}

// ClassService coordinates class operations.
type ClassService struct {
	repo          classRepository
	students      studentRepository
	accommodation accommodationRepository
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, students studentRepository, accommodations accommodationRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, students: students, accommodation: accommodations, validator: validate, logger: logger}
}

// List returns every class ordered by period then name.
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list classes")
	}
	return classes, nil
}

// Get returns the class or nil when it does not exist.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, internalError(err, "failed to load class")
	}
	return class, nil
}

// Create adds a new class.
func (s *ClassService) Create(ctx context.Context, req ClassRequest) (*models.Class, error) {
	trimAll(&req.Name, &req.Subject, &req.Period, &req.Year)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}

	class := &models.Class{Name: req.Name, Subject: req.Subject, Period: req.Period, Year: req.Year}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, internalError(err, "failed to create class")
	}
	s.logger.Info("class created", zap.Int64("class_id", class.ID), zap.String("name", class.Name))
	return class, nil
}

// Update rewrites a class. It returns nil when the class does not exist.
func (s *ClassService) Update(ctx context.Context, id int64, req ClassRequest) (*models.Class, error) {
	trimAll(&req.Name, &req.Subject, &req.Period, &req.Year)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}

	class := &models.Class{ID: id, Name: req.Name, Subject: req.Subject, Period: req.Period, Year: req.Year}
	found, err := s.repo.Update(ctx, class)
	if err != nil {
		return nil, internalError(err, "failed to update class")
	}
	if !found {
		return nil, nil
	}
	return class, nil
}

// Delete removes a class with its enrollments and service logs. Missing ids are ignored.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete class")
	}
	s.logger.Info("class deleted", zap.Int64("class_id", id))
	return nil
}

// Summary returns the class roster with each student's accommodations, or nil
// when the class does not exist.
func (s *ClassService) Summary(ctx context.Context, id int64) (*models.ClassSummary, error) {
	class, err := s.Get(ctx, id)
	if err != nil || class == nil {
		return nil, err
	}

	students, err := s.students.ListByClass(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to load class roster")
	}
	owned, err := s.accommodation.ListByStudents(ctx, studentIDs(students))
	if err != nil {
		return nil, internalError(err, "failed to load accommodations")
	}

	summary := &models.ClassSummary{Class: *class, Students: make([]models.StudentWithAccommodations, 0, len(students))}
	for _, st := range students {
		accs := owned[st.ID]
		if accs == nil {
			accs = []models.Accommodation{}
		}
		summary.Students = append(summary.Students, models.StudentWithAccommodations{Student: st, Accommodations: accs})
	}
	return summary, nil
}

func studentIDs(students []models.Student) []int64 {
	ids := make([]int64, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	return ids
}

