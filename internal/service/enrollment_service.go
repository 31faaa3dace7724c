package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/internal/repository"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
)

type enrollmentRepository interface {
	Exists(ctx context.Context, classID, studentID int64) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, classID, studentID int64) error
}

// EnrollRequest names the student to place in a class.
type EnrollRequest struct {
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
}

// EnrollmentService manages class rosters.
type EnrollmentService struct {
	repo     enrollmentRepository
	classes  classRepository
	students studentRepository
	logger   *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, classes classRepository, students studentRepository, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, classes: classes, students: students, logger: logger}
}

// ListStudents returns the students enrolled in a class, ordered by last then first name.
func (s *EnrollmentService) ListStudents(ctx context.Context, classID int64) ([]models.Student, error) {
	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to list class students")
	}
	return students, nil
}

// ListAvailable returns the students not yet enrolled in a class.
func (s *EnrollmentService) ListAvailable(ctx context.Context, classID int64) ([]models.Student, error) {
	students, err := s.students.ListNotInClass(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to list available students")
	}
	return students, nil
}

// Enroll places a student in a class. Enrolling the same pair twice fails with
// ErrAlreadyEnrolled and leaves the roster unchanged.
func (s *EnrollmentService) Enroll(ctx context.Context, classID, studentID int64) (*models.Enrollment, error) {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, internalError(err, "failed to load class")
	}
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, internalError(err, "failed to load student")
	}

	exists, err := s.repo.Exists(ctx, classID, studentID)
	if err != nil {
		return nil, internalError(err, "failed to check enrollment")
	}
	if exists {
		return nil, appErrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{ClassID: classID, StudentID: studentID}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.ErrAlreadyEnrolled
		}
		return nil, internalError(err, "failed to enroll student")
	}
	s.logger.Info("student enrolled", zap.Int64("class_id", classID), zap.Int64("student_id", studentID))
	return enrollment, nil
}

// Unenroll removes a student from a class. Recorded service logs are kept.
func (s *EnrollmentService) Unenroll(ctx context.Context, classID, studentID int64) error {
	if err := s.repo.Delete(ctx, classID, studentID); err != nil {
		return internalError(err, "failed to unenroll student")
	}
	s.logger.Info("student unenrolled", zap.Int64("class_id", classID), zap.Int64("student_id", studentID))
	return nil
}
