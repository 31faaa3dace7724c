package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

// EnrollmentRepository handles persistence of class enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Exists checks whether the student is already enrolled in the class.
func (r *EnrollmentRepository) Exists(ctx context.Context, classID, studentID int64) (bool, error) {
	query := r.db.Rebind(`SELECT 1 FROM class_students WHERE class_id = ? AND student_id = ? LIMIT 1`)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, classID, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create persists a new enrollment. The unique (class_id, student_id) constraint
// surfaces as ErrDuplicate.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := r.db.Rebind(`INSERT INTO class_students (class_id, student_id) VALUES (?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &enrollment.ID, query, enrollment.ClassID, enrollment.StudentID); err != nil {
		return fmt.Errorf("create enrollment: %w", translate(err))
	}
	return nil
}

// Delete removes the enrollment if present. Service logs are kept.
func (r *EnrollmentRepository) Delete(ctx context.Context, classID, studentID int64) error {
	query := r.db.Rebind(`DELETE FROM class_students WHERE class_id = ? AND student_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, classID, studentID); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}
