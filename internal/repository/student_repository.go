package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

const studentColumns = `s.id, s.first_name, s.last_name, s.student_id, s.plan_type`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students ordered by last then first name.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s ORDER BY s.last_name, s.first_name, s.id`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListByClass returns students enrolled in the class ordered by last then first name.
func (r *StudentRepository) ListByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	query := r.db.Rebind(`SELECT ` + studentColumns + ` FROM students s
        INNER JOIN class_students cs ON s.id = cs.student_id
        WHERE cs.class_id = ?
        ORDER BY s.last_name, s.first_name, s.id`)
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return students, nil
}

// ListNotInClass returns students that could still be enrolled in the class.
func (r *StudentRepository) ListNotInClass(ctx context.Context, classID int64) ([]models.Student, error) {
	query := r.db.Rebind(`SELECT ` + studentColumns + ` FROM students s
        WHERE NOT EXISTS (SELECT 1 FROM class_students cs WHERE cs.student_id = s.id AND cs.class_id = ?)
        ORDER BY s.last_name, s.first_name, s.id`)
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list available students: %w", err)
	}
	return students, nil
}

// FindByID returns a student by ID or sql.ErrNoRows.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := r.db.Rebind(`SELECT ` + studentColumns + ` FROM students s WHERE s.id = ?`)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a student. A reused external student_id yields ErrDuplicate.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := r.db.Rebind(`INSERT INTO students (first_name, last_name, student_id, plan_type) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &student.ID, query, student.FirstName, student.LastName, student.StudentID, student.PlanType); err != nil {
		return fmt.Errorf("create student: %w", translate(err))
	}
	return nil
}

// Update overwrites a student. It reports whether a row matched.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (bool, error) {
	query := r.db.Rebind(`UPDATE students SET first_name = ?, last_name = ?, student_id = ?, plan_type = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, student.FirstName, student.LastName, student.StudentID, student.PlanType, student.ID)
	if err != nil {
		return false, fmt.Errorf("update student: %w", translate(err))
	}
	return affected(res)
}

// Delete removes a student together with accommodations, enrollments and logs.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM students WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
