package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

// AccommodationRepository manages persistence for accommodations.
type AccommodationRepository struct {
	db *sqlx.DB
}

// NewAccommodationRepository constructs an AccommodationRepository.
func NewAccommodationRepository(db *sqlx.DB) *AccommodationRepository {
	return &AccommodationRepository{db: db}
}

// ListByStudent returns a student's accommodations ordered by category then description.
func (r *AccommodationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Accommodation, error) {
	query := r.db.Rebind(`SELECT id, student_id, description, category FROM accommodations
        WHERE student_id = ? ORDER BY category, description, id`)
	accommodations := []models.Accommodation{}
	if err := r.db.SelectContext(ctx, &accommodations, query, studentID); err != nil {
		return nil, fmt.Errorf("list accommodations: %w", err)
	}
	return accommodations, nil
}

// ListByStudents loads accommodations for many students in one query, grouped by
// student ID and ordered by category then description within each group.
func (r *AccommodationRepository) ListByStudents(ctx context.Context, studentIDs []int64) (map[int64][]models.Accommodation, error) {
	grouped := make(map[int64][]models.Accommodation, len(studentIDs))
	if len(studentIDs) == 0 {
		return grouped, nil
	}
	query, args, err := sqlx.In(`SELECT id, student_id, description, category FROM accommodations
        WHERE student_id IN (?) ORDER BY student_id, category, description, id`, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("build accommodations query: %w", err)
	}
	var rows []models.Accommodation
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list accommodations for students: %w", err)
	}
	for _, acc := range rows {
		grouped[acc.StudentID] = append(grouped[acc.StudentID], acc)
	}
	return grouped, nil
}

// FindByID returns an accommodation by ID or sql.ErrNoRows.
func (r *AccommodationRepository) FindByID(ctx context.Context, id int64) (*models.Accommodation, error) {
	query := r.db.Rebind(`SELECT id, student_id, description, category FROM accommodations WHERE id = ?`)
	var acc models.Accommodation
	if err := r.db.GetContext(ctx, &acc, query, id); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Create inserts an accommodation and sets its ID.
func (r *AccommodationRepository) Create(ctx context.Context, acc *models.Accommodation) error {
	query := r.db.Rebind(`INSERT INTO accommodations (student_id, description, category) VALUES (?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &acc.ID, query, acc.StudentID, acc.Description, acc.Category); err != nil {
		return fmt.Errorf("create accommodation: %w", err)
	}
	return nil
}

// Update overwrites an accommodation. It reports whether a row matched.
func (r *AccommodationRepository) Update(ctx context.Context, acc *models.Accommodation) (bool, error) {
	query := r.db.Rebind(`UPDATE accommodations SET student_id = ?, description = ?, category = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, acc.StudentID, acc.Description, acc.Category, acc.ID)
	if err != nil {
		return false, fmt.Errorf("update accommodation: %w", err)
	}
	return affected(res)
}

// Delete removes an accommodation and its service logs.
func (r *AccommodationRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM accommodations WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete accommodation: %w", err)
	}
	return nil
}
