package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns all classes ordered by period label then name.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, name, subject, period, year FROM classes ORDER BY period, name`
	classes := []models.Class{}
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class by ID or sql.ErrNoRows.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	query := r.db.Rebind(`SELECT id, name, subject, period, year FROM classes WHERE id = ?`)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Create inserts a class and sets its ID.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := r.db.Rebind(`INSERT INTO classes (name, subject, period, year) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &class.ID, query, class.Name, class.Subject, class.Period, class.Year); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update overwrites a class. It reports whether a row matched.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) (bool, error) {
	query := r.db.Rebind(`UPDATE classes SET name = ?, subject = ?, period = ?, year = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, class.Name, class.Subject, class.Period, class.Year, class.ID)
	if err != nil {
		return false, fmt.Errorf("update class: %w", err)
	}
	return affected(res)
}

// Delete removes a class; enrollments and service logs cascade.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM classes WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}
