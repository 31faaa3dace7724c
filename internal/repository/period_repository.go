package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

// PeriodRepository manages six-week grading periods.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository constructs a PeriodRepository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// List returns periods. Filtering by year sorts chronologically; the unfiltered
// list puts the most recent period first.
func (r *PeriodRepository) List(ctx context.Context, filter models.PeriodFilter) ([]models.SixWeekPeriod, error) {
	periods := []models.SixWeekPeriod{}
	if filter.Year != "" {
		query := r.db.Rebind(`SELECT id, name, start_date, end_date, year FROM six_week_periods WHERE year = ? ORDER BY start_date`)
		if err := r.db.SelectContext(ctx, &periods, query, filter.Year); err != nil {
			return nil, fmt.Errorf("list periods: %w", err)
		}
		return periods, nil
	}
	const query = `SELECT id, name, start_date, end_date, year FROM six_week_periods ORDER BY start_date DESC`
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

// FindByID returns a period by ID or sql.ErrNoRows.
func (r *PeriodRepository) FindByID(ctx context.Context, id int64) (*models.SixWeekPeriod, error) {
	query := r.db.Rebind(`SELECT id, name, start_date, end_date, year FROM six_week_periods WHERE id = ?`)
	var period models.SixWeekPeriod
	if err := r.db.GetContext(ctx, &period, query, id); err != nil {
		return nil, err
	}
	return &period, nil
}

// Create inserts a period and sets its ID.
func (r *PeriodRepository) Create(ctx context.Context, period *models.SixWeekPeriod) error {
	query := r.db.Rebind(`INSERT INTO six_week_periods (name, start_date, end_date, year) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &period.ID, query, period.Name, period.StartDate, period.EndDate, period.Year); err != nil {
		return fmt.Errorf("create period: %w", err)
	}
	return nil
}

// Update overwrites a period. It reports whether a row matched.
func (r *PeriodRepository) Update(ctx context.Context, period *models.SixWeekPeriod) (bool, error) {
	query := r.db.Rebind(`UPDATE six_week_periods SET name = ?, start_date = ?, end_date = ?, year = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, period.Name, period.StartDate, period.EndDate, period.Year, period.ID)
	if err != nil {
		return false, fmt.Errorf("update period: %w", err)
	}
	return affected(res)
}

// Delete removes a period.
func (r *PeriodRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM six_week_periods WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	return nil
}
