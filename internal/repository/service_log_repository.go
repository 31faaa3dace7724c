package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

// ServiceLogRepository stores per-day accommodation service marks.
type ServiceLogRepository struct {
	db *sqlx.DB
}

// NewServiceLogRepository constructs a ServiceLogRepository.
func NewServiceLogRepository(db *sqlx.DB) *ServiceLogRepository {
	return &ServiceLogRepository{db: db}
}

// Toggle flips the mark for (class, accommodation, date), inserting it as
// provided when none exists, and returns the stored value. The whole operation is
// one statement, so two toggles of the same key cannot interleave.
func (r *ServiceLogRepository) Toggle(ctx context.Context, classID, accommodationID int64, date string) (bool, error) {
	query := r.db.Rebind(`INSERT INTO accommodation_service_logs (class_id, accommodation_id, service_date, provided)
        VALUES (?, ?, ?, 1)
        ON CONFLICT (class_id, accommodation_id, service_date)
        DO UPDATE SET provided = 1 - accommodation_service_logs.provided
        RETURNING provided`)
	var provided int
	if err := r.db.GetContext(ctx, &provided, query, classID, accommodationID, date); err != nil {
		return false, fmt.Errorf("toggle service log: %w", err)
	}
	return provided == 1, nil
}

// ListByClassAndRange returns logs for the class with service_date in [start, end].
func (r *ServiceLogRepository) ListByClassAndRange(ctx context.Context, classID int64, start, end string) ([]models.ServiceLog, error) {
	query := r.db.Rebind(`SELECT id, class_id, accommodation_id, service_date, provided FROM accommodation_service_logs
        WHERE class_id = ? AND service_date >= ? AND service_date <= ?
        ORDER BY accommodation_id, service_date`)
	logs := []models.ServiceLog{}
	if err := r.db.SelectContext(ctx, &logs, query, classID, start, end); err != nil {
		return nil, fmt.Errorf("list service logs: %w", err)
	}
	return logs, nil
}

// Find returns the log for an exact key, or nil when nothing was recorded.
func (r *ServiceLogRepository) Find(ctx context.Context, classID, accommodationID int64, date string) (*models.ServiceLog, error) {
	query := r.db.Rebind(`SELECT id, class_id, accommodation_id, service_date, provided FROM accommodation_service_logs
        WHERE class_id = ? AND accommodation_id = ? AND service_date = ?`)
	logs := []models.ServiceLog{}
	if err := r.db.SelectContext(ctx, &logs, query, classID, accommodationID, date); err != nil {
		return nil, fmt.Errorf("find service log: %w", err)
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[0], nil
}
