package dto

import "github.com/noah-isme/accommodation-tracker/internal/models"

// ToggleServiceRequest flips one service mark for a class.
type ToggleServiceRequest struct {
	AccommodationID int64  `json:"accommodation_id" validate:"required,gt=0"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ToggleServiceResponse reports the stored value after a toggle.
type ToggleServiceResponse struct {
	ClassID         int64  `json:"class_id"`
	AccommodationID int64  `json:"accommodation_id"`
	Date            string `json:"date"`
	Provided        bool   `json:"provided"`
}

// WeekRequest selects the week shown by the tracking grid. An empty WeekStart
// resolves to the current week; Direction moves one week from there.
type WeekRequest struct {
	ClassID   int64
	PeriodID  *int64
	WeekStart string
	Direction string
}

// WeekView is everything the tracking grid renders for one Mon-Thu window.
type WeekView struct {
	ClassID   int64                    `json:"class_id"`
	WeekStart string                   `json:"week_start"`
	Dates     []string                 `json:"dates"`
	Label     string                   `json:"label"`
	InPeriod  bool                     `json:"in_period"`
	CanPrev   bool                     `json:"can_prev"`
	CanNext   bool                     `json:"can_next"`
	Period    *models.SixWeekPeriod    `json:"period,omitempty"`
	Students  []models.StudentTracking `json:"students"`
}
