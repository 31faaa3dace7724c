package models

// SixWeekPeriod is a grading window. Dates are inclusive and formatted YYYY-MM-DD.
type SixWeekPeriod struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	StartDate string `db:"start_date" json:"start_date"`
	EndDate   string `db:"end_date" json:"end_date"`
	Year      string `db:"year" json:"year"`
}

// PeriodFilter narrows period listings.
type PeriodFilter struct {
	Year string
}
