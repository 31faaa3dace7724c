package calendar

import (
	"time"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

// Period is a parsed six-week period.
type Period struct {
	Name  string
	Start time.Time
	End   time.Time
}

// PeriodFromModel parses the stored bounds of p.
func PeriodFromModel(p models.SixWeekPeriod) (*Period, error) {
	start, err := ParseDate(p.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(p.EndDate)
	if err != nil {
		return nil, err
	}
	return &Period{Name: p.Name, Start: start, End: end}, nil
}

// Contains reports whether d falls inside [Start, End].
func (p *Period) Contains(d time.Time) bool {
	d = Truncate(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Inverted reports whether the period ends before it starts.
func (p *Period) Inverted() bool {
	return p.End.Before(p.Start)
}
