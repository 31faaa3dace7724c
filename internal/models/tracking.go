package models

// ServiceMarks maps a service date (YYYY-MM-DD) to its recorded value. A date
// with no entry has not been recorded, which is different from an explicit false.
type ServiceMarks map[string]bool

// Provided reports whether the service was recorded as provided on date.
func (m ServiceMarks) Provided(date string) bool {
	return m[date]
}

// Recorded reports whether any value exists for date.
func (m ServiceMarks) Recorded(date string) bool {
	_, ok := m[date]
	return ok
}

// AccommodationTracking is an accommodation with its service marks for a date range.
type AccommodationTracking struct {
	Accommodation
	ServiceLogs ServiceMarks `json:"service_logs"`
}

// StudentTracking is an enrolled student with per-accommodation service marks.
type StudentTracking struct {
	Student
	Accommodations []AccommodationTracking `json:"accommodations"`
}

// PeriodTracking is the full-period aggregate used by bulk exports.
type PeriodTracking struct {
	Class    Class             `json:"class"`
	Period   SixWeekPeriod     `json:"period"`
	Dates    []string          `json:"dates"`
	Students []StudentTracking `json:"students"`
}
