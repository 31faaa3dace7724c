package calendar

import (
	"fmt"
	"time"
)

// Layout is the wire and storage format for calendar dates.
const Layout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(Layout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return d, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(Layout)
}

// Truncate drops the clock part of t, keeping its calendar day in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a date by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// Days lists every calendar date in [start, end]. It is empty when end precedes start.
func Days(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	var dates []time.Time
	for d := start; !d.After(end); d = AddDays(d, 1) {
		dates = append(dates, d)
	}
	return dates
}
