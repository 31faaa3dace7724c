package calendar

import (
	"fmt"
	"time"
)

// WindowDays is the length of the interactive tracking window (Mon-Thu).
const WindowDays = 4

// Direction selects the neighbouring week.
type Direction int

// Navigation directions.
const (
	Prev Direction = -1
	Next Direction = 1
)

// ParseDirection maps "prev"/"next" to a Direction.
func ParseDirection(raw string) (Direction, bool) {
	switch raw {
	case "prev", "previous":
		return Prev, true
	case "next":
		return Next, true
	}
	return 0, false
}

// MondayOf returns the Monday of the week containing d.
func MondayOf(d time.Time) time.Time {
	d = Truncate(d)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return AddDays(d, 1-weekday)
}

// WeekWindow returns the four consecutive days starting at weekStart.
func WeekWindow(weekStart time.Time) [WindowDays]time.Time {
	weekStart = Truncate(weekStart)
	var days [WindowDays]time.Time
	for i := range days {
		days[i] = AddDays(weekStart, i)
	}
	return days
}

// IsWeekInPeriod reports whether the Mon-Thu window starting at weekStart lies
// inside period. A nil period places no restriction.
func IsWeekInPeriod(weekStart time.Time, period *Period) bool {
	if period == nil {
		return true
	}
	weekStart = Truncate(weekStart)
	weekEnd := AddDays(weekStart, WindowDays-1)
	return !weekStart.Before(period.Start) && !weekEnd.After(period.End)
}

// CanNavigate reports whether the week one step in dir from current is inside period.
func CanNavigate(dir Direction, current time.Time, period *Period) bool {
	return IsWeekInPeriod(AddDays(Truncate(current), 7*int(dir)), period)
}

// Navigate moves one week in dir. It returns current unchanged and false when
// the target week falls outside period.
func Navigate(dir Direction, current time.Time, period *Period) (time.Time, bool) {
	if !CanNavigate(dir, current, period) {
		return Truncate(current), false
	}
	return MondayOf(AddDays(Truncate(current), 7*int(dir))), true
}

// ResolveCurrentWeek picks the week to show for "today": the current week when
// today is inside period (or there is no period), otherwise the period's first week.
func ResolveCurrentWeek(period *Period, today time.Time) time.Time {
	if period == nil || period.Contains(today) {
		return MondayOf(today)
	}
	return MondayOf(period.Start)
}

// WeekNumber returns the 1-based index of the week starting at current within
// period, counted from the Monday of the period's first week.
func WeekNumber(current time.Time, period *Period) int {
	days := DaysBetween(MondayOf(period.Start), current)
	return floorDiv(days, 7) + 1
}

// WeekNumberLabel renders "Week N of <period name>", or "" without a period.
func WeekNumberLabel(current time.Time, period *Period) string {
	if period == nil {
		return ""
	}
	return fmt.Sprintf("Week %d of %s", WeekNumber(current, period), period.Name)
}

// Weekdays lists every Monday-Friday date in [start, end]. It is empty when
// end precedes start.
func Weekdays(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	var dates []time.Time
	for d := start; !d.After(end); d = AddDays(d, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			dates = append(dates, d)
		}
	}
	return dates
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
