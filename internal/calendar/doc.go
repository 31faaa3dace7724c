// Package calendar holds the week arithmetic used to navigate six-week grading
// periods.
//
// Weeks start on Monday; Sunday belongs to the week that began six days earlier.
// The interactive tracking view covers Monday through Thursday (WeekWindow) while
// full-period exports cover every weekday, Monday through Friday (Weekdays). The
// two windows are different on purpose and callers must not mix them.
//
// All values are calendar dates normalised to midnight UTC.
package calendar
