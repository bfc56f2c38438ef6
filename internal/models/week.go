package models

import (
	"fmt"
	"time"
)

// Day-of-week numbering follows the server convention used throughout the
// console: 2 = Monday ("Thứ 2") through 7 = Saturday, 8 = Sunday ("Chủ nhật").
// time.Weekday (Sunday = 0) is remapped exactly once, in DayOfWeekFromTime;
// no other package performs weekday arithmetic.
const (
	DayMonday    = 2
	DaySaturday  = 7
	DaySunday    = 8
	DaysPerWeek  = 7
	GridDayCount = 7
)

var dayNames = map[int]string{
	DayMonday: "Thứ 2",
	3:         "Thứ 3",
	4:         "Thứ 4",
	5:         "Thứ 5",
	6:         "Thứ 6",
	7:         "Thứ 7",
	DaySunday: "Chủ nhật",
}

// DayOfWeekFromTime converts time.Weekday into the 2..8 Monday-first convention.
func DayOfWeekFromTime(w time.Weekday) int {
	if w == time.Sunday {
		return DaySunday
	}
	return int(w) + 1
}

// ValidDayOfWeek reports whether d falls inside the 2..8 range.
func ValidDayOfWeek(d int) bool {
	return d >= DayMonday && d <= DaySunday
}

// DayColumn maps a day-of-week onto a grid column: 0 = Monday … 6 = Sunday.
// Returns -1 for values outside the convention.
func DayColumn(d int) int {
	if !ValidDayOfWeek(d) {
		return -1
	}
	return d - DayMonday
}

// DayName returns the Vietnamese weekday label for a 2..8 day-of-week.
func DayName(d int) string {
	if name, ok := dayNames[d]; ok {
		return name
	}
	return ""
}

// WeekDay is one entry of a WeekWindow.
type WeekDay struct {
	DayOfWeek int       `json:"day_of_week"`
	Date      time.Time `json:"date"`
	Label     string    `json:"label"`
}

// WeekWindow is the canonical Monday-start 7-day window containing a
// reference date. It is derived, never persisted, and recomputed whenever the
// reference date changes.
type WeekWindow struct {
	StartDate time.Time `json:"start_date"`
	Days      []WeekDay `json:"days"`
}

// EndDate returns the Sunday (last day) of the window at midnight.
func (w WeekWindow) EndDate() time.Time {
	return w.StartDate.AddDate(0, 0, DaysPerWeek-1)
}

// Contains reports whether the given date falls inside the window. The
// comparison is midnight-normalized; time-of-day components never matter.
func (w WeekWindow) Contains(date time.Time) bool {
	d := Midnight(date)
	return !d.Before(w.StartDate) && !d.After(w.EndDate())
}

// Midnight truncates a time to 00:00 of the same calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDateLabel renders a date as DD/MM/YYYY, the label format used by the
// weekly view.
func FormatDateLabel(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}
