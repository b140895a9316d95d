package domain

import "time"

// Period is a date-range shorthand for appointment listings
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// IsValid reports whether p is a known period shorthand
func (p Period) IsValid() bool {
	return p == PeriodWeek || p == PeriodMonth
}

// Range resolves the period into [start, end] calendar dates around now.
// Weeks start on Monday; months run from the 1st to the last day.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch p {
	case PeriodWeek:
		// time.Weekday numbers Sunday as 0
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	case PeriodMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 1, -1)
	default:
		return today, today
	}
}
