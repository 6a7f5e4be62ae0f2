package util

import "time"

// DateLayout is the calendar-day wire format.
const DateLayout = "2006-01-02"

// ParseDate parses YYYY-MM-DD into UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day returns UTC midnight of t's calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
