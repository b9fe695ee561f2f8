package timeutil

import "time"

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// IsInRange reports whether start <= t <= end.
func IsInRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// DateKey is t's calendar date in DateLayout.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
