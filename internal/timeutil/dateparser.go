package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for task due dates and log edits.
const DateLayout = "2006-01-02"

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseDate parses a date string in YYYY-MM-DD or DD/MM/YYYY format.
// Returns the parsed date at midnight (start of day) in local timezone.
// For ambiguous dates (like 05/06/2024), ISO format (YYYY-MM-DD) is preferred.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	// Try ISO format first (YYYY-MM-DD) - preferred for ambiguous dates
	t, err := time.ParseInLocation(DateLayout, input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	// Try European format (DD/MM/YYYY)
	t, err = time.ParseInLocation("02/01/2006", input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	return time.Time{}, buildDateParseError(input)
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	isoPartialRe := regexp.MustCompile(`^\d{4}-\d{1,2}$`)      // YYYY-MM (missing day)
	yearOnlyRe := regexp.MustCompile(`^\d{4}$`)                // YYYY (year only)
	isoPartialDayRe := regexp.MustCompile(`^\d{1,2}-\d{1,2}$`) // MM-DD or DD-MM (missing year)

	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD, e.g., 2024-%s)", input, input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}

// ParseClock parses a 24-hour "HH:MM" time of day.
func ParseClock(input string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time '%s' (use HH:MM, e.g., 09:30)", input)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time '%s': hour must be 0-23 and minute 0-59", input)
	}
	return hour, minute, nil
}

// AtClock returns day's calendar date at hour:minute in day's location.
func AtClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// FormatClock renders t as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
