package timeutil

import (
	"fmt"
	"time"
)

// ParseDateRangeFlags resolves the --from/--to/--last flag trio into an
// inclusive window ending today by default. A zero start is unbounded.
func ParseDateRangeFlags(fromStr, toStr string, lastDays int, now time.Time) (start, end time.Time, err error) {
	var zero time.Time
	if lastDays > 0 {
		if fromStr != "" || toStr != "" {
			return zero, zero, fmt.Errorf("cannot use --last with --from or --to")
		}
		return StartOfDay(now.AddDate(0, 0, 1-lastDays)), EndOfDay(now), nil
	}

	end = EndOfDay(now)
	if toStr != "" {
		day, perr := ParseDate(toStr)
		if perr != nil {
			return zero, zero, fmt.Errorf("invalid --to date: %w", perr)
		}
		end = EndOfDay(day)
	}
	if fromStr == "" {
		return zero, end, nil
	}

	if start, err = ParseDate(fromStr); err != nil {
		return zero, zero, fmt.Errorf("invalid --from date: %w", err)
	}
	if start.After(end) {
		return zero, zero, fmt.Errorf("--from date (%s) is after --to date (%s)", DateKey(start), DateKey(end))
	}
	return start, end, nil
}
