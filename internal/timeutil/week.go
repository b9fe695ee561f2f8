package timeutil

import (
	"fmt"
	"time"
)

// DayNames are the column headings of a week grid, Monday first.
var DayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekWindow is the Monday-to-Sunday span used for weekly aggregation.
// Start is Monday 00:00 local; End is Start + 6 days (Sunday 00:00).
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// StartOfWeek returns Monday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	sinceMonday := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -sinceMonday)
}

// WeekAt returns the window containing now, shifted by offset weeks.
// Offset 0 is the current week and negative offsets go back in time.
func WeekAt(now time.Time, offset int) WeekWindow {
	start := StartOfWeek(now).AddDate(0, 0, offset*7)
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 6)}
}

// Day returns midnight of day i (0 = Monday).
func (w WeekWindow) Day(i int) time.Time {
	return w.Start.AddDate(0, 0, i)
}

// Days returns the seven midnights of the window.
func (w WeekWindow) Days() [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = w.Day(i)
	}
	return days
}

// Contains reports whether t falls on one of the window's calendar days.
func (w WeekWindow) Contains(t time.Time) bool {
	return IsInRange(t, w.Start, EndOfDay(w.End))
}

// RangeLabel renders the window as "Jan 2 – Jan 8, 2006".
func (w WeekWindow) RangeLabel() string {
	return fmt.Sprintf("%s – %s", w.Start.Format("Jan 2"), w.End.Format("Jan 2, 2006"))
}

// DayLabel returns the short day name and date of day i, e.g. ("Mon", "Jan 2").
func (w WeekWindow) DayLabel(i int) (string, string) {
	return DayNames[i], w.Day(i).Format("Jan 2")
}
