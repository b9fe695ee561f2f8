// Package stats aggregates time logs into weekly totals and report grids.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/timeutil"
)

// Row is one bucket's line in a week grid.
type Row struct {
	Bucket entry.Bucket
	Days   [7]int // seconds per day, Monday first
	Total  int
}

// WeekGrid is the per-bucket, per-day breakdown of one week.
type WeekGrid struct {
	Window    timeutil.WeekWindow
	Offset    int
	Rows      []Row
	DayTotals [7]int
	WeekTotal int
}

// Empty reports whether nothing was logged in the window.
func (g WeekGrid) Empty() bool {
	return len(g.Rows) == 0
}

// ComputeWeekTotals sums closed, positive-duration logs starting at or after
// weekStart, per bucket. Durations are rounded to whole seconds.
func ComputeWeekTotals(logs []entry.TimeLogEntry, weekStart time.Time) map[entry.Bucket]int {
	totals := make(map[entry.Bucket]int)
	for _, log := range logs {
		if !log.Closed() || log.Start.Before(weekStart) {
			continue
		}
		sec := log.DurationSeconds()
		if sec <= 0 {
			continue
		}
		totals[log.Bucket] += sec
	}
	return totals
}

// DayIndex returns the day of window that start falls on, by local calendar
// date, and false when it lies outside Monday..Sunday.
func DayIndex(start time.Time, window timeutil.WeekWindow) (int, bool) {
	midnight := timeutil.StartOfDay(start.In(window.Start.Location()))
	idx := int(math.Round(float64(midnight.Sub(window.Start)) / float64(24*time.Hour)))
	if idx < 0 || idx > 6 {
		return 0, false
	}
	return idx, true
}

// ComputeWeekGrid builds the report grid for window. Open, non-positive and
// out-of-window logs are skipped. Rows are ordered by week total descending,
// then by bucket key ascending.
func ComputeWeekGrid(logs []entry.TimeLogEntry, window timeutil.WeekWindow) WeekGrid {
	grid := WeekGrid{Window: window}
	rows := make(map[entry.Bucket]*Row)

	for _, log := range logs {
		if !log.Closed() {
			continue
		}
		idx, ok := DayIndex(log.Start, window)
		if !ok {
			continue
		}
		sec := log.DurationSeconds()
		if sec <= 0 {
			continue
		}

		row, exists := rows[log.Bucket]
		if !exists {
			row = &Row{Bucket: log.Bucket}
			rows[log.Bucket] = row
		}
		row.Days[idx] += sec
		row.Total += sec
		grid.DayTotals[idx] += sec
	}

	for _, sec := range grid.DayTotals {
		grid.WeekTotal += sec
	}

	grid.Rows = make([]Row, 0, len(rows))
	for _, row := range rows {
		grid.Rows = append(grid.Rows, *row)
	}
	sort.Slice(grid.Rows, func(i, j int) bool {
		if grid.Rows[i].Total != grid.Rows[j].Total {
			return grid.Rows[i].Total > grid.Rows[j].Total
		}
		return grid.Rows[i].Bucket.String() < grid.Rows[j].Bucket.String()
	})

	return grid
}

// WeekGridFor resolves the window offset weeks from now and builds its grid.
func WeekGridFor(logs []entry.TimeLogEntry, now time.Time, offset int) WeekGrid {
	offset = ClampOffset(offset)
	grid := ComputeWeekGrid(logs, timeutil.WeekAt(now, offset))
	grid.Offset = offset
	return grid
}

// ClampOffset keeps a week offset in the past or present.
func ClampOffset(offset int) int {
	if offset > 0 {
		return 0
	}
	return offset
}

// PrevWeek moves one week back. There is no lower bound.
func PrevWeek(offset int) int {
	return ClampOffset(offset) - 1
}

// NextWeek moves one week forward, stopping at the current week.
func NextWeek(offset int) int {
	return ClampOffset(offset + 1)
}

// ProjectTotal sums every closed, positive-duration log for a project.
func ProjectTotal(logs []entry.TimeLogEntry, projectID string) int {
	bucket := entry.ProjectRef(projectID)
	total := 0
	for _, log := range logs {
		if log.Bucket != bucket {
			continue
		}
		if sec := log.DurationSeconds(); sec > 0 {
			total += sec
		}
	}
	return total
}
