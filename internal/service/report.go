package service

import (
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/store"
	"github.com/xolan/truflow/internal/timeutil"
)

// WeekReport is a week grid with its rows' display labels resolved.
type WeekReport struct {
	Grid   stats.WeekGrid
	Labels []string // parallel to Grid.Rows
	Range  string
}

// StatsResult contains statistics for a time period
type StatsResult struct {
	Statistics stats.Statistics
	Buckets    []stats.BucketBreakdown
	Labels     []string // parallel to Buckets
	Period     string
	Start      time.Time
	End        time.Time
}

// ReportService builds weekly grids and period statistics.
type ReportService struct {
	store *store.Store
	clock *clock
}

// NewReportService creates a new ReportService
func NewReportService(st *store.Store, clk *clock) *ReportService {
	return &ReportService{store: st, clock: clk}
}

// Week returns the grid for the week offset weeks before the current one.
// Positive offsets are treated as the current week.
func (s *ReportService) Week(offset int) WeekReport {
	grid := stats.WeekGridFor(s.store.TimeLogs(), s.clock.Now(), offset)
	nameOf := projectNames(s.store.Projects())

	labels := make([]string, len(grid.Rows))
	for i, row := range grid.Rows {
		labels[i] = row.Bucket.Label(nameOf)
	}
	return WeekReport{Grid: grid, Labels: labels, Range: grid.Window.RangeLabel()}
}

// Stats summarises closed logs starting in [start, end]. A zero start covers
// everything up to end; a zero end means now.
func (s *ReportService) Stats(start, end time.Time) StatsResult {
	if end.IsZero() {
		end = timeutil.EndOfDay(s.clock.Now())
	}
	logs := s.store.TimeLogs()
	nameOf := projectNames(s.store.Projects())

	buckets := stats.CalculateBucketBreakdown(logs, start, end)
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Bucket.Label(nameOf)
	}

	return StatsResult{
		Statistics: stats.CalculateStatistics(logs, start, end),
		Buckets:    buckets,
		Labels:     labels,
		Period:     describePeriod(start, end),
		Start:      start,
		End:        end,
	}
}

// ProjectTotals returns all-time tracked seconds per project ID.
func (s *ReportService) ProjectTotals() map[string]int {
	logs := s.store.TimeLogs()
	totals := make(map[string]int)
	for _, p := range s.store.Projects() {
		totals[p.ID] = stats.ProjectTotal(logs, p.ID)
	}
	return totals
}

// LabelFor resolves a bucket label against the current projects.
func (s *ReportService) LabelFor(b entry.Bucket) string {
	return b.Label(projectNames(s.store.Projects()))
}

func describePeriod(start, end time.Time) string {
	if start.IsZero() {
		return "all time to " + end.Format("Jan 2, 2006")
	}
	if timeutil.DateKey(start) == timeutil.DateKey(end) {
		return start.Format("Mon, Jan 2, 2006")
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}
