package stats

import (
	"testing"
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/timeutil"
)

func TestCalculateStatistics(t *testing.T) {
	start := monday
	end := timeutil.EndOfDay(monday.AddDate(0, 0, 6))
	logs := []entry.TimeLogEntry{
		makeLog(email, monday.Add(9*time.Hour), time.Hour),
		makeLog(meetings, monday.Add(11*time.Hour), time.Hour),
		makeLog(email, monday.AddDate(0, 0, 3).Add(9*time.Hour), 90*time.Minute),
		makeLog(email, monday.AddDate(0, 0, -1), time.Hour),
		{ID: "open", Bucket: email, Start: monday.Add(time.Hour)},
	}

	stats := CalculateStatistics(logs, start, end)

	if stats.TotalSeconds != 12600 {
		t.Errorf("TotalSeconds = %d, expected 12600", stats.TotalSeconds)
	}
	if stats.EntryCount != 3 {
		t.Errorf("EntryCount = %d, expected 3", stats.EntryCount)
	}
	if stats.DaysWithEntries != 2 {
		t.Errorf("DaysWithEntries = %d, expected 2", stats.DaysWithEntries)
	}
	if stats.AverageSecondsPerDay != 1800 {
		t.Errorf("AverageSecondsPerDay = %f, expected 1800", stats.AverageSecondsPerDay)
	}
}

func TestCalculateStatistics_Empty(t *testing.T) {
	stats := CalculateStatistics(nil, time.Time{}, monday)
	if stats != (Statistics{}) {
		t.Errorf("expected zero statistics, got %+v", stats)
	}
}

func TestCalculateStatistics_UnboundedStart(t *testing.T) {
	end := timeutil.EndOfDay(monday.AddDate(0, 0, 1))
	logs := []entry.TimeLogEntry{
		makeLog(email, monday.Add(9*time.Hour), time.Hour),
		makeLog(email, monday.AddDate(0, 0, 1).Add(9*time.Hour), time.Hour),
	}

	stats := CalculateStatistics(logs, time.Time{}, end)
	if stats.EntryCount != 2 || stats.AverageSecondsPerDay != 3600 {
		t.Errorf("unexpected statistics %+v", stats)
	}
}

func TestCalculateBucketBreakdown(t *testing.T) {
	logs := []entry.TimeLogEntry{
		makeLog(email, monday.Add(9*time.Hour), time.Hour),
		makeLog(meetings, monday.Add(11*time.Hour), 2*time.Hour),
		makeLog(email, monday.Add(14*time.Hour), 30*time.Minute),
	}

	got := CalculateBucketBreakdown(logs, time.Time{}, timeutil.EndOfDay(monday))
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if got[0].Bucket != meetings || got[0].TotalSeconds != 7200 || got[0].EntryCount != 1 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Bucket != email || got[1].TotalSeconds != 5400 || got[1].EntryCount != 2 {
		t.Errorf("second = %+v", got[1])
	}
}
