package stats

import (
	"sort"
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/timeutil"
)

// Statistics contains aggregated statistics for logs in a date range
type Statistics struct {
	TotalSeconds         int
	AverageSecondsPerDay float64
	EntryCount           int
	DaysWithEntries      int
}

// BucketBreakdown contains statistics for a single bucket
type BucketBreakdown struct {
	Bucket       entry.Bucket
	TotalSeconds int
	EntryCount   int
}

func inRange(log entry.TimeLogEntry, start, end time.Time) bool {
	if start.IsZero() {
		return !log.Start.After(end)
	}
	return timeutil.IsInRange(log.Start, start, end)
}

// CalculateStatistics computes statistics for closed logs starting within
// [start, end]. A zero start means unbounded.
func CalculateStatistics(logs []entry.TimeLogEntry, start, end time.Time) Statistics {
	stats := Statistics{}
	daysWithEntries := make(map[string]bool)
	first := end

	for _, log := range logs {
		sec := log.DurationSeconds()
		if sec <= 0 || !inRange(log, start, end) {
			continue
		}
		stats.TotalSeconds += sec
		stats.EntryCount++
		daysWithEntries[timeutil.DateKey(log.Start.Local())] = true
		if log.Start.Before(first) {
			first = log.Start
		}
	}

	stats.DaysWithEntries = len(daysWithEntries)
	if stats.EntryCount == 0 {
		return stats
	}

	// unbounded ranges average over the span actually covered
	if start.IsZero() {
		start = timeutil.StartOfDay(first.Local())
	}
	totalDays := int(end.Sub(start).Hours()/24) + 1
	if totalDays > 0 {
		stats.AverageSecondsPerDay = float64(stats.TotalSeconds) / float64(totalDays)
	}
	return stats
}

// CalculateBucketBreakdown groups logs by bucket, largest total first, ties by key.
func CalculateBucketBreakdown(logs []entry.TimeLogEntry, start, end time.Time) []BucketBreakdown {
	byBucket := make(map[entry.Bucket]*BucketBreakdown)

	for _, log := range logs {
		sec := log.DurationSeconds()
		if sec <= 0 || !inRange(log, start, end) {
			continue
		}
		b, exists := byBucket[log.Bucket]
		if !exists {
			b = &BucketBreakdown{Bucket: log.Bucket}
			byBucket[log.Bucket] = b
		}
		b.TotalSeconds += sec
		b.EntryCount++
	}

	breakdowns := make([]BucketBreakdown, 0, len(byBucket))
	for _, b := range byBucket {
		breakdowns = append(breakdowns, *b)
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].TotalSeconds != breakdowns[j].TotalSeconds {
			return breakdowns[i].TotalSeconds > breakdowns[j].TotalSeconds
		}
		return breakdowns[i].Bucket.String() < breakdowns[j].Bucket.String()
	})
	return breakdowns
}
