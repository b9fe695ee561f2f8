package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/filter"
	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/store"
	"github.com/xolan/truflow/internal/timeutil"
)

// Tracker-specific errors
var (
	ErrEmptyBucket      = errors.New("bucket cannot be empty")
	ErrUnknownBucket    = errors.New("unknown bucket")
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("not clocked in")
	ErrFutureStart      = errors.New("start time cannot be in the future")
)

// RecentLimit is how many closed logs the recent list shows.
const RecentLimit = 5

// BucketOption is one choice in the bucket picker.
type BucketOption struct {
	Bucket entry.Bucket
	Label  string
}

// TrackerStatus is the live view of the tracker session.
type TrackerStatus struct {
	Running bool
	Bucket  entry.Bucket
	Label   string
	Start   time.Time
	Elapsed int // seconds
}

// TrackerService manages clock-in sessions and the time log.
type TrackerService struct {
	store *store.Store
	clock *clock
}

// NewTrackerService creates a new TrackerService
func NewTrackerService(st *store.Store, clk *clock) *TrackerService {
	return &TrackerService{store: st, clock: clk}
}

// ProjectNames returns a resolver from project ID to current project name.
func (s *TrackerService) ProjectNames() func(string) (string, bool) {
	return projectNames(s.store.Projects())
}

func projectNames(projects []entry.Project) func(string) (string, bool) {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return func(id string) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

// Buckets lists the settings buckets followed by every kanban project.
func (s *TrackerService) Buckets() []BucketOption {
	settings := s.store.Settings()
	projects := s.store.Projects()

	options := make([]BucketOption, 0, len(settings.Buckets)+len(projects))
	for _, name := range settings.Buckets {
		options = append(options, BucketOption{Bucket: entry.Named(name), Label: name})
	}
	for _, p := range projects {
		options = append(options, BucketOption{Bucket: p.Bucket(), Label: p.Name})
	}
	return options
}

// ResolveBucket turns user input into a bucket. It accepts a settings bucket
// name, a project name (both case-insensitive), or project:<id> where the ID
// may be a unique prefix.
func (s *TrackerService) ResolveBucket(input string) (entry.Bucket, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return entry.Bucket{}, ErrEmptyBucket
	}

	projects := s.store.Projects()
	if id, ok := strings.CutPrefix(input, entry.ProjectPrefix); ok {
		idx, err := findIndex(projects, id, func(p entry.Project) string { return p.ID })
		if err != nil {
			return entry.Bucket{}, fmt.Errorf("%w: %s", ErrUnknownBucket, err)
		}
		return projects[idx].Bucket(), nil
	}

	for _, name := range s.store.Settings().Buckets {
		if strings.EqualFold(name, input) {
			return entry.Named(name), nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.Bucket(), nil
		}
	}
	return entry.Bucket{}, fmt.Errorf("%w: %q", ErrUnknownBucket, input)
}

// Label returns the display label for a bucket.
func (s *TrackerService) Label(b entry.Bucket) string {
	return b.Label(s.ProjectNames())
}

// Status returns the current session, if any.
func (s *TrackerService) Status() TrackerStatus {
	active := s.store.ActiveTimer()
	if active == nil {
		return TrackerStatus{}
	}

	elapsed := int(s.clock.Now().Sub(active.StartTime) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	return TrackerStatus{
		Running: true,
		Bucket:  active.Bucket,
		Label:   s.Label(active.Bucket),
		Start:   active.StartTime,
		Elapsed: elapsed,
	}
}

// ClockIn opens a session against the bucket named by input.
func (s *TrackerService) ClockIn(input string) (*entry.ActiveTimer, error) {
	bucket, err := s.ResolveBucket(input)
	if err != nil {
		return nil, err
	}

	if existing := s.store.ActiveTimer(); existing != nil {
		return existing, ErrAlreadyClockedIn
	}

	active := &entry.ActiveTimer{Bucket: bucket, StartTime: s.clock.Now()}
	if err := s.store.SaveActiveTimer(active); err != nil {
		return nil, fmt.Errorf("failed to save active timer: %w", err)
	}
	return active, nil
}

// ClockOut closes the session into a time log and clears the active timer.
func (s *TrackerService) ClockOut() (*entry.TimeLogEntry, error) {
	active := s.store.ActiveTimer()
	if active == nil {
		return nil, ErrNotClockedIn
	}

	end := s.clock.Now()
	log := entry.TimeLogEntry{
		ID:     newID(),
		Bucket: active.Bucket,
		Start:  active.StartTime,
		End:    &end,
	}

	logs := append(s.store.TimeLogs(), log)
	if err := s.store.SaveTimeLogs(logs); err != nil {
		return nil, fmt.Errorf("failed to save time log: %w", err)
	}
	if err := s.store.SaveActiveTimer(nil); err != nil {
		return nil, fmt.Errorf("failed to clear active timer: %w", err)
	}
	return &log, nil
}

// AdjustStart moves the open session's start to clock ("HH:MM") on the
// session's own date.
func (s *TrackerService) AdjustStart(clockInput string) (*entry.ActiveTimer, error) {
	active := s.store.ActiveTimer()
	if active == nil {
		return nil, ErrNotClockedIn
	}

	hour, minute, err := timeutil.ParseClock(clockInput)
	if err != nil {
		return nil, err
	}

	start := timeutil.AtClock(active.StartTime.Local(), hour, minute)
	if start.After(s.clock.Now()) {
		return nil, ErrFutureStart
	}

	active.StartTime = start
	if err := s.store.SaveActiveTimer(active); err != nil {
		return nil, fmt.Errorf("failed to save active timer: %w", err)
	}
	return active, nil
}

// EditLog rewrites a log's interval. date is YYYY-MM-DD (or DD/MM/YYYY),
// start and end are HH:MM. An end at or before start is taken to be on the
// following day.
func (s *TrackerService) EditLog(id, date, startClock, endClock string) (*entry.TimeLogEntry, error) {
	logs := s.store.TimeLogs()
	idx, err := findIndex(logs, id, func(l entry.TimeLogEntry) string { return l.ID })
	if err != nil {
		return nil, err
	}

	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	sh, sm, err := timeutil.ParseClock(startClock)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	eh, em, err := timeutil.ParseClock(endClock)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}

	start := timeutil.AtClock(day, sh, sm)
	end := timeutil.AtClock(day, eh, em)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	logs[idx].Start = start
	logs[idx].End = &end
	if err := s.store.SaveTimeLogs(logs); err != nil {
		return nil, fmt.Errorf("failed to save time log: %w", err)
	}
	edited := logs[idx]
	return &edited, nil
}

// SetLogBucket reassigns a log to another bucket.
func (s *TrackerService) SetLogBucket(id, input string) (*entry.TimeLogEntry, error) {
	bucket, err := s.ResolveBucket(input)
	if err != nil {
		return nil, err
	}

	logs := s.store.TimeLogs()
	idx, err := findIndex(logs, id, func(l entry.TimeLogEntry) string { return l.ID })
	if err != nil {
		return nil, err
	}

	logs[idx].Bucket = bucket
	if err := s.store.SaveTimeLogs(logs); err != nil {
		return nil, fmt.Errorf("failed to save time log: %w", err)
	}
	edited := logs[idx]
	return &edited, nil
}

// GetLog looks up a log by ID or unique ID prefix.
func (s *TrackerService) GetLog(id string) (*entry.TimeLogEntry, error) {
	logs := s.store.TimeLogs()
	idx, err := findIndex(logs, id, func(l entry.TimeLogEntry) string { return l.ID })
	if err != nil {
		return nil, err
	}
	return &logs[idx], nil
}

// DeleteLog removes a log.
func (s *TrackerService) DeleteLog(id string) (*entry.TimeLogEntry, error) {
	logs := s.store.TimeLogs()
	idx, err := findIndex(logs, id, func(l entry.TimeLogEntry) string { return l.ID })
	if err != nil {
		return nil, err
	}

	deleted := logs[idx]
	logs = append(logs[:idx], logs[idx+1:]...)
	if err := s.store.SaveTimeLogs(logs); err != nil {
		return nil, fmt.Errorf("failed to save time logs: %w", err)
	}
	return &deleted, nil
}

// Recent returns the last n closed logs, newest first.
func (s *TrackerService) Recent(n int) []entry.TimeLogEntry {
	var closed []entry.TimeLogEntry
	for _, log := range s.store.TimeLogs() {
		if log.Closed() {
			closed = append(closed, log)
		}
	}
	if n > 0 && len(closed) > n {
		closed = closed[len(closed)-n:]
	}

	recent := make([]entry.TimeLogEntry, len(closed))
	for i, log := range closed {
		recent[len(closed)-1-i] = log
	}
	return recent
}

// Logs returns the logs matching f in stored order.
func (s *TrackerService) Logs(f filter.LogFilter) []entry.TimeLogEntry {
	return filter.Logs(s.store.TimeLogs(), f, s.ProjectNames())
}

// WeekTotals returns seconds per bucket since the start of the current week.
func (s *TrackerService) WeekTotals() map[entry.Bucket]int {
	window := timeutil.WeekAt(s.clock.Now(), 0)
	return stats.ComputeWeekTotals(s.store.TimeLogs(), window.Start)
}
