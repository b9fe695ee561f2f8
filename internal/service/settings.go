package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/store"
)

// ErrNoChanges is returned when a settings update would change nothing.
var ErrNoChanges = errors.New("at least one change must be specified")

// SettingsUpdate holds optional changes. Nil pointers keep the stored value.
type SettingsUpdate struct {
	PomoDuration  *int
	BreakDuration *int
	SyncURL       *string
	AddBuckets    []string
	RemoveBuckets []string
	AddLabels     []string
	RemoveLabels  []string
}

// IsEmpty reports whether the update changes nothing.
func (u SettingsUpdate) IsEmpty() bool {
	return u.PomoDuration == nil && u.BreakDuration == nil && u.SyncURL == nil &&
		len(u.AddBuckets) == 0 && len(u.RemoveBuckets) == 0 &&
		len(u.AddLabels) == 0 && len(u.RemoveLabels) == 0
}

// SettingsService reads and writes dashboard settings.
type SettingsService struct {
	store    *store.Store
	pomodoro *PomodoroService
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(st *store.Store, p *PomodoroService) *SettingsService {
	return &SettingsService{store: st, pomodoro: p}
}

// Get returns the stored settings.
func (s *SettingsService) Get() entry.Settings {
	return s.store.Settings()
}

// Save normalizes, validates and writes settings. An idle Pomodoro is reset
// so new durations apply at once; a running one keeps counting.
func (s *SettingsService) Save(settings entry.Settings) (entry.Settings, error) {
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	if err := s.store.SaveSettings(settings); err != nil {
		return settings, fmt.Errorf("failed to save settings: %w", err)
	}
	if !s.pomodoro.State().IsRunning {
		s.pomodoro.Reset()
	}
	return settings, nil
}

// Apply merges u into the stored settings and saves them.
// Removing a bucket or label that does not exist is an error.
func (s *SettingsService) Apply(u SettingsUpdate) (entry.Settings, error) {
	if u.IsEmpty() {
		return s.Get(), ErrNoChanges
	}

	settings := s.Get()
	if u.PomoDuration != nil {
		settings.PomoDuration = *u.PomoDuration
	}
	if u.BreakDuration != nil {
		settings.BreakDuration = *u.BreakDuration
	}
	if u.SyncURL != nil {
		settings.SyncURL = *u.SyncURL
	}

	var removed bool
	for _, name := range u.RemoveBuckets {
		if settings.Buckets, removed = entry.Remove(settings.Buckets, strings.TrimSpace(name)); !removed {
			return settings, fmt.Errorf("%w: %q", ErrUnknownBucket, name)
		}
	}
	for _, name := range u.AddBuckets {
		settings.Buckets, _ = entry.AddUnique(settings.Buckets, name)
	}
	for _, name := range u.RemoveLabels {
		if settings.Labels, removed = entry.Remove(settings.Labels, strings.TrimSpace(name)); !removed {
			return settings, fmt.Errorf("%w: %q", ErrUnknownLabel, name)
		}
	}
	for _, name := range u.AddLabels {
		settings.Labels, _ = entry.AddUnique(settings.Labels, name)
	}

	return s.Save(settings)
}
