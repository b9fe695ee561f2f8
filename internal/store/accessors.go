package store

import (
	"encoding/json"
	"math"

	"github.com/xolan/truflow/internal/entry"
)

// Projects returns the kanban cards, or an empty slice.
func (s *Store) Projects() []entry.Project {
	var projects []entry.Project
	if !s.GetItem(KeyProjects, &projects) || projects == nil {
		return []entry.Project{}
	}
	return projects
}

// SaveProjects replaces the kanban cards.
func (s *Store) SaveProjects(projects []entry.Project) error {
	return s.SetItem(KeyProjects, nonNil(projects))
}

// Tasks returns the to-do items, or an empty slice.
func (s *Store) Tasks() []entry.Task {
	var tasks []entry.Task
	if !s.GetItem(KeyTasks, &tasks) || tasks == nil {
		return []entry.Task{}
	}
	return tasks
}

// SaveTasks replaces the to-do items.
func (s *Store) SaveTasks(tasks []entry.Task) error {
	return s.SetItem(KeyTasks, nonNil(tasks))
}

// TimeLogs returns every time log, or an empty slice. Elements that are not
// objects are dropped with a warning; the rest survive.
func (s *Store) TimeLogs() []entry.TimeLogEntry {
	var raw []json.RawMessage
	if !s.GetItem(KeyTimeLogs, &raw) {
		return []entry.TimeLogEntry{}
	}
	logs := make([]entry.TimeLogEntry, 0, len(raw))
	for i, item := range raw {
		var log entry.TimeLogEntry
		if err := json.Unmarshal(item, &log); err != nil {
			s.logger.Warn("skipping malformed time log", "index", i, "error", err)
			continue
		}
		logs = append(logs, log)
	}
	return logs
}

// SaveTimeLogs replaces the time logs.
func (s *Store) SaveTimeLogs(logs []entry.TimeLogEntry) error {
	return s.SetItem(KeyTimeLogs, nonNil(logs))
}

// ActiveTimer returns the open tracker session, or nil.
func (s *Store) ActiveTimer() *entry.ActiveTimer {
	var timer entry.ActiveTimer
	if !s.GetItem(KeyActiveTimer, &timer) || timer.Bucket.IsZero() || timer.StartTime.IsZero() {
		return nil
	}
	return &timer
}

// SaveActiveTimer writes the open session. A nil timer removes the key.
func (s *Store) SaveActiveTimer(timer *entry.ActiveTimer) error {
	if timer == nil {
		return s.RemoveItem(KeyActiveTimer)
	}
	return s.SetItem(KeyActiveTimer, timer)
}

// PomodoroState returns the stored Pomodoro triple, or false when absent or
// invalid. A missing or empty mode means work; a remaining that is not a
// non-negative number or a mode other than work or break is invalid.
func (s *Store) PomodoroState() (entry.PomodoroState, bool) {
	var raw struct {
		Remaining json.RawMessage `json:"remaining"`
		IsRunning json.RawMessage `json:"isRunning"`
		Mode      json.RawMessage `json:"mode"`
	}
	if !s.GetItem(KeyPomodoroState, &raw) {
		return entry.PomodoroState{}, false
	}

	var remaining float64
	if err := json.Unmarshal(raw.Remaining, &remaining); err != nil || string(raw.Remaining) == "null" || remaining < 0 {
		s.logger.Warn("ignoring invalid pomodoro state", "remaining", string(raw.Remaining))
		return entry.PomodoroState{}, false
	}
	var mode entry.Mode
	if len(raw.Mode) > 0 && json.Unmarshal(raw.Mode, &mode) != nil {
		mode = entry.Mode(raw.Mode)
	}
	if mode == "" {
		mode = entry.ModeWork
	}
	if !mode.Valid() {
		s.logger.Warn("ignoring invalid pomodoro state", "mode", mode)
		return entry.PomodoroState{}, false
	}

	var running bool
	_ = json.Unmarshal(raw.IsRunning, &running)
	return entry.PomodoroState{Remaining: int(math.Round(remaining)), IsRunning: running, Mode: mode}, true
}

// SavePomodoroState writes the Pomodoro triple.
func (s *Store) SavePomodoroState(state entry.PomodoroState) error {
	return s.SetItem(KeyPomodoroState, state)
}

// Settings returns the stored settings, or the defaults when absent.
// Missing lists in a stored document fall back to their defaults.
func (s *Store) Settings() entry.Settings {
	var settings entry.Settings
	if !s.GetItem(KeySettings, &settings) {
		return entry.DefaultSettings()
	}
	defaults := entry.DefaultSettings()
	if settings.Buckets == nil {
		settings.Buckets = defaults.Buckets
	}
	if settings.Labels == nil {
		settings.Labels = defaults.Labels
	}
	if len(settings.KanbanColumns) == 0 {
		settings.KanbanColumns = defaults.KanbanColumns
	}
	return settings
}

// SaveSettings writes the settings.
func (s *Store) SaveSettings(settings entry.Settings) error {
	return s.SetItem(KeySettings, settings)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
