package entry

import (
	"errors"
	"fmt"
	"strings"
)

// Duration bounds, in minutes.
const (
	MinPomoMinutes  = 1
	MaxPomoMinutes  = 60
	MinBreakMinutes = 1
	MaxBreakMinutes = 30

	DefaultPomoMinutes  = 25
	DefaultBreakMinutes = 5
)

// ErrInvalidSettings is returned when a duration is out of range.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the user-editable dashboard settings.
type Settings struct {
	Buckets       []string `json:"buckets"`
	Labels        []string `json:"labels"`
	PomoDuration  int      `json:"pomoDuration"`
	BreakDuration int      `json:"breakDuration"`
	KanbanColumns []string `json:"kanbanColumns"`
	SyncURL       string   `json:"syncUrl,omitempty"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() Settings {
	return Settings{
		Buckets:       []string{"Email", "Meetings", "Tinkering/Research", "Whirlwind", "EDCOR"},
		Labels:        []string{},
		PomoDuration:  DefaultPomoMinutes,
		BreakDuration: DefaultBreakMinutes,
		KanbanColumns: []string{"queue", "in-progress", "on-hold", "done", "backburner"},
	}
}

// WorkSeconds returns the work interval length, falling back to 25 minutes when unset.
func (s Settings) WorkSeconds() int {
	if s.PomoDuration <= 0 {
		return DefaultPomoMinutes * 60
	}
	return s.PomoDuration * 60
}

// BreakSeconds returns the break interval length, falling back to 5 minutes when unset.
func (s Settings) BreakSeconds() int {
	if s.BreakDuration <= 0 {
		return DefaultBreakMinutes * 60
	}
	return s.BreakDuration * 60
}

// Columns returns the kanban columns, or the defaults when none are stored.
func (s Settings) Columns() []string {
	if len(s.KanbanColumns) == 0 {
		return DefaultSettings().KanbanColumns
	}
	return s.KanbanColumns
}

// HasColumn reports whether column is a configured kanban column.
func (s Settings) HasColumn(column string) bool {
	for _, c := range s.Columns() {
		if c == column {
			return true
		}
	}
	return false
}

// HasLabel reports whether label is defined in settings.
func (s Settings) HasLabel(label string) bool {
	for _, l := range s.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Validate checks the duration ranges.
func (s Settings) Validate() error {
	if s.PomoDuration < MinPomoMinutes || s.PomoDuration > MaxPomoMinutes {
		return fmt.Errorf("%w: pomodoro duration %d must be between %d and %d minutes",
			ErrInvalidSettings, s.PomoDuration, MinPomoMinutes, MaxPomoMinutes)
	}
	if s.BreakDuration < MinBreakMinutes || s.BreakDuration > MaxBreakMinutes {
		return fmt.Errorf("%w: break duration %d must be between %d and %d minutes",
			ErrInvalidSettings, s.BreakDuration, MinBreakMinutes, MaxBreakMinutes)
	}
	return nil
}

// Normalize trims names, drops empties and duplicates, and trims the sync URL.
func (s *Settings) Normalize() {
	s.Buckets = uniqueTrimmed(s.Buckets)
	s.Labels = uniqueTrimmed(s.Labels)
	s.SyncURL = strings.TrimSpace(s.SyncURL)
}

// AddUnique appends name to list unless it is empty or already present.
func AddUnique(list []string, name string) ([]string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return list, false
	}
	for _, existing := range list {
		if existing == name {
			return list, false
		}
	}
	return append(list, name), true
}

// Remove returns list without name.
func Remove(list []string, name string) ([]string, bool) {
	out := make([]string, 0, len(list))
	removed := false
	for _, existing := range list {
		if existing == name {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	return out, removed
}

func uniqueTrimmed(in []string) []string {
	out := make([]string, 0, len(in))
	for _, name := range in {
		out, _ = AddUnique(out, name)
	}
	return out
}
