// Package filter selects time logs and kanban cards by optional criteria.
// Empty criteria match everything.
package filter

import (
	"strings"
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/timeutil"
)

// LogFilter selects time logs.
type LogFilter struct {
	Bucket      string    // bucket key or display label, case-insensitive
	From        time.Time // zero means unbounded
	To          time.Time // zero means unbounded
	IncludeOpen bool      // keep logs without an end
}

// IsEmpty returns true if the filter matches all closed logs.
func (f LogFilter) IsEmpty() bool {
	return f.Bucket == "" && f.From.IsZero() && f.To.IsZero()
}

// MatchesBucket compares against the stored key and, when nameOf is given,
// the resolved project name.
func (f LogFilter) MatchesBucket(b entry.Bucket, nameOf func(string) (string, bool)) bool {
	if f.Bucket == "" {
		return true
	}
	return strings.EqualFold(b.String(), f.Bucket) || strings.EqualFold(b.Label(nameOf), f.Bucket)
}

// MatchesRange reports whether start falls in [From, To].
func (f LogFilter) MatchesRange(start time.Time) bool {
	if !f.From.IsZero() && start.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && start.After(f.To) {
		return false
	}
	return true
}

// Matches reports whether log passes every criterion.
func (f LogFilter) Matches(log entry.TimeLogEntry, nameOf func(string) (string, bool)) bool {
	if log.Start.IsZero() {
		return false
	}
	if log.End == nil && !f.IncludeOpen {
		return false
	}
	return f.MatchesBucket(log.Bucket, nameOf) && f.MatchesRange(log.Start)
}

// Logs returns the logs matching f, preserving order.
func Logs(logs []entry.TimeLogEntry, f LogFilter, nameOf func(string) (string, bool)) []entry.TimeLogEntry {
	filtered := make([]entry.TimeLogEntry, 0, len(logs))
	for _, log := range logs {
		if f.Matches(log, nameOf) {
			filtered = append(filtered, log)
		}
	}
	return filtered
}

// Day returns a LogFilter covering day's local calendar date.
func Day(day time.Time) LogFilter {
	return LogFilter{From: timeutil.StartOfDay(day), To: timeutil.EndOfDay(day)}
}

// CardFilter selects kanban cards.
type CardFilter struct {
	Keyword  string         // case-insensitive substring of name or description
	Column   string         // exact column
	Labels   []string       // all must be present (case-insensitive)
	Priority entry.Priority // exact priority when set
}

// IsEmpty returns true if all filter fields are empty (matches all cards)
func (f CardFilter) IsEmpty() bool {
	return f.Keyword == "" && f.Column == "" && len(f.Labels) == 0 && f.Priority == ""
}

// MatchesKeyword searches the card name and description.
func (f CardFilter) MatchesKeyword(p entry.Project) bool {
	if f.Keyword == "" {
		return true
	}
	kw := strings.ToLower(f.Keyword)
	return strings.Contains(strings.ToLower(p.Name), kw) || strings.Contains(strings.ToLower(p.Description), kw)
}

// MatchesLabels returns true if the card has ALL filter labels.
func (f CardFilter) MatchesLabels(p entry.Project) bool {
	for _, want := range f.Labels {
		found := false
		for _, have := range p.Labels {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Matches reports whether p passes every criterion.
func (f CardFilter) Matches(p entry.Project) bool {
	if f.Column != "" && p.Column != f.Column {
		return false
	}
	if f.Priority != "" && p.Priority != f.Priority {
		return false
	}
	return f.MatchesKeyword(p) && f.MatchesLabels(p)
}

// Cards returns the cards matching f, preserving order.
func Cards(projects []entry.Project, f CardFilter) []entry.Project {
	if f.IsEmpty() {
		return projects
	}
	filtered := make([]entry.Project, 0)
	for _, p := range projects {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
