package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/store"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0m"},
		{59, "0m"},
		{60, "1m"},
		{30 * 60, "30m"},
		{59 * 60, "59m"},
		{60 * 60, "1h"},
		{90 * 60, "1h 30m"},
		{120 * 60, "2h"},
		{150*60 + 45, "2h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			result := FormatDuration(tt.seconds)
			if result != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, result, tt.want)
			}
		})
	}
}

func TestFormatDateRangeForDisplay(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{
			"same day",
			time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
			time.Date(2024, 1, 15, 23, 59, 59, 0, time.Local),
			"Mon, Jan 15, 2024",
		},
		{
			"same year",
			time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
			time.Date(2024, 1, 21, 0, 0, 0, 0, time.Local),
			"Jan 15 - Jan 21, 2024",
		},
		{
			"across years",
			time.Date(2023, 12, 30, 0, 0, 0, 0, time.Local),
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local),
			"Dec 30, 2023 - Jan 2, 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateRangeForDisplay(tt.start, tt.end); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatStartTime(t *testing.T) {
	now := time.Date(2024, 1, 17, 15, 0, 0, 0, time.Local)

	if got := FormatStartTime(time.Date(2024, 1, 17, 9, 5, 0, 0, time.Local), now); got != "today at 9:05 AM" {
		t.Errorf("today: got %q", got)
	}
	if got := FormatStartTime(time.Date(2024, 1, 15, 16, 30, 0, 0, time.Local), now); got != "Mon Jan 15 at 4:30 PM" {
		t.Errorf("earlier day: got %q", got)
	}
}

func TestFormatLog(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)
	end := start.Add(90 * time.Minute)
	log := entry.TimeLogEntry{ID: "a1b2c3d4-e5f6", Bucket: entry.Named("Email"), Start: start, End: &end}

	got := FormatLog(log, "Email")
	for _, want := range []string{"a1b2c3d4", "Mon Jan 15", "09:00-10:30", "1h 30m", "Email"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatLog() = %q, missing %q", got, want)
		}
	}

	open := entry.TimeLogEntry{ID: "x", Bucket: entry.Named("Email"), Start: start}
	if got := FormatLog(open, "Email"); !strings.Contains(got, "09:00---:--") {
		t.Errorf("open log = %q", got)
	}
}

func TestFormatTask(t *testing.T) {
	dueDate := "2024-01-20"
	tests := []struct {
		name string
		task entry.Task
		want string
	}{
		{"plain", entry.Task{ID: "abcdef1234", Text: "read"}, "[ ] abcdef12     read"},
		{"done with priority", entry.Task{ID: "abcdef1234", Text: "read", Done: true, Priority: entry.PriorityHigh}, "[x] abcdef12 [H] read"},
		{"due", entry.Task{ID: "abcdef1234", Text: "read", DueDate: &dueDate}, "[ ] abcdef12     read (due 2024-01-20)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTask(tt.task); got != tt.want {
				t.Errorf("FormatTask() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCard(t *testing.T) {
	p := entry.Project{
		ID:       "1234567890",
		Name:     "Website",
		Priority: entry.PriorityMedium,
		Labels:   []string{"client"},
		Checklist: []entry.ChecklistItem{
			{ID: "a", Text: "design", Done: true},
			{ID: "b", Text: "build"},
		},
	}

	got := FormatCard(p, service.GoalProgress{})
	want := "12345678 [M] Website (1/2) #client"
	if got != want {
		t.Errorf("FormatCard() = %q, want %q", got, want)
	}

	got = FormatCard(p, service.GoalProgress{GoalSeconds: 3600, TrackedSeconds: 1800, Percent: 50})
	if !strings.HasSuffix(got, "goal 50%") {
		t.Errorf("FormatCard() with goal = %q", got)
	}
}

func TestFormatHealth(t *testing.T) {
	tests := []struct {
		name   string
		health store.KeyHealth
		want   string
	}{
		{"missing", store.KeyHealth{Key: "truflow_tasks"}, "missing"},
		{"invalid", store.KeyHealth{Key: "truflow_tasks", Present: true, Error: "bad json"}, "invalid (bad json)"},
		{"collection", store.KeyHealth{Key: "truflow_tasks", Present: true, Valid: true, Items: 1}, "ok, 1 item"},
		{"skipped", store.KeyHealth{Key: "truflow_timelogs", Present: true, Valid: true, Items: 3, Skipped: 1}, "ok, 3 items (1 skipped)"},
		{"document", store.KeyHealth{Key: "truflow_settings", Present: true, Valid: true, Items: -1}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatHealth(tt.health)
			if !strings.HasSuffix(got, tt.want) {
				t.Errorf("FormatHealth() = %q, want suffix %q", got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	if Pluralize("entry", 1) != "entry" {
		t.Error("singular")
	}
	if Pluralize("item", 2) != "items" {
		t.Error("plural")
	}
	if Pluralize("item", 0) != "items" {
		t.Error("zero")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer sentence", 10, "a longe..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
