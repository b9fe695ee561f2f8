package service

import (
	"errors"
	"testing"

	"github.com/xolan/truflow/internal/entry"
)

func intPtr(i int) *int { return &i }

func TestSettings_SaveValidates(t *testing.T) {
	s, _, _ := setupServices(t)

	tests := []struct {
		name  string
		pomo  int
		brk   int
		valid bool
	}{
		{name: "defaults", pomo: 25, brk: 5, valid: true},
		{name: "bounds", pomo: 60, brk: 30, valid: true},
		{name: "minimums", pomo: 1, brk: 1, valid: true},
		{name: "pomo zero", pomo: 0, brk: 5},
		{name: "pomo too long", pomo: 61, brk: 5},
		{name: "break too long", pomo: 25, brk: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := s.Settings.Get()
			settings.PomoDuration = tt.pomo
			settings.BreakDuration = tt.brk
			_, err := s.Settings.Save(settings)
			if tt.valid && err != nil {
				t.Errorf("Save() error = %v", err)
			}
			if !tt.valid && !errors.Is(err, entry.ErrInvalidSettings) {
				t.Errorf("Save() error = %v, expected ErrInvalidSettings", err)
			}
		})
	}
}

func TestSettings_SaveNormalizes(t *testing.T) {
	s, _, _ := setupServices(t)
	settings := s.Settings.Get()
	settings.Buckets = []string{" Email ", "Email", "", "Deep Work"}
	settings.Labels = []string{"client", " client"}
	settings.SyncURL = "  https://example.test/backup  "

	saved, err := s.Settings.Save(settings)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Buckets) != 2 || saved.Buckets[1] != "Deep Work" {
		t.Errorf("Buckets = %v", saved.Buckets)
	}
	if len(saved.Labels) != 1 {
		t.Errorf("Labels = %v", saved.Labels)
	}
	if saved.SyncURL != "https://example.test/backup" {
		t.Errorf("SyncURL = %q", saved.SyncURL)
	}
	if got := s.Store.Settings(); got.SyncURL != saved.SyncURL {
		t.Error("settings should be persisted")
	}
}

func TestSettings_SaveResetsIdlePomodoro(t *testing.T) {
	s, _, sched := setupServices(t)

	settings := s.Settings.Get()
	settings.PomoDuration = 50
	if _, err := s.Settings.Save(settings); err != nil {
		t.Fatal(err)
	}
	if got := s.Pomodoro.State().Remaining; got != 3000 {
		t.Errorf("idle pomodoro remaining = %d, expected 3000", got)
	}

	s.Pomodoro.Start()
	sched.tick(10)
	settings.PomoDuration = 10
	if _, err := s.Settings.Save(settings); err != nil {
		t.Fatal(err)
	}
	state := s.Pomodoro.State()
	if !state.IsRunning || state.Remaining != 2990 {
		t.Errorf("running pomodoro should be untouched, got %+v", state)
	}
}

func TestSettings_Apply(t *testing.T) {
	s, _, _ := setupServices(t)

	if _, err := s.Settings.Apply(SettingsUpdate{}); !errors.Is(err, ErrNoChanges) {
		t.Errorf("empty update error = %v", err)
	}

	got, err := s.Settings.Apply(SettingsUpdate{
		PomoDuration:  intPtr(45),
		AddBuckets:    []string{"Deep Work", "Email"},
		RemoveBuckets: []string{"EDCOR"},
		AddLabels:     []string{"client"},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.PomoDuration != 45 {
		t.Errorf("PomoDuration = %d", got.PomoDuration)
	}
	expected := []string{"Email", "Meetings", "Tinkering/Research", "Whirlwind", "Deep Work"}
	if !equalIDs(got.Buckets, expected) {
		t.Errorf("Buckets = %v, expected %v", got.Buckets, expected)
	}
	if !equalIDs(got.Labels, []string{"client"}) {
		t.Errorf("Labels = %v", got.Labels)
	}

	if _, err := s.Settings.Apply(SettingsUpdate{RemoveLabels: []string{"home"}}); !errors.Is(err, ErrUnknownLabel) {
		t.Errorf("remove unknown label error = %v", err)
	}
	if _, err := s.Settings.Apply(SettingsUpdate{BreakDuration: intPtr(45)}); !errors.Is(err, entry.ErrInvalidSettings) {
		t.Errorf("invalid break error = %v", err)
	}
	if s.Settings.Get().BreakDuration != 5 {
		t.Error("invalid update must not be saved")
	}
}
