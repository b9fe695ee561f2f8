package pomodoro

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/store"
)

// fakeScheduler records scheduled callbacks so tests can fire ticks by hand.
type fakeScheduler struct {
	mu        sync.Mutex
	fns       []func()
	cancelled []bool
}

func (f *fakeScheduler) Every(_ time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.fns)
	f.fns = append(f.fns, fn)
	f.cancelled = append(f.cancelled, false)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled[i] = true
	}
}

// fire runs the most recently scheduled callback n times, even if cancelled.
func (f *fakeScheduler) fire(n int) {
	f.mu.Lock()
	fn := f.fns[len(f.fns)-1]
	f.mu.Unlock()
	for i := 0; i < n; i++ {
		fn()
	}
}

func (f *fakeScheduler) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.cancelled {
		if !c {
			n++
		}
	}
	return n
}

func setupMachine(t *testing.T, opts ...Option) (*Machine, *store.Store, *fakeScheduler) {
	t.Helper()
	s := store.New(t.TempDir(), nil)
	sched := &fakeScheduler{}
	m := New(s, append([]Option{WithScheduler(sched)}, opts...)...)
	t.Cleanup(m.Close)
	return m, s, sched
}

func TestNew_DefaultsWithoutStoredState(t *testing.T) {
	m, _, _ := setupMachine(t)

	state := m.State()
	if state.Remaining != 1500 || state.Mode != entry.ModeWork || state.IsRunning {
		t.Errorf("State() = %+v, expected idle work 1500", state)
	}
}

func TestRestore_NeverResumes(t *testing.T) {
	s := store.New(t.TempDir(), nil)
	if err := s.SavePomodoroState(entry.PomodoroState{Remaining: 742, IsRunning: true, Mode: entry.ModeBreak}); err != nil {
		t.Fatal(err)
	}

	sched := &fakeScheduler{}
	m := New(s, WithScheduler(sched))
	defer m.Close()

	state := m.State()
	if state.IsRunning {
		t.Error("restored timer must not be running")
	}
	if state.Remaining != 742 || state.Mode != entry.ModeBreak {
		t.Errorf("State() = %+v, expected remaining and mode unchanged", state)
	}
	if len(sched.fns) != 0 {
		t.Error("restore must not schedule ticks")
	}
}

func TestRestore_InvalidStateResets(t *testing.T) {
	s := store.New(t.TempDir(), nil)
	settings := entry.DefaultSettings()
	settings.PomoDuration = 40
	if err := s.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	if err := s.SetItem(store.KeyPomodoroState, map[string]any{"remaining": 10, "mode": "lunch"}); err != nil {
		t.Fatal(err)
	}

	m := New(s, WithScheduler(&fakeScheduler{}))
	defer m.Close()

	if got := m.State(); got.Remaining != 2400 || got.Mode != entry.ModeWork {
		t.Errorf("State() = %+v, expected work defaults from settings", got)
	}
}

func TestRestore_MissingModeDefaultsToWork(t *testing.T) {
	s := store.New(t.TempDir(), nil)
	if err := s.SetItem(store.KeyPomodoroState, map[string]any{"remaining": 610}); err != nil {
		t.Fatal(err)
	}

	m := New(s, WithScheduler(&fakeScheduler{}))
	defer m.Close()

	if got := m.State(); got.Remaining != 610 || got.Mode != entry.ModeWork || got.IsRunning {
		t.Errorf("State() = %+v, expected remaining kept in work mode", got)
	}
}

func TestStartPauseToggle(t *testing.T) {
	m, s, sched := setupMachine(t)

	if !m.Start() {
		t.Fatal("Start() should succeed when idle")
	}
	if m.Start() {
		t.Error("Start() should be a no-op while running")
	}
	if sched.active() != 1 {
		t.Errorf("expected exactly one scheduled tick, got %d", sched.active())
	}
	if stored, _ := s.PomodoroState(); !stored.IsRunning {
		t.Error("start should persist isRunning")
	}

	sched.fire(3)
	if got := m.State().Remaining; got != 1497 {
		t.Errorf("Remaining = %d, expected 1497", got)
	}

	if !m.Pause() {
		t.Fatal("Pause() should succeed while running")
	}
	if sched.active() != 0 {
		t.Error("pause must cancel the scheduled tick")
	}
	if m.Pause() {
		t.Error("Pause() while idle should report false")
	}

	state := m.State()
	if state.IsRunning || state.Remaining != 1497 || state.Mode != entry.ModeWork {
		t.Errorf("State() after pause = %+v", state)
	}

	if running := m.Toggle(); !running {
		t.Error("Toggle() from idle should start")
	}
	if running := m.Toggle(); running {
		t.Error("Toggle() while running should pause")
	}
}

func TestStaleTicksIgnored(t *testing.T) {
	m, _, sched := setupMachine(t)

	m.Start()
	m.Pause()
	sched.fire(10) // callback from the cancelled run

	if got := m.State().Remaining; got != 1500 {
		t.Errorf("stale ticks changed remaining to %d", got)
	}

	m.Start()
	m.Pause()
	m.Start()
	sched.fire(1)
	if got := m.State().Remaining; got != 1499 {
		t.Errorf("Remaining = %d, expected one tick from the live run", got)
	}
}

func TestTick_PersistsEveryTick(t *testing.T) {
	m, s, sched := setupMachine(t)
	m.Start()
	sched.fire(2)

	stored, ok := s.PomodoroState()
	if !ok || stored.Remaining != 1498 || !stored.IsRunning {
		t.Errorf("stored = %+v, %v", stored, ok)
	}
}

func TestTick_IdleIgnored(t *testing.T) {
	m, _, _ := setupMachine(t)
	m.Tick()
	if got := m.State().Remaining; got != 1500 {
		t.Errorf("idle tick changed remaining to %d", got)
	}
}

func TestComplete_WorkToBreak(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := NewMockNotifier(ctrl)
	notifier.EXPECT().Completed(entry.ModeWork, entry.ModeBreak).Times(1)

	m, s, sched := setupMachine(t, WithNotifier(notifier))
	settings := entry.DefaultSettings()
	settings.BreakDuration = 7
	if err := s.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	m.Adjust(-1500) // clamps to 60
	m.Start()
	sched.fire(60) // down to zero
	if got := m.State(); got.Remaining != 0 || !got.IsRunning {
		t.Fatalf("State() = %+v, expected running at zero", got)
	}

	sched.fire(1) // completes
	state := m.State()
	if state.Mode != entry.ModeBreak || state.Remaining != 420 || state.IsRunning {
		t.Errorf("State() after completion = %+v, expected idle break 420", state)
	}
	if sched.active() != 0 {
		t.Error("completion must cancel the scheduled tick")
	}
	if stored, _ := s.PomodoroState(); stored != state {
		t.Errorf("stored = %+v, expected %+v", stored, state)
	}
}

func TestComplete_BreakToWorkUsesSettingsAtCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := NewMockNotifier(ctrl)
	notifier.EXPECT().Completed(entry.ModeBreak, entry.ModeWork)

	s := store.New(t.TempDir(), nil)
	if err := s.SavePomodoroState(entry.PomodoroState{Remaining: 0, Mode: entry.ModeBreak}); err != nil {
		t.Fatal(err)
	}
	sched := &fakeScheduler{}
	m := New(s, WithScheduler(sched), WithNotifier(notifier))
	defer m.Close()

	settings := entry.DefaultSettings()
	settings.PomoDuration = 50
	if err := s.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	m.Start()
	sched.fire(1)
	if got := m.State(); got.Mode != entry.ModeWork || got.Remaining != 3000 {
		t.Errorf("State() = %+v, expected work 3000", got)
	}
}

func TestComplete_ZeroDurationsFallBack(t *testing.T) {
	m, s, sched := setupMachine(t)
	if err := s.SetItem(store.KeySettings, map[string]any{"pomoDuration": 0, "breakDuration": 0}); err != nil {
		t.Fatal(err)
	}

	m.Adjust(-10000)
	m.Start()
	sched.fire(61)
	if got := m.State(); got.Mode != entry.ModeBreak || got.Remaining != 300 {
		t.Errorf("State() = %+v, expected break 300", got)
	}
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		delta    int
		expected int
	}{
		{name: "plus", start: 1500, delta: 60, expected: 1560},
		{name: "minus", start: 1500, delta: -60, expected: 1440},
		{name: "ceiling", start: 3600, delta: 60, expected: 3600},
		{name: "floor", start: 60, delta: -60, expected: 60},
		{name: "below floor lifts", start: 30, delta: 0, expected: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New(t.TempDir(), nil)
			if err := s.SavePomodoroState(entry.PomodoroState{Remaining: tt.start, Mode: entry.ModeWork}); err != nil {
				t.Fatal(err)
			}
			m := New(s, WithScheduler(&fakeScheduler{}))
			defer m.Close()

			if !m.Adjust(tt.delta) {
				t.Fatal("Adjust() should apply while idle")
			}
			if got := m.State().Remaining; got != tt.expected {
				t.Errorf("Remaining = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestAdjust_IgnoredWhileRunning(t *testing.T) {
	m, _, _ := setupMachine(t)
	m.Start()

	if m.Adjust(AdjustStep) {
		t.Error("Adjust() should report not applied while running")
	}
	if got := m.State().Remaining; got != 1500 {
		t.Errorf("Remaining = %d, expected unchanged", got)
	}
}

func TestReset(t *testing.T) {
	m, s, sched := setupMachine(t)
	if err := s.SavePomodoroState(entry.PomodoroState{Remaining: 100, Mode: entry.ModeBreak}); err != nil {
		t.Fatal(err)
	}
	m.Restore()
	m.Start()

	m.Reset()
	state := m.State()
	if state != (entry.PomodoroState{Remaining: 1500, Mode: entry.ModeWork}) {
		t.Errorf("State() after reset = %+v", state)
	}
	if sched.active() != 0 {
		t.Error("reset must cancel the running countdown")
	}
	if stored, _ := s.PomodoroState(); stored != state {
		t.Errorf("reset should persist, stored %+v", stored)
	}
}

func TestOnChange(t *testing.T) {
	m, _, sched := setupMachine(t)

	var seen []entry.PomodoroState
	m.OnChange(func(s entry.PomodoroState) { seen = append(seen, s) })

	m.Start()
	sched.fire(1)
	m.Pause()

	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	if !seen[0].IsRunning || seen[1].Remaining != 1499 || seen[2].IsRunning {
		t.Errorf("unexpected notifications %+v", seen)
	}
}

func TestTickerScheduler(t *testing.T) {
	ticks := make(chan struct{}, 10)
	cancel := TickerScheduler{}.Every(time.Millisecond, func() { ticks <- struct{}{} })

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("expected a tick")
	}
	cancel()
	cancel() // safe to call twice
}

func TestBellNotifier(t *testing.T) {
	var buf bytes.Buffer
	BellNotifier{W: &buf}.Completed(entry.ModeWork, entry.ModeBreak)
	if buf.String() != "\a" {
		t.Errorf("expected BEL, got %q", buf.String())
	}
}

func TestMultiNotifier(t *testing.T) {
	var calls []entry.Mode
	n := MultiNotifier{
		NotifierFunc(func(_, next entry.Mode) { calls = append(calls, next) }),
		NopNotifier{},
		NotifierFunc(func(finished, _ entry.Mode) { calls = append(calls, finished) }),
	}
	n.Completed(entry.ModeBreak, entry.ModeWork)
	if len(calls) != 2 || calls[0] != entry.ModeWork || calls[1] != entry.ModeBreak {
		t.Errorf("calls = %v", calls)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{1500, "25:00"},
		{3599, "59:59"},
		{3600, "60:00"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.expected {
			t.Errorf("FormatTime(%d) = %q, expected %q", tt.seconds, got, tt.expected)
		}
	}
}
