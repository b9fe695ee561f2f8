// Package pomodoro implements the work/break countdown state machine.
//
// The machine is Idle or Running in either work or break mode. Completion of
// a running interval is instantaneous: it flips the mode and returns to Idle
// with the new mode's configured duration. Every transition, including each
// tick, persists (remaining, isRunning, mode). Restoring never resumes a
// running countdown.
package pomodoro

import (
	"fmt"
	"sync"
	"time"

	"github.com/xolan/truflow/internal/entry"
)

//go:generate mockgen -source=notify.go -destination=mock_notifier_test.go -package=pomodoro

// Adjustment bounds for remaining time, in seconds.
const (
	MinRemaining = 60
	MaxRemaining = 3600
	AdjustStep   = 60
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Store persists the Pomodoro triple and supplies the configured durations.
type Store interface {
	PomodoroState() (entry.PomodoroState, bool)
	SavePomodoroState(entry.PomodoroState) error
	Settings() entry.Settings
}

// Machine is the Pomodoro state machine. It is safe for concurrent use.
type Machine struct {
	mu        sync.Mutex
	store     Store
	scheduler Scheduler
	notifier  Notifier

	state  entry.PomodoroState
	cancel func()
	gen    uint64

	observers []func(entry.PomodoroState)
}

// Option configures a Machine.
type Option func(*Machine)

// WithScheduler replaces the ticker-based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) { m.scheduler = s }
}

// WithNotifier sets the completion notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Machine) { m.notifier = n }
}

// New returns a machine restored from store.
func New(store Store, opts ...Option) *Machine {
	m := &Machine{
		store:     store,
		scheduler: TickerScheduler{},
		notifier:  NopNotifier{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Restore()
	return m
}

// OnChange registers fn to be called after every state change.
func (m *Machine) OnChange(fn func(entry.PomodoroState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// State returns the current triple.
func (m *Machine) State() entry.PomodoroState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Restore loads the stored state with isRunning forced to false, or resets
// to the work defaults when nothing valid is stored. A running countdown is
// stopped first.
func (m *Machine) Restore() {
	m.mu.Lock()
	m.stopLocked()
	saved, ok := m.store.PomodoroState()
	if ok {
		m.state = entry.PomodoroState{Remaining: saved.Remaining, Mode: saved.Mode}
	} else {
		m.resetLocked()
	}
	m.unlockAndNotify()
}

// Start begins the countdown. It returns false if already running.
func (m *Machine) Start() bool {
	m.mu.Lock()
	if m.state.IsRunning {
		m.mu.Unlock()
		return false
	}
	m.state.IsRunning = true
	m.gen++
	gen := m.gen
	m.cancel = m.scheduler.Every(TickInterval, func() { m.tick(gen) })
	m.saveLocked()
	m.unlockAndNotify()
	return true
}

// Pause stops the countdown, keeping mode and remaining time.
// It returns false if the timer was not running.
func (m *Machine) Pause() bool {
	m.mu.Lock()
	if !m.state.IsRunning {
		m.mu.Unlock()
		return false
	}
	m.stopLocked()
	m.saveLocked()
	m.unlockAndNotify()
	return true
}

// Toggle pauses a running timer or starts an idle one. It reports whether
// the timer is running afterwards.
func (m *Machine) Toggle() bool {
	if m.Pause() {
		return false
	}
	m.Start()
	return true
}

// Tick advances a running countdown by one second, completing the interval
// once remaining time has reached zero. Ticks while idle are ignored.
func (m *Machine) Tick() {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()
	m.tick(gen)
}

func (m *Machine) tick(gen uint64) {
	m.mu.Lock()
	if !m.state.IsRunning || gen != m.gen {
		m.mu.Unlock()
		return
	}
	if m.state.Remaining <= 0 {
		m.completeLocked()
		return
	}
	m.state.Remaining--
	m.saveLocked()
	m.unlockAndNotify()
}

// completeLocked flips the mode and loads the new mode's duration from
// settings. It releases the lock.
func (m *Machine) completeLocked() {
	m.stopLocked()
	finished := m.state.Mode
	next := finished.Opposite()

	settings := m.store.Settings()
	m.state.Mode = next
	if next == entry.ModeBreak {
		m.state.Remaining = settings.BreakSeconds()
	} else {
		m.state.Remaining = settings.WorkSeconds()
	}
	m.saveLocked()

	notifier := m.notifier
	m.unlockAndNotify()
	notifier.Completed(finished, next)
}

// Adjust changes idle remaining time by delta seconds, clamped to
// [MinRemaining, MaxRemaining]. It is silently ignored while running and
// reports whether it was applied.
func (m *Machine) Adjust(delta int) bool {
	m.mu.Lock()
	if m.state.IsRunning {
		m.mu.Unlock()
		return false
	}
	m.state.Remaining = min(MaxRemaining, max(MinRemaining, m.state.Remaining+delta))
	m.saveLocked()
	m.unlockAndNotify()
	return true
}

// Reset stops any countdown and returns to an idle work interval of the
// configured length.
func (m *Machine) Reset() {
	m.mu.Lock()
	m.stopLocked()
	m.resetLocked()
	m.saveLocked()
	m.unlockAndNotify()
}

// Close stops the countdown without persisting.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
}

func (m *Machine) stopLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
	m.state.IsRunning = false
}

func (m *Machine) resetLocked() {
	m.state = entry.PomodoroState{
		Remaining: m.store.Settings().WorkSeconds(),
		Mode:      entry.ModeWork,
	}
}

func (m *Machine) saveLocked() {
	// the store logs write failures
	_ = m.store.SavePomodoroState(m.state)
}

// unlockAndNotify releases the lock, then calls observers with the new state.
func (m *Machine) unlockAndNotify() {
	state := m.state
	observers := append([]func(entry.PomodoroState){}, m.observers...)
	m.mu.Unlock()
	for _, fn := range observers {
		fn(state)
	}
}

// FormatTime renders seconds as MM:SS.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ModeLabel is the status line shown for a mode.
func ModeLabel(mode entry.Mode) string {
	if mode == entry.ModeBreak {
		return "Break"
	}
	return "Work Session"
}
