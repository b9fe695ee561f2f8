package service

import (
	"context"
	"sync"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/pomodoro"
	"github.com/xolan/truflow/internal/store"
)

// PomodoroService wraps the state machine and lets frontends subscribe to
// changes and completions after construction.
type PomodoroService struct {
	machine *pomodoro.Machine

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(entry.PomodoroState)
	notifiers map[int]pomodoro.Notifier
}

// NewPomodoroService restores the machine from st. Completion notifiers are
// registered with AddNotifier; a notifier passed in opts is replaced.
func NewPomodoroService(st *store.Store, opts ...pomodoro.Option) *PomodoroService {
	s := &PomodoroService{
		listeners: make(map[int]func(entry.PomodoroState)),
		notifiers: make(map[int]pomodoro.Notifier),
	}

	all := append(append([]pomodoro.Option{}, opts...), pomodoro.WithNotifier(pomodoro.NotifierFunc(s.completed)))
	s.machine = pomodoro.New(st, all...)
	s.machine.OnChange(s.changed)
	return s
}

// State returns the current triple.
func (s *PomodoroService) State() entry.PomodoroState {
	return s.machine.State()
}

// Start begins the countdown. It returns false if already running.
func (s *PomodoroService) Start() bool { return s.machine.Start() }

// Pause stops the countdown. It returns false if not running.
func (s *PomodoroService) Pause() bool { return s.machine.Pause() }

// Toggle starts or pauses and reports whether the timer now runs.
func (s *PomodoroService) Toggle() bool { return s.machine.Toggle() }

// Reset returns to an idle work interval.
func (s *PomodoroService) Reset() { s.machine.Reset() }

// Restore reloads state from the store without resuming.
func (s *PomodoroService) Restore() { s.machine.Restore() }

// Plus adds a minute while idle.
func (s *PomodoroService) Plus() bool { return s.machine.Adjust(pomodoro.AdjustStep) }

// Minus removes a minute while idle.
func (s *PomodoroService) Minus() bool { return s.machine.Adjust(-pomodoro.AdjustStep) }

// Close stops ticking without persisting.
func (s *PomodoroService) Close() { s.machine.Close() }

// Subscribe calls fn after every state change until the returned func is called.
func (s *PomodoroService) Subscribe(fn func(entry.PomodoroState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// AddNotifier registers n for completions until the returned func is called.
func (s *PomodoroService) AddNotifier(n pomodoro.Notifier) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.notifiers[id] = n
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.notifiers, id)
	}
}

// RunResult describes how a foreground countdown ended.
type RunResult struct {
	State     entry.PomodoroState
	Completed bool
	Finished  entry.Mode
}

// Run starts the countdown and blocks until the interval completes or ctx is
// done, in which case the timer is paused. onChange, if set, sees every tick.
func (s *PomodoroService) Run(ctx context.Context, onChange func(entry.PomodoroState)) RunResult {
	done := make(chan entry.Mode, 1)
	removeNotifier := s.AddNotifier(pomodoro.NotifierFunc(func(finished, _ entry.Mode) {
		select {
		case done <- finished:
		default:
		}
	}))
	defer removeNotifier()

	if onChange != nil {
		unsubscribe := s.Subscribe(onChange)
		defer unsubscribe()
	}

	s.machine.Start()

	select {
	case finished := <-done:
		return RunResult{State: s.machine.State(), Completed: true, Finished: finished}
	case <-ctx.Done():
		s.machine.Pause()
		return RunResult{State: s.machine.State()}
	}
}

func (s *PomodoroService) changed(state entry.PomodoroState) {
	s.mu.Lock()
	listeners := make([]func(entry.PomodoroState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (s *PomodoroService) completed(finished, next entry.Mode) {
	s.mu.Lock()
	notifiers := make([]pomodoro.Notifier, 0, len(s.notifiers))
	for _, n := range s.notifiers {
		notifiers = append(notifiers, n)
	}
	s.mu.Unlock()

	for _, n := range notifiers {
		n.Completed(finished, next)
	}
}
