package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/truflow/internal/config"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/pomodoro"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/tui/ui"
)

// manualScheduler hands the tick callback to the test.
type manualScheduler struct {
	mu sync.Mutex
	fn func()
}

func (m *manualScheduler) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	return func() {}
}

func (m *manualScheduler) tick(n int) {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	for i := 0; i < n; i++ {
		fn()
	}
}

func setupTestServices(t *testing.T) (*service.Services, *manualScheduler) {
	t.Helper()
	tmpDir := t.TempDir()
	sched := &manualScheduler{}
	services := service.NewServicesWithPaths(tmpDir, filepath.Join(tmpDir, "config.toml"), config.DefaultConfig(), nil,
		pomodoro.WithScheduler(sched))
	services.SetClock(func() time.Time {
		return time.Date(2024, time.January, 17, 10, 0, 0, 0, time.Local)
	})
	if err := services.Store.InitDefaults(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = services.Close() })
	return services, sched
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNew(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	if model.activeTab != TabPomodoro {
		t.Errorf("expected initial tab to be Pomodoro, got %d", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
	if model.themeProvider.CurrentName() != ui.DefaultTheme {
		t.Errorf("expected theme %q, got %q", ui.DefaultTheme, model.themeProvider.CurrentName())
	}
}

func TestInit(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	if cmd := model.Init(); cmd == nil {
		t.Error("expected Init to return a command")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m := newModel.(Model)

	if m.width != 100 {
		t.Errorf("expected width 100, got %d", m.width)
	}
	if m.height != 50 {
		t.Errorf("expected height 50, got %d", m.height)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	_, cmd := model.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUpdate_HelpKey(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	newModel, _ := model.Update(keyRune('?'))
	m := newModel.(Model)
	if !m.showHelp {
		t.Error("expected showHelp to be true after pressing ?")
	}

	newModel, _ = m.Update(keyRune('?'))
	m = newModel.(Model)
	if m.showHelp {
		t.Error("expected showHelp to be false after pressing ? again")
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	services, _ := setupTestServices(t)
	var model tea.Model = New(services)

	want := []Tab{TabTracker, TabWeek, TabBoard, TabTodo, TabSettings, TabPomodoro}
	for _, tab := range want {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
		if got := model.(Model).activeTab; got != tab {
			t.Fatalf("expected tab %d, got %d", tab, got)
		}
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := model.(Model).activeTab; got != TabSettings {
		t.Errorf("expected shift+tab to wrap to Settings, got %d", got)
	}
}

func TestUpdate_NumberKeys(t *testing.T) {
	tests := []struct {
		key  rune
		want Tab
	}{
		{'1', TabPomodoro},
		{'2', TabTracker},
		{'3', TabWeek},
		{'4', TabBoard},
		{'5', TabTodo},
		{'6', TabSettings},
	}

	services, _ := setupTestServices(t)
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			model := New(services)
			model.activeTab = TabSettings
			newModel, cmd := model.Update(keyRune(tt.key))
			if got := newModel.(Model).activeTab; got != tt.want {
				t.Errorf("expected tab %d, got %d", tt.want, got)
			}
			if tt.want != TabPomodoro && cmd == nil {
				t.Error("expected a reload command")
			}
		})
	}
}

func TestUpdate_InputModeBlocksGlobalKeys(t *testing.T) {
	services, _ := setupTestServices(t)
	var model tea.Model = New(services)

	model, _ = model.Update(keyRune('5'))
	model, _ = model.Update(keyRune('n'))
	if !model.(Model).isInputMode() {
		t.Fatal("expected the to-do form to be open")
	}

	// q and digits are typed into the form
	model, cmd := model.Update(keyRune('q'))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q must not quit while typing")
		}
	}
	model, _ = model.Update(keyRune('1'))
	if model.(Model).activeTab != TabTodo {
		t.Error("expected to stay on the to-do tab while typing")
	}

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected ctrl+c to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from ctrl+c")
	}
}

func TestUpdate_PomodoroKeys(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	newModel, _ := model.Update(keyRune(' '))
	m := newModel.(Model)
	if !services.Pomodoro.State().IsRunning {
		t.Fatal("expected space to start the Pomodoro")
	}
	if !m.pomodoroView.State().IsRunning {
		t.Error("expected the view to show the running state")
	}

	newModel, _ = m.Update(keyRune(' '))
	if services.Pomodoro.State().IsRunning {
		t.Error("expected space to pause the Pomodoro")
	}
	_ = newModel
}

func TestSubscribe_StateChanges(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)
	unsubscribe := model.Subscribe()
	defer unsubscribe()

	services.Pomodoro.Start()

	msg := model.waitForChange()()
	state, ok := msg.(ui.PomodoroStateMsg)
	if !ok {
		t.Fatalf("expected PomodoroStateMsg, got %T", msg)
	}
	if !state.State.IsRunning {
		t.Error("expected running state")
	}

	newModel, cmd := model.Update(state)
	if !newModel.(Model).pomodoroView.State().IsRunning {
		t.Error("expected the view to receive the state")
	}
	if cmd == nil {
		t.Error("expected the model to keep waiting for changes")
	}
}

func TestSubscribe_Completion(t *testing.T) {
	services, sched := setupTestServices(t)
	model := New(services)
	unsubscribe := model.Subscribe()
	defer unsubscribe()

	// shrink to one minute, then run it out
	for i := 0; i < 24; i++ {
		services.Pomodoro.Minus()
	}
	services.Pomodoro.Start()
	sched.tick(61)

	msg := model.waitForCompletion()()
	done, ok := msg.(ui.PomodoroCompletedMsg)
	if !ok {
		t.Fatalf("expected PomodoroCompletedMsg, got %T", msg)
	}
	if done.Finished != entry.ModeWork || done.Next != entry.ModeBreak {
		t.Errorf("expected work -> break, got %s -> %s", done.Finished, done.Next)
	}
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)
	model.Subscribe()()

	services.Pomodoro.Start()
	select {
	case <-model.changes:
		t.Error("expected no change after unsubscribe")
	default:
	}
}

func TestUpdate_CompletionFlash(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)
	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	newModel, cmd := newModel.Update(ui.PomodoroCompletedMsg{Finished: entry.ModeWork, Next: entry.ModeBreak})
	m := newModel.(Model)
	if cmd == nil {
		t.Fatal("expected flash timer and completion waiter")
	}
	if !strings.Contains(m.View(), "time for a break") {
		t.Error("expected the completion text in the status bar")
	}

	// a stale timer leaves a newer flash alone
	newModel, _ = m.Update(flashDoneMsg{seq: m.flashSeq - 1})
	if newModel.(Model).flashText == "" {
		t.Error("expected stale flashDoneMsg to be ignored")
	}

	newModel, _ = m.Update(flashDoneMsg{seq: m.flashSeq})
	if newModel.(Model).flashText != "" {
		t.Error("expected flash text to clear")
	}
}

func TestUpdate_SyncStatus(t *testing.T) {
	tests := []struct {
		name   string
		msg    ui.SyncDoneMsg
		want   string
		failed bool
	}{
		{
			name: "push ok",
			msg:  ui.SyncDoneMsg{Result: service.SyncResult{Projects: 1, Tasks: 2, TimeLogs: 3}},
			want: "Push complete: 1 project, 2 tasks, 3 logs",
		},
		{
			name: "pull ok",
			msg:  ui.SyncDoneMsg{Pull: true, Result: service.SyncResult{Projects: 2, Tasks: 1}},
			want: "Pull complete: 2 projects, 1 task, 0 logs",
		},
		{
			name:   "failure",
			msg:    ui.SyncDoneMsg{Pull: true, Err: errors.New("No backup found")},
			want:   "Pull failed: No backup found",
			failed: true,
		},
	}

	services, _ := setupTestServices(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := New(services)
			newModel, cmd := model.Update(tt.msg)
			m := newModel.(Model)

			if m.syncStatus != tt.want {
				t.Errorf("expected status %q, got %q", tt.want, m.syncStatus)
			}
			if m.syncFailed != tt.failed {
				t.Errorf("expected failed=%v, got %v", tt.failed, m.syncFailed)
			}
			if cmd == nil {
				t.Fatal("expected a revert timer")
			}

			newModel, _ = m.Update(syncStatusDoneMsg{seq: m.syncSeq})
			if newModel.(Model).syncStatus != "" {
				t.Error("expected status to clear")
			}
		})
	}
}

func TestUpdate_ThemeChangeRequest(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	newModel, cmd := model.Update(ui.ThemeChangeRequestMsg{ThemeName: "nord"})
	m := newModel.(Model)

	if m.themeProvider.CurrentName() != "nord" {
		t.Errorf("expected theme nord, got %q", m.themeProvider.CurrentName())
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	cmd()

	if got := services.Config.Get().Theme; got != "nord" {
		t.Errorf("expected saved theme nord, got %q", got)
	}
	if !services.Config.Exists() {
		t.Error("expected the config file to be written")
	}
}

func TestUpdate_DataChangedReachesAllViews(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	_, cmd := model.Update(ui.DataChangedMsg{})
	if cmd == nil {
		t.Error("expected reload commands from the views")
	}
}

func TestView_Loading(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)

	if got := model.View(); got != "Loading..." {
		t.Errorf("expected Loading..., got %q", got)
	}
}

func TestView_Tabs(t *testing.T) {
	services, _ := setupTestServices(t)
	model := New(services)
	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 160, Height: 40})

	view := newModel.View()
	for _, name := range tabNames {
		if !strings.Contains(view, name) {
			t.Errorf("expected tab %q in view", name)
		}
	}
	if !strings.Contains(view, "25:00") {
		t.Error("expected the countdown in the tab bar")
	}
	if !strings.Contains(view, "Work Session") {
		t.Error("expected the Pomodoro view to render first")
	}
}

func TestView_HelpOverlay(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabPomodoro, "Pomodoro:"},
		{TabTracker, "Tracker:"},
		{TabWeek, "Week:"},
		{TabBoard, "Board:"},
		{TabTodo, "To-do:"},
		{TabSettings, "Settings:"},
	}

	services, _ := setupTestServices(t)
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			model := New(services)
			model.width = 100
			model.activeTab = tt.tab
			model.showHelp = true

			view := model.View()
			if !strings.Contains(view, "Keyboard Shortcuts") {
				t.Error("expected help title")
			}
			if !strings.Contains(view, tt.want) {
				t.Errorf("expected %q section", tt.want)
			}
		})
	}
}
