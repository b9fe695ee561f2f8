// Package tui provides the Terminal User Interface for the truflow dashboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/pomodoro"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/tui/ui"
	"github.com/xolan/truflow/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabPomodoro Tab = iota
	TabTracker
	TabWeek
	TabBoard
	TabTodo
	TabSettings
)

var tabNames = []string{"Pomodoro", "Tracker", "Week", "Board", "To-do", "Settings"}

// flashDuration is how long the countdown stays highlighted after an interval ends.
const flashDuration = 1500 * time.Millisecond

// flashDoneMsg clears the completion highlight unless a newer one started.
type flashDoneMsg struct{ seq int }

// syncStatusDoneMsg clears the sync status text unless a newer one started.
type syncStatusDoneMsg struct{ seq int }

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	pomodoroView views.PomodoroModel
	trackerView  views.TrackerModel
	weekView     views.WeekModel
	boardView    views.BoardModel
	todoView     views.TodoModel
	settingsView views.SettingsModel

	// Pomodoro events from the ticking goroutine
	changes     chan struct{}
	completions chan ui.PomodoroCompletedMsg

	flashSeq   int
	flashText  string
	syncSeq    int
	syncStatus string
	syncFailed bool

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	// Initialize theme from config
	themeName := services.Config.Get().Theme
	themeProvider := ui.NewThemeProvider(themeName)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabPomodoro,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		changes:       make(chan struct{}, 1),
		completions:   make(chan ui.PomodoroCompletedMsg, 4),
		pomodoroView:  views.NewPomodoroModel(services, styles, keys),
		trackerView:   views.NewTrackerModel(services, styles, keys),
		weekView:      views.NewWeekModel(services, styles, keys),
		boardView:     views.NewBoardModel(services, styles, keys),
		todoView:      views.NewTodoModel(services, styles, keys),
		settingsView:  views.NewSettingsModel(services, themeProvider, styles, keys),
	}
}

// Subscribe connects the model to Pomodoro state changes and completions.
// The returned func disconnects it.
func (m Model) Subscribe() (unsubscribe func()) {
	p := m.services.Pomodoro
	stopChanges := p.Subscribe(func(entry.PomodoroState) {
		// coalesce: the waiter re-reads the latest state
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	stopCompletions := p.AddNotifier(pomodoro.NotifierFunc(func(finished, next entry.Mode) {
		select {
		case m.completions <- ui.PomodoroCompletedMsg{Finished: finished, Next: next}:
		default:
		}
	}))
	return func() {
		stopChanges()
		stopCompletions()
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForChange(),
		m.waitForCompletion(),
		m.pomodoroView.Init(),
		m.trackerView.Init(),
		m.weekView.Init(),
		m.boardView.Init(),
		m.todoView.Init(),
		m.settingsView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Input modes block global keys so letters reach the text field
		if !m.isInputMode() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit

			case key.Matches(msg, m.keys.Help):
				m.showHelp = !m.showHelp
				return m, nil

			case key.Matches(msg, m.keys.NextTab):
				return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

			case key.Matches(msg, m.keys.PrevTab):
				return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

			case key.Matches(msg, m.keys.Tab1):
				return m.switchTab(TabPomodoro)
			case key.Matches(msg, m.keys.Tab2):
				return m.switchTab(TabTracker)
			case key.Matches(msg, m.keys.Tab3):
				return m.switchTab(TabWeek)
			case key.Matches(msg, m.keys.Tab4):
				return m.switchTab(TabBoard)
			case key.Matches(msg, m.keys.Tab5):
				return m.switchTab(TabTodo)
			case key.Matches(msg, m.keys.Tab6):
				return m.switchTab(TabSettings)
			}
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Update view dimensions
		contentHeight := m.height - 4 // Account for tabs and status bar
		m.pomodoroView.SetSize(m.width, contentHeight)
		m.trackerView.SetSize(m.width, contentHeight)
		m.weekView.SetSize(m.width, contentHeight)
		m.boardView.SetSize(m.width, contentHeight)
		m.todoView.SetSize(m.width, contentHeight)
		m.settingsView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.PomodoroStateMsg:
		m.pomodoroView, _ = m.pomodoroView.Update(msg)
		return m, m.waitForChange()

	case ui.PomodoroCompletedMsg:
		m.flashSeq++
		m.pomodoroView.SetFlash(true)
		if msg.Next == entry.ModeBreak {
			m.flashText = "Work session complete, time for a break"
		} else {
			m.flashText = "Break over, back to work"
		}
		seq := m.flashSeq
		return m, tea.Batch(
			m.waitForCompletion(),
			tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} }),
		)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.pomodoroView.SetFlash(false)
			m.flashText = ""
		}
		return m, nil

	case ui.SyncDoneMsg:
		m.syncSeq++
		m.syncFailed = msg.Err != nil
		m.syncStatus = syncStatusText(msg)
		seq := m.syncSeq
		cmds := []tea.Cmd{
			tea.Tick(service.SyncStatusDuration, func(time.Time) tea.Msg { return syncStatusDoneMsg{seq: seq} }),
		}
		if msg.Pull && msg.Err == nil {
			cmds = append(cmds, func() tea.Msg { return ui.DataChangedMsg{} })
		}
		return m, tea.Batch(cmds...)

	case syncStatusDoneMsg:
		if msg.seq == m.syncSeq {
			m.syncStatus = ""
			m.syncFailed = false
		}
		return m, nil

	case ui.ThemeChangeRequestMsg:
		// Handle theme change request
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()

		// Update styles
		m.styles = m.themeProvider.Styles()

		// Broadcast theme change to all views
		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m, _ = m.broadcast(themeMsg)

		// Save theme to config
		return m, m.saveThemeConfig(newTheme)
	}

	// Everything else goes to every view: loaded messages, ticks and
	// DataChangedMsg are addressed by type, not by tab.
	return m.broadcast(msg)
}

// updateActive passes msg to the active view only.
func (m Model) updateActive(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabPomodoro:
		m.pomodoroView, cmd = m.pomodoroView.Update(msg)
	case TabTracker:
		m.trackerView, cmd = m.trackerView.Update(msg)
	case TabWeek:
		m.weekView, cmd = m.weekView.Update(msg)
	case TabBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case TabTodo:
		m.todoView, cmd = m.todoView.Update(msg)
	case TabSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

// broadcast passes msg to every view.
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 6)
	m.pomodoroView, cmds[0] = m.pomodoroView.Update(msg)
	m.trackerView, cmds[1] = m.trackerView.Update(msg)
	m.weekView, cmds[2] = m.weekView.Update(msg)
	m.boardView, cmds[3] = m.boardView.Update(msg)
	m.todoView, cmds[4] = m.todoView.Update(msg)
	m.settingsView, cmds[5] = m.settingsView.Update(msg)
	return m, tea.Batch(cmds...)
}

// switchTab activates tab and refreshes its data
func (m Model) switchTab(tab Tab) (Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.initCurrentView()
}

// initCurrentView reloads the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabPomodoro:
		return m.pomodoroView.Init()
	case TabTracker:
		// Init would start a second tick loop
		return m.trackerView.Refresh()
	case TabWeek:
		return m.weekView.Init()
	case TabBoard:
		return m.boardView.Init()
	case TabTodo:
		return m.todoView.Init()
	case TabSettings:
		return m.settingsView.Init()
	}
	return nil
}

func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return ui.PomodoroStateMsg{State: m.services.Pomodoro.State()}
	}
}

func (m Model) waitForCompletion() tea.Cmd {
	return func() tea.Msg {
		return <-m.completions
	}
}

func syncStatusText(msg ui.SyncDoneMsg) string {
	verb := "Push"
	if msg.Pull {
		verb = "Pull"
	}
	if msg.Err != nil {
		return fmt.Sprintf("%s failed: %v", verb, msg.Err)
	}
	r := msg.Result
	return fmt.Sprintf("%s complete: %d %s, %d %s, %d %s", verb,
		r.Projects, cli.Pluralize("project", r.Projects),
		r.Tasks, cli.Pluralize("task", r.Tasks),
		r.TimeLogs, cli.Pluralize("log", r.TimeLogs))
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// Render tabs
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	// Render active view
	switch m.activeTab {
	case TabPomodoro:
		b.WriteString(m.pomodoroView.View())
	case TabTracker:
		b.WriteString(m.trackerView.View())
	case TabWeek:
		b.WriteString(m.weekView.View())
	case TabBoard:
		b.WriteString(m.boardView.View())
	case TabTodo:
		b.WriteString(m.todoView.View())
	case TabSettings:
		b.WriteString(m.settingsView.View())
	}

	// Render status bar
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	// Help overlay
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == TabPomodoro {
			// countdown stays visible from every tab
			label += " " + pomodoro.FormatTime(m.pomodoroView.State().Remaining)
		}
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	switch {
	case m.syncStatus != "" && m.syncFailed:
		parts = append(parts, m.styles.Error.Render(m.syncStatus))
	case m.syncStatus != "":
		parts = append(parts, m.styles.Success.Render(m.syncStatus))
	case m.flashText != "":
		parts = append(parts, m.styles.Warning.Render(m.flashText))
	}

	// Check if in input mode for context-specific hints
	if m.isInputMode() {
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		// View-specific keys
		switch m.activeTab {
		case TabPomodoro:
			parts = append(parts, m.renderKeyHelp("space", "start/pause"))
			parts = append(parts, m.renderKeyHelp("r", "reset"))
			parts = append(parts, m.renderKeyHelp("+/-", "adjust"))
		case TabTracker:
			parts = append(parts, m.renderKeyHelp("enter", "clock in"))
			parts = append(parts, m.renderKeyHelp("o", "clock out"))
			parts = append(parts, m.renderKeyHelp("a", "adjust start"))
		case TabWeek:
			parts = append(parts, m.renderKeyHelp("[/]", "week"))
		case TabBoard:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("</>", "move"))
			parts = append(parts, m.renderKeyHelp("enter", "details"))
		case TabTodo:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("x", "done"))
			parts = append(parts, m.renderKeyHelp("c", "clear done"))
		case TabSettings:
			parts = append(parts, m.renderKeyHelp("e", "edit"))
			parts = append(parts, m.renderKeyHelp("t", "themes"))
			parts = append(parts, m.renderKeyHelp("u/g", "push/pull"))
		}

		// Global keys
		parts = append(parts, m.renderKeyHelp("1-6", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	// Fill to width
	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isInputMode checks if the current view is capturing keyboard input
func (m Model) isInputMode() bool {
	switch m.activeTab {
	case TabTracker:
		return m.trackerView.IsInputMode()
	case TabBoard:
		return m.boardView.IsInputMode()
	case TabTodo:
		return m.todoView.IsInputMode()
	case TabSettings:
		return m.settingsView.IsInputMode()
	}
	return false
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.Theme = themeName
		if err := m.services.Config.Update(cfg); err != nil {
			m.services.Logger.Warn("failed to save theme", "theme", themeName, "error", err)
		}
		return nil
	}
}

// ActiveTab returns the tab currently shown.
func (m Model) ActiveTab() Tab {
	return m.activeTab
}

// renderHelpOverlay renders the keyboard shortcuts for the active tab
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	// Global keys
	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-6    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	// View-specific keys
	switch m.activeTab {
	case TabPomodoro:
		help.WriteString(m.styles.StatLabel.Render("Pomodoro:"))
		help.WriteString("\n")
		help.WriteString("  space/s    Start or pause\n")
		help.WriteString("  r          Reset to a work session\n")
		help.WriteString("  +/-        Add or remove a minute (paused only)\n")
	case TabTracker:
		help.WriteString(m.styles.StatLabel.Render("Tracker:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate buckets\n")
		help.WriteString("  Enter      Clock in to bucket\n")
		help.WriteString("  o          Clock out\n")
		help.WriteString("  a          Adjust start time\n")
		help.WriteString("  r          Refresh\n")
	case TabWeek:
		help.WriteString(m.styles.StatLabel.Render("Week:"))
		help.WriteString("\n")
		help.WriteString("  [/h        Previous week\n")
		help.WriteString("  ]/l        Next week\n")
		help.WriteString("  r          Refresh\n")
	case TabBoard:
		help.WriteString(m.styles.StatLabel.Render("Board:"))
		help.WriteString("\n")
		help.WriteString("  h/l        Switch column\n")
		help.WriteString("  j/k        Navigate cards\n")
		help.WriteString("  </>        Move card\n")
		help.WriteString("  p          Cycle priority\n")
		help.WriteString("  n          New card\n")
		help.WriteString("  d          Delete card\n")
		help.WriteString("  Enter      Card details and checklist\n")
	case TabTodo:
		help.WriteString(m.styles.StatLabel.Render("To-do:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate tasks\n")
		help.WriteString("  x/space    Toggle done\n")
		help.WriteString("  p          Cycle priority\n")
		help.WriteString("  n          New task\n")
		help.WriteString("  e          Edit task\n")
		help.WriteString("  d          Delete task\n")
		help.WriteString("  c          Clear completed\n")
	case TabSettings:
		help.WriteString(m.styles.StatLabel.Render("Settings:"))
		help.WriteString("\n")
		help.WriteString("  e          Edit durations and sync URL\n")
		help.WriteString("  t          Open theme selector\n")
		help.WriteString("  u          Push backup\n")
		help.WriteString("  g          Pull backup\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	model := New(services)
	unsubscribe := model.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
