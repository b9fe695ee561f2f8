package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/pomodoro"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/tui/ui"
)

// PomodoroModel is the model for the Pomodoro view
type PomodoroModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width    int
	height   int
	state    entry.PomodoroState
	flashing bool
	notice   string
}

// NewPomodoroModel creates a new Pomodoro view model
func NewPomodoroModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) PomodoroModel {
	return PomodoroModel{
		services: services,
		styles:   styles,
		keys:     keys,
		state:    services.Pomodoro.State(),
	}
}

// Init implements tea.Model
func (m PomodoroModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m PomodoroModel) Update(msg tea.Msg) (PomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		p := m.services.Pomodoro
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.StartPause):
			p.Toggle()
		case key.Matches(msg, m.keys.Reset):
			p.Reset()
		case key.Matches(msg, m.keys.Plus):
			if !p.Plus() {
				m.notice = "Pause the timer to adjust it"
			}
		case key.Matches(msg, m.keys.Minus):
			if !p.Minus() {
				m.notice = "Pause the timer to adjust it"
			}
		default:
			return m, nil
		}
		m.state = p.State()
		return m, nil

	case ui.PomodoroStateMsg:
		m.state = msg.State

	case ui.DataChangedMsg:
		m.state = m.services.Pomodoro.State()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

// View implements tea.Model
func (m PomodoroModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(pomodoro.ModeLabel(m.state.Mode)))
	b.WriteString("\n\n")

	clock := pomodoro.FormatTime(m.state.Remaining)
	if m.flashing {
		b.WriteString(m.styles.ClockFlash.Render(clock))
	} else {
		b.WriteString(m.styles.Countdown.Render(clock))
	}
	b.WriteString("\n\n")

	if m.state.IsRunning {
		b.WriteString(m.styles.ClockRunning.Render("● Running"))
	} else {
		b.WriteString(m.styles.ClockIdle.Render("○ Paused"))
	}
	b.WriteString("\n\n")

	settings := m.services.Settings.Get()
	b.WriteString(renderStat(m.styles, "Work:", durationMinutes(settings.WorkSeconds())))
	b.WriteString(renderStat(m.styles, "Break:", durationMinutes(settings.BreakSeconds())))

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(m.notice))
		b.WriteString("\n")
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *PomodoroModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFlash turns the completion highlight on or off.
func (m *PomodoroModel) SetFlash(on bool) {
	m.flashing = on
}

// State returns the last observed Pomodoro state.
func (m PomodoroModel) State() entry.PomodoroState {
	return m.state
}

func durationMinutes(seconds int) string {
	n := seconds / 60
	return fmt.Sprintf("%d %s", n, cli.Pluralize("minute", n))
}
