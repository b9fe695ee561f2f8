package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/tui/ui"
)

// TrackerModel is the model for the time tracker view
type TrackerModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width   int
	height  int
	status  service.TrackerStatus
	buckets []service.BucketOption
	totals  map[entry.Bucket]int
	recent  []entry.TimeLogEntry
	cursor  int
	err     error

	// ticks carrying a tickSeq other than the current one are dropped
	ticking bool
	tickSeq int

	// Adjust-start input
	adjusting bool
	input     textinput.Model
}

// NewTrackerModel creates a new tracker view model
func NewTrackerModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TrackerModel {
	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.CharLimit = 5
	ti.Width = 8

	return TrackerModel{
		services: services,
		styles:   styles,
		keys:     keys,
		input:    ti,
	}
}

// trackerLoadedMsg carries a fresh snapshot of the tracker.
type trackerLoadedMsg struct {
	status  service.TrackerStatus
	buckets []service.BucketOption
	totals  map[entry.Bucket]int
	recent  []entry.TimeLogEntry
	err     error
}

// trackerTickMsg drives the live elapsed display while a session is open.
type trackerTickMsg struct {
	seq int
}

// Init implements tea.Model. Ticking starts once the load shows an open session.
func (m TrackerModel) Init() tea.Cmd {
	return m.Refresh()
}

// Update implements tea.Model
func (m TrackerModel) Update(msg tea.Msg) (TrackerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adjusting {
			return m.handleAdjust(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = clampCursor(m.cursor-1, len(m.buckets))
		case key.Matches(msg, m.keys.Down):
			m.cursor = clampCursor(m.cursor+1, len(m.buckets))
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.buckets) {
				return m, m.clockIn(m.buckets[m.cursor].Bucket)
			}
		case key.Matches(msg, m.keys.ClockOut):
			return m, m.clockOut()
		case key.Matches(msg, m.keys.AdjustStart):
			if m.status.Running {
				m.adjusting = true
				m.input.SetValue(m.status.Start.Local().Format("15:04"))
				m.input.Focus()
				return m, textinput.Blink
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.Refresh()
		}
		return m, nil

	case trackerLoadedMsg:
		m.err = msg.err
		m.status = msg.status
		m.buckets = msg.buckets
		m.totals = msg.totals
		m.recent = msg.recent
		m.cursor = clampCursor(m.cursor, len(m.buckets))
		return m.syncTicking()

	case trackerTickMsg:
		if !m.ticking || msg.seq != m.tickSeq {
			return m, nil
		}
		m.status = m.services.Tracker.Status()
		if !m.status.Running {
			m.ticking = false
			return m, nil
		}
		return m, m.tick()

	case ui.DataChangedMsg:
		return m, m.Refresh()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.adjusting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m TrackerModel) handleAdjust(msg tea.KeyMsg) (TrackerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		value := strings.TrimSpace(m.input.Value())
		m.adjusting = false
		m.input.Blur()
		return m, m.adjustStart(value)
	case key.Matches(msg, m.keys.Back):
		m.adjusting = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m TrackerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Time Tracker"))
	b.WriteString("\n\n")
	b.WriteString(renderError(m.styles, m.err))

	if m.status.Running {
		b.WriteString(m.styles.ClockRunning.Render("● Clocked in: " + m.status.Label))
		b.WriteString("\n\n")
		b.WriteString(renderStat(m.styles, "Started:", cli.FormatStartTime(m.status.Start, m.services.Now())))
		b.WriteString(renderStat(m.styles, "Elapsed:", stats.FormatElapsed(m.status.Elapsed)))
	} else {
		b.WriteString(m.styles.ClockIdle.Render("○ Not clocked in"))
		b.WriteString("\n")
	}

	if m.adjusting {
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("New start time:"))
		b.WriteString("\n")
		b.WriteString(m.styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n")
		b.WriteString(m.styles.ItemMeta.Render("Enter to save, Esc to cancel"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Buckets this week"))
	b.WriteString("\n")
	for i, opt := range m.buckets {
		line := fmt.Sprintf("%-24s %s", cli.Truncate(opt.Label, 24), m.styles.ItemTime.Render(stats.FormatHM(m.totals[opt.Bucket])))
		if m.status.Running && opt.Bucket == m.status.Bucket {
			line += " " + m.styles.ClockRunning.Render("●")
		}
		b.WriteString(renderLine(m.styles, line, i == m.cursor))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Recent"))
	b.WriteString("\n")
	if len(m.recent) == 0 {
		b.WriteString(m.styles.ItemMeta.Render("  No time logged yet"))
		b.WriteString("\n")
	}
	for _, log := range m.recent {
		b.WriteString("  ")
		b.WriteString(cli.FormatLog(log, m.services.Tracker.Label(log.Bucket)))
		b.WriteString("\n")
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *TrackerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m TrackerModel) IsInputMode() bool {
	return m.adjusting
}

// Refresh reloads the session, buckets and recent logs.
func (m TrackerModel) Refresh() tea.Cmd {
	return func() tea.Msg {
		return m.load(nil)
	}
}

func (m TrackerModel) load(err error) trackerLoadedMsg {
	t := m.services.Tracker
	return trackerLoadedMsg{
		status:  t.Status(),
		buckets: t.Buckets(),
		totals:  t.WeekTotals(),
		recent:  t.Recent(service.RecentLimit),
		err:     err,
	}
}

func (m TrackerModel) clockIn(b entry.Bucket) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Tracker.ClockIn(b.String())
		return m.load(err)
	}
}

func (m TrackerModel) clockOut() tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Tracker.ClockOut()
		return m.load(err)
	}
}

func (m TrackerModel) adjustStart(clock string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Tracker.AdjustStart(clock)
		return m.load(err)
	}
}

// syncTicking starts the tick loop when a session is open and stops it
// otherwise.
func (m TrackerModel) syncTicking() (TrackerModel, tea.Cmd) {
	if !m.status.Running {
		m.ticking = false
		return m, nil
	}
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	m.tickSeq++
	return m, m.tick()
}

// Ticking reports whether the live elapsed display is being refreshed.
func (m TrackerModel) Ticking() bool {
	return m.ticking
}

func (m TrackerModel) tick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return trackerTickMsg{seq: seq}
	})
}
