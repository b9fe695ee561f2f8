package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/tui/ui"
)

// Settings form fields
const (
	fieldPomo = iota
	fieldBreak
	fieldSyncURL
	fieldCount
)

// SettingsModel edits the persisted settings, picks the theme and runs
// backup push and pull.
type SettingsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width    int
	height   int
	path     string
	exists   bool
	settings entry.Settings
	err      error
	picker   themePicker

	// form
	editing bool
	inputs  [fieldCount]textinput.Model
	focused int
}

func NewSettingsModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) SettingsModel {
	m := SettingsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		picker:   newThemePicker(themeProvider.AvailableThemes(), themeProvider.CurrentName()),
	}

	placeholders := [fieldCount]string{"25", "5", "https://example.com/backup"}
	limits := [fieldCount]int{2, 2, 300}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		m.inputs[i] = ti
	}
	return m
}

type settingsLoadedMsg struct {
	path     string
	exists   bool
	settings entry.Settings
	err      error
}

func (m SettingsModel) Init() tea.Cmd {
	return m.load(nil)
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picker.open {
			return m.handlePicker(msg)
		}
		if m.editing {
			return m.handleForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Theme):
			m.picker.show()
		case key.Matches(msg, m.keys.Edit):
			return m, m.openForm()
		case key.Matches(msg, m.keys.Push):
			return m, m.sync(false)
		case key.Matches(msg, m.keys.Pull):
			return m, m.sync(true)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(nil)
		}
		return m, nil

	case settingsLoadedMsg:
		m.path = msg.path
		m.exists = msg.exists
		m.settings = msg.settings
		m.err = msg.err
		return m, nil

	case ui.DataChangedMsg:
		return m, m.load(nil)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.picker.setCurrent(msg.ThemeName)
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SettingsModel) handlePicker(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.picker.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.picker.move(1)
	case key.Matches(msg, m.keys.Select):
		if name, ok := m.picker.choose(); ok {
			return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: name} }
		}
	case key.Matches(msg, m.keys.Back):
		m.picker.cancel()
	}
	return m, nil
}

func (m *SettingsModel) openForm() tea.Cmd {
	values := [fieldCount]string{
		strconv.Itoa(m.settings.WorkSeconds() / 60),
		strconv.Itoa(m.settings.BreakSeconds() / 60),
		m.settings.SyncURL,
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.editing = true
	m.focused = fieldPomo
	m.inputs[m.focused].Focus()
	return textinput.Blink
}

func (m SettingsModel) handleForm(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		update, err := m.formUpdate()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.editing = false
		m.inputs[m.focused].Blur()
		return m, m.apply(update)
	case key.Matches(msg, m.keys.Back):
		m.editing = false
		m.inputs[m.focused].Blur()
		m.err = nil
		return m, nil
	case msg.String() == "tab", msg.String() == "shift+tab":
		m.inputs[m.focused].Blur()
		step := 1
		if msg.String() == "shift+tab" {
			step = fieldCount - 1
		}
		m.focused = (m.focused + step) % fieldCount
		m.inputs[m.focused].Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// formUpdate converts the form into a settings update.
func (m SettingsModel) formUpdate() (service.SettingsUpdate, error) {
	pomo, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldPomo].Value()))
	if err != nil {
		return service.SettingsUpdate{}, fmt.Errorf("pomodoro minutes must be a number")
	}
	brk, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldBreak].Value()))
	if err != nil {
		return service.SettingsUpdate{}, fmt.Errorf("break minutes must be a number")
	}
	url := strings.TrimSpace(m.inputs[fieldSyncURL].Value())
	return service.SettingsUpdate{PomoDuration: &pomo, BreakDuration: &brk, SyncURL: &url}, nil
}

// View implements tea.Model
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(renderError(m.styles, m.err))

	if m.editing {
		b.WriteString(m.renderForm())
		return b.String()
	}

	s := m.settings
	b.WriteString(renderStat(m.styles, "Work minutes:", strconv.Itoa(s.WorkSeconds()/60)))
	b.WriteString(renderStat(m.styles, "Break minutes:", strconv.Itoa(s.BreakSeconds()/60)))
	b.WriteString(renderStat(m.styles, "Buckets:", listOrNone(s.Buckets)))
	b.WriteString(renderStat(m.styles, "Labels:", listOrNone(s.Labels)))
	b.WriteString(renderStat(m.styles, "Columns:", listOrNone(s.Columns())))
	sync := "disabled"
	if s.SyncURL != "" {
		sync = s.SyncURL
	}
	b.WriteString(renderStat(m.styles, "Sync URL:", sync))
	b.WriteString("\n")

	b.WriteString(rule(m.width))
	b.WriteString("\n\n")

	b.WriteString(renderStat(m.styles, "Config file:", m.path))
	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n")
	b.WriteString(renderStat(m.styles, "Data directory:", m.services.Store.Dir()))

	if m.picker.open {
		b.WriteString(m.picker.view(m.styles))
		return b.String()
	}
	b.WriteString(renderStat(m.styles, "Theme:", m.picker.current))
	b.WriteString("\n")
	b.WriteString(m.styles.ItemMeta.Render("e edit settings  t change theme  u push backup  g pull backup"))
	return b.String()
}

func (m SettingsModel) renderForm() string {
	var b strings.Builder
	labels := [fieldCount]string{"Work minutes:", "Break minutes:", "Sync URL:"}
	for i, label := range labels {
		if i == m.focused {
			label = "▸ " + label
		}
		b.WriteString(m.styles.StatLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.ItemMeta.Render(fmt.Sprintf(
		"Work %d-%d, break %d-%d minutes. Empty URL disables sync.",
		entry.MinPomoMinutes, entry.MaxPomoMinutes, entry.MinBreakMinutes, entry.MaxBreakMinutes)))
	b.WriteString("\n")
	b.WriteString(m.styles.ItemMeta.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	return b.String()
}

func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode reports whether the form or picker owns the keyboard.
func (m SettingsModel) IsInputMode() bool {
	return m.editing || m.picker.open
}

func (m SettingsModel) reload(err error) tea.Msg {
	return settingsLoadedMsg{
		path:     m.services.Config.Path(),
		exists:   m.services.Config.Exists(),
		settings: m.services.Settings.Get(),
		err:      err,
	}
}

func (m SettingsModel) load(err error) tea.Cmd {
	return func() tea.Msg {
		return m.reload(err)
	}
}

// apply saves the settings and tells the other views to reload.
func (m SettingsModel) apply(u service.SettingsUpdate) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.services.Settings.Apply(u); err != nil {
			return m.reload(err)
		}
		return ui.DataChangedMsg{}
	}
}

// sync pushes or pulls a backup. The client applies the configured timeout.
func (m SettingsModel) sync(pull bool) tea.Cmd {
	return func() tea.Msg {
		var (
			res service.SyncResult
			err error
		)
		if pull {
			res, err = m.services.Sync.Pull(context.Background())
		} else {
			res, err = m.services.Sync.Push(context.Background())
		}
		return ui.SyncDoneMsg{Pull: pull, Result: res, Err: err}
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
