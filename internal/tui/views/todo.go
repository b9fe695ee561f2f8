package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/tui/ui"
)

type todoMode int

const (
	todoModeNormal todoMode = iota
	todoModeAdd
	todoModeEdit
)

// TodoModel is the model for the to-do view
type TodoModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width      int
	height     int
	categories service.Categories
	tasks      []entry.Task // overdue, active, done in display order
	today      string
	cursor     int
	err        error

	mode         todoMode
	textInput    textinput.Model
	dueInput     textinput.Model
	focusedInput int // 0 = text, 1 = due
	editID       string
}

// NewTodoModel creates a new to-do view model
func NewTodoModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TodoModel {
	textInput := textinput.New()
	textInput.Placeholder = "What needs doing..."
	textInput.CharLimit = 200
	textInput.Width = 50

	dueInput := textinput.New()
	dueInput.Placeholder = "Due date (YYYY-MM-DD, optional)"
	dueInput.CharLimit = 10
	dueInput.Width = 34

	return TodoModel{
		services:  services,
		styles:    styles,
		keys:      keys,
		textInput: textInput,
		dueInput:  dueInput,
	}
}

// todoLoadedMsg is sent when tasks are loaded
type todoLoadedMsg struct {
	categories service.Categories
	today      string
	err        error
}

// Init implements tea.Model
func (m TodoModel) Init() tea.Cmd {
	return m.load(nil)
}

// Update implements tea.Model
func (m TodoModel) Update(msg tea.Msg) (TodoModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != todoModeNormal {
			return m.handleInputMode(msg)
		}

		task := m.selected()
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = clampCursor(m.cursor-1, len(m.tasks))
		case key.Matches(msg, m.keys.Down):
			m.cursor = clampCursor(m.cursor+1, len(m.tasks))
		case key.Matches(msg, m.keys.Toggle):
			if task != nil {
				return m, m.setDone(task.ID, !task.Done)
			}
		case key.Matches(msg, m.keys.Priority):
			if task != nil {
				p := nextPriority(task.Priority)
				return m, m.edit(task.ID, service.TaskInput{Priority: &p})
			}
		case key.Matches(msg, m.keys.New):
			m.mode = todoModeAdd
			m.editID = ""
			return m, m.openForm("", "")
		case key.Matches(msg, m.keys.Edit):
			if task != nil {
				m.mode = todoModeEdit
				m.editID = task.ID
				return m, m.openForm(task.Text, task.Due())
			}
		case key.Matches(msg, m.keys.Delete):
			if task != nil {
				return m, m.delete(task.ID)
			}
		case key.Matches(msg, m.keys.ClearDone):
			return m, m.clearDone()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(nil)
		}
		return m, nil

	case todoLoadedMsg:
		m.err = msg.err
		m.categories = msg.categories
		m.today = msg.today
		c := msg.categories
		m.tasks = make([]entry.Task, 0, len(c.Overdue)+len(c.Active)+len(c.Done))
		m.tasks = append(m.tasks, c.Overdue...)
		m.tasks = append(m.tasks, c.Active...)
		m.tasks = append(m.tasks, c.Done...)
		m.cursor = clampCursor(m.cursor, len(m.tasks))
		return m, nil

	case ui.DataChangedMsg:
		return m, m.load(nil)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode != todoModeNormal {
		var cmd tea.Cmd
		if m.focusedInput == 0 {
			m.textInput, cmd = m.textInput.Update(msg)
		} else {
			m.dueInput, cmd = m.dueInput.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *TodoModel) openForm(text, due string) tea.Cmd {
	m.textInput.SetValue(text)
	m.dueInput.SetValue(due)
	m.focusedInput = 0
	m.dueInput.Blur()
	m.textInput.Focus()
	return textinput.Blink
}

// handleInputMode handles key events when in add/edit mode
func (m TodoModel) handleInputMode(msg tea.KeyMsg) (TodoModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		text := strings.TrimSpace(m.textInput.Value())
		due := strings.TrimSpace(m.dueInput.Value())
		if text == "" {
			return m, nil
		}
		m.textInput.Blur()
		m.dueInput.Blur()
		mode := m.mode
		m.mode = todoModeNormal
		if mode == todoModeAdd {
			return m, m.add(text, due)
		}
		return m, m.edit(m.editID, service.TaskInput{Text: &text, Due: &due})
	case key.Matches(msg, m.keys.Back):
		m.mode = todoModeNormal
		m.textInput.Blur()
		m.dueInput.Blur()
		return m, nil
	case msg.String() == "tab":
		if m.focusedInput == 0 {
			m.focusedInput = 1
			m.textInput.Blur()
			m.dueInput.Focus()
		} else {
			m.focusedInput = 0
			m.dueInput.Blur()
			m.textInput.Focus()
		}
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	if m.focusedInput == 0 {
		m.textInput, cmd = m.textInput.Update(msg)
	} else {
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m TodoModel) View() string {
	var b strings.Builder

	if m.mode != todoModeNormal {
		title := "New Task"
		if m.mode == todoModeEdit {
			title = "Edit Task"
		}
		b.WriteString(m.styles.ViewTitle.Render(title))
		b.WriteString("\n\n")
		b.WriteString(m.renderForm())
		return b.String()
	}

	c := m.categories
	b.WriteString(m.styles.ViewTitle.Render(fmt.Sprintf("To-do (%d active, %d done)",
		len(c.Overdue)+len(c.Active), len(c.Done))))
	b.WriteString("\n\n")
	b.WriteString(renderError(m.styles, m.err))

	if len(m.tasks) == 0 {
		b.WriteString(m.styles.ItemMeta.Render("No tasks yet"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.ItemMeta.Render("Press 'n' to add a task"))
		return b.String()
	}

	i := 0
	section := func(title string, tasks []entry.Task, style func(string) string) {
		if len(tasks) == 0 {
			return
		}
		b.WriteString(style(fmt.Sprintf("%s (%d)", title, len(tasks))))
		b.WriteString("\n")
		for _, t := range tasks {
			b.WriteString(renderLine(m.styles, m.renderTask(t), i == m.cursor))
			i++
		}
		b.WriteString("\n")
	}
	section("Overdue", c.Overdue, func(s string) string { return m.styles.Error.Bold(true).Render(s) })
	section("Active", c.Active, func(s string) string { return m.styles.ColumnTitle.Render(s) })
	section("Done", c.Done, func(s string) string { return m.styles.ItemMeta.Render(s) })

	return b.String()
}

func (m TodoModel) renderTask(t entry.Task) string {
	check := "[ ]"
	text := t.Text
	if t.Done {
		check = "[x]"
		text = m.styles.ItemDone.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", check, renderPriority(m.styles, t.Priority), text)
	if due := t.Due(); due != "" {
		dueText := "due " + due
		if t.IsOverdue(m.today) {
			line += " " + m.styles.Error.Render(dueText)
		} else {
			line += " " + m.styles.ItemTime.Render(dueText)
		}
	}
	if t.Notes != nil {
		line += " " + m.styles.ItemMeta.Render("("+cli.Truncate(*t.Notes, 30)+")")
	}
	return line
}

func (m TodoModel) renderForm() string {
	var b strings.Builder

	textLabel := "Task:"
	if m.focusedInput == 0 {
		textLabel = "▸ Task:"
	}
	b.WriteString(m.styles.StatLabel.Render(textLabel))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	dueLabel := "Due:"
	if m.focusedInput == 1 {
		dueLabel = "▸ Due:"
	}
	b.WriteString(m.styles.StatLabel.Render(dueLabel))
	b.WriteString("\n")
	b.WriteString(m.dueInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.ItemMeta.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *TodoModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m TodoModel) IsInputMode() bool {
	return m.mode != todoModeNormal
}

func (m TodoModel) selected() *entry.Task {
	if m.cursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.cursor]
}

func (m TodoModel) reload(err error) tea.Msg {
	t := m.services.Todo
	return todoLoadedMsg{categories: t.Categorized(), today: t.Today(), err: err}
}

func (m TodoModel) load(err error) tea.Cmd {
	return func() tea.Msg {
		return m.reload(err)
	}
}

func (m TodoModel) add(text, due string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Todo.Add(text, entry.PriorityNone, due)
		return m.reload(err)
	}
}

func (m TodoModel) edit(id string, in service.TaskInput) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Todo.Edit(id, in)
		return m.reload(err)
	}
}

func (m TodoModel) setDone(id string, done bool) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Todo.SetDone(id, done)
		return m.reload(err)
	}
}

func (m TodoModel) delete(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Todo.Delete(id)
		return m.reload(err)
	}
}

func (m TodoModel) clearDone() tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Todo.ClearCompleted()
		return m.reload(err)
	}
}
