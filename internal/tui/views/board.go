package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/filter"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/tui/ui"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeAdd
	boardModeDelete
	boardModeDetail
	boardModeAddItem
)

// columnWidth is the rendered width of one board column including borders.
const columnWidth = 30

// BoardModel is the model for the kanban board view
type BoardModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	board  []service.ColumnCards
	col    int
	row    int
	item   int    // checklist cursor in detail mode
	focus  string // card to reselect after a move
	mode   boardMode
	input  textinput.Model
	err    error
}

// NewBoardModel creates a new board view model
func NewBoardModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) BoardModel {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40

	return BoardModel{
		services: services,
		styles:   styles,
		keys:     keys,
		input:    ti,
	}
}

// boardLoadedMsg is sent when the board is (re)loaded
type boardLoadedMsg struct {
	board []service.ColumnCards
	err   error
}

// Init implements tea.Model
func (m BoardModel) Init() tea.Cmd {
	return m.load(nil)
}

// Update implements tea.Model
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case boardModeAdd, boardModeAddItem:
			return m.handleInput(msg)
		case boardModeDelete:
			return m.handleDelete(msg)
		case boardModeDetail:
			return m.handleDetail(msg)
		}
		return m.handleNormal(msg)

	case boardLoadedMsg:
		m.err = msg.err
		m.board = msg.board
		m.refocus()
		m.col = clampCursor(m.col, len(m.board))
		m.row = clampCursor(m.row, len(m.cards()))
		if card := m.selected(); card != nil {
			m.item = clampCursor(m.item, len(card.Checklist))
		} else if m.mode == boardModeDetail {
			m.mode = boardModeNormal
		}
		return m, nil

	case ui.DataChangedMsg:
		return m, m.load(nil)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == boardModeAdd || m.mode == boardModeAddItem {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BoardModel) handleNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	card := m.selected()

	switch {
	case key.Matches(msg, m.keys.Left):
		m.col = clampCursor(m.col-1, len(m.board))
		m.row = clampCursor(m.row, len(m.cards()))
	case key.Matches(msg, m.keys.Right):
		m.col = clampCursor(m.col+1, len(m.board))
		m.row = clampCursor(m.row, len(m.cards()))
	case key.Matches(msg, m.keys.Up):
		m.row = clampCursor(m.row-1, len(m.cards()))
	case key.Matches(msg, m.keys.Down):
		m.row = clampCursor(m.row+1, len(m.cards()))
	case key.Matches(msg, m.keys.MoveLeft):
		if card != nil && m.col > 0 {
			m.focus = card.ID
			return m, m.move(card.ID, m.board[m.col-1].Column)
		}
	case key.Matches(msg, m.keys.MoveRight):
		if card != nil && m.col < len(m.board)-1 {
			m.focus = card.ID
			return m, m.move(card.ID, m.board[m.col+1].Column)
		}
	case key.Matches(msg, m.keys.Priority):
		if card != nil {
			p := nextPriority(card.Priority)
			return m, m.update(card.ID, service.ProjectInput{Priority: &p})
		}
	case key.Matches(msg, m.keys.New):
		m.mode = boardModeAdd
		m.input.Placeholder = "Card name..."
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		if card != nil {
			m.mode = boardModeDelete
		}
	case key.Matches(msg, m.keys.Select):
		if card != nil {
			m.mode = boardModeDetail
			m.item = 0
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load(nil)
	}
	return m, nil
}

func (m BoardModel) handleDetail(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	card := m.selected()
	if card == nil {
		m.mode = boardModeNormal
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
		m.mode = boardModeNormal
	case key.Matches(msg, m.keys.Up):
		m.item = clampCursor(m.item-1, len(card.Checklist))
	case key.Matches(msg, m.keys.Down):
		m.item = clampCursor(m.item+1, len(card.Checklist))
	case key.Matches(msg, m.keys.Toggle):
		if len(card.Checklist) > 0 {
			return m, m.toggleItem(card.ID, m.item)
		}
	case key.Matches(msg, m.keys.Delete):
		if len(card.Checklist) > 0 {
			return m, m.removeItem(card.ID, m.item)
		}
	case key.Matches(msg, m.keys.New):
		m.mode = boardModeAddItem
		m.input.Placeholder = "Checklist item..."
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m BoardModel) handleInput(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		m.input.Blur()
		if m.mode == boardModeAddItem {
			m.mode = boardModeDetail
			if card := m.selected(); card != nil {
				return m, m.addItem(card.ID, value)
			}
			return m, nil
		}
		m.mode = boardModeNormal
		return m, m.add(value)
	case key.Matches(msg, m.keys.Back):
		m.input.Blur()
		if m.mode == boardModeAddItem {
			m.mode = boardModeDetail
		} else {
			m.mode = boardModeNormal
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BoardModel) handleDelete(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = boardModeNormal
		if card := m.selected(); card != nil {
			return m, m.delete(card.ID)
		}
	case "n", "N", "esc":
		m.mode = boardModeNormal
	}
	return m, nil
}

// View implements tea.Model
func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Board"))
	b.WriteString("\n\n")
	b.WriteString(renderError(m.styles, m.err))

	switch m.mode {
	case boardModeAdd:
		column := service.DefaultColumn
		if m.col < len(m.board) {
			column = m.board[m.col].Column
		}
		b.WriteString(m.styles.ColumnTitle.Render("New card in " + column))
		b.WriteString("\n")
		b.WriteString(m.styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n")
		b.WriteString(m.styles.ItemMeta.Render("Enter to add, Esc to cancel"))
		return b.String()
	case boardModeDelete:
		if card := m.selected(); card != nil {
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Delete card %q?", card.Name)))
			b.WriteString("\n")
			b.WriteString(m.styles.ItemMeta.Render("Logged time is kept. Press Y to confirm, N or Esc to cancel"))
		}
		return b.String()
	case boardModeDetail, boardModeAddItem:
		if card := m.selected(); card != nil {
			b.WriteString(m.renderDetail(*card))
		}
		return b.String()
	}

	if len(m.board) == 0 {
		b.WriteString(m.styles.ItemMeta.Render("No columns configured"))
		return b.String()
	}

	b.WriteString(m.renderColumns())
	return b.String()
}

func (m BoardModel) renderColumns() string {
	visible := len(m.board)
	if m.width > 0 {
		visible = max(1, min(visible, m.width/columnWidth))
	}
	first := max(0, min(m.col-visible+1, len(m.board)-visible))
	if m.col < first {
		first = m.col
	}

	inner := columnWidth - 4
	var columns []string
	for c := first; c < first+visible && c < len(m.board); c++ {
		col := m.board[c]

		var body strings.Builder
		title := fmt.Sprintf("%s (%d)", strings.ToUpper(col.Column), len(col.Cards))
		body.WriteString(m.styles.ColumnTitle.Render(title))
		body.WriteString("\n")
		if len(col.Cards) == 0 {
			body.WriteString(m.styles.ItemMeta.Render("empty"))
		}
		for r, card := range col.Cards {
			line := renderPriority(m.styles, card.Priority) + " " + cli.Truncate(card.Name, inner-6)
			if done, total := card.ChecklistProgress(); total > 0 {
				line += m.styles.ItemMeta.Render(fmt.Sprintf(" %d/%d", done, total))
			}
			if c == m.col && r == m.row {
				body.WriteString(m.styles.ItemSelected.Render(line))
			} else {
				body.WriteString(line)
			}
			body.WriteString("\n")
		}

		style := m.styles.Column
		if c == m.col {
			style = m.styles.ColumnActive
		}
		columns = append(columns, style.Width(inner).Render(strings.TrimRight(body.String(), "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m BoardModel) renderDetail(card entry.Project) string {
	var b strings.Builder

	b.WriteString(renderPriority(m.styles, card.Priority))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render(card.Name))
	b.WriteString("\n\n")

	b.WriteString(renderStat(m.styles, "Column:", card.Column))
	if card.Description != "" {
		b.WriteString(renderStat(m.styles, "Description:", card.Description))
	}
	if len(card.Labels) > 0 {
		b.WriteString(m.styles.StatLabel.Render("Labels:"))
		b.WriteString(" ")
		b.WriteString(m.styles.Label.Render("#" + strings.Join(card.Labels, " #")))
		b.WriteString("\n")
	}

	goal := m.services.Kanban.Goal(card)
	tracked := stats.FormatGoal(goal.TrackedSeconds)
	if goal.HasGoal() {
		tracked = fmt.Sprintf("%s of %s (%d%%)", tracked, stats.FormatGoal(goal.GoalSeconds), goal.Percent)
	}
	if goal.Over {
		b.WriteString(m.styles.StatLabel.Render("Tracked:") + " " + m.styles.Success.Render(tracked) + "\n")
	} else {
		b.WriteString(renderStat(m.styles, "Tracked:", tracked))
	}

	done, total := card.ChecklistProgress()
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("Checklist %d/%d", done, total)))
	b.WriteString("\n")
	for i, item := range card.Checklist {
		check := "[ ] "
		text := item.Text
		if item.Done {
			check = "[x] "
			text = m.styles.ItemDone.Render(text)
		}
		b.WriteString(renderLine(m.styles, check+text, i == m.item))
	}

	b.WriteString("\n")
	if m.mode == boardModeAddItem {
		b.WriteString(m.styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n")
		b.WriteString(m.styles.ItemMeta.Render("Enter to add, Esc to cancel"))
	} else {
		b.WriteString(m.styles.ItemMeta.Render("space toggle  n add item  d remove item  esc back"))
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m BoardModel) IsInputMode() bool {
	return m.mode == boardModeAdd || m.mode == boardModeAddItem
}

// refocus moves the cursor onto the card recorded in focus, if present.
func (m *BoardModel) refocus() {
	if m.focus == "" {
		return
	}
	for c, col := range m.board {
		for r, card := range col.Cards {
			if card.ID == m.focus {
				m.col, m.row = c, r
			}
		}
	}
	m.focus = ""
}

func (m BoardModel) cards() []entry.Project {
	if m.col >= len(m.board) {
		return nil
	}
	return m.board[m.col].Cards
}

func (m BoardModel) selected() *entry.Project {
	cards := m.cards()
	if m.row >= len(cards) {
		return nil
	}
	return &cards[m.row]
}

func (m BoardModel) load(err error) tea.Cmd {
	return func() tea.Msg {
		return m.reload(err)
	}
}

func (m BoardModel) reload(err error) tea.Msg {
	return boardLoadedMsg{board: m.services.Kanban.ByColumn(filter.CardFilter{}), err: err}
}

func (m BoardModel) add(name string) tea.Cmd {
	in := service.ProjectInput{Name: &name}
	if m.col < len(m.board) {
		column := m.board[m.col].Column
		in.Column = &column
	}
	return func() tea.Msg {
		_, err := m.services.Kanban.Add(in)
		return m.reload(err)
	}
}

func (m BoardModel) update(id string, in service.ProjectInput) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Kanban.Update(id, in)
		return m.reload(err)
	}
}

func (m BoardModel) move(id, column string) tea.Cmd {
	return func() tea.Msg {
		_, _, err := m.services.Kanban.Move(id, column)
		return m.reload(err)
	}
}

func (m BoardModel) delete(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Kanban.Delete(id)
		return m.reload(err)
	}
}

func (m BoardModel) addItem(id, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Kanban.AddChecklistItem(id, text)
		return m.reload(err)
	}
}

func (m BoardModel) toggleItem(id string, i int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Kanban.ToggleChecklistItem(id, strconv.Itoa(i+1))
		return m.reload(err)
	}
}

func (m BoardModel) removeItem(id string, i int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Kanban.RemoveChecklistItem(id, strconv.Itoa(i+1))
		return m.reload(err)
	}
}
