package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/tui/ui"
)

// WeekModel is the model for the weekly report view
type WeekModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	offset int
	report service.WeekReport
}

// NewWeekModel creates a new week view model
func NewWeekModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) WeekModel {
	return WeekModel{
		services: services,
		styles:   styles,
		keys:     keys,
	}
}

// weekLoadedMsg is sent when a week grid is built
type weekLoadedMsg struct {
	offset int
	report service.WeekReport
}

// Init implements tea.Model
func (m WeekModel) Init() tea.Cmd {
	return m.load(m.offset)
}

// Update implements tea.Model
func (m WeekModel) Update(msg tea.Msg) (WeekModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevWeek):
			return m, m.load(m.offset - 1)
		case key.Matches(msg, m.keys.NextWeek):
			if m.offset < 0 {
				return m, m.load(m.offset + 1)
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(m.offset)
		}

	case weekLoadedMsg:
		m.offset = msg.offset
		m.report = msg.report

	case ui.DataChangedMsg:
		return m, m.load(m.offset)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

// View implements tea.Model
func (m WeekModel) View() string {
	var b strings.Builder

	title := "Week of " + m.report.Range
	if m.offset == 0 {
		title += " (this week)"
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	if m.report.Grid.Empty() {
		b.WriteString(m.styles.ItemMeta.Render("No time logged this week"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	return b.String()
}

func (m WeekModel) renderGrid() string {
	grid := m.report.Grid

	headers := []string{"Bucket"}
	for i := range 7 {
		name, date := grid.Window.DayLabel(i)
		headers = append(headers, name+"\n"+date)
	}
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(grid.Rows)+1)
	for i, row := range grid.Rows {
		rows = append(rows, gridRow(cli.Truncate(m.report.Labels[i], 22), row.Days, row.Total))
	}
	rows = append(rows, gridRow("Total", grid.DayTotals, grid.WeekTotal))
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.ItemMeta).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return m.styles.GridHeader.Padding(0, 1)
			case row == last || col == len(headers)-1:
				return m.styles.GridTotal.Padding(0, 1)
			case col == 0:
				return m.styles.Label.Padding(0, 1)
			}
			return m.styles.GridCell.Padding(0, 1).Align(lipgloss.Right)
		})
	return t.String()
}

func gridRow(label string, days [7]int, total int) []string {
	cells := make([]string, 0, 9)
	cells = append(cells, label)
	for _, sec := range days {
		cells = append(cells, stats.FormatCell(sec))
	}
	return append(cells, stats.FormatHM(total))
}

// SetSize sets the view dimensions
func (m *WeekModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Offset returns how many weeks back the view is showing.
func (m WeekModel) Offset() int {
	return m.offset
}

func (m WeekModel) load(offset int) tea.Cmd {
	return func() tea.Msg {
		return weekLoadedMsg{offset: offset, report: m.services.Report.Week(offset)}
	}
}
