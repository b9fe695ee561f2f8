package views

import (
	"slices"
	"strings"

	"github.com/xolan/truflow/internal/tui/ui"
)

// themeRows is how many tint IDs the picker shows at once.
const themeRows = 10

// themePicker is a scrolling list of tint IDs with the active one marked.
type themePicker struct {
	open    bool
	names   []string
	current string
	cursor  int
	top     int
}

func newThemePicker(names []string, current string) themePicker {
	p := themePicker{names: names}
	p.setCurrent(current)
	return p
}

// setCurrent marks name active and parks the cursor on it.
func (p *themePicker) setCurrent(name string) {
	p.current = name
	p.cursor = max(0, slices.Index(p.names, name))
	p.scroll()
}

func (p *themePicker) show() {
	p.open = true
	p.scroll()
}

// cancel closes the picker and returns the cursor to the active theme.
func (p *themePicker) cancel() {
	p.open = false
	p.setCurrent(p.current)
}

func (p *themePicker) move(delta int) {
	p.cursor = clampCursor(p.cursor+delta, len(p.names))
	p.scroll()
}

func (p *themePicker) scroll() {
	switch {
	case p.cursor < p.top:
		p.top = p.cursor
	case p.cursor >= p.top+themeRows:
		p.top = p.cursor - themeRows + 1
	}
}

// choose closes the picker and returns the highlighted tint ID.
func (p *themePicker) choose() (string, bool) {
	p.open = false
	if p.cursor >= len(p.names) {
		return "", false
	}
	return p.names[p.cursor], true
}

func (p themePicker) view(styles ui.Styles) string {
	var b strings.Builder
	b.WriteString("\n" + styles.ColumnTitle.Render("Select a theme") + "\n")

	end := min(p.top+themeRows, len(p.names))
	if p.top > 0 {
		b.WriteString(styles.ItemMeta.Render("  ↑ more themes above") + "\n")
	}
	for i, name := range p.names[p.top:end] {
		if name == p.current {
			name += " (current)"
		}
		b.WriteString(renderLine(styles, name, p.top+i == p.cursor))
	}
	if end < len(p.names) {
		b.WriteString(styles.ItemMeta.Render("  ↓ more themes below") + "\n")
	}
	b.WriteString("\n" + styles.ItemMeta.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}
