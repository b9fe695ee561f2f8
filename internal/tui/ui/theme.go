package ui

import (
	"slices"

	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/truflow/internal/config"
)

// DefaultTheme is applied when the configured tint is missing.
const DefaultTheme = config.DefaultTheme

// ThemeProvider holds the dashboard's active bubbletint palette.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider selects name, falling back to DefaultTheme.
func NewThemeProvider(name string) *ThemeProvider {
	tints := tint.DefaultTints()
	fallback := tints[0]
	if i := slices.IndexFunc(tints, func(t tint.Tint) bool { return t.ID() == DefaultTheme }); i >= 0 {
		fallback = tints[i]
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...)}
	if name != "" {
		tp.SetTheme(name)
	}
	return tp
}

// SetTheme switches palettes. Unknown names are ignored and report false.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// AvailableThemes lists tint IDs alphabetically for the config picker.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	slices.Sort(ids)
	return ids
}

func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
