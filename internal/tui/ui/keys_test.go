package ui

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap_AllBound(t *testing.T) {
	v := reflect.ValueOf(DefaultKeyMap())

	for i := range v.NumField() {
		name := v.Type().Field(i).Name
		binding, ok := v.Field(i).Interface().(key.Binding)
		if !ok {
			continue
		}
		t.Run(name, func(t *testing.T) {
			if len(binding.Keys()) == 0 {
				t.Errorf("%s has no keys", name)
			}
			if binding.Help().Key == "" || binding.Help().Desc == "" {
				t.Errorf("%s has no help text", name)
			}
		})
	}
}

func TestKeyMap_Matches(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, keys.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
		{"space starts pomodoro", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, keys.StartPause},
		{"plus adds a minute", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, keys.Plus},
		{"tab switches view", tea.KeyMsg{Type: tea.KeyTab}, keys.NextTab},
		{"6 opens settings", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'6'}}, keys.Tab6},
		{"> moves a card", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'>'}}, keys.MoveRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q did not match %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}
