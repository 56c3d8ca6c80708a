package datepicker

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/runger/datewheel/internal/wheel"
)

// KeyMap adds confirm and cancel to the wheel bindings.
type KeyMap struct {
	wheel.KeyMap
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyMap: wheel.DefaultKeyMap(),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "q"),
			key.WithHelp("esc/q", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Confirm, k.Cancel})
}
