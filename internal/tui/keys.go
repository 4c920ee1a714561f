package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	New       key.Binding
	Rename    key.Binding
	Kill      key.Binding
	RemoveAll key.Binding
	Refresh   key.Binding
	Yes       key.Binding
	Escape    key.Binding
	Quit      key.Binding
	CtrlC     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r", "f2"),
	),
	Kill: key.NewBinding(
		key.WithKeys("ctrl+k"),
	),
	RemoveAll: key.NewBinding(
		key.WithKeys("X"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R", "ctrl+r"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
