package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the playground key bindings.
type keyMap struct {
	Toggle     key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	SideTop    key.Binding
	SideBottom key.Binding
	SideLeft   key.Binding
	SideRight  key.Binding
	Modal      key.Binding
	Animations key.Binding
	Direction  key.Binding
	Constraint key.Binding
	Escape     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "popup/popdown"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move anchor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move anchor down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "move anchor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "move anchor right"),
		),
		SideTop: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "prefer top"),
		),
		SideBottom: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "prefer bottom"),
		),
		SideLeft: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "prefer left"),
		),
		SideRight: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "prefer right"),
		),
		Modal: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle modal"),
		),
		Animations: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle animations"),
		),
		Direction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle RTL"),
		),
		Constraint: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle constraint"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Up, k.Down, k.Left, k.Right, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Up, k.Down, k.Left, k.Right, k.Escape},
		{k.SideTop, k.SideBottom, k.SideLeft, k.SideRight},
		{k.Modal, k.Animations, k.Direction, k.Constraint, k.Help, k.Quit},
	}
}
