package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodgeball/internal/core"
)

// KeyMap binds keys to one node's input actions.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Fire    key.Binding
	Confirm key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.Confirm, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Fire},
		{k.Confirm, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the bindings for a node that owns the whole terminal.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left / side"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right / side"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "up", "k", "w"),
			key.WithHelp("space", "fire"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm / reset"),
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

// PlayerOneKeyMap is the left-hand half of a shared keyboard.
func PlayerOneKeyMap() KeyMap {
	k := DefaultKeyMap()
	k.Left = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "left"))
	k.Right = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "right"))
	k.Fire = key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "fire"))
	k.Confirm = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "confirm"))
	return k
}

// PlayerTwoKeyMap is the right-hand half of a shared keyboard.
func PlayerTwoKeyMap() KeyMap {
	k := DefaultKeyMap()
	k.Left = key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left"))
	k.Right = key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right"))
	k.Fire = key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "fire"))
	k.Confirm = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm"))
	return k
}

// Action translates a key message to a node action.
// Returns ActionNone for keys this map does not bind.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	}
	return core.ActionNone
}
