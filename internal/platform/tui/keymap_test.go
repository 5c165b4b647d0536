package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodgeball/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"h", runeKey('h'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"l", runeKey('l'), core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFire},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestSharedKeyboardHalvesDoNotOverlap(t *testing.T) {
	one, two := PlayerOneKeyMap(), PlayerTwoKeyMap()

	for _, msg := range []tea.KeyMsg{
		runeKey('a'), runeKey('d'), runeKey('w'), runeKey('e'),
	} {
		if one.Action(msg) == core.ActionNone {
			t.Errorf("player one should bind %q", msg.String())
		}
		if two.Action(msg) != core.ActionNone {
			t.Errorf("player two should not bind %q", msg.String())
		}
	}

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyLeft}, {Type: tea.KeyRight}, {Type: tea.KeyUp}, {Type: tea.KeyEnter},
	} {
		if two.Action(msg) == core.ActionNone {
			t.Errorf("player two should bind %q", msg.String())
		}
		if one.Action(msg) != core.ActionNone {
			t.Errorf("player one should not bind %q", msg.String())
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}
	if len(keys.FullHelp()) != 2 {
		t.Errorf("FullHelp() has %d columns, expected 2", len(keys.FullHelp()))
	}
}
