// Package tui provides the Bubble Tea front end for dodgeball nodes.
// It turns key presses into queued input actions and draws the frames a
// node's display task publishes.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives view-only animation (the lobby's waiting dots).
// The game itself is clocked by the node's scheduler, never by the UI.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
