package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/games/dodgeball"
)

// FrameMsg carries a frame from a node to the Bubble Tea program.
type FrameMsg struct {
	Pane  int // Which pane the frame belongs to (0 unless in a duel)
	Frame dodgeball.Frame
}

// StoppedMsg is sent when a background runner (a node or its link) returns.
type StoppedMsg struct {
	Name string
	Err  error
}

// TeaPresenter is a dodgeball.Presenter that hands frames to the UI
// through a drop-oldest mailbox, so the display task never waits on rendering.
type TeaPresenter struct {
	pane  int
	inbox *core.Mailbox[dodgeball.Frame]
}

// NewTeaPresenter creates a presenter for the given pane.
func NewTeaPresenter(pane int) *TeaPresenter {
	return &TeaPresenter{
		pane:  pane,
		inbox: core.NewMailbox[dodgeball.Frame](2),
	}
}

// Present queues f, replacing the oldest pending frame if the UI is behind.
func (p *TeaPresenter) Present(f dodgeball.Frame) {
	p.inbox.Put(f)
}

// waitForFrame returns a command that blocks until the next frame arrives.
func (p *TeaPresenter) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		f, ok := <-p.inbox.C()
		if !ok {
			return nil
		}
		return FrameMsg{Pane: p.pane, Frame: f}
	}
}

var _ dodgeball.Presenter = (*TeaPresenter)(nil)
