package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/games/dodgeball"
)

// Pane is one of the two nodes shown side by side in a local duel.
type Pane struct {
	Title     string
	Keys      KeyMap
	Input     *core.InputQueue
	Presenter *TeaPresenter
	frame     dodgeball.Frame
}

// DuelModel shows two nodes on one terminal, each with its own half of
// the keyboard. The nodes still talk only through their link.
type DuelModel struct {
	panes    [2]Pane
	help     help.Model
	tickRate int
	width    int
	err      error
	quitting bool
}

// NewDuelModel creates a duel view over two panes. Pane presenters must
// have been created with pane indices 0 and 1.
func NewDuelModel(left, right Pane, tickRate int) DuelModel {
	return DuelModel{
		panes:    [2]Pane{left, right},
		help:     help.New(),
		tickRate: tickRate,
	}
}

// Init starts waiting for frames from both panes.
func (m DuelModel) Init() tea.Cmd {
	return tea.Batch(
		m.panes[0].Presenter.waitForFrame(),
		m.panes[1].Presenter.waitForFrame(),
	)
}

// Update handles messages.
func (m DuelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width / 2
		return m, nil

	case FrameMsg:
		if msg.Pane < 0 || msg.Pane >= len(m.panes) {
			return m, nil
		}
		m.panes[msg.Pane].frame = msg.Frame
		return m, m.panes[msg.Pane].Presenter.waitForFrame()

	case StoppedMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m DuelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.panes[0].Keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	for i := range m.panes {
		switch a := m.panes[i].Keys.Action(msg); a {
		case core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case core.ActionNone:
		default:
			m.panes[i].Input.Push(a)
			return m, nil
		}
	}
	return m, nil
}

// View renders both fields next to each other.
func (m DuelModel) View() string {
	if m.quitting {
		return ""
	}

	cols := make([]string, len(m.panes))
	for i, p := range m.panes {
		cols[i] = lipgloss.JoinVertical(lipgloss.Left,
			RenderField(p.frame, p.Title, m.tickRate),
			"",
			helpStyle.Render(m.help.View(p.Keys)),
		)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols[0], "    ", cols[1])
	if m.width > 0 {
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(body)
	return b.String()
}

// Frame returns the last frame of pane i.
func (m DuelModel) Frame(i int) dodgeball.Frame {
	return m.panes[i].frame
}

// Err returns the error a node stopped with, if any.
func (m DuelModel) Err() error {
	return m.err
}
