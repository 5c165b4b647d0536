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

// NodeModel is the Bubble Tea model for one node that owns the terminal.
// It never touches the node's World: keys go into the input queue and
// frames come back through the presenter.
type NodeModel struct {
	title     string
	keys      KeyMap
	help      help.Model
	input     *core.InputQueue
	presenter *TeaPresenter
	frame     dodgeball.Frame
	tickRate  int
	width     int
	height    int
	err       error
	quitting  bool
}

// NewNodeModel creates a model driving input and presenter.
func NewNodeModel(title string, keys KeyMap, input *core.InputQueue, presenter *TeaPresenter, tickRate int) NodeModel {
	return NodeModel{
		title:     title,
		keys:      keys,
		help:      help.New(),
		input:     input,
		presenter: presenter,
		tickRate:  tickRate,
	}
}

// Init starts waiting for the first frame.
func (m NodeModel) Init() tea.Cmd {
	return m.presenter.waitForFrame()
}

// Update handles messages and updates the model state.
func (m NodeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = msg.Frame
		return m, m.presenter.waitForFrame()

	case StoppedMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m NodeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.input.Push(a)
	}
	return m, nil
}

// View renders the latest frame.
func (m NodeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	field := RenderField(m.frame, m.title, m.tickRate)
	if m.width > 0 {
		field = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, field)
	}
	b.WriteString("\n")
	b.WriteString(field)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(centerText(m.help.View(m.keys), m.width)))
	return b.String()
}

// Frame returns the last frame received.
func (m NodeModel) Frame() dodgeball.Frame {
	return m.frame
}

// Err returns the error the node stopped with, if any.
func (m NodeModel) Err() error {
	return m.err
}

// IsQuitting returns true if the model has asked the program to exit.
func (m NodeModel) IsQuitting() bool {
	return m.quitting
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
