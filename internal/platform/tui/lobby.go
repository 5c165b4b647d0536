package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/games/dodgeball"
	"github.com/vovakirdan/tui-dodgeball/internal/multiplayer"
	"github.com/vovakirdan/tui-dodgeball/internal/storage"
)

// LobbyState is where a remote session is in its life.
type LobbyState int

const (
	LobbyStateWaiting      LobbyState = iota // Queued, no opponent yet
	LobbyStatePlaying                        // Paired, node running
	LobbyStateExpired                        // Gave up waiting
)

// LobbyOptions configures a LobbyModel.
type LobbyOptions struct {
	Context context.Context // Ends with the session; nodes stop with it
	Session *multiplayer.ChannelSession
	User    string
	Game    config.DodgeballConfig
	Store   *storage.Store
	Logger  *zap.SugaredLogger
	Width   int
	Height  int
}

// LobbyModel waits for the coordinator to pair the session, then runs a
// node over the pairing's link and hands the screen to a NodeModel.
type LobbyModel struct {
	opts     LobbyOptions
	state    LobbyState
	width    int
	height   int
	dots     int
	queued   int
	notice   string
	pairing  multiplayer.Pairing
	node     NodeModel
	cancel   context.CancelFunc
	err      error
	quitting bool
}

// NewLobbyModel creates a lobby for one session.
func NewLobbyModel(opts LobbyOptions) LobbyModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	return LobbyModel{
		opts:   opts,
		state:  LobbyStateWaiting,
		width:  opts.Width,
		height: opts.Height,
	}
}

// Init starts listening for coordinator events.
func (m LobbyModel) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), tickCmd(4))
}

// waitForEvent returns a command that waits for coordinator events.
func (m LobbyModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		if m.opts.Session == nil {
			return nil
		}
		select {
		case evt := <-m.opts.Session.Events():
			return evt
		case <-m.opts.Session.Done():
			return nil
		}
	}
}

// Update handles messages.
func (m LobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == LobbyStatePlaying {
			return m.updateNode(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.state == LobbyStatePlaying {
			return m.updateNode(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		if m.state != LobbyStateWaiting {
			return m, nil
		}
		m.dots = (m.dots + 1) % 4
		return m, tickCmd(4)

	case FrameMsg, StoppedMsg:
		if m.state == LobbyStatePlaying {
			return m.updateNode(msg)
		}
		return m, nil

	case multiplayer.WaitingEvent:
		m.queued = msg.Queued
		return m, m.waitForEvent()

	case multiplayer.PairedEvent:
		return m.startNode(msg.Pairing)

	case multiplayer.OpponentLeftEvent:
		m.notice = "opponent left"
		return m, m.waitForEvent()

	case multiplayer.WaitExpiredEvent:
		m.state = LobbyStateExpired
		return m, m.waitForEvent()

	case multiplayer.LobbyErrorEvent:
		m.notice = msg.Message
		return m, m.waitForEvent()
	}
	return m, nil
}

// startNode builds a node over the pairing's link and runs it until the
// session ends or the player quits.
func (m LobbyModel) startNode(p multiplayer.Pairing) (tea.Model, tea.Cmd) {
	if m.state == LobbyStatePlaying {
		return m, m.waitForEvent()
	}

	log := m.opts.Logger.With("session", string(p.Self), "match", string(p.MatchID))
	input := core.NewInputQueue()
	presenter := NewTeaPresenter(0)
	tickRate := m.opts.Game.Timing.TickRate

	node, err := dodgeball.NewNode(dodgeball.NodeOptions{
		Config:    m.opts.Game,
		Link:      p.Link,
		Input:     input,
		Presenter: presenter,
		Logger:    log,
		MatchID:   string(p.MatchID),
		OnFinish:  NewRecorder(m.opts.Store, m.opts.User, tickRate, log).Save,
	})
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	ctx, cancel := context.WithCancel(m.opts.Context)
	m.cancel = cancel
	m.pairing = p
	m.state = LobbyStatePlaying
	m.notice = ""

	title := fmt.Sprintf("%s vs %s", m.opts.User, opponentName(p.Opponent))
	m.node = NewNodeModel(title, DefaultKeyMap(), input, presenter, tickRate)
	if m.width > 0 {
		nm, _ := m.node.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.node = nm.(NodeModel)
	}

	run := func() tea.Msg {
		return StoppedMsg{Name: "node", Err: node.Run(ctx)}
	}
	return m, tea.Batch(m.node.Init(), run, m.waitForEvent())
}

func (m LobbyModel) updateNode(msg tea.Msg) (tea.Model, tea.Cmd) {
	nm, cmd := m.node.Update(msg)
	m.node = nm.(NodeModel)
	if m.node.IsQuitting() {
		if m.cancel != nil {
			m.cancel()
		}
		m.err = m.node.Err()
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current state.
func (m LobbyModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case LobbyStatePlaying:
		v := m.node.View()
		if m.notice != "" {
			v += "\n" + centerText(m.notice, m.width)
		}
		return v
	case LobbyStateExpired:
		return m.viewMessage("NO OPPONENT", "Nobody joined in time.", "Q: Quit")
	default:
		wait := "Waiting for an opponent" + strings.Repeat(".", m.dots)
		return m.viewMessage("DODGEBALL", wait, "Q: Quit")
	}
}

func (m LobbyModel) viewMessage(title, body, footer string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Signed in as %s", m.opts.User), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(body, m.width))
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(centerText(m.notice, m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(footer, m.width))

	return b.String()
}

// State returns the lobby state.
func (m LobbyModel) State() LobbyState {
	return m.state
}

// Pairing returns the pairing once the session has been matched.
func (m LobbyModel) Pairing() multiplayer.Pairing {
	return m.pairing
}

// Err returns the error that ended the session, if any.
func (m LobbyModel) Err() error {
	return m.err
}

// opponentName strips the random suffix NewSessionID adds.
func opponentName(id multiplayer.SessionID) string {
	s := string(id)
	if i := strings.LastIndex(s, "-"); i > 0 {
		return s[:i]
	}
	return s
}
