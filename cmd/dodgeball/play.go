package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/games/dodgeball"
	"github.com/vovakirdan/tui-dodgeball/internal/link"
	"github.com/vovakirdan/tui-dodgeball/internal/logging"
	"github.com/vovakirdan/tui-dodgeball/internal/platform/tui"
	"github.com/vovakirdan/tui-dodgeball/internal/registry"
)

var (
	flagListen    string
	flagConnect   string
	flagTransport string
	flagName      string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play against a peer node",
	Long: `Run one node and link it to a peer node over the network.
One side listens, the other connects; after that both are equal.

Controls:
  Left/Right  - Move (toggle side during setup)
  Space/Up    - Fire (attacker)
  Enter       - Confirm side, reset after the match
  Q/Ctrl+C    - Quit

Both players pick a side during setup; the first to confirm decides
and the other node follows.

Examples:
  dodgeball play --listen :7000
  dodgeball play --connect 192.168.1.20:7000
  dodgeball play --listen :7000 --transport ws
  dodgeball play --connect 192.168.1.20:7000 --transport ws`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagListen, "listen", "", "Wait for the peer on this address (host:port)")
	playCmd.Flags().StringVar(&flagConnect, "connect", "", "Connect to a peer at this address (host:port)")
	playCmd.Flags().StringVar(&flagTransport, "transport", "", "Link transport, see 'dodgeball config' (overrides config)")
	playCmd.Flags().StringVar(&flagName, "name", "", "Name recorded in the match history (default $USER)")
	playCmd.MarkFlagsMutuallyExclusive("listen", "connect")
	playCmd.MarkFlagsOneRequired("listen", "connect")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	if flagTransport != "" {
		cfg.Link.Transport = flagTransport
	}
	name := flagName
	if name == "" {
		name = nodeName()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := logging.Console("dodgeball")
	if flagListen != "" {
		console.Info("waiting for peer", "address", flagListen, "transport", cfg.Link.Transport)
	} else {
		console.Info("connecting to peer", "address", flagConnect, "transport", cfg.Link.Transport)
	}

	conn, err := openConn(ctx, cfg.Link)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	stream := link.NewStream(conn)
	console.Info("peer linked")

	events := openEventLog(cfg)
	store := openStore(cfg)

	matchID := uuid.NewString()
	log := events.With("node", name, "match", matchID)
	input := core.NewInputQueue()
	presenter := tui.NewTeaPresenter(0)

	node, err := dodgeball.NewNode(dodgeball.NodeOptions{
		Config:    cfg,
		Link:      stream,
		Input:     input,
		Presenter: presenter,
		Logger:    log,
		MatchID:   matchID,
		OnFinish:  tui.NewRecorder(store, name, cfg.Timing.TickRate, log).Save,
	})
	if err != nil {
		stream.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewNodeModel(name, tui.DefaultKeyMap(), input, presenter, cfg.Timing.TickRate)
	_, runErr := tui.RunProgram(ctx, model, []tui.Runner{
		{Name: "link", Run: stream.Run},
		{Name: "node", Run: node.Run},
	}, tea.WithAltScreen())

	log.Infow("link closed", "metrics", stream.Metrics().Snapshot())
	events.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running node: %v\n", runErr)
		os.Exit(1)
	}
}

// openConn listens or dials according to the flags and the link settings.
func openConn(ctx context.Context, cfg config.LinkConfig) (link.Conn, error) {
	tr, err := registry.Get(cfg.Transport)
	if err != nil {
		return nil, err
	}
	if flagListen != "" {
		return tr.Listen(ctx, flagListen, cfg.Path)
	}
	return tr.Dial(ctx, flagConnect, cfg.Path)
}
