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

	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/games/dodgeball"
	"github.com/vovakirdan/tui-dodgeball/internal/link"
	"github.com/vovakirdan/tui-dodgeball/internal/platform/tui"
)

var duelCmd = &cobra.Command{
	Use:   "duel",
	Short: "Play both nodes on one terminal",
	Long: `Run two nodes side by side, linked by an in-memory pipe.
Each node has its own scheduler; they share nothing but the link.

Controls:
  Player one   A/D move, W fire, E confirm
  Player two   Left/Right move, Up fire, Enter confirm
  Q/Ctrl+C     Quit

Examples:
  dodgeball duel
  dodgeball duel --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runDuel,
}

func runDuel(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := openEventLog(cfg)
	store := openStore(cfg)

	matchID := uuid.NewString()
	ends := [2]*link.PipeEnd{}
	ends[0], ends[1] = link.Pipe()

	var panes [2]tui.Pane
	var runners []tui.Runner
	keys := [2]tui.KeyMap{tui.PlayerOneKeyMap(), tui.PlayerTwoKeyMap()}

	for i := range panes {
		name := fmt.Sprintf("player %d", i+1)
		log := events.With("node", name, "match", matchID)
		input := core.NewInputQueue()
		presenter := tui.NewTeaPresenter(i)

		node, err := dodgeball.NewNode(dodgeball.NodeOptions{
			Config:    cfg,
			Link:      ends[i],
			Input:     input,
			Presenter: presenter,
			Logger:    log,
			MatchID:   matchID,
			OnFinish:  tui.NewRecorder(store, name, cfg.Timing.TickRate, log).Save,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		panes[i] = tui.Pane{Title: name, Keys: keys[i], Input: input, Presenter: presenter}
		runners = append(runners, tui.Runner{Name: name, Run: node.Run})
	}

	model := tui.NewDuelModel(panes[0], panes[1], cfg.Timing.TickRate)
	_, runErr := tui.RunProgram(ctx, model, runners, tea.WithAltScreen())

	for _, end := range ends {
		events.Infow("pipe closed", "metrics", end.Metrics().Snapshot())
		end.Close()
	}
	events.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running duel: %v\n", runErr)
		os.Exit(1)
	}
}
