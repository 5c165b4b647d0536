package dodgeball

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/link"
	"github.com/vovakirdan/tui-dodgeball/internal/sched"
)

// NodeOptions configures a Node.
type NodeOptions struct {
	Config    config.DodgeballConfig
	Link      link.Transport
	Input     InputSource // Defaults to an empty queue
	Presenter Presenter   // Defaults to discarding frames
	Indicator Indicator
	Surface   core.Surface
	Logger    *zap.SugaredLogger
	MatchID   string
	OnFinish  func(Result)
}

// Node is one player's device: a World driven by its scheduler.
type Node struct {
	world    *World
	sched    *sched.Scheduler
	tickRate int
	log      *zap.SugaredLogger
}

// NewNode validates the configuration and assembles the world and task table.
func NewNode(opts NodeOptions) (*Node, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Input == nil {
		opts.Input = core.NewInputQueue()
	}
	if opts.Presenter == nil {
		opts.Presenter = PresenterFunc(func(Frame) {})
	}

	w, err := NewWorld(WorldOptions{
		Link:            opts.Link,
		Surface:         opts.Surface,
		Gameplay:        opts.Config.Gameplay,
		CountdownFrames: opts.Config.Timing.CountdownFrames,
		Indicator:       opts.Indicator,
		Logger:          opts.Logger,
		MatchID:         opts.MatchID,
		OnFinish:        opts.OnFinish,
	})
	if err != nil {
		return nil, err
	}

	s, err := sched.New(Tasks(w, opts.Config.Timing, opts.Input, opts.Presenter))
	if err != nil {
		return nil, fmt.Errorf("dodgeball: %w", err)
	}

	return &Node{
		world:    w,
		sched:    s,
		tickRate: opts.Config.Timing.TickRate,
		log:      opts.Logger,
	}, nil
}

// World returns the node's world. Only touch it while the node is not running.
func (n *Node) World() *World {
	return n.world
}

// Scheduler returns the node's scheduler.
func (n *Node) Scheduler() *sched.Scheduler {
	return n.sched
}

// Run drives the node from a real-time clock until ctx is cancelled.
func (n *Node) Run(ctx context.Context) error {
	clock, err := sched.NewTickerClock(n.tickRate)
	if err != nil {
		return err
	}
	defer clock.Stop()

	return n.RunWithClock(ctx, clock)
}

// RunWithClock drives the node from clock until ctx is cancelled.
// Cancellation is a clean stop and returns nil.
func (n *Node) RunWithClock(ctx context.Context, clock sched.Clock) error {
	n.log.Infow("node started", "tick_rate", n.tickRate, "match", n.world.matchID)
	err := n.sched.Run(ctx, clock)
	n.log.Infow("node stopped", "metrics", n.sched.Metrics().Snapshot())

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
