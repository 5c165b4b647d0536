package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Runner is a named background loop that runs until its context ends,
// such as a node's scheduler or a link's reader and writer.
type Runner struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunProgram runs model in a Bubble Tea program alongside runners.
// Quitting the program cancels the runners; a runner that returns makes
// the program quit. The first runner error is returned.
func RunProgram(ctx context.Context, model tea.Model, runners []Runner, opts ...tea.ProgramOption) (tea.Model, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(model, append(opts, tea.WithContext(gctx))...)

	for _, r := range runners {
		r := r
		g.Go(func() error {
			err := r.Run(gctx)
			p.Send(StoppedMsg{Name: r.Name, Err: err})
			return err
		})
	}

	var final tea.Model
	g.Go(func() error {
		var err error
		final, err = p.Run()
		cancel()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return final, err
}
