// Package sched implements the fixed-period cooperative dispatcher that
// drives every mutation of a node's game state.
//
// Tasks run to completion, one at a time, in the order they were given.
// A task with period N runs on every master tick divisible by N. When the
// clock reports that several master ticks have elapsed (the previous tick
// ran late), every elapsed tick is still replayed in order, so overdue
// tasks run once per due period rather than being skipped or coalesced.
//
// A task that never returns stalls the whole node. That is fatal by
// construction and not detected.
package sched

import (
	"context"
	"errors"
	"fmt"
)

// TaskFunc is a scheduled callback. It must not block.
type TaskFunc func()

// Task pairs a callback with its period in master ticks.
type Task struct {
	Name   string
	Func   TaskFunc
	Period uint64
}

// Clock is the fixed-rate timer source.
type Clock interface {
	// Wait blocks until the next master tick boundary and returns the
	// number of master ticks elapsed since the clock started.
	Wait(ctx context.Context) (uint64, error)
}

// Scheduler dispatches tasks against a master tick counter.
// It owns no game state itself.
type Scheduler struct {
	tasks   []Task
	tick    uint64
	metrics *Metrics
}

// ErrInvalidTask is returned by New for a task without callback or period.
var ErrInvalidTask = errors.New("sched: invalid task")

// New creates a scheduler for the given task list.
// The list order is the dispatch order within a tick.
func New(tasks []Task) (*Scheduler, error) {
	for i, t := range tasks {
		if t.Func == nil {
			return nil, fmt.Errorf("%w: task %d (%s) has no callback", ErrInvalidTask, i, t.Name)
		}
		if t.Period == 0 {
			return nil, fmt.Errorf("%w: task %d (%s) has zero period", ErrInvalidTask, i, t.Name)
		}
	}

	owned := make([]Task, len(tasks))
	copy(owned, tasks)

	return &Scheduler{
		tasks:   owned,
		metrics: &Metrics{},
	}, nil
}

// Tick returns the last master tick that has been dispatched.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Metrics returns the scheduler's counters.
func (s *Scheduler) Metrics() *Metrics {
	return s.metrics
}

// Tasks returns a copy of the task table.
func (s *Scheduler) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// AdvanceTo dispatches every master tick after the current one up to and
// including now. Ticks at or before the current tick are ignored.
func (s *Scheduler) AdvanceTo(now uint64) {
	if now <= s.tick {
		return
	}
	if behind := now - s.tick - 1; behind > 0 {
		s.metrics.addLate(behind)
	}

	for s.tick < now {
		s.tick++
		s.dispatch(s.tick)
	}
}

// Step dispatches exactly n further master ticks.
func (s *Scheduler) Step(n uint64) {
	for i := uint64(0); i < n; i++ {
		s.tick++
		s.dispatch(s.tick)
	}
}

func (s *Scheduler) dispatch(tick uint64) {
	s.metrics.addTick()
	for i := range s.tasks {
		if tick%s.tasks[i].Period == 0 {
			s.tasks[i].Func()
			s.metrics.addRun()
		}
	}
}

// Run blocks on the clock and dispatches ticks until ctx is cancelled.
// Cancellation is the only way out; the returned error is ctx.Err() or
// a clock failure.
func (s *Scheduler) Run(ctx context.Context, clock Clock) error {
	for {
		now, err := clock.Wait(ctx)
		if err != nil {
			return err
		}
		s.AdvanceTo(now)
	}
}
