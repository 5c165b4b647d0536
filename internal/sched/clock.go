package sched

import (
	"context"
	"fmt"
	"time"
)

// TickerClock is a wall-clock Clock running at a fixed rate.
// Elapsed ticks are computed from the start time, so ticks missed while
// the dispatcher was busy are reported rather than lost.
type TickerClock struct {
	interval time.Duration
	start    time.Time
	ticker   *time.Ticker
}

// NewTickerClock starts a clock with the given master tick rate in Hz.
func NewTickerClock(rateHz int) (*TickerClock, error) {
	if rateHz <= 0 {
		return nil, fmt.Errorf("sched: tick rate must be positive, got %d", rateHz)
	}
	interval := time.Second / time.Duration(rateHz)
	return &TickerClock{
		interval: interval,
		start:    time.Now(),
		ticker:   time.NewTicker(interval),
	}, nil
}

// Wait blocks until the next tick boundary.
func (c *TickerClock) Wait(ctx context.Context) (uint64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-c.ticker.C:
		return uint64(time.Since(c.start) / c.interval), nil
	}
}

// Interval returns the duration of one master tick.
func (c *TickerClock) Interval() time.Duration {
	return c.interval
}

// Stop releases the underlying ticker.
func (c *TickerClock) Stop() {
	c.ticker.Stop()
}

// ManualClock is a Clock driven explicitly, for tests and replays.
type ManualClock struct {
	ticks chan uint64
	now   uint64
}

// NewManualClock creates a clock at tick zero.
func NewManualClock() *ManualClock {
	return &ManualClock{ticks: make(chan uint64, 64)}
}

// Advance moves the clock forward by n master ticks in one jump.
func (c *ManualClock) Advance(n uint64) {
	c.now += n
	c.ticks <- c.now
}

// Wait returns the next reported tick count.
func (c *ManualClock) Wait(ctx context.Context) (uint64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case now := <-c.ticks:
		return now, nil
	}
}
