package sched

import "sync/atomic"

// Metrics records dispatcher counters. Safe to read from other goroutines.
type Metrics struct {
	Ticks     int64 // Master ticks dispatched
	LateTicks int64 // Ticks replayed because the clock reported a gap
	TaskRuns  int64 // Callback invocations
}

func (m *Metrics) addTick()         { atomic.AddInt64(&m.Ticks, 1) }
func (m *Metrics) addRun()          { atomic.AddInt64(&m.TaskRuns, 1) }
func (m *Metrics) addLate(n uint64) { atomic.AddInt64(&m.LateTicks, int64(n)) }

// Snapshot returns a read-only copy for logging.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"ticks":      atomic.LoadInt64(&m.Ticks),
		"late_ticks": atomic.LoadInt64(&m.LateTicks),
		"task_runs":  atomic.LoadInt64(&m.TaskRuns),
	}
}
