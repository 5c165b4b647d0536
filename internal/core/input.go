package core

import "sync"

// Action represents a discrete, edge-triggered input event,
// abstracted from physical key presses or switch pushes.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Move toward column 0; toggles side during setup
	ActionRight          // Move toward the last column; toggles side during setup
	ActionFire           // Throw a ball (attacker only)
	ActionConfirm        // Confirm side in setup, reset after a finished game
	ActionQuit           // Leave the session (handled by the front end, never by the game)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the push events collected between two polls.
// Each action is either pushed or not; repeated pushes collapse into one.
type InputFrame struct {
	pushed uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as pushed for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone {
		return
	}
	f.pushed |= 1 << uint(a)
}

// Has returns true if the given action was pushed this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone {
		return false
	}
	return f.pushed&(1<<uint(a)) != 0
}

// Empty reports whether no action was pushed.
func (f InputFrame) Empty() bool {
	return f.pushed == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.pushed = 0
}

// InputQueue collects push events from a front end goroutine and hands
// them to the game one frame at a time. Poll never blocks.
type InputQueue struct {
	mu    sync.Mutex
	frame InputFrame
}

// NewInputQueue creates an empty queue.
func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

// Push records an action. Safe for concurrent use.
func (q *InputQueue) Push(a Action) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.frame.Set(a)
}

// Poll returns every action pushed since the previous poll and clears the queue.
func (q *InputQueue) Poll() InputFrame {
	q.mu.Lock()
	defer q.mu.Unlock()
	f := q.frame
	q.frame.Clear()
	return f
}
