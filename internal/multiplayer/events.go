package multiplayer

// SessionEvent represents an event sent from the coordinator to a session.
type SessionEvent interface {
	sessionEvent()
}

// WaitingEvent is sent when a session enters the queue.
type WaitingEvent struct {
	Queued int // Sessions waiting, including this one
}

func (WaitingEvent) sessionEvent() {}

// PairedEvent is sent to both sessions when a duel is formed.
type PairedEvent struct {
	Pairing Pairing
}

func (PairedEvent) sessionEvent() {}

// OpponentLeftEvent is sent when the other session of a duel disconnects.
// The protocol has no disconnect message, so the local node is not told.
type OpponentLeftEvent struct {
	MatchID MatchID
}

func (OpponentLeftEvent) sessionEvent() {}

// WaitExpiredEvent is sent to a session that waited too long for an opponent.
type WaitExpiredEvent struct{}

func (WaitExpiredEvent) sessionEvent() {}

// LobbyErrorEvent is sent when a request cannot be served.
type LobbyErrorEvent struct {
	Message string
}

func (LobbyErrorEvent) sessionEvent() {}

// CoordinatorMessage represents a message from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// JoinQueueMsg asks to be paired with the next waiting session.
type JoinQueueMsg struct {
	SessionID SessionID
}

func (JoinQueueMsg) coordinatorMessage() {}

// LeaveMsg withdraws a session from the queue or its duel.
type LeaveMsg struct {
	SessionID SessionID
}

func (LeaveMsg) coordinatorMessage() {}
