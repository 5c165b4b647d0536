// Package multiplayer pairs remote sessions into dodgeball duels.
// Two paired sessions share nothing but the two ends of a link pipe;
// each runs its own node.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-dodgeball/internal/link"
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies a duel.
type MatchID string

// NewSessionID returns a fresh session ID tagged with the user name.
func NewSessionID(user string) SessionID {
	return SessionID(user + "-" + uuid.NewString()[:8])
}

// NewMatchID returns a fresh random match ID.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// Pairing is what a session learns when it is matched.
type Pairing struct {
	MatchID  MatchID
	Self     SessionID
	Opponent SessionID
	Seat     int // 1 for the session that waited, 2 for the one that arrived
	Link     link.Transport
}
