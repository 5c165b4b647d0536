// Package link carries the dodgeball message alphabet between two nodes.
//
// Every message is a single byte. There is no framing, length prefix,
// checksum, acknowledgment or retransmission: a byte that is lost is gone,
// and a byte that does not decode is ignored by the receiver.
//
//	'A' / 'D'         chosen side, sent once from setup
//	0..FieldWidth     column of a ball leaving the attacker's field
//	'R'               round one over (sent by the defender)
//	'G'               game over (sent by the defender)
package link

import "fmt"

// FieldWidth is the highest column index of the playing field.
// Ball columns on the wire range over 0..FieldWidth inclusive.
const FieldWidth = 6

// Wire bytes of the non-numeric messages.
const (
	SideAttack byte = 'A'
	SideDefend byte = 'D'
	RoundOver  byte = 'R'
	GameOver   byte = 'G'
)

// Kind classifies a decoded byte.
type Kind int

const (
	KindInvalid Kind = iota
	KindSide
	KindBall
	KindRoundOver
	KindGameOver
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindSide:
		return "side"
	case KindBall:
		return "ball"
	case KindRoundOver:
		return "round-over"
	case KindGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Message is a decoded link byte.
type Message struct {
	Kind Kind
	Raw  byte

	// Side is SideAttack or SideDefend for KindSide.
	Side byte

	// Column is the receiver-frame column for KindBall, already mirrored.
	Column int
}

// String formats the message for logs.
func (m Message) String() string {
	switch m.Kind {
	case KindSide:
		return fmt.Sprintf("side(%c)", m.Side)
	case KindBall:
		return fmt.Sprintf("ball(col=%d raw=%d)", m.Column, m.Raw)
	case KindInvalid:
		return fmt.Sprintf("invalid(0x%02x)", m.Raw)
	default:
		return m.Kind.String()
	}
}

// Mirror maps a column of the sender's frame into the receiver's frame.
// The two nodes face each other, so the field is reflected about FieldWidth.
func Mirror(col int) int {
	return FieldWidth - col
}

// EncodeBall returns the wire byte for a ball leaving the field at col.
// The column travels in the sender's frame; the receiver mirrors it.
func EncodeBall(col int) (byte, error) {
	if col < 0 || col > FieldWidth {
		return 0, fmt.Errorf("link: ball column %d outside 0..%d", col, FieldWidth)
	}
	return byte(col), nil
}

// EncodeSide returns the wire byte announcing the sender's chosen side.
func EncodeSide(side byte) (byte, error) {
	if side != SideAttack && side != SideDefend {
		return 0, fmt.Errorf("link: unknown side %q", side)
	}
	return side, nil
}

// Decode classifies one received byte.
func Decode(b byte) Message {
	switch {
	case b == SideAttack || b == SideDefend:
		return Message{Kind: KindSide, Raw: b, Side: b}
	case b == RoundOver:
		return Message{Kind: KindRoundOver, Raw: b}
	case b == GameOver:
		return Message{Kind: KindGameOver, Raw: b}
	case int(b) <= FieldWidth:
		return Message{Kind: KindBall, Raw: b, Column: Mirror(int(b))}
	default:
		return Message{Kind: KindInvalid, Raw: b}
	}
}

// Complement returns the side the receiver of side must take.
func Complement(side byte) byte {
	if side == SideAttack {
		return SideDefend
	}
	return SideAttack
}
