package dodgeball

import "github.com/vovakirdan/tui-dodgeball/internal/link"

// Phase is the top-level mode of a node.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlaying
	PhaseFinish
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlaying:
		return "playing"
	case PhaseFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// GameState holds the match bookkeeping of one node.
type GameState struct {
	Phase            Phase
	Side             byte // Side letter picked during setup, link.SideAttack or link.SideDefend
	RoundOneFinished bool
	GameOver         bool // Latched by the first game-over path; never cleared until Reset
	RoundOneDuration uint32
	RoundTwoDuration uint32
	FireCooldown     int // Input ticks since the last shot
	FireCooldownMax  int // Input ticks required between shots
	CooldownRamp     int // Ramp ticks since FireCooldownMax last shrank
	Won              bool
}

// Reset returns the state to a fresh setup.
func (s *GameState) Reset() {
	*s = GameState{
		Phase: PhaseSetup,
		Side:  link.SideAttack,
	}
}

// Round returns 1 or 2.
func (s *GameState) Round() int {
	if s.RoundOneFinished {
		return 2
	}
	return 1
}
