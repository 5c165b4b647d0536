// Package dodgeball implements the two-node dodgeball duel: one node
// attacks by throwing balls, the other defends by dodging them. Balls that
// leave the attacker's field cross the link and enter the defender's field.
//
// All state of a node lives in one World. The World is only touched by the
// tasks of that node's scheduler, which run strictly one after another, so
// nothing in this package locks.
package dodgeball

import "github.com/vovakirdan/tui-dodgeball/internal/link"

// Field geometry. Row 0 is the far edge, BottomRow is where the local
// player stands.
const (
	GridRows   = 5
	GridCols   = link.FieldWidth + 1
	FieldWidth = link.FieldWidth
	BottomRow  = GridRows - 1
	TopRow     = GridRows - 1
	CenterPos  = 3
)

// Ball settings.
const (
	MaxActiveBalls = 6
	AttackSpawnRow = 3 // Just above the attacker, travelling toward row 0
	DefendSpawnRow = 0 // Far edge, travelling toward the defender
)

// MaxHits is the number of hits that kills a defender.
const MaxHits = 2

// Banner texts.
const (
	BannerWinner = "WINNER!!!"
	BannerLoser  = "LOSER..."
)
