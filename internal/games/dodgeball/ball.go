package dodgeball

import "github.com/vovakirdan/tui-dodgeball/internal/core"

// Ball is one slot of the pool.
// Field decides both the travel direction and the collision rule.
type Ball struct {
	Row    int
	Col    int
	Active bool
	Field  Role
}

// OutcomeKind describes what advancing a slot did.
type OutcomeKind int

const (
	OutcomeIdle   OutcomeKind = iota // Slot was inactive
	OutcomeMoved                     // Ball moved one row
	OutcomeExited                    // Ball passed the far edge and was deactivated
	OutcomeHit                       // Defend ball struck an occupied cell and was deactivated
)

// Outcome is the result of advancing one slot.
type Outcome struct {
	Kind  OutcomeKind
	Col   int
	Field Role
}

// Pool is the fixed-capacity set of ball slots.
type Pool struct {
	slots [MaxActiveBalls]Ball
}

// Len returns the pool capacity.
func (p *Pool) Len() int {
	return len(p.slots)
}

// Slot returns a copy of slot i.
func (p *Pool) Slot(i int) Ball {
	return p.slots[i]
}

// Active returns the number of active slots.
func (p *Pool) Active() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Active {
			n++
		}
	}
	return n
}

// Spawn activates the first free slot at the role's entry row and col and
// paints it. It reports false, changing nothing, when every slot is taken.
func (p *Pool) Spawn(s core.Surface, col int, field Role) bool {
	row := DefendSpawnRow
	if field == RoleAttack {
		row = AttackSpawnRow
	}

	for i := range p.slots {
		if p.slots[i].Active {
			continue
		}
		p.slots[i] = Ball{Row: row, Col: col, Active: true, Field: field}
		s.SetPixel(core.Pt(row, col), true)
		return true
	}
	return false
}

// Advance moves slot i one row toward the far edge of its field.
//
// A ball that already stands past the edge is deactivated instead
// (OutcomeExited). A defend ball whose destination is occupied is
// deactivated and reported as OutcomeHit; that cell is left untouched.
// Attack balls never collide locally.
func (p *Pool) Advance(s core.Surface, i int) Outcome {
	b := &p.slots[i]
	if !b.Active {
		return Outcome{Kind: OutcomeIdle}
	}

	s.SetPixel(core.Pt(b.Row, b.Col), false)

	if b.Row < 0 || b.Row > TopRow {
		b.Active = false
		return Outcome{Kind: OutcomeExited, Col: b.Col, Field: b.Field}
	}

	if b.Field == RoleAttack {
		b.Row--
	} else {
		b.Row++
	}

	dest := core.Pt(b.Row, b.Col)
	if s.Pixel(dest) && b.Field == RoleDefend {
		b.Active = false
		return Outcome{Kind: OutcomeHit, Col: b.Col, Field: b.Field}
	}

	s.SetPixel(dest, true)
	return Outcome{Kind: OutcomeMoved, Col: b.Col, Field: b.Field}
}

// Reset deactivates every slot. The surface is not touched.
func (p *Pool) Reset() {
	for i := range p.slots {
		p.slots[i].Active = false
	}
}
