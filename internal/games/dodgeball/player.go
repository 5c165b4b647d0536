package dodgeball

import "github.com/vovakirdan/tui-dodgeball/internal/core"

// Direction is a single-step player movement.
type Direction int

const (
	DirLeft  Direction = -1 // Toward column 0
	DirRight Direction = 1  // Toward FieldWidth
)

// Player is the local human.
// The rendered cells always match Pos, Hits and Field: every mutation
// erases the old footprint and paints the new one.
type Player struct {
	Pos   int
	Hits  int
	Field Role
}

// Reset returns the player to the centre with no damage and no role.
// The surface is not touched.
func (p *Player) Reset() {
	p.Pos = CenterPos
	p.Hits = 0
	p.Field = RoleNone
}

// BeginRound places an undamaged player with the given role and paints it.
func (p *Player) BeginRound(s core.Surface, role Role) {
	p.Pos = CenterPos
	p.Hits = 0
	p.Field = role
	p.paint(s, true)
}

// Footprint returns the cells the player occupies.
// The attacker is one cell; the defender is a 2x2 block until hit,
// then shrinks to one cell.
func (p *Player) Footprint() core.Rect {
	switch {
	case p.Field == RoleDefend && p.Hits == 0:
		return core.NewRect(p.Pos, BottomRow-1, 2, 2)
	case p.Field == RoleNone:
		return core.NewRect(p.Pos, BottomRow, 0, 0)
	default:
		return core.NewRect(p.Pos, BottomRow, 1, 1)
	}
}

// MaxPos is the highest column the player may stand on in its current state.
func (p *Player) MaxPos() int {
	if p.Field == RoleDefend && p.Hits == 0 {
		return FieldWidth - 1
	}
	return FieldWidth
}

// Move steps one column in dir if the bounds allow it.
// It reports whether the player moved.
func (p *Player) Move(s core.Surface, dir Direction) bool {
	next := p.Pos + int(dir)
	if next < 0 || next > p.MaxPos() {
		return false
	}

	p.paint(s, false)
	p.Pos = next
	p.paint(s, true)
	return true
}

// Hit records one hit and repaints the smaller footprint.
// It returns true once the hit count has reached MaxHits; the count
// never goes past it.
func (p *Player) Hit(s core.Surface) bool {
	if p.Hits >= MaxHits {
		return true
	}

	p.paint(s, false)
	p.Hits++

	if p.Hits < MaxHits {
		p.paint(s, true)
		return false
	}
	return true
}

// Dead reports whether the player has taken MaxHits hits.
func (p *Player) Dead() bool {
	return p.Hits >= MaxHits
}

func (p *Player) paint(s core.Surface, on bool) {
	r := p.Footprint()
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetPixel(core.Pt(y, x), on)
		}
	}
}
