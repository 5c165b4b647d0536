package dodgeball

import (
	"testing"

	"github.com/vovakirdan/tui-dodgeball/internal/core"
)

func newField() *core.Bitmap {
	return core.NewBitmap(GridRows, GridCols)
}

func TestPoolSpawnFillsFirstFreeSlot(t *testing.T) {
	s := newField()
	var p Pool

	for i := 0; i < MaxActiveBalls; i++ {
		if !p.Spawn(s, i%GridCols, RoleDefend) {
			t.Fatalf("Spawn() #%d = false, expected true", i)
		}
	}
	if p.Active() != MaxActiveBalls {
		t.Errorf("Active() = %d, expected %d", p.Active(), MaxActiveBalls)
	}

	before := s.Clone()
	if p.Spawn(s, 6, RoleDefend) {
		t.Error("Spawn() on a full pool = true, expected false")
	}
	if s.Pixel(core.Pt(DefendSpawnRow, 6)) != before.Pixel(core.Pt(DefendSpawnRow, 6)) {
		t.Error("rejected spawn changed the surface")
	}
}

func TestPoolSpawnRows(t *testing.T) {
	tests := []struct {
		field Role
		row   int
	}{
		{RoleAttack, AttackSpawnRow},
		{RoleDefend, DefendSpawnRow},
	}

	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			s := newField()
			var p Pool
			p.Spawn(s, 2, tt.field)

			b := p.Slot(0)
			if b.Row != tt.row || b.Col != 2 || !b.Active {
				t.Errorf("slot = %+v, expected row %d col 2 active", b, tt.row)
			}
			if !s.Pixel(core.Pt(tt.row, 2)) {
				t.Error("spawned ball not painted")
			}
		})
	}
}

func TestAttackBallExitsAfterPassingRowZero(t *testing.T) {
	s := newField()
	var p Pool
	p.Spawn(s, 4, RoleAttack)

	// Rows 3 -> 2 -> 1 -> 0 -> -1 are moves; the next advance detects the exit.
	for i := 0; i < AttackSpawnRow+1; i++ {
		if out := p.Advance(s, 0); out.Kind != OutcomeMoved {
			t.Fatalf("advance %d: kind = %v, expected moved", i, out.Kind)
		}
	}
	if s.Lit() != 0 {
		t.Errorf("Lit() = %d after ball left the grid, expected 0", s.Lit())
	}

	out := p.Advance(s, 0)
	if out.Kind != OutcomeExited || out.Col != 4 || out.Field != RoleAttack {
		t.Errorf("outcome = %+v, expected exit at col 4", out)
	}
	if p.Active() != 0 {
		t.Errorf("Active() = %d, expected 0", p.Active())
	}
	if out := p.Advance(s, 0); out.Kind != OutcomeIdle {
		t.Errorf("advancing an inactive slot = %v, expected idle", out.Kind)
	}
}

func TestDefendBallHitsOccupiedCell(t *testing.T) {
	s := newField()
	var p Pool
	p.Spawn(s, 1, RoleDefend)
	s.SetPixel(core.Pt(2, 1), true)

	if out := p.Advance(s, 0); out.Kind != OutcomeMoved {
		t.Fatalf("first advance = %v, expected moved", out.Kind)
	}

	out := p.Advance(s, 0)
	if out.Kind != OutcomeHit || out.Col != 1 {
		t.Fatalf("outcome = %+v, expected hit at col 1", out)
	}
	if p.Slot(0).Active {
		t.Error("ball still active after hit")
	}
	if s.Pixel(core.Pt(1, 1)) {
		t.Error("ball's last cell still lit")
	}
	if !s.Pixel(core.Pt(2, 1)) {
		t.Error("struck cell was cleared")
	}
}

func TestAttackBallNeverCollides(t *testing.T) {
	s := newField()
	var p Pool
	p.Spawn(s, 5, RoleAttack)
	s.SetPixel(core.Pt(AttackSpawnRow-1, 5), true)

	out := p.Advance(s, 0)
	if out.Kind != OutcomeMoved {
		t.Errorf("kind = %v, expected moved", out.Kind)
	}
	if !p.Slot(0).Active {
		t.Error("attack ball deactivated by an occupied cell")
	}
}

func TestDefendBallExitsBelowPlayerRow(t *testing.T) {
	s := newField()
	var p Pool
	p.Spawn(s, 0, RoleDefend)

	moves := 0
	for {
		out := p.Advance(s, 0)
		if out.Kind == OutcomeExited {
			break
		}
		if out.Kind != OutcomeMoved {
			t.Fatalf("kind = %v, expected moved or exited", out.Kind)
		}
		moves++
		if moves > GridRows+1 {
			t.Fatal("ball never exited")
		}
	}
	if moves != GridRows {
		t.Errorf("moves = %d, expected %d", moves, GridRows)
	}
}

func TestPoolReset(t *testing.T) {
	s := newField()
	var p Pool
	p.Spawn(s, 0, RoleAttack)
	p.Spawn(s, 1, RoleDefend)
	p.Reset()

	if p.Active() != 0 {
		t.Errorf("Active() = %d after Reset, expected 0", p.Active())
	}
	if !p.Spawn(s, 2, RoleAttack) {
		t.Error("Spawn() after Reset = false")
	}
}
