package dodgeball

import (
	"testing"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/link"
)

func testGameplay() config.GameplayConfig {
	return config.GameplayConfig{FireCooldown: 3, RampLength: 2, MinFireCooldown: 1}
}

type results struct {
	list []Result
}

func (r *results) record(res Result) { r.list = append(r.list, res) }

func newTestWorld(t *testing.T, tr link.Transport, rec *results) *World {
	t.Helper()
	opts := WorldOptions{Link: tr, Gameplay: testGameplay(), MatchID: "test"}
	if rec != nil {
		opts.OnFinish = rec.record
	}
	w, err := NewWorld(opts)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	return w
}

func newPair(t *testing.T) (a, b *World, ra, rb *results) {
	t.Helper()
	ea, eb := link.Pipe()
	ra, rb = &results{}, &results{}
	return newTestWorld(t, ea, ra), newTestWorld(t, eb, rb), ra, rb
}

// drain handles every byte waiting on w's link.
func drain(w *World) {
	for w.link.ByteReady() {
		w.PollLink()
	}
}

// startDuel confirms on a with its current side and lets b follow.
func startDuel(t *testing.T, a, b *World) {
	t.Helper()
	a.Confirm()
	drain(b)
	if a.State.Phase != PhasePlaying || b.State.Phase != PhasePlaying {
		t.Fatalf("phases = %v/%v, expected playing", a.State.Phase, b.State.Phase)
	}
}

// hitDefender feeds a ball at col into defender w and advances until it lands.
func hitDefender(t *testing.T, w *World, col int) {
	t.Helper()
	hits, round := w.Player.Hits, w.State.Round()
	if !w.HandleMessage(link.Message{Kind: link.KindBall, Column: col}) {
		t.Fatal("defender rejected a ball")
	}
	for i := 0; i < GridRows+2; i++ {
		w.AdvanceBalls()
		if w.Player.Hits != hits || w.State.Round() != round || w.State.Phase != PhasePlaying {
			return
		}
	}
	t.Fatalf("ball at col %d never hit the defender at %d", col, w.Player.Pos)
}

func count(w *World, n int) {
	for i := 0; i < n; i++ {
		w.CountDuration()
	}
}

func TestNewWorldRequiresLink(t *testing.T) {
	if _, err := NewWorld(WorldOptions{}); err != ErrNoLink {
		t.Errorf("NewWorld() error = %v, expected %v", err, ErrNoLink)
	}
}

func TestNewWorldStartsInSetup(t *testing.T) {
	a, _, _, _ := newPair(t)

	if a.State.Phase != PhaseSetup {
		t.Errorf("Phase = %v, expected setup", a.State.Phase)
	}
	if a.State.Side != link.SideAttack {
		t.Errorf("Side = %c, expected A", a.State.Side)
	}
	if a.Banner() != "A" {
		t.Errorf("Banner() = %q, expected %q", a.Banner(), "A")
	}
}

func TestConfirmAssignsComplementaryRoles(t *testing.T) {
	tests := []struct {
		name   string
		toggle bool
		roleA  Role
		roleB  Role
	}{
		{"attack", false, RoleAttack, RoleDefend},
		{"defend", true, RoleDefend, RoleAttack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, _, _ := newPair(t)
			if tt.toggle {
				a.HandleInput(core.NewInputFrame(core.ActionLeft))
			}
			a.HandleInput(core.NewInputFrame(core.ActionConfirm))
			drain(b)

			if a.Player.Field != tt.roleA || b.Player.Field != tt.roleB {
				t.Errorf("roles = %v/%v, expected %v/%v", a.Player.Field, b.Player.Field, tt.roleA, tt.roleB)
			}
			if a.State.Side != link.Complement(b.State.Side) {
				t.Errorf("sides = %c/%c, expected complementary", a.State.Side, b.State.Side)
			}
		})
	}
}

func TestSideToggle(t *testing.T) {
	a, _, _, _ := newPair(t)

	a.HandleInput(core.NewInputFrame(core.ActionRight))
	if a.State.Side != link.SideDefend {
		t.Errorf("Side = %c after toggle, expected D", a.State.Side)
	}
	a.HandleInput(core.NewInputFrame(core.ActionLeft, core.ActionRight))
	if a.State.Side != link.SideAttack {
		t.Errorf("Side = %c after second toggle, expected A", a.State.Side)
	}
}

func TestFireRules(t *testing.T) {
	a, b, _, _ := newPair(t)
	startDuel(t, a, b)

	if b.Fire() {
		t.Error("defender Fire() = true")
	}
	if !a.Fire() {
		t.Fatal("Fire() with full cooldown = false")
	}
	if a.State.FireCooldown != 0 || a.Indicator() {
		t.Errorf("after shot cooldown = %d indicator = %v, expected 0/off", a.State.FireCooldown, a.Indicator())
	}
	if a.Fire() {
		t.Error("Fire() during cooldown = true")
	}

	for i := 0; i < testGameplay().FireCooldown; i++ {
		a.HandleInput(core.InputFrame{})
	}
	if a.Indicator() {
		t.Error("indicator on before the tick after cooldown completes")
	}
	a.HandleInput(core.InputFrame{})
	if !a.Indicator() {
		t.Error("indicator off after cooldown completed")
	}

	// The first ball still sits on the spawn cell.
	if a.Fire() {
		t.Error("Fire() onto an occupied spawn cell = true")
	}
	a.AdvanceBalls()
	if !a.Fire() {
		t.Error("Fire() after spawn cell cleared = false")
	}
}

func TestBallCrossesLinkMirrored(t *testing.T) {
	a, b, _, _ := newPair(t)
	startDuel(t, a, b)

	a.Player.Move(a.Surface(), DirLeft)
	if !a.Fire() {
		t.Fatal("Fire() = false")
	}
	for i := 0; i < AttackSpawnRow+2; i++ {
		a.AdvanceBalls()
	}
	if a.Pool.Active() != 0 {
		t.Fatalf("attacker still has %d balls", a.Pool.Active())
	}

	drain(b)
	if b.Pool.Active() != 1 {
		t.Fatalf("defender Active() = %d, expected 1", b.Pool.Active())
	}
	ball := b.Pool.Slot(0)
	want := link.Mirror(CenterPos - 1)
	if ball.Col != want || ball.Row != DefendSpawnRow || ball.Field != RoleDefend {
		t.Errorf("incoming ball = %+v, expected col %d at row %d", ball, want, DefendSpawnRow)
	}
	if !b.Surface().Pixel(core.Pt(DefendSpawnRow, want)) {
		t.Error("incoming ball not painted")
	}
}

func TestDefenderDeathSwapsRoles(t *testing.T) {
	a, b, _, _ := newPair(t)
	startDuel(t, a, b)

	hitDefender(t, b, CenterPos)
	if b.Player.Hits != 1 || b.State.RoundOneFinished {
		t.Fatalf("after first hit: hits = %d finished = %v", b.Player.Hits, b.State.RoundOneFinished)
	}
	hitDefender(t, b, CenterPos)

	if !b.State.RoundOneFinished || b.Player.Field != RoleAttack {
		t.Fatalf("defender after death: finished = %v role = %v", b.State.RoundOneFinished, b.Player.Field)
	}
	if b.Player.Hits != 0 || b.Player.Pos != CenterPos || b.Pool.Active() != 0 {
		t.Errorf("round two player = %+v, balls = %d", b.Player, b.Pool.Active())
	}

	drain(a)
	if !a.State.RoundOneFinished || a.Player.Field != RoleDefend {
		t.Errorf("attacker after 'R': finished = %v role = %v", a.State.RoundOneFinished, a.Player.Field)
	}
	if a.State.Round() != 2 || b.State.Round() != 2 {
		t.Errorf("rounds = %d/%d, expected 2/2", a.State.Round(), b.State.Round())
	}
}

func TestWinnerAgreement(t *testing.T) {
	tests := []struct {
		name      string
		roundOne  int
		roundTwo  int
		aWins     bool
		bWins     bool
		bothLoser bool
	}{
		{"second defender survived longer", 10, 20, true, false, false},
		{"first defender survived longer", 20, 10, false, true, false},
		{"tie", 15, 15, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ra, rb := newPair(t)
			startDuel(t, a, b)

			count(a, tt.roundOne)
			count(b, tt.roundOne)
			hitDefender(t, b, CenterPos)
			hitDefender(t, b, CenterPos)
			drain(a)

			count(a, tt.roundTwo)
			count(b, tt.roundTwo)
			hitDefender(t, a, CenterPos)
			hitDefender(t, a, CenterPos)
			drain(b)

			if a.State.Phase != PhaseFinish || b.State.Phase != PhaseFinish {
				t.Fatalf("phases = %v/%v, expected finish", a.State.Phase, b.State.Phase)
			}
			if a.State.Won != tt.aWins || b.State.Won != tt.bWins {
				t.Errorf("won = %v/%v, expected %v/%v", a.State.Won, b.State.Won, tt.aWins, tt.bWins)
			}
			if !tt.bothLoser && a.State.Won == b.State.Won {
				t.Error("both nodes reached the same verdict")
			}
			if len(ra.list) != 1 || len(rb.list) != 1 {
				t.Fatalf("results = %d/%d, expected 1/1", len(ra.list), len(rb.list))
			}
			if ra.list[0].RoundOneDuration != uint32(tt.roundOne) || ra.list[0].RoundTwoDuration != uint32(tt.roundTwo) {
				t.Errorf("result = %+v", ra.list[0])
			}
			if ra.list[0].FinalRole != RoleDefend || rb.list[0].FinalRole != RoleAttack {
				t.Errorf("final roles = %v/%v", ra.list[0].FinalRole, rb.list[0].FinalRole)
			}

			want := BannerLoser
			if tt.aWins {
				want = BannerWinner
			}
			if a.Banner() != want {
				t.Errorf("Banner() = %q, expected %q", a.Banner(), want)
			}
		})
	}
}

func TestGameOverIsLatched(t *testing.T) {
	a, b, ra, _ := newPair(t)
	startDuel(t, a, b)

	if !a.HandleMessage(link.Message{Kind: link.KindGameOver}) {
		t.Fatal("attacker ignored the first game over")
	}
	if a.State.Phase != PhaseFinish {
		t.Fatalf("Phase = %v, expected finish", a.State.Phase)
	}

	a.State.Phase = PhasePlaying
	if a.HandleMessage(link.Message{Kind: link.KindGameOver}) {
		t.Error("second game over was accepted")
	}
	if len(ra.list) != 1 {
		t.Errorf("winner computed %d times, expected once", len(ra.list))
	}
}

func TestResetIsIdempotent(t *testing.T) {
	a, b, _, _ := newPair(t)
	startDuel(t, a, b)
	a.Player.Move(a.Surface(), DirRight)
	a.Fire()

	a.HandleInput(core.NewInputFrame(core.ActionConfirm)) // ignored while playing
	if a.State.Phase != PhasePlaying {
		t.Fatal("confirm while playing changed the phase")
	}

	a.State.Phase = PhaseFinish
	a.HandleInput(core.NewInputFrame(core.ActionConfirm))

	check := func(when string) {
		fresh := GameState{Phase: PhaseSetup, Side: link.SideAttack}
		if a.State != fresh {
			t.Errorf("%s: state = %+v, expected %+v", when, a.State, fresh)
		}
		if a.Player != (Player{Pos: CenterPos}) {
			t.Errorf("%s: player = %+v", when, a.Player)
		}
		if a.Pool.Active() != 0 || a.Surface().(*core.Bitmap).Lit() != 0 || a.Indicator() {
			t.Errorf("%s: leftover balls, pixels or indicator", when)
		}
	}
	check("first reset")
	a.Reset()
	check("second reset")
}

func TestLinkMessagesGatedByPhaseAndRole(t *testing.T) {
	ball := link.Decode(2)
	tests := []struct {
		name  string
		setup func(t *testing.T, a, b *World) *World
		msg   link.Message
	}{
		{"ball during setup", func(t *testing.T, a, b *World) *World { return a }, ball},
		{"round over during setup", func(t *testing.T, a, b *World) *World { return a }, link.Decode(link.RoundOver)},
		{"ball at attacker", func(t *testing.T, a, b *World) *World { startDuel(t, a, b); return a }, ball},
		{"side while playing", func(t *testing.T, a, b *World) *World { startDuel(t, a, b); return b }, link.Decode(link.SideAttack)},
		{"round over at defender", func(t *testing.T, a, b *World) *World { startDuel(t, a, b); return b }, link.Decode(link.RoundOver)},
		{"game over at defender", func(t *testing.T, a, b *World) *World { startDuel(t, a, b); return b }, link.Decode(link.GameOver)},
		{"invalid byte", func(t *testing.T, a, b *World) *World { startDuel(t, a, b); return b }, link.Decode('x')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, _, _ := newPair(t)
			w := tt.setup(t, a, b)
			before := w.State

			if w.HandleMessage(tt.msg) {
				t.Errorf("HandleMessage(%v) = true, expected ignored", tt.msg)
			}
			if w.State != before {
				t.Errorf("state changed: %+v -> %+v", before, w.State)
			}
		})
	}
}

func TestRamp(t *testing.T) {
	a, b, _, _ := newPair(t)
	startDuel(t, a, b)

	expected := []int{3, 3, 2, 2, 1, 1, 1}
	for i, want := range expected {
		if a.State.FireCooldownMax != want {
			t.Errorf("after %d ramp ticks max = %d, expected %d", i, a.State.FireCooldownMax, want)
		}
		a.Ramp()
	}

	b.Ramp()
	b.Ramp()
	if b.State.FireCooldownMax != testGameplay().FireCooldown || b.State.CooldownRamp != 0 {
		t.Errorf("defender ramp changed: max = %d ramp = %d", b.State.FireCooldownMax, b.State.CooldownRamp)
	}
}

func TestDurationCounting(t *testing.T) {
	a, b, _, _ := newPair(t)

	count(a, 5)
	if a.State.RoundOneDuration != 0 {
		t.Errorf("setup counted %d ticks", a.State.RoundOneDuration)
	}

	startDuel(t, a, b)
	count(a, 4)
	a.State.RoundOneFinished = true
	count(a, 6)
	a.State.GameOver = true
	count(a, 9)

	if a.State.RoundOneDuration != 4 || a.State.RoundTwoDuration != 6 {
		t.Errorf("durations = %d/%d, expected 4/6", a.State.RoundOneDuration, a.State.RoundTwoDuration)
	}
}

func TestCountdownBanner(t *testing.T) {
	ea, _ := link.Pipe()
	w, err := NewWorld(WorldOptions{Link: ea, Gameplay: testGameplay(), CountdownFrames: 3})
	if err != nil {
		t.Fatal(err)
	}
	w.Confirm()

	var banners []string
	p := PresenterFunc(func(f Frame) { banners = append(banners, f.Banner) })
	if w.Banner() != "3" {
		t.Errorf("Banner() at round start = %q, expected 3", w.Banner())
	}
	for i := 0; i < 4; i++ {
		w.Display(p)
	}

	expected := []string{"2", "1", "", ""}
	for i := range expected {
		if banners[i] != expected[i] {
			t.Errorf("frame %d banner = %q, expected %q", i, banners[i], expected[i])
		}
	}
}

func TestFrameIsSnapshot(t *testing.T) {
	a, b, _, _ := newPair(t)
	startDuel(t, a, b)

	f := a.Frame()
	a.Player.Move(a.Surface(), DirLeft)

	if !f.Pixels.Pixel(core.Pt(BottomRow, CenterPos)) {
		t.Error("frame changed after the world moved on")
	}
	if f.Role != RoleAttack || f.Round != 1 || f.Indicator != a.Indicator() {
		t.Errorf("frame = %+v", f)
	}
}
