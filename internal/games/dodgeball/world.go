package dodgeball

import (
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/link"
)

// Result is the record of a finished match as seen by one node.
type Result struct {
	MatchID          string
	FinalRole        Role
	RoundOneDuration uint32
	RoundTwoDuration uint32
	Won              bool
}

// WorldOptions configures a World.
type WorldOptions struct {
	Link            link.Transport // Required
	Surface         core.Surface   // Defaults to a fresh GridRows x GridCols bitmap
	Gameplay        config.GameplayConfig
	CountdownFrames int
	Indicator       Indicator
	Logger          *zap.SugaredLogger
	MatchID         string
	OnFinish        func(Result)
}

// World is the whole mutable state of one node.
type World struct {
	State  GameState
	Player Player
	Pool   Pool

	surface         core.Surface
	link            link.Transport
	gameplay        config.GameplayConfig
	countdownFrames int
	indicator       Indicator
	log             *zap.SugaredLogger
	matchID         string
	onFinish        func(Result)

	countdown int
	led       bool
}

// ErrNoLink is returned by NewWorld without a transport.
var ErrNoLink = errors.New("dodgeball: no link transport")

// NewWorld creates a world in the setup phase.
func NewWorld(opts WorldOptions) (*World, error) {
	if opts.Link == nil {
		return nil, ErrNoLink
	}
	if opts.Surface == nil {
		opts.Surface = core.NewBitmap(GridRows, GridCols)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Gameplay.RampLength <= 0 {
		opts.Gameplay = config.DefaultDodgeballConfig().Gameplay
	}

	w := &World{
		surface:         opts.Surface,
		link:            opts.Link,
		gameplay:        opts.Gameplay,
		countdownFrames: opts.CountdownFrames,
		indicator:       opts.Indicator,
		log:             opts.Logger,
		matchID:         opts.MatchID,
		onFinish:        opts.OnFinish,
	}
	w.Reset()
	return w, nil
}

// Surface returns the pixel surface the world paints on.
func (w *World) Surface() core.Surface {
	return w.surface
}

// Indicator reports whether the fire-ready light is on.
func (w *World) Indicator() bool {
	return w.led
}

// Reset clears every entity and returns to setup with side 'A' selected.
func (w *World) Reset() {
	w.surface.Clear()
	w.State.Reset()
	w.Player.Reset()
	w.Pool.Reset()
	w.countdown = 0
	w.setIndicator(false)
}

// ToggleSide flips the setup selection between attack and defend.
func (w *World) ToggleSide() {
	if w.State.Phase != PhaseSetup {
		return
	}
	w.State.Side = link.Complement(w.State.Side)
}

// Confirm commits the setup selection, or starts over after a finished match.
func (w *World) Confirm() {
	switch w.State.Phase {
	case PhaseSetup:
		b, err := link.EncodeSide(w.State.Side)
		if err != nil {
			w.log.Errorw("cannot encode side", "side", w.State.Side, "error", err)
			return
		}
		w.send(b)
		w.startGame()
	case PhaseFinish:
		w.log.Infow("match reset", "match", w.matchID)
		w.Reset()
	}
}

// Fire throws a ball from in front of the attacker.
// It reports whether a ball was spawned.
func (w *World) Fire() bool {
	if w.State.Phase != PhasePlaying || w.Player.Field != RoleAttack {
		return false
	}
	if w.State.FireCooldown < w.State.FireCooldownMax {
		return false
	}
	if w.surface.Pixel(core.Pt(AttackSpawnRow, w.Player.Pos)) {
		return false
	}
	if !w.Pool.Spawn(w.surface, w.Player.Pos, RoleAttack) {
		w.log.Debugw("ball pool full, shot dropped", "col", w.Player.Pos)
		return false
	}

	w.State.FireCooldown = 0
	w.setIndicator(false)
	return true
}

// HandleInput applies one polled input frame.
func (w *World) HandleInput(in core.InputFrame) {
	switch w.State.Phase {
	case PhaseSetup:
		if in.Has(core.ActionLeft) || in.Has(core.ActionRight) {
			w.ToggleSide()
		}
		if in.Has(core.ActionConfirm) {
			w.Confirm()
		}

	case PhasePlaying:
		attacking := w.Player.Field == RoleAttack
		if attacking && in.Has(core.ActionFire) {
			w.Fire()
		}
		if in.Has(core.ActionLeft) {
			w.Player.Move(w.surface, DirLeft)
		}
		if in.Has(core.ActionRight) {
			w.Player.Move(w.surface, DirRight)
		}
		if attacking {
			if w.State.FireCooldown < w.State.FireCooldownMax {
				w.State.FireCooldown++
			} else {
				w.setIndicator(true)
			}
		}

	case PhaseFinish:
		if in.Has(core.ActionConfirm) {
			w.Confirm()
		}
	}
}

// HandleMessage applies one decoded link message. It reports false when
// the message does not apply to the current phase and role.
func (w *World) HandleMessage(msg link.Message) bool {
	switch w.State.Phase {
	case PhaseSetup:
		if msg.Kind != link.KindSide {
			return false
		}
		w.State.Side = link.Complement(msg.Side)
		w.startGame()
		return true

	case PhasePlaying:
		switch {
		case w.Player.Field == RoleDefend && msg.Kind == link.KindBall:
			if !w.Pool.Spawn(w.surface, msg.Column, RoleDefend) {
				w.log.Debugw("ball pool full, incoming ball dropped", "col", msg.Column)
			}
			return true
		case w.Player.Field == RoleAttack && msg.Kind == link.KindRoundOver:
			w.State.RoundOneFinished = true
			w.startGame()
			return true
		case w.Player.Field == RoleAttack && msg.Kind == link.KindGameOver:
			if w.State.GameOver {
				return false
			}
			w.State.GameOver = true
			w.determineWinner()
			return true
		}
	}
	return false
}

// CountDuration adds one to the current round's survival counter.
func (w *World) CountDuration() {
	if w.State.Phase != PhasePlaying || w.State.GameOver {
		return
	}
	if w.State.RoundOneFinished {
		w.State.RoundTwoDuration++
	} else {
		w.State.RoundOneDuration++
	}
}

// Ramp shortens the attacker's fire cooldown by one every RampLength calls.
func (w *World) Ramp() {
	if w.State.Phase != PhasePlaying || w.Player.Field != RoleAttack {
		return
	}
	w.State.CooldownRamp++
	if w.State.CooldownRamp < w.gameplay.RampLength {
		return
	}
	w.State.CooldownRamp = 0
	if w.State.FireCooldownMax > w.gameplay.MinFireCooldown {
		w.State.FireCooldownMax--
	}
}

// AdvanceBalls moves every active ball one row, forwarding escaped attack
// balls to the peer and applying hits to the defender.
func (w *World) AdvanceBalls() {
	if w.State.Phase != PhasePlaying {
		return
	}
	for i := 0; i < w.Pool.Len(); i++ {
		out := w.Pool.Advance(w.surface, i)
		switch out.Kind {
		case OutcomeExited:
			if out.Field == RoleAttack {
				w.sendBall(out.Col)
			}
		case OutcomeHit:
			w.log.Debugw("defender hit", "col", out.Col, "hits", w.Player.Hits+1)
			if w.Player.Hit(w.surface) {
				w.endRound()
				return
			}
		}
	}
}

// Frame takes a snapshot for the presenter.
func (w *World) Frame() Frame {
	return Frame{
		Phase:            w.State.Phase,
		Role:             w.Player.Field,
		Side:             w.State.Side,
		Round:            w.State.Round(),
		Pixels:           snapshot(w.surface),
		Banner:           w.Banner(),
		Indicator:        w.led,
		Hits:             w.Player.Hits,
		ActiveBalls:      w.Pool.Active(),
		RoundOneDuration: w.State.RoundOneDuration,
		RoundTwoDuration: w.State.RoundTwoDuration,
		Won:              w.State.Won,
	}
}

// Banner is the text shown over the field: the side letter during setup,
// the countdown at round start and the verdict at the end.
func (w *World) Banner() string {
	switch w.State.Phase {
	case PhaseSetup:
		return string(w.State.Side)
	case PhasePlaying:
		if w.countdown > 0 && w.countdownFrames > 0 {
			return strconv.Itoa(1 + (w.countdown-1)*3/w.countdownFrames)
		}
		return ""
	case PhaseFinish:
		if w.State.Won {
			return BannerWinner
		}
		return BannerLoser
	}
	return ""
}

func (w *World) tickCountdown() {
	if w.State.Phase == PhasePlaying && w.countdown > 0 {
		w.countdown--
	}
}

func (w *World) startGame() {
	w.surface.Clear()

	role := RoleForSide(w.State.Side)
	if w.State.RoundOneFinished {
		role = role.Opposite()
		w.Pool.Reset()
	}

	w.State.FireCooldown = w.gameplay.FireCooldown
	w.State.FireCooldownMax = w.gameplay.FireCooldown
	w.State.CooldownRamp = 0

	w.Player.BeginRound(w.surface, role)
	w.State.Phase = PhasePlaying
	w.countdown = w.countdownFrames

	w.log.Infow("round started",
		"match", w.matchID,
		"round", w.State.Round(),
		"role", role.String(),
	)
}

func (w *World) endRound() {
	if !w.State.RoundOneFinished {
		w.State.RoundOneFinished = true
		w.log.Infow("round one over", "match", w.matchID, "duration", w.State.RoundOneDuration)
		if w.Player.Field == RoleDefend {
			w.send(link.RoundOver)
			w.startGame()
		}
		return
	}

	w.Pool.Reset()
	if w.Player.Field == RoleDefend {
		w.send(link.GameOver)
	}
	if !w.State.GameOver {
		w.State.GameOver = true
		w.determineWinner()
	}
}

func (w *World) determineWinner() {
	r1, r2 := w.State.RoundOneDuration, w.State.RoundTwoDuration
	switch w.Player.Field {
	case RoleDefend:
		w.State.Won = r1 < r2
	case RoleAttack:
		w.State.Won = r1 > r2
	default:
		w.State.Won = false
	}

	w.State.Phase = PhaseFinish
	w.surface.Clear()
	w.countdown = 0
	w.setIndicator(false)

	w.log.Infow("match finished",
		"match", w.matchID,
		"role", w.Player.Field.String(),
		"round_one", r1,
		"round_two", r2,
		"won", w.State.Won,
	)

	if w.onFinish != nil {
		w.onFinish(Result{
			MatchID:          w.matchID,
			FinalRole:        w.Player.Field,
			RoundOneDuration: r1,
			RoundTwoDuration: r2,
			Won:              w.State.Won,
		})
	}
}

func (w *World) sendBall(col int) {
	b, err := link.EncodeBall(col)
	if err != nil {
		w.log.Errorw("cannot encode ball", "col", col, "error", err)
		return
	}
	w.send(b)
}

// send hands b to the link. A failed send drops the byte; the game goes on.
func (w *World) send(b byte) {
	if err := w.link.SendByte(b); err != nil {
		w.log.Warnw("link send failed, byte dropped", "byte", b, "error", err)
	}
}

func (w *World) setIndicator(on bool) {
	w.led = on
	if w.indicator != nil {
		w.indicator.Set(on)
	}
}
