package dodgeball

import (
	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/link"
	"github.com/vovakirdan/tui-dodgeball/internal/sched"
)

// Task names, in dispatch order.
const (
	TaskDuration = "duration"
	TaskInput    = "input"
	TaskDisplay  = "display"
	TaskRamp     = "ramp"
	TaskBall     = "ball"
	TaskLink     = "link"
)

// PollInput runs one input task invocation.
func (w *World) PollInput(src InputSource) {
	w.HandleInput(src.Poll())
}

// PollLink consumes at most one received byte.
func (w *World) PollLink() {
	if !w.link.ByteReady() {
		return
	}
	b := w.link.ReceiveByte()
	msg := link.Decode(b)
	if !w.HandleMessage(msg) {
		w.log.Debugw("link byte ignored",
			"byte", b,
			"kind", msg.Kind.String(),
			"phase", w.State.Phase.String(),
			"role", w.Player.Field.String(),
		)
	}
}

// Display advances the countdown and hands a frame to p.
func (w *World) Display(p Presenter) {
	w.tickCountdown()
	p.Present(w.Frame())
}

// Tasks builds the scheduler table for w.
func Tasks(w *World, timing config.TimingConfig, in InputSource, out Presenter) []sched.Task {
	return []sched.Task{
		{Name: TaskDuration, Func: w.CountDuration, Period: timing.Period(timing.DurationRate)},
		{Name: TaskInput, Func: func() { w.PollInput(in) }, Period: timing.Period(timing.InputRate)},
		{Name: TaskDisplay, Func: func() { w.Display(out) }, Period: timing.Period(timing.DisplayRate)},
		{Name: TaskRamp, Func: w.Ramp, Period: timing.Period(timing.RampRate)},
		{Name: TaskBall, Func: w.AdvanceBalls, Period: timing.Period(timing.BallRate)},
		{Name: TaskLink, Func: w.PollLink, Period: timing.Period(timing.LinkRate)},
	}
}
