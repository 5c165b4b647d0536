package dodgeball

import "github.com/vovakirdan/tui-dodgeball/internal/core"

// Frame is an immutable snapshot of what a node shows. It is safe to hand
// to another goroutine.
type Frame struct {
	Phase            Phase
	Role             Role
	Side             byte
	Round            int
	Pixels           *core.Bitmap
	Banner           string
	Indicator        bool
	Hits             int
	ActiveBalls      int
	RoundOneDuration uint32
	RoundTwoDuration uint32
	Won              bool
}

// Presenter receives frames from the display task. Present must not block.
type Presenter interface {
	Present(f Frame)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Frame)

// Present calls f.
func (f PresenterFunc) Present(fr Frame) { f(fr) }

// InputSource is polled by the input task for the actions since the last poll.
type InputSource interface {
	Poll() core.InputFrame
}

// Indicator is the fire-ready light.
type Indicator interface {
	Set(on bool)
}

// IndicatorFunc adapts a function to Indicator.
type IndicatorFunc func(bool)

// Set calls f.
func (f IndicatorFunc) Set(on bool) { f(on) }

func snapshot(s core.Surface) *core.Bitmap {
	if b, ok := s.(*core.Bitmap); ok {
		return b.Clone()
	}
	out := core.NewBitmap(GridRows, GridCols)
	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			out.SetPixel(core.Pt(r, c), s.Pixel(core.Pt(r, c)))
		}
	}
	return out
}
