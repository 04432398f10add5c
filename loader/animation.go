package loader

import (
	"fmt"

	"github.com/vecraster/vgfx/paint"
)

// Animation wraps a Picture paint whose backing loader implements
// FrameSeeker (§4.7). No format shipped in this package is animated —
// Lottie/TVG parsing is an external loader's job (§1, §6.5) — so
// Animation's only exerciser in this repo is its test, via a fake
// FrameSeeker; the type exists as part of the core contract regardless
// of which loaders implement it.
type Animation struct {
	Picture *paint.Paint
	loader  FrameSeeker
	begin   float64
	end     float64
}

// NewAnimation wraps picture, whose Picture.Bitmap/Scene was produced
// by loader. begin/end default to the full [0, TotalFrame()] range.
func NewAnimation(picture *paint.Paint, loader FrameSeeker) *Animation {
	return &Animation{
		Picture: picture,
		loader:  loader,
		begin:   0,
		end:     loader.TotalFrame(),
	}
}

// TotalFrame returns the animation's total frame count.
func (a *Animation) TotalFrame() float64 { return a.loader.TotalFrame() }

// CurFrame returns the currently seeked frame.
func (a *Animation) CurFrame() float64 { return a.loader.CurFrame() }

// Duration returns the animation's duration in seconds.
func (a *Animation) Duration() float64 { return a.loader.Duration() }

// Frame seeks to frame n, clamped to the active segment, and marks the
// wrapped Picture's path dirty so the next update()/draw() regenerates
// the paint tree for that frame.
func (a *Animation) Frame(n float64) error {
	if n < a.begin {
		n = a.begin
	}
	if n > a.end {
		n = a.end
	}
	if err := a.loader.Frame(n); err != nil {
		return err
	}
	a.Picture.Dirty |= paint.DirtyPath
	return nil
}

// Segment restricts the playable range to [begin, end] within
// [0, TotalFrame()]; begin must be strictly less than end and both
// must lie in range.
func (a *Animation) Segment(begin, end float64) error {
	total := a.loader.TotalFrame()
	if begin >= end || begin < 0 || end > total {
		return fmt.Errorf("loader: invalid segment [%v,%v] for total frame count %v", begin, end, total)
	}
	a.begin, a.end = begin, end
	return nil
}
