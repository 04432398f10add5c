package render

import "github.com/vecraster/vgfx/compose"

// Target describes the client-owned pixel buffer a canvas renders
// into (§3.6): a raw byte buffer, its pixel dimensions, a stride in
// pixels, and its channel layout/alpha convention. The renderer writes
// into Pixels but never reallocates or frees it.
type Target struct {
	Pixels     []byte
	Width      int
	Stride     int // pixels per row; may exceed Width when the caller pads rows
	Height     int
	Colorspace compose.Colorspace
}

// Valid reports whether the target has sane, addressable dimensions.
func (t Target) Valid() bool {
	if t.Pixels == nil || t.Width <= 0 || t.Height <= 0 || t.Stride < t.Width {
		return false
	}
	return len(t.Pixels) >= t.Stride*t.Height*4
}

func (t Target) pixelOffset(x, y int) int {
	return y*t.Stride*4 + x*4
}
