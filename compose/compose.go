// Package compose blends rasterized coverage into a target pixel buffer:
// premultiplied alpha conversion, the SRC-OVER operator, mask-modulated
// compositing, and the final un-premultiply step for straight-alpha
// targets.
package compose

import (
	"github.com/vecraster/vgfx/internal/blend"
	"github.com/vecraster/vgfx/internal/color"
)

// PMColor is a color with premultiplied alpha channels, the form the
// compositor operates in internally.
type PMColor struct {
	R, G, B, A uint8
}

// Premultiply scales a straight-alpha color's RGB channels by its alpha.
func Premultiply(c color.ColorU8) PMColor {
	a := uint16(c.A)
	return PMColor{
		R: uint8((uint16(c.R)*a + 127) / 255),
		G: uint8((uint16(c.G)*a + 127) / 255),
		B: uint8((uint16(c.B)*a + 127) / 255),
		A: c.A,
	}
}

// Unpremultiply divides RGB channels by alpha, saturating at 255. A fully
// transparent color unpremultiplies to transparent black.
func (p PMColor) Unpremultiply() color.ColorU8 {
	if p.A == 0 {
		return color.ColorU8{}
	}
	return color.ColorU8{
		R: satUnmul(p.R, p.A),
		G: satUnmul(p.G, p.A),
		B: satUnmul(p.B, p.A),
		A: p.A,
	}
}

func satUnmul(c, a uint8) uint8 {
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// srcOver is the Porter-Duff source-over blend function, operating on
// premultiplied bytes: D' = S + D*(1-S.a).
var srcOver = blend.GetBlendFunc(blend.BlendSourceOver)

// Over composites s over d using the SRC-OVER operator.
func Over(s, d PMColor) PMColor {
	r, g, b, a := srcOver(s.R, s.G, s.B, s.A, d.R, d.G, d.B, d.A)
	return PMColor{R: r, G: g, B: b, A: a}
}

// MaskMode selects how a mask paint's rasterized coverage modulates a
// source color before compositing.
type MaskMode uint8

const (
	// AlphaMask uses the mask's alpha channel directly as coverage.
	AlphaMask MaskMode = iota
	// InvAlphaMask uses 255 minus the mask's alpha channel.
	InvAlphaMask
	// ClipPath behaves like AlphaMask; the mask's fill color is ignored,
	// only its shape (and thus its alpha) matters.
	ClipPath
	// LumaMask derives coverage from the mask's luma, modulated by alpha.
	LumaMask
	// InvLumaMask is 255 minus the LumaMask coverage.
	InvLumaMask
)

// Coverage computes the [0,255] coverage value a mask sample contributes
// under the given mode.
func Coverage(mode MaskMode, mask PMColor) uint8 {
	switch mode {
	case InvAlphaMask:
		return 255 - mask.A
	case LumaMask:
		return luma(mask)
	case InvLumaMask:
		return 255 - luma(mask)
	default: // AlphaMask, ClipPath
		return mask.A
	}
}

// luma computes 0.2126*R + 0.7152*G + 0.0722*B in straight space, then
// modulates the result by the mask's alpha.
func luma(p PMColor) uint8 {
	straight := p.Unpremultiply()
	l := 0.2126*float32(straight.R) + 0.7152*float32(straight.G) + 0.0722*float32(straight.B)
	rounded := uint8(l + 0.5)
	return mulDiv255(rounded, p.A)
}

func mulDiv255(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// Modulate scales every premultiplied channel of s by cov/255, the step
// that applies a mask's coverage to a source color before it is
// composited.
func Modulate(s PMColor, cov uint8) PMColor {
	return PMColor{
		R: mulDiv255(s.R, cov),
		G: mulDiv255(s.G, cov),
		B: mulDiv255(s.B, cov),
		A: mulDiv255(s.A, cov),
	}
}

// Colorspace names a target pixel buffer's channel layout and whether it
// stores premultiplied or straight alpha. Byte order in memory matches
// the name: ARGB8888 stores bytes [A,R,G,B], ABGR8888 stores
// [A,B,G,R]; the S suffix marks a straight-alpha variant of the same
// layout.
type Colorspace uint8

const (
	ARGB8888 Colorspace = iota
	ARGB8888S
	ABGR8888
	ABGR8888S
)

// Premultiplied reports whether this colorspace stores premultiplied
// alpha (the engine's internal working form) rather than straight alpha.
func (cs Colorspace) Premultiplied() bool {
	return cs == ARGB8888 || cs == ABGR8888
}

func (cs Colorspace) swapped() bool {
	return cs == ABGR8888 || cs == ABGR8888S
}

// WritePixel stores pm into the 4-byte pixel at dst, converting to
// straight alpha first if cs is a straight-alpha colorspace.
func WritePixel(dst []byte, pm PMColor, cs Colorspace) {
	var r, g, b, a uint8
	if cs.Premultiplied() {
		r, g, b, a = pm.R, pm.G, pm.B, pm.A
	} else {
		s := pm.Unpremultiply()
		r, g, b, a = s.R, s.G, s.B, s.A
	}
	if cs.swapped() {
		dst[0], dst[1], dst[2], dst[3] = a, b, g, r
	} else {
		dst[0], dst[1], dst[2], dst[3] = a, r, g, b
	}
}

// ReadPixel loads the 4-byte pixel at src and returns it as a premultiplied
// color, converting from straight alpha first if cs is a straight-alpha
// colorspace.
func ReadPixel(src []byte, cs Colorspace) PMColor {
	var a, r, g, b uint8
	if cs.swapped() {
		a, b, g, r = src[0], src[1], src[2], src[3]
	} else {
		a, r, g, b = src[0], src[1], src[2], src[3]
	}
	if cs.Premultiplied() {
		return PMColor{R: r, G: g, B: b, A: a}
	}
	return Premultiply(color.ColorU8{R: r, G: g, B: b, A: a})
}
