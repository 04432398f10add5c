// Package fill generates the color a paint contributes at a given
// point: a constant color for solid fills, or a lookup-table sample
// along a gradient ramp for linear and radial gradients.
package fill

import (
	"math"

	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/internal/color"
)

// Spread controls how a gradient's ramp repeats outside its [0, 1]
// parameter range.
type Spread uint8

const (
	// Pad clamps to the nearest end-stop color.
	Pad Spread = iota
	// Repeat tiles the ramp: t - floor(t).
	Repeat
	// Reflect mirrors the ramp back and forth every other tile.
	Reflect
)

// applySpread folds an unbounded gradient parameter t into [0, 1]
// according to mode, using the exact formulas of the repeat and reflect
// spread modes: repeat is t - floor(t); reflect folds each pair of
// tiles back on itself via u = t - 2*floor(t/2), mirroring when u > 1.
func applySpread(t float32, mode Spread) float32 {
	switch mode {
	case Repeat:
		return t - float32(math.Floor(float64(t)))
	case Reflect:
		u := t - 2*float32(math.Floor(float64(t)/2))
		if u > 1 {
			return 2 - u
		}
		return u
	default: // Pad
		if t < 0 {
			return 0
		}
		if t > 1 {
			return 1
		}
		return t
	}
}

// Stop is a single color-stop entry in a gradient ramp.
type Stop struct {
	Offset float32
	Color  color.ColorU8
}

// lutSize is the number of precomputed ramp samples. 256 entries give a
// full byte of resolution along the ramp, matching the granularity the
// final 8-bit-per-channel output can distinguish.
const lutSize = 256

// LUT is a precomputed, monotonic-offset gradient ramp sampled at
// lutSize evenly spaced points in [0, 1], interpolated in linear light
// so blends stay perceptually even instead of darkening through the
// midpoint the way naive sRGB lerp does.
type LUT struct {
	entries [lutSize]color.ColorU8
}

// BuildLUT precomputes a LUT from an unsorted set of stops. Offsets
// outside [0, 1] are clamped; stops are sorted by offset before
// sampling. A single stop produces a constant ramp; no stops produces
// fully transparent black.
func BuildLUT(stops []Stop) LUT {
	var lut LUT
	sorted := sortedClampedStops(stops)

	if len(sorted) == 0 {
		return lut
	}
	if len(sorted) == 1 {
		for i := range lut.entries {
			lut.entries[i] = sorted[0].Color
		}
		return lut
	}

	for i := 0; i < lutSize; i++ {
		t := float32(i) / float32(lutSize-1)
		lut.entries[i] = sampleStops(sorted, t)
	}
	return lut
}

func sortedClampedStops(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	copy(out, stops)
	for i := range out {
		if out[i].Offset < 0 {
			out[i].Offset = 0
		}
		if out[i].Offset > 1 {
			out[i].Offset = 1
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Offset < out[j-1].Offset; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func sampleStops(sorted []Stop, t float32) color.ColorU8 {
	if t <= sorted[0].Offset {
		return sorted[0].Color
	}
	last := sorted[len(sorted)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(sorted); i++ {
		if t <= sorted[i].Offset {
			a, b := sorted[i-1], sorted[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return a.Color
			}
			return lerpLinear(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return last.Color
}

// lerpLinear interpolates two sRGB colors by converting to linear light,
// blending, and converting back.
func lerpLinear(a, b color.ColorU8, t float32) color.ColorU8 {
	la := color.SRGBToLinearColor(color.U8ToF32(a))
	lb := color.SRGBToLinearColor(color.U8ToF32(b))
	mixed := color.ColorF32{
		R: la.R + (lb.R-la.R)*t,
		G: la.G + (lb.G-la.G)*t,
		B: la.B + (lb.B-la.B)*t,
		A: la.A + (lb.A-la.A)*t,
	}
	return color.F32ToU8(color.LinearToSRGBColor(mixed))
}

// Sample looks up the ramp color at parameter t after folding t through
// the given spread mode.
func (l LUT) Sample(t float32, spread Spread) color.ColorU8 {
	t = applySpread(t, spread)
	idx := int(t * float32(lutSize-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= lutSize {
		idx = lutSize - 1
	}
	return l.entries[idx]
}

// Source produces a color at an arbitrary point in the coordinate space
// the paint was defined in.
type Source interface {
	At(p geom.Point) color.ColorU8
}

// Solid is a constant-color fill source.
type Solid struct {
	Color color.ColorU8
}

// At returns the constant color.
func (s Solid) At(geom.Point) color.ColorU8 { return s.Color }

// Linear is a linear gradient between two points, sampled via a
// precomputed LUT.
type Linear struct {
	P0, P1 geom.Point
	LUT    LUT
	Spread Spread
}

// At projects p onto the line P0-P1 and samples the ramp at the
// resulting parameter.
func (g Linear) At(p geom.Point) color.ColorU8 {
	d := g.P1.Sub(g.P0)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return g.LUT.Sample(0, g.Spread)
	}
	t := p.Sub(g.P0).Dot(d) / lenSq
	return g.LUT.Sample(t, g.Spread)
}

// Radial is a radial gradient from a start circle to an end circle,
// both centered at Center (the focal-point variant used for "spotlight"
// effects is out of scope; see DESIGN.md). R1 must be greater than R0.
type Radial struct {
	Center geom.Point
	R0, R1 float32
	LUT    LUT
	Spread Spread
}

// At measures p's distance from Center and samples the ramp at the
// fraction of the way from R0 to R1 that distance represents.
func (g Radial) At(p geom.Point) color.ColorU8 {
	if g.R1 <= g.R0 {
		return g.LUT.Sample(0, g.Spread)
	}
	d := p.Distance(g.Center)
	t := (d - g.R0) / (g.R1 - g.R0)
	return g.LUT.Sample(t, g.Spread)
}
