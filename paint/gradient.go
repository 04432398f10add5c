package paint

import (
	"sort"

	"github.com/vecraster/vgfx/fill"
	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/internal/color"
)

// GradientKind selects a gradient's geometric shape.
type GradientKind uint8

const (
	// GradientLinear interpolates along the line P1-P2.
	GradientLinear GradientKind = iota
	// GradientRadial interpolates by distance from Center out to Radius.
	GradientRadial
)

// Stop is one (offset, color) entry of a gradient's color ramp.
type Stop struct {
	Offset float32
	Color  color.ColorU8
}

// Gradient is a declarative linear or radial color ramp (§3.4): an
// ordered stop table, a spread mode, and a fill-space transform. The
// render package converts it into a sampled fill.Source at prepare
// time; this package only stores and validates the declaration.
type Gradient struct {
	Kind   GradientKind
	P1, P2 geom.Point // linear endpoints
	Center geom.Point // radial center
	Radius float32    // radial radius, > 0
	Stops  []Stop
	Spread fill.Spread
	// Transform maps fill-space coordinates (the space P1/P2 or
	// Center/Radius are expressed in) into the paint's local space,
	// defaulting to identity.
	Transform geom.Matrix
}

// NewLinearGradient builds a linear gradient between p1 and p2. Stops
// are sorted by offset and clamped to [0,1]; at least 2 stops are
// required, and a single stop is duplicated to satisfy the invariant.
func NewLinearGradient(p1, p2 geom.Point, stops []Stop, spread fill.Spread) *Gradient {
	return &Gradient{
		Kind:      GradientLinear,
		P1:        p1,
		P2:        p2,
		Stops:     normalizeStops(stops),
		Spread:    spread,
		Transform: geom.Identity(),
	}
}

// NewRadialGradient builds a radial gradient centered at center with
// the given radius. radius is clamped to a small positive minimum if
// zero or negative, since the invariant requires radius > 0.
func NewRadialGradient(center geom.Point, radius float32, stops []Stop, spread fill.Spread) *Gradient {
	if radius <= 0 {
		radius = 1e-3
	}
	return &Gradient{
		Kind:      GradientRadial,
		Center:    center,
		Radius:    radius,
		Stops:     normalizeStops(stops),
		Spread:    spread,
		Transform: geom.Identity(),
	}
}

// normalizeStops sorts stops by offset, clamps offsets to [0,1], and
// ensures at least 2 stops exist.
func normalizeStops(stops []Stop) []Stop {
	out := append([]Stop(nil), stops...)
	for i := range out {
		if out[i].Offset < 0 {
			out[i].Offset = 0
		}
		if out[i].Offset > 1 {
			out[i].Offset = 1
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	switch len(out) {
	case 0:
		return []Stop{{Offset: 0, Color: color.ColorU8{A: 255}}, {Offset: 1, Color: color.ColorU8{A: 255}}}
	case 1:
		second := out[0]
		second.Offset = 1
		return []Stop{out[0], second}
	default:
		return out
	}
}

// fillStops converts the gradient's stop table to the fill package's
// Stop type for LUT construction.
func (g *Gradient) fillStops() []fill.Stop {
	out := make([]fill.Stop, len(g.Stops))
	for i, s := range g.Stops {
		out[i] = fill.Stop{Offset: s.Offset, Color: s.Color}
	}
	return out
}

// Source builds the sampled fill.Source for this gradient: a LUT of
// straight-alpha colors interpolated in linear light (not
// premultiplied; the renderer premultiplies each sample when it
// composites) plus the geometric parameter
// mapping, in fill-space coordinates (before Transform is applied).
// The render package composes Transform with the paint's cumulative
// transform when mapping target-space samples back to fill space.
func (g *Gradient) Source() fill.Source {
	lut := fill.BuildLUT(g.fillStops())
	switch g.Kind {
	case GradientRadial:
		return fill.Radial{Center: g.Center, R0: 0, R1: g.Radius, LUT: lut, Spread: g.Spread}
	default:
		return fill.Linear{P0: g.P1, P1: g.P2, LUT: lut, Spread: g.Spread}
	}
}
