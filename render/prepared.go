package render

import (
	"github.com/vecraster/vgfx/fill"
	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/paint"
	"github.com/vecraster/vgfx/raster"
)

// PreparedShape is the cached renderable form of a Shape paint (§3.5):
// the flattened, transformed path cache, fill and stroke coverage
// spans in target pixel space, and the inverse cumulative transform
// used to recover paint-local coordinates for gradient sampling.
type PreparedShape struct {
	FillChains   [][]geom.Point
	FillSpans    []raster.Span
	FillSource   fill.Source
	StrokeSpans  []raster.Span
	StrokeSource fill.Source
	InvTransform geom.Matrix
}

// PreparedPicture is the cached renderable form of a bitmap Picture
// paint: the transform from target pixel space to bitmap pixel space
// (its inverse is the precomputed scale/transform the source surface
// is sampled through).
type PreparedPicture struct {
	Bitmap     *paint.Bitmap
	ToTarget   geom.Matrix
	FromTarget geom.Matrix
}
