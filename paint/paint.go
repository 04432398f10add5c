// Package paint implements the paint tree: the sum-type scene-graph
// node (Shape, Picture, or Scene) that a canvas holds a root list of,
// along with its transform, opacity, composite mask, and dirty-flag
// bookkeeping for incremental re-preparation.
package paint

import (
	"math"

	"github.com/vecraster/vgfx/compose"
	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/internal/color"
	"github.com/vecraster/vgfx/raster"
	"github.com/vecraster/vgfx/stroke"
)

// Kind identifies which payload a Paint carries.
type Kind uint8

const (
	// KindShape is a path with fill and optional stroke.
	KindShape Kind = iota
	// KindPicture is a vector sub-scene or a bitmap surface.
	KindPicture
	// KindScene is an ordered list of child paints.
	KindScene
)

// Dirty is a bitmask of the prepared-data categories a mutation
// invalidated. The renderer re-derives a paint's whole prepared block
// whenever it prepares that paint, whichever flags are set, and then
// clears all of them.
type Dirty uint8

const (
	DirtyPath Dirty = 1 << iota
	DirtyTransform
	DirtyColor
	DirtyGradient
	DirtyStroke
	DirtyComposite
	DirtyOpacity

	DirtyAll = DirtyPath | DirtyTransform | DirtyColor | DirtyGradient |
		DirtyStroke | DirtyComposite | DirtyOpacity
)

// Stroke describes how a Shape's outline is expanded before filling.
type Stroke struct {
	Width      float32
	Color      color.ColorU8
	Gradient   *Gradient
	Cap        stroke.Cap
	Join       stroke.Join
	MiterLimit float32
	Dash       *stroke.DashPattern
}

// Shape is a path plus fill and stroke styling.
type Shape struct {
	Path         geom.Path
	FillColor    color.ColorU8
	FillGradient *Gradient
	FillRule     raster.FillRule
	Stroke       *Stroke
}

// Bitmap is a decoded raster surface, the non-vector payload a Picture
// may carry.
type Bitmap struct {
	Pixels     []byte
	Width      int
	Height     int
	Stride     int
	Colorspace compose.Colorspace
}

// Picture is a viewbox-scoped reference to either a vector sub-scene or
// a bitmap surface. Exactly one of Scene or Bitmap should be set.
type Picture struct {
	Scene  *Paint
	Bitmap *Bitmap
	ViewX  float32
	ViewY  float32
	ViewW  float32
	ViewH  float32
}

// Paint is one node of the paint tree: the sum type of Shape, Picture,
// and Scene (§3.3), plus the fields every paint carries regardless of
// kind.
type Paint struct {
	Kind    Kind
	Shape   *Shape
	Picture *Picture
	// Children holds the ordered sub-paints of a Scene, rendered
	// back-to-front in slice order. Unused for the other kinds.
	Children []*Paint

	Transform geom.Matrix
	Opacity   uint8

	// CompositeTarget is a paint tree used as a mask for this paint. It
	// is owned by this paint: duplicating or freeing this paint deep
	// copies or releases the target with it.
	CompositeTarget *Paint
	CompositeMethod compose.MaskMode

	Dirty Dirty

	// Prepared is the opaque prepared-render-data block (§3.5). The
	// paint package never reads or writes it; the render package owns
	// its shape and invalidation.
	Prepared any
}

// NewShape creates an empty Shape paint with identity transform, full
// opacity, solid black fill, and no stroke.
func NewShape() *Paint {
	return &Paint{
		Kind:      KindShape,
		Shape:     &Shape{Path: *geom.NewPath(), FillColor: color.ColorU8{A: 255}},
		Transform: geom.Identity(),
		Opacity:   255,
		Dirty:     DirtyAll,
	}
}

// NewPicture creates a Picture paint with the given viewbox. Exactly
// one of SetScene or SetBitmap should be called before the paint is
// used.
func NewPicture(x, y, w, h float32) *Paint {
	return &Paint{
		Kind:      KindPicture,
		Picture:   &Picture{ViewX: x, ViewY: y, ViewW: w, ViewH: h},
		Transform: geom.Identity(),
		Opacity:   255,
		Dirty:     DirtyAll,
	}
}

// NewScene creates an empty Scene paint.
func NewScene() *Paint {
	return &Paint{
		Kind:      KindScene,
		Transform: geom.Identity(),
		Opacity:   255,
		Dirty:     DirtyAll,
	}
}

// SetScene attaches a vector sub-scene to a Picture paint.
func (p *Paint) SetScene(scene *Paint) {
	p.Picture.Scene = scene
	p.Picture.Bitmap = nil
	p.Dirty |= DirtyPath
}

// SetBitmap attaches a decoded bitmap to a Picture paint.
func (p *Paint) SetBitmap(b *Bitmap) {
	p.Picture.Bitmap = b
	p.Picture.Scene = nil
	p.Dirty |= DirtyPath
}

// AppendChild appends a child paint to a Scene, transferring ownership
// of child to this paint.
func (p *Paint) AppendChild(child *Paint) {
	p.Children = append(p.Children, child)
	p.Dirty |= DirtyPath
}

// MoveTo starts a new sub-path at (x, y).
func (p *Paint) MoveTo(x, y float32) {
	p.Shape.Path.MoveTo(geom.Pt(x, y))
	p.Dirty |= DirtyPath
}

// LineTo appends a line segment to (x, y).
func (p *Paint) LineTo(x, y float32) {
	p.Shape.Path.LineTo(geom.Pt(x, y))
	p.Dirty |= DirtyPath
}

// CubicTo appends a cubic Bézier segment.
func (p *Paint) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.Shape.Path.CubicTo(geom.Pt(c1x, c1y), geom.Pt(c2x, c2y), geom.Pt(x, y))
	p.Dirty |= DirtyPath
}

// Close closes the current sub-path.
func (p *Paint) Close() {
	p.Shape.Path.Close()
	p.Dirty |= DirtyPath
}

// AppendRect appends a (possibly rounded) rectangle sub-path.
func (p *Paint) AppendRect(x, y, w, h, rx, ry float32) {
	p.Shape.Path.AppendRect(x, y, w, h, rx, ry)
	p.Dirty |= DirtyPath
}

// AppendCircle appends a circular (or elliptical) sub-path.
func (p *Paint) AppendCircle(cx, cy, rx, ry float32) {
	p.Shape.Path.AppendCircle(cx, cy, rx, ry)
	p.Dirty |= DirtyPath
}

// AppendArc appends an arc, optionally closed as a pie slice.
func (p *Paint) AppendArc(cx, cy, r, startDeg, sweepDeg float32, pie bool) {
	p.Shape.Path.AppendArc(cx, cy, r, startDeg, sweepDeg, pie)
	p.Dirty |= DirtyPath
}

// AppendPath replays a verb/point command stream onto this shape.
func (p *Paint) AppendPath(cmds []geom.Verb, pts []geom.Point) {
	p.Shape.Path.AppendPath(cmds, pts)
	p.Dirty |= DirtyPath
}

// ResetPath discards all path data.
func (p *Paint) ResetPath() {
	p.Shape.Path.Reset()
	p.Dirty |= DirtyPath
}

// Fill sets a solid fill color, clearing any gradient.
func (p *Paint) Fill(r, g, b, a uint8) {
	p.Shape.FillColor = color.ColorU8{R: r, G: g, B: b, A: a}
	p.Shape.FillGradient = nil
	p.Dirty |= DirtyColor | DirtyGradient
}

// FillWithGradient sets a gradient fill.
func (p *Paint) FillWithGradient(g *Gradient) {
	p.Shape.FillGradient = g
	p.Dirty |= DirtyGradient
}

// SetFillRule sets the fill rule used to rasterize the shape's path.
func (p *Paint) SetFillRule(rule raster.FillRule) {
	p.Shape.FillRule = rule
	p.Dirty |= DirtyPath
}

func (p *Paint) ensureStroke() *Stroke {
	if p.Shape.Stroke == nil {
		s := stroke.DefaultStyle()
		p.Shape.Stroke = &Stroke{
			Width:      s.Width,
			Color:      color.ColorU8{A: 255},
			Cap:        s.Cap,
			Join:       s.Join,
			MiterLimit: s.MiterLimit,
		}
	}
	return p.Shape.Stroke
}

// SetStrokeWidth sets the stroke width. A width of 0 disables stroking.
func (p *Paint) SetStrokeWidth(w float32) {
	p.ensureStroke().Width = w
	p.Dirty |= DirtyStroke
}

// SetStrokeColor sets a solid stroke color, clearing any gradient.
func (p *Paint) SetStrokeColor(r, g, b, a uint8) {
	s := p.ensureStroke()
	s.Color = color.ColorU8{R: r, G: g, B: b, A: a}
	s.Gradient = nil
	p.Dirty |= DirtyStroke | DirtyGradient
}

// SetStrokeGradient sets a gradient stroke.
func (p *Paint) SetStrokeGradient(g *Gradient) {
	p.ensureStroke().Gradient = g
	p.Dirty |= DirtyStroke | DirtyGradient
}

// SetStrokeCap sets the line cap.
func (p *Paint) SetStrokeCap(c stroke.Cap) {
	p.ensureStroke().Cap = c
	p.Dirty |= DirtyStroke
}

// SetStrokeJoin sets the line join.
func (p *Paint) SetStrokeJoin(j stroke.Join) {
	p.ensureStroke().Join = j
	p.Dirty |= DirtyStroke
}

// SetMiterLimit sets the miter-to-bevel fallback ratio.
func (p *Paint) SetMiterLimit(limit float32) {
	p.ensureStroke().MiterLimit = limit
	p.Dirty |= DirtyStroke
}

// SetStrokeDash sets (or clears, with a nil pattern) the dash pattern.
func (p *Paint) SetStrokeDash(d *stroke.DashPattern) {
	p.ensureStroke().Dash = d
	p.Dirty |= DirtyStroke
}

// Translate composes a translation onto the current transform, applied
// in the paint's current local coordinate space.
func (p *Paint) Translate(x, y float32) {
	p.Transform = p.Transform.Multiply(geom.Translate(x, y))
	p.Dirty |= DirtyTransform
}

// Rotate composes a rotation (degrees) onto the current transform.
func (p *Paint) Rotate(deg float32) {
	p.Transform = p.Transform.Multiply(geom.Rotate(float64(deg) * math.Pi / 180))
	p.Dirty |= DirtyTransform
}

// Scale composes a scale onto the current transform.
func (p *Paint) Scale(x, y float32) {
	p.Transform = p.Transform.Multiply(geom.Scale(x, y))
	p.Dirty |= DirtyTransform
}

// SetTransform replaces the current transform outright.
func (p *Paint) SetTransform(m geom.Matrix) {
	p.Transform = m
	p.Dirty |= DirtyTransform
}

// SetOpacity sets this paint's opacity, 0 (transparent) to 255 (opaque).
func (p *Paint) SetOpacity(o uint8) {
	p.Opacity = o
	p.Dirty |= DirtyOpacity
}

// SetComposite sets a mask paint and the method used to derive coverage
// from it. target's ownership passes to this paint.
func (p *Paint) SetComposite(target *Paint, method compose.MaskMode) {
	p.CompositeTarget = target
	p.CompositeMethod = method
	p.Dirty |= DirtyComposite
}

// Bounds returns this paint's axis-aligned bounding box in its parent's
// coordinate space, or ok=false if it has no geometry (an empty Shape,
// a Picture with neither scene nor bitmap set, or an empty Scene).
func (p *Paint) Bounds() (x, y, w, h float32, ok bool) {
	minX, minY, maxX, maxY, ok := p.localBounds()
	if !ok {
		return 0, 0, 0, 0, false
	}
	corners := [4]geom.Point{
		p.Transform.TransformPoint(geom.Pt(minX, minY)),
		p.Transform.TransformPoint(geom.Pt(maxX, minY)),
		p.Transform.TransformPoint(geom.Pt(maxX, maxY)),
		p.Transform.TransformPoint(geom.Pt(minX, maxY)),
	}
	tMinX, tMinY := corners[0].X, corners[0].Y
	tMaxX, tMaxY := corners[0].X, corners[0].Y
	for _, c := range corners[1:] {
		tMinX = minF(tMinX, c.X)
		tMinY = minF(tMinY, c.Y)
		tMaxX = maxF(tMaxX, c.X)
		tMaxY = maxF(tMaxY, c.Y)
	}
	return tMinX, tMinY, tMaxX - tMinX, tMaxY - tMinY, true
}

func (p *Paint) localBounds() (minX, minY, maxX, maxY float32, ok bool) {
	switch p.Kind {
	case KindShape:
		if p.Shape.Path.IsEmpty() {
			return 0, 0, 0, 0, false
		}
		minX, minY, maxX, maxY = p.Shape.Path.Bounds()
		return minX, minY, maxX, maxY, true
	case KindPicture:
		if p.Picture.Scene == nil && p.Picture.Bitmap == nil {
			return 0, 0, 0, 0, false
		}
		return p.Picture.ViewX, p.Picture.ViewY,
			p.Picture.ViewX + p.Picture.ViewW, p.Picture.ViewY + p.Picture.ViewH, true
	case KindScene:
		any := false
		for _, c := range p.Children {
			cx, cy, cw, ch, cok := c.Bounds()
			if !cok {
				continue
			}
			if !any {
				minX, minY, maxX, maxY = cx, cy, cx+cw, cy+ch
				any = true
				continue
			}
			minX = minF(minX, cx)
			minY = minF(minY, cy)
			maxX = maxF(maxX, cx+cw)
			maxY = maxF(maxY, cy+ch)
		}
		return minX, minY, maxX, maxY, any
	}
	return 0, 0, 0, 0, false
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Duplicate produces a deep copy of the paint, its stroke, gradients,
// children, and composite target, but with fresh prepared state — it
// does not copy Prepared, and sets every dirty flag so the render
// package regenerates all of it for the copy.
func (p *Paint) Duplicate() *Paint {
	out := &Paint{
		Kind:            p.Kind,
		Transform:       p.Transform,
		Opacity:         p.Opacity,
		CompositeMethod: p.CompositeMethod,
		Dirty:           DirtyAll,
	}
	if p.CompositeTarget != nil {
		out.CompositeTarget = p.CompositeTarget.Duplicate()
	}
	switch p.Kind {
	case KindShape:
		out.Shape = p.Shape.duplicate()
	case KindPicture:
		out.Picture = p.Picture.duplicate()
	case KindScene:
		out.Children = make([]*Paint, len(p.Children))
		for i, c := range p.Children {
			out.Children[i] = c.Duplicate()
		}
	}
	return out
}

func (s *Shape) duplicate() *Shape {
	out := &Shape{
		Path:      *s.Path.Clone(),
		FillColor: s.FillColor,
		FillRule:  s.FillRule,
	}
	if s.FillGradient != nil {
		g := *s.FillGradient
		g.Stops = append([]Stop(nil), s.FillGradient.Stops...)
		out.FillGradient = &g
	}
	if s.Stroke != nil {
		st := *s.Stroke
		if s.Stroke.Gradient != nil {
			g := *s.Stroke.Gradient
			g.Stops = append([]Stop(nil), s.Stroke.Gradient.Stops...)
			st.Gradient = &g
		}
		if s.Stroke.Dash != nil {
			dash := *s.Stroke.Dash
			dash.Array = append([]float32(nil), s.Stroke.Dash.Array...)
			st.Dash = &dash
		}
		out.Stroke = &st
	}
	return out
}

func (pic *Picture) duplicate() *Picture {
	out := &Picture{ViewX: pic.ViewX, ViewY: pic.ViewY, ViewW: pic.ViewW, ViewH: pic.ViewH}
	if pic.Scene != nil {
		out.Scene = pic.Scene.Duplicate()
	}
	if pic.Bitmap != nil {
		b := *pic.Bitmap
		b.Pixels = append([]byte(nil), pic.Bitmap.Pixels...)
		out.Bitmap = &b
	}
	return out
}
