package render

import (
	"fmt"
	"sync"

	"github.com/vecraster/vgfx/compose"
	"github.com/vecraster/vgfx/fill"
	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/internal/color"
	"github.com/vecraster/vgfx/paint"
	"github.com/vecraster/vgfx/raster"
	"github.com/vecraster/vgfx/scheduler"
	"github.com/vecraster/vgfx/stroke"
)

// RasterizerPool recycles raster.Rasterizer scratch buffers across
// PrepareShape calls. A Rasterizer's winding/coverage buffers are sized
// to one target width, so the pool discards and resizes its free list
// whenever the requested dimensions change (a canvas's target size is
// expected to be stable across most frames). Spec §5 leaves the choice
// between a per-canvas pool (no contention) and a pool shared across
// canvases (behind a lock) as a configuration option, default
// per-canvas: construct one RasterizerPool per canvas for the former,
// or share a single RasterizerPool across canvases for the latter.
type RasterizerPool struct {
	mu   sync.Mutex
	w, h int
	free []*raster.Rasterizer
}

// NewRasterizerPool returns an empty pool.
func NewRasterizerPool() *RasterizerPool { return &RasterizerPool{} }

func (rp *RasterizerPool) get(w, h int) *raster.Rasterizer {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if rp.w != w || rp.h != h {
		rp.free = nil
		rp.w, rp.h = w, h
	}
	if n := len(rp.free); n > 0 {
		r := rp.free[n-1]
		rp.free = rp.free[:n-1]
		return r
	}
	return raster.New(w, h)
}

func (rp *RasterizerPool) put(w, h int, r *raster.Rasterizer) {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if rp.w != w || rp.h != h {
		return // target resized since checkout; discard rather than mis-size the pool
	}
	rp.free = append(rp.free, r)
}

// SoftwareRenderer is the CPU Renderer implementation: it rasterizes
// fill and stroke coverage with package raster, samples fill.Source
// per covered pixel, and composites with package compose. Shape
// preparation is dispatched to a scheduler.Scheduler so that an
// update() touching many dirty shapes can overlap their rasterization
// work; Render only blocks on a given shape's outstanding task the
// first time it needs that shape's pixels.
type SoftwareRenderer struct {
	sched  *scheduler.Scheduler
	target Target
	spans  *RasterizerPool

	mu      sync.Mutex
	pending map[*paint.Paint]*scheduler.Handle
}

// NewSoftwareRenderer returns a SoftwareRenderer that dispatches
// prepare work through sched and recycles rasterizer scratch space
// through pool. A nil sched makes every Prepare* call synchronous (see
// scheduler.New); a nil pool allocates a private, unshared one.
func NewSoftwareRenderer(sched *scheduler.Scheduler, pool *RasterizerPool) *SoftwareRenderer {
	if pool == nil {
		pool = NewRasterizerPool()
	}
	return &SoftwareRenderer{
		sched:   sched,
		spans:   pool,
		pending: make(map[*paint.Paint]*scheduler.Handle),
	}
}

// Bind rebinds the renderer's output target.
func (r *SoftwareRenderer) Bind(t Target) { r.target = t }

// Target returns the currently bound target.
func (r *SoftwareRenderer) Target() Target { return r.target }

func (r *SoftwareRenderer) trackPending(p *paint.Paint, h *scheduler.Handle) {
	r.mu.Lock()
	r.pending[p] = h
	r.mu.Unlock()
}

// awaitAndClear blocks on any outstanding prepare task for p, then
// forgets it: the draw loop calls this once per node, the first time
// it needs that node's Prepared data, and PrepareShape calls it before
// dispatching a new task for the node.
func (r *SoftwareRenderer) awaitAndClear(p *paint.Paint) error {
	r.mu.Lock()
	h := r.pending[p]
	delete(r.pending, p)
	r.mu.Unlock()
	return h.Done()
}

// PrepareShape dispatches the flatten/rasterize/fill-source work for a
// Shape paint to the scheduler and records the resulting handle.
func (r *SoftwareRenderer) PrepareShape(p *paint.Paint, accum geom.Matrix) error {
	if p.Kind != paint.KindShape {
		return fmt.Errorf("render: PrepareShape: paint is not a shape")
	}
	if !r.target.Valid() {
		return fmt.Errorf("render: PrepareShape: no valid target bound")
	}
	// Join any earlier prepare of p first, so two tasks never write
	// p.Prepared at once; the new task supersedes that one's result.
	_ = r.awaitAndClear(p)
	task := func() error {
		prepared, err := prepareShape(p, accum, r.target.Width, r.target.Height, r.spans)
		if err != nil {
			return err
		}
		p.Prepared = prepared
		p.Dirty = 0
		return nil
	}
	if r.sched == nil {
		return task()
	}
	r.trackPending(p, r.sched.Prepare(task))
	return nil
}

// PreparePicture derives PreparedPicture's target-space transform for
// a Picture paint. Picture payloads are either a bitmap (resampled
// directly at draw time) or a nested Scene (prepared recursively);
// either way the work here is cheap enough to run inline rather than
// through the scheduler.
func (r *SoftwareRenderer) PreparePicture(p *paint.Paint, accum geom.Matrix) error {
	if p.Kind != paint.KindPicture {
		return fmt.Errorf("render: PreparePicture: paint is not a picture")
	}
	effective := accum.Multiply(p.Transform)
	pic := p.Picture
	prepared := &PreparedPicture{
		Bitmap:     pic.Bitmap,
		ToTarget:   effective,
		FromTarget: effective.Invert(),
	}
	p.Prepared = prepared
	p.Dirty = 0
	if pic.Scene != nil {
		if err := r.PrepareScene(pic.Scene, effective); err != nil {
			return err
		}
	}
	return nil
}

// PrepareScene composes p's transform into accum and recurses into
// each child according to its own kind.
func (r *SoftwareRenderer) PrepareScene(p *paint.Paint, accum geom.Matrix) error {
	if p.Kind != paint.KindScene {
		return fmt.Errorf("render: PrepareScene: paint is not a scene")
	}
	effective := accum.Multiply(p.Transform)
	for _, child := range p.Children {
		if err := r.prepareNode(child, effective); err != nil {
			return err
		}
	}
	p.Dirty = 0
	return nil
}

func (r *SoftwareRenderer) prepareNode(p *paint.Paint, accum geom.Matrix) error {
	if p.CompositeTarget != nil {
		if err := r.prepareNode(p.CompositeTarget, accum); err != nil {
			return err
		}
	}
	switch p.Kind {
	case paint.KindShape:
		return r.PrepareShape(p, accum)
	case paint.KindPicture:
		return r.PreparePicture(p, accum)
	case paint.KindScene:
		return r.PrepareScene(p, accum)
	}
	return fmt.Errorf("render: prepareNode: unknown paint kind %d", p.Kind)
}

// Dispose discards p's cached Prepared data and, recursively, that of
// its children and composite target, without waiting on any
// outstanding prepare task.
func (r *SoftwareRenderer) Dispose(p *paint.Paint) {
	r.mu.Lock()
	delete(r.pending, p)
	r.mu.Unlock()
	p.Prepared = nil
	p.Dirty = paint.DirtyAll
	if p.CompositeTarget != nil {
		r.Dispose(p.CompositeTarget)
	}
	for _, c := range p.Children {
		r.Dispose(c)
	}
}

// Render composites roots, back-to-front, into the bound target.
func (r *SoftwareRenderer) Render(roots []*paint.Paint) error {
	if !r.target.Valid() {
		return fmt.Errorf("render: Render: no valid target bound")
	}
	return r.renderInto(r.target, roots)
}

func (r *SoftwareRenderer) renderInto(dst Target, roots []*paint.Paint) error {
	for _, p := range roots {
		if err := r.drawNode(dst, p); err != nil {
			return err
		}
	}
	return nil
}

// Sync blocks until every prepare task dispatched by the most recent
// Render/Prepare* calls has completed. Render already awaits each
// node's task as it draws it, so under the documented single-goroutine
// usage Sync only needs to drain any handles nothing has drawn yet
// (e.g. a prepared-but-not-yet-rendered subtree).
func (r *SoftwareRenderer) Sync() error {
	r.mu.Lock()
	handles := make([]*scheduler.Handle, 0, len(r.pending))
	for p, h := range r.pending {
		handles = append(handles, h)
		delete(r.pending, p)
	}
	r.mu.Unlock()
	for _, h := range handles {
		if err := h.Done(); err != nil {
			return err
		}
	}
	return nil
}

func (r *SoftwareRenderer) drawNode(dst Target, p *paint.Paint) error {
	mask, err := r.resolveMask(dst, p)
	if err != nil {
		return err
	}
	switch p.Kind {
	case paint.KindShape:
		return r.drawShape(dst, p, mask)
	case paint.KindPicture:
		return r.drawPicture(dst, p, mask)
	case paint.KindScene:
		for _, c := range p.Children {
			if err := r.drawNode(dst, c); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("render: drawNode: unknown paint kind %d", p.Kind)
}

// resolveMask renders p's composite target, if any, into an offscreen
// buffer the size of dst and returns it for drawShape/drawPicture to
// sample. A nil return means no masking applies. It reuses this same
// renderer (same scheduler, same pending-handle bookkeeping) rather
// than spinning up a second instance, since the pending map is not
// safe to share across two independently-locked renderers.
func (r *SoftwareRenderer) resolveMask(dst Target, p *paint.Paint) (*offscreenMask, error) {
	if p.CompositeTarget == nil {
		return nil, nil
	}
	off := newOffscreenMask(dst.Width, dst.Height)
	if err := r.drawNode(off.target, p.CompositeTarget); err != nil {
		return nil, err
	}
	off.method = p.CompositeMethod
	return off, nil
}

type offscreenMask struct {
	target Target
	method compose.MaskMode
}

func newOffscreenMask(w, h int) *offscreenMask {
	return &offscreenMask{
		target: Target{
			Pixels:     make([]byte, w*h*4),
			Width:      w,
			Stride:     w,
			Height:     h,
			Colorspace: compose.ARGB8888,
		},
	}
}

func (m *offscreenMask) coverageAt(x, y int) uint8 {
	pm := compose.ReadPixel(m.target.Pixels[m.target.pixelOffset(x, y):], m.target.Colorspace)
	return compose.Coverage(m.method, pm)
}

func (r *SoftwareRenderer) drawShape(dst Target, p *paint.Paint, mask *offscreenMask) error {
	if err := r.awaitAndClear(p); err != nil {
		return err
	}
	prepared, ok := p.Prepared.(*PreparedShape)
	if !ok || prepared == nil {
		return fmt.Errorf("render: drawShape: no prepared data")
	}
	r.compositeSpans(dst, prepared.FillSpans, prepared.FillSource, p.Opacity, mask)
	if prepared.StrokeSource != nil {
		r.compositeSpans(dst, prepared.StrokeSpans, prepared.StrokeSource, p.Opacity, mask)
	}
	return nil
}

func (r *SoftwareRenderer) drawPicture(dst Target, p *paint.Paint, mask *offscreenMask) error {
	prepared, ok := p.Prepared.(*PreparedPicture)
	if !ok || prepared == nil {
		return fmt.Errorf("render: drawPicture: no prepared data")
	}
	if p.Picture.Scene != nil {
		return r.drawNode(dst, p.Picture.Scene)
	}
	if prepared.Bitmap == nil {
		return nil
	}
	r.compositeBitmap(dst, prepared, p.Opacity, mask)
	return nil
}

func (r *SoftwareRenderer) compositeBitmap(dst Target, prepared *PreparedPicture, opacity uint8, mask *offscreenMask) {
	bmp := prepared.Bitmap
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			src := prepared.FromTarget.TransformPoint(geom.Pt(float32(x)+0.5, float32(y)+0.5))
			bx, by := int(src.X), int(src.Y)
			if bx < 0 || by < 0 || bx >= bmp.Width || by >= bmp.Height {
				continue
			}
			off := by*bmp.Stride*4 + bx*4
			pm := compose.ReadPixel(bmp.Pixels[off:off+4], bmp.Colorspace)
			pm = compose.Modulate(pm, opacity)
			if mask != nil {
				pm = compose.Modulate(pm, mask.coverageAt(x, y))
			}
			blendPixel(dst, x, y, pm)
		}
	}
}

func (r *SoftwareRenderer) compositeSpans(dst Target, spans []raster.Span, src fill.Source, opacity uint8, mask *offscreenMask) {
	if src == nil {
		return
	}
	for _, span := range spans {
		y := int(span.Y)
		if y < 0 || y >= dst.Height {
			continue
		}
		x0 := int(span.X)
		for dx := int32(0); dx < span.Len; dx++ {
			x := x0 + int(dx)
			if x < 0 || x >= dst.Width {
				continue
			}
			c := src.At(geom.Pt(float32(x)+0.5, float32(y)+0.5))
			pm := compose.Premultiply(c)
			pm = compose.Modulate(pm, span.Coverage)
			pm = compose.Modulate(pm, opacity)
			if mask != nil {
				pm = compose.Modulate(pm, mask.coverageAt(x, y))
			}
			blendPixel(dst, x, y, pm)
		}
	}
}

func blendPixel(dst Target, x, y int, src compose.PMColor) {
	off := dst.pixelOffset(x, y)
	d := compose.ReadPixel(dst.Pixels[off:off+4], dst.Colorspace)
	out := compose.Over(src, d)
	compose.WritePixel(dst.Pixels[off:off+4], out, dst.Colorspace)
}

// prepareShape does the actual CPU work behind PrepareShape: flatten,
// transform into target space, rasterize fill and (if styled) stroke
// coverage, and build the fill sources gradients sample through.
func prepareShape(p *paint.Paint, accum geom.Matrix, width, height int, pool *RasterizerPool) (*PreparedShape, error) {
	s := p.Shape
	effective := accum.Multiply(p.Transform)

	fillChains := transformChains(flattenPath(&s.Path), effective)
	r := pool.get(width, height)
	fillSpans := r.Fill(fillChains, s.FillRule)
	pool.put(width, height, r)
	fillSource := paintSource(s.FillColor, s.FillGradient, effective)

	var strokeSpans []raster.Span
	var strokeSource fill.Source
	if s.Stroke != nil && s.Stroke.Width > 0 {
		style := stroke.Style{
			Width:      s.Stroke.Width,
			Cap:        s.Stroke.Cap,
			Join:       s.Stroke.Join,
			MiterLimit: s.Stroke.MiterLimit,
		}
		dashed := &s.Path
		if s.Stroke.Dash != nil {
			dashed = stroke.Apply(&s.Path, s.Stroke.Dash)
		}
		outline := stroke.Expand(dashed, style)
		strokeChains := transformChains(flattenPath(outline), effective)
		sr := pool.get(width, height)
		strokeSpans = sr.Fill(strokeChains, raster.NonZero)
		pool.put(width, height, sr)
		strokeSource = paintSource(s.Stroke.Color, s.Stroke.Gradient, effective)
	}

	return &PreparedShape{
		FillChains:   fillChains,
		FillSpans:    fillSpans,
		FillSource:   fillSource,
		StrokeSpans:  strokeSpans,
		StrokeSource: strokeSource,
		InvTransform: effective.Invert(),
	}, nil
}

func flattenPath(p *geom.Path) [][]geom.Point {
	chains, _ := geom.Flatten(p, 0.5)
	return chains
}

func transformChains(chains [][]geom.Point, m geom.Matrix) [][]geom.Point {
	out := make([][]geom.Point, len(chains))
	for i, chain := range chains {
		tc := make([]geom.Point, len(chain))
		for j, pt := range chain {
			tc[j] = m.TransformPoint(pt)
		}
		out[i] = tc
	}
	return out
}

// paintSource builds the fill.Source a Shape's fill or stroke samples
// through. A gradient's Transform maps its own fill-space into the
// shape's local (pre-effective-transform) space, so the source seen by
// the rasterizer must first map a target-space sample point back
// through effective, then through the gradient's own transform, before
// reaching fill.Linear/fill.Radial's At.
func paintSource(solid color.ColorU8, grad *paint.Gradient, effective geom.Matrix) fill.Source {
	if grad == nil {
		return fill.Solid{Color: solid}
	}
	total := effective.Multiply(grad.Transform)
	return transformedSource{src: grad.Source(), inv: total.Invert()}
}

type transformedSource struct {
	src fill.Source
	inv geom.Matrix
}

func (t transformedSource) At(p geom.Point) color.ColorU8 {
	return t.src.At(t.inv.TransformPoint(p))
}
