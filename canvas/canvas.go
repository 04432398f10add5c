package canvas

import (
	"fmt"
	"log/slog"

	"github.com/vecraster/vgfx"
	"github.com/vecraster/vgfx/compose"
	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/paint"
	"github.com/vecraster/vgfx/render"
	"github.com/vecraster/vgfx/scheduler"
)

// State is the canvas's position in the update/draw/sync protocol
// (§4.4).
type State uint8

const (
	// Idle accepts target/push/clear and update().
	Idle State = iota
	// Updated accepts another update(), update(paint), or draw().
	Updated
	// Drawing accepts sync().
	Drawing
	// Synced accepts update() to begin a new cycle.
	Synced
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Updated:
		return "Updated"
	case Drawing:
		return "Drawing"
	case Synced:
		return "Synced"
	default:
		return "Unknown"
	}
}

// Canvas is the root paint list plus target binding and state machine
// described in §3.6/§4.4. The zero value is not usable; construct with
// New.
type Canvas struct {
	roots    []*paint.Paint
	target   render.Target
	renderer render.Renderer
	sched    *scheduler.Scheduler
	state    State
	logger   *slog.Logger
}

// New constructs an idle Canvas with no target and no paints. By
// default its scheduler pool size comes from vgfx.DefaultSchedulerThreads
// (set by the vgfx.Init call that started the current initialization), and its rasterizer scratch space is
// private to this canvas; see WithSchedulerSize and WithPooledSpans.
func New(opts ...Option) *Canvas {
	cfg := &config{logger: vgfx.Logger()}
	for _, o := range opts {
		o(cfg)
	}
	n := vgfx.DefaultSchedulerThreads()
	if cfg.threadsSet {
		n = cfg.threads
	}
	sched := scheduler.New(n)
	sched.SetLogger(cfg.logger)

	pool := render.NewRasterizerPool()
	if cfg.sharedPool {
		pool = globalSpanPool
	}

	return &Canvas{
		renderer: render.NewSoftwareRenderer(sched, pool),
		sched:    sched,
		state:    Idle,
		logger:   cfg.logger,
	}
}

// State reports the canvas's current protocol state.
func (c *Canvas) State() State { return c.state }

// SetTarget binds the output pixel buffer (§4.4's target op). Binding
// a new target invalidates every paint's prepared data, since prepared
// fill/stroke spans are baked in target-pixel coordinates, and returns
// the canvas to Idle.
func (c *Canvas) SetTarget(pixels []byte, width, stride, height int, cs compose.Colorspace) vgfx.Result {
	t := render.Target{Pixels: pixels, Width: width, Stride: stride, Height: height, Colorspace: cs}
	if !t.Valid() {
		return vgfx.ResultInvalidArgument
	}
	if c.state == Drawing {
		if err := c.renderer.Sync(); err != nil {
			c.logger.Error("canvas: sync before rebinding target failed", "error", err)
		}
	}
	c.target = t
	c.renderer.Bind(t)
	for _, p := range c.roots {
		c.renderer.Dispose(p)
	}
	c.state = Idle
	return vgfx.ResultSuccess
}

// Push appends paint to the root list (§4.4's push op). paint's
// lifetime passes to the canvas: paint must not be pushed onto more
// than one canvas.
func (c *Canvas) Push(p *paint.Paint) vgfx.Result {
	if p == nil {
		return vgfx.ResultInvalidArgument
	}
	if c.state != Idle {
		return vgfx.ResultInsufficientCondition
	}
	c.roots = append(c.roots, p)
	return vgfx.ResultSuccess
}

// Clear drops every root paint. It is a synchronous barrier (§5): any
// draw in flight is synced first so the renderer never touches paint
// state concurrently with this call. When freePaints is true, each
// root's cached prepared data and scheduler handles are also
// discarded; the paints themselves remain ordinary Go values the
// caller may still hold and reuse.
func (c *Canvas) Clear(freePaints bool) vgfx.Result {
	if c.state == Drawing {
		if err := c.renderer.Sync(); err != nil {
			c.logger.Error("canvas: sync during clear failed", "error", err)
		}
	}
	if freePaints {
		for _, p := range c.roots {
			c.renderer.Dispose(p)
		}
	}
	c.roots = nil
	c.state = Idle
	return vgfx.ResultSuccess
}

// Update walks every root paint and re-derives the prepared data of
// every paint beneath it. Dirty flags do not limit the walk: paints
// with no dirty flags set are prepared again as well. Update may
// dispatch prepare tasks to the scheduler that have not completed by
// the time it returns (§4.4, §5).
func (c *Canvas) Update() vgfx.Result {
	if !c.target.Valid() {
		return vgfx.ResultInsufficientCondition
	}
	for _, p := range c.roots {
		if err := c.prepareNode(p, geom.Identity()); err != nil {
			c.logger.Error("canvas: update failed", "error", err)
			return vgfx.ResultFailedAllocation
		}
	}
	c.state = Updated
	return vgfx.ResultSuccess
}

// UpdatePaint restricts Update's walk to a single paint's own subtree.
// Because Paint stores no parent pointer, the accumulated transform
// used is p's own local transform chain downward only — it does not
// include transforms of p's ancestors in whatever tree p was pushed
// into. Callers needing an ancestor-correct re-derivation should call
// Update instead, which walks every root from the top.
func (c *Canvas) UpdatePaint(p *paint.Paint) vgfx.Result {
	if p == nil {
		return vgfx.ResultInvalidArgument
	}
	if !c.target.Valid() {
		return vgfx.ResultInsufficientCondition
	}
	if !c.contains(p) {
		return vgfx.ResultInvalidArgument
	}
	if err := c.prepareNode(p, geom.Identity()); err != nil {
		c.logger.Error("canvas: update(paint) failed", "error", err)
		return vgfx.ResultFailedAllocation
	}
	if c.state == Idle || c.state == Synced {
		c.state = Updated
	}
	return vgfx.ResultSuccess
}

func (c *Canvas) contains(target *paint.Paint) bool {
	var walk func(p *paint.Paint) bool
	walk = func(p *paint.Paint) bool {
		if p == target {
			return true
		}
		if p.CompositeTarget != nil && walk(p.CompositeTarget) {
			return true
		}
		if p.Kind == paint.KindPicture && p.Picture.Scene != nil && walk(p.Picture.Scene) {
			return true
		}
		for _, c := range p.Children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, root := range c.roots {
		if walk(root) {
			return true
		}
	}
	return false
}

// prepareNode dispatches to the Renderer's PrepareShape/PreparePicture/
// PrepareScene according to p's kind, first handling p's composite
// target (a mask subtree is itself a paint tree needing preparation).
// This mirrors the trait-dispatch pattern spec §9 calls for: Renderer
// exposes only the per-kind prepare operations, and the caller (here,
// canvas) performs the kind switch.
func (c *Canvas) prepareNode(p *paint.Paint, accum geom.Matrix) error {
	if p.CompositeTarget != nil {
		if err := c.prepareNode(p.CompositeTarget, accum); err != nil {
			return err
		}
	}
	switch p.Kind {
	case paint.KindShape:
		return c.renderer.PrepareShape(p, accum)
	case paint.KindPicture:
		return c.renderer.PreparePicture(p, accum)
	case paint.KindScene:
		return c.renderer.PrepareScene(p, accum)
	}
	return fmt.Errorf("canvas: prepareNode: unknown paint kind %d", p.Kind)
}

// Draw composites every prepared root, back-to-front, into the bound
// target (§4.4's draw op). It blocks on a given paint's outstanding
// prepare task only the first time it needs that paint's pixels.
func (c *Canvas) Draw() vgfx.Result {
	if c.state != Updated {
		return vgfx.ResultInsufficientCondition
	}
	if err := c.renderer.Render(c.roots); err != nil {
		c.logger.Error("canvas: draw failed", "error", err)
		return vgfx.ResultUnknown
	}
	c.state = Drawing
	return vgfx.ResultSuccess
}

// Sync blocks until every task dispatched by the most recent Draw has
// completed and the target's pixels are safe for the caller to read
// (§4.4's sync op, §5's full barrier).
func (c *Canvas) Sync() vgfx.Result {
	if c.state != Drawing {
		return vgfx.ResultInsufficientCondition
	}
	if err := c.renderer.Sync(); err != nil {
		c.logger.Error("canvas: sync failed", "error", err)
		return vgfx.ResultUnknown
	}
	c.state = Synced
	return vgfx.ResultSuccess
}
