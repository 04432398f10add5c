package render

import (
	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/paint"
)

// Renderer is the trait set a rendering backend implements (§9's
// Design Notes): prepare the three paint kinds, composite a tree into
// the bound target, discard cached state, and report/wait on the
// target. SoftwareRenderer is the only implementation in this module;
// a GPU backend would satisfy the same interface without canvas.Canvas
// needing to change.
type Renderer interface {
	// Bind rebinds the renderer's output target, discarding no paint
	// state of its own (canvas.Canvas is responsible for invalidating
	// prepared data when a rebind should do so).
	Bind(t Target)

	// PrepareShape derives PreparedShape for p under the accumulated
	// ancestor transform accum, storing it in p.Prepared and clearing
	// all of p's dirty flags. p.Kind must be KindShape.
	PrepareShape(p *paint.Paint, accum geom.Matrix) error

	// PreparePicture derives PreparedPicture for p. p.Kind must be
	// KindPicture.
	PreparePicture(p *paint.Paint, accum geom.Matrix) error

	// PrepareScene recursively prepares p's children under accum
	// composed with p's own transform. p.Kind must be KindScene.
	PrepareScene(p *paint.Paint, accum geom.Matrix) error

	// Render composites the already-prepared roots, back-to-front,
	// into the bound target. It may block on outstanding asynchronous
	// prepare work the first time it reads a given node's Prepared
	// data.
	Render(roots []*paint.Paint) error

	// Dispose discards a paint's cached Prepared data (and, for
	// KindScene, recurses into its children) without waiting on any
	// outstanding prepare task for it.
	Dispose(p *paint.Paint)

	// Target returns the currently bound target.
	Target() Target

	// Sync blocks until all work dispatched by the most recent Render
	// has completed and the target's pixels are safe for the caller
	// to read.
	Sync() error
}
