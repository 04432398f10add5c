package canvas

import (
	"testing"

	"github.com/vecraster/vgfx"
	"github.com/vecraster/vgfx/compose"
	"github.com/vecraster/vgfx/paint"
)

func newTestCanvas(t *testing.T, w, h int, opts ...Option) (*Canvas, []byte) {
	t.Helper()
	c := New(opts...)
	pixels := make([]byte, w*h*4)
	if res := c.SetTarget(pixels, w, w, h, compose.ARGB8888); !res.OK() {
		t.Fatalf("SetTarget() = %v, want Success", res)
	}
	return c, pixels
}

func fillRect(w, h int, r, g, b, a uint8) *paint.Paint {
	p := paint.NewShape()
	p.AppendRect(-1, -1, float32(w)+2, float32(h)+2, 0, 0)
	p.Fill(r, g, b, a)
	return p
}

func pixelAt(pixels []byte, stride, x, y int) compose.PMColor {
	off := (y*stride + x) * 4
	return compose.ReadPixel(pixels[off:off+4], compose.ARGB8888)
}

func TestCanvasProtocolTransitions(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4)

	if res := c.Draw(); res != vgfx.ResultInsufficientCondition {
		t.Errorf("Draw() in Idle = %v, want InsufficientCondition", res)
	}
	if res := c.Sync(); res != vgfx.ResultInsufficientCondition {
		t.Errorf("Sync() in Idle = %v, want InsufficientCondition", res)
	}

	c.Push(fillRect(4, 4, 255, 0, 0, 255))

	if res := c.Update(); !res.OK() {
		t.Fatalf("Update() = %v, want Success", res)
	}
	if c.State() != Updated {
		t.Errorf("State() after Update = %v, want Updated", c.State())
	}
	if res := c.Sync(); res != vgfx.ResultInsufficientCondition {
		t.Errorf("Sync() before Draw = %v, want InsufficientCondition", res)
	}
	if res := c.Draw(); !res.OK() {
		t.Fatalf("Draw() = %v, want Success", res)
	}
	if c.State() != Drawing {
		t.Errorf("State() after Draw = %v, want Drawing", c.State())
	}
	if res := c.Draw(); res != vgfx.ResultInsufficientCondition {
		t.Errorf("second Draw() without update = %v, want InsufficientCondition", res)
	}
	if res := c.Sync(); !res.OK() {
		t.Fatalf("Sync() = %v, want Success", res)
	}
	if c.State() != Synced {
		t.Errorf("State() after Sync = %v, want Synced", c.State())
	}

	// A second full cycle must succeed after Sync.
	if res := c.Update(); !res.OK() {
		t.Fatalf("second Update() = %v, want Success", res)
	}
	if res := c.Draw(); !res.OK() {
		t.Fatalf("second Draw() = %v, want Success", res)
	}
	if res := c.Sync(); !res.OK() {
		t.Fatalf("second Sync() = %v, want Success", res)
	}
}

func TestCanvasPushRequiresIdle(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4)
	c.Push(fillRect(4, 4, 0, 0, 0, 255))
	c.Update()

	if res := c.Push(fillRect(4, 4, 0, 0, 0, 255)); res != vgfx.ResultInsufficientCondition {
		t.Errorf("Push() in Updated = %v, want InsufficientCondition", res)
	}
}

func TestCanvasPushRejectsNil(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4)
	if res := c.Push(nil); res != vgfx.ResultInvalidArgument {
		t.Errorf("Push(nil) = %v, want InvalidArgument", res)
	}
}

func TestCanvasSetTargetRejectsInvalidDimensions(t *testing.T) {
	c := New()
	if res := c.SetTarget(make([]byte, 16), 0, 0, 4, compose.ARGB8888); res != vgfx.ResultInvalidArgument {
		t.Errorf("SetTarget with width=0 = %v, want InvalidArgument", res)
	}
	if res := c.SetTarget(nil, 4, 4, 4, compose.ARGB8888); res != vgfx.ResultInvalidArgument {
		t.Errorf("SetTarget with nil buffer = %v, want InvalidArgument", res)
	}
}

func TestCanvasFillRectangleProducesOpaqueInterior(t *testing.T) {
	const w, h = 8, 8
	c, pixels := newTestCanvas(t, w, h)
	c.Push(fillRect(w, h, 0, 128, 255, 255))

	if res := c.Update(); !res.OK() {
		t.Fatalf("Update() = %v", res)
	}
	if res := c.Draw(); !res.OK() {
		t.Fatalf("Draw() = %v", res)
	}
	if res := c.Sync(); !res.OK() {
		t.Fatalf("Sync() = %v", res)
	}

	px := pixelAt(pixels, w, w/2, h/2)
	if px.A != 255 {
		t.Errorf("interior alpha = %d, want 255", px.A)
	}
	if px.B != 255 {
		t.Errorf("interior blue channel = %d, want 255 (opaque, premultiplied)", px.B)
	}
}

func TestCanvasOpacityComposition(t *testing.T) {
	const w, h = 4, 4
	c, pixels := newTestCanvas(t, w, h)
	p := fillRect(w, h, 255, 255, 255, 200)
	p.SetOpacity(128)
	c.Push(p)

	c.Update()
	c.Draw()
	c.Sync()

	px := pixelAt(pixels, w, w/2, h/2)
	wantA := uint16(200) * uint16(128) / 255
	if diff := int(px.A) - int(wantA); diff < -1 || diff > 1 {
		t.Errorf("alpha = %d, want ~%d (A*opacity/255)", px.A, wantA)
	}
}

func TestCanvasUpdatePaintRejectsForeignPaint(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4)
	c.Push(fillRect(4, 4, 0, 0, 0, 255))

	foreign := fillRect(4, 4, 0, 0, 0, 255)
	if res := c.UpdatePaint(foreign); res != vgfx.ResultInvalidArgument {
		t.Errorf("UpdatePaint(foreign) = %v, want InvalidArgument", res)
	}
}

func TestCanvasClearResetsToIdle(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4)
	c.Push(fillRect(4, 4, 0, 0, 0, 255))
	c.Update()
	c.Draw()

	if res := c.Clear(true); !res.OK() {
		t.Fatalf("Clear() = %v, want Success", res)
	}
	if c.State() != Idle {
		t.Errorf("State() after Clear = %v, want Idle", c.State())
	}
	if res := c.Push(fillRect(4, 4, 0, 0, 0, 255)); !res.OK() {
		t.Errorf("Push() after Clear = %v, want Success", res)
	}
}

func TestCanvasConcurrentSchedulerSmoke(t *testing.T) {
	const w, h = 32, 32
	c, _ := newTestCanvas(t, w, h, WithSchedulerSize(4))
	for i := 0; i < 50; i++ {
		c.Push(fillRect(w, h, uint8(i), uint8(i*2), uint8(i*3), 255))
	}

	if res := c.Update(); !res.OK() {
		t.Fatalf("Update() = %v", res)
	}
	if res := c.Draw(); !res.OK() {
		t.Fatalf("Draw() = %v", res)
	}
	if res := c.Sync(); !res.OK() {
		t.Fatalf("Sync() = %v", res)
	}
}

func TestCanvasSharedSpanPoolOption(t *testing.T) {
	c1, _ := newTestCanvas(t, 4, 4, WithPooledSpans(true))
	c2, _ := newTestCanvas(t, 4, 4, WithPooledSpans(true))
	for _, c := range []*Canvas{c1, c2} {
		c.Push(fillRect(4, 4, 1, 2, 3, 255))
		if res := c.Update(); !res.OK() {
			t.Fatalf("Update() = %v", res)
		}
		if res := c.Draw(); !res.OK() {
			t.Fatalf("Draw() = %v", res)
		}
		if res := c.Sync(); !res.OK() {
			t.Fatalf("Sync() = %v", res)
		}
	}
}
