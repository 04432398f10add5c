package paint

import (
	"testing"

	"github.com/vecraster/vgfx/compose"
	"github.com/vecraster/vgfx/fill"
	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/internal/color"
)

func TestNewShapeDefaults(t *testing.T) {
	p := NewShape()
	if p.Kind != KindShape {
		t.Fatalf("Kind = %v, want KindShape", p.Kind)
	}
	if p.Opacity != 255 {
		t.Errorf("Opacity = %d, want 255", p.Opacity)
	}
	if p.Dirty&DirtyAll != DirtyAll {
		t.Errorf("fresh paint should start fully dirty, got %v", p.Dirty)
	}
}

func TestShapeMutatorsSetDirtyPath(t *testing.T) {
	p := NewShape()
	p.Dirty = 0
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	if p.Dirty&DirtyPath == 0 {
		t.Error("MoveTo/LineTo should set DirtyPath")
	}
	if !p.Shape.Path.Consistent() {
		t.Error("shape path violates consistency invariant")
	}
}

func TestFillClearsGradient(t *testing.T) {
	p := NewShape()
	g := NewLinearGradient(geom.Pt(0, 0), geom.Pt(1, 0), nil, fill.Pad)
	p.FillWithGradient(g)
	if p.Shape.FillGradient == nil {
		t.Fatal("expected gradient set")
	}
	p.Fill(255, 0, 0, 255)
	if p.Shape.FillGradient != nil {
		t.Error("solid Fill should clear any existing gradient")
	}
}

func TestStrokeMutatorsLazilyCreateStroke(t *testing.T) {
	p := NewShape()
	if p.Shape.Stroke != nil {
		t.Fatal("fresh shape should have no stroke")
	}
	p.SetStrokeWidth(3)
	if p.Shape.Stroke == nil {
		t.Fatal("SetStrokeWidth should create a stroke")
	}
	if p.Shape.Stroke.Width != 3 {
		t.Errorf("Stroke.Width = %v, want 3", p.Shape.Stroke.Width)
	}
}

func TestTranslateThenRotateComposesInLocalSpace(t *testing.T) {
	p := NewShape()
	p.Translate(10, 0)
	p.Rotate(90)
	got := p.Transform.TransformPoint(geom.Pt(1, 0))
	// Rotate composes in the translated local frame: local (1,0) first
	// rotates 90 degrees to (0,1), then the translation moves it to (10,1).
	if abs(got.X-10) > 1e-3 || abs(got.Y-1) > 1e-3 {
		t.Errorf("TransformPoint(1,0) = %+v, want ~(10,1)", got)
	}
}

func TestSetOpacitySetsDirtyOpacity(t *testing.T) {
	p := NewShape()
	p.Dirty = 0
	p.SetOpacity(128)
	if p.Dirty&DirtyOpacity == 0 {
		t.Error("SetOpacity should set DirtyOpacity")
	}
}

func TestSetCompositeOwnsTarget(t *testing.T) {
	p := NewShape()
	mask := NewShape()
	p.SetComposite(mask, compose.LumaMask)
	if p.CompositeTarget != mask {
		t.Error("CompositeTarget not set")
	}
	if p.Dirty&DirtyComposite == 0 {
		t.Error("SetComposite should set DirtyComposite")
	}
}

func TestBoundsOfEmptyShapeIsNotOK(t *testing.T) {
	p := NewShape()
	if _, _, _, _, ok := p.Bounds(); ok {
		t.Error("empty shape should report ok=false for Bounds")
	}
}

func TestBoundsTransformsRectangle(t *testing.T) {
	p := NewShape()
	p.AppendRect(0, 0, 10, 20, 0, 0)
	p.Translate(5, 5)
	x, y, w, h, ok := p.Bounds()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if x != 5 || y != 5 || w != 10 || h != 20 {
		t.Errorf("Bounds = (%v,%v,%v,%v), want (5,5,10,20)", x, y, w, h)
	}
}

func TestSceneBoundsUnionsChildren(t *testing.T) {
	scene := NewScene()
	a := NewShape()
	a.AppendRect(0, 0, 10, 10, 0, 0)
	b := NewShape()
	b.AppendRect(20, 20, 10, 10, 0, 0)
	scene.AppendChild(a)
	scene.AppendChild(b)

	x, y, w, h, ok := scene.Bounds()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if x != 0 || y != 0 || w != 30 || h != 30 {
		t.Errorf("Bounds = (%v,%v,%v,%v), want (0,0,30,30)", x, y, w, h)
	}
}

func TestDuplicateDeepCopiesPathAndStops(t *testing.T) {
	p := NewShape()
	p.AppendRect(0, 0, 10, 10, 0, 0)
	g := NewLinearGradient(geom.Pt(0, 0), geom.Pt(1, 0), []Stop{
		{Offset: 0, Color: color.ColorU8{R: 255, A: 255}},
		{Offset: 1, Color: color.ColorU8{B: 255, A: 255}},
	}, fill.Pad)
	p.FillWithGradient(g)

	dup := p.Duplicate()
	dup.Shape.FillGradient.Stops[0].Color.R = 1
	if p.Shape.FillGradient.Stops[0].Color.R == 1 {
		t.Error("Duplicate should deep-copy gradient stops, not alias them")
	}

	dup.Shape.Path.Reset()
	if p.Shape.Path.IsEmpty() {
		t.Error("Duplicate should deep-copy the path, not alias it")
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
