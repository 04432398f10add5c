package geom

import "testing"

func TestVerbPointCount(t *testing.T) {
	cases := []struct {
		v    Verb
		want int
	}{
		{MoveTo, 1},
		{LineTo, 1},
		{CubicTo, 3},
		{Close, 0},
	}
	for _, c := range cases {
		if got := c.v.PointCount(); got != c.want {
			t.Errorf("%v.PointCount() = %d, want %d", c.v, got, c.want)
		}
	}
}

// TestPathConsistentAfterBuilders exercises spec's path-consistency
// property: the verb array's point consumption must exactly match the
// point array's length, after every builder method.
func TestPathConsistentAfterBuilders(t *testing.T) {
	p := NewPath()
	if !p.Consistent() {
		t.Fatal("empty path should be consistent")
	}

	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(1, 0))
	p.CubicTo(Pt(1, 1), Pt(0, 1), Pt(0, 0))
	p.Close()

	if !p.Consistent() {
		t.Error("path built via MoveTo/LineTo/CubicTo/Close should be consistent")
	}
	if got, want := len(p.Points), 1+1+3; got != want {
		t.Errorf("len(Points) = %d, want %d", got, want)
	}
}

func TestPathConsistentAfterShapeBuilders(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *Path)
	}{
		{"rect", func(p *Path) { p.AppendRect(0, 0, 10, 10, 0, 0) }},
		{"roundRect", func(p *Path) { p.AppendRect(0, 0, 10, 10, 2, 2) }},
		{"circle", func(p *Path) { p.AppendCircle(5, 5, 5, 5) }},
		{"arc", func(p *Path) { p.AppendArc(0, 0, 10, 0, 90, false) }},
		{"pieArc", func(p *Path) { p.AppendArc(0, 0, 10, 0, 270, true) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPath()
			tc.build(p)
			if !p.Consistent() {
				t.Errorf("%s: path is not consistent after building", tc.name)
			}
			if p.IsEmpty() {
				t.Errorf("%s: path should not be empty", tc.name)
			}
		})
	}
}

func TestPathLineToWithNoCurrentActsAsMoveTo(t *testing.T) {
	p := NewPath()
	p.LineTo(Pt(2, 3))

	if len(p.Verbs) != 1 || p.Verbs[0] != MoveTo {
		t.Errorf("LineTo() on empty path should emit a MoveTo, got verbs %v", p.Verbs)
	}
	if !p.Consistent() {
		t.Error("path should remain consistent")
	}
}

func TestPathCloseWithNoCurrentIsNoOp(t *testing.T) {
	p := NewPath()
	p.Close()
	if len(p.Verbs) != 0 {
		t.Errorf("Close() on empty path should be a no-op, got verbs %v", p.Verbs)
	}
}

func TestPathCloseReturnsCurrentToStart(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(1, 1))
	p.LineTo(Pt(5, 5))
	p.Close()

	if got, want := p.CurrentPoint(), (Point{X: 1, Y: 1}); got != want {
		t.Errorf("CurrentPoint() after Close() = %v, want %v", got, want)
	}
}

func TestPathReset(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(1, 1))
	p.LineTo(Pt(2, 2))
	p.Reset()

	if !p.IsEmpty() || len(p.Points) != 0 {
		t.Errorf("Reset() left verbs=%v points=%v, want both empty", p.Verbs, p.Points)
	}
	if got := p.CurrentPoint(); got != (Point{}) {
		t.Errorf("CurrentPoint() after Reset() = %v, want zero value", got)
	}
}

func TestPathAppendPathCopiesVerbsAndPoints(t *testing.T) {
	src := NewPath()
	src.MoveTo(Pt(0, 0))
	src.LineTo(Pt(1, 1))
	src.Close()

	dst := NewPath()
	dst.AppendPath(src.Verbs, src.Points)

	if !dst.Consistent() {
		t.Fatal("appended path should be consistent")
	}
	if len(dst.Verbs) != len(src.Verbs) || len(dst.Points) != len(src.Points) {
		t.Errorf("AppendPath() copied verbs=%d points=%d, want verbs=%d points=%d",
			len(dst.Verbs), len(dst.Points), len(src.Verbs), len(src.Points))
	}
}

func TestPathTransformAppliesMatrixToEveryPoint(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(1, 0))
	p.LineTo(Pt(2, 0))

	out := p.Transform(Translate(10, 0))

	if !out.Consistent() {
		t.Error("transformed path should remain consistent")
	}
	want := []Point{{X: 11, Y: 0}, {X: 12, Y: 0}}
	for i, pt := range out.Points {
		if pt != want[i] {
			t.Errorf("Points[%d] = %v, want %v", i, pt, want[i])
		}
	}
	// Original is untouched.
	if p.Points[0] != (Point{X: 1, Y: 0}) {
		t.Error("Transform() should not mutate the receiver")
	}
}

func TestPathCloneIsIndependent(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(1, 1))

	clone := p.Clone()
	clone.LineTo(Pt(2, 2))

	if len(p.Points) == len(clone.Points) {
		t.Error("Clone() should be independently mutable from the original")
	}
}

func TestPathBounds(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(-1, 2))
	p.LineTo(Pt(5, -3))
	p.LineTo(Pt(3, 10))

	minX, minY, maxX, maxY := p.Bounds()
	if minX != -1 || minY != -3 || maxX != 5 || maxY != 10 {
		t.Errorf("Bounds() = (%v,%v,%v,%v), want (-1,-3,5,10)", minX, minY, maxX, maxY)
	}
}

func TestPathBoundsEmpty(t *testing.T) {
	minX, minY, maxX, maxY := NewPath().Bounds()
	if minX != 0 || minY != 0 || maxX != 0 || maxY != 0 {
		t.Errorf("Bounds() of empty path = (%v,%v,%v,%v), want all zero", minX, minY, maxX, maxY)
	}
}
