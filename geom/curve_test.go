package geom

import "testing"

func TestIsFlatForAStraightLine(t *testing.T) {
	// Control points lying on the chord should always read as flat.
	p0, p1 := Pt(0, 0), Pt(10, 0)
	c1 := p0.Lerp(p1, 1.0/3.0)
	c2 := p0.Lerp(p1, 2.0/3.0)

	if !isFlat(p0, c1, c2, p1, 0.01) {
		t.Error("isFlat() = false for collinear controls, want true")
	}
}

func TestIsFlatForABulgingCurve(t *testing.T) {
	p0, p1 := Pt(0, 0), Pt(10, 0)
	c1, c2 := Pt(0, 10), Pt(10, 10)

	if isFlat(p0, c1, c2, p1, 0.5) {
		t.Error("isFlat() = true for a strongly bulging curve, want false")
	}
}

func TestFlattenCubicOfAStraightLineYieldsOnePoint(t *testing.T) {
	p0, p1 := Pt(0, 0), Pt(10, 0)
	c1 := p0.Lerp(p1, 1.0/3.0)
	c2 := p0.Lerp(p1, 2.0/3.0)

	out := FlattenCubic(nil, p0, c1, c2, p1, 0.5)

	if len(out) != 1 {
		t.Fatalf("FlattenCubic() on a straight line returned %d points, want 1", len(out))
	}
	if out[0] != p1 {
		t.Errorf("FlattenCubic() last point = %v, want %v", out[0], p1)
	}
}

func TestFlattenCubicAlwaysEndsAtP1(t *testing.T) {
	p0, c1, c2, p1 := Pt(0, 0), Pt(0, 20), Pt(20, 20), Pt(20, 0)
	out := FlattenCubic(nil, p0, c1, c2, p1, 0.25)

	if len(out) == 0 {
		t.Fatal("FlattenCubic() returned no points")
	}
	if got := out[len(out)-1]; got != p1 {
		t.Errorf("last flattened point = %v, want %v", got, p1)
	}
}

func TestFlattenCubicTighterToleranceProducesMorePoints(t *testing.T) {
	p0, c1, c2, p1 := Pt(0, 0), Pt(0, 20), Pt(20, 20), Pt(20, 0)

	coarse := FlattenCubic(nil, p0, c1, c2, p1, 2.0)
	fine := FlattenCubic(nil, p0, c1, c2, p1, 0.05)

	if len(fine) <= len(coarse) {
		t.Errorf("finer tolerance produced %d points, want more than coarse's %d", len(fine), len(coarse))
	}
}

func TestFlattenCubicRespectsDepthCap(t *testing.T) {
	// A curve that can never satisfy an impossibly tight tolerance must
	// still terminate, bounded by maxFlattenDepth.
	p0, c1, c2, p1 := Pt(0, 0), Pt(0, 1000), Pt(1000, 1000), Pt(1000, 0)
	out := FlattenCubic(nil, p0, c1, c2, p1, 0)

	if len(out) == 0 {
		t.Error("FlattenCubic() with tau=0 returned no points, want a bounded nonzero count")
	}
}

func TestFlattenQuadMatchesElevatedCubicEndpoints(t *testing.T) {
	p0, c, p1 := Pt(0, 0), Pt(5, 10), Pt(10, 0)
	out := FlattenQuad(nil, p0, c, p1, 0.1)

	if len(out) == 0 {
		t.Fatal("FlattenQuad() returned no points")
	}
	if got := out[len(out)-1]; got != p1 {
		t.Errorf("FlattenQuad() last point = %v, want %v", got, p1)
	}
}

func TestFlattenOpenSubpath(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(10, 10))

	chains, closed := Flatten(p, 0.5)

	if len(chains) != 1 {
		t.Fatalf("Flatten() returned %d chains, want 1", len(chains))
	}
	if closed[0] {
		t.Error("open sub-path reported as closed")
	}
	want := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if len(chains[0]) != len(want) {
		t.Fatalf("chain has %d points, want %d", len(chains[0]), len(want))
	}
	for i, pt := range want {
		if chains[0][i] != pt {
			t.Errorf("chain[%d] = %v, want %v", i, chains[0][i], pt)
		}
	}
}

func TestFlattenClosedSubpathAppendsStartPoint(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(10, 10))
	p.Close()

	chains, closed := Flatten(p, 0.5)

	if len(chains) != 1 {
		t.Fatalf("Flatten() returned %d chains, want 1", len(chains))
	}
	if !closed[0] {
		t.Error("closed sub-path reported as open")
	}
	last := chains[0][len(chains[0])-1]
	if last != (Point{X: 0, Y: 0}) {
		t.Errorf("closed chain's last point = %v, want sub-path start {0 0}", last)
	}
}

func TestFlattenMultipleSubpaths(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(1, 0))
	p.MoveTo(Pt(5, 5))
	p.LineTo(Pt(6, 5))

	chains, closed := Flatten(p, 0.5)

	if len(chains) != 2 {
		t.Fatalf("Flatten() returned %d chains, want 2", len(chains))
	}
	if closed[0] || closed[1] {
		t.Error("open sub-paths reported as closed")
	}
}

func TestFlattenEmptyPath(t *testing.T) {
	chains, closed := Flatten(NewPath(), 0.5)
	if len(chains) != 0 || len(closed) != 0 {
		t.Errorf("Flatten(empty) = %v/%v, want both empty", chains, closed)
	}
}
