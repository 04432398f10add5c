package fill

import (
	"testing"

	"github.com/vecraster/vgfx/geom"
	"github.com/vecraster/vgfx/internal/color"
)

func TestApplySpreadRepeat(t *testing.T) {
	cases := map[float32]float32{
		0.25:  0.25,
		1.25:  0.25,
		-0.25: 0.75,
		2.0:   0,
	}
	for in, want := range cases {
		if got := applySpread(in, Repeat); !absClose(got, want) {
			t.Errorf("applySpread(%v, Repeat) = %v, want %v", in, got, want)
		}
	}
}

func TestApplySpreadReflect(t *testing.T) {
	cases := map[float32]float32{
		0.25: 0.25,
		1.25: 0.75,
		1.75: 0.25,
		2.25: 0.25,
	}
	for in, want := range cases {
		if got := applySpread(in, Reflect); !absClose(got, want) {
			t.Errorf("applySpread(%v, Reflect) = %v, want %v", in, got, want)
		}
	}
}

func TestApplySpreadPadClamps(t *testing.T) {
	if got := applySpread(-1, Pad); got != 0 {
		t.Errorf("applySpread(-1, Pad) = %v, want 0", got)
	}
	if got := applySpread(2, Pad); got != 1 {
		t.Errorf("applySpread(2, Pad) = %v, want 1", got)
	}
}

func absClose(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

func TestBuildLUTSingleStopIsConstant(t *testing.T) {
	lut := BuildLUT([]Stop{{Offset: 0.5, Color: color.ColorU8{R: 10, G: 20, B: 30, A: 255}}})
	c := lut.Sample(0.9, Pad)
	if c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("single-stop LUT returned %+v, want {10 20 30 255}", c)
	}
}

func TestBuildLUTEndpointsMatchStops(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: color.ColorU8{R: 255, A: 255}},
		{Offset: 1, Color: color.ColorU8{B: 255, A: 255}},
	}
	lut := BuildLUT(stops)
	start := lut.Sample(0, Pad)
	end := lut.Sample(1, Pad)
	if start.R != 255 {
		t.Errorf("start sample = %+v, want R=255", start)
	}
	if end.B != 255 {
		t.Errorf("end sample = %+v, want B=255", end)
	}
}

func TestLinearGradientAlongAxis(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: color.ColorU8{R: 0, A: 255}},
		{Offset: 1, Color: color.ColorU8{R: 255, A: 255}},
	}
	g := Linear{P0: geom.Pt(0, 0), P1: geom.Pt(10, 0), LUT: BuildLUT(stops), Spread: Pad}

	start := g.At(geom.Pt(0, 0))
	mid := g.At(geom.Pt(5, 0))
	end := g.At(geom.Pt(10, 0))
	beyond := g.At(geom.Pt(20, 0))

	if start.R != 0 {
		t.Errorf("start R = %d, want 0", start.R)
	}
	if end.R != 255 {
		t.Errorf("end R = %d, want 255", end.R)
	}
	if beyond.R != end.R {
		t.Errorf("pad spread beyond end = %d, want clamp to %d", beyond.R, end.R)
	}
	if mid.R == 0 || mid.R == 255 {
		t.Errorf("midpoint R = %d, want strictly between 0 and 255", mid.R)
	}
}

func TestRadialGradientFromCenter(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: color.ColorU8{R: 255, A: 255}},
		{Offset: 1, Color: color.ColorU8{A: 255}},
	}
	g := Radial{Center: geom.Pt(0, 0), R0: 0, R1: 10, LUT: BuildLUT(stops), Spread: Pad}

	center := g.At(geom.Pt(0, 0))
	edge := g.At(geom.Pt(10, 0))
	if center.R != 255 {
		t.Errorf("center R = %d, want 255", center.R)
	}
	if edge.R != 0 {
		t.Errorf("edge R = %d, want 0", edge.R)
	}
}
