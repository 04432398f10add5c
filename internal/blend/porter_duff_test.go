package blend

import "testing"

func TestMulDiv255(t *testing.T) {
	cases := []struct {
		a, b, want byte
	}{
		{0, 0, 0},
		{255, 255, 255},
		{0, 255, 0},
		{128, 128, 64},
		{100, 100, 39},
		{200, 200, 157},
	}
	for _, c := range cases {
		if got := mulDiv255(c.a, c.b); got != c.want {
			t.Errorf("mulDiv255(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestAddSatClampsAt255(t *testing.T) {
	cases := []struct {
		a, b, want byte
	}{
		{0, 0, 0},
		{100, 100, 200},
		{200, 100, 255},
		{255, 255, 255},
	}
	for _, c := range cases {
		if got := addSat(c.a, c.b); got != c.want {
			t.Errorf("addSat(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSourceOverOpaqueSourceReplacesDestination(t *testing.T) {
	r, g, b, a := sourceOver(255, 0, 0, 255, 0, 0, 255, 255)
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("sourceOver(opaque red, opaque blue) = (%d,%d,%d,%d), want (255,0,0,255)", r, g, b, a)
	}
}

func TestSourceOverTransparentSourceKeepsDestination(t *testing.T) {
	r, g, b, a := sourceOver(0, 0, 0, 0, 10, 20, 30, 200)
	if r != 10 || g != 20 || b != 30 || a != 200 {
		t.Errorf("sourceOver(transparent, dest) = (%d,%d,%d,%d), want dest unchanged (10,20,30,200)", r, g, b, a)
	}
}

func TestSourceOverHalfSourceBlendsTowardSource(t *testing.T) {
	r, _, _, a := sourceOver(128, 0, 0, 128, 0, 0, 0, 255)
	if r <= 0 || r >= 255 {
		t.Errorf("sourceOver(50%% red, opaque black).r = %d, want strictly between 0 and 255", r)
	}
	if a != 255 {
		t.Errorf("sourceOver(50%% red, opaque black).a = %d, want 255 (result stays opaque)", a)
	}
}

func TestGetBlendFuncDefaultsToSourceOverForUnknownMode(t *testing.T) {
	fn := GetBlendFunc(BlendMode(255))
	r, g, b, a := fn(255, 0, 0, 255, 0, 0, 0, 0)
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("GetBlendFunc(unknown mode) did not behave like SourceOver: got (%d,%d,%d,%d)", r, g, b, a)
	}
}
