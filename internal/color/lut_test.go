package color

import "testing"

func TestLUTEndpoints(t *testing.T) {
	if sRGBToLinearLUT[0] != 0 {
		t.Errorf("sRGBToLinearLUT[0] = %v, want 0", sRGBToLinearLUT[0])
	}
	if sRGBToLinearLUT[255] < 0.99 || sRGBToLinearLUT[255] > 1.0 {
		t.Errorf("sRGBToLinearLUT[255] = %v, want ~1.0", sRGBToLinearLUT[255])
	}
	if linearToSRGBLUT[0] != 0 {
		t.Errorf("linearToSRGBLUT[0] = %v, want 0", linearToSRGBLUT[0])
	}
	if linearToSRGBLUT[linearToSRGBSteps] != 255 {
		t.Errorf("linearToSRGBLUT[max] = %v, want 255", linearToSRGBLUT[linearToSRGBSteps])
	}
}

func TestLUTMonotonic(t *testing.T) {
	for i := 1; i < len(sRGBToLinearLUT); i++ {
		if sRGBToLinearLUT[i] < sRGBToLinearLUT[i-1] {
			t.Fatalf("sRGBToLinearLUT not monotonic at %d", i)
		}
	}
	for i := 1; i < len(linearToSRGBLUT); i++ {
		if linearToSRGBLUT[i] < linearToSRGBLUT[i-1] {
			t.Fatalf("linearToSRGBLUT not monotonic at %d", i)
		}
	}
}

func TestSRGBToLinearColorPreservesAlpha(t *testing.T) {
	in := ColorF32{R: 0.5, G: 0.5, B: 0.5, A: 0.42}
	got := SRGBToLinearColor(in)
	if got.A != in.A {
		t.Errorf("SRGBToLinearColor changed alpha: got %v, want %v", got.A, in.A)
	}
}

func TestLinearToSRGBColorPreservesAlpha(t *testing.T) {
	in := ColorF32{R: 0.5, G: 0.5, B: 0.5, A: 0.42}
	got := LinearToSRGBColor(in)
	if got.A != in.A {
		t.Errorf("LinearToSRGBColor changed alpha: got %v, want %v", got.A, in.A)
	}
}

func TestSRGBToLinearColorBlackAndWhite(t *testing.T) {
	black := SRGBToLinearColor(ColorF32{0, 0, 0, 1})
	if black.R != 0 || black.G != 0 || black.B != 0 {
		t.Errorf("SRGBToLinearColor(black) = %v, want zero RGB", black)
	}
	white := SRGBToLinearColor(ColorF32{1, 1, 1, 1})
	if !colorF32Near(ColorF32{white.R, white.G, white.B, 1}, ColorF32{1, 1, 1, 1}, 0.01) {
		t.Errorf("SRGBToLinearColor(white) = %v, want ~1.0 RGB", white)
	}
}

func TestGammaRoundTrip(t *testing.T) {
	const maxError = 2.0 / 255.0
	for i := 0; i <= 255; i++ {
		s := float32(i) / 255
		in := ColorF32{R: s, G: s, B: s, A: 1}
		roundTrip := LinearToSRGBColor(SRGBToLinearColor(in))
		if !colorF32Near(ColorF32{roundTrip.R, 0, 0, 0}, ColorF32{s, 0, 0, 0}, maxError) {
			t.Errorf("round-trip sRGB %d/255: got %v, want ~%v", i, roundTrip.R, s)
		}
	}
}
