package color

import "math"

// sRGBToLinearLUT maps an 8-bit sRGB-encoded component directly to its
// linear-light float32 equivalent, precomputed once at startup so the
// gradient interpolation hot path in fill never calls math.Pow per pixel.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT maps a 12-bit quantized linear value back to its
// 8-bit sRGB-encoded byte. 4096 entries keep the round-trip error
// below one sRGB step, finer than the 8-bit output needs.
var linearToSRGBLUT [4096]uint8

const linearToSRGBSteps = len(linearToSRGBLUT) - 1

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = float32(srgbToLinearExact(float64(i) / 255))
	}
	for i := range linearToSRGBLUT {
		l := float64(i) / float64(linearToSRGBSteps)
		linearToSRGBLUT[i] = clampAndRound(float32(linearToSRGBExact(l)))
	}
}

// srgbToLinearExact and linearToSRGBExact are the IEC 61966-2-1 sRGB
// transfer functions; only init uses them, to build the tables above.
func srgbToLinearExact(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func linearToSRGBExact(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// SRGBToLinearColor converts a straight-alpha, sRGB-encoded color to
// linear light via the precomputed lookup table. Alpha is already
// linear and passes through unchanged.
func SRGBToLinearColor(c ColorF32) ColorF32 {
	return ColorF32{
		R: sRGBToLinearLUT[clampAndRound(c.R)],
		G: sRGBToLinearLUT[clampAndRound(c.G)],
		B: sRGBToLinearLUT[clampAndRound(c.B)],
		A: c.A,
	}
}

// LinearToSRGBColor converts a linear-light color back to sRGB gamma
// encoding via the precomputed lookup table. Alpha passes through
// unchanged.
func LinearToSRGBColor(c ColorF32) ColorF32 {
	return ColorF32{
		R: linearToSRGB(c.R),
		G: linearToSRGB(c.G),
		B: linearToSRGB(c.B),
		A: c.A,
	}
}

func linearToSRGB(l float32) float32 {
	switch {
	case l <= 0:
		return 0
	case l >= 1:
		return 1
	default:
		idx := int(l*float32(linearToSRGBSteps) + 0.5)
		return float32(linearToSRGBLUT[idx]) / 255
	}
}
