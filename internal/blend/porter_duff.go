// Package blend implements the one Porter-Duff compositing operator
// this module's rasterizer pipeline needs: SRC-OVER, the default
// compositing mode everywhere RGBA is layered. All values are
// premultiplied alpha, 0-255.
//
// Reference: Porter & Duff, "Compositing Digital Images" (1984).
package blend

// BlendMode names a compositing operator. Only BlendSourceOver has an
// implementation; GetBlendFunc falls back to it for any other value,
// so the type exists mainly so compose can name the mode it wants at
// the call site rather than importing a bare function.
type BlendMode uint8

const (
	// BlendSourceOver composites source over destination: S + D*(1-Sa).
	BlendSourceOver BlendMode = iota
)

// BlendFunc blends a premultiplied source pixel over a premultiplied
// destination pixel and returns the composited result.
type BlendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetBlendFunc returns the blend function for mode, defaulting to
// sourceOver for anything unrecognized.
func GetBlendFunc(mode BlendMode) BlendFunc {
	switch mode {
	case BlendSourceOver:
		return sourceOver
	default:
		return sourceOver
	}
}

// sourceOver composites source over destination: S + D*(1-Sa).
func sourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addSat(sr, mulDiv255(dr, invSa)),
		addSat(sg, mulDiv255(dg, invSa)),
		addSat(sb, mulDiv255(db, invSa)),
		addSat(sa, mulDiv255(da, invSa))
}

// mulDiv255 computes round(a*b/255), the standard fixed-point multiply
// used throughout 8-bit-per-channel alpha compositing.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addSat adds two byte values, saturating at 255 instead of wrapping.
func addSat(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
