// Package stroke expands a path and a stroke style into the filled
// outline path that represents the stroked region — the Minkowski sum of
// the path with a disk of the stroke's half-width.
package stroke

import (
	"math"

	"github.com/vecraster/vgfx/geom"
)

// Cap controls how an open sub-path's endpoints are finished.
type Cap uint8

const (
	// CapButt ends the stroke flush with the endpoint.
	CapButt Cap = iota
	// CapRound ends the stroke with a semicircle centered on the endpoint.
	CapRound
	// CapSquare ends the stroke with a half-square extension past the endpoint.
	CapSquare
)

// Join controls how two consecutive segments are connected on the outer
// side of a turn.
type Join uint8

const (
	// JoinMiter extends the segment edges to their intersection, falling
	// back to JoinBevel when that intersection would exceed MiterLimit.
	JoinMiter Join = iota
	// JoinRound connects segments with a circular arc.
	JoinRound
	// JoinBevel connects segments with a straight chamfer.
	JoinBevel
)

// Style describes how a path is expanded into a stroke outline.
type Style struct {
	Width      float32
	Cap        Cap
	Join       Join
	MiterLimit float32
}

// DefaultStyle returns the stroke style used when a paint requests
// stroking without specifying one: a 1-unit-wide butt-capped miter
// stroke with a miter limit of 4.
func DefaultStyle() Style {
	return Style{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 4}
}

const flattenTolerance = 0.25

// Expand flattens src and returns the filled outline path of stroking it
// with style. The result is intended to be filled with the NonZero rule:
// each sub-path contributes either two oppositely wound rings (closed
// input) or one capped band (open input), and for self-intersecting input the
// non-zero rule keeps the shape's interior free of holes.
func Expand(src *geom.Path, style Style) *geom.Path {
	out := geom.NewPath()
	if style.Width <= 0 {
		return out
	}
	hw := style.Width / 2
	chains, closed := geom.Flatten(src, flattenTolerance)

	for i, chain := range chains {
		chain = dedupe(chain)
		if len(chain) < 2 {
			if len(chain) == 1 && closed[i] && style.Cap == CapRound {
				appendDot(out, chain[0], hw)
			}
			continue
		}
		if closed[i] {
			expandClosed(out, chain, hw, style)
		} else {
			expandOpen(out, chain, hw, style)
		}
	}
	return out
}

// dedupe removes consecutive duplicate points, which would otherwise
// produce degenerate zero-length segments with undefined normals.
func dedupe(chain []geom.Point) []geom.Point {
	out := chain[:0:0]
	for i, p := range chain {
		if i == 0 || p.Distance(chain[i-1]) > 1e-6 {
			out = append(out, p)
		}
	}
	return out
}

func segNormal(a, b geom.Point) geom.Point {
	return b.Sub(a).Normalize().Perp()
}

// expandOpen emits a single closed outline for an open polyline: the
// forward offset along one side, a cap, the backward offset along the
// return trip, and a cap at the start. Each offset pass places its
// cursor at the end of the incoming segment's offset point before
// calling emitJoin, since emitJoin assumes the path is already there and
// is responsible only for reaching the outgoing segment's offset point.
func expandOpen(out *geom.Path, chain []geom.Point, hw float32, style Style) {
	n := len(chain)
	normals := make([]geom.Point, n-1)
	for i := 0; i < n-1; i++ {
		normals[i] = segNormal(chain[i], chain[i+1])
	}

	out.MoveTo(chain[0].Add(normals[0].Mul(hw)))
	for i := 1; i <= n-2; i++ {
		out.LineTo(chain[i].Add(normals[i-1].Mul(hw)))
		emitJoin(out, chain[i], normals[i-1], normals[i], hw, style)
	}
	out.LineTo(chain[n-1].Add(normals[n-2].Mul(hw)))

	emitCap(out, chain[n-1], normals[n-2], hw, style, false)

	out.LineTo(chain[n-1].Sub(normals[n-2].Mul(hw)))
	for i := n - 2; i >= 1; i-- {
		out.LineTo(chain[i].Sub(normals[i].Mul(hw)))
		prev := normals[i].Neg()
		next := normals[i-1].Neg()
		emitJoin(out, chain[i], prev, next, hw, style)
	}
	out.LineTo(chain[0].Sub(normals[0].Mul(hw)))

	emitCap(out, chain[0], normals[0].Neg(), hw, style, true)
	out.Close()
}

// expandClosed emits two oppositely-wound rings — an outer offset loop
// and an inner offset loop — whose NonZero-rule fill is the stroked band
// around a closed sub-path.
func expandClosed(out *geom.Path, chain []geom.Point, hw float32, style Style) {
	// A chain that repeats its start point at the end would give the
	// cyclic walk below a zero-length closing segment; drop the repeat.
	if len(chain) > 2 && chain[len(chain)-1].Distance(chain[0]) <= 1e-6 {
		chain = chain[:len(chain)-1]
	}
	n := len(chain)
	normals := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		normals[i] = segNormal(chain[i], chain[(i+1)%n])
	}

	// The second ring walks the chain backwards, so it winds opposite to
	// the first and lies on the other side of the path.
	rev := make([]geom.Point, n)
	revNormals := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		rev[i] = chain[n-1-i]
	}
	for i := 0; i < n; i++ {
		revNormals[i] = segNormal(rev[i], rev[(i+1)%n])
	}

	emitRing(out, chain, normals, hw, style)
	emitRing(out, rev, revNormals, hw, style)
}

// emitRing emits a single closed offset loop at signed distance d
// (positive = left of travel direction, negative = right), with joins
// at every vertex.
func emitRing(out *geom.Path, chain []geom.Point, normals []geom.Point, d float32, style Style) {
	n := len(chain)
	out.MoveTo(chain[0].Add(normals[n-1].Mul(d)))
	for k := 0; k < n; k++ {
		prev := normals[(k-1+n)%n]
		next := normals[k]
		if d < 0 {
			prev, next = prev.Neg(), next.Neg()
		}
		emitJoin(out, chain[k], prev, next, absF(d), style)
		out.LineTo(chain[(k+1)%n].Add(normals[k].Mul(d)))
	}
	out.Close()
}

// emitJoin bridges the offset points reached via the incoming segment
// normal n0 and the outgoing segment normal n1 at vertex p, on the side
// the normals point toward.
func emitJoin(out *geom.Path, p geom.Point, n0, n1 geom.Point, hw float32, style Style) {
	cross := n0.Cross(n1)
	dot := n0.Dot(n1)
	if absF(cross) < 1e-6 && dot > 0 {
		return // collinear, no join needed
	}
	if cross > 0 {
		// Inner (reflex) side of the turn: a plain line to the
		// outgoing segment's offset point is enough; the small overlap
		// it leaves inside the band does not change the NonZero fill.
		out.LineTo(p.Add(n1.Mul(hw)))
		return
	}

	switch style.Join {
	case JoinBevel:
		out.LineTo(p.Add(n1.Mul(hw)))
	case JoinRound:
		emitArc(out, p, n0, n1, hw)
	default: // JoinMiter
		miter, ok := miterPoint(n0, n1, style.MiterLimit)
		if !ok {
			out.LineTo(p.Add(n1.Mul(hw)))
			return
		}
		out.LineTo(p.Add(miter.Mul(hw)))
		out.LineTo(p.Add(n1.Mul(hw)))
	}
}

// miterPoint returns the direction (unit-scaled to the miter length in
// half-width units) of the miter point between two unit normals, and
// whether the miter ratio stays within limit.
func miterPoint(n0, n1 geom.Point, limit float32) (geom.Point, bool) {
	sum := n0.Add(n1)
	sumLen := sum.Length()
	if sumLen < 1e-6 {
		return geom.Point{}, false
	}
	cosHalf := sumLen / 2
	if cosHalf < 1e-6 {
		return geom.Point{}, false
	}
	ratio := 1 / cosHalf
	if ratio > limit {
		return geom.Point{}, false
	}
	return sum.Mul(1 / sumLen * ratio), true
}

// emitArc appends a circular-arc join from the offset point reached via
// n0 to the one reached via n1, both at radius hw from p.
func emitArc(out *geom.Path, p, n0, n1 geom.Point, hw float32) {
	a0 := n0.Angle()
	a1 := n1.Angle()
	sweep := a1 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	const maxStep = math.Pi / 8
	segs := int(math.Ceil(absF64(sweep) / maxStep))
	if segs < 1 {
		segs = 1
	}
	step := sweep / float64(segs)
	for i := 1; i <= segs; i++ {
		a := a0 + step*float64(i)
		out.LineTo(geom.Pt(p.X+hw*float32(math.Cos(a)), p.Y+hw*float32(math.Sin(a))))
	}
}

// emitCap finishes an open chain's endpoint, bridging from the offset
// point already reached at normal n toward the opposite-side offset
// point (n negated), which the caller continues drawing from.
func emitCap(out *geom.Path, p, n geom.Point, hw float32, style Style, atStart bool) {
	switch style.Cap {
	case CapButt:
		return
	case CapSquare:
		// n is the travel direction turned a quarter turn, so the
		// negated Perp points outward along the tangent at either end.
		dir := n.Perp().Neg()
		ext := dir.Mul(hw)
		out.LineTo(p.Add(n.Mul(hw)).Add(ext))
		out.LineTo(p.Sub(n.Mul(hw)).Add(ext))
	case CapRound:
		start := n.Angle()
		sweep := -math.Pi
		if atStart {
			sweep = -math.Pi
		}
		const maxStep = math.Pi / 8
		segs := int(math.Ceil(math.Pi / maxStep))
		step := sweep / float64(segs)
		for i := 1; i <= segs; i++ {
			a := start + step*float64(i)
			out.LineTo(geom.Pt(p.X+hw*float32(math.Cos(a)), p.Y+hw*float32(math.Sin(a))))
		}
	}
}

// appendDot draws a filled circle for a single-point closed sub-path
// stroked with round caps (a degenerate "dot", matching the common
// convention for zero-length closed dashes).
func appendDot(out *geom.Path, p geom.Point, hw float32) {
	out.AppendCircle(p.X, p.Y, hw, hw)
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func absF64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
