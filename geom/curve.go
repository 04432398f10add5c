package geom

// flattenTolerance is the default flatness threshold tau used when a
// caller does not supply one. Curves are subdivided until the deviation
// measure in isFlat falls at or below this value, in the same device
// units as the path's points.
const flattenTolerance = 0.5

// maxFlattenDepth bounds the recursive subdivision of FlattenCubic so a
// degenerate or numerically pathological curve cannot recurse forever.
// A curve that never passes isFlat yields at most 2^16 points.
const maxFlattenDepth = 16

// isFlat reports whether the cubic Bézier (p0, c1, c2, p1) is flat enough
// to be approximated by the single line segment p0-p1, within tolerance
// tau. It uses the standard deviation-of-controls-from-chord measure:
// d1 = |3*c1 - 2*p0 - p1|, d2 = |3*c2 - 2*p1 - p0|, taken componentwise,
// and the curve is flat when max(d1.x, d2.x) + max(d1.y, d2.y) <= tau.
func isFlat(p0, c1, c2, p1 Point, tau float32) bool {
	d1 := c1.Mul(3).Sub(p0.Mul(2)).Sub(p1).Abs()
	d2 := c2.Mul(3).Sub(p1.Mul(2)).Sub(p0).Abs()
	return maxF(d1.X, d2.X)+maxF(d1.Y, d2.Y) <= tau
}

// FlattenCubic appends a polyline approximation of the cubic Bézier curve
// (p0, c1, c2, p1) to out, using De Casteljau subdivision at t=0.5 gated
// by isFlat with tolerance tau. The starting point p0 is not itself
// appended; callers that need it should append it before calling. The
// final point p1 is always appended, even if tau is never satisfied by
// the time the depth cap is reached.
func FlattenCubic(out []Point, p0, c1, c2, p1 Point, tau float32) []Point {
	return flattenCubic(out, p0, c1, c2, p1, tau, 0)
}

func flattenCubic(out []Point, p0, c1, c2, p1 Point, tau float32, depth int) []Point {
	if depth >= maxFlattenDepth || isFlat(p0, c1, c2, p1, tau) {
		return append(out, p1)
	}

	// De Casteljau split at t=0.5.
	p01 := p0.Lerp(c1, 0.5)
	p12 := c1.Lerp(c2, 0.5)
	p23 := c2.Lerp(p1, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	out = flattenCubic(out, p0, p01, p012, mid, tau, depth+1)
	out = flattenCubic(out, mid, p123, p23, p1, tau, depth+1)
	return out
}

// FlattenCubicDefault is FlattenCubic with the default tolerance.
func FlattenCubicDefault(out []Point, p0, c1, c2, p1 Point) []Point {
	return FlattenCubic(out, p0, c1, c2, p1, flattenTolerance)
}

// FlattenQuad appends a polyline approximation of the quadratic Bézier
// curve (p0, c, p1) to out by first elevating it to an equivalent cubic,
// then flattening that cubic. p0 is not appended.
func FlattenQuad(out []Point, p0, c, p1 Point, tau float32) []Point {
	c1 := p0.Add(c.Sub(p0).Mul(2.0 / 3.0))
	c2 := p1.Add(c.Sub(p1).Mul(2.0 / 3.0))
	return FlattenCubic(out, p0, c1, c2, p1, tau)
}

// Flatten walks a Path and returns its polyline approximation as a slice
// of closed or open point chains, one per sub-path. Each returned chain
// starts with the sub-path's MoveTo point. closed[i] reports whether
// chain i ended with an explicit Close verb.
func Flatten(p *Path, tau float32) (chains [][]Point, closed []bool) {
	var cur []Point
	var start, last Point
	haveChain := false

	flushChain := func(isClosed bool) {
		if haveChain && len(cur) > 0 {
			chains = append(chains, cur)
			closed = append(closed, isClosed)
		}
		cur = nil
		haveChain = false
	}

	idx := 0
	for _, v := range p.Verbs {
		switch v {
		case MoveTo:
			flushChain(false)
			pt := p.Points[idx]
			cur = append(cur, pt)
			start, last = pt, pt
			haveChain = true
			idx++
		case LineTo:
			pt := p.Points[idx]
			cur = append(cur, pt)
			last = pt
			idx++
		case CubicTo:
			c1, c2, end := p.Points[idx], p.Points[idx+1], p.Points[idx+2]
			cur = FlattenCubic(cur, last, c1, c2, end, tau)
			last = end
			idx += 3
		case Close:
			if haveChain && last != start {
				cur = append(cur, start)
			}
			flushChain(true)
		}
	}
	flushChain(false)
	return chains, closed
}
