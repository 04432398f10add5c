package geom

import "math"

// Verb names one command in a Path's command sequence (spec §3.2).
type Verb uint8

const (
	// MoveTo begins a new sub-path at the next point. Consumes one point.
	MoveTo Verb = iota
	// LineTo draws a straight line to the next point. Consumes one point.
	LineTo
	// CubicTo draws a cubic Bézier to the next point, via two controls.
	// Consumes three points (control1, control2, endpoint).
	CubicTo
	// Close closes the current sub-path back to its start. Consumes no points.
	Close
)

// PointCount returns how many points a verb consumes from the point array.
func (v Verb) PointCount() int {
	switch v {
	case MoveTo, LineTo:
		return 1
	case CubicTo:
		return 3
	default: // Close
		return 0
	}
}

// Path is a finite ordered sequence of Verbs together with a parallel
// sequence of Points (spec §3.2). The invariant is that the sum of
// Verbs[i].PointCount() over all verbs equals len(Points) exactly, and
// that the first non-Close verb in any sub-path is a MoveTo.
type Path struct {
	Verbs  []Verb
	Points []Point

	start   Point
	current Point
	hasCur  bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{
		Verbs:  make([]Verb, 0, 16),
		Points: make([]Point, 0, 16),
	}
}

// MoveTo starts a new sub-path at p.
func (p *Path) MoveTo(pt Point) {
	p.Verbs = append(p.Verbs, MoveTo)
	p.Points = append(p.Points, pt)
	p.start = pt
	p.current = pt
	p.hasCur = true
}

// LineTo appends a straight line to pt. If the path has no current point,
// this behaves like MoveTo per common path-building convention, so
// internal callers (e.g. the stroker) never need a guard. The LineTo
// mutator in package paint calls this directly and behaves the same way.
func (p *Path) LineTo(pt Point) {
	if !p.hasCur {
		p.MoveTo(pt)
		return
	}
	p.Verbs = append(p.Verbs, LineTo)
	p.Points = append(p.Points, pt)
	p.current = pt
}

// CubicTo appends a cubic Bézier curve with the given control points and
// endpoint.
func (p *Path) CubicTo(c1, c2, end Point) {
	if !p.hasCur {
		p.MoveTo(c1)
	}
	p.Verbs = append(p.Verbs, CubicTo)
	p.Points = append(p.Points, c1, c2, end)
	p.current = end
}

// Close closes the current sub-path. A Close with no prior MoveTo is a
// no-op, matching spec §3.2.
func (p *Path) Close() {
	if !p.hasCur {
		return
	}
	p.Verbs = append(p.Verbs, Close)
	p.current = p.start
}

// Reset empties the path for reuse without releasing its backing arrays.
func (p *Path) Reset() {
	p.Verbs = p.Verbs[:0]
	p.Points = p.Points[:0]
	p.start = Point{}
	p.current = Point{}
	p.hasCur = false
}

// CurrentPoint returns the path's current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() bool {
	return len(p.Verbs) == 0
}

// Consistent verifies the path-consistency invariant of spec §8 property 1:
// the command array's point consumption sums to the point-array length
// exactly.
func (p *Path) Consistent() bool {
	n := 0
	for _, v := range p.Verbs {
		n += v.PointCount()
	}
	return n == len(p.Points)
}

// AppendRect appends a rectangle sub-path, with optional rounded corners
// (rx, ry), matching the public appendRect mutator of spec §6.4.
func (p *Path) AppendRect(x, y, w, h, rx, ry float32) {
	if rx <= 0 || ry <= 0 {
		p.MoveTo(Pt(x, y))
		p.LineTo(Pt(x+w, y))
		p.LineTo(Pt(x+w, y+h))
		p.LineTo(Pt(x, y+h))
		p.Close()
		return
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	const k = 0.5522847498307936 // 4/3 * (sqrt(2)-1)
	kx, ky := rx*k, ry*k

	p.MoveTo(Pt(x+rx, y))
	p.LineTo(Pt(x+w-rx, y))
	p.CubicTo(Pt(x+w-rx+kx, y), Pt(x+w, y+ry-ky), Pt(x+w, y+ry))
	p.LineTo(Pt(x+w, y+h-ry))
	p.CubicTo(Pt(x+w, y+h-ry+ky), Pt(x+w-rx+kx, y+h), Pt(x+w-rx, y+h))
	p.LineTo(Pt(x+rx, y+h))
	p.CubicTo(Pt(x+rx-kx, y+h), Pt(x, y+h-ry+ky), Pt(x, y+h-ry))
	p.LineTo(Pt(x, y+ry))
	p.CubicTo(Pt(x, y+ry-ky), Pt(x+rx-kx, y), Pt(x+rx, y))
	p.Close()
}

// AppendCircle appends a circle sub-path approximated with four cubic
// Béziers, matching the public appendCircle mutator of spec §6.4.
func (p *Path) AppendCircle(cx, cy, rx, ry float32) {
	const k = 0.5522847498307936
	ox, oy := rx*k, ry*k

	p.MoveTo(Pt(cx+rx, cy))
	p.CubicTo(Pt(cx+rx, cy+oy), Pt(cx+ox, cy+ry), Pt(cx, cy+ry))
	p.CubicTo(Pt(cx-ox, cy+ry), Pt(cx-rx, cy+oy), Pt(cx-rx, cy))
	p.CubicTo(Pt(cx-rx, cy-oy), Pt(cx-ox, cy-ry), Pt(cx, cy-ry))
	p.CubicTo(Pt(cx+ox, cy-ry), Pt(cx+rx, cy-oy), Pt(cx+rx, cy))
	p.Close()
}

// AppendArc appends an arc of a circle centered at (cx, cy) with radius r,
// from startDeg sweeping sweepDeg degrees. If pie is true, the arc is
// closed back through the center (a pie slice); matches spec §6.4
// appendArc.
func (p *Path) AppendArc(cx, cy, r, startDeg, sweepDeg float32, pie bool) {
	start := float64(startDeg) * math.Pi / 180
	sweep := float64(sweepDeg) * math.Pi / 180

	if pie {
		p.MoveTo(Pt(cx, cy))
		p.LineTo(Pt(cx+r*float32(math.Cos(start)), cy+r*float32(math.Sin(start))))
	}
	emitArcCubics(p, cx, cy, r, start, sweep, !pie)
	if pie {
		p.Close()
	}
}

// emitArcCubics emits one cubic Bézier per segment of at most 90° of
// sweep, placing each control point 4/3·tan(θ/4)·r along the tangent.
func emitArcCubics(p *Path, cx, cy, r float32, start, sweep float64, moveFirst bool) {
	const maxSeg = math.Pi / 2
	segs := int(math.Ceil(math.Abs(sweep) / maxSeg))
	if segs < 1 {
		segs = 1
	}
	step := sweep / float64(segs)

	for i := 0; i < segs; i++ {
		a0 := start + float64(i)*step
		a1 := a0 + step
		alpha := 4.0 / 3.0 * math.Tan(step/4)

		cos0, sin0 := math.Cos(a0), math.Sin(a0)
		cos1, sin1 := math.Cos(a1), math.Sin(a1)

		p0 := Pt(cx+r*float32(cos0), cy+r*float32(sin0))
		p1 := Pt(cx+r*float32(cos1), cy+r*float32(sin1))
		c1 := Pt(p0.X-float32(alpha)*r*float32(sin0), p0.Y+float32(alpha)*r*float32(cos0))
		c2 := Pt(p1.X+float32(alpha)*r*float32(sin1), p1.Y-float32(alpha)*r*float32(cos1))

		if i == 0 && moveFirst {
			p.MoveTo(p0)
		}
		p.CubicTo(c1, c2, p1)
	}
}

// AppendPath appends the verbs/points of cmds/pts verbatim, matching the
// public appendPath mutator of spec §6.4. The caller is responsible for
// ensuring the two slices are consistent (spec §3.2 invariant); AppendPath
// does not re-validate.
func (p *Path) AppendPath(cmds []Verb, pts []Point) {
	idx := 0
	for _, v := range cmds {
		n := v.PointCount()
		switch v {
		case MoveTo:
			p.MoveTo(pts[idx])
		case LineTo:
			p.LineTo(pts[idx])
		case CubicTo:
			p.CubicTo(pts[idx], pts[idx+1], pts[idx+2])
		case Close:
			p.Close()
		}
		idx += n
	}
}

// Transform returns a new path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		Verbs:  append([]Verb(nil), p.Verbs...),
		Points: make([]Point, len(p.Points)),
	}
	for i, pt := range p.Points {
		out.Points[i] = m.TransformPoint(pt)
	}
	return out
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := &Path{
		Verbs:   append([]Verb(nil), p.Verbs...),
		Points:  append([]Point(nil), p.Points...),
		start:   p.start,
		current: p.current,
		hasCur:  p.hasCur,
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the path's control
// points (not the tight curve bounds, which would require flattening).
func (p *Path) Bounds() (minX, minY, maxX, maxY float32) {
	if len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = p.Points[0].X, p.Points[0].Y
	maxX, maxY = minX, minY
	for _, pt := range p.Points[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return
}
