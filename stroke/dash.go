package stroke

import "github.com/vecraster/vgfx/geom"

// DashPattern is an alternating sequence of on/off lengths applied along
// a path's arc length before stroking. An odd-length array is logically
// doubled (appended to itself) so the pattern always has an even number
// of entries, matching the common SVG/Cairo dash-array convention.
type DashPattern struct {
	Array  []float32
	Offset float32
}

// NewDashPattern returns a DashPattern for the given lengths, or nil if
// every length is zero or the array is empty (meaning "no dashing").
// Negative lengths are taken as their absolute value.
func NewDashPattern(lengths ...float32) *DashPattern {
	if len(lengths) == 0 {
		return nil
	}
	arr := make([]float32, len(lengths))
	allZero := true
	for i, l := range lengths {
		if l < 0 {
			l = -l
		}
		arr[i] = l
		if l != 0 {
			allZero = false
		}
	}
	if allZero {
		return nil
	}
	return &DashPattern{Array: arr}
}

// WithOffset returns a copy of d with Offset set.
func (d *DashPattern) WithOffset(offset float32) *DashPattern {
	return &DashPattern{Array: d.Array, Offset: offset}
}

// effectiveArray returns the dash array doubled if it has odd length.
func (d *DashPattern) effectiveArray() []float32 {
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	doubled := make([]float32, len(d.Array)*2)
	copy(doubled, d.Array)
	copy(doubled[len(d.Array):], d.Array)
	return doubled
}

// PatternLength returns the total arc length of one repetition of the
// effective (even-length) dash array.
func (d *DashPattern) PatternLength() float32 {
	var total float32
	for _, l := range d.effectiveArray() {
		total += l
	}
	return total
}

// Apply walks src's flattened geometry and returns a new path containing
// only the "on" segments of the dash pattern, as separate open
// sub-paths, ready to be passed to Expand. Closed input sub-paths are
// dashed starting from their own first point; the dash phase does not
// wrap across sub-path boundaries.
func Apply(src *geom.Path, d *DashPattern) *geom.Path {
	out := geom.NewPath()
	if d == nil {
		return src.Clone()
	}
	pattern := d.effectiveArray()
	total := d.PatternLength()
	if total <= 0 {
		return src.Clone()
	}

	chains, closed := geom.Flatten(src, flattenTolerance)
	for i, chain := range chains {
		dashChain(out, chain, closed[i], pattern, total, d.Offset)
	}
	return out
}

// dashChain applies the dash pattern to a single flattened polyline,
// appending the resulting "on" segments to out as separate sub-paths.
func dashChain(out *geom.Path, chain []geom.Point, closed bool, pattern []float32, total, offset float32) {
	if len(chain) < 2 {
		return
	}
	if closed {
		chain = append(append([]geom.Point(nil), chain...), chain[0])
	}

	phase := normalizeOffset(offset, total)
	idx, remaining, on := patternPosition(pattern, total, phase)

	var segStart geom.Point
	inSeg := false
	if on {
		segStart = chain[0]
		inSeg = true
	}

	for i := 0; i < len(chain)-1; i++ {
		p0, p1 := chain[i], chain[i+1]
		segLen := p0.Distance(p1)
		pos := float32(0)

		for pos < segLen {
			step := segLen - pos
			if step > remaining {
				step = remaining
			}
			pos += step
			remaining -= step

			if remaining <= 1e-9 {
				t := pos / segLen
				if segLen == 0 {
					t = 1
				}
				boundary := p0.Lerp(p1, t)
				if on {
					out.MoveTo(segStart)
					out.LineTo(boundary)
				}
				on = !on
				if on {
					segStart = boundary
					inSeg = true
				} else {
					inSeg = false
				}
				idx = (idx + 1) % len(pattern)
				remaining = pattern[idx]
			}
		}
	}

	if inSeg && on {
		out.MoveTo(segStart)
		out.LineTo(chain[len(chain)-1])
	}
}

// normalizeOffset folds an arbitrary dash offset into [0, total).
func normalizeOffset(offset, total float32) float32 {
	if total <= 0 {
		return 0
	}
	for offset < 0 {
		offset += total
	}
	for offset >= total {
		offset -= total
	}
	return offset
}

// patternPosition walks the pattern starting from arc-length phase and
// returns the index of the current entry, the remaining length within
// that entry, and whether that entry is an "on" (draw) segment. Even
// indices are on-segments, odd indices are off-segments.
func patternPosition(pattern []float32, total, phase float32) (idx int, remaining float32, on bool) {
	pos := phase
	idx = 0
	for {
		l := pattern[idx]
		if pos < l {
			return idx, l - pos, idx%2 == 0
		}
		pos -= l
		idx = (idx + 1) % len(pattern)
		if total <= 0 {
			return 0, pattern[0], true
		}
	}
}
