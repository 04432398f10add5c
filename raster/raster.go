// Package raster turns flattened path geometry into runs of anti-aliased
// coverage, using an active-edge-table scanline algorithm with analytic
// (exact-area) pixel coverage rather than supersampling.
package raster

import (
	"math"

	"github.com/vecraster/vgfx/geom"
)

// FillRule selects how overlapping sub-paths combine into a filled region.
type FillRule uint8

const (
	// NonZero fills wherever the accumulated edge winding is non-zero.
	NonZero FillRule = iota
	// EvenOdd fills wherever the accumulated edge winding is odd.
	EvenOdd
)

// Span is a single run-length-encoded coverage record: pixels
// [X, X+Len) on row Y share the coverage value Coverage (0-255, where 255
// is fully opaque). A rasterization pass yields a Span slice per draw.
type Span struct {
	Y        int32
	X        int32
	Len      int32
	Coverage uint8
}

// buildEdges converts flattened polyline chains into an EdgeList, closing
// each chain back to its start and skipping degenerate horizontal
// segments. Fill always treats every sub-path as implicitly closed
// regardless of whether the source carried an explicit Close verb, which
// is the standard fill-rasterization convention; open-vs-closed only
// matters for stroking, handled upstream of this package.
func buildEdges(chains [][]geom.Point) *EdgeList {
	el := NewEdgeList()
	for _, chain := range chains {
		n := len(chain)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			p0 := chain[i]
			p1 := chain[(i+1)%n]
			el.AddLine(p0.X, p0.Y, p1.X, p1.Y)
		}
	}
	return el
}

// Rasterizer accumulates per-scanline winding and coverage buffers sized
// to a fixed width, so repeated Fill calls on the same target avoid
// reallocating them.
type Rasterizer struct {
	width, height int
	winding       []float32
	coverage      []float32
}

// New returns a Rasterizer sized for a target of the given pixel
// dimensions.
func New(width, height int) *Rasterizer {
	return &Rasterizer{
		width:    width,
		height:   height,
		winding:  make([]float32, width),
		coverage: make([]float32, width),
	}
}

// Fill rasterizes the already-flattened sub-paths in chains (see
// geom.Flatten) using fillRule, clips to the rasterizer's width/height,
// and returns one Span per maximal run of constant non-zero coverage on
// each scanline it touches. Spans are returned in scanline order, then
// left-to-right within a scanline.
func (r *Rasterizer) Fill(chains [][]geom.Point, fillRule FillRule) []Span {
	el := buildEdges(chains)
	if el.Len() == 0 {
		return nil
	}

	_, yMin, _, yMax := el.Bounds()

	rowMin := int(math.Floor(float64(yMin)))
	rowMax := int(math.Ceil(float64(yMax)))
	if rowMin < 0 {
		rowMin = 0
	}
	if rowMax > r.height {
		rowMax = r.height
	}

	var spans []Span
	for y := rowMin; y < rowMax; y++ {
		spans = r.scanline(spans, el.Edges(), int32(y), fillRule)
	}
	return spans
}

// scanline computes the coverage buffer for pixel row y and appends its
// runs to out.
func (r *Rasterizer) scanline(out []Span, edges []Edge, y int32, fillRule FillRule) []Span {
	for i := range r.winding {
		r.winding[i] = 0
	}

	yTop := float32(y)
	yBot := yTop + 1

	for i := range edges {
		e := &edges[i]
		if e.YMax <= yTop || e.YMin >= yBot {
			continue
		}
		r.accumulateEdge(e, yTop, yBot)
	}

	r.applyFillRule(fillRule)
	return r.coverageToSpans(out, y)
}

// accumulateEdge adds e's trapezoidal contribution to r.winding for the
// pixel row [yTop, yBot), following the standard signed-area analytic
// coverage method: each pixel gets the exact area between the edge and
// the pixel's right boundary within the row, and pixels strictly to the
// right of the edge's full extent inherit the accumulated running total.
func (r *Rasterizer) accumulateEdge(e *Edge, yTop, yBot float32) {
	top := maxF(yTop, e.YMin)
	bot := minF(yBot, e.YMax)
	dy := bot - top
	if dy <= 0 {
		return
	}

	sign := float32(e.Winding)
	topX := e.XAtY(top)
	botX := e.XAtY(bot)

	minX := minF(topX, botX)
	maxX := maxF(topX, botX)
	widthF := float32(r.width)

	if minX >= widthF {
		return
	}
	if maxX < 0 {
		full := dy * sign
		for x := range r.winding {
			r.winding[x] += full
		}
		return
	}

	var ySlope float32
	if botX != topX {
		ySlope = dy / (botX - topX)
	}

	acc := offscreenLeftContribution(topX, botX, top, bot, ySlope, sign)

	xStart := int(minX)
	if xStart < 0 {
		xStart = 0
	}
	xEnd := int(maxX) + 2
	if xEnd > r.width {
		xEnd = r.width
	}

	for x := 0; x < xStart; x++ {
		r.winding[x] += acc
	}

	for x := xStart; x < xEnd; x++ {
		pxLeft := float32(x)
		pxRight := pxLeft + 1

		var leftY, rightY float32
		if ySlope == 0 {
			// A vertical edge crosses only the column that contains it.
			leftY, rightY = top, bot
			if topX < pxLeft || topX >= pxRight {
				leftY, rightY = top, top
			}
		} else {
			leftY = top + (pxLeft-topX)*ySlope
			rightY = top + (pxRight-topX)*ySlope
		}
		leftY = clampF(leftY, top, bot)
		rightY = clampF(rightY, top, bot)

		var leftX, rightX float32
		if dy == 0 {
			leftX, rightX = topX, topX
		} else {
			leftX = topX + (leftY-top)*(botX-topX)/dy
			rightX = topX + (rightY-top)*(botX-topX)/dy
		}

		h := rightY - leftY
		if h < 0 {
			h = -h
		}

		area := 0.5 * h * (2*pxRight - rightX - leftX)
		r.winding[x] += area*sign + acc
		acc += h * sign
	}

	for x := xEnd; x < r.width; x++ {
		r.winding[x] += acc
	}
}

// offscreenLeftContribution computes the winding contribution of the
// portion of an edge lying at X < 0, which every visible pixel (X >= 0)
// is to the right of and therefore inherits in full.
func offscreenLeftContribution(topX, botX, top, bot, ySlope, sign float32) float32 {
	if topX >= 0 && botX >= 0 {
		return 0
	}
	var crossY float32
	if ySlope == 0 {
		crossY = top
	} else {
		crossY = clampF(top-topX*ySlope, top, bot)
	}
	var h float32
	if topX < 0 {
		h = crossY - top
	} else {
		h = bot - crossY
	}
	if h < 0 {
		h = -h
	}
	return h * sign
}

// applyFillRule folds r.winding into r.coverage in [0, 1] per the active
// fill rule.
func (r *Rasterizer) applyFillRule(fillRule FillRule) {
	switch fillRule {
	case NonZero:
		for i, w := range r.winding {
			if w < 0 {
				w = -w
			}
			r.coverage[i] = clampF(w, 0, 1)
		}
	case EvenOdd:
		for i, w := range r.winding {
			if w < 0 {
				w = -w
			}
			w = float32(math.Mod(float64(w), 2))
			if w > 1 {
				w = 2 - w
			}
			r.coverage[i] = w
		}
	}
}

// coverageToSpans collapses r.coverage into runs of constant 8-bit
// coverage and appends them to out.
func (r *Rasterizer) coverageToSpans(out []Span, y int32) []Span {
	runStart := -1
	var runAlpha uint8

	flush := func(end int) {
		if runStart >= 0 && runAlpha > 0 {
			out = append(out, Span{Y: y, X: int32(runStart), Len: int32(end - runStart), Coverage: runAlpha})
		}
	}

	for x := 0; x < r.width; x++ {
		a := uint8(clampF(r.coverage[x], 0, 1) * 255)
		if runStart < 0 {
			runStart, runAlpha = x, a
			continue
		}
		if a != runAlpha {
			flush(x)
			runStart, runAlpha = x, a
		}
	}
	flush(r.width)
	return out
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
