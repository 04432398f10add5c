// Package loader specifies the boundary contract between vgfx's core
// and the external file-format loaders that are explicitly out of
// scope for this module (§1, §4.6): a Loader parses a header, then a
// body, and yields either a vector scene or a bitmap surface. This
// package also implements the process-wide loader cache (§4.6, §5)
// and two reference loaders — raw and PNG/JPEG/WebP bitmaps — that
// exercise the contract without pulling in a vector format parser.
package loader

import (
	"errors"

	"github.com/vecraster/vgfx/paint"
)

// Loader is any object that can parse a scene or bitmap asset in two
// phases: Open discovers dimensions from a header, Read parses the
// body (which a loader may do by submitting itself to a
// scheduler.Scheduler for asynchronous decoding; this package leaves
// that choice to the loader implementation and does not impose it).
type Loader interface {
	// Open parses just enough of path to discover dimensions. It
	// returns false (with no error) if the file does not look like
	// this loader's format.
	Open(path string) (bool, error)

	// OpenBytes is Open's in-memory counterpart. If copy is false, the
	// loader may retain data without copying it (the caller must keep
	// it alive and immutable for the loader's lifetime); such loaders
	// are not process-cache-shareable under pointer identity unless
	// the cache is explicitly told data's identity is stable (see
	// Cache.Acquire).
	OpenBytes(data []byte, copy bool) (bool, error)

	// Read parses the body. Open must have succeeded first.
	Read() error

	// Close releases backing memory, joining on any outstanding Read
	// submitted to a scheduler.
	Close() error

	// Scene returns the parsed paint tree for a vector format, or nil.
	Scene() *paint.Paint

	// Bitmap returns the decoded bitmap surface for a raster format,
	// or nil.
	Bitmap() *paint.Bitmap
}

// FrameSeeker is implemented by loaders backing an animated Picture
// (§4.7). None of this package's reference loaders (raw, PNG, JPEG,
// WebP) are animated; FrameSeeker exists so Animation has a contract
// to wrap, exercised in this package's tests via a fake loader (see
// animation_test.go) since no animated-format loader (Lottie/TVG) is
// implemented in this core — those are external loaders per §1/§6.5.
type FrameSeeker interface {
	Loader

	// TotalFrame returns the animation's frame count.
	TotalFrame() float64
	// CurFrame returns the currently seeked frame.
	CurFrame() float64
	// Duration returns the animation's duration in seconds.
	Duration() float64
	// Frame seeks to frame n. Animation.Frame marks the backing
	// Picture's path dirty after a successful seek.
	Frame(n float64) error
}

// Sentinel errors for loaders. This package's own loaders return
// ErrNotOpen and ErrDimensionMismatch; none of them returns
// ErrUnrecognized or ErrAlreadyClosed.
var (
	ErrNotOpen           = errors.New("loader: Read called before a successful Open")
	ErrUnrecognized      = errors.New("loader: data does not match this loader's format")
	ErrAlreadyClosed     = errors.New("loader: use after Close")
	ErrDimensionMismatch = errors.New("loader: decoded dimensions do not match the declared size")
)
