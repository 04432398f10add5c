package loader

import (
	"fmt"
	"os"

	"github.com/vecraster/vgfx/compose"
	"github.com/vecraster/vgfx/paint"
)

// RawLoader implements Loader for the "raw" format named in §6.5: an
// uncompressed uint32-per-pixel RGBA buffer with no header, so the
// caller must supply dimensions up front.
type RawLoader struct {
	width, height int
	data          []byte
	owned         bool // true once Open/OpenBytes succeeded
	bitmap        *paint.Bitmap
}

// NewRawLoader returns a RawLoader expecting width*height*4 bytes.
func NewRawLoader(width, height int) *RawLoader {
	return &RawLoader{width: width, height: height}
}

func (r *RawLoader) wantBytes() int { return r.width * r.height * 4 }

// Open reads exactly width*height*4 bytes from path.
func (r *RawLoader) Open(path string) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("loader: raw: %w", err)
	}
	return r.OpenBytes(b, true)
}

// OpenBytes validates data's length against the declared dimensions.
// copy is honored: when false, the loader retains data without
// cloning it (the caller must keep it alive and immutable).
func (r *RawLoader) OpenBytes(data []byte, copy bool) (bool, error) {
	if len(data) != r.wantBytes() {
		return false, fmt.Errorf("%w: want %d bytes, got %d", ErrDimensionMismatch, r.wantBytes(), len(data))
	}
	if copy {
		r.data = append([]byte(nil), data...)
	} else {
		r.data = data
	}
	r.owned = true
	return true, nil
}

// Read builds the Bitmap from the already-validated buffer. Raw data
// needs no decoding, so this never blocks or submits a task.
func (r *RawLoader) Read() error {
	if !r.owned {
		return ErrNotOpen
	}
	r.bitmap = &paint.Bitmap{
		Pixels:     r.data,
		Width:      r.width,
		Height:     r.height,
		Stride:     r.width,
		Colorspace: compose.ARGB8888S,
	}
	return nil
}

// Close releases the loader's reference to its buffer.
func (r *RawLoader) Close() error {
	r.data = nil
	r.bitmap = nil
	r.owned = false
	return nil
}

func (r *RawLoader) Scene() *paint.Paint    { return nil }
func (r *RawLoader) Bitmap() *paint.Bitmap { return r.bitmap }
