package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/webp"

	"github.com/vecraster/vgfx/compose"
	"github.com/vecraster/vgfx/paint"
)

// imageLoader backs PNGLoader, JPEGLoader, and WebPLoader: all three
// reduce to "decode with a stdlib/x/image decoder, convert to
// straight-alpha ARGB8888S". The decoder function is the only thing
// that differs between the three formats, dispatched behind one
// loading path.
type imageLoader struct {
	decode func(io.Reader) (image.Image, error)
	header []byte
	bitmap *paint.Bitmap
}

func newImageLoader(decode func(io.Reader) (image.Image, error)) *imageLoader {
	return &imageLoader{decode: decode}
}

func (l *imageLoader) Open(path string) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("loader: image: %w", err)
	}
	return l.OpenBytes(b, true)
}

func (l *imageLoader) OpenBytes(data []byte, copy bool) (bool, error) {
	if copy {
		l.header = append([]byte(nil), data...)
	} else {
		l.header = data
	}
	// A cheap "does this look plausible" probe: try decoding the
	// config only, which is enough to discover dimensions without
	// paying for full pixel decode during Open (§4.6's two-phase
	// contract: Open discovers dimensions, Read parses the body).
	if _, _, err := image.DecodeConfig(bytes.NewReader(l.header)); err != nil {
		return false, nil
	}
	return true, nil
}

func (l *imageLoader) Read() error {
	if l.header == nil {
		return ErrNotOpen
	}
	img, err := l.decode(bytes.NewReader(l.header))
	if err != nil {
		return fmt.Errorf("loader: image: decode: %w", err)
	}
	l.bitmap = toBitmap(img)
	return nil
}

func (l *imageLoader) Close() error {
	l.header = nil
	l.bitmap = nil
	return nil
}

func (l *imageLoader) Scene() *paint.Paint    { return nil }
func (l *imageLoader) Bitmap() *paint.Bitmap { return l.bitmap }

// toBitmap converts a decoded image.Image to the straight-alpha
// ARGB8888S layout paint.Bitmap expects, via image/draw-equivalent
// manual conversion (avoids pulling in image/draw for a conversion
// this simple: one NRGBA-shaped copy loop).
func toBitmap(img image.Image) *paint.Bitmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, w*h*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			// img.At returns alpha-premultiplied 16-bit channels;
			// WritePixel un-premultiplies to straight 8-bit for the
			// ARGB8888S layout.
			var pm compose.PMColor
			pm.R, pm.G, pm.B, pm.A = uint8(r>>8), uint8(g>>8), uint8(bl>>8), uint8(a>>8)
			compose.WritePixel(pixels[i:i+4], pm, compose.ARGB8888S)
			i += 4
		}
	}
	return &paint.Bitmap{
		Pixels:     pixels,
		Width:      w,
		Height:     h,
		Stride:     w,
		Colorspace: compose.ARGB8888S,
	}
}

// NewPNGLoader returns a reference Loader for the "png" format (§6.5),
// decoding with the standard library's image/png rather than reaching
// for a third-party decoder gratuitously.
func NewPNGLoader() Loader { return newImageLoader(png.Decode) }

// NewJPEGLoader returns a reference Loader for the "jpg" format
// (§6.5), decoding with the standard library's image/jpeg.
func NewJPEGLoader() Loader { return newImageLoader(jpeg.Decode) }

// NewWebPLoader returns a reference Loader for the "webp" format
// (§6.5) using golang.org/x/image/webp, a decode-only package — which
// matches the real-world state of WebP support in Go (no stdlib
// decoder, and no encoder in x/image either); this loader simply
// never supports a hypothetical write path.
func NewWebPLoader() Loader { return newImageLoader(webp.Decode) }
