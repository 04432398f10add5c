// Package color holds the two color representations the rasterization
// pipeline passes between packages (paint, fill, compose): 8-bit
// straight-alpha colors as stored on a Shape, and the float32 working
// form gradient interpolation blends in.
package color

// ColorF32 is a color with components in [0,1]. RGB is in whichever
// space the caller documents (straight sRGB gamma-encoded, or linear);
// alpha is always linear.
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 is a color with 8-bit components, the form a Shape's
// FillColor/Stroke.Color and a Gradient's Stop.Color are stored in.
type ColorU8 struct {
	R, G, B, A uint8
}
