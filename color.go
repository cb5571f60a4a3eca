package vis

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Invert returns the color with each color channel inverted.
// Alpha is preserved. Used by control captures so that every pixel
// where an element actually shows through differs from the
// composited capture.
func (c RGBA) Invert() RGBA {
	return RGBA{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B, A: c.A}
}

// Common colors.
var (
	Transparent = RGBA{}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Black       = RGBA{A: 1}
)

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
