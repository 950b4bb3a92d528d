package evolve

import (
	"fmt"
	"image/color"

	"github.com/gogpu/evolve/internal/blend"
)

// Color is a straight (non-premultiplied) 8-bit RGBA color.
//
// On a shape, A is the opacity used by alpha-blend compositing. Blended
// canvas pixels always end up fully opaque.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
)

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	if c, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Opaque returns c with alpha set to 255.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// Blend composites top over bottom using top's alpha as the weight:
//
//	out = (A/255)*top + (1 - A/255)*bottom
//
// per color channel, truncated to a byte. The result is always opaque.
func Blend(top, bottom Color) Color {
	return Color{
		R: blend.Lerp(top.R, bottom.R, top.A),
		G: blend.Lerp(top.G, bottom.G, top.A),
		B: blend.Lerp(top.B, bottom.B, top.A),
		A: 255,
	}
}

// SquaredDistance returns the sum of squared R, G and B differences.
// Alpha is ignored.
func SquaredDistance(a, b Color) uint64 {
	return uint64(blend.SquaredDiff(a.R, b.R)) +
		uint64(blend.SquaredDiff(a.G, b.G)) +
		uint64(blend.SquaredDiff(a.B, b.B))
}

// String returns the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
