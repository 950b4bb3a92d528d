package evolve

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
)

// Canvas is a dense RGBA pixel buffer with straight alpha.
//
// Pixels are stored row-major in a single contiguous slice, 4 bytes per
// pixel, so a Clone is one allocation and one copy. The zero pixel is
// transparent black.
//
// Canvas implements draw.Image.
type Canvas struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel
}

var _ draw.Image = (*Canvas)(nil)

// NewCanvas creates a transparent canvas with the given dimensions.
// Non-positive dimensions yield an empty canvas.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	return &Canvas{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the height of the canvas.
func (c *Canvas) Height() int {
	return c.height
}

// Data returns the raw pixel data (RGBA format).
func (c *Canvas) Data() []uint8 {
	return c.data
}

// Extent returns the full pixel box of the canvas.
func (c *Canvas) Extent() Rect {
	return Rect{Min: Pt(0, 0), Max: Pt(c.width-1, c.height-1)}
}

// SameSize reports whether c and o have equal dimensions.
func (c *Canvas) SameSize(o *Canvas) bool {
	return c.width == o.width && c.height == o.height
}

// Pixel returns the color at (x, y), or Transparent when out of range.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Transparent
	}
	i := (y*c.width + x) * 4
	return Color{R: c.data[i+0], G: c.data[i+1], B: c.data[i+2], A: c.data[i+3]}
}

// SetPixel sets the color at (x, y). Out-of-range writes are ignored.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 4
	c.data[i+0] = col.R
	c.data[i+1] = col.G
	c.data[i+2] = col.B
	c.data[i+3] = col.A
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col Color) {
	for i := 0; i < len(c.data); i += 4 {
		c.data[i+0] = col.R
		c.data[i+1] = col.G
		c.data[i+2] = col.B
		c.data[i+3] = col.A
	}
}

// Clear resets every pixel to transparent black.
func (c *Canvas) Clear() {
	clear(c.data)
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	data := make([]uint8, len(c.data))
	copy(data, c.data)
	return &Canvas{width: c.width, height: c.height, data: data}
}

// CopyFrom overwrites c with the pixels of src.
// It returns ErrSizeMismatch when the dimensions differ.
func (c *Canvas) CopyFrom(src *Canvas) error {
	if !c.SameSize(src) {
		return ErrSizeMismatch
	}
	copy(c.data, src.data)
	return nil
}

// Equal reports whether both canvases have the same size and identical
// bytes, alpha included.
func (c *Canvas) Equal(o *Canvas) bool {
	return c.SameSize(o) && bytes.Equal(c.data, o.data)
}

// ToImage converts the canvas to an image.NRGBA.
func (c *Canvas) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.data)
	return img
}

// FromImage creates a canvas from any image. Pixels are converted to
// straight alpha.
func FromImage(img image.Image) *Canvas {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	c := NewCanvas(width, height)

	// Fast path for NRGBA images with matching stride
	if n, ok := img.(*image.NRGBA); ok && n.Stride == width*4 {
		copy(c.data, n.Pix)
		return c
	}

	for y := range height {
		for x := range width {
			c.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return c
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.Pixel(x, y)
}

// Set implements the draw.Image interface.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.SetPixel(x, y, FromColor(col))
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.NRGBAModel
}
