package evolve

import (
	"fmt"
	"strings"
)

// CompositeMode selects how a shape's color is combined with the canvas.
type CompositeMode uint8

const (
	// Overwrite replaces covered pixels with the shape color, alpha included.
	Overwrite CompositeMode = iota

	// AlphaBlend interpolates between the shape color and the existing
	// pixel using the shape's alpha. Covered pixels become opaque.
	AlphaBlend
)

// String returns the mode name accepted by ParseCompositeMode.
func (m CompositeMode) String() string {
	switch m {
	case Overwrite:
		return "overwrite"
	case AlphaBlend:
		return "blend"
	default:
		return fmt.Sprintf("CompositeMode(%d)", uint8(m))
	}
}

// ParseCompositeMode parses "overwrite" or "blend" (case-insensitive).
func ParseCompositeMode(s string) (CompositeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overwrite", "":
		return Overwrite, nil
	case "blend", "alpha", "alpha-blend":
		return AlphaBlend, nil
	default:
		return Overwrite, fmt.Errorf("%w: unknown composite mode %q", ErrInvalidConfig, s)
	}
}

// Rasterizer paints shapes onto a canvas without anti-aliasing.
//
// Only the integer points inside the shape's bounding box, intersected
// with the canvas, are visited. SkipBorder leaves the outermost row and
// column on every side untouched, which reproduces older renders of this
// algorithm; by default the whole canvas is paintable.
type Rasterizer struct {
	Mode       CompositeMode
	SkipBorder bool
}

// scanBox returns the region of c that Paint may write for box.
func (r Rasterizer) scanBox(c *Canvas, box Rect) Rect {
	box = box.Clamp(c.width, c.height)
	if r.SkipBorder {
		box = box.Intersect(c.Extent().Inset(1))
	}
	return box
}

// Paint composites s onto c in place and returns the number of pixels
// written.
func (r Rasterizer) Paint(c *Canvas, s Shape) int {
	box := r.scanBox(c, s.BoundingBox())
	if box.Empty() {
		return 0
	}
	col := s.Color()
	n := 0
	for y := box.Min.Y; y <= box.Max.Y; y++ {
		row := y * c.width * 4
		for x := box.Min.X; x <= box.Max.X; x++ {
			if !s.Hit(Pt(x, y)) {
				continue
			}
			i := row + x*4
			px := c.data[i : i+4 : i+4]
			out := col
			if r.Mode == AlphaBlend {
				out = Blend(col, Color{R: px[0], G: px[1], B: px[2], A: px[3]})
			}
			px[0], px[1], px[2], px[3] = out.R, out.G, out.B, out.A
			n++
		}
	}
	return n
}

// PaintAll paints shapes in order, so later shapes cover earlier ones.
// It returns the total number of pixels written.
func (r Rasterizer) PaintAll(c *Canvas, shapes []Shape) int {
	n := 0
	for _, s := range shapes {
		n += r.Paint(c, s)
	}
	return n
}
