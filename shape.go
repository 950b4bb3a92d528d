package evolve

import "fmt"

// Kind identifies a shape variant.
type Kind uint8

const (
	// KindCircle is a filled circle.
	KindCircle Kind = iota
	// KindTriangle is a filled triangle.
	KindTriangle
	// KindRectangle is a filled axis-aligned rectangle.
	KindRectangle
)

// String returns the lower-case variant name.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindTriangle:
		return "triangle"
	case KindRectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Shape is a filled primitive with a single color.
//
// The variants are Circle, Triangle and Rectangle. Shapes are values: they
// are never mutated once built.
//
// Every point p with p.X >= 0 and p.Y >= 0 for which Hit(p) is true lies
// inside BoundingBox(). The rasterizer relies on this to bound its scan.
type Shape interface {
	fmt.Stringer

	// Kind reports the variant.
	Kind() Kind

	// Hit reports whether p is covered by the shape.
	Hit(p Point) bool

	// BoundingBox returns the inclusive box around all covered points,
	// with Min clamped to be non-negative.
	BoundingBox() Rect

	// Color returns the fill color.
	Color() Color
}

// Compile-time checks.
var (
	_ Shape = Circle{}
	_ Shape = Triangle{}
	_ Shape = Rectangle{}
)
