package evolve

import "fmt"

// Rectangle is a filled axis-aligned box given by two opposite corners.
// Both corners are covered.
type Rectangle struct {
	P0, P1 Point
	Fill   Color
}

// NewRectangle creates a rectangle from any two opposite corners.
func NewRectangle(p0, p1 Point, fill Color) Rectangle {
	return Rectangle{P0: p0, P1: p1, Fill: fill}
}

// Kind implements Shape.
func (r Rectangle) Kind() Kind { return KindRectangle }

// Color implements Shape.
func (r Rectangle) Color() Color { return r.Fill }

// Hit reports whether p lies inside the box, edges included.
func (r Rectangle) Hit(p Point) bool {
	return BoxOf(r.P0, r.P1).Contains(p)
}

// BoundingBox returns the box spanned by the corners.
func (r Rectangle) BoundingBox() Rect {
	return BoxOf(r.P0, r.P1).NonNegative()
}

func (r Rectangle) String() string {
	return fmt.Sprintf("rectangle %v-%v %v", r.P0, r.P1, r.Fill)
}
