package evolve

import (
	"fmt"
	"math"
)

// Circle is a filled disc.
type Circle struct {
	Center Point
	Radius float64
	Fill   Color
}

// NewCircle creates a circle. A negative or NaN radius is treated as 0.
func NewCircle(center Point, radius float64, fill Color) Circle {
	if !(radius >= 0) {
		radius = 0
	}
	return Circle{Center: center, Radius: radius, Fill: fill}
}

// Kind implements Shape.
func (c Circle) Kind() Kind { return KindCircle }

// Color implements Shape.
func (c Circle) Color() Color { return c.Fill }

// Hit reports whether the Euclidean distance from the center to p is at
// most the radius.
func (c Circle) Hit(p Point) bool {
	if !(c.Radius >= 0) {
		return false
	}
	dx := float64(p.X - c.Center.X)
	dy := float64(p.Y - c.Center.Y)
	return math.Sqrt(dx*dx+dy*dy) <= c.Radius
}

// BoundingBox returns center ± ceil(radius).
func (c Circle) BoundingBox() Rect {
	r := 0
	if c.Radius > 0 {
		r = int(math.Ceil(c.Radius))
	}
	return Rect{
		Min: Pt(c.Center.X-r, c.Center.Y-r),
		Max: Pt(c.Center.X+r, c.Center.Y+r),
	}.NonNegative()
}

func (c Circle) String() string {
	return fmt.Sprintf("circle %v r=%.2f %v", c.Center, c.Radius, c.Fill)
}
