package evolve

import "fmt"

// Triangle is a filled triangle.
//
// A triangle whose vertices are collinear has no interior. NewTriangle
// rejects such input; a degenerate Triangle built as a literal is legal
// but never hits.
type Triangle struct {
	A, B, C Point
	Fill    Color
}

// NewTriangle creates a triangle, returning ErrDegenerateTriangle when the
// vertices are collinear.
func NewTriangle(a, b, c Point, fill Color) (Triangle, error) {
	t := Triangle{A: a, B: b, C: c, Fill: fill}
	if t.Degenerate() {
		return Triangle{}, fmt.Errorf("%w: %v %v %v", ErrDegenerateTriangle, a, b, c)
	}
	return t, nil
}

// Kind implements Shape.
func (t Triangle) Kind() Kind { return KindTriangle }

// Color implements Shape.
func (t Triangle) Color() Color { return t.Fill }

// denominator is twice the signed area of the triangle.
func (t Triangle) denominator() int {
	return (t.B.Y-t.C.Y)*(t.A.X-t.C.X) + (t.C.X-t.B.X)*(t.A.Y-t.C.Y)
}

// Degenerate reports whether the vertices are collinear.
func (t Triangle) Degenerate() bool {
	return t.denominator() == 0
}

// Barycentric returns the barycentric coordinates of p with respect to
// A, B and C. The third coordinate is 1 - a - b. ok is false for a
// degenerate triangle, in which case the coordinates are zero.
func (t Triangle) Barycentric(p Point) (a, b, c float64, ok bool) {
	d := t.denominator()
	if d == 0 {
		return 0, 0, 0, false
	}
	den := float64(d)
	a = float64((t.B.Y-t.C.Y)*(p.X-t.C.X)+(t.C.X-t.B.X)*(p.Y-t.C.Y)) / den
	b = float64((t.C.Y-t.A.Y)*(p.X-t.C.X)+(t.A.X-t.C.X)*(p.Y-t.C.Y)) / den
	c = 1 - a - b
	return a, b, c, true
}

// Hit reports whether all three barycentric coordinates of p lie in [0, 1].
func (t Triangle) Hit(p Point) bool {
	a, b, c, ok := t.Barycentric(p)
	if !ok {
		return false
	}
	return inUnit(a) && inUnit(b) && inUnit(c)
}

// BoundingBox returns the box spanned by the vertices.
func (t Triangle) BoundingBox() Rect {
	return BoxOf(t.A, t.B, t.C).NonNegative()
}

func (t Triangle) String() string {
	return fmt.Sprintf("triangle %v %v %v %v", t.A, t.B, t.C, t.Fill)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
