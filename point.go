package evolve

import "fmt"

// Point is an integer pixel coordinate. Points carry no bounds of their
// own; they are meaningful only against a canvas of known size.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String returns the point as (x,y).
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned box with both Min and Max inclusive.
// A Rect with Max.X < Min.X or Max.Y < Min.Y is empty.
type Rect struct {
	Min, Max Point
}

// BoxOf returns the smallest Rect containing all given points.
// It returns an empty Rect when no points are given.
func BoxOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{Min: Pt(0, 0), Max: Pt(-1, -1)}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// Empty reports whether r contains no points.
func (r Rect) Empty() bool {
	return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Dx returns the number of columns covered by r.
func (r Rect) Dx() int {
	if r.Empty() {
		return 0
	}
	return r.Max.X - r.Min.X + 1
}

// Dy returns the number of rows covered by r.
func (r Rect) Dy() int {
	if r.Empty() {
		return 0
	}
	return r.Max.Y - r.Min.Y + 1
}

// NonNegative clamps Min to be non-negative. Max is left untouched, so a
// box lying entirely at negative coordinates becomes empty.
func (r Rect) NonNegative() Rect {
	r.Min.X = max(r.Min.X, 0)
	r.Min.Y = max(r.Min.Y, 0)
	return r
}

// Clamp intersects r with the pixel extent [0,width) x [0,height).
func (r Rect) Clamp(width, height int) Rect {
	r = r.NonNegative()
	r.Max.X = min(r.Max.X, width-1)
	r.Max.Y = min(r.Max.Y, height-1)
	return r
}

// Inset shrinks r by n pixels on every side.
func (r Rect) Inset(n int) Rect {
	r.Min.X += n
	r.Min.Y += n
	r.Max.X -= n
	r.Max.Y -= n
	return r
}

// String returns the rect as [min-max].
func (r Rect) String() string {
	return fmt.Sprintf("[%v-%v]", r.Min, r.Max)
}

// Intersect returns the largest box contained in both r and o.
func (r Rect) Intersect(o Rect) Rect {
	r.Min.X = max(r.Min.X, o.Min.X)
	r.Min.Y = max(r.Min.Y, o.Min.Y)
	r.Max.X = min(r.Max.X, o.Max.X)
	r.Max.Y = min(r.Max.Y, o.Max.Y)
	return r
}
