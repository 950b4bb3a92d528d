package evolve

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// SizeRange is an inclusive range of shape sizes in pixels.
type SizeRange struct {
	Min, Max int
}

// Validate reports an error unless 0 < Min <= Max.
func (r SizeRange) Validate() error {
	if r.Min <= 0 || r.Max < r.Min {
		return fmt.Errorf("%w: size range [%d, %d] must satisfy 0 < min <= max", ErrInvalidConfig, r.Min, r.Max)
	}
	return nil
}

// fit shrinks r so that Max does not exceed limit, keeping 1 <= Min <= Max.
func (r SizeRange) fit(limit int) SizeRange {
	limit = max(limit, 1)
	r.Max = max(min(r.Max, limit), 1)
	r.Min = max(min(r.Min, r.Max), 1)
	return r
}

// Default size ranges.
var (
	DefaultCircleRadius  = SizeRange{Min: 1, Max: 5}
	DefaultTriangleLeg   = SizeRange{Min: 3, Max: 13}
	DefaultRectangleHalf = SizeRange{Min: 1, Max: 6}
)

// MixFunc picks the variant of the i-th shape of a batch.
type MixFunc func(i int) Kind

// DefaultMix makes every 10th shape a triangle, every other 5th a circle,
// and the rest rectangles.
func DefaultMix(i int) Kind {
	switch {
	case i%10 == 0:
		return KindTriangle
	case i%5 == 0:
		return KindCircle
	default:
		return KindRectangle
	}
}

// maxTriangleAttempts bounds resampling of collinear triangle draws.
const maxTriangleAttempts = 32

// Generator draws random shapes from an owned pseudorandom source.
//
// Two generators built with the same seed and sizes yield the same shapes.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand

	CircleRadius  SizeRange
	TriangleLeg   SizeRange
	RectangleHalf SizeRange
	Mix           MixFunc

	// MinShapes and MaxShapes bound the batch size drawn by Shapes.
	MinShapes, MaxShapes int
}

// NewGenerator creates a generator with a fixed seed and default sizes.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		CircleRadius:  DefaultCircleRadius,
		TriangleLeg:   DefaultTriangleLeg,
		RectangleHalf: DefaultRectangleHalf,
		Mix:           DefaultMix,
		MinShapes:     DefaultMinShapes,
		MaxShapes:     DefaultMaxShapes,
	}
}

// NewTimeSeededGenerator creates a generator seeded from the wall clock.
// Runs using it are not reproducible.
func NewTimeSeededGenerator() *Generator {
	return NewGenerator(uint64(time.Now().UnixNano()))
}

// intIn returns a uniform integer in [lo, hi].
func (g *Generator) intIn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// point returns a uniform point over [0,width) x [0,height).
func (g *Generator) point(width, height int) Point {
	return Pt(g.rng.IntN(max(width, 1)), g.rng.IntN(max(height, 1)))
}

// RandomColor returns a color with every channel, alpha included,
// uniform over [0, 255].
func (g *Generator) RandomColor() Color {
	v := g.rng.Uint32()
	return Color{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: uint8(v >> 24)}
}

// RandomCircle returns a circle centered anywhere on the canvas.
func (g *Generator) RandomCircle(width, height int) Circle {
	size := g.CircleRadius.fit(min(width, height))
	center := g.point(width, height)
	radius := float64(g.intIn(size.Min, size.Max))
	return NewCircle(center, radius, g.RandomColor())
}

// RandomRectangle returns a rectangle centered anywhere on the canvas with
// independent half-width and half-height.
func (g *Generator) RandomRectangle(width, height int) Rectangle {
	hw := g.RectangleHalf.fit(width)
	hh := g.RectangleHalf.fit(height)
	c := g.point(width, height)
	dx := g.intIn(hw.Min, hw.Max)
	dy := g.intIn(hh.Min, hh.Max)
	return NewRectangle(Pt(c.X-dx, c.Y-dy), Pt(c.X+dx, c.Y+dy), g.RandomColor())
}

// RandomTriangle returns a non-degenerate triangle. One vertex is placed
// anywhere on the canvas and the others within a leg length of it.
// Collinear draws are resampled; if every attempt is collinear a right
// triangle with the drawn leg length is used.
func (g *Generator) RandomTriangle(width, height int) Triangle {
	size := g.TriangleLeg.fit(min(width, height))
	fill := g.RandomColor()
	for range maxTriangleAttempts {
		a := g.point(width, height)
		leg := g.intIn(size.Min, size.Max)
		b := a.Add(Pt(g.intIn(-leg, leg), g.intIn(-leg, leg)))
		c := a.Add(Pt(g.intIn(-leg, leg), g.intIn(-leg, leg)))
		if t, err := NewTriangle(a, b, c, fill); err == nil {
			return t
		}
	}
	a := g.point(width, height)
	leg := size.Max
	return Triangle{A: a, B: a.Add(Pt(leg, 0)), C: a.Add(Pt(0, leg)), Fill: fill}
}

// Random returns a random shape of the given kind.
func (g *Generator) Random(kind Kind, width, height int) Shape {
	switch kind {
	case KindTriangle:
		return g.RandomTriangle(width, height)
	case KindCircle:
		return g.RandomCircle(width, height)
	default:
		return g.RandomRectangle(width, height)
	}
}

// Batch returns n random shapes, choosing each variant with Mix.
func (g *Generator) Batch(width, height, n int) []Shape {
	mix := g.Mix
	if mix == nil {
		mix = DefaultMix
	}
	shapes := make([]Shape, 0, max(n, 0))
	for i := range max(n, 0) {
		shapes = append(shapes, g.Random(mix(i), width, height))
	}
	return shapes
}

// Shapes implements Source. The batch size is uniform over
// [MinShapes, MaxShapes].
func (g *Generator) Shapes(width, height int) []Shape {
	return g.Batch(width, height, g.intIn(g.MinShapes, g.MaxShapes))
}
