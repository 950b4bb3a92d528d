package evolve

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindCircle, "circle"},
		{KindTriangle, "triangle"},
		{KindRectangle, "rectangle"},
		{Kind(9), "Kind(9)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

// TestCircle_ZeroRadius checks that a radius 0 circle at (5,5) covers
// exactly one pixel of a 10x10 grid.
func TestCircle_ZeroRadius(t *testing.T) {
	c := NewCircle(Pt(5, 5), 0, White)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x == 5 && y == 5
			if got := c.Hit(Pt(x, y)); got != want {
				t.Errorf("Hit(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if got := c.BoundingBox(); got != (Rect{Pt(5, 5), Pt(5, 5)}) {
		t.Errorf("BoundingBox() = %v, want [(5,5)-(5,5)]", got)
	}
}

func TestCircle_Hit(t *testing.T) {
	c := NewCircle(Pt(10, 10), 3, White)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(10, 10), true},
		{Pt(13, 10), true},  // on the rim
		{Pt(10, 7), true},   // on the rim
		{Pt(12, 12), true},  // sqrt(8) < 3
		{Pt(13, 11), false}, // sqrt(10) > 3
		{Pt(14, 10), false},
	}
	for _, tt := range tests {
		if got := c.Hit(tt.p); got != tt.want {
			t.Errorf("Hit(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestCircle_BoundingBox(t *testing.T) {
	tests := []struct {
		name string
		c    Circle
		want Rect
	}{
		{"fractional radius rounds up", NewCircle(Pt(10, 10), 2.2, White), Rect{Pt(7, 7), Pt(13, 13)}},
		{"clamped at origin", NewCircle(Pt(1, 2), 4, White), Rect{Pt(0, 0), Pt(5, 6)}},
		{"negative radius", NewCircle(Pt(3, 3), -2, White), Rect{Pt(3, 3), Pt(3, 3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.BoundingBox(); got != tt.want {
				t.Errorf("BoundingBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectangle_Hit(t *testing.T) {
	// Corners given in reverse order.
	r := NewRectangle(Pt(6, 5), Pt(2, 3), White)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 2 && x <= 6 && y >= 3 && y <= 5
			if got := r.Hit(Pt(x, y)); got != want {
				t.Errorf("Hit(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if got := r.BoundingBox(); got != (Rect{Pt(2, 3), Pt(6, 5)}) {
		t.Errorf("BoundingBox() = %v", got)
	}
}

func TestNewTriangle_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
	}{
		{"collinear diagonal", Pt(0, 0), Pt(1, 1), Pt(5, 5)},
		{"collinear horizontal", Pt(0, 3), Pt(4, 3), Pt(9, 3)},
		{"coincident", Pt(2, 2), Pt(2, 2), Pt(2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangle(tt.a, tt.b, tt.c, White)
			if !errors.Is(err, ErrDegenerateTriangle) {
				t.Errorf("NewTriangle() error = %v, want ErrDegenerateTriangle", err)
			}

			// A literal degenerate triangle must never hit, not even its vertices.
			tri := Triangle{A: tt.a, B: tt.b, C: tt.c, Fill: White}
			for _, p := range []Point{tt.a, tt.b, tt.c} {
				if tri.Hit(p) {
					t.Errorf("degenerate Hit(%v) = true, want false", p)
				}
			}
			if _, _, _, ok := tri.Barycentric(tt.a); ok {
				t.Error("Barycentric() ok = true for degenerate triangle")
			}
		})
	}
}

func TestTriangle_Hit(t *testing.T) {
	tri, err := NewTriangle(Pt(0, 0), Pt(4, 0), Pt(0, 4), White)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(4, 0), true},
		{Pt(0, 4), true},
		{Pt(2, 2), true}, // on the hypotenuse
		{Pt(1, 1), true},
		{Pt(3, 2), false},
		{Pt(5, 0), false},
		{Pt(-1, 0), false},
	}
	for _, tt := range tests {
		if got := tri.Hit(tt.p); got != tt.want {
			t.Errorf("Hit(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestTriangle_BarycentricSumsToOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		tri := Triangle{
			A: Pt(rng.IntN(50), rng.IntN(50)),
			B: Pt(rng.IntN(50), rng.IntN(50)),
			C: Pt(rng.IntN(50), rng.IntN(50)),
		}
		if tri.Degenerate() {
			continue
		}
		p := Pt(rng.IntN(80)-15, rng.IntN(80)-15)
		a, b, c, ok := tri.Barycentric(p)
		if !ok {
			t.Fatalf("Barycentric(%v) ok = false for %v", p, tri)
		}
		if sum := a + b + c; math.Abs(sum-1) > 1e-9 {
			t.Errorf("%v: a+b+c = %v, want 1", tri, sum)
		}
	}
}

func TestTriangle_VertexCoordinates(t *testing.T) {
	tri := Triangle{A: Pt(1, 1), B: Pt(8, 2), C: Pt(3, 9)}
	a, b, c, _ := tri.Barycentric(tri.A)
	if a != 1 || b != 0 || c != 0 {
		t.Errorf("Barycentric(A) = (%v, %v, %v), want (1, 0, 0)", a, b, c)
	}
	a, b, c, _ = tri.Barycentric(tri.C)
	if a != 0 || b != 0 || c != 1 {
		t.Errorf("Barycentric(C) = (%v, %v, %v), want (0, 0, 1)", a, b, c)
	}
}

// TestHitInsideBoundingBox checks, for many random shapes, that every
// covered grid point lies inside the reported bounding box.
func TestHitInsideBoundingBox(t *testing.T) {
	const w, h = 40, 30
	g := NewGenerator(7)

	var shapes []Shape
	for i := 0; i < 100; i++ {
		shapes = append(shapes,
			g.RandomCircle(w, h),
			g.RandomTriangle(w, h),
			g.RandomRectangle(w, h),
		)
	}
	// Hand-made edge cases.
	shapes = append(shapes,
		NewCircle(Pt(0, 0), 5.5, White),
		NewRectangle(Pt(-4, -4), Pt(2, 2), White),
		Triangle{A: Pt(-3, 5), B: Pt(10, -2), C: Pt(4, 12)},
		Triangle{A: Pt(0, 0), B: Pt(3, 3), C: Pt(6, 6)},
	)

	for _, s := range shapes {
		box := s.BoundingBox()
		for y := 0; y < h+20; y++ {
			for x := 0; x < w+20; x++ {
				p := Pt(x, y)
				if s.Hit(p) && !box.Contains(p) {
					t.Fatalf("%v: Hit(%v) outside BoundingBox() %v", s, p, box)
				}
			}
		}
	}
}

func TestShape_Color(t *testing.T) {
	fill := Color{R: 1, G: 2, B: 3, A: 4}
	tri, _ := NewTriangle(Pt(0, 0), Pt(1, 0), Pt(0, 1), fill)
	for _, s := range []Shape{NewCircle(Pt(1, 1), 1, fill), NewRectangle(Pt(0, 0), Pt(1, 1), fill), tri} {
		if s.Color() != fill {
			t.Errorf("%v: Color() = %v, want %v", s.Kind(), s.Color(), fill)
		}
	}
}
