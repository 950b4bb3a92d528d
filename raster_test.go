package evolve

import (
	"errors"
	"testing"
)

func TestCompositeMode_Parse(t *testing.T) {
	tests := []struct {
		in      string
		want    CompositeMode
		wantErr bool
	}{
		{"overwrite", Overwrite, false},
		{"", Overwrite, false},
		{"Blend", AlphaBlend, false},
		{"alpha-blend", AlphaBlend, false},
		{"xor", Overwrite, true},
	}
	for _, tt := range tests {
		got, err := ParseCompositeMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCompositeMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ParseCompositeMode(%q) error = %v, want ErrInvalidConfig", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseCompositeMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, m := range []CompositeMode{Overwrite, AlphaBlend} {
		if got, _ := ParseCompositeMode(m.String()); got != m {
			t.Errorf("ParseCompositeMode(%q) = %v, want %v", m.String(), got, m)
		}
	}
}

func TestRasterizer_PaintOverwrite(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Fill(Black)
	fill := Color{R: 200, G: 100, B: 50, A: 77}

	n := Rasterizer{Mode: Overwrite}.Paint(c, NewRectangle(Pt(2, 3), Pt(4, 5), fill))
	if n != 9 {
		t.Errorf("Paint() = %d pixels, want 9", n)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := Black
			if x >= 2 && x <= 4 && y >= 3 && y <= 5 {
				want = fill
			}
			if got := c.Pixel(x, y); got != want {
				t.Errorf("Pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRasterizer_PaintBlend(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Fill(Color{R: 0, G: 0, B: 255, A: 255})
	top := Color{R: 255, G: 0, B: 0, A: 51} // 20%

	Rasterizer{Mode: AlphaBlend}.Paint(c, NewRectangle(Pt(0, 0), Pt(3, 3), top))

	// R: 51*255/255 = 51; B: 204*255/255 = 204
	want := Color{R: 51, G: 0, B: 204, A: 255}
	if got := c.Pixel(2, 2); got != want {
		t.Errorf("Pixel(2,2) = %v, want %v", got, want)
	}
}

// TestRasterizer_OpaqueBlendEqualsOverwrite checks that blending a fully
// opaque shape gives the same canvas as overwriting with it.
func TestRasterizer_OpaqueBlendEqualsOverwrite(t *testing.T) {
	g := NewGenerator(3)
	for i := 0; i < 50; i++ {
		s := g.Random(Kind(i%3), 32, 32)
		opaque := withColor(s, s.Color().Opaque())

		base := NewCanvas(32, 32)
		for j := 0; j < 10; j++ {
			Rasterizer{}.Paint(base, g.Random(KindRectangle, 32, 32))
		}

		a := base.Clone()
		b := base.Clone()
		Rasterizer{Mode: Overwrite}.Paint(a, opaque)
		Rasterizer{Mode: AlphaBlend}.Paint(b, opaque)
		if !a.Equal(b) {
			t.Fatalf("%v: blend with alpha 255 differs from overwrite", opaque)
		}
	}
}

func TestRasterizer_ClipsToCanvas(t *testing.T) {
	c := NewCanvas(5, 5)
	n := Rasterizer{}.Paint(c, NewRectangle(Pt(-10, -10), Pt(20, 20), White))
	if n != 25 {
		t.Errorf("Paint() = %d pixels, want 25", n)
	}
	n = Rasterizer{}.Paint(c, NewCircle(Pt(50, 50), 3, White))
	if n != 0 {
		t.Errorf("Paint() off-canvas = %d pixels, want 0", n)
	}
}

func TestRasterizer_SkipBorder(t *testing.T) {
	c := NewCanvas(6, 6)
	n := Rasterizer{SkipBorder: true}.Paint(c, NewRectangle(Pt(0, 0), Pt(5, 5), White))
	if n != 16 {
		t.Errorf("Paint() = %d pixels, want 16", n)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			border := x == 0 || y == 0 || x == 5 || y == 5
			got := c.Pixel(x, y)
			if border && got != Transparent {
				t.Errorf("border Pixel(%d,%d) = %v, want untouched", x, y, got)
			}
			if !border && got != White {
				t.Errorf("interior Pixel(%d,%d) = %v, want white", x, y, got)
			}
		}
	}
}

func TestRasterizer_PaintAllOrder(t *testing.T) {
	c := NewCanvas(3, 3)
	red := Color{R: 255, A: 255}
	green := Color{G: 255, A: 255}
	n := Rasterizer{}.PaintAll(c, []Shape{
		NewRectangle(Pt(0, 0), Pt(2, 2), red),
		NewCircle(Pt(1, 1), 0, green),
	})
	if n != 10 {
		t.Errorf("PaintAll() = %d pixels, want 10", n)
	}
	if c.Pixel(1, 1) != green {
		t.Errorf("later shape should cover earlier one, got %v", c.Pixel(1, 1))
	}
	if c.Pixel(0, 0) != red {
		t.Errorf("Pixel(0,0) = %v, want red", c.Pixel(0, 0))
	}
}

// withColor returns a copy of s with a different fill.
func withColor(s Shape, c Color) Shape {
	switch v := s.(type) {
	case Circle:
		v.Fill = c
		return v
	case Triangle:
		v.Fill = c
		return v
	case Rectangle:
		v.Fill = c
		return v
	}
	return s
}
