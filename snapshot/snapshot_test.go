package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/evolve"
	"github.com/gogpu/evolve/imageio"
)

func TestWriter_Path(t *testing.T) {
	w := &Writer{Dir: "results", Format: imageio.PNG}
	if got, want := w.Path(300), filepath.Join("results", "run_300.png"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	w.Prefix = "snap-"
	w.Format = imageio.BMP
	if got, want := w.Path(7), filepath.Join("results", "snap-7.bmp"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestWriter_Snapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c := evolve.NewCanvas(8, 8)
	c.Fill(evolve.Color{R: 10, G: 20, B: 30, A: 255})
	if err := w.Snapshot(42, c); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	got, err := imageio.Load(filepath.Join(dir, "run_42.png"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(c) {
		t.Error("snapshot content differs from canvas")
	}
}

func TestWriter_SnapshotError(t *testing.T) {
	w := &Writer{Dir: filepath.Join(t.TempDir(), "does-not-exist")}
	if err := w.Snapshot(0, evolve.NewCanvas(2, 2)); err == nil {
		t.Error("Snapshot() into a missing directory should fail")
	}
}

func TestCaptioned(t *testing.T) {
	c := evolve.NewCanvas(60, 30)
	c.Fill(evolve.Color{R: 0, G: 0, B: 255, A: 255})
	orig := c.Clone()

	out := Captioned(c, "#12")
	if !c.Equal(orig) {
		t.Fatal("Captioned() modified the source canvas")
	}
	if out.Pixel(0, 0) != evolve.Black {
		t.Errorf("band corner = %v, want black", out.Pixel(0, 0))
	}
	if out.Pixel(59, 29) != orig.Pixel(59, 29) {
		t.Error("pixels outside the caption band changed")
	}

	var white int
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			if out.Pixel(x, y) == evolve.White {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("no caption text pixels drawn")
	}

	// Tiny canvases are clipped, not overrun.
	tiny := Captioned(evolve.NewCanvas(3, 3), "#100000")
	if tiny.Width() != 3 || tiny.Height() != 3 {
		t.Errorf("tiny caption size = %dx%d", tiny.Width(), tiny.Height())
	}
}

// TestWriter_WithSearch wires the writer into a real search run.
func TestWriter_WithSearch(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	w.Caption = true

	target := evolve.NewCanvas(16, 16)
	target.Fill(evolve.White)
	s, err := evolve.New(target,
		evolve.WithIterations(10),
		evolve.WithSeed(1),
		evolve.WithSnapshotter(w, 4),
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	want := []string{"run_0.png", "run_4.png", "run_8.png", "run_9.png"}
	if !slices.Equal(names, want) {
		t.Errorf("files = %v, want %v", names, want)
	}
}
