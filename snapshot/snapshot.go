// Package snapshot writes intermediate canvases of a search to disk.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/evolve"
	"github.com/gogpu/evolve/imageio"
)

// DefaultPrefix is the file name prefix used when Writer.Prefix is empty.
const DefaultPrefix = "run_"

// Writer saves each snapshot as <Dir>/<Prefix><iteration>.<format>.
// It implements evolve.Snapshotter.
type Writer struct {
	Dir    string
	Prefix string
	Format imageio.Format

	// Caption stamps the iteration number onto the top-left corner of the
	// written image. The canvas itself is never modified.
	Caption bool
}

var _ evolve.Snapshotter = (*Writer)(nil)

// New returns a PNG writer into dir, creating dir if needed.
func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("snapshot: create dir: %w", err)
	}
	return &Writer{Dir: dir, Prefix: DefaultPrefix, Format: imageio.PNG}, nil
}

// Path returns the file path used for the given iteration.
func (w *Writer) Path(iteration int) string {
	prefix := w.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return filepath.Join(w.Dir, fmt.Sprintf("%s%d.%s", prefix, iteration, w.Format))
}

// Snapshot implements evolve.Snapshotter.
func (w *Writer) Snapshot(iteration int, c *evolve.Canvas) error {
	out := c
	if w.Caption {
		out = Captioned(c, fmt.Sprintf("#%d", iteration))
	}

	path := w.Path(iteration)
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("snapshot: create file: %w", err)
	}
	if err := imageio.Encode(f, out, w.Format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: close file: %w", err)
	}

	evolve.Logger().Debug("snapshot: written", "iteration", iteration, "path", path)
	return nil
}

// captionPad is the margin around caption text in pixels.
const captionPad = 2

// Captioned returns a copy of c with label drawn in white on a black band
// at the top-left corner.
func Captioned(c *evolve.Canvas, label string) *evolve.Canvas {
	out := c.Clone()
	face := basicfont.Face7x13

	d := &font.Drawer{Face: face}
	width := d.MeasureString(label).Ceil() + 2*captionPad
	height := face.Metrics().Height.Ceil() + 2*captionPad

	band := image.Rect(0, 0, width, height).Intersect(out.Bounds())
	draw.Draw(out, band, image.NewUniform(color.Black), image.Point{}, draw.Src)

	d.Dst = out
	d.Src = image.NewUniform(color.White)
	d.Dot = fixed.P(captionPad, captionPad+face.Metrics().Ascent.Ceil())
	d.DrawString(label)
	return out
}
