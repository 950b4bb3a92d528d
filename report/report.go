// Package report plots the score history of a search.
package report

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gogpu/evolve"
)

// ErrNoData is returned by Save when nothing has been recorded.
var ErrNoData = errors.New("report: no data points")

// Default plot size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Sample is one (iteration, score) point.
type Sample struct {
	Iteration int
	Score     uint64
}

// History collects accepted scores and periodic progress samples.
// It implements evolve.Observer and evolve.ProgressObserver.
type History struct {
	Title string

	mu       sync.Mutex
	accepted []Sample
	progress []Sample
}

var (
	_ evolve.Observer         = (*History)(nil)
	_ evolve.ProgressObserver = (*History)(nil)
)

// NewHistory returns an empty history with the given plot title.
func NewHistory(title string) *History {
	return &History{Title: title}
}

// Accepted implements evolve.Observer.
func (h *History) Accepted(imp evolve.Improvement) {
	h.mu.Lock()
	h.accepted = append(h.accepted, Sample{Iteration: imp.Iteration, Score: imp.Score})
	h.mu.Unlock()
}

// Progress implements evolve.ProgressObserver. Samples taken before the
// first acceptance carry no score and are skipped.
func (h *History) Progress(iteration int, best evolve.BestState) {
	if best.Accepted == 0 {
		return
	}
	h.mu.Lock()
	h.progress = append(h.progress, Sample{Iteration: iteration, Score: best.Score})
	h.mu.Unlock()
}

// Accepts returns a copy of the recorded acceptances.
func (h *History) Accepts() []Sample {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Sample(nil), h.accepted...)
}

// Len returns the number of recorded acceptances.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.accepted)
}

func xys(samples []Sample) plotter.XYs {
	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = float64(s.Iteration)
		pts[i].Y = float64(s.Score)
	}
	return pts
}

// Plot builds the score-versus-iteration plot.
func (h *History) Plot() (*plot.Plot, error) {
	h.mu.Lock()
	accepted := xys(h.accepted)
	progress := xys(h.progress)
	h.mu.Unlock()

	if len(accepted) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = h.Title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Score"

	line, err := plotter.NewLine(accepted)
	if err != nil {
		return nil, fmt.Errorf("report: accepted line: %w", err)
	}
	p.Add(line)
	p.Legend.Add("accepted", line)

	if len(progress) > 0 {
		marks, err := plotter.NewScatter(progress)
		if err != nil {
			return nil, fmt.Errorf("report: progress marks: %w", err)
		}
		p.Add(marks)
		p.Legend.Add("progress", marks)
	}

	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

// Save writes the plot to path. The format follows the file extension
// (png, svg, pdf, ...). Zero sizes select the defaults.
func (h *History) Save(path string, width, height vg.Length) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	p, err := h.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
