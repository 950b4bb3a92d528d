package evolve

import (
	"context"
	"fmt"
	"math"
)

// Source supplies the candidate shapes of one iteration.
// *Generator is the default Source.
type Source interface {
	Shapes(width, height int) []Shape
}

// Snapshotter persists intermediate canvases. The canvas is only valid for
// the duration of the call and must not be modified.
type Snapshotter interface {
	Snapshot(iteration int, c *Canvas) error
}

// SnapshotFunc adapts a function to the Snapshotter interface.
type SnapshotFunc func(iteration int, c *Canvas) error

// Snapshot implements Snapshotter.
func (f SnapshotFunc) Snapshot(iteration int, c *Canvas) error { return f(iteration, c) }

// Improvement describes an accepted candidate.
type Improvement struct {
	Iteration int
	Score     uint64
	Previous  uint64  // math.MaxUint64 for the first acceptance
	Shapes    []Shape // shapes painted onto the accepted canvas, in order
}

// Observer is notified of every accepted candidate.
type Observer interface {
	Accepted(imp Improvement)
}

// ProgressObserver is implemented by observers that want periodic
// progress callbacks in addition to acceptances.
type ProgressObserver interface {
	Progress(iteration int, best BestState)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(imp Improvement)

// Accepted implements Observer.
func (f ObserverFunc) Accepted(imp Improvement) { f(imp) }

// BestState is the best canvas found so far and its score.
type BestState struct {
	Score     uint64
	Canvas    *Canvas
	Iteration int // iteration of the last acceptance, -1 before any
	Accepted  int // number of acceptances so far
}

// StepResult reports what a single iteration did.
type StepResult struct {
	Iteration int
	Drawn     int    // shapes drawn from the source
	Kept      int    // shapes surviving the local filter
	Pixels    int    // pixels written to the candidate
	Score     uint64 // candidate score; equals the best score when nothing was painted
	Accepted  bool
}

// Search is a single-lineage hill climber. Each iteration paints a batch
// of shapes onto a copy of the best canvas and keeps the copy only if its
// score against the target is strictly lower.
//
// A Search is not safe for concurrent use.
type Search struct {
	cfg         Config
	target      *Canvas
	source      Source
	raster      Rasterizer
	evaluator   Evaluator
	filter      *LocalFilter
	snapshotter Snapshotter
	observers   []Observer
	pool        *CanvasPool

	best BestState
	iter int
}

// New creates a search toward target. The target must not be modified
// while the search is alive.
func New(target *Canvas, opts ...Option) (*Search, error) {
	if target == nil || target.Width() <= 0 || target.Height() <= 0 {
		return nil, ErrInvalidDimensions
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if o.cfg.Snapshots && o.snapshotter == nil {
		return nil, fmt.Errorf("%w: snapshots enabled without a snapshotter", ErrInvalidConfig)
	}
	if o.evaluator == nil {
		return nil, fmt.Errorf("%w: nil evaluator", ErrInvalidConfig)
	}

	s := &Search{
		cfg:         o.cfg,
		target:      target,
		source:      o.source,
		raster:      Rasterizer{Mode: o.cfg.Mode, SkipBorder: o.cfg.SkipBorder},
		evaluator:   o.evaluator,
		snapshotter: o.snapshotter,
		observers:   o.observers,
		pool:        NewCanvasPool(2),
		best: BestState{
			Score:     math.MaxUint64,
			Canvas:    NewCanvas(target.Width(), target.Height()),
			Iteration: -1,
		},
	}
	if s.source == nil {
		s.source = newDefaultGenerator(o.cfg)
	}
	if o.cfg.Filter {
		s.filter = &LocalFilter{Slack: o.cfg.FilterSlack}
	}
	return s, nil
}

// newDefaultGenerator builds the shape source described by cfg.
func newDefaultGenerator(cfg Config) *Generator {
	var g *Generator
	if cfg.Seeded {
		g = NewGenerator(cfg.Seed)
	} else {
		g = NewTimeSeededGenerator()
	}
	g.CircleRadius = cfg.CircleRadius
	g.TriangleLeg = cfg.TriangleLeg
	g.RectangleHalf = cfg.RectangleHalf
	g.MinShapes = cfg.MinShapes
	g.MaxShapes = cfg.MaxShapes
	return g
}

// Config returns the effective configuration.
func (s *Search) Config() Config {
	return s.cfg
}

// Target returns the target canvas.
func (s *Search) Target() *Canvas {
	return s.target
}

// Best returns the current best state. The canvas is owned by the search
// and is replaced, never modified, when a better candidate is found.
func (s *Search) Best() BestState {
	return s.best
}

// Iteration returns the number of iterations performed so far.
func (s *Search) Iteration() int {
	return s.iter
}

// Done reports whether the iteration budget is exhausted.
func (s *Search) Done() bool {
	return s.iter >= s.cfg.Iterations
}

// Step runs one iteration: draw, filter, paint onto a copy of the best
// canvas, score, and accept the copy if it is strictly better.
func (s *Search) Step() StepResult {
	i := s.iter
	s.iter++

	w, h := s.target.Width(), s.target.Height()
	batch := s.source.Shapes(w, h)
	res := StepResult{Iteration: i, Drawn: len(batch), Score: s.best.Score}

	if s.filter != nil {
		batch = s.filter.Filter(s.target, s.best.Canvas, batch)
	}
	res.Kept = len(batch)

	// An unchanged canvas cannot beat itself once it has been scored.
	if len(batch) == 0 && s.best.Accepted > 0 {
		s.logStep(res)
		return res
	}

	candidate := s.pool.CloneOf(s.best.Canvas)
	res.Pixels = s.raster.PaintAll(candidate, batch)
	res.Score = s.evaluator.Distance(s.target, candidate)

	if res.Score < s.best.Score {
		res.Accepted = true
		prev := s.best.Score
		s.best = BestState{
			Score:     res.Score,
			Canvas:    candidate,
			Iteration: i,
			Accepted:  s.best.Accepted + 1,
		}
		s.notify(Improvement{Iteration: i, Score: res.Score, Previous: prev, Shapes: batch})
	} else {
		s.pool.Put(candidate)
	}

	s.logStep(res)
	return res
}

func (s *Search) logStep(res StepResult) {
	Logger().Debug("evolve: step",
		"iteration", res.Iteration,
		"drawn", res.Drawn,
		"kept", res.Kept,
		"pixels", res.Pixels,
		"score", res.Score,
		"accepted", res.Accepted,
	)
}

func (s *Search) notify(imp Improvement) {
	for _, o := range s.observers {
		o.Accepted(imp)
	}
}

func (s *Search) progress(i int) {
	Logger().Info("evolve: progress",
		"iteration", i,
		"score", s.best.Score,
		"accepted", s.best.Accepted,
	)
	for _, o := range s.observers {
		if po, ok := o.(ProgressObserver); ok {
			po.Progress(i, s.best)
		}
	}
}

// snapshot hands the best canvas to the snapshotter.
func (s *Search) snapshot(i int) error {
	if err := s.snapshotter.Snapshot(i, s.best.Canvas); err != nil {
		if s.cfg.FailOnSnapshotError {
			return fmt.Errorf("evolve: snapshot %d: %w", i, err)
		}
		Logger().Warn("evolve: snapshot failed", "iteration", i, "error", err)
	}
	return nil
}

// Run iterates until the budget is exhausted or ctx is done, and returns
// the best state reached. Cancellation is checked between iterations; a
// cancelled run returns the best state so far together with ctx.Err().
//
// Run may be called after Step; it continues from the current iteration.
func (s *Search) Run(ctx context.Context) (BestState, error) {
	last := s.cfg.Iterations - 1
	every := s.cfg.snapshotInterval()

	Logger().Info("evolve: run started",
		"width", s.target.Width(),
		"height", s.target.Height(),
		"iterations", s.cfg.Iterations,
		"mode", s.cfg.Mode.String(),
	)

	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return s.best, err
		}

		res := s.Step()
		i := res.Iteration

		if s.cfg.Snapshots && (i%every == 0 || i == last) {
			if err := s.snapshot(i); err != nil {
				return s.best, err
			}
		}
		if s.cfg.ProgressEvery > 0 && i%s.cfg.ProgressEvery == 0 {
			s.progress(i)
		}
	}

	Logger().Info("evolve: run finished",
		"score", s.best.Score,
		"accepted", s.best.Accepted,
	)
	return s.best, nil
}
