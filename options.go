package evolve

import "fmt"

// Defaults used when no option overrides them.
const (
	DefaultIterations    = 100_000
	DefaultMinShapes     = 10
	DefaultMaxShapes     = 20
	DefaultProgressEvery = 10_000

	// snapshotsPerRun sets the default snapshot cadence to Iterations/30.
	snapshotsPerRun = 30
)

// Config holds the tunables of a search. The zero value is not valid; start
// from DefaultConfig.
type Config struct {
	// Iterations is the iteration budget of Run.
	Iterations int

	// Mode selects overwrite or alpha-blend compositing.
	Mode CompositeMode

	// SkipBorder keeps the outermost pixel ring of the canvas unpainted.
	SkipBorder bool

	// MinShapes and MaxShapes bound the number of shapes drawn per iteration.
	MinShapes, MaxShapes int

	// Seed makes the default shape source reproducible when Seeded is set.
	// Otherwise the source is seeded from the clock.
	Seed   uint64
	Seeded bool

	// Filter enables the local pre-filter with the given slack.
	Filter      bool
	FilterSlack uint64

	// Shape size ranges for the default shape source.
	CircleRadius  SizeRange
	TriangleLeg   SizeRange
	RectangleHalf SizeRange

	// Snapshots enables periodic snapshots every SnapshotEvery iterations
	// and on the final iteration. SnapshotEvery 0 means Iterations/30.
	Snapshots     bool
	SnapshotEvery int

	// FailOnSnapshotError stops Run on the first snapshot error instead of
	// logging it.
	FailOnSnapshotError bool

	// ProgressEvery sets the cadence of progress logs and progress
	// callbacks. 0 disables them.
	ProgressEvery int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Iterations:    DefaultIterations,
		Mode:          Overwrite,
		MinShapes:     DefaultMinShapes,
		MaxShapes:     DefaultMaxShapes,
		Filter:        true,
		CircleRadius:  DefaultCircleRadius,
		TriangleLeg:   DefaultTriangleLeg,
		RectangleHalf: DefaultRectangleHalf,
		ProgressEvery: DefaultProgressEvery,
	}
}

// Validate checks the configuration. All returned errors wrap
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.MinShapes <= 0 || c.MaxShapes < c.MinShapes {
		return fmt.Errorf("%w: shape count range [%d, %d] must satisfy 0 < min <= max",
			ErrInvalidConfig, c.MinShapes, c.MaxShapes)
	}
	if c.Mode != Overwrite && c.Mode != AlphaBlend {
		return fmt.Errorf("%w: unknown composite mode %v", ErrInvalidConfig, c.Mode)
	}
	for _, r := range []struct {
		name string
		r    SizeRange
	}{
		{"circle radius", c.CircleRadius},
		{"triangle leg", c.TriangleLeg},
		{"rectangle half-side", c.RectangleHalf},
	} {
		if err := r.r.Validate(); err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
	}
	if c.SnapshotEvery < 0 {
		return fmt.Errorf("%w: snapshot interval must not be negative, got %d", ErrInvalidConfig, c.SnapshotEvery)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval must not be negative, got %d", ErrInvalidConfig, c.ProgressEvery)
	}
	return nil
}

// snapshotInterval resolves the effective snapshot cadence.
func (c Config) snapshotInterval() int {
	if c.SnapshotEvery > 0 {
		return c.SnapshotEvery
	}
	return max(c.Iterations/snapshotsPerRun, 1)
}

// Option configures a Search during creation.
//
// Example:
//
//	s, err := evolve.New(target,
//	    evolve.WithIterations(50_000),
//	    evolve.WithMode(evolve.AlphaBlend),
//	    evolve.WithSeed(42),
//	)
type Option func(*options)

// options holds the configuration and collaborators of a Search.
type options struct {
	cfg         Config
	evaluator   Evaluator
	source      Source
	snapshotter Snapshotter
	observers   []Observer
}

// defaultOptions returns the default search options.
func defaultOptions() options {
	return options{
		cfg:       DefaultConfig(),
		evaluator: SquaredError{},
	}
}

// WithConfig replaces the whole configuration. Pass it before other
// options, which adjust individual fields.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithIterations sets the iteration budget.
func WithIterations(n int) Option {
	return func(o *options) {
		o.cfg.Iterations = n
	}
}

// WithMode sets the compositing mode.
func WithMode(m CompositeMode) Option {
	return func(o *options) {
		o.cfg.Mode = m
	}
}

// WithSkipBorder keeps the outermost pixel ring unpainted.
func WithSkipBorder(skip bool) Option {
	return func(o *options) {
		o.cfg.SkipBorder = skip
	}
}

// WithShapeCount sets the range of shapes drawn per iteration.
func WithShapeCount(minShapes, maxShapes int) Option {
	return func(o *options) {
		o.cfg.MinShapes = minShapes
		o.cfg.MaxShapes = maxShapes
	}
}

// WithSeed makes the default shape source reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.cfg.Seed = seed
		o.cfg.Seeded = true
	}
}

// WithFilter enables or disables the local pre-filter.
func WithFilter(enabled bool, slack uint64) Option {
	return func(o *options) {
		o.cfg.Filter = enabled
		o.cfg.FilterSlack = slack
	}
}

// WithSizes sets the size ranges of the default shape source.
func WithSizes(circleRadius, triangleLeg, rectangleHalf SizeRange) Option {
	return func(o *options) {
		o.cfg.CircleRadius = circleRadius
		o.cfg.TriangleLeg = triangleLeg
		o.cfg.RectangleHalf = rectangleHalf
	}
}

// WithEvaluator replaces the global fitness function.
func WithEvaluator(e Evaluator) Option {
	return func(o *options) {
		o.evaluator = e
	}
}

// WithSource replaces the default random shape source.
func WithSource(src Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSnapshotter enables snapshots every n iterations (0 means
// Iterations/30) and on the final iteration.
func WithSnapshotter(s Snapshotter, every int) Option {
	return func(o *options) {
		o.snapshotter = s
		o.cfg.Snapshots = s != nil
		o.cfg.SnapshotEvery = every
	}
}

// WithObserver registers an observer of accepted improvements. Observers
// that also implement ProgressObserver receive progress callbacks.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithProgressEvery sets the progress cadence; 0 disables progress.
func WithProgressEvery(n int) Option {
	return func(o *options) {
		o.cfg.ProgressEvery = n
	}
}
