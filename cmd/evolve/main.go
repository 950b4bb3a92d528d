// Command evolve approximates an image by painting random shapes and
// keeping only the changes that bring the canvas closer to it.
//
// Usage:
//
//	evolve -base target.png [-out result] [-n 100000] [-blend] [-peek]
//
// The result is written to <out>.png. Without -out, or with -peek,
// intermediate canvases are written to the snapshot directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/evolve"
	"github.com/gogpu/evolve/imageio"
	"github.com/gogpu/evolve/journal"
	"github.com/gogpu/evolve/phash"
	"github.com/gogpu/evolve/report"
	"github.com/gogpu/evolve/snapshot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		log.Fatalf("evolve: %v", err)
	}
}

// flags holds the parsed command line.
type flags struct {
	base, out string
	n         int
	blend     bool
	peek      bool

	seed      uint64
	seeded    bool
	minShapes int
	maxShapes int
	filter    bool
	slack     uint64
	border    bool
	fitness   string
	resize    int
	snapDir   string
	caption   bool
	journal   string
	plot      string
	progress  int
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	fs := flag.NewFlagSet("evolve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &flags{}
	fs.StringVar(&f.base, "base", "", "target image (png, jpeg, gif, bmp, tiff, webp)")
	fs.StringVar(&f.out, "out", "", "write the result to `name`.png")
	fs.IntVar(&f.n, "n", evolve.DefaultIterations, "number of iterations")
	fs.BoolVar(&f.blend, "blend", false, "alpha-blend shapes instead of overwriting pixels")
	fs.BoolVar(&f.peek, "peek", false, "write snapshots even when -out is set")

	fs.Uint64Var(&f.seed, "seed", 0, "random seed; time-seeded when unset")
	fs.IntVar(&f.minShapes, "min", evolve.DefaultMinShapes, "minimum shapes per iteration")
	fs.IntVar(&f.maxShapes, "max", evolve.DefaultMaxShapes, "maximum shapes per iteration")
	fs.BoolVar(&f.filter, "filter", true, "drop shapes that do not improve the pixels they cover")
	fs.Uint64Var(&f.slack, "slack", 0, "tolerance added to the local filter comparison")
	fs.BoolVar(&f.border, "border", false, "leave the outermost pixel ring unpainted")
	fs.StringVar(&f.fitness, "fitness", "sse", "fitness function: sse or phash")
	fs.IntVar(&f.resize, "resize", 0, "downscale the target so no side exceeds `px` (0 keeps it)")
	fs.StringVar(&f.snapDir, "snapdir", "results", "snapshot directory")
	fs.BoolVar(&f.caption, "caption", false, "stamp the iteration number onto snapshots")
	fs.StringVar(&f.journal, "journal", "", "record accepted improvements in a SQLite `database`")
	fs.StringVar(&f.plot, "plot", "", "write a score history plot to `file` (png, svg, pdf)")
	fs.IntVar(&f.progress, "progress", evolve.DefaultProgressEvery, "print progress every n iterations (0 disables)")
	fs.BoolVar(&f.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "seed" {
			f.seeded = true
		}
	})
	if f.base == "" {
		fs.Usage()
		return nil, errors.New("missing -base")
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return f, nil
}

func evaluatorFor(name string) (evolve.Evaluator, error) {
	switch name {
	case "", "sse":
		return evolve.SquaredError{}, nil
	case "phash":
		return phash.NewEvaluator(), nil
	default:
		return nil, fmt.Errorf("unknown fitness %q", name)
	}
}

// progressPrinter prints "Iteration #10,000" lines.
type progressPrinter struct {
	p *message.Printer
	w io.Writer
}

func (pp progressPrinter) Accepted(evolve.Improvement) {}

func (pp progressPrinter) Progress(iteration int, _ evolve.BestState) {
	pp.p.Fprintf(pp.w, "Iteration #%d\n", iteration)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	evolve.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer evolve.SetLogger(nil)

	target, err := imageio.Load(f.base)
	if err != nil {
		return err
	}
	target = imageio.Fit(target, f.resize)

	eval, err := evaluatorFor(f.fitness)
	if err != nil {
		return err
	}

	mode := evolve.Overwrite
	if f.blend {
		mode = evolve.AlphaBlend
	}
	opts := []evolve.Option{
		evolve.WithIterations(f.n),
		evolve.WithMode(mode),
		evolve.WithSkipBorder(f.border),
		evolve.WithShapeCount(f.minShapes, f.maxShapes),
		evolve.WithFilter(f.filter, f.slack),
		evolve.WithEvaluator(eval),
		evolve.WithProgressEvery(f.progress),
		evolve.WithObserver(progressPrinter{p: message.NewPrinter(language.English), w: stdout}),
	}
	if f.seeded {
		opts = append(opts, evolve.WithSeed(f.seed))
	}

	if f.out == "" || f.peek {
		w, err := snapshot.New(f.snapDir)
		if err != nil {
			return err
		}
		w.Caption = f.caption
		opts = append(opts, evolve.WithSnapshotter(w, 0))
	}

	var history *report.History
	if f.plot != "" {
		history = report.NewHistory(filepath.Base(f.base))
		opts = append(opts, evolve.WithObserver(history))
	}

	var jr *journal.Journal
	if f.journal != "" {
		jr, err = journal.Open(ctx, f.journal)
		if err != nil {
			return err
		}
		defer func() { _ = jr.Close() }()
		opts = append(opts, evolve.WithObserver(jr))
	}

	s, err := evolve.New(target, opts...)
	if err != nil {
		return err
	}
	if jr != nil {
		if _, err := jr.Begin(ctx, journal.RunInfoFor(s)); err != nil {
			return err
		}
	}

	best, runErr := s.Run(ctx)
	switch {
	case runErr == nil:
	case errors.Is(runErr, context.Canceled):
		evolve.Logger().Warn("evolve: interrupted, keeping best so far", "iteration", s.Iteration())
	default:
		return runErr
	}

	if jr != nil {
		if err := jr.Err(); err != nil {
			evolve.Logger().Warn("evolve: journal incomplete", "error", err)
		}
		// The run context may be cancelled; the final row is still wanted.
		if err := jr.Finish(context.WithoutCancel(ctx), best); err != nil {
			return err
		}
	}
	if history != nil {
		if err := history.Save(f.plot, 0, 0); err != nil {
			evolve.Logger().Warn("evolve: plot not written", "error", err)
		}
	}
	if f.out != "" {
		name := f.out + ".png"
		if err := imageio.SavePNG(name, best.Canvas); err != nil {
			return err
		}
		evolve.Logger().Info("evolve: result saved", "path", name, "score", best.Score)
	}
	return nil
}
