// Package journal records the accepted improvements of search runs in a
// SQLite database.
//
// A Journal implements evolve.Observer. Register it with
// evolve.WithObserver after calling Begin; every accepted candidate is then
// stored with its iteration, score and the shapes that produced it.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // register the "sqlite" driver

	"github.com/gogpu/evolve"
)

// ErrNoRun is returned when improvements are recorded before Begin.
var ErrNoRun = errors.New("journal: no active run")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  started_at  BIGINT  NOT NULL,
  width       INTEGER NOT NULL,
  height      INTEGER NOT NULL,
  seed        BIGINT,
  mode        TEXT    NOT NULL,
  iterations  INTEGER NOT NULL,
  final_score BIGINT,
  accepted    INTEGER
);

CREATE TABLE IF NOT EXISTS improvements (
  run_id      INTEGER NOT NULL REFERENCES runs(id),
  iteration   INTEGER NOT NULL,
  score       BIGINT  NOT NULL,
  shape_count INTEGER NOT NULL,
  shapes      TEXT    NOT NULL,
  PRIMARY KEY (run_id, iteration)
);
`

// RunInfo describes one search run.
type RunInfo struct {
	ID         int64
	StartedAt  time.Time
	Width      int
	Height     int
	Seed       uint64
	Seeded     bool
	Mode       string
	Iterations int
	FinalScore uint64
	Accepted   int
	Finished   bool
}

// Record is one stored improvement.
type Record struct {
	Iteration int
	Score     uint64
	Shapes    []string
}

// Journal is a SQLite-backed run history.
type Journal struct {
	db *sql.DB

	mu    sync.Mutex
	ctx   context.Context
	runID int64
	err   error
}

var _ evolve.Observer = (*Journal)(nil)

// Open opens or creates the journal database at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open: %w", err)
	}

	// One physical connection; SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := tune(ctx, db); err != nil {
		evolve.Logger().Warn("journal: sqlite tuning skipped", "error", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// tune applies connection pragmas suited to a write-mostly log.
func tune(ctx context.Context, db *sql.DB) error {
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode=WAL;").Scan(&mode); err != nil {
		return fmt.Errorf("apply journal_mode: %w", err)
	}
	for _, q := range []string{
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("apply %q: %w", q, err)
		}
	}
	evolve.Logger().Debug("journal: sqlite tuned", "journal_mode", mode)
	return nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Begin starts a new run and makes it the target of Accepted. ctx is kept
// for the inserts performed by Accepted.
func (j *Journal) Begin(ctx context.Context, info RunInfo) (int64, error) {
	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now()
	}
	var seed any
	if info.Seeded {
		seed = int64(info.Seed)
	}
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, width, height, seed, mode, iterations) VALUES (?, ?, ?, ?, ?, ?)`,
		info.StartedAt.UnixNano(), info.Width, info.Height, seed, info.Mode, info.Iterations)
	if err != nil {
		return 0, fmt.Errorf("journal: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: run id: %w", err)
	}

	j.mu.Lock()
	j.ctx = ctx
	j.runID = id
	j.err = nil
	j.mu.Unlock()

	evolve.Logger().Info("journal: run started", "run", id)
	return id, nil
}

// RunInfoFor builds a RunInfo from a search configuration.
func RunInfoFor(s *evolve.Search) RunInfo {
	cfg := s.Config()
	return RunInfo{
		Width:      s.Target().Width(),
		Height:     s.Target().Height(),
		Seed:       cfg.Seed,
		Seeded:     cfg.Seeded,
		Mode:       cfg.Mode.String(),
		Iterations: cfg.Iterations,
	}
}

// Accepted implements evolve.Observer. Insert failures do not interrupt
// the search; the first one is kept and reported by Err.
func (j *Journal) Accepted(imp evolve.Improvement) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.err != nil {
		return
	}
	if j.runID == 0 {
		j.err = ErrNoRun
		return
	}

	shapes := make([]string, len(imp.Shapes))
	for i, s := range imp.Shapes {
		shapes[i] = s.String()
	}
	_, err := j.db.ExecContext(j.ctx,
		`INSERT INTO improvements (run_id, iteration, score, shape_count, shapes) VALUES (?, ?, ?, ?, ?)`,
		j.runID, imp.Iteration, int64(imp.Score), len(shapes), strings.Join(shapes, "\n"))
	if err != nil {
		j.err = fmt.Errorf("journal: insert improvement %d: %w", imp.Iteration, err)
		evolve.Logger().Warn("journal: record failed", "iteration", imp.Iteration, "error", err)
	}
}

// Err returns the first error met by Accepted since Begin.
func (j *Journal) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Finish stores the final score of the active run.
func (j *Journal) Finish(ctx context.Context, best evolve.BestState) error {
	j.mu.Lock()
	id := j.runID
	j.mu.Unlock()
	if id == 0 {
		return ErrNoRun
	}

	_, err := j.db.ExecContext(ctx,
		`UPDATE runs SET final_score = ?, accepted = ? WHERE id = ?`,
		int64(best.Score), best.Accepted, id)
	if err != nil {
		return fmt.Errorf("journal: finish run %d: %w", id, err)
	}
	return nil
}

// Runs lists all recorded runs, oldest first.
func (j *Journal) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, started_at, width, height, seed, mode, iterations, final_score, accepted FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("journal: query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			r        RunInfo
			started  int64
			seed     sql.NullInt64
			final    sql.NullInt64
			accepted sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &started, &r.Width, &r.Height, &seed, &r.Mode, &r.Iterations, &final, &accepted); err != nil {
			return nil, fmt.Errorf("journal: scan run: %w", err)
		}
		r.StartedAt = time.Unix(0, started)
		r.Seed, r.Seeded = uint64(seed.Int64), seed.Valid
		r.FinalScore, r.Finished = uint64(final.Int64), final.Valid
		r.Accepted = int(accepted.Int64)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: query runs: %w", err)
	}
	return runs, nil
}

// Improvements returns the improvements of a run in iteration order.
func (j *Journal) Improvements(ctx context.Context, runID int64) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT iteration, score, shapes FROM improvements WHERE run_id = ? ORDER BY iteration`, runID)
	if err != nil {
		return nil, fmt.Errorf("journal: query improvements: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var (
			r      Record
			score  int64
			shapes string
		)
		if err := rows.Scan(&r.Iteration, &score, &shapes); err != nil {
			return nil, fmt.Errorf("journal: scan improvement: %w", err)
		}
		r.Score = uint64(score)
		if shapes != "" {
			r.Shapes = strings.Split(shapes, "\n")
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: query improvements: %w", err)
	}
	return recs, nil
}
