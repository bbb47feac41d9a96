// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists search runs and their quadruplets in SQLite and
// exports them as derived tables. Each run gets a UUID; its quadruplets are
// stored in discovery order so a reloaded run reproduces the search output.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cube-quadruplets/internal/arith"
	"github.com/pdiddy/cube-quadruplets/internal/search"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

const (
	dbFile     = "catalog.db"
	exportsDir = "exports"

	defaultListLimit = 20

	// timeLayout has fixed width so created_at sorts lexicographically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// RunKind identifies the search that produced a run.
type RunKind string

const (
	KindPoint RunKind = "point"
	KindRange RunKind = "range"
)

// RunParams records the inputs of a run. Point fields are set for point
// runs; Grid and Range for range runs.
type RunParams struct {
	A             int64              `json:"a,omitempty" yaml:"a,omitempty"`
	N             int64              `json:"n,omitempty" yaml:"n,omitempty"`
	MaxIterations int                `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
	MaxFactor     int64              `json:"max_factor,omitempty" yaml:"max_factor,omitempty"`
	Grid          *search.Grid       `json:"grid,omitempty" yaml:"grid,omitempty"`
	Range         *types.RangeConfig `json:"range,omitempty" yaml:"range,omitempty"`
}

// Run is the catalog record of one search invocation.
type Run struct {
	ID          string    `json:"id" yaml:"id"`
	Kind        RunKind   `json:"kind" yaml:"kind"`
	Params      RunParams `json:"params" yaml:"params"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Quadruplets int       `json:"quadruplets" yaml:"quadruplets"`
	Primitives  int       `json:"primitives" yaml:"primitives"`

	// Truncated is true when the point search or any range combination
	// stopped at the iteration cap.
	Truncated bool `json:"truncated" yaml:"truncated"`
}

// ErrRunNotFound is returned when a run ID has no catalog record.
var ErrRunNotFound = errors.New("run not found")

// Store manages the catalog SQLite database.
type Store struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// NewStore opens or creates the catalog database at cfg.Dir/catalog.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "catalog"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the catalog directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			params TEXT NOT NULL,
			created_at TEXT NOT NULL,
			quadruplets INTEGER NOT NULL,
			primitives INTEGER NOT NULL,
			truncated INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS quadruplets (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			a INTEGER NOT NULL,
			b INTEGER NOT NULL,
			c INTEGER NOT NULL,
			d INTEGER NOT NULL,
			n INTEGER NOT NULL,
			factor INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quadruplets_an ON quadruplets(a, n)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SavePoint records a single-point search result.
func (s *Store) SavePoint(ctx context.Context, res types.PointResult, maxIterations int, maxFactor int64) (Run, error) {
	run := Run{
		Kind: KindPoint,
		Params: RunParams{
			A:             res.A,
			N:             res.N,
			MaxIterations: maxIterations,
			MaxFactor:     maxFactor,
		},
		Truncated: res.CapHit,
	}
	return s.save(ctx, run, res.Quadruplets)
}

// SaveRange records a range search result.
func (s *Store) SaveRange(ctx context.Context, grid search.Grid, cfg types.RangeConfig, res types.RangeResult) (Run, error) {
	g := grid.Normalize()
	run := Run{
		Kind:      KindRange,
		Params:    RunParams{Grid: &g, Range: &cfg},
		Truncated: res.Truncated(),
	}
	return s.save(ctx, run, res.Quadruplets)
}

func (s *Store) save(ctx context.Context, run Run, qs []types.Quadruplet) (Run, error) {
	run.ID = uuid.NewString()
	run.CreatedAt = s.now().UTC()
	run.Quadruplets = len(qs)
	for _, q := range qs {
		if arith.IsPrimitive(q) {
			run.Primitives++
		}
	}

	params, err := json.Marshal(run.Params)
	if err != nil {
		return Run{}, fmt.Errorf("marshaling run params: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, kind, params, created_at, quadruplets, primitives, truncated)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), string(params), run.CreatedAt.Format(timeLayout),
		run.Quadruplets, run.Primitives, run.Truncated,
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO quadruplets (run_id, seq, a, b, c, d, n, factor) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, q := range qs {
		factor := arith.QuadrupletGCD(q)
		if _, err := stmt.ExecContext(ctx, run.ID, i, q.A, q.B, q.C, q.D, q.N(), factor); err != nil {
			return Run{}, fmt.Errorf("inserting quadruplet %s: %w", q, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit uses the default of 20.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, params, created_at, quadruplets, primitives, truncated
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadRun returns a run and its quadruplets in discovery order.
func (s *Store) LoadRun(ctx context.Context, id string) (Run, []types.Quadruplet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, params, created_at, quadruplets, primitives, truncated
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT a, b, c, d FROM quadruplets WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("querying quadruplets: %w", err)
	}
	defer rows.Close()

	qs := []types.Quadruplet{}
	for rows.Next() {
		var q types.Quadruplet
		if err := rows.Scan(&q.A, &q.B, &q.C, &q.D); err != nil {
			return Run{}, nil, fmt.Errorf("scanning quadruplet: %w", err)
		}
		qs = append(qs, q)
	}
	return run, qs, rows.Err()
}

// Distinct returns every quadruplet recorded by any run, once each, ordered
// by a, then n, then b descending.
func (s *Store) Distinct(ctx context.Context) ([]types.Quadruplet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT a, b, c, d, n FROM quadruplets ORDER BY a, n, b DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying distinct quadruplets: %w", err)
	}
	defer rows.Close()

	qs := []types.Quadruplet{}
	for rows.Next() {
		var q types.Quadruplet
		var n int64
		if err := rows.Scan(&q.A, &q.B, &q.C, &q.D, &n); err != nil {
			return nil, fmt.Errorf("scanning quadruplet: %w", err)
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}

// DeleteRun removes a run and its quadruplets.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run       Run
		kind      string
		params    string
		createdAt string
	)
	if err := sc.Scan(&run.ID, &kind, &params, &createdAt, &run.Quadruplets, &run.Primitives, &run.Truncated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	run.Kind = RunKind(kind)
	if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
		return Run{}, fmt.Errorf("parsing run params: %w", err)
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run timestamp: %w", err)
	}
	run.CreatedAt = t
	return run, nil
}
