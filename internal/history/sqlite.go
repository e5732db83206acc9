// Package history records fund dataset update runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one completed (or failed) dataset update.
type Run struct {
	ID          string
	Started     time.Time
	Finished    time.Time
	Source      string // morningstar|avanza|curated
	GlobalTotal int
	GlobalInst  int
	SwedenTotal int
	SwedenInst  int
	Error       string
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// Store is a SQLite-backed run log.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (and initializes) the run log database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS update_runs (
		id TEXT PRIMARY KEY,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		source TEXT NOT NULL,
		global_total INTEGER NOT NULL,
		global_inst INTEGER NOT NULL,
		sweden_total INTEGER NOT NULL,
		sweden_inst INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_update_runs_started ON update_runs(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends a run to the log.
func (s *Store) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO update_runs (id, started, finished, source, global_total, global_inst, sweden_total, sweden_inst, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Started.Unix(), run.Finished.Unix(), run.Source,
		run.GlobalTotal, run.GlobalInst, run.SwedenTotal, run.SwedenInst, run.Error,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Last returns the most recent run, or nil when the log is empty.
func (s *Store) Last(ctx context.Context) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, started, finished, source, global_total, global_inst, sweden_total, sweden_inst, error
		 FROM update_runs ORDER BY started DESC, id LIMIT 1`)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started, finished, source, global_total, global_inst, sweden_total, sweden_inst, error
		 FROM update_runs ORDER BY started DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var started, finished int64
	if err := sc.Scan(&run.ID, &started, &finished, &run.Source,
		&run.GlobalTotal, &run.GlobalInst, &run.SwedenTotal, &run.SwedenInst, &run.Error); err != nil {
		return nil, err
	}
	run.Started = time.Unix(started, 0)
	run.Finished = time.Unix(finished, 0)
	return &run, nil
}
