// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore keeps run history in a single SQLite file.
//
// The pool is pinned to one connection: SQLite serialises writers anyway, and
// a ":memory:" database lives only as long as its connection.
type SQLiteStore struct {
	sqlRuns
	path string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and applies the
// schema. Use ":memory:" for a throwaway database.
//
// Implementation:
//   - Stage 1: open the driver and pin the pool to a single connection.
//   - Stage 2: WAL journal, foreign keys, 5s busy timeout.
//   - Stage 3: CREATE TABLE/INDEX IF NOT EXISTS.
//
// Errors:
//   - ErrStore wrapping the driver error.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeErrorf("NewSQLiteStore", fmt.Errorf("open %s: %w", path, err))
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, storeErrorf("NewSQLiteStore", fmt.Errorf("%s: %w", pragma, err))
		}
	}

	s := &SQLiteStore{sqlRuns: sqlRuns{db: db}, path: path}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, storeErrorf("NewSQLiteStore", err)
	}

	return s, nil
}

// Path returns the database path the store was opened with.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) createTables(ctx context.Context) error {
	runsTable := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			algorithm TEXT NOT NULL,
			goal TEXT NOT NULL,
			polynomial TEXT NOT NULL,
			initial_point TEXT NOT NULL,
			tolerance REAL NOT NULL,
			max_iter INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			outcome_case INTEGER NOT NULL,
			x TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			results_file TEXT NOT NULL,
			iterations_file TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_runs_algorithm ON runs(algorithm)",
	}
	for _, idx := range indexes {
		if _, err := s.db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
