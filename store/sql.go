// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/katalvlaran/polyopt/report"
)

// runColumns is the column list shared by every INSERT and SELECT.
const runColumns = `run_id, algorithm, goal, polynomial, initial_point, tolerance,
	max_iter, outcome, outcome_case, x, iterations, elapsed_ns, error,
	results_file, iterations_file, created_at`

const (
	insertRunSQL = `INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectRunSQL    = `SELECT ` + runColumns + ` FROM runs WHERE run_id = ?`
	selectRecentSQL = `SELECT ` + runColumns + ` FROM runs
		ORDER BY created_at DESC, id DESC LIMIT ?`
)

// sqlRuns implements Store on top of database/sql. Both SQL backends use
// '?' placeholders, so only the schema differs between them.
type sqlRuns struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Save inserts one run row.
func (s *sqlRuns) Save(ctx context.Context, sum report.Summary) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storeErrorf("Save", errClosed)
	}

	_, err := s.db.ExecContext(ctx, insertRunSQL,
		sum.RunID, sum.Algorithm, sum.Goal, sum.Polynomial,
		encodeVec(sum.InitialPoint), sum.Tolerance, sum.MaxIter,
		sum.Outcome, sum.Case, encodeVec(sum.X), sum.Iterations,
		int64(sum.Elapsed), sum.Error, sum.ResultsFile, sum.IterationsFile,
		sum.CreatedAt.UTC().UnixNano(),
	)
	if err != nil {
		return storeErrorf("Save", fmt.Errorf("insert run %q: %w", sum.RunID, err))
	}

	return nil
}

// Get loads one run by ID.
func (s *sqlRuns) Get(ctx context.Context, runID string) (report.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return report.Summary{}, storeErrorf("Get", errClosed)
	}

	sum, err := scanRun(s.db.QueryRowContext(ctx, selectRunSQL, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return report.Summary{}, storeErrorf("Get", ErrNotFound)
	}
	if err != nil {
		return report.Summary{}, storeErrorf("Get", err)
	}

	return sum, nil
}

// Recent returns up to n runs, newest first.
func (s *sqlRuns) Recent(ctx context.Context, n int) ([]report.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storeErrorf("Recent", errClosed)
	}
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, selectRecentSQL, n)
	if err != nil {
		return nil, storeErrorf("Recent", err)
	}
	defer rows.Close()

	var out []report.Summary
	for rows.Next() {
		sum, err := scanRun(rows)
		if err != nil {
			return nil, storeErrorf("Recent", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErrorf("Recent", err)
	}

	return out, nil
}

// Close closes the pool. Double-close is a no-op.
func (s *sqlRuns) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return storeErrorf("Close", err)
	}

	return nil
}

// Ping verifies the connection is alive.
func (s *sqlRuns) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storeErrorf("Ping", errClosed)
	}
	if err := s.db.PingContext(ctx); err != nil {
		return storeErrorf("Ping", err)
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (report.Summary, error) {
	var (
		sum            report.Summary
		initial, x     string
		elapsed, stamp int64
	)
	err := r.Scan(
		&sum.RunID, &sum.Algorithm, &sum.Goal, &sum.Polynomial,
		&initial, &sum.Tolerance, &sum.MaxIter,
		&sum.Outcome, &sum.Case, &x, &sum.Iterations,
		&elapsed, &sum.Error, &sum.ResultsFile, &sum.IterationsFile,
		&stamp,
	)
	if err != nil {
		return report.Summary{}, err
	}
	if sum.InitialPoint, err = decodeVec(initial); err != nil {
		return report.Summary{}, fmt.Errorf("initial_point column: %w", err)
	}
	if sum.X, err = decodeVec(x); err != nil {
		return report.Summary{}, fmt.Errorf("x column: %w", err)
	}
	sum.Elapsed = time.Duration(elapsed)
	sum.CreatedAt = time.Unix(0, stamp).UTC()

	return sum, nil
}

// encodeVec stores a vector as comma-separated shortest round-trip floats.
// NaN and ±Inf survive the trip, which JSON would reject.
func encodeVec(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}

	return strings.Join(parts, ",")
}

func decodeVec(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}

	return out, nil
}
