// SPDX-License-Identifier: MIT

// Package store keeps a history of finished optimisation runs.
//
// Every backend stores report.Summary records keyed by run ID:
//   - MemStore: process-local, used by tests and the "memory" driver.
//   - SQLiteStore: single-file database through modernc.org/sqlite (pure Go).
//   - MySQLStore: shared server through github.com/go-sql-driver/mysql.
//
// Failures are reported as fault.ErrStore; a missing run additionally
// matches ErrNotFound.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/report"
)

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Driver names accepted by Open.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// DefaultSQLitePath is used when the sqlite driver is selected without a DSN.
const DefaultSQLitePath = "polyopt_history.db"

// Store persists run summaries.
type Store interface {
	// Save records one run. Saving the same RunID twice fails.
	Save(ctx context.Context, s report.Summary) error

	// Get returns the run with the given ID.
	Get(ctx context.Context, runID string) (report.Summary, error)

	// Recent returns up to n runs, newest first. n <= 0 returns nothing.
	Recent(ctx context.Context, n int) ([]report.Summary, error)

	// Close releases resources. Closing twice is a no-op.
	Close() error
}

// Drivers lists the names Open understands, "none" included.
func Drivers() []string {
	return []string{DriverNone, DriverMemory, DriverSQLite, DriverMySQL}
}

// Open builds the store selected by driver. The "none" driver returns a nil
// Store and a nil error; callers skip persistence in that case.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverNone, "":
		return nil, nil
	case DriverMemory:
		return NewMemStore(), nil
	case DriverSQLite:
		if dsn == "" {
			dsn = DefaultSQLitePath
		}

		s, err := NewSQLiteStore(ctx, dsn)
		if err != nil {
			return nil, err
		}

		return s, nil
	case DriverMySQL:
		s, err := NewMySQLStore(ctx, dsn)
		if err != nil {
			return nil, err
		}

		return s, nil
	default:
		return nil, fault.Newf(fault.InvalidConfig, "store.Open", fmt.Sprintf("unknown driver %q", driver))
	}
}

// storeErrorf tags a backend failure with the store op.
func storeErrorf(op string, err error) error {
	return fault.Wrap(fault.Store, "store."+op, err)
}

var errClosed = errors.New("store is closed")
