// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers the "mysql" driver
)

// MySQL pool settings.
const (
	mysqlMaxOpenConns    = 10
	mysqlMaxIdleConns    = 5
	mysqlConnMaxLifetime = 5 * time.Minute
	mysqlConnMaxIdleTime = 10 * time.Minute
)

// MySQLStore keeps run history on a MySQL server, so several machines can
// share one history.
//
// DSN format: user:pass@tcp(host:3306)/dbname?parseTime=true
type MySQLStore struct {
	sqlRuns
}

var _ Store = (*MySQLStore)(nil)

// NewMySQLStore connects, pings and applies the schema.
//
// Errors:
//   - ErrStore wrapping the driver error (bad DSN, unreachable server).
func NewMySQLStore(ctx context.Context, dsn string) (*MySQLStore, error) {
	if dsn == "" {
		return nil, storeErrorf("NewMySQLStore", fmt.Errorf("empty DSN"))
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, storeErrorf("NewMySQLStore", err)
	}
	db.SetMaxOpenConns(mysqlMaxOpenConns)
	db.SetMaxIdleConns(mysqlMaxIdleConns)
	db.SetConnMaxLifetime(mysqlConnMaxLifetime)
	db.SetConnMaxIdleTime(mysqlConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storeErrorf("NewMySQLStore", fmt.Errorf("ping: %w", err))
	}

	s := &MySQLStore{sqlRuns: sqlRuns{db: db}}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, storeErrorf("NewMySQLStore", err)
	}

	return s, nil
}

func (s *MySQLStore) createTables(ctx context.Context) error {
	runsTable := `
		CREATE TABLE IF NOT EXISTS runs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(64) NOT NULL,
			algorithm VARCHAR(64) NOT NULL,
			goal VARCHAR(8) NOT NULL,
			polynomial TEXT NOT NULL,
			initial_point TEXT NOT NULL,
			tolerance DOUBLE NOT NULL,
			max_iter INT NOT NULL,
			outcome VARCHAR(32) NOT NULL,
			outcome_case INT NOT NULL,
			x TEXT NOT NULL,
			iterations INT NOT NULL,
			elapsed_ns BIGINT NOT NULL,
			error TEXT NOT NULL,
			results_file VARCHAR(1024) NOT NULL,
			iterations_file VARCHAR(1024) NOT NULL,
			created_at BIGINT NOT NULL,
			UNIQUE KEY unique_run_id (run_id),
			INDEX idx_runs_created (created_at),
			INDEX idx_runs_algorithm (algorithm)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := s.db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}

	return nil
}
