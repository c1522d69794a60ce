// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/katalvlaran/polyopt/report"
)

// MemStore keeps summaries in process memory. Safe for concurrent use.
type MemStore struct {
	mu     sync.RWMutex
	order  []string                  // run IDs in save order
	runs   map[string]report.Summary // runID -> summary
	closed bool
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{runs: make(map[string]report.Summary)}
}

// Save stores a deep copy of s.
func (m *MemStore) Save(ctx context.Context, s report.Summary) error {
	if err := ctx.Err(); err != nil {
		return storeErrorf("Save", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return storeErrorf("Save", errClosed)
	}
	if _, dup := m.runs[s.RunID]; dup {
		return storeErrorf("Save", fmt.Errorf("duplicate run %q", s.RunID))
	}
	m.runs[s.RunID] = copySummary(s)
	m.order = append(m.order, s.RunID)

	return nil
}

// Get returns a copy of the stored run.
func (m *MemStore) Get(ctx context.Context, runID string) (report.Summary, error) {
	if err := ctx.Err(); err != nil {
		return report.Summary{}, storeErrorf("Get", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return report.Summary{}, storeErrorf("Get", errClosed)
	}
	s, ok := m.runs[runID]
	if !ok {
		return report.Summary{}, storeErrorf("Get", ErrNotFound)
	}

	return copySummary(s), nil
}

// Recent returns the last n saved runs, newest first.
func (m *MemStore) Recent(ctx context.Context, n int) ([]report.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErrorf("Recent", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, storeErrorf("Recent", errClosed)
	}
	if n <= 0 {
		return nil, nil
	}
	if n > len(m.order) {
		n = len(m.order)
	}
	out := make([]report.Summary, 0, n)
	for i := len(m.order) - 1; i >= len(m.order)-n; i-- {
		out = append(out, copySummary(m.runs[m.order[i]]))
	}

	return out, nil
}

// Close marks the store closed; later calls fail.
func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	return nil
}

func copySummary(s report.Summary) report.Summary {
	s.InitialPoint = append([]float64(nil), s.InitialPoint...)
	s.X = append([]float64(nil), s.X...)

	return s
}
