// Package store provides an in-memory store implementation.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pipeguard/src/contracts"
)

// MemoryStore is an in-memory implementation of Store.
// Useful for testing and demo mode.
type MemoryStore struct {
	mu        sync.RWMutex
	runs      map[string]contracts.Run
	anomalies map[string]contracts.Anomaly
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:      make(map[string]contracts.Run),
		anomalies: make(map[string]contracts.Anomaly),
	}
}

// SaveRun persists a run record. Saving an existing ID is a no-op.
func (s *MemoryStore) SaveRun(ctx context.Context, run *contracts.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return nil
	}
	s.runs[run.ID] = *run
	return nil
}

// GetRun retrieves a run by ID.
func (s *MemoryStore) GetRun(ctx context.Context, id string) (*contracts.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, id)
	}

	// Return a copy
	runCopy := run
	return &runCopy, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]contracts.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]contracts.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// SaveAnomaly persists an anomaly record.
func (s *MemoryStore) SaveAnomaly(ctx context.Context, anomaly *contracts.Anomaly) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.anomalies[anomaly.ID] = *anomaly
	return nil
}

// ListAnomalies returns up to limit anomalies, newest first.
func (s *MemoryStore) ListAnomalies(ctx context.Context, limit int) ([]contracts.Anomaly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	anomalies := make([]contracts.Anomaly, 0, len(s.anomalies))
	for _, anomaly := range s.anomalies {
		anomalies = append(anomalies, anomaly)
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].Timestamp.After(anomalies[j].Timestamp)
	})

	if len(anomalies) > limit {
		anomalies = anomalies[:limit]
	}
	return anomalies, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
