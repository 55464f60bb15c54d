// Package store defines the interface for persistent run/anomaly storage.
package store

import (
	"context"
	"errors"

	"pipeguard/src/contracts"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for persisting runs and anomalies.
// List methods return records newest first. Retention is left to the
// backing store; the application never deletes records.
type Store interface {
	// SaveRun persists a run record. Saving an existing ID is a no-op.
	SaveRun(ctx context.Context, run *contracts.Run) error

	// GetRun retrieves a run by ID, or ErrNotFound.
	GetRun(ctx context.Context, id string) (*contracts.Run, error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]contracts.Run, error)

	// SaveAnomaly persists an anomaly record.
	SaveAnomaly(ctx context.Context, anomaly *contracts.Anomaly) error

	// ListAnomalies returns up to limit anomalies, newest first.
	ListAnomalies(ctx context.Context, limit int) ([]contracts.Anomaly, error)

	// Close closes the store connection.
	Close() error
}
