// Package provider defines the interface for CI/CD platform integrations.
package provider

import (
	"context"

	"pipeguard/src/contracts"
)

// Provider defines the interface for CI run history sources.
type Provider interface {
	// Name returns the provider name (e.g., "github-actions")
	Name() string

	// FetchRuns retrieves the most recent completed runs, newest first.
	FetchRuns(ctx context.Context, limit int) ([]contracts.Run, error)
}
