// Package contracts defines the record shapes that flow through PipeGuard.
package contracts

import "time"

// Run status values as reported by the CI provider.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Anomaly severity levels.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Run is one recorded execution of a CI pipeline.
// Runs are created at ingestion time and read-only afterward.
type Run struct {
	// Unique identifier from the CI provider (workflow run ID).
	ID string `json:"id"`
	// Final conclusion: "success" or "failure".
	Status string `json:"status"`
	// Wall-clock duration in seconds (updated_at - created_at).
	Duration int `json:"duration"`
	// Time the run was recorded by the monitor.
	Timestamp time.Time `json:"timestamp"`
	// Optional provenance metadata.
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
	Author string `json:"author,omitempty"`
}

// Anomaly is a flagged deviation associated with a Run: an outright
// failure or a duration well above the rolling average.
type Anomaly struct {
	ID string `json:"id"`
	// Human-readable description of the problem.
	Issue string `json:"issue"`
	// Suggested remediation.
	Fix string `json:"fix"`
	// One of the Severity* constants.
	Severity string `json:"severity"`
	// ID of the Run this anomaly was derived from.
	RunID string `json:"run_id"`
	// Time the anomaly was detected.
	Timestamp time.Time `json:"timestamp"`
}
