package analyze

import (
	"testing"

	"pipeguard/src/contracts"
)

func TestDetectAnomaly(t *testing.T) {
	tests := []struct {
		name         string
		run          contracts.Run
		recent       []int
		wantIssue    string
		wantSeverity string
	}{
		{
			name:   "normal successful run",
			run:    contracts.Run{ID: "1", Status: contracts.StatusSuccess, Duration: 100},
			recent: []int{90, 110, 100},
		},
		{
			name:         "duration just over double the average",
			run:          contracts.Run{ID: "2", Status: contracts.StatusSuccess, Duration: 201},
			recent:       []int{100, 100, 100},
			wantIssue:    "Long build time",
			wantSeverity: contracts.SeverityMedium,
		},
		{
			name:         "duration triple the average escalates severity",
			run:          contracts.Run{ID: "3", Status: contracts.StatusSuccess, Duration: 300},
			recent:       []int{100, 100},
			wantIssue:    "Long build time",
			wantSeverity: contracts.SeverityHigh,
		},
		{
			name:         "failed run with unremarkable duration",
			run:          contracts.Run{ID: "4", Status: contracts.StatusFailure, Duration: 50},
			recent:       []int{100, 100},
			wantIssue:    "Test failure",
			wantSeverity: contracts.SeverityHigh,
		},
		{
			name:         "failure with no history still flags",
			run:          contracts.Run{ID: "5", Status: contracts.StatusFailure, Duration: 45},
			wantIssue:    "Test failure",
			wantSeverity: contracts.SeverityHigh,
		},
		{
			name: "long run with no history is not flagged",
			run:  contracts.Run{ID: "6", Status: contracts.StatusSuccess, Duration: 10000},
		},
		{
			name:         "slow failure reports the duration anomaly first",
			run:          contracts.Run{ID: "7", Status: contracts.StatusFailure, Duration: 500},
			recent:       []int{100, 100, 100},
			wantIssue:    "Long build time",
			wantSeverity: contracts.SeverityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectAnomaly(tt.run, tt.recent)
			if tt.wantIssue == "" {
				if got != nil {
					t.Fatalf("DetectAnomaly() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("DetectAnomaly() = nil, want issue %q", tt.wantIssue)
			}
			if got.Issue != tt.wantIssue {
				t.Errorf("Issue = %q, want %q", got.Issue, tt.wantIssue)
			}
			if got.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", got.Severity, tt.wantSeverity)
			}
			if got.RunID != tt.run.ID {
				t.Errorf("RunID = %q, want %q", got.RunID, tt.run.ID)
			}
			if got.ID == "" {
				t.Error("anomaly ID is empty")
			}
			if got.Fix == "" {
				t.Error("anomaly Fix is empty")
			}
		})
	}
}
