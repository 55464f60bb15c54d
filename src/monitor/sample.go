package monitor

import (
	"fmt"
	"time"

	"pipeguard/src/contracts"
)

// GenerateSampleData produces a plausible 20-run history with matching
// anomalies. Used as the dashboard fallback when external collaborators
// are unreachable, and in demos. Roughly 75% of runs succeed and
// durations creep upward over the window.
func GenerateSampleData() ([]contracts.Run, []contracts.Anomaly) {
	const count = 20
	now := time.Now().UTC()

	runs := make([]contracts.Run, 0, count)
	anomalies := make([]contracts.Anomaly, 0, count/4)

	for i := 0; i < count; i++ {
		status := contracts.StatusSuccess
		if i%4 == 0 {
			status = contracts.StatusFailure
		}

		duration := 90 + i*5
		if status == contracts.StatusFailure {
			duration += 10
		}

		run := contracts.Run{
			ID:        fmt.Sprintf("sample-%d", i+1),
			Status:    status,
			Duration:  duration,
			Timestamp: now.Add(time.Duration(i-count) * time.Hour),
			Branch:    "main",
			Author:    "demo",
		}
		runs = append(runs, run)

		if status == contracts.StatusFailure {
			anomalies = append(anomalies, contracts.Anomaly{
				ID:        fmt.Sprintf("sample-anomaly-%d", i+1),
				Issue:     "Test failure",
				Fix:       "Check test logs",
				Severity:  contracts.SeverityHigh,
				RunID:     run.ID,
				Timestamp: run.Timestamp,
			})
		}
	}

	return runs, anomalies
}
