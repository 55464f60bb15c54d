package analyze

import (
	"time"

	"github.com/google/uuid"

	"pipeguard/src/contracts"
)

// DetectAnomaly derives an anomaly from a freshly ingested run, comparing
// its duration against the rolling average of recent stored durations and
// flagging outright failures. Returns nil when the run looks normal.
//
// Detection is best-effort: the run/anomaly link is not transactional and
// an empty history simply skips the duration check.
func DetectAnomaly(run contracts.Run, recentDurations []int) *contracts.Anomaly {
	if len(recentDurations) > 0 {
		sum := 0
		for _, d := range recentDurations {
			sum += d
		}
		avg := float64(sum) / float64(len(recentDurations))

		if avg > 0 && float64(run.Duration) > 2*avg {
			severity := contracts.SeverityMedium
			if float64(run.Duration) >= 3*avg {
				severity = contracts.SeverityHigh
			}
			return &contracts.Anomaly{
				ID:        uuid.NewString(),
				Issue:     "Long build time",
				Fix:       "Optimize resources",
				Severity:  severity,
				RunID:     run.ID,
				Timestamp: time.Now().UTC(),
			}
		}
	}

	if run.Status == contracts.StatusFailure {
		return &contracts.Anomaly{
			ID:        uuid.NewString(),
			Issue:     "Test failure",
			Fix:       "Check test logs",
			Severity:  contracts.SeverityHigh,
			RunID:     run.ID,
			Timestamp: time.Now().UTC(),
		}
	}

	return nil
}
