package analyze

import (
	"time"

	"pipeguard/src/contracts"
)

// Health status labels.
const (
	HealthHealthy  = "healthy"
	HealthWarning  = "warning"
	HealthCritical = "critical"
	HealthUnknown  = "unknown"
)

// HealthScore computes a 0-100 pipeline health score:
// 60% success rate, 20% duration favorability (ideal at or under 60s,
// floor at 180s), 20% run frequency (saturating at 24 runs).
// No runs yields the neutral 50.
func HealthScore(runs []contracts.Run) int {
	if len(runs) == 0 {
		return 50
	}

	successes := 0
	for _, r := range runs {
		if r.Status == contracts.StatusSuccess {
			successes++
		}
	}
	successRate := float64(successes) / float64(len(runs))

	avg := Mean(Durations(runs))
	durationFavorability := clamp01(1 - (avg-60)/120)

	frequency := float64(len(runs)) / 24
	if frequency > 1 {
		frequency = 1
	}

	score := 100 * (0.6*successRate + 0.2*durationFavorability + 0.2*frequency)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}

// OverallHealth classifies pipeline health from the last 10 runs and the
// last 5 anomalies. High failure rates or clusters of severe anomalies
// escalate the status.
func OverallHealth(runs []contracts.Run, anomalies []contracts.Anomaly) string {
	if len(runs) == 0 {
		return HealthUnknown
	}

	recent := lastN(runs, 10)
	failures := 0
	for _, r := range recent {
		if r.Status == contracts.StatusFailure {
			failures++
		}
	}
	failureRate := float64(failures) / float64(len(recent))

	severe := 0
	recentAnomalies := ChronologicalAnomalies(anomalies)
	if len(recentAnomalies) > 5 {
		recentAnomalies = recentAnomalies[len(recentAnomalies)-5:]
	}
	for _, a := range recentAnomalies {
		if a.Severity == contracts.SeverityHigh || a.Severity == contracts.SeverityCritical {
			severe++
		}
	}

	switch {
	case failureRate > 0.3 || severe > 2:
		return HealthCritical
	case failureRate > 0.1 || severe > 0:
		return HealthWarning
	default:
		return HealthHealthy
	}
}

// AlertLevel maps a health status to a notification priority.
func AlertLevel(health string) string {
	switch health {
	case HealthCritical:
		return "high"
	case HealthWarning:
		return "medium"
	default:
		return "low"
	}
}

// HealthReport assembles the full health assessment served by /api/health.
func (a *Analyzer) HealthReport(runs []contracts.Run, anomalies []contracts.Anomaly) contracts.HealthReport {
	health := OverallHealth(runs, anomalies)
	return contracts.HealthReport{
		OverallHealth: health,
		HealthScore:   HealthScore(runs),
		AlertLevel:    AlertLevel(health),
		Trends:        a.AnalyzeTrends(runs),
		LastUpdated:   time.Now().UTC().Format(time.RFC3339),
	}
}
