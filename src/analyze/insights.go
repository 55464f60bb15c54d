package analyze

import (
	"fmt"

	"pipeguard/src/contracts"
)

// GenerateInsights produces the pattern/optimization view served by
// /api/insights: detected failure and duration patterns, optimization
// suggestions, and prediction summaries.
func (a *Analyzer) GenerateInsights(runs []contracts.Run) contracts.Insights {
	insights := contracts.Insights{
		Patterns:        []string{},
		Optimizations:   []contracts.Optimization{},
		Predictions:     []string{},
		Recommendations: a.Recommendations(runs),
	}
	if len(runs) == 0 {
		return insights
	}

	recent := lastN(runs, 10)
	failures := 0
	for _, r := range recent {
		if r.Status == contracts.StatusFailure {
			failures++
		}
	}
	if failures > 0 {
		insights.Patterns = append(insights.Patterns,
			fmt.Sprintf("%d of the last %d runs failed", failures, len(recent)))
	}

	durations := Durations(runs)
	if growth := durationGrowth(durations); growth > 0.2 {
		insights.Patterns = append(insights.Patterns,
			fmt.Sprintf("Build durations grew %.0f%% over the recorded history", growth*100))
	}
	if trend := Trend(durations); trend != TrendStable {
		insights.Patterns = append(insights.Patterns, describeTrend("Duration", trend))
	}

	avg := Mean(Durations(recent))
	failureRate := float64(failures) / float64(len(recent))

	if avg > float64(a.thresholds.DurationWarning) {
		insights.Optimizations = append(insights.Optimizations, contracts.Optimization{
			Title:       "Enable dependency caching",
			Description: "Average build time exceeds the warning threshold. Caching dependencies between runs typically cuts minutes off each build.",
			Impact:      "high",
		})
	}
	if Stdev(Durations(recent)) > 60 {
		insights.Optimizations = append(insights.Optimizations, contracts.Optimization{
			Title:       "Stabilize the build environment",
			Description: "Build durations vary widely. Pin runner sizes and reduce contention for shared resources.",
			Impact:      "medium",
		})
	}
	if failureRate > a.thresholds.FailureRateWarning {
		insights.Optimizations = append(insights.Optimizations, contracts.Optimization{
			Title:       "Quarantine flaky tests",
			Description: "Recurring failures suggest unstable tests. Isolate them so they stop blocking the pipeline.",
			Impact:      "medium",
		})
	}

	if p := PredictNextRun(runs); p.Confidence != "insufficient-data" {
		insights.Predictions = append(insights.Predictions,
			fmt.Sprintf("Next run expected around %.1fs (%s confidence)", p.PredictedDuration, p.Confidence),
			fmt.Sprintf("Success probability %.1f%%", p.SuccessProbability))
	}

	return insights
}

// durationGrowth compares the mean of the first half of the series to the
// mean of the second half, returning the relative increase (0 when the
// series is too short or not growing).
func durationGrowth(durations []float64) float64 {
	if len(durations) < 4 {
		return 0
	}
	mid := len(durations) / 2
	first := Mean(durations[:mid])
	second := Mean(durations[mid:])
	if first <= 0 || second <= first {
		return 0
	}
	return (second - first) / first
}
