// Package analyze computes rolling statistics, trend classification, and
// scoring over recorded pipeline runs. All functions are pure and stateless:
// they operate on a chronological slice of runs and perform no I/O.
package analyze

import (
	"fmt"

	"pipeguard/src/config"
	"pipeguard/src/contracts"
)

// Trend classification labels.
const (
	TrendImproving = "improving"
	TrendDegrading = "degrading"
	TrendStable    = "stable"
)

// DefaultWindow is the trailing window size for rolling success rates.
const DefaultWindow = 5

// slopeEpsilon is the dead zone around zero slope for trend classification.
const slopeEpsilon = 0.1

// Analyzer computes performance trends against configured thresholds.
type Analyzer struct {
	thresholds config.Thresholds
}

// NewAnalyzer creates an analyzer with the given thresholds.
func NewAnalyzer(t config.Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// AnalyzeTrends produces the full trend analysis for a chronological run
// history: duration and success-rate trends, performance score,
// recommendations, and a next-run prediction.
func (a *Analyzer) AnalyzeTrends(runs []contracts.Run) contracts.TrendAnalysis {
	durations := Durations(runs)
	successRates := RollingSuccessRates(runs, DefaultWindow)

	return contracts.TrendAnalysis{
		DurationTrend:    Trend(durations),
		SuccessRateTrend: Trend(successRates),
		PerformanceScore: PerformanceScore(runs),
		Recommendations:  a.Recommendations(runs),
		Prediction:       PredictNextRun(runs),
	}
}

// Durations extracts run durations as floats, preserving order.
func Durations(runs []contracts.Run) []float64 {
	out := make([]float64, len(runs))
	for i, r := range runs {
		out[i] = float64(r.Duration)
	}
	return out
}

// RollingSuccessRates computes the trailing success rate at each position:
// for index i, the fraction of successes among runs[max(0,i-window+1)..i].
func RollingSuccessRates(runs []contracts.Run, window int) []float64 {
	if window < 1 {
		window = 1
	}
	rates := make([]float64, len(runs))
	for i := range runs {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		successes := 0
		for _, r := range runs[start : i+1] {
			if r.Status == contracts.StatusSuccess {
				successes++
			}
		}
		rates[i] = float64(successes) / float64(i+1-start)
	}
	return rates
}

// Trend classifies a value series by the sign of its least-squares slope.
// Slopes within ±0.1 of zero are "stable", as are series shorter than 2.
func Trend(values []float64) string {
	if len(values) < 2 {
		return TrendStable
	}
	slope := Slope(values)
	switch {
	case slope > slopeEpsilon:
		return TrendImproving
	case slope < -slopeEpsilon:
		return TrendDegrading
	default:
		return TrendStable
	}
}

// PerformanceScore computes an overall 0-100 score from the last 10 runs:
// 40% success rate, 30% duration (good under 3 minutes), 30% consistency
// (good under 60s standard deviation). No runs yields the neutral 50.
func PerformanceScore(runs []contracts.Run) int {
	if len(runs) == 0 {
		return 50
	}

	recent := lastN(runs, 10)

	successes := 0
	for _, r := range recent {
		if r.Status == contracts.StatusSuccess {
			successes++
		}
	}
	successScore := float64(successes) / float64(len(recent)) * 40

	durations := Durations(recent)
	avg := Mean(durations)
	durationScore := clamp01((180-avg)/180) * 30

	std := Stdev(durations)
	consistencyScore := clamp01((60-std)/60) * 30

	total := successScore + durationScore + consistencyScore
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return int(total)
}

// Recommendations generates actionable advice from the last 10 runs using
// the configured failure-rate and duration thresholds.
func (a *Analyzer) Recommendations(runs []contracts.Run) []string {
	if len(runs) == 0 {
		return []string{"No data available for analysis"}
	}

	recent := lastN(runs, 10)
	var recs []string

	failures := 0
	for _, r := range recent {
		if r.Status == contracts.StatusFailure {
			failures++
		}
	}
	failureRate := float64(failures) / float64(len(recent))

	switch {
	case failureRate > a.thresholds.FailureRateCritical:
		recs = append(recs, "Critical: high failure rate detected. Review recent changes and test coverage.")
	case failureRate > a.thresholds.FailureRateWarning:
		recs = append(recs, "Warning: increased failure rate. Monitor test stability.")
	}

	durations := Durations(recent)
	avg := Mean(durations)

	switch {
	case avg > float64(a.thresholds.DurationCritical):
		recs = append(recs, "Critical: build times are very slow. Consider optimizing the build process.")
	case avg > float64(a.thresholds.DurationWarning):
		recs = append(recs, "Warning: build times are increasing. Review build efficiency.")
	}

	if Stdev(durations) > 60 {
		recs = append(recs, "Build times are inconsistent. Investigate resource allocation.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Pipeline performance looks good. Keep it up.")
	}
	return recs
}

// PredictNextRun estimates the next run from the last 5 runs: the mean
// duration adjusted 10% in the direction of the trend, and the recent
// success fraction as success probability. Fewer than 3 runs is not enough
// signal to predict from.
func PredictNextRun(runs []contracts.Run) contracts.Prediction {
	if len(runs) < 3 {
		return contracts.Prediction{Confidence: "insufficient-data", Trend: TrendStable}
	}

	recent := lastN(runs, 5)
	durations := Durations(recent)
	avg := Mean(durations)
	trend := Trend(durations)

	predicted := avg
	confidence := "medium"
	switch trend {
	case TrendImproving:
		predicted *= 0.9
		confidence = "high"
	case TrendDegrading:
		predicted *= 1.1
		confidence = "high"
	}

	successes := 0
	for _, r := range recent {
		if r.Status == contracts.StatusSuccess {
			successes++
		}
	}
	probability := float64(successes) / float64(len(recent)) * 100

	return contracts.Prediction{
		PredictedDuration:  round1(predicted),
		SuccessProbability: round1(probability),
		Confidence:         confidence,
		Trend:              trend,
	}
}

// Stats summarizes a run history for the /api/stats endpoint.
func Stats(runs []contracts.Run) contracts.PipelineStats {
	stats := contracts.PipelineStats{TotalRuns: len(runs)}
	if len(runs) == 0 {
		return stats
	}

	successes := 0
	for _, r := range runs {
		if r.Status == contracts.StatusSuccess {
			successes++
		} else if r.Status == contracts.StatusFailure {
			stats.TotalFailures++
		}
	}
	stats.SuccessRate = round1(float64(successes) / float64(len(runs)) * 100)
	stats.AvgDuration = round1(Mean(Durations(runs)))
	return stats
}

// lastN returns the trailing n elements of runs (all of them if fewer).
func lastN(runs []contracts.Run, n int) []contracts.Run {
	if len(runs) <= n {
		return runs
	}
	return runs[len(runs)-n:]
}

// describeTrend renders a trend label as a human-readable sentence fragment.
func describeTrend(metric, trend string) string {
	return fmt.Sprintf("%s trend is %s", metric, trend)
}
