package contracts

// PipelineStats summarizes the recorded run history.
type PipelineStats struct {
	TotalRuns     int     `json:"total_runs"`
	SuccessRate   float64 `json:"success_rate"`  // percent, 0-100
	AvgDuration   float64 `json:"avg_duration"`  // seconds
	TotalFailures int     `json:"total_failures"`
}

// Prediction estimates the next run's behavior from recent history.
type Prediction struct {
	PredictedDuration  float64 `json:"predicted_duration"`  // seconds
	SuccessProbability float64 `json:"success_probability"` // percent, 0-100
	Confidence         string  `json:"confidence"`          // "high", "medium", "insufficient-data"
	Trend              string  `json:"trend"`
}

// TrendAnalysis is the output of the performance trend analyzer.
type TrendAnalysis struct {
	DurationTrend    string     `json:"duration_trend"`     // "improving", "degrading", "stable"
	SuccessRateTrend string     `json:"success_rate_trend"`
	PerformanceScore int        `json:"performance_score"` // 0-100
	Recommendations  []string   `json:"recommendations"`
	Prediction       Prediction `json:"prediction"`
}

// HealthReport is a point-in-time health assessment of the pipeline.
type HealthReport struct {
	OverallHealth string        `json:"overall_health"` // "healthy", "warning", "critical", "unknown"
	HealthScore   int           `json:"health_score"`   // 0-100
	AlertLevel    string        `json:"alert_level"`    // "low", "medium", "high"
	Trends        TrendAnalysis `json:"trends"`
	LastUpdated   string        `json:"last_updated"` // RFC3339
}

// Optimization is a single actionable improvement suggestion.
type Optimization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"` // "low", "medium", "high"
}

// Insights groups the pattern-detection output served by /api/insights.
type Insights struct {
	Patterns        []string       `json:"patterns"`
	Optimizations   []Optimization `json:"optimizations"`
	Predictions     []string       `json:"predictions"`
	Recommendations []string       `json:"recommendations"`
}
