package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pipeguard/src/analyze"
	"pipeguard/src/config"
	"pipeguard/src/contracts"
	"pipeguard/src/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st := store.NewMemoryStore()
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	statuses := []string{
		contracts.StatusSuccess, contracts.StatusFailure, contracts.StatusSuccess,
		contracts.StatusSuccess, contracts.StatusSuccess,
	}
	for i, status := range statuses {
		run := contracts.Run{
			ID:        "run-" + string(rune('1'+i)),
			Status:    status,
			Duration:  100 + i*10,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Branch:    "main",
		}
		if err := st.SaveRun(context.Background(), &run); err != nil {
			t.Fatal(err)
		}
	}
	anomaly := contracts.Anomaly{
		ID: "anom-1", Issue: "Test failure", Fix: "Check test logs",
		Severity: contracts.SeverityHigh, RunID: "run-2", Timestamp: base.Add(time.Hour),
	}
	if err := st.SaveAnomaly(context.Background(), &anomaly); err != nil {
		t.Fatal(err)
	}

	analyzer := analyze.NewAnalyzer(config.Thresholds{
		DurationWarning:     config.DefaultDurationWarning,
		DurationCritical:    config.DefaultDurationCritical,
		FailureRateWarning:  config.DefaultFailureRateWarning,
		FailureRateCritical: config.DefaultFailureRateCritical,
	})
	return NewServer(st, analyzer)
}

func TestPipelineStatsPayload(t *testing.T) {
	s := newTestServer(t)

	out, err := s.PipelineStats(context.Background(), 50)
	if err != nil {
		t.Fatalf("PipelineStats() unexpected error: %v", err)
	}

	var payload struct {
		Stats  contracts.PipelineStats `json:"stats"`
		Health contracts.HealthReport  `json:"health"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}

	if payload.Stats.TotalRuns != 5 {
		t.Errorf("TotalRuns = %d, want 5", payload.Stats.TotalRuns)
	}
	if payload.Stats.TotalFailures != 1 {
		t.Errorf("TotalFailures = %d, want 1", payload.Stats.TotalFailures)
	}
	if payload.Health.OverallHealth == "" {
		t.Error("health report missing overall health")
	}
}

func TestRecentRunsPayload(t *testing.T) {
	s := newTestServer(t)

	out, err := s.RecentRuns(context.Background(), 3)
	if err != nil {
		t.Fatalf("RecentRuns() unexpected error: %v", err)
	}

	var runs []contracts.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("returned %d runs, want 3", len(runs))
	}
	if runs[0].ID != "run-5" {
		t.Errorf("first run = %s, want newest (run-5)", runs[0].ID)
	}
}

func TestRecentAnomaliesPayload(t *testing.T) {
	s := newTestServer(t)

	out, err := s.RecentAnomalies(context.Background(), 0)
	if err != nil {
		t.Fatalf("RecentAnomalies() unexpected error: %v", err)
	}

	var anomalies []contracts.Anomaly
	if err := json.Unmarshal([]byte(out), &anomalies); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(anomalies) != 1 {
		t.Fatalf("returned %d anomalies, want 1", len(anomalies))
	}
	if anomalies[0].Fix != "Check test logs" {
		t.Errorf("anomaly fix = %q, want suggested fix preserved", anomalies[0].Fix)
	}
}
