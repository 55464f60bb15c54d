// Package monitor ingests CI run history: it polls the provider, persists
// new runs, derives anomalies, and publishes pipeline events.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pipeguard/src/analyze"
	"pipeguard/src/broker"
	"pipeguard/src/contracts"
	"pipeguard/src/logger"
	"pipeguard/src/provider"
	"pipeguard/src/store"
)

// anomalyWindow is the number of stored durations the duration check
// compares against.
const anomalyWindow = 10

// Summary reports the outcome of one poll cycle.
type Summary struct {
	Fetched   int `json:"fetched"`
	NewRuns   int `json:"new_runs"`
	Anomalies int `json:"anomalies"`
}

// Monitor runs the ingestion cycle against a provider and a store.
type Monitor struct {
	provider   provider.Provider
	store      store.Store
	broker     broker.Broker
	log        logger.Logger
	fetchLimit int
}

// NewMonitor creates a monitor. broker may be nil when eventing is disabled.
func NewMonitor(p provider.Provider, s store.Store, b broker.Broker, log logger.Logger) *Monitor {
	return &Monitor{
		provider:   p,
		store:      s,
		broker:     b,
		log:        log,
		fetchLimit: 30,
	}
}

// Poll fetches recent runs and persists the ones not seen before, deriving
// an anomaly for each as it lands. Per-run persistence failures are logged
// and skipped rather than aborting the cycle (best-effort, matching the
// dashboard's sample-data fallback philosophy).
func (m *Monitor) Poll(ctx context.Context) (*Summary, error) {
	fetched, err := m.provider.FetchRuns(ctx, m.fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs from %s: %w", m.provider.Name(), err)
	}

	summary := &Summary{Fetched: len(fetched)}

	// Providers return newest first; ingest oldest first so rolling
	// averages see history in order.
	for i := len(fetched) - 1; i >= 0; i-- {
		run := fetched[i]

		if _, err := m.store.GetRun(ctx, run.ID); err == nil {
			continue // already recorded
		} else if !errors.Is(err, store.ErrNotFound) {
			m.log.Error("failed to check run %s: %v", run.ID, err)
			continue
		}

		recent, err := m.store.ListRuns(ctx, anomalyWindow)
		if err != nil {
			m.log.Error("failed to load recent runs: %v", err)
			recent = nil
		}
		durations := make([]int, len(recent))
		for j, r := range recent {
			durations[j] = r.Duration
		}

		if err := m.store.SaveRun(ctx, &run); err != nil {
			m.log.Error("failed to save run %s: %v", run.ID, err)
			continue
		}
		summary.NewRuns++
		m.publishRun(ctx, run)

		if anomaly := analyze.DetectAnomaly(run, durations); anomaly != nil {
			if err := m.store.SaveAnomaly(ctx, anomaly); err != nil {
				m.log.Error("failed to save anomaly for run %s: %v", run.ID, err)
				continue
			}
			summary.Anomalies++
			m.log.Info("anomaly detected for run %s: %s", run.ID, anomaly.Issue)
			m.publishAnomaly(ctx, *anomaly, run)
		}
	}

	m.log.Info("poll complete: %d fetched, %d new, %d anomalies",
		summary.Fetched, summary.NewRuns, summary.Anomalies)
	return summary, nil
}

func (m *Monitor) publishRun(ctx context.Context, run contracts.Run) {
	if m.broker == nil {
		return
	}

	event := contracts.RunRecordedEvent{
		Run:      run,
		Source:   m.provider.Name(),
		Recorded: time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		m.log.Error("failed to marshal run event: %v", err)
		return
	}

	if err := m.broker.Publish(ctx, contracts.TopicRunRecorded, run.ID, payload); err != nil {
		m.log.Error("failed to publish run event: %v", err)
	}
}

func (m *Monitor) publishAnomaly(ctx context.Context, anomaly contracts.Anomaly, run contracts.Run) {
	if m.broker == nil {
		return
	}

	event := contracts.AnomalyDetectedEvent{
		Anomaly:  anomaly,
		Run:      run,
		Recorded: time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		m.log.Error("failed to marshal anomaly event: %v", err)
		return
	}

	if err := m.broker.Publish(ctx, contracts.TopicAnomalyDetected, run.ID, payload); err != nil {
		m.log.Error("failed to publish anomaly event: %v", err)
	}
}
