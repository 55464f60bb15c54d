package main

import (
	"context"
	"testing"

	"pipeguard/src/broker"
	"pipeguard/src/config"
	"pipeguard/src/logger"
	"pipeguard/src/store"
)

func TestOpenStoreDefaultsToMemory(t *testing.T) {
	st, err := openStore(config.Demo(), logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("openStore() unexpected error: %v", err)
	}
	defer st.Close()

	if _, ok := st.(*store.MemoryStore); !ok {
		t.Errorf("openStore() = %T, want *store.MemoryStore without DSN or Redis addr", st)
	}
}

func TestOpenBrokerDefaultsToInMemory(t *testing.T) {
	b, err := openBroker(config.Demo(), logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("openBroker() unexpected error: %v", err)
	}
	defer b.Close()

	if _, ok := b.(*broker.InMemoryBroker); !ok {
		t.Errorf("openBroker() = %T, want *broker.InMemoryBroker without configured brokers", b)
	}
}

func TestSeedSampleData(t *testing.T) {
	st := store.NewMemoryStore()
	if err := seedSampleData(context.Background(), st); err != nil {
		t.Fatalf("seedSampleData() unexpected error: %v", err)
	}

	runs, err := st.ListRuns(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 20 {
		t.Errorf("seeded %d runs, want 20", len(runs))
	}

	anomalies, err := st.ListAnomalies(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(anomalies) == 0 {
		t.Error("expected seeded anomalies for sample failures")
	}
}

func TestDashboardURL(t *testing.T) {
	cfg := config.Demo()
	cfg.Port = 9000
	if got := dashboardURL(cfg); got != "http://localhost:9000" {
		t.Errorf("dashboardURL() = %q, want http://localhost:9000", got)
	}
}
