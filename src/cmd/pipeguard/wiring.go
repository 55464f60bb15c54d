package main

import (
	"context"
	"fmt"

	"pipeguard/src/broker"
	"pipeguard/src/config"
	"pipeguard/src/logger"
	"pipeguard/src/monitor"
	"pipeguard/src/store"
)

// openStore selects the storage backend from configuration:
// Postgres when a DSN is set, Redis when an address is set, otherwise
// in-memory.
func openStore(cfg *config.Config, log logger.Logger) (store.Store, error) {
	switch {
	case cfg.PostgresDSN != "":
		log.Info("using postgres store")
		return store.NewPostgresStore(cfg.PostgresDSN)
	case cfg.RedisAddr != "":
		log.Info("using redis store at %s", cfg.RedisAddr)
		return store.NewRedisStore(cfg.RedisAddr)
	default:
		log.Info("using in-memory store")
		return store.NewMemoryStore(), nil
	}
}

// openBroker returns the Redpanda broker when brokers are configured,
// otherwise the in-process broker.
func openBroker(cfg *config.Config, log logger.Logger) (broker.Broker, error) {
	if len(cfg.RedpandaBrokers) > 0 {
		log.Info("using redpanda broker: %v", cfg.RedpandaBrokers)
		return broker.NewRedpandaBroker(cfg.RedpandaBrokers)
	}
	return broker.NewInMemoryBroker(), nil
}

// seedSampleData fills the store with a generated 20-run history. Used
// by demo mode so the dashboard and TUI have something to show.
func seedSampleData(ctx context.Context, st store.Store) error {
	runs, anomalies := monitor.GenerateSampleData()
	for i := range runs {
		if err := st.SaveRun(ctx, &runs[i]); err != nil {
			return fmt.Errorf("failed to seed run %s: %w", runs[i].ID, err)
		}
	}
	for i := range anomalies {
		if err := st.SaveAnomaly(ctx, &anomalies[i]); err != nil {
			return fmt.Errorf("failed to seed anomaly %s: %w", anomalies[i].ID, err)
		}
	}
	return nil
}

// dashboardURL is the address included in alert emails.
func dashboardURL(cfg *config.Config) string {
	return fmt.Sprintf("http://localhost:%d", cfg.Port)
}
