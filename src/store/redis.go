// Package store provides a Redis document-store implementation.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"pipeguard/src/contracts"
)

// Key layout: one JSON document per record plus a sorted set per kind,
// scored by timestamp, for newest-first listing.
const (
	runKeyPrefix     = "run:"
	anomalyKeyPrefix = "anomaly:"
	runsByTimeKey    = "runs:by_time"
	anomsByTimeKey   = "anomalies:by_time"
)

// RedisStore is a Redis implementation of Store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis store and verifies connectivity.
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// SaveRun persists a run as a JSON document and indexes it by timestamp.
func (s *RedisStore) SaveRun(ctx context.Context, run *contracts.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	if err := s.client.Set(ctx, runKeyPrefix+run.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	err = s.client.ZAdd(ctx, runsByTimeKey, &redis.Z{
		Score:  float64(run.Timestamp.UnixMilli()),
		Member: run.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to index run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID.
func (s *RedisStore) GetRun(ctx context.Context, id string) (*contracts.Run, error) {
	data, err := s.client.Get(ctx, runKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run contracts.Run
	if err := json.Unmarshal([]byte(data), &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *RedisStore) ListRuns(ctx context.Context, limit int) ([]contracts.Run, error) {
	ids, err := s.client.ZRevRange(ctx, runsByTimeKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list run IDs: %w", err)
	}

	runs := make([]contracts.Run, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, runKeyPrefix+id).Result()
		if err != nil {
			// Document may have been evicted; skip stale index entries.
			continue
		}

		var run contracts.Run
		if err := json.Unmarshal([]byte(data), &run); err != nil {
			continue
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// SaveAnomaly persists an anomaly as a JSON document and indexes it.
func (s *RedisStore) SaveAnomaly(ctx context.Context, anomaly *contracts.Anomaly) error {
	data, err := json.Marshal(anomaly)
	if err != nil {
		return fmt.Errorf("failed to marshal anomaly: %w", err)
	}

	if err := s.client.Set(ctx, anomalyKeyPrefix+anomaly.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save anomaly: %w", err)
	}

	err = s.client.ZAdd(ctx, anomsByTimeKey, &redis.Z{
		Score:  float64(anomaly.Timestamp.UnixMilli()),
		Member: anomaly.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to index anomaly: %w", err)
	}

	return nil
}

// ListAnomalies returns up to limit anomalies, newest first.
func (s *RedisStore) ListAnomalies(ctx context.Context, limit int) ([]contracts.Anomaly, error) {
	ids, err := s.client.ZRevRange(ctx, anomsByTimeKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list anomaly IDs: %w", err)
	}

	anomalies := make([]contracts.Anomaly, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, anomalyKeyPrefix+id).Result()
		if err != nil {
			continue
		}

		var anomaly contracts.Anomaly
		if err := json.Unmarshal([]byte(data), &anomaly); err != nil {
			continue
		}
		anomalies = append(anomalies, anomaly)
	}

	return anomalies, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
