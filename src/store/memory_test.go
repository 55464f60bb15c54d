package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pipeguard/src/contracts"
)

func TestMemoryStoreRuns(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	base := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"1", "2", "3"} {
		err := s.SaveRun(ctx, &contracts.Run{
			ID:        id,
			Status:    contracts.StatusSuccess,
			Duration:  100 + i,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	t.Run("get run", func(t *testing.T) {
		run, err := s.GetRun(ctx, "2")
		require.NoError(t, err)
		require.Equal(t, "2", run.ID)
		require.Equal(t, 101, run.Duration)
	})

	t.Run("get missing run", func(t *testing.T) {
		_, err := s.GetRun(ctx, "nope")
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("list newest first", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		require.Equal(t, []string{"3", "2", "1"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
	})

	t.Run("list respects limit", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		require.Equal(t, "3", runs[0].ID)
	})

	t.Run("re-saving an existing run is a no-op", func(t *testing.T) {
		err := s.SaveRun(ctx, &contracts.Run{ID: "2", Status: contracts.StatusFailure, Duration: 999})
		require.NoError(t, err)

		run, err := s.GetRun(ctx, "2")
		require.NoError(t, err)
		require.Equal(t, contracts.StatusSuccess, run.Status)
		require.Equal(t, 101, run.Duration)
	})

	t.Run("returned run is a copy", func(t *testing.T) {
		run, err := s.GetRun(ctx, "1")
		require.NoError(t, err)
		run.Status = "mutated"

		again, err := s.GetRun(ctx, "1")
		require.NoError(t, err)
		require.Equal(t, contracts.StatusSuccess, again.Status)
	})
}

func TestMemoryStoreAnomalies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	base := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		err := s.SaveAnomaly(ctx, &contracts.Anomaly{
			ID:        id,
			Issue:     "Test failure",
			Fix:       "Check test logs",
			Severity:  contracts.SeverityHigh,
			RunID:     "run-" + id,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	anomalies, err := s.ListAnomalies(ctx, 2)
	require.NoError(t, err)
	require.Len(t, anomalies, 2)
	require.Equal(t, "c", anomalies[0].ID)
	require.Equal(t, "b", anomalies[1].ID)
}

func TestMemoryStoreEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, runs)

	anomalies, err := s.ListAnomalies(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, anomalies)
}
