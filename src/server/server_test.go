package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeguard/src/analyze"
	"pipeguard/src/config"
	"pipeguard/src/contracts"
	"pipeguard/src/logger"
	"pipeguard/src/monitor"
	"pipeguard/src/provider"
	"pipeguard/src/store"
)

// failingStore errors on every read, exercising the sample-data fallback.
type failingStore struct{}

var errStoreDown = errors.New("store unavailable")

func (failingStore) SaveRun(context.Context, *contracts.Run) error { return errStoreDown }
func (failingStore) GetRun(context.Context, string) (*contracts.Run, error) {
	return nil, errStoreDown
}
func (failingStore) ListRuns(context.Context, int) ([]contracts.Run, error) {
	return nil, errStoreDown
}
func (failingStore) SaveAnomaly(context.Context, *contracts.Anomaly) error { return errStoreDown }
func (failingStore) ListAnomalies(context.Context, int) ([]contracts.Anomaly, error) {
	return nil, errStoreDown
}
func (failingStore) Close() error { return nil }

// fakePoller returns a canned summary or error.
type fakePoller struct {
	summary *monitor.Summary
	err     error
}

func (f *fakePoller) Poll(context.Context) (*monitor.Summary, error) {
	return f.summary, f.err
}

func testAnalyzer() *analyze.Analyzer {
	return analyze.NewAnalyzer(config.Thresholds{
		DurationWarning:     config.DefaultDurationWarning,
		DurationCritical:    config.DefaultDurationCritical,
		FailureRateWarning:  config.DefaultFailureRateWarning,
		FailureRateCritical: config.DefaultFailureRateCritical,
	})
}

func newTestServer(t *testing.T, st store.Store, p Poller) *Server {
	t.Helper()
	return New(st, p, testAnalyzer(), nil, nil, logger.NewSilentLogger())
}

func seedStore(t *testing.T, st store.Store) {
	t.Helper()
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	statuses := []string{
		contracts.StatusSuccess, contracts.StatusSuccess, contracts.StatusFailure,
		contracts.StatusSuccess, contracts.StatusSuccess,
	}
	for i, status := range statuses {
		run := contracts.Run{
			ID:        string(rune('a' + i)),
			Status:    status,
			Duration:  90 + i*10,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Branch:    "main",
		}
		require.NoError(t, st.SaveRun(context.Background(), &run))
	}
}

func doGET(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestStatsEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	seedStore(t, st)
	s := newTestServer(t, st, nil)

	rec := doGET(t, s, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.TotalRuns)
	assert.Equal(t, 1, resp.TotalFailures)
	assert.InDelta(t, 80.0, resp.SuccessRate, 0.01)
	assert.Empty(t, resp.Error)
}

func TestStatsEndpointFallsBackToSampleData(t *testing.T) {
	s := newTestServer(t, failingStore{}, nil)

	rec := doGET(t, s, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.TotalRuns, "should serve generated sample history")
	assert.Contains(t, resp.Error, "store unavailable")
}

func TestHealthEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	seedStore(t, st)
	s := newTestServer(t, st, nil)

	rec := doGET(t, s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, []string{"healthy", "warning", "critical"}, resp.OverallHealth)
	assert.NotZero(t, resp.HealthScore)
	assert.NotEmpty(t, resp.LastUpdated)
}

func TestInsightsEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	seedStore(t, st)
	s := newTestServer(t, st, nil)

	rec := doGET(t, s, "/api/insights")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp insightsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Patterns)
	assert.NotNil(t, resp.Predictions)
}

func TestRefreshEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	p := &fakePoller{summary: &monitor.Summary{Fetched: 3, NewRuns: 2, Anomalies: 1}}
	s := newTestServer(t, st, p)

	rec := doGET(t, s, "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp refreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 2, resp.Summary.NewRuns)
}

func TestRefreshEndpointPollError(t *testing.T) {
	s := newTestServer(t, store.NewMemoryStore(), &fakePoller{err: errors.New("github down")})

	rec := doGET(t, s, "/api/refresh")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp refreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "github down")
}

func TestRefreshEndpointWrapsProviderErrors(t *testing.T) {
	pollErr := fmt.Errorf("failed to fetch runs: %w", provider.ErrRateLimited)
	s := newTestServer(t, store.NewMemoryStore(), &fakePoller{err: pollErr})

	rec := doGET(t, s, "/api/refresh")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp refreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "rate limit exceeded")
	assert.Contains(t, resp.Error, "Hint:")
}

func TestRefreshEndpointWithoutPoller(t *testing.T) {
	s := newTestServer(t, store.NewMemoryStore(), nil)

	rec := doGET(t, s, "/api/refresh")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTestNotificationWithoutMailer(t *testing.T) {
	s := newTestServer(t, store.NewMemoryStore(), nil)

	rec := doGET(t, s, "/api/test-notification")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp notificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not-configured", resp.Status)
}

func TestDashboardRenders(t *testing.T) {
	st := store.NewMemoryStore()
	seedStore(t, st)
	s := newTestServer(t, st, nil)

	rec := doGET(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "PipeGuard")
	assert.Contains(t, body, "Recent runs")
	assert.False(t, strings.Contains(body, "showing sample data"),
		"healthy store should not trigger the degraded banner")
}

func TestDashboardDegradedBanner(t *testing.T) {
	s := newTestServer(t, failingStore{}, nil)

	rec := doGET(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "showing sample data")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, store.NewMemoryStore(), nil)
	rec := doGET(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
