// Package server exposes the pipeline dashboard over HTTP: an HTML view,
// JSON endpoints for stats, health and insights, and a websocket feed of
// refresh events.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pipeguard/src/analyze"
	"pipeguard/src/config"
	"pipeguard/src/contracts"
	"pipeguard/src/logger"
	"pipeguard/src/monitor"
	"pipeguard/src/notify"
	"pipeguard/src/provider"
	"pipeguard/src/store"
)

const (
	runListLimit     = 50
	anomalyListLimit = 20
)

// Poller triggers one ingestion cycle. Satisfied by monitor.Monitor; nil
// when the dashboard runs in demo mode without a provider.
type Poller interface {
	Poll(ctx context.Context) (*monitor.Summary, error)
}

// Server wires the store, analyzer and monitor behind the HTTP API.
type Server struct {
	store     store.Store
	poller    Poller
	analyzer  *analyze.Analyzer
	healthMon *monitor.HealthcheckMonitor
	mailer    *notify.Mailer
	hub       *Hub
	log       logger.Logger
	refresh   int // dashboard auto-refresh period, seconds
}

// New assembles a dashboard server. poller and mailer may be nil.
func New(s store.Store, p Poller, a *analyze.Analyzer, m *notify.Mailer, cfg *config.Config, log logger.Logger) *Server {
	refresh := config.DefaultRefreshInterval
	if cfg != nil && cfg.RefreshInterval > 0 {
		refresh = cfg.RefreshInterval
	}
	return &Server{
		store:     s,
		poller:    p,
		analyzer:  a,
		healthMon: monitor.NewHealthcheckMonitor(a, m, log),
		mailer:    m,
		hub:       NewHub(log),
		log:       log,
		refresh:   refresh,
	}
}

// Router builds the route table. Exposed for tests.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleDashboard).Methods("GET")
	r.HandleFunc("/api/stats", s.handleStats).Methods("GET")
	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/insights", s.handleInsights).Methods("GET")
	r.HandleFunc("/api/refresh", s.handleRefresh).Methods("GET")
	r.HandleFunc("/api/test-notification", s.handleTestNotification).Methods("GET")
	r.HandleFunc("/ws", s.hub.HandleWebSocket)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// ListenAndServe blocks serving the dashboard on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("dashboard listening on %s", addr)
	return srv.ListenAndServe()
}

// history loads run and anomaly history, newest first. On store failure
// it substitutes generated sample data so the dashboard stays usable,
// returning the original error for the response's error field.
func (s *Server) history(ctx context.Context) ([]contracts.Run, []contracts.Anomaly, error) {
	runs, err := s.store.ListRuns(ctx, runListLimit)
	if err != nil {
		s.log.Error("failed to list runs, serving sample data: %v", err)
		runs, anomalies := monitor.GenerateSampleData()
		return newestFirst(runs), newestFirst(anomalies), err
	}

	anomalies, err := s.store.ListAnomalies(ctx, anomalyListLimit)
	if err != nil {
		s.log.Error("failed to list anomalies: %v", err)
		anomalies = nil
	}
	return runs, anomalies, nil
}

// newestFirst reverses a chronologically generated slice into store order.
func newestFirst[T any](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}

type statsResponse struct {
	contracts.PipelineStats
	Error string `json:"error,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	runs, _, err := s.history(r.Context())
	resp := statsResponse{PipelineStats: analyze.Stats(analyze.Chronological(runs))}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	contracts.HealthReport
	Error string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	runs, anomalies, err := s.history(r.Context())
	resp := healthResponse{HealthReport: s.healthMon.Check(runs, anomalies)}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type insightsResponse struct {
	contracts.Insights
	Error string `json:"error,omitempty"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	runs, _, err := s.history(r.Context())
	resp := insightsResponse{Insights: s.analyzer.GenerateInsights(analyze.Chronological(runs))}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type refreshResponse struct {
	Status  string           `json:"status"`
	Summary *monitor.Summary `json:"summary,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.poller == nil {
		writeJSON(w, http.StatusServiceUnavailable, refreshResponse{
			Status: "unavailable",
			Error:  "no run provider configured",
		})
		return
	}

	summary, err := s.poller.Poll(r.Context())
	if err != nil {
		s.log.Error("refresh failed: %v", err)
		writeJSON(w, http.StatusBadGateway, refreshResponse{
			Status: "error",
			Error:  provider.WrapError(err).Error(),
		})
		return
	}

	s.hub.Broadcast(map[string]interface{}{
		"type":    "refresh",
		"summary": summary,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
	writeJSON(w, http.StatusOK, refreshResponse{Status: "ok", Summary: summary})
}

type notificationResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleTestNotification(w http.ResponseWriter, r *http.Request) {
	if s.mailer == nil {
		writeJSON(w, http.StatusOK, notificationResponse{Status: "not-configured"})
		return
	}

	err := s.mailer.SendTest()
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, notificationResponse{Status: "sent"})
	case errors.Is(err, notify.ErrNotConfigured):
		writeJSON(w, http.StatusOK, notificationResponse{Status: "not-configured"})
	default:
		s.log.Error("test notification failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, notificationResponse{
			Status: "error",
			Error:  err.Error(),
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
