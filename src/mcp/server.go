// Package mcp exposes pipeline history and analytics as MCP tools so
// agents can query the dashboard's data over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pipeguard/src/analyze"
	"pipeguard/src/store"
)

const defaultLimit = 10

// Server is the MCP server for PipeGuard.
type Server struct {
	mcpServer *server.MCPServer
	store     store.Store
	analyzer  *analyze.Analyzer
}

// NewServer creates an MCP server backed by the given store.
func NewServer(st store.Store, analyzer *analyze.Analyzer) *Server {
	s := server.NewMCPServer(
		"pipeguard",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		store:     st,
		analyzer:  analyzer,
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	statsTool := mcp.NewTool("pipeline_stats",
		mcp.WithDescription("Summarize recorded pipeline history: totals, success rate, average duration, health report and trend analysis. Use this first to understand the pipeline's current state."),
		mcp.WithNumber("limit",
			mcp.Description("Number of recent runs to analyze (default: 50)"),
		),
	)

	runsTool := mcp.NewTool("recent_runs",
		mcp.WithDescription("List recent pipeline runs, newest first, with status, duration and branch."),
		mcp.WithNumber("limit",
			mcp.Description("Max runs to return (default: 10)"),
		),
	)

	anomaliesTool := mcp.NewTool("recent_anomalies",
		mcp.WithDescription("List recently detected anomalies (failures and unusually long builds), newest first, with suggested fixes."),
		mcp.WithNumber("limit",
			mcp.Description("Max anomalies to return (default: 10)"),
		),
	)

	s.mcpServer.AddTool(statsTool, s.handlePipelineStats)
	s.mcpServer.AddTool(runsTool, s.handleRecentRuns)
	s.mcpServer.AddTool(anomaliesTool, s.handleRecentAnomalies)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) handlePipelineStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 50)

	out, err := s.PipelineStats(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load pipeline stats: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleRecentRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", defaultLimit)

	out, err := s.RecentRuns(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleRecentAnomalies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", defaultLimit)

	out, err := s.RecentAnomalies(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list anomalies: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

// statsPayload is the pipeline_stats response shape.
type statsPayload struct {
	Stats  interface{} `json:"stats"`
	Health interface{} `json:"health"`
}

// PipelineStats builds the JSON payload for the pipeline_stats tool.
func (s *Server) PipelineStats(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = 50
	}

	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return "", err
	}
	anomalies, err := s.store.ListAnomalies(ctx, defaultLimit)
	if err != nil {
		return "", err
	}

	ordered := analyze.Chronological(runs)
	payload := statsPayload{
		Stats:  analyze.Stats(ordered),
		Health: s.analyzer.HealthReport(ordered, anomalies),
	}
	return marshal(payload)
}

// RecentRuns builds the JSON payload for the recent_runs tool.
func (s *Server) RecentRuns(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return "", err
	}
	return marshal(runs)
}

// RecentAnomalies builds the JSON payload for the recent_anomalies tool.
func (s *Server) RecentAnomalies(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	anomalies, err := s.store.ListAnomalies(ctx, limit)
	if err != nil {
		return "", err
	}
	return marshal(anomalies)
}

func marshal(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(data), nil
}
