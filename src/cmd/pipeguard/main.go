// Package main provides the PipeGuard CLI: the HTTP dashboard, one-shot
// monitor polls, the terminal UI, notification checks and the MCP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pipeguard/src/analyze"
	"pipeguard/src/config"
	"pipeguard/src/githubactions"
	"pipeguard/src/logger"
	"pipeguard/src/mcp"
	"pipeguard/src/monitor"
	"pipeguard/src/notify"
	"pipeguard/src/provider"
	"pipeguard/src/server"
	"pipeguard/src/tui"
)

var (
	appConfig *config.Config
	demoMode  bool
	debugLogs bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pipeguard",
	Short: "PipeGuard - a CI/CD pipeline health dashboard",
	Long: `PipeGuard polls GitHub Actions run history, flags anomalies
(failures and unusually long builds), and serves rolling statistics,
trend analysis and health scores.

Backends are selected from the environment:
- POSTGRES_DSN    persistent Postgres storage
- REDIS_ADDR      Redis storage (when no Postgres DSN is set)
- REDPANDA_BROKERS  publish run/anomaly events to Redpanda

Without GITHUB_TOKEN, use --demo to explore with generated sample data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if demoMode {
			appConfig = config.Demo()
			return
		}
		var err error
		appConfig, err = config.LoadFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Hint: set GITHUB_TOKEN, or pass --demo for sample data.")
			os.Exit(1)
		}
	},
}

// serveCmd starts the HTTP dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the HTTP dashboard with JSON endpoints (/api/stats,
/api/health, /api/insights, /api/refresh) and a websocket refresh feed.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.NewZapLogger(debugLogs)
		ctx := context.Background()

		st, err := openStore(appConfig, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		analyzer := analyze.NewAnalyzer(appConfig.Thresholds)
		mailer := notify.NewMailer(appConfig.SMTP, dashboardURL(appConfig))

		var poller server.Poller
		if demoMode {
			if err := seedSampleData(ctx, st); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to seed sample data: %v\n", err)
				os.Exit(1)
			}
			log.Info("demo mode: serving generated sample data")
		} else {
			b, err := openBroker(appConfig, log)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to connect broker: %v\n", err)
				os.Exit(1)
			}
			defer b.Close()

			prov := githubactions.NewRunProvider(
				appConfig.GitHubToken, appConfig.GitHubUser, appConfig.GitHubRepo)
			poller = monitor.NewMonitor(prov, st, b, log)
		}

		srv := server.New(st, poller, analyzer, mailer, appConfig, log)
		addr := fmt.Sprintf(":%d", appConfig.Port)
		if err := srv.ListenAndServe(addr); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

// monitorCmd runs one poll cycle and prints the summary.
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Fetch recent runs once and record new ones",
	Run: func(cmd *cobra.Command, args []string) {
		if demoMode {
			fmt.Fprintln(os.Stderr, "monitor requires GitHub credentials; demo mode has no provider")
			os.Exit(1)
		}

		log := logger.NewZapLogger(debugLogs)
		ctx := context.Background()

		st, err := openStore(appConfig, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		b, err := openBroker(appConfig, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect broker: %v\n", err)
			os.Exit(1)
		}
		defer b.Close()

		prov := githubactions.NewRunProvider(
			appConfig.GitHubToken, appConfig.GitHubUser, appConfig.GitHubRepo)
		m := monitor.NewMonitor(prov, st, b, log)

		summary, err := m.Poll(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Poll failed: %v\n", provider.WrapError(err))
			os.Exit(1)
		}

		out, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(out))
	},
}

// watchCmd launches the terminal dashboard.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Launch the terminal dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.NewSilentLogger()
		ctx := context.Background()

		st, err := openStore(appConfig, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		if demoMode {
			if err := seedSampleData(ctx, st); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to seed sample data: %v\n", err)
				os.Exit(1)
			}
		}

		analyzer := analyze.NewAnalyzer(appConfig.Thresholds)
		interval := time.Duration(appConfig.RefreshInterval) * time.Second
		if err := tui.Start(st, analyzer, interval); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	},
}

// notifyTestCmd sends a test alert email.
var notifyTestCmd = &cobra.Command{
	Use:   "notify-test",
	Short: "Send a test notification email",
	Run: func(cmd *cobra.Command, args []string) {
		mailer := notify.NewMailer(appConfig.SMTP, dashboardURL(appConfig))
		if err := mailer.SendTest(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to send test notification: %v\n", err)
			fmt.Fprintln(os.Stderr, "Hint: set SMTP_SERVER, EMAIL_USERNAME and EMAIL_PASSWORD.")
			os.Exit(1)
		}
		fmt.Println("Test notification sent.")
	},
}

// mcpCmd serves the MCP tools over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve pipeline data as MCP tools over stdio",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.NewSilentLogger()

		st, err := openStore(appConfig, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		if demoMode {
			if err := seedSampleData(context.Background(), st); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to seed sample data: %v\n", err)
				os.Exit(1)
			}
		}

		analyzer := analyze.NewAnalyzer(appConfig.Thresholds)
		srv := mcp.NewServer(st, analyzer)
		if err := srv.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false,
		"run against generated sample data, no GitHub token required")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false,
		"enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(notifyTestCmd)
	rootCmd.AddCommand(mcpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
