// Package config provides configuration management for PipeGuard.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default analyzer thresholds, overridable via environment.
const (
	DefaultDurationWarning     = 120 // seconds
	DefaultDurationCritical    = 300 // seconds
	DefaultFailureRateWarning  = 0.1
	DefaultFailureRateCritical = 0.2
	DefaultRefreshInterval     = 30 // seconds
)

// Thresholds holds the tunable limits used by the analyzer.
type Thresholds struct {
	DurationWarning     int     `yaml:"duration_warning"`
	DurationCritical    int     `yaml:"duration_critical"`
	FailureRateWarning  float64 `yaml:"failure_rate_warning"`
	FailureRateCritical float64 `yaml:"failure_rate_critical"`
}

// SMTP holds the outbound mail settings for alert notifications.
type SMTP struct {
	Server    string `yaml:"server"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
}

// Config holds the application configuration.
type Config struct {
	// GitHubToken authenticates against the GitHub REST API.
	GitHubToken string `yaml:"github_token"`
	// GitHubUser and GitHubRepo identify the repository to poll.
	GitHubUser string `yaml:"github_user"`
	GitHubRepo string `yaml:"github_repo"`

	// Port is the HTTP dashboard listen port.
	Port int `yaml:"port"`

	// PostgresDSN selects the Postgres store when set.
	PostgresDSN string `yaml:"postgres_dsn"`
	// RedisAddr selects the Redis store when set (and no Postgres DSN).
	RedisAddr string `yaml:"redis_addr"`
	// RedpandaBrokers enables the Kafka-compatible event broker when set.
	RedpandaBrokers []string `yaml:"redpanda_brokers"`

	SMTP       SMTP       `yaml:"smtp"`
	Thresholds Thresholds `yaml:"thresholds"`

	// RefreshInterval is the dashboard auto-refresh period in seconds.
	RefreshInterval int `yaml:"refresh_interval"`
}

// LoadFromEnv loads configuration from environment variables.
// Only the GitHub settings are required; everything else has defaults.
func LoadFromEnv() (*Config, error) {
	token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}

	cfg := &Config{
		GitHubToken:     token,
		GitHubUser:      envOr("GITHUB_USER", "kovendhan5"),
		GitHubRepo:      envOr("GITHUB_REPO", "PipeGuard"),
		Port:            envInt("PORT", 8080),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RefreshInterval: envInt("AUTO_REFRESH_INTERVAL", DefaultRefreshInterval),
		SMTP: SMTP{
			Server:    envOr("SMTP_SERVER", "smtp.gmail.com"),
			Port:      envInt("SMTP_PORT", 587),
			Username:  os.Getenv("EMAIL_USERNAME"),
			Password:  os.Getenv("EMAIL_PASSWORD"),
			FromEmail: os.Getenv("FROM_EMAIL"),
		},
		Thresholds: Thresholds{
			DurationWarning:     envInt("DURATION_WARNING_THRESHOLD", DefaultDurationWarning),
			DurationCritical:    envInt("DURATION_CRITICAL_THRESHOLD", DefaultDurationCritical),
			FailureRateWarning:  envFloat("FAILURE_RATE_WARNING", DefaultFailureRateWarning),
			FailureRateCritical: envFloat("FAILURE_RATE_CRITICAL", DefaultFailureRateCritical),
		},
	}

	if brokers := os.Getenv("REDPANDA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.RedpandaBrokers = append(cfg.RedpandaBrokers, b)
			}
		}
	}

	return cfg, nil
}

// Demo returns a configuration with defaults only, for running against
// generated sample data without GitHub credentials.
func Demo() *Config {
	return &Config{
		GitHubUser:      "kovendhan5",
		GitHubRepo:      "PipeGuard",
		Port:            envInt("PORT", 8080),
		RefreshInterval: DefaultRefreshInterval,
		SMTP: SMTP{
			Server: "smtp.gmail.com",
			Port:   587,
		},
		Thresholds: Thresholds{
			DurationWarning:     DefaultDurationWarning,
			DurationCritical:    DefaultDurationCritical,
			FailureRateWarning:  DefaultFailureRateWarning,
			FailureRateCritical: DefaultFailureRateCritical,
		},
	}
}

// MustLoadFromEnv loads configuration from environment variables and panics on error.
// This is useful for initialization in main() where configuration errors should be fatal.
func MustLoadFromEnv() *Config {
	cfg, err := LoadFromEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
