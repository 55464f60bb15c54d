package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays settings from a YAML file onto cfg. Environment
// variables win: only fields still at their zero value are filled in,
// except thresholds, which the file may always override.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if c.GitHubToken == "" {
		c.GitHubToken = file.GitHubToken
	}
	if c.GitHubUser == "" {
		c.GitHubUser = file.GitHubUser
	}
	if c.GitHubRepo == "" {
		c.GitHubRepo = file.GitHubRepo
	}
	if c.Port == 0 {
		c.Port = file.Port
	}
	if c.PostgresDSN == "" {
		c.PostgresDSN = file.PostgresDSN
	}
	if c.RedisAddr == "" {
		c.RedisAddr = file.RedisAddr
	}
	if len(c.RedpandaBrokers) == 0 {
		c.RedpandaBrokers = file.RedpandaBrokers
	}
	if c.SMTP.Username == "" {
		c.SMTP = file.SMTP
	}

	if file.Thresholds.DurationWarning > 0 {
		c.Thresholds.DurationWarning = file.Thresholds.DurationWarning
	}
	if file.Thresholds.DurationCritical > 0 {
		c.Thresholds.DurationCritical = file.Thresholds.DurationCritical
	}
	if file.Thresholds.FailureRateWarning > 0 {
		c.Thresholds.FailureRateWarning = file.Thresholds.FailureRateWarning
	}
	if file.Thresholds.FailureRateCritical > 0 {
		c.Thresholds.FailureRateCritical = file.Thresholds.FailureRateCritical
	}
	if file.RefreshInterval > 0 {
		c.RefreshInterval = file.RefreshInterval
	}

	return nil
}
