package monitor

import (
	"pipeguard/src/analyze"
	"pipeguard/src/contracts"
	"pipeguard/src/logger"
	"pipeguard/src/notify"
)

// HealthcheckMonitor assesses overall pipeline health and escalates to
// email when the alert level is high.
type HealthcheckMonitor struct {
	analyzer *analyze.Analyzer
	mailer   *notify.Mailer
	log      logger.Logger
}

// NewHealthcheckMonitor creates a health monitor. mailer may be nil when
// notifications are disabled.
func NewHealthcheckMonitor(analyzer *analyze.Analyzer, mailer *notify.Mailer, log logger.Logger) *HealthcheckMonitor {
	return &HealthcheckMonitor{
		analyzer: analyzer,
		mailer:   mailer,
		log:      log,
	}
}

// Check computes the health report for the given history (newest first, as
// stores return it) and sends a failure alert for high-priority states.
// Alerting is fire-and-forget: a failed send is logged, never returned.
func (h *HealthcheckMonitor) Check(runs []contracts.Run, anomalies []contracts.Anomaly) contracts.HealthReport {
	ordered := analyze.Chronological(runs)
	report := h.analyzer.HealthReport(ordered, anomalies)

	if report.AlertLevel == "high" && len(runs) > 0 {
		h.log.Info("alert generated: %s priority, %s health", report.AlertLevel, report.OverallHealth)
		h.sendAlert(runs, anomalies)
	}

	return report
}

func (h *HealthcheckMonitor) sendAlert(runs []contracts.Run, anomalies []contracts.Anomaly) {
	if h.mailer == nil || !h.mailer.Configured() {
		h.log.Debug("email not configured, skipping alert")
		return
	}

	latestRun := runs[0]
	var latestAnomaly contracts.Anomaly
	if len(anomalies) > 0 {
		latestAnomaly = anomalies[0]
	}

	if err := h.mailer.SendFailureAlert(latestRun, latestAnomaly); err != nil {
		h.log.Error("failed to send failure alert: %v", err)
	}
}
