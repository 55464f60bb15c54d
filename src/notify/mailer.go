// Package notify sends alert emails for pipeline events.
package notify

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"pipeguard/src/config"
	"pipeguard/src/contracts"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("email configuration not found")

// sendFunc matches smtp.SendMail; swapped out in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends notifications through a configured SMTP relay.
// Mail goes to the configured account itself (operator mailbox).
type Mailer struct {
	cfg          config.SMTP
	dashboardURL string
	send         sendFunc
}

// NewMailer creates a Mailer from SMTP settings. dashboardURL is included
// in message bodies so recipients can jump straight to the dashboard.
func NewMailer(cfg config.SMTP, dashboardURL string) *Mailer {
	return &Mailer{
		cfg:          cfg,
		dashboardURL: dashboardURL,
		send:         smtp.SendMail,
	}
}

// Configured reports whether the mailer has credentials to send with.
func (m *Mailer) Configured() bool {
	return m.cfg.Username != ""
}

// SendFailureAlert emails an alert for a failed run and its anomaly.
func (m *Mailer) SendFailureAlert(run contracts.Run, anomaly contracts.Anomaly) error {
	subject := fmt.Sprintf("Pipeline Failure Alert - Run #%s", orUnknown(run.ID))

	var b strings.Builder
	b.WriteString("Pipeline Failure Detected!\n\n")
	b.WriteString("Run Details:\n")
	fmt.Fprintf(&b, "- Run ID: %s\n", orUnknown(run.ID))
	fmt.Fprintf(&b, "- Status: %s\n", orUnknown(run.Status))
	fmt.Fprintf(&b, "- Duration: %d seconds\n", run.Duration)
	fmt.Fprintf(&b, "- Branch: %s\n", orUnknown(run.Branch))
	fmt.Fprintf(&b, "- Timestamp: %s\n", run.Timestamp.Format("2006-01-02 15:04:05 MST"))
	b.WriteString("\nAnomaly Details:\n")
	fmt.Fprintf(&b, "- Issue: %s\n", orUnknown(anomaly.Issue))
	fmt.Fprintf(&b, "- Suggested Fix: %s\n", orDefault(anomaly.Fix, "No suggestion available"))
	fmt.Fprintf(&b, "- Severity: %s\n", orUnknown(anomaly.Severity))
	b.WriteString("\nPlease investigate and resolve the issue promptly.\n")
	fmt.Fprintf(&b, "\nView Dashboard: %s\n", m.dashboardURL)

	return m.sendMail(subject, b.String())
}

// SendPerformanceSummary emails the daily statistics digest.
func (m *Mailer) SendPerformanceSummary(stats contracts.PipelineStats, recommendations []string) error {
	subject := "Daily Pipeline Performance Summary"

	var b strings.Builder
	b.WriteString("Daily Pipeline Performance Summary\n\n")
	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "- Total Runs: %d\n", stats.TotalRuns)
	fmt.Fprintf(&b, "- Success Rate: %.1f%%\n", stats.SuccessRate)
	fmt.Fprintf(&b, "- Average Duration: %.1f seconds\n", stats.AvgDuration)
	fmt.Fprintf(&b, "- Total Failures: %d\n", stats.TotalFailures)
	b.WriteString("\nRecommendations:\n")
	for _, rec := range recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	fmt.Fprintf(&b, "\nView Dashboard: %s\n", m.dashboardURL)

	return m.sendMail(subject, b.String())
}

// SendTest sends a canned notification to verify the SMTP settings.
func (m *Mailer) SendTest() error {
	return m.SendFailureAlert(
		contracts.Run{ID: "test-123", Status: contracts.StatusFailure, Duration: 85},
		contracts.Anomaly{Issue: "Test notification", Fix: "This is a test", Severity: contracts.SeverityLow},
	)
}

func (m *Mailer) sendMail(subject, body string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	from := m.cfg.FromEmail
	if from == "" {
		from = m.cfg.Username
	}
	to := m.cfg.Username

	msg := buildMessage(from, to, subject, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Server, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Server)

	if err := m.send(addr, auth, from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email notification: %w", err)
	}
	return nil
}

// buildMessage assembles an RFC 822 style plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
