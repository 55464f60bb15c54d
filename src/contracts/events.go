package contracts

// Broker topics for pipeline events.
const (
	TopicRunRecorded     = "pipeguard.runs.recorded"
	TopicAnomalyDetected = "pipeguard.anomalies.detected"
)

// RunRecordedEvent is published after a run is persisted.
// Published to: pipeguard.runs.recorded
// Key: {run_id}
type RunRecordedEvent struct {
	Run      Run    `json:"run"`
	Source   string `json:"source"` // provider name, e.g. "github-actions"
	Recorded string `json:"recorded"` // RFC3339
}

// AnomalyDetectedEvent is published after an anomaly is persisted.
// Published to: pipeguard.anomalies.detected
// Key: {run_id}
type AnomalyDetectedEvent struct {
	Anomaly  Anomaly `json:"anomaly"`
	Run      Run     `json:"run"`
	Recorded string  `json:"recorded"` // RFC3339
}
