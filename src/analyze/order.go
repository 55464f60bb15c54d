package analyze

import (
	"sort"

	"pipeguard/src/contracts"
)

// Chronological returns a copy of runs sorted oldest first. Stores list
// newest first, while every rolling statistic here expects chronological
// order.
func Chronological(runs []contracts.Run) []contracts.Run {
	out := make([]contracts.Run, len(runs))
	copy(out, runs)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// ChronologicalAnomalies returns a copy of anomalies sorted oldest first,
// the counterpart of Chronological for anomaly lists.
func ChronologicalAnomalies(anomalies []contracts.Anomaly) []contracts.Anomaly {
	out := make([]contracts.Anomaly, len(anomalies))
	copy(out, anomalies)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
