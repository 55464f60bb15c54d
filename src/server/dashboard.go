package server

import (
	"html/template"
	"net/http"
	"time"

	"pipeguard/src/analyze"
	"pipeguard/src/contracts"
)

type dashboardData struct {
	Stats          contracts.PipelineStats
	Health         contracts.HealthReport
	Runs           []contracts.Run
	Anomalies      []contracts.Anomaly
	RefreshSeconds int
	Degraded       string
	GeneratedAt    string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	runs, anomalies, err := s.history(r.Context())
	ordered := analyze.Chronological(runs)

	data := dashboardData{
		Stats:          analyze.Stats(ordered),
		Health:         s.analyzer.HealthReport(ordered, anomalies),
		Runs:           runs,
		Anomalies:      anomalies,
		RefreshSeconds: s.refresh,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		data.Degraded = err.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.log.Error("failed to render dashboard: %v", err)
	}
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>PipeGuard Dashboard</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; background: #f6f8fa; color: #1f2328; }
  h1 { margin-bottom: 0.25rem; }
  .meta { color: #656d76; font-size: 0.85rem; margin-bottom: 1.5rem; }
  .cards { display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 1.5rem; }
  .card { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 1rem 1.5rem; min-width: 10rem; }
  .card .value { font-size: 1.6rem; font-weight: 600; }
  .card .label { color: #656d76; font-size: 0.8rem; text-transform: uppercase; }
  .health-healthy { color: #1a7f37; }
  .health-warning { color: #9a6700; }
  .health-critical { color: #cf222e; }
  .health-unknown { color: #656d76; }
  table { border-collapse: collapse; background: #fff; width: 100%; margin-bottom: 1.5rem; }
  th, td { border: 1px solid #d0d7de; padding: 0.4rem 0.75rem; text-align: left; font-size: 0.9rem; }
  th { background: #f6f8fa; }
  .status-success { color: #1a7f37; font-weight: 600; }
  .status-failure { color: #cf222e; font-weight: 600; }
  .severity-high, .severity-critical { color: #cf222e; }
  .severity-medium { color: #9a6700; }
  .banner { background: #fff8c5; border: 1px solid #d4a72c; border-radius: 6px; padding: 0.5rem 1rem; margin-bottom: 1rem; }
</style>
</head>
<body>
<h1>PipeGuard</h1>
<div class="meta">Generated {{.GeneratedAt}} &middot; auto-refresh every {{.RefreshSeconds}}s</div>
{{if .Degraded}}<div class="banner">Live data unavailable ({{.Degraded}}); showing sample data.</div>{{end}}

<div class="cards">
  <div class="card"><div class="value">{{.Stats.TotalRuns}}</div><div class="label">Total runs</div></div>
  <div class="card"><div class="value">{{printf "%.1f" .Stats.SuccessRate}}%</div><div class="label">Success rate</div></div>
  <div class="card"><div class="value">{{printf "%.1f" .Stats.AvgDuration}}s</div><div class="label">Avg duration</div></div>
  <div class="card"><div class="value">{{.Stats.TotalFailures}}</div><div class="label">Failures</div></div>
  <div class="card"><div class="value health-{{.Health.OverallHealth}}">{{.Health.HealthScore}}</div><div class="label">Health ({{.Health.OverallHealth}})</div></div>
</div>

<h2>Recent runs</h2>
<table>
<tr><th>ID</th><th>Status</th><th>Duration</th><th>Branch</th><th>Author</th><th>Recorded</th></tr>
{{range .Runs}}
<tr>
  <td>{{.ID}}</td>
  <td class="status-{{.Status}}">{{.Status}}</td>
  <td>{{.Duration}}s</td>
  <td>{{.Branch}}</td>
  <td>{{.Author}}</td>
  <td>{{.Timestamp.Format "2006-01-02 15:04"}}</td>
</tr>
{{else}}
<tr><td colspan="6">No runs recorded yet.</td></tr>
{{end}}
</table>

<h2>Anomalies</h2>
<table>
<tr><th>Run</th><th>Issue</th><th>Suggested fix</th><th>Severity</th><th>Detected</th></tr>
{{range .Anomalies}}
<tr>
  <td>{{.RunID}}</td>
  <td>{{.Issue}}</td>
  <td>{{.Fix}}</td>
  <td class="severity-{{.Severity}}">{{.Severity}}</td>
  <td>{{.Timestamp.Format "2006-01-02 15:04"}}</td>
</tr>
{{else}}
<tr><td colspan="5">No anomalies detected.</td></tr>
{{end}}
</table>

<h2>Recommendations</h2>
<ul>
{{range .Health.Trends.Recommendations}}<li>{{.}}</li>{{end}}
</ul>

<script>
(function () {
  var refreshMs = {{.RefreshSeconds}} * 1000;
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  try {
    var ws = new WebSocket(proto + "//" + location.host + "/ws");
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === "refresh") { location.reload(); }
    };
  } catch (e) { /* fall back to timed reload */ }
  setTimeout(function () { location.reload(); }, refreshMs);
})();
</script>
</body>
</html>
`))
