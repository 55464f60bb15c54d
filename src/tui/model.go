// Package tui provides the terminal dashboard: a live view of recorded
// runs, anomalies and pipeline health backed by the store.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pipeguard/src/analyze"
	"pipeguard/src/contracts"
	"pipeguard/src/store"
)

const (
	runLimit     = 50
	anomalyLimit = 5
	loadTimeout  = 5 * time.Second
)

// historyMsg carries a reloaded snapshot of the store.
type historyMsg struct {
	runs      []contracts.Run
	anomalies []contracts.Anomaly
	err       error
}

// tickMsg triggers a periodic reload.
type tickMsg time.Time

// Model is the Bubble Tea model for the pipeline dashboard.
type Model struct {
	store    store.Store
	analyzer *analyze.Analyzer
	interval time.Duration

	list      list.Model
	anomalies []contracts.Anomaly
	health    contracts.HealthReport
	stats     contracts.PipelineStats
	loadErr   error

	styles         *StyleConfig
	terminalWidth  int
	terminalHeight int
}

// NewModel creates the dashboard model. interval controls how often the
// store is re-read.
func NewModel(s store.Store, a *analyze.Analyzer, interval time.Duration) Model {
	delegate := NewDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return Model{
		store:    s,
		analyzer: a,
		interval: interval,
		list:     l,
		styles:   DefaultStyles(),
	}
}

// Init loads the first snapshot and starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		runs, err := m.store.ListRuns(ctx, runLimit)
		if err != nil {
			return historyMsg{err: err}
		}
		anomalies, err := m.store.ListAnomalies(ctx, anomalyLimit)
		if err != nil {
			return historyMsg{runs: runs, err: err}
		}
		return historyMsg{runs: runs, anomalies: anomalies}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		// Reserve lines for title, summary, anomalies and help.
		listHeight := msg.Height - 9 - anomalyLimit
		if listHeight < 3 {
			listHeight = 3
		}
		m.list.SetSize(msg.Width, listHeight)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.load()
		}

	case tickMsg:
		return m, tea.Batch(m.load(), m.tick())

	case historyMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			ordered := analyze.Chronological(msg.runs)
			m.stats = analyze.Stats(ordered)
			m.health = m.analyzer.HealthReport(ordered, msg.anomalies)
			m.anomalies = msg.anomalies

			items := make([]list.Item, len(msg.runs))
			for i, run := range msg.runs {
				items[i] = Item{Run: run}
			}
			m.list.SetItems(items)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the dashboard: summary header, run table, anomaly list.
func (m Model) View() string {
	if m.terminalHeight == 0 {
		return "Loading pipeline history..."
	}

	var b strings.Builder

	b.WriteString(m.styles.TitleStyle().Render("PipeGuard - Pipeline Dashboard"))
	b.WriteString("\n")

	health := m.styles.HealthStyle(m.health.OverallHealth).Render(
		fmt.Sprintf("%s (%d)", m.health.OverallHealth, m.health.HealthScore))
	summary := fmt.Sprintf("Health: %s │ Runs: %d │ Success: %.1f%% │ Avg: %.1fs",
		health, m.stats.TotalRuns, m.stats.SuccessRate, m.stats.AvgDuration)
	b.WriteString(lipgloss.NewStyle().Padding(0, 1).Render(summary))
	b.WriteString("\n")

	if m.loadErr != nil {
		errLine := fmt.Sprintf("store unavailable: %v", m.loadErr)
		b.WriteString(lipgloss.NewStyle().Foreground(m.styles.FailureColor).Padding(0, 1).Render(errLine))
		b.WriteString("\n")
	}

	header := fmt.Sprintf("  %s %s %s %s %s",
		TruncateAndPad("ID", idWidth, false),
		TruncateAndPad("Status", statusWidth, false),
		TruncateAndPad("Duration", durationWidth, false),
		TruncateAndPad("Branch", branchWidth, false),
		"Recorded",
	)
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Padding(0, 1).Render("Anomalies"))
	b.WriteString("\n")
	if len(m.anomalies) == 0 {
		b.WriteString(m.styles.HelpStyle().Render("none detected"))
		b.WriteString("\n")
	}
	for _, a := range m.anomalies {
		line := fmt.Sprintf("%s run %s: %s (%s)",
			a.Timestamp.Format("01-02 15:04"), a.RunID, a.Issue, a.Severity)
		b.WriteString(m.styles.HelpStyle().Render(Truncate(line, max(20, m.terminalWidth-4), true)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpStyle().Render("↑/↓ navigate • r refresh • q quit"))
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
