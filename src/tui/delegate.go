package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Column widths for the run table.
const (
	idWidth       = 12
	statusWidth   = 9
	durationWidth = 8
	branchWidth   = 18
	timeWidth     = 16
)

// Delegate renders recorded runs as table rows.
type Delegate struct {
	styles *StyleConfig
}

// NewDelegate creates a run table delegate with default styles
func NewDelegate() Delegate {
	return Delegate{styles: DefaultStyles()}
}

// Height returns the height of a list item
func (d Delegate) Height() int { return 1 }

// Spacing returns spacing between items
func (d Delegate) Spacing() int { return 0 }

// Update handles item updates
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render writes one run row, highlighting the selected entry.
func (d Delegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(Item)
	if !ok {
		return
	}
	run := item.Run

	row := fmt.Sprintf("%s %s %s %s %s",
		TruncateAndPad(run.ID, idWidth, true),
		d.styles.StatusStyle(run.Status).Render(TruncateAndPad(run.Status, statusWidth, false)),
		TruncateAndPad(fmt.Sprintf("%ds", run.Duration), durationWidth, false),
		TruncateAndPad(run.Branch, branchWidth, true),
		run.Timestamp.Format("2006-01-02 15:04"),
	)

	if index == m.Index() {
		cursor := lipgloss.NewStyle().Foreground(d.styles.PrimaryBlue).Render("► ")
		fmt.Fprint(w, cursor+row)
		return
	}
	fmt.Fprint(w, "  "+row)
}
