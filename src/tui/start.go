package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pipeguard/src/analyze"
	"pipeguard/src/store"
)

// Start runs the dashboard program until the user quits.
func Start(s store.Store, a *analyze.Analyzer, interval time.Duration) error {
	p := tea.NewProgram(NewModel(s, a, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
