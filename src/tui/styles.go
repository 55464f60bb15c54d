package tui

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds the customizable color palette for the dashboard UI.
type StyleConfig struct {
	PrimaryBlue   lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	BorderColor   lipgloss.Color

	SuccessColor  lipgloss.Color
	FailureColor  lipgloss.Color
	WarningColor  lipgloss.Color
	CriticalColor lipgloss.Color
}

// DefaultStyles returns the default color palette
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		PrimaryBlue:   lipgloss.Color("#8AB4F8"),
		TextPrimary:   lipgloss.Color("#E8EAED"),
		TextSecondary: lipgloss.Color("#9AA0A6"),
		BorderColor:   lipgloss.Color("#5F6368"),
		SuccessColor:  lipgloss.Color("#34A853"),
		FailureColor:  lipgloss.Color("#EA4335"),
		WarningColor:  lipgloss.Color("#FBBC04"),
		CriticalColor: lipgloss.Color("#EA4335"),
	}
}

// TitleStyle returns the title bar style
func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.PrimaryBlue).
		Bold(true).
		Padding(0, 1)
}

// HelpStyle returns the help line style
func (s *StyleConfig) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary).
		Padding(0, 1)
}

// StatusStyle returns the style for a run status value
func (s *StyleConfig) StatusStyle(status string) lipgloss.Style {
	if status == "success" {
		return lipgloss.NewStyle().Foreground(s.SuccessColor)
	}
	return lipgloss.NewStyle().Foreground(s.FailureColor).Bold(true)
}

// HealthStyle returns the style for an overall health value
func (s *StyleConfig) HealthStyle(health string) lipgloss.Style {
	switch health {
	case "healthy":
		return lipgloss.NewStyle().Foreground(s.SuccessColor).Bold(true)
	case "warning":
		return lipgloss.NewStyle().Foreground(s.WarningColor).Bold(true)
	case "critical":
		return lipgloss.NewStyle().Foreground(s.CriticalColor).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(s.TextSecondary)
	}
}
