package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestVisualWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"ascii", "hello", 5},
		{"empty", "", 0},
		{"wide runes", "日本語", 6},
		{"mixed", "run 日本", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisualWidth(tt.input); got != tt.want {
				t.Errorf("VisualWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisualWidthIgnoresStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")).Render("failure")
	if got := VisualWidth(styled); got != len("failure") {
		t.Errorf("VisualWidth(styled) = %d, want %d", got, len("failure"))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		ellipsis bool
		want     string
	}{
		{"fits", "short", 10, true, "short"},
		{"exact", "exact", 5, true, "exact"},
		{"truncated with ellipsis", "a very long branch name", 10, true, "a very ..."},
		{"truncated without ellipsis", "abcdefghij", 5, false, "abcde"},
		{"zero width", "anything", 0, true, ""},
		{"trims whitespace", "  padded  ", 20, false, "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen, tt.ellipsis); got != tt.want {
				t.Errorf("Truncate(%q, %d, %v) = %q, want %q",
					tt.input, tt.maxLen, tt.ellipsis, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	got := TruncateAndPad("ok", 6, false)
	if got != "ok    " {
		t.Errorf("TruncateAndPad(\"ok\", 6) = %q, want %q", got, "ok    ")
	}
	if w := VisualWidth(TruncateAndPad("a very long value", 8, true)); w != 8 {
		t.Errorf("padded width = %d, want 8", w)
	}
}
