package diagram

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for diagram rendering.
type Styles struct {
	// Command is the style for command names (bold).
	Command lipgloss.Style

	// Option is the style for option identifiers (cyan).
	Option lipgloss.Style

	// Value is the style for argument values (yellow).
	Value lipgloss.Style

	// Implicit is the style for the marker of results filled from defaults (faint).
	Implicit lipgloss.Style

	// Error is the style for error markers and unmatched tokens (red).
	Error lipgloss.Style
}

// DefaultStyles returns the standard styles for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Command:  lipgloss.NewStyle().Bold(true),
		Option:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Yellow
		Implicit: lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")), // Red
	}
}

// PlainStyles returns styles that leave text untouched.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()

	return Styles{
		Command:  plain,
		Option:   plain,
		Value:    plain,
		Implicit: plain,
		Error:    plain,
	}
}
