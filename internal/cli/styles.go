package cli

import "github.com/charmbracelet/lipgloss"

const (
	dimColorCode   = "240" // Dark gray
	errorColorCode = "196" // Red
	labelColorCode = "86"  // Cyan
)

// errorStyle returns the style for the error line
func errorStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().
		Foreground(lipgloss.Color(errorColorCode)).
		Bold(true)
}

func dimStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(lipgloss.Color(dimColorCode))
}

func labelStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(lipgloss.Color(labelColorCode))
}
