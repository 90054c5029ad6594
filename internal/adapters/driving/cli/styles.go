package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourSuccess = lipgloss.Color("#A6E3A1")
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colourMuted)
	warningStyle = lipgloss.NewStyle().Foreground(colourWarning)
	successStyle = lipgloss.NewStyle().Foreground(colourSuccess)
)

// displayYear returns "n.d." for an unknown year.
func displayYear(year string) string {
	if strings.TrimSpace(year) == "" {
		return "n.d."
	}
	return year
}

// byline joins authors and year the way result lists show them.
func byline(authors []string, year string) string {
	if len(authors) == 0 {
		return displayYear(year)
	}
	names := authors
	if len(names) > 3 {
		names = append(append([]string(nil), names[:3]...), "et al.")
	}
	return strings.Join(names, ", ") + " (" + displayYear(year) + ")"
}
