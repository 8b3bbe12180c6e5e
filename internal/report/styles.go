// Package report renders analysis results for the terminal and prints
// progress while data is fetched.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/swgoh-tools/holotable/internal/platoon"
)

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // headings
	colorAccent  = lipgloss.Color("#FFD700") // totals
	colorSuccess = lipgloss.Color("#00E676") // healthy coverage
	colorDanger  = lipgloss.Color("#FF5252") // critical gaps
	colorWarn    = lipgloss.Color("#FFB74D") // warnings
	colorMuted   = lipgloss.Color("#8C8C8C") // secondary text
)

var (
	styleHeading = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleRank = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleTotal = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCritical = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarn)

	styleHealthy = lipgloss.NewStyle().
			Foreground(colorSuccess)
)

// severityStyle returns the style used for a severity tag.
func severityStyle(s platoon.Severity) lipgloss.Style {
	switch s {
	case platoon.SeverityCritical:
		return styleCritical
	case platoon.SeverityWarning:
		return styleWarning
	default:
		return styleHealthy
	}
}
