// Package tuistyles centralizes the color palette and lipgloss styles of
// the interactive explorer. Components and scenes both import it, so it
// lives outside the tui package to avoid import cycles.
package tuistyles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("39")  // blue
	ColorSecondary = lipgloss.Color("141") // purple
	ColorAccent    = lipgloss.Color("214") // orange
	ColorSuccess   = lipgloss.Color("42")  // green
	ColorDanger    = lipgloss.Color("196") // red
	ColorMuted     = lipgloss.Color("243") // gray
	ColorBorder    = lipgloss.Color("240")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	MetricPositiveStyle = MetricValueStyle.
				Foreground(ColorSuccess)

	MetricNegativeStyle = MetricValueStyle.
				Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Bold(true)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	SliderThumbStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)
)

// FormatMillions renders an EUR-millions value compactly.
func FormatMillions(v float64) string {
	switch {
	case v >= 1_000_000 || v <= -1_000_000:
		return fmt.Sprintf("%.1fT", v/1_000_000)
	case v >= 1_000 || v <= -1_000:
		return fmt.Sprintf("%.1fB", v/1_000)
	default:
		return fmt.Sprintf("%.0fM", v)
	}
}

// FormatCount renders a population count compactly.
func FormatCount(v float64) string {
	switch {
	case v >= 1_000_000 || v <= -1_000_000:
		return fmt.Sprintf("%.2fM", v/1_000_000)
	case v >= 1_000 || v <= -1_000:
		return fmt.Sprintf("%.0fk", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
