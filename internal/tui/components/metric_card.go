package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Olliwn/truth-engine-sub001/internal/tui/tuistyles"
)

// MetricCard is a small bordered box with a label and a value.
type MetricCard struct {
	Label string
	Value string
	// Good renders the value green, Bad renders it red; neither leaves
	// the neutral style.
	Good bool
	Bad  bool
}

// Render returns the styled card.
func (m MetricCard) Render() string {
	valueStyle := tuistyles.MetricValueStyle
	if m.Good {
		valueStyle = tuistyles.MetricPositiveStyle
	} else if m.Bad {
		valueStyle = tuistyles.MetricNegativeStyle
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.MetricLabelStyle.Render(m.Label),
		valueStyle.Render(m.Value),
	)
	return tuistyles.BorderStyle.Render(content)
}

// RenderCards lays several cards out horizontally.
func RenderCards(cards ...MetricCard) string {
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = c.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
