package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Olliwn/truth-engine-sub001/internal/tui/tuistyles"
)

// View renders the title bar, the active scene and the status bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("Population & Fiscal Simulator"))
	b.WriteString("  ")
	b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d-%d  [%s]", m.startYear, m.endYear, m.currentScene)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(tuistyles.ErrorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	switch m.currentScene {
	case SceneParameters:
		b.WriteString(m.parametersModel.View())
	case SceneResults:
		b.WriteString(m.resultsModel.View())
	case SceneCompare:
		b.WriteString(m.compareModel.View())
	case SceneHelp:
		b.WriteString(m.helpView())
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar())

	return tuistyles.AppStyle.Render(b.String())
}

func (m Model) statusBar() string {
	if m.loading {
		return m.spinner.View() + tuistyles.StatusBarStyle.Render(" running simulation...")
	}

	keys := []struct{ key, action string }{
		{"tab", "next scene"},
		{"enter", "run"},
		{"?", "help"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, tuistyles.StatusKeyStyle.Render(k.key)+" "+k.action)
	}
	bar := strings.Join(parts, "   ")
	if m.parametersModel.Modified() {
		bar += "   " + tuistyles.StatusKeyStyle.Render("*") + " unsaved changes"
	}
	return tuistyles.StatusBarStyle.Render(bar)
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"tab / shift+tab", "cycle scenes"},
		{"up/down, k/j", "select parameter"},
		{"left/right, h/l", "adjust parameter / switch chart"},
		{"enter", "run simulation with current parameters"},
		{"?", "toggle this help"},
		{"q, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(tuistyles.SubtitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			tuistyles.StatusKeyStyle.Render(fmt.Sprintf("%-16s", r[0])), r[1]))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(
		"Adjust the levers on the parameters scene and press enter to simulate.\n" +
			"The compare scene shows the current run against the baseline presets."))
	return b.String()
}
