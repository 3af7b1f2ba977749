package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Olliwn/truth-engine-sub001/internal/calculation"
	"github.com/Olliwn/truth-engine-sub001/internal/tui"
)

func main() {
	startYear, endYear := 1990, 2060

	engine := calculation.NewEngine()
	model := tui.NewModel(engine, startYear, endYear)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
