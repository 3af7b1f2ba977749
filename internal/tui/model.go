// Package tui implements the interactive scenario explorer: sliders for
// the demographic and macro levers, result charts and a baseline
// comparison, all driven by the same engine the CLI uses.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Olliwn/truth-engine-sub001/internal/calculation"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/tui/scenes"
	"github.com/Olliwn/truth-engine-sub001/internal/tui/tuistyles"
)

// Model is the application state.
type Model struct {
	currentScene Scene

	width  int
	height int

	engine    *calculation.Engine
	startYear int
	endYear   int

	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel

	loading bool
	spinner spinner.Model
	err     error
}

// NewModel creates the application model.
func NewModel(engine *calculation.Engine, startYear, endYear int) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)),
	)
	return Model{
		currentScene:    SceneParameters,
		engine:          engine,
		startYear:       startYear,
		endYear:         endYear,
		parametersModel: scenes.NewParametersModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(),
		spinner:         sp,
		width:           80,
		height:          24,
	}
}

// Init kicks off the baseline run so the compare scene has a reference.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.simulateCmd(domain.ScenarioConfig{Name: "baseline"}, true),
	)
}

// simulateCmd runs one scenario off the UI goroutine.
func (m Model) simulateCmd(cfg domain.ScenarioConfig, baseline bool) tea.Cmd {
	engine, start, end := m.engine, m.startYear, m.endYear
	return func() tea.Msg {
		result, err := engine.SimulateRange(context.Background(), start, end, cfg)
		return SimulationCompleteMsg{Result: result, Err: err, Baseline: baseline}
	}
}
