package tui

import (
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// Scene identifies the screens of the explorer.
type Scene int

const (
	SceneParameters Scene = iota
	SceneResults
	SceneCompare
	SceneHelp
)

// String returns a human-readable scene name.
func (s Scene) String() string {
	switch s {
	case SceneParameters:
		return "Parameters"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene.
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Err error
}

// SimulationCompleteMsg signals that a run has finished.
type SimulationCompleteMsg struct {
	Result *domain.SimulationResult
	Err    error
	// Baseline marks the reference run computed at startup.
	Baseline bool
}
