package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update routes messages to the active scene and handles global keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case SimulationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		if msg.Baseline {
			m.compareModel.SetBase(msg.Result)
			return m, nil
		}
		m.resultsModel.SetResult(msg.Result)
		m.compareModel.SetCurrent(msg.Result)
		m.currentScene = SceneResults
		return m, nil
	}

	return m.updateScene(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.currentScene = m.nextScene()
		return m, nil

	case "shift+tab":
		m.currentScene = m.prevScene()
		return m, nil

	case "?":
		if m.currentScene == SceneHelp {
			m.currentScene = SceneParameters
		} else {
			m.currentScene = SceneHelp
		}
		return m, nil

	case "enter":
		if m.currentScene == SceneParameters && !m.loading {
			m.loading = true
			m.err = nil
			cfg := m.parametersModel.Scenario()
			m.parametersModel.ClearModified()
			return m, m.simulateCmd(cfg, false)
		}
	}

	return m.updateScene(msg)
}

func (m Model) updateScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}

func (m Model) nextScene() Scene {
	switch m.currentScene {
	case SceneParameters:
		return SceneResults
	case SceneResults:
		return SceneCompare
	case SceneCompare:
		return SceneParameters
	default:
		return SceneParameters
	}
}

func (m Model) prevScene() Scene {
	switch m.currentScene {
	case SceneParameters:
		return SceneCompare
	case SceneResults:
		return SceneParameters
	case SceneCompare:
		return SceneResults
	default:
		return SceneParameters
	}
}
