// Package scenes holds the per-screen models of the interactive
// explorer.
package scenes

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/tui/components"
	"github.com/Olliwn/truth-engine-sub001/internal/tui/tuistyles"
)

// Slider indices; the order is the on-screen order.
const (
	sliderTFR = iota
	sliderTFRYear
	sliderImmWork
	sliderImmFamily
	sliderImmHumanitarian
	sliderGrowth
	sliderInterest
	sliderUnemployment
	sliderCount
)

// ParametersModel is the scenario editor: one slider per tunable axis.
type ParametersModel struct {
	sliders  [sliderCount]*components.ParameterSlider
	focused  int
	modified bool
	width    int
}

// NewParametersModel creates the editor preloaded with baseline values.
func NewParametersModel() *ParametersModel {
	m := &ParametersModel{}
	m.sliders[sliderTFR] = components.NewParameterSlider(
		"Fertility target (TFR)", 1.25, 0.50, 3.00, 0.05)
	m.sliders[sliderTFRYear] = components.NewParameterSlider(
		"Fertility transition year", 2030, 2026, 2060, 1).WithFormat("%.0f")
	m.sliders[sliderImmWork] = components.NewParameterSlider(
		"Work immigration", 15000, 0, 60000, 1000).WithFormat("%.0f").WithUnit("/yr")
	m.sliders[sliderImmFamily] = components.NewParameterSlider(
		"Family immigration", 15000, 0, 40000, 1000).WithFormat("%.0f").WithUnit("/yr")
	m.sliders[sliderImmHumanitarian] = components.NewParameterSlider(
		"Humanitarian immigration", 10000, 0, 30000, 1000).WithFormat("%.0f").WithUnit("/yr")
	m.sliders[sliderGrowth] = components.NewParameterSlider(
		"Productivity growth", 1.5, -2.0, 4.0, 0.1).WithFormat("%.1f").WithUnit("%")
	m.sliders[sliderInterest] = components.NewParameterSlider(
		"Interest rate", 2.5, 0.0, 6.0, 0.25).WithFormat("%.2f").WithUnit("%")
	m.sliders[sliderUnemployment] = components.NewParameterSlider(
		"Unemployment rate", 7.2, 2.0, 15.0, 0.1).WithFormat("%.1f").WithUnit("%")
	m.sliders[0].IsFocused = true
	return m
}

// Scenario builds the custom scenario the sliders describe.
func (m *ParametersModel) Scenario() domain.ScenarioConfig {
	growth := decimal.NewFromFloat(m.sliders[sliderGrowth].Value / 100)
	interest := decimal.NewFromFloat(m.sliders[sliderInterest].Value / 100)
	unemployment := decimal.NewFromFloat(m.sliders[sliderUnemployment].Value / 100)

	return domain.ScenarioConfig{
		Name: "interactive",
		BirthRate: domain.BirthRateAxis{Custom: &domain.BirthRateTarget{
			TargetTFR:      m.sliders[sliderTFR].Value,
			TransitionYear: int(m.sliders[sliderTFRYear].Value),
		}},
		Immigration: domain.ImmigrationAxis{Custom: &domain.ImmigrationCounts{
			Work:         m.sliders[sliderImmWork].Value,
			Family:       m.sliders[sliderImmFamily].Value,
			Humanitarian: m.sliders[sliderImmHumanitarian].Value,
		}},
		GDPGrowth:    domain.RateAxis{Custom: &growth},
		InterestRate: domain.RateAxis{Custom: &interest},
		Unemployment: domain.RateAxis{Custom: &unemployment},
	}
}

// Modified reports whether any slider moved since the last run.
func (m *ParametersModel) Modified() bool { return m.modified }

// ClearModified resets the modified flag, typically after a run starts.
func (m *ParametersModel) ClearModified() { m.modified = false }

// SetSize updates layout bounds.
func (m *ParametersModel) SetSize(width, _ int) { m.width = width }

// Update handles key presses for the editor.
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.setFocus(m.focused - 1)
	case "down", "j":
		m.setFocus(m.focused + 1)
	case "left", "h":
		m.sliders[m.focused].Decrement()
		m.modified = true
	case "right", "l":
		m.sliders[m.focused].Increment()
		m.modified = true
	}
	return m, nil
}

func (m *ParametersModel) setFocus(idx int) {
	if idx < 0 {
		idx = sliderCount - 1
	}
	if idx >= sliderCount {
		idx = 0
	}
	m.sliders[m.focused].IsFocused = false
	m.focused = idx
	m.sliders[m.focused].IsFocused = true
}

// View renders the editor.
func (m *ParametersModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Scenario parameters"))
	b.WriteString("\n\n")
	for _, s := range m.sliders {
		b.WriteString(s.Render())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.modified {
		b.WriteString(tuistyles.SubtitleStyle.Render("modified, press enter to simulate"))
	} else {
		b.WriteString(tuistyles.SubtitleStyle.Render("up/down select, left/right adjust, enter simulates"))
	}
	return b.String()
}
