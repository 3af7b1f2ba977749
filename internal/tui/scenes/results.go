package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/tui/components"
	"github.com/Olliwn/truth-engine-sub001/internal/tui/tuistyles"
)

// ResultsModel shows the outcome of the most recent simulation run: the
// headline metrics plus debt-to-GDP and population charts.
type ResultsModel struct {
	result *domain.SimulationResult
	chart  int // 0 debt-to-GDP, 1 population, 2 balance
	width  int
	height int
}

// NewResultsModel creates an empty results scene.
func NewResultsModel() *ResultsModel {
	return &ResultsModel{width: 80, height: 24}
}

// SetResult installs a finished run.
func (m *ResultsModel) SetResult(result *domain.SimulationResult) {
	m.result = result
}

// SetSize updates layout bounds.
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update cycles the active chart.
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		m.chart = (m.chart + 2) % 3
	case "right", "l", "c":
		m.chart = (m.chart + 1) % 3
	}
	return m, nil
}

// View renders the results scene.
func (m *ResultsModel) View() string {
	if m.result == nil {
		return tuistyles.SubtitleStyle.Render("No results yet. Press enter on the parameters scene to simulate.")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render(
		fmt.Sprintf("Results: %s (%d-%d)", m.result.Scenario, m.result.StartYear, m.result.EndYear)))
	b.WriteString("\n\n")
	b.WriteString(m.renderMetrics())
	b.WriteString("\n")
	b.WriteString(m.renderChart())
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("left/right switches chart"))
	return b.String()
}

func (m *ResultsModel) renderMetrics() string {
	s := m.result.Summary
	last := m.result.AnnualResults[len(m.result.AnnualResults)-1]

	deficit := "never"
	if s.FirstDeficitYear != nil {
		deficit = fmt.Sprintf("%d", *s.FirstDeficitYear)
	}
	breakeven := "n/a"
	if s.BreakevenGrowthRate != nil {
		breakeven = s.BreakevenGrowthRate.Mul(decimalHundred).StringFixed(2) + "%"
	}

	return components.RenderCards(
		components.MetricCard{
			Label: "Population " + fmt.Sprintf("%d", last.Year),
			Value: tuistyles.FormatCount(last.TotalPopulation),
		},
		components.MetricCard{
			Label: "Debt-to-GDP",
			Value: fmt.Sprintf("%.1f%%", s.FinalDebtToGDP),
			Bad:   s.FinalDebtToGDP > 90,
			Good:  s.FinalDebtToGDP < 60,
		},
		components.MetricCard{
			Label: "First deficit",
			Value: deficit,
			Good:  s.FirstDeficitYear == nil,
		},
		components.MetricCard{
			Label: "Cum. balance",
			Value: tuistyles.FormatMillions(s.CumulativeBalanceAdjusted.InexactFloat64()),
			Bad:   s.CumulativeBalanceAdjusted.IsNegative(),
			Good:  s.CumulativeBalanceAdjusted.IsPositive(),
		},
		components.MetricCard{
			Label: "Breakeven growth",
			Value: breakeven,
		},
	)
}

func (m *ResultsModel) renderChart() string {
	series := make([]float64, len(m.result.AnnualResults))
	var title string
	switch m.chart {
	case 1:
		title = "Total population"
		for i := range m.result.AnnualResults {
			series[i] = m.result.AnnualResults[i].TotalPopulation
		}
	case 2:
		title = "Adjusted balance (MEUR)"
		for i := range m.result.AnnualResults {
			series[i] = m.result.AnnualResults[i].NetBalanceAdjusted.InexactFloat64()
		}
	default:
		title = "Debt-to-GDP (%)"
		for i := range m.result.AnnualResults {
			series[i] = m.result.AnnualResults[i].DebtToGDP
		}
	}

	chart := components.NewASCIIChart(title, m.width-4, 10)
	chart.Series = series
	chart.StartLabel = fmt.Sprintf("%d", m.result.StartYear)
	chart.EndLabel = fmt.Sprintf("%d", m.result.EndYear)
	return chart.Render()
}
