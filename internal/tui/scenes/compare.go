package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/tui/tuistyles"
)

var decimalHundred = decimal.NewFromInt(100)

// CompareModel diffs the interactive scenario against the baseline run.
type CompareModel struct {
	base    *domain.SimulationResult
	current *domain.SimulationResult
	width   int
}

// NewCompareModel creates an empty comparison scene.
func NewCompareModel() *CompareModel {
	return &CompareModel{width: 80}
}

// SetBase installs the baseline run.
func (m *CompareModel) SetBase(result *domain.SimulationResult) { m.base = result }

// SetCurrent installs the latest interactive run.
func (m *CompareModel) SetCurrent(result *domain.SimulationResult) { m.current = result }

// SetSize updates layout bounds.
func (m *CompareModel) SetSize(width, _ int) { m.width = width }

// Update is a no-op; the scene is read-only.
func (m *CompareModel) Update(tea.Msg) (*CompareModel, tea.Cmd) { return m, nil }

// View renders the comparison table.
func (m *CompareModel) View() string {
	if m.base == nil || m.current == nil {
		return tuistyles.SubtitleStyle.Render("Run a scenario first; the comparison needs both the baseline and your run.")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Your scenario vs. baseline"))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-28s %14s %14s %14s", "Metric", "Baseline", "Yours", "Diff")
	b.WriteString(tuistyles.ParameterLabelStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(header)) + "\n")

	baseLast := m.base.AnnualResults[len(m.base.AnnualResults)-1]
	curLast := m.current.AnnualResults[len(m.current.AnnualResults)-1]

	b.WriteString(row("End population",
		tuistyles.FormatCount(baseLast.TotalPopulation),
		tuistyles.FormatCount(curLast.TotalPopulation),
		tuistyles.FormatCount(curLast.TotalPopulation-baseLast.TotalPopulation)))
	b.WriteString(row("Dependency ratio",
		fmt.Sprintf("%.1f", baseLast.DependencyRatio),
		fmt.Sprintf("%.1f", curLast.DependencyRatio),
		fmt.Sprintf("%+.1f", curLast.DependencyRatio-baseLast.DependencyRatio)))
	b.WriteString(row("Final debt-to-GDP",
		fmt.Sprintf("%.1f%%", m.base.Summary.FinalDebtToGDP),
		fmt.Sprintf("%.1f%%", m.current.Summary.FinalDebtToGDP),
		fmt.Sprintf("%+.1f", m.current.Summary.FinalDebtToGDP-m.base.Summary.FinalDebtToGDP)))
	b.WriteString(row("Cumulative balance",
		tuistyles.FormatMillions(m.base.Summary.CumulativeBalanceAdjusted.InexactFloat64()),
		tuistyles.FormatMillions(m.current.Summary.CumulativeBalanceAdjusted.InexactFloat64()),
		tuistyles.FormatMillions(m.current.Summary.CumulativeBalanceAdjusted.
			Sub(m.base.Summary.CumulativeBalanceAdjusted).InexactFloat64())))
	b.WriteString(row("First deficit year",
		deficitLabel(m.base.Summary.FirstDeficitYear),
		deficitLabel(m.current.Summary.FirstDeficitYear),
		""))
	b.WriteString(row("Total interest paid",
		tuistyles.FormatMillions(m.base.Summary.TotalInterestPaid.InexactFloat64()),
		tuistyles.FormatMillions(m.current.Summary.TotalInterestPaid.InexactFloat64()),
		""))

	return b.String()
}

func row(label, base, cur, diff string) string {
	return fmt.Sprintf("%-28s %14s %14s %14s\n", label, base, cur, diff)
}

func deficitLabel(year *int) string {
	if year == nil {
		return "never"
	}
	return fmt.Sprintf("%d", *year)
}
