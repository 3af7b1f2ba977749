package output

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// ConsoleFormatter renders a human-readable summary plus a condensed
// annual table, one row every five years and always the final year.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "SIMULATION: %s (%d-%d)\n", result.Scenario, result.StartYear, result.EndYear)
	buf.WriteString(strings.Repeat("=", 100) + "\n\n")

	s := result.Summary
	fmt.Fprintf(buf, "Peak surplus:          %s MEUR in %d\n", s.PeakSurplusAmount.StringFixed(0), s.PeakSurplusYear)
	if s.FirstDeficitYear != nil {
		fmt.Fprintf(buf, "First deficit year:    %d\n", *s.FirstDeficitYear)
	} else {
		fmt.Fprintf(buf, "First deficit year:    never\n")
	}
	fmt.Fprintf(buf, "Cumulative balance:    %s MEUR (GDP-adjusted %s)\n",
		s.CumulativeBalance.StringFixed(0), s.CumulativeBalanceAdjusted.StringFixed(0))
	fmt.Fprintf(buf, "Peak debt-to-GDP:      %s in %d\n", formatRatio(s.PeakDebtToGDP), s.PeakDebtToGDPYear)
	fmt.Fprintf(buf, "Final debt stock:      %s MEUR (%s of GDP)\n",
		s.FinalDebtStock.StringFixed(0), formatRatio(s.FinalDebtToGDP))
	fmt.Fprintf(buf, "Total interest paid:   %s MEUR\n", s.TotalInterestPaid.StringFixed(0))
	if s.BreakevenGrowthRate != nil {
		fmt.Fprintf(buf, "Breakeven growth:      %s%%\n",
			s.BreakevenGrowthRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	} else {
		fmt.Fprintf(buf, "Breakeven growth:      none within search bounds\n")
	}
	if s.MultiplierGrowthDrag != nil {
		fmt.Fprintf(buf, "Avg multiplier drag:   %s%%\n",
			s.MultiplierGrowthDrag.Mul(decimal.NewFromInt(100)).StringFixed(3))
	}
	buf.WriteString("\n")

	fmt.Fprintf(buf, "%-6s %12s %10s %8s %12s %12s %12s %10s\n",
		"Year", "Population", "Dep.ratio", "TFR", "Balance", "GDP", "Debt", "Debt/GDP")
	buf.WriteString(strings.Repeat("-", 100) + "\n")

	for i := range result.AnnualResults {
		r := &result.AnnualResults[i]
		if r.Year%5 != 0 && r.Year != result.EndYear {
			continue
		}
		fmt.Fprintf(buf, "%-6d %12.0f %10s %8.2f %12s %12s %12s %10s\n",
			r.Year,
			r.TotalPopulation,
			formatRatio(r.DependencyRatio),
			r.TFR,
			r.NetBalanceAdjusted.StringFixed(0),
			r.GDP.StringFixed(0),
			r.DebtStock.StringFixed(0),
			formatRatio(r.DebtToGDP))
	}
	return buf.Bytes(), nil
}

// formatRatio renders a percentage ratio, keeping the sentinel visible
// when the value is non-finite.
func formatRatio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v)
}
