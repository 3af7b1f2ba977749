package breakeven

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatResult renders one solve as a short console report.
func FormatResult(r *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Break-even search: %s\n", r.Target)
	if !r.Success {
		fmt.Fprintf(&b, "  No solution: %s\n", r.ConvergenceInfo)
		return b.String()
	}

	switch r.Target {
	case TargetGrowthRate:
		fmt.Fprintf(&b, "  Required growth rate:  %s%%\n",
			r.OptimalRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	case TargetTFR:
		fmt.Fprintf(&b, "  Required TFR target:   %.2f\n", *r.OptimalTFR)
	case TargetImmigration:
		fmt.Fprintf(&b, "  Required immigration:  %.0f persons/year\n", *r.OptimalImmigration)
	}
	fmt.Fprintf(&b, "  Iterations:            %d\n", r.Iterations)
	fmt.Fprintf(&b, "  %s\n", r.ConvergenceInfo)

	if s := r.Summary; s != nil {
		fmt.Fprintf(&b, "  Final debt stock:      %s MEUR\n", s.FinalDebtStock.StringFixed(0))
		fmt.Fprintf(&b, "  Final debt-to-GDP:     %.1f%%\n", s.FinalDebtToGDP)
		fmt.Fprintf(&b, "  Cumulative balance:    %s MEUR\n", s.CumulativeBalanceAdjusted.StringFixed(0))
	}
	return b.String()
}

// FormatMulti renders the all-lever report.
func FormatMulti(m *MultiResult) string {
	var b strings.Builder
	b.WriteString("Break-even search across all levers\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	for i := range m.Results {
		b.WriteString(FormatResult(&m.Results[i]))
		b.WriteString("\n")
	}
	b.WriteString("Recommendations:\n")
	for _, rec := range m.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}
	return b.String()
}
