package compare

import (
	"fmt"
	"strings"
)

// TableFormatter formats comparison results as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios.
func (tf *TableFormatter) Format(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Base scenario: %s\n", set.BaseScenarioName))
	sb.WriteString(fmt.Sprintf("Horizon:       %d-%d\n\n", set.StartYear, set.EndYear))

	nameWidth := 24
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Population",
		numWidth, "Debt/GDP",
		numWidth, "Peak Debt/GDP",
		numWidth, "Cum. Balance",
		numWidth, "First Deficit"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	sb.WriteString(tf.formatRow(set.BaseResult, nameWidth, numWidth, true))
	if len(set.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range set.AlternativeResults {
			sb.WriteString(tf.formatRow(&set.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	if len(set.Recommendations) > 0 {
		sb.WriteString("\n")
		for _, rec := range set.Recommendations {
			sb.WriteString("  * " + rec + "\n")
		}
	}
	return sb.String()
}

func (tf *TableFormatter) formatRow(r *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := r.ScenarioName
	if isBase {
		name += " (base)"
	}
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}

	deficit := "never"
	if r.FirstDeficitYear != nil {
		deficit = fmt.Sprintf("%d", *r.FirstDeficitYear)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, name,
		numWidth, fmt.Sprintf("%.0f", r.EndPopulation),
		numWidth, fmt.Sprintf("%.1f%%", r.FinalDebtToGDP),
		numWidth, fmt.Sprintf("%.1f%%", r.PeakDebtToGDP),
		numWidth, r.CumulativeBalance.StringFixed(0),
		numWidth, deficit)
}
