package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV.
type CSVFormatter struct{}

// Format generates CSV output for comparison results.
func (cf *CSVFormatter) Format(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"End Population",
		"End Dependency Ratio",
		"Final Debt/GDP %",
		"Peak Debt/GDP %",
		"First Deficit Year",
		"Cumulative Balance MEUR",
		"Population Diff from Base",
		"Debt/GDP Diff from Base",
		"Balance Diff from Base MEUR",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(set.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range set.AlternativeResults {
		if err := writer.Write(cf.formatRow(&set.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return sb.String(), writer.Error()
}

func (cf *CSVFormatter) formatRow(r *ComparisonResult, kind string) []string {
	deficit := ""
	if r.FirstDeficitYear != nil {
		deficit = fmt.Sprintf("%d", *r.FirstDeficitYear)
	}
	return []string{
		r.ScenarioName,
		kind,
		fmt.Sprintf("%.0f", r.EndPopulation),
		fmt.Sprintf("%.1f", r.EndDependencyRatio),
		fmt.Sprintf("%.2f", r.FinalDebtToGDP),
		fmt.Sprintf("%.2f", r.PeakDebtToGDP),
		deficit,
		r.CumulativeBalance.StringFixed(1),
		fmt.Sprintf("%.0f", r.PopulationDiffFromBase),
		fmt.Sprintf("%.2f", r.DebtToGDPDiffFromBase),
		r.BalanceDiffFromBase.StringFixed(1),
	}
}
