package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// CSVFormatter exports the full annual series, one row per year.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{
		"Year",
		"TotalPopulation", "Children", "WorkingAge", "Elderly", "DependencyRatio",
		"Births", "Deaths", "NetMigration", "TFR",
		"IncomeTax", "SocialInsurance", "VAT", "TotalContributions",
		"EducationCost", "HealthcareCost", "PensionCost", "BenefitCost", "TotalCosts",
		"ImmigrationImpact",
		"NetBalance", "NetBalanceAdjusted",
		"GDP", "GrowthRate",
		"DebtStock", "InterestExpense", "DebtToGDP", "DeficitToGDP", "SpendingToGDP",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range result.AnnualResults {
		r := &result.AnnualResults[i]
		row := []string{
			fmt.Sprintf("%d", r.Year),
			fmt.Sprintf("%.0f", r.TotalPopulation),
			fmt.Sprintf("%.0f", r.Children),
			fmt.Sprintf("%.0f", r.WorkingAge),
			fmt.Sprintf("%.0f", r.Elderly),
			fmt.Sprintf("%.2f", r.DependencyRatio),
			fmt.Sprintf("%.0f", r.Births),
			fmt.Sprintf("%.0f", r.Deaths),
			fmt.Sprintf("%.0f", r.NetMigration),
			fmt.Sprintf("%.3f", r.TFR),
			r.IncomeTax.StringFixed(1),
			r.SocialInsurance.StringFixed(1),
			r.VAT.StringFixed(1),
			r.TotalContributions.StringFixed(1),
			r.EducationCost.StringFixed(1),
			r.HealthcareCost.StringFixed(1),
			r.PensionCost.StringFixed(1),
			r.BenefitCost.StringFixed(1),
			r.TotalCosts.StringFixed(1),
			r.ImmigrationImpact.StringFixed(1),
			r.NetBalance.StringFixed(1),
			r.NetBalanceAdjusted.StringFixed(1),
			r.GDP.StringFixed(1),
			r.GrowthRate.StringFixed(4),
			r.DebtStock.StringFixed(1),
			r.InterestExpense.StringFixed(1),
			fmt.Sprintf("%.2f", r.DebtToGDP),
			fmt.Sprintf("%.2f", r.DeficitToGDP),
			fmt.Sprintf("%.2f", r.SpendingToGDP),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
