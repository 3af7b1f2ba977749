// Package compare runs several named scenarios against a base and diffs
// their headline metrics.
package compare

import (
	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// ComparisonResult represents a single scenario run with its comparison
// metrics against the base.
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description,omitempty"`

	// Key metrics at the horizon
	EndYear            int              `json:"endYear"`
	EndPopulation      float64          `json:"endPopulation"`
	EndDependencyRatio float64          `json:"endDependencyRatio"`
	FinalDebtToGDP     float64          `json:"finalDebtToGdp"`
	PeakDebtToGDP      float64          `json:"peakDebtToGdp"`
	FirstDeficitYear   *int             `json:"firstDeficitYear,omitempty"`
	CumulativeBalance  decimal.Decimal  `json:"cumulativeBalance"`
	BreakevenRate      *decimal.Decimal `json:"breakevenRate,omitempty"`

	// Differences against the base scenario; zero on the base itself.
	PopulationDiffFromBase float64         `json:"populationDiffFromBase"`
	DebtToGDPDiffFromBase  float64         `json:"debtToGdpDiffFromBase"`
	BalanceDiffFromBase    decimal.Decimal `json:"balanceDiffFromBase"`

	// Full result kept for formatters that need the annual series.
	Result *domain.SimulationResult `json:"-"`
}

// ComparisonSet represents a base scenario and its alternatives.
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	StartYear          int                `json:"startYear"`
	EndYear            int                `json:"endYear"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations,omitempty"`
}

// Results returns base plus alternatives in run order.
func (cs *ComparisonSet) Results() []*ComparisonResult {
	out := make([]*ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, cs.BaseResult)
	}
	for i := range cs.AlternativeResults {
		out = append(out, &cs.AlternativeResults[i])
	}
	return out
}
