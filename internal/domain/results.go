package domain

import (
	"github.com/shopspring/decimal"
)

// AnnualResult is the complete simulated state of one calendar year.
// Monetary fields are EUR millions at reference-year prices; ratio fields
// stay float64 so degenerate inputs surface as NaN/Inf sentinels instead
// of aborting the run.
type AnnualResult struct {
	Year int `json:"year"`

	// Demographics
	TotalPopulation float64 `json:"totalPopulation"`
	Children        float64 `json:"children"`   // ages 0-14
	WorkingAge      float64 `json:"workingAge"` // ages 15-64
	Elderly         float64 `json:"elderly"`    // ages 65+
	DependencyRatio float64 `json:"dependencyRatio"`
	Births          float64 `json:"births"`
	Deaths          float64 `json:"deaths"`
	NetMigration    float64 `json:"netMigration"`
	TFR             float64 `json:"tfr"`

	// Immigration detail
	ImmigrationWork         float64         `json:"immigrationWork"`
	ImmigrationFamily       float64         `json:"immigrationFamily"`
	ImmigrationHumanitarian float64         `json:"immigrationHumanitarian"`
	ImmigrationImpact       decimal.Decimal `json:"immigrationImpact"` // net fiscal impact of all arrival cohorts
	ImpactWork              decimal.Decimal `json:"impactWork"`
	ImpactFamily            decimal.Decimal `json:"impactFamily"`
	ImpactHumanitarian      decimal.Decimal `json:"impactHumanitarian"`

	// Revenue lines
	IncomeTax          decimal.Decimal `json:"incomeTax"`
	SocialInsurance    decimal.Decimal `json:"socialInsurance"`
	VAT                decimal.Decimal `json:"vat"`
	TotalContributions decimal.Decimal `json:"totalContributions"`

	// Cost lines
	EducationCost  decimal.Decimal `json:"educationCost"`
	HealthcareCost decimal.Decimal `json:"healthcareCost"`
	PensionCost    decimal.Decimal `json:"pensionCost"`
	BenefitCost    decimal.Decimal `json:"benefitCost"`
	TotalCosts     decimal.Decimal `json:"totalCosts"`

	// Balances, both variants retained
	NetBalance         decimal.Decimal `json:"netBalance"`         // base: costs frozen at reference level
	NetBalanceAdjusted decimal.Decimal `json:"netBalanceAdjusted"` // realistic: costs carry growth premiums

	// Macro
	GDP              decimal.Decimal `json:"gdp"`
	GrowthRate       decimal.Decimal `json:"growthRate"` // productivity + workforce change
	UnemploymentRate decimal.Decimal `json:"unemploymentRate"`
	SpendingToGDP    float64         `json:"spendingToGdp"`
	DeficitToGDP     float64         `json:"deficitToGdp"`

	// Debt
	DebtStock       decimal.Decimal `json:"debtStock"`
	DebtToGDP       float64         `json:"debtToGdp"`
	InterestExpense decimal.Decimal `json:"interestExpense"`
	PrimaryBalance  decimal.Decimal `json:"primaryBalance"`
}

// Summary aggregates a full run after the fold completes.
type Summary struct {
	PeakSurplusYear   int             `json:"peakSurplusYear"`
	PeakSurplusAmount decimal.Decimal `json:"peakSurplusAmount"`
	FirstDeficitYear  *int            `json:"firstDeficitYear,omitempty"` // nil when balance never turns negative

	CumulativeBalance         decimal.Decimal `json:"cumulativeBalance"`
	CumulativeBalanceAdjusted decimal.Decimal `json:"cumulativeBalanceAdjusted"`

	PeakDebtToGDP     float64         `json:"peakDebtToGdp"`
	PeakDebtToGDPYear int             `json:"peakDebtToGdpYear"`
	FinalDebtStock    decimal.Decimal `json:"finalDebtStock"`
	FinalDebtToGDP    float64         `json:"finalDebtToGdp"`
	TotalInterestPaid decimal.Decimal `json:"totalInterestPaid"`

	// Constant growth rate that zeroes the cumulative adjusted balance at
	// the horizon; nil when the bisection fails to bracket a root.
	BreakevenGrowthRate *decimal.Decimal `json:"breakevenGrowthRate,omitempty"`

	// Second-order deficit feedback on growth, present only when the
	// scenario enables the fiscal multiplier.
	MultiplierGrowthDrag *decimal.Decimal `json:"multiplierGrowthDrag,omitempty"`
}

// SimulationResult is the output of one full scenario run: a dense,
// strictly year-ordered annual series plus its summary.
type SimulationResult struct {
	Scenario      string         `json:"scenario"`
	StartYear     int            `json:"startYear"`
	EndYear       int            `json:"endYear"`
	AnnualResults []AnnualResult `json:"annualResults"`
	Summary       Summary        `json:"summary"`
}

// ResultForYear returns the annual record for a calendar year, or nil when
// the year falls outside the simulated range.
func (r *SimulationResult) ResultForYear(year int) *AnnualResult {
	idx := year - r.StartYear
	if idx < 0 || idx >= len(r.AnnualResults) {
		return nil
	}
	return &r.AnnualResults[idx]
}

// PyramidBand is one age band of a population pyramid. Age 100 absorbs
// everyone aged 100 and above.
type PyramidBand struct {
	Age    int     `json:"age"`
	Male   float64 `json:"male"`
	Female float64 `json:"female"`
}
