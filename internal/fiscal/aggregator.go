// Package fiscal converts a year's population structure into government
// revenue and cost lines at constant reference prices. GDP scaling, cost
// growth premiums and debt dynamics are layered on top by the calculation
// package.
package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/population"
)

// Cost categories used to slot cost lines into the annual result.
const (
	CategoryEducation  = "education"
	CategoryHealthcare = "health"
	CategoryPensions   = "social_protection"
	CategoryBenefits   = "other"
)

// CostLine is one constant-price cost item together with the annual
// growth premium it carries above GDP growth in the adjusted variant.
type CostLine struct {
	Category      string
	Amount        decimal.Decimal // EUR millions at reference prices
	GrowthPremium decimal.Decimal
}

// Snapshot holds one year's fiscal lines at constant reference prices.
type Snapshot struct {
	LaborIncome        decimal.Decimal // EUR millions
	IncomeTax          decimal.Decimal
	SocialInsurance    decimal.Decimal
	VAT                decimal.Decimal
	TotalContributions decimal.Decimal
	Costs              []CostLine
}

// TotalCosts sums all cost lines at constant prices.
func (s *Snapshot) TotalCosts() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Costs {
		total = total.Add(c.Amount)
	}
	return total
}

// Aggregator computes fiscal snapshots for one resolved scenario. The
// base state anchors the population-weighted spending drivers when the
// optional COFOG spending configuration is active.
type Aggregator struct {
	scenario  *domain.ResolvedScenario
	baseState *population.YearState
}

// NewAggregator creates an aggregator for a scenario. baseState is the
// first simulated year; it only matters when spending drivers are set.
func NewAggregator(scenario *domain.ResolvedScenario, baseState *population.YearState) *Aggregator {
	return &Aggregator{scenario: scenario, baseState: baseState}
}

// Compute produces the constant-price fiscal lines for one year's
// population structure.
func (a *Aggregator) Compute(state *population.YearState) Snapshot {
	snap := Snapshot{}

	labor := laborIncome(state, a.scenario.UnemploymentRate)
	snap.LaborIncome = labor
	snap.IncomeTax = labor.Mul(data.IncomeTaxRate)
	snap.SocialInsurance = labor.Mul(data.SocialInsuranceRate)
	snap.VAT = labor.Mul(data.ConsumptionShare).Mul(data.VATRate)
	snap.TotalContributions = snap.IncomeTax.Add(snap.SocialInsurance).Add(snap.VAT)

	if a.scenario.Spending != nil {
		snap.Costs = a.spendingDriverCosts(state)
	} else {
		snap.Costs = defaultCosts(state, a.scenario.UnemploymentRate)
	}
	return snap
}

// laborIncome sums income over the ten deciles and the working ages,
// applying the career income curve and removing the unemployed share.
// The unemployed contribute no labor income but still consume benefits.
func laborIncome(state *population.YearState, unemployment decimal.Decimal) decimal.Decimal {
	employedShare := decimal.NewFromInt(1).Sub(unemployment)

	var total float64
	for age := data.WorkingAgeMin; age <= data.WorkingAgeMax; age++ {
		factor := data.AgeIncomeFactor(age)
		if factor == 0 {
			continue
		}
		persons := state.Cohorts[age][data.Male] + state.Cohorts[age][data.Female]
		perDecile := persons / 10
		for _, income := range data.DecileIncomes {
			total += perDecile * income * factor
		}
	}
	millions := decimal.NewFromFloat(total / 1e6)
	return millions.Mul(employedShare)
}

// defaultCosts is the standard four-category cost model.
func defaultCosts(state *population.YearState, unemployment decimal.Decimal) []CostLine {
	children := decimal.NewFromFloat(state.Children / 1e6)
	working := decimal.NewFromFloat(state.WorkingAge / 1e6)
	elderly := decimal.NewFromFloat(state.Elderly / 1e6)
	total := decimal.NewFromFloat(state.TotalPopulation / 1e6)

	education := children.Mul(data.EducationCostPerChild)

	healthcare := elderly.Mul(data.HealthcarePerElderly).
		Add(children.Mul(data.HealthcarePerChild)).
		Add(working.Mul(data.HealthcarePerWorkingAge))

	pensions := elderly.Mul(data.AveragePension)

	unemployed := working.Mul(unemployment)
	benefits := unemployed.Mul(data.UnemploymentBenefit).
		Add(children.Mul(data.FamilyBenefitPerChild)).
		Add(total.Mul(data.HousingBenefitPerCapita))

	return []CostLine{
		{Category: CategoryEducation, Amount: education},
		{Category: CategoryHealthcare, Amount: healthcare, GrowthPremium: data.HealthcareGrowthPremium},
		{Category: CategoryPensions, Amount: pensions, GrowthPremium: data.PensionGrowthPremium},
		{Category: CategoryBenefits, Amount: benefits},
	}
}

// spendingDriverCosts evaluates the optional COFOG spending configuration:
// each group's base cost moves with its population-weighted driver index
// relative to the base year.
func (a *Aggregator) spendingDriverCosts(state *population.YearState) []CostLine {
	lines := make([]CostLine, 0, len(a.scenario.Spending.Groups))
	for _, g := range a.scenario.Spending.Groups {
		baseDriver := driverIndex(a.baseState, g)
		driver := driverIndex(state, g)

		amount := g.BaseCost
		if baseDriver > 0 {
			amount = g.BaseCost.Mul(decimal.NewFromFloat(driver / baseDriver))
		}
		lines = append(lines, CostLine{
			Category:      g.Group,
			Amount:        amount,
			GrowthPremium: g.GrowthPremium,
		})
	}
	return lines
}

func driverIndex(state *population.YearState, g domain.SpendingGroup) float64 {
	if state == nil {
		return 0
	}
	return g.ChildWeight*state.Children +
		g.WorkingWeight*state.WorkingAge +
		g.ElderlyWeight*state.Elderly
}
