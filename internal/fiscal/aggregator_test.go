package fiscal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/population"
)

// testState builds a population state with the given head counts spread
// over representative single ages.
func testState(children, working, elderly float64) *population.YearState {
	s := &population.YearState{Year: 2024}
	s.Cohorts[10][data.Male] = children / 2
	s.Cohorts[10][data.Female] = children / 2
	s.Cohorts[40][data.Male] = working / 2
	s.Cohorts[40][data.Female] = working / 2
	s.Cohorts[75][data.Male] = elderly / 2
	s.Cohorts[75][data.Female] = elderly / 2
	s.Children = children
	s.WorkingAge = working
	s.Elderly = elderly
	s.TotalPopulation = children + working + elderly
	return s
}

func testScenario(unemployment float64) *domain.ResolvedScenario {
	return &domain.ResolvedScenario{
		Name:             "test",
		UnemploymentRate: decimal.NewFromFloat(unemployment),
	}
}

func TestComputeRevenueLines(t *testing.T) {
	sc := testScenario(0)
	state := testState(0, 1_000_000, 0)

	snap := NewAggregator(sc, state).Compute(state)

	// One million workers at age 40, mean decile income x career factor.
	var mean float64
	for _, d := range data.DecileIncomes {
		mean += d
	}
	mean /= 10
	wantLabor := mean * data.AgeIncomeFactor(40) * 1_000_000 / 1e6

	assert.InDelta(t, wantLabor, snap.LaborIncome.InexactFloat64(), 1e-3)
	assert.True(t, snap.IncomeTax.Equal(snap.LaborIncome.Mul(data.IncomeTaxRate)))
	assert.True(t, snap.SocialInsurance.Equal(snap.LaborIncome.Mul(data.SocialInsuranceRate)))
	assert.True(t, snap.VAT.Equal(snap.LaborIncome.Mul(data.ConsumptionShare).Mul(data.VATRate)))
	assert.True(t, snap.TotalContributions.Equal(
		snap.IncomeTax.Add(snap.SocialInsurance).Add(snap.VAT)))
}

func TestUnemploymentScalesLaborIncome(t *testing.T) {
	state := testState(0, 1_000_000, 0)

	full := NewAggregator(testScenario(0), state).Compute(state)
	slack := NewAggregator(testScenario(0.10), state).Compute(state)

	want := full.LaborIncome.Mul(decimal.NewFromFloat(0.90))
	assert.True(t, slack.LaborIncome.Equal(want),
		"got %s want %s", slack.LaborIncome, want)
}

func TestDefaultCostCategories(t *testing.T) {
	sc := testScenario(0.072)
	state := testState(800_000, 3_400_000, 1_300_000)

	snap := NewAggregator(sc, state).Compute(state)
	require.Len(t, snap.Costs, 4)

	byCat := map[string]CostLine{}
	for _, c := range snap.Costs {
		byCat[c.Category] = c
	}

	education := byCat[CategoryEducation]
	assert.InDelta(t, 0.8*9800, education.Amount.InexactFloat64(), 1e-6)
	assert.True(t, education.GrowthPremium.IsZero())

	healthcare := byCat[CategoryHealthcare]
	wantHealth := 1.3*11800 + 0.8*2900 + 3.4*2100
	assert.InDelta(t, wantHealth, healthcare.Amount.InexactFloat64(), 1e-6)
	assert.True(t, healthcare.GrowthPremium.Equal(data.HealthcareGrowthPremium))

	pensions := byCat[CategoryPensions]
	assert.InDelta(t, 1.3*21600, pensions.Amount.InexactFloat64(), 1e-6)
	assert.True(t, pensions.GrowthPremium.Equal(data.PensionGrowthPremium))

	benefits := byCat[CategoryBenefits]
	wantBenefits := 3.4*0.072*13200 + 0.8*2700 + 5.5*520
	assert.InDelta(t, wantBenefits, benefits.Amount.InexactFloat64(), 1e-3)
	assert.True(t, benefits.GrowthPremium.IsZero())

	total := decimal.NewFromFloat(0.8*9800 + wantHealth + 1.3*21600).
		Add(decimal.NewFromFloat(wantBenefits))
	assert.InDelta(t, total.InexactFloat64(), snap.TotalCosts().InexactFloat64(), 1e-3)
}

func TestSpendingDriverCosts(t *testing.T) {
	base := testState(800_000, 3_400_000, 1_300_000)
	sc := testScenario(0.072)
	sc.Spending = &domain.SpendingConfig{Groups: []domain.SpendingGroup{
		{
			Group:         "health",
			BaseCost:      decimal.NewFromInt(20000),
			ElderlyWeight: 1,
			GrowthPremium: decimal.NewFromFloat(0.01),
		},
		{
			Group:       "education",
			BaseCost:    decimal.NewFromInt(12000),
			ChildWeight: 1,
		},
	}}

	agg := NewAggregator(sc, base)

	// Base year reproduces base costs exactly.
	snap := agg.Compute(base)
	require.Len(t, snap.Costs, 2)
	assert.True(t, snap.Costs[0].Amount.Equal(decimal.NewFromInt(20000)))
	assert.True(t, snap.Costs[1].Amount.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, "health", snap.Costs[0].Category)

	// Elderly population up 10 percent moves only the elderly-weighted group.
	aged := testState(800_000, 3_400_000, 1_430_000)
	snap = agg.Compute(aged)
	assert.InDelta(t, 22000, snap.Costs[0].Amount.InexactFloat64(), 1e-6)
	assert.InDelta(t, 12000, snap.Costs[1].Amount.InexactFloat64(), 1e-6)
}

func TestImmigrationImpactAccumulates(t *testing.T) {
	counts := domain.ImmigrationCounts{Work: 10000}

	assert.True(t, ImmigrationImpact(counts, 0).IsZero(), "no cohorts before the first step")

	year1 := ImmigrationImpact(counts, 1)
	year5 := ImmigrationImpact(counts, 5)
	assert.True(t, year5.GreaterThan(year1), "stacked cohorts grow the impact")

	// Work-based arrivals contribute positively from the start.
	assert.True(t, year1.IsPositive())
}

func TestImmigrationImpactConvergence(t *testing.T) {
	// Beyond the integration horizon every cohort contributes the steady
	// value, so the marginal impact of one more year becomes constant.
	counts := domain.ImmigrationCounts{Humanitarian: 10000}
	horizon := data.IntegrationYears(data.Humanitarian)

	a := ImmigrationImpact(counts, horizon+5)
	b := ImmigrationImpact(counts, horizon+6)
	c := ImmigrationImpact(counts, horizon+7)

	d1 := b.Sub(a)
	d2 := c.Sub(b)
	assert.True(t, d1.Sub(d2).Abs().LessThan(decimal.NewFromFloat(1e-9)),
		"marginal impact must stabilize after integration")
}

func TestTypeImpactMatchesCombined(t *testing.T) {
	counts := domain.ImmigrationCounts{Work: 12000, Family: 8000, Humanitarian: 5000}

	combined := ImmigrationImpact(counts, 10)
	sum := TypeImpact(data.WorkBased, counts.Work, 10).
		Add(TypeImpact(data.FamilyBased, counts.Family, 10)).
		Add(TypeImpact(data.Humanitarian, counts.Humanitarian, 10))

	assert.True(t, combined.Equal(sum), "got %s want %s", combined, sum)
}

func TestNegativeCountsIgnored(t *testing.T) {
	impact := ImmigrationImpact(domain.ImmigrationCounts{Work: -5000}, 10)
	assert.True(t, impact.IsZero())
	assert.True(t, TypeImpact(data.WorkBased, -5000, 10).IsZero())
}
