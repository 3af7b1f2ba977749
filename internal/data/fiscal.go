package data

import "github.com/shopspring/decimal"

// Statutory 2024 rates, held constant over the full horizon. These are
// calibration values supplied as configuration data, not derived figures.
var (
	IncomeTaxRate       = decimal.NewFromFloat(0.253)
	SocialInsuranceRate = decimal.NewFromFloat(0.212)
	VATRate             = decimal.NewFromFloat(0.240)
	// Share of gross labor income that ends up in the VAT base.
	ConsumptionShare = decimal.NewFromFloat(0.46)
)

// Per-capita cost drivers, EUR per person per year at 2024 prices.
var (
	EducationCostPerChild    = decimal.NewFromFloat(9800)
	HealthcarePerElderly     = decimal.NewFromFloat(11800)
	HealthcarePerChild       = decimal.NewFromFloat(2900)
	HealthcarePerWorkingAge  = decimal.NewFromFloat(2100)
	AveragePension           = decimal.NewFromFloat(21600)
	UnemploymentBenefit      = decimal.NewFromFloat(13200)
	FamilyBenefitPerChild    = decimal.NewFromFloat(2700)
	HousingBenefitPerCapita  = decimal.NewFromFloat(520)
)

// Cost growth premiums above GDP growth, annual rates.
var (
	// Baumol effect on labor-intensive care.
	HealthcareGrowthPremium = decimal.NewFromFloat(0.015)
	PensionGrowthPremium    = decimal.NewFromFloat(0.0075)
)

// DecileIncomes is the mean annual gross labor income per income decile,
// EUR at 2024 prices, lowest decile first.
var DecileIncomes = [10]float64{
	11000, 16500, 20600, 24300, 28000, 31900, 36300, 41800, 50100, 78900,
}

// ageIncomePivots is the career income curve: a multiplier on decile
// income by age, peaking mid-career.
var ageIncomePivots = []struct {
	Age    int
	Factor float64
}{
	{15, 0.15},
	{20, 0.45},
	{25, 0.75},
	{30, 0.95},
	{35, 1.08},
	{40, 1.15},
	{45, 1.18},
	{50, 1.15},
	{55, 1.08},
	{60, 0.85},
	{64, 0.60},
}

// AgeIncomeFactor returns the career-curve multiplier for a worker of the
// given age; zero outside the working-age range.
func AgeIncomeFactor(age int) float64 {
	if age < WorkingAgeMin || age > WorkingAgeMax {
		return 0
	}
	pivots := ageIncomePivots
	if age <= pivots[0].Age {
		return pivots[0].Factor
	}
	last := pivots[len(pivots)-1]
	if age >= last.Age {
		return last.Factor
	}
	for i := 1; i < len(pivots); i++ {
		lo, hi := pivots[i-1], pivots[i]
		if age >= lo.Age && age <= hi.Age {
			frac := float64(age-lo.Age) / float64(hi.Age-lo.Age)
			return lo.Factor + frac*(hi.Factor-lo.Factor)
		}
	}
	return 0
}

// Broad age band bounds, inclusive.
const (
	ChildMax      = 14
	WorkingAgeMin = 15
	WorkingAgeMax = 64
	ElderlyMin    = 65
)

// EmigrationRate is the constant annual share of the working-age
// population that leaves the country.
const EmigrationRate = 0.02

// Macro anchors at the 1990 start of the historical window, EUR millions.
var (
	GDP1990       = decimal.NewFromFloat(89700)
	DebtStock1990 = decimal.NewFromFloat(12700)
)
