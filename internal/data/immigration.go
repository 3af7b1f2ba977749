package data

import "github.com/shopspring/decimal"

// ImmigrantType distinguishes the three modeled inflow categories, each
// with its own age distribution and fiscal integration path.
type ImmigrantType int

const (
	WorkBased ImmigrantType = iota
	FamilyBased
	Humanitarian
)

// String implements fmt.Stringer for labels in reports.
func (t ImmigrantType) String() string {
	switch t {
	case WorkBased:
		return "work"
	case FamilyBased:
		return "family"
	case Humanitarian:
		return "humanitarian"
	default:
		return "unknown"
	}
}

// immigrationProfile describes one inflow type: the age distribution of
// arrivals and the fiscal integration curve. InitialImpact is the net
// per-capita contribution in the arrival year, EUR per year at 2024
// prices; it converges linearly to SteadyImpact over IntegrationYears.
type immigrationProfile struct {
	agePivots []struct {
		Age    int
		Weight float64
	}
	InitialImpact    decimal.Decimal
	SteadyImpact     decimal.Decimal
	IntegrationYears int
}

var immigrationProfiles = map[ImmigrantType]immigrationProfile{
	// High labor-force attachment, net positive from year one.
	WorkBased: {
		agePivots: []struct {
			Age    int
			Weight float64
		}{{18, 0.5}, {25, 4.0}, {30, 5.0}, {35, 3.5}, {40, 2.0}, {50, 0.5}, {60, 0.1}},
		InitialImpact:    decimal.NewFromFloat(8000),
		SteadyImpact:     decimal.NewFromFloat(8000),
		IntegrationYears: 1,
	},
	// Dependents plus working adults, mixed profile.
	FamilyBased: {
		agePivots: []struct {
			Age    int
			Weight float64
		}{{0, 2.0}, {5, 2.5}, {10, 2.0}, {15, 1.0}, {25, 3.0}, {30, 3.5}, {35, 2.5}, {45, 1.0}, {60, 0.2}},
		InitialImpact:    decimal.NewFromFloat(-3000),
		SteadyImpact:     decimal.NewFromFloat(4000),
		IntegrationYears: 7,
	},
	// Net negative initially, converging to the work-based level.
	Humanitarian: {
		agePivots: []struct {
			Age    int
			Weight float64
		}{{0, 1.5}, {5, 2.0}, {10, 2.0}, {15, 2.5}, {20, 3.5}, {25, 3.5}, {30, 2.5}, {40, 1.0}, {55, 0.2}},
		InitialImpact:    decimal.NewFromFloat(-15000),
		SteadyImpact:     decimal.NewFromFloat(8000),
		IntegrationYears: 9,
	},
}

// ImmigrantTypes lists the modeled categories in a stable order.
var ImmigrantTypes = []ImmigrantType{WorkBased, FamilyBased, Humanitarian}

// ImmigrantAgeShare returns the share of an inflow of the given type that
// arrives at the given age. Shares sum to one over ages 0..MaxAge.
func ImmigrantAgeShare(t ImmigrantType, age int) float64 {
	shares := immigrantAgeShares[t]
	if age < 0 || age >= len(shares) {
		return 0
	}
	return shares[age]
}

// ImmigrantFiscalImpact returns the net per-capita fiscal contribution of
// an immigrant of the given type, EUR per year at 2024 prices, as a
// function of years since arrival. The curve is linear over the
// integration window and flat at steady state afterwards.
func ImmigrantFiscalImpact(t ImmigrantType, yearsSinceArrival int) decimal.Decimal {
	p := immigrationProfiles[t]
	if yearsSinceArrival < 0 {
		return decimal.Zero
	}
	if yearsSinceArrival >= p.IntegrationYears {
		return p.SteadyImpact
	}
	span := p.SteadyImpact.Sub(p.InitialImpact)
	frac := decimal.NewFromInt(int64(yearsSinceArrival)).Div(decimal.NewFromInt(int64(p.IntegrationYears)))
	return p.InitialImpact.Add(span.Mul(frac))
}

// IntegrationYears exposes the integration window length for a type.
func IntegrationYears(t ImmigrantType) int {
	return immigrationProfiles[t].IntegrationYears
}

// immigrantAgeShares holds the normalized per-age arrival distribution per
// type, built once at init from the pivot tables.
var immigrantAgeShares map[ImmigrantType][]float64

func init() {
	immigrantAgeShares = make(map[ImmigrantType][]float64, len(immigrationProfiles))
	for t, p := range immigrationProfiles {
		shares := make([]float64, MaxAge+1)
		var total float64
		pivots := p.agePivots
		for age := 0; age <= MaxAge; age++ {
			var w float64
			switch {
			case age < pivots[0].Age || age > pivots[len(pivots)-1].Age:
				w = 0
			default:
				for i := 1; i < len(pivots); i++ {
					lo, hi := pivots[i-1], pivots[i]
					if age >= lo.Age && age <= hi.Age {
						frac := float64(age-lo.Age) / float64(hi.Age-lo.Age)
						w = lo.Weight + frac*(hi.Weight-lo.Weight)
						break
					}
				}
			}
			shares[age] = w
			total += w
		}
		for age := range shares {
			shares[age] /= total
		}
		immigrantAgeShares[t] = shares
	}
}
