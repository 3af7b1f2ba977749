package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// ImmigrationImpact returns the combined net fiscal contribution of every
// immigration cohort that has arrived since the run started, EUR millions
// at reference prices, for the year that is yearsSinceStart steps into the
// run. Arrivals land once per simulated step, so year k hosts cohorts with
// seniorities 0..k-1.
func ImmigrationImpact(counts domain.ImmigrationCounts, yearsSinceStart int) decimal.Decimal {
	if yearsSinceStart <= 0 {
		return decimal.Zero
	}
	counts = counts.Clamped()

	total := decimal.Zero
	for _, t := range data.ImmigrantTypes {
		var count float64
		switch t {
		case data.WorkBased:
			count = counts.Work
		case data.FamilyBased:
			count = counts.Family
		case data.Humanitarian:
			count = counts.Humanitarian
		}
		if count == 0 {
			continue
		}
		perCohort := decimal.NewFromFloat(count / 1e6)
		for seniority := 0; seniority < yearsSinceStart; seniority++ {
			total = total.Add(perCohort.Mul(data.ImmigrantFiscalImpact(t, seniority)))
		}
	}
	return total
}

// TypeImpact returns one type's contribution in isolation, for per-type
// reporting.
func TypeImpact(t data.ImmigrantType, count float64, yearsSinceStart int) decimal.Decimal {
	if yearsSinceStart <= 0 || count <= 0 {
		return decimal.Zero
	}
	perCohort := decimal.NewFromFloat(count / 1e6)
	total := decimal.Zero
	for seniority := 0; seniority < yearsSinceStart; seniority++ {
		total = total.Add(perCohort.Mul(data.ImmigrantFiscalImpact(t, seniority)))
	}
	return total
}
