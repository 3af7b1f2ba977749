package population

import (
	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// simulateBirths produces the per-year birth counts and effective TFR for
// a run. Historical years use the recorded series; projection years apply
// the scenario's fertility transition to the women of childbearing age in
// a migration-free population, so the immigration axis cannot leak into
// the birth subsystem.
func simulateBirths(startYear, endYear int, scenario *domain.ResolvedScenario) (births, tfrs []float64) {
	years := endYear - startYear + 1
	births = make([]float64, years)
	tfrs = make([]float64, years)

	cohorts := seedCohorts(startYear)

	for year := startYear; year <= endYear; year++ {
		idx := year - startYear
		if idx > 0 {
			cohorts = ageNatives(cohorts, year)
		}

		tfr := activeTFR(year, scenario)
		var b float64
		if recorded, ok := data.BirthsForYear(year); ok {
			b = recorded
		} else {
			b = projectedBirths(&cohorts, tfr)
		}
		births[idx] = b
		tfrs[idx] = tfr

		if idx > 0 {
			maleBirths := b * data.MaleBirthShare
			cohorts[0][data.Male] += maleBirths
			cohorts[0][data.Female] += b - maleBirths
			applyNativeEmigration(&cohorts)
		}
	}
	return births, tfrs
}

// ageNatives advances the native grid one year with mortality only.
func ageNatives(prev Cohorts, year int) Cohorts {
	var next Cohorts
	for age := 0; age <= data.MaxAge; age++ {
		for _, sex := range []data.Sex{data.Male, data.Female} {
			survivors := prev[age][sex] * (1 - data.MortalityRate(year, age, sex))
			target := age + 1
			if target > data.MaxAge {
				target = data.MaxAge
			}
			next[target][sex] += survivors
		}
	}
	return next
}

func applyNativeEmigration(cohorts *Cohorts) {
	for age := data.WorkingAgeMin; age <= data.WorkingAgeMax; age++ {
		for _, sex := range []data.Sex{data.Male, data.Female} {
			cohorts[age][sex] *= 1 - data.EmigrationRate
		}
	}
}

// projectedBirths applies the active TFR through the constant age-specific
// fertility shape to the women of childbearing age.
func projectedBirths(cohorts *Cohorts, tfr float64) float64 {
	var births float64
	for age := data.FertilityMinAge; age <= data.FertilityMaxAge; age++ {
		births += tfr * data.FertilityShare(age) * cohorts[age][data.Female]
	}
	return births
}

// activeTFR resolves the effective total fertility rate for a year:
// recorded values inside the historical series, then a linear transition
// from the last recorded TFR toward the scenario target, held constant
// once the target year is reached. Never negative.
func activeTFR(year int, scenario *domain.ResolvedScenario) float64 {
	if recorded, ok := data.HistoricalTFR(year); ok {
		return recorded
	}
	if year <= data.LastHistoricalYear {
		// Before the recorded TFR window; fertility data this old only
		// matters through the recorded birth counts.
		return data.CurrentTFR()
	}

	target := scenario.TargetTFR
	if target < 0 {
		target = 0
	}
	transition := scenario.TFRTransitionYear
	if transition <= data.LastHistoricalYear || year >= transition {
		return target
	}

	start := data.CurrentTFR()
	frac := float64(year-data.LastHistoricalYear) / float64(transition-data.LastHistoricalYear)
	tfr := start + frac*(target-start)
	if tfr < 0 {
		tfr = 0
	}
	return tfr
}
