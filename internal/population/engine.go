// Package population implements the cohort demographics engine: it ages an
// age-by-sex population structure year over year from historical birth
// cohorts, applies mortality, adds scenario-driven births and migration,
// and derives the broad-band aggregates the fiscal model consumes.
package population

import (
	"fmt"
	"math"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// Cohorts is the population structure for one year: persons by single
// year of age and sex. The terminal band absorbs everyone aged 100+.
type Cohorts [data.MaxAge + 1][2]float64

// Total sums the whole structure.
func (c *Cohorts) Total() float64 {
	var sum float64
	for age := 0; age <= data.MaxAge; age++ {
		sum += c[age][data.Male] + c[age][data.Female]
	}
	return sum
}

// SumRange sums both sexes across an inclusive age range.
func (c *Cohorts) SumRange(minAge, maxAge int) float64 {
	var sum float64
	for age := minAge; age <= maxAge && age <= data.MaxAge; age++ {
		sum += c[age][data.Male] + c[age][data.Female]
	}
	return sum
}

// YearState is the simulated demographic state of one calendar year.
type YearState struct {
	Year    int
	Cohorts Cohorts

	Births       float64
	Deaths       float64
	NetMigration float64
	TFR          float64

	ImmigrationWork         float64
	ImmigrationFamily       float64
	ImmigrationHumanitarian float64

	Children        float64
	WorkingAge      float64
	Elderly         float64
	TotalPopulation float64
	DependencyRatio float64
}

// Model holds the full simulated cohort history for one scenario run.
// It is immutable once built; pyramid queries are read-only slices of it.
type Model struct {
	StartYear int
	EndYear   int
	States    []YearState
}

// SimulateRange builds the cohort model for an inclusive year range.
//
// Births are computed against a migration-free shadow population so the
// fertility subsystem is fully isolated from the immigration axis: two
// scenarios differing only in immigration produce identical birth and TFR
// series.
func SimulateRange(startYear, endYear int, scenario *domain.ResolvedScenario) (*Model, error) {
	if startYear > endYear {
		return nil, fmt.Errorf("start year %d is after end year %d", startYear, endYear)
	}
	if startYear < data.EarliestCohortYear {
		return nil, fmt.Errorf("start year %d predates the cohort data horizon (%d)", startYear, data.EarliestCohortYear)
	}

	years := endYear - startYear + 1
	m := &Model{
		StartYear: startYear,
		EndYear:   endYear,
		States:    make([]YearState, 0, years),
	}

	// Native-only shadow run drives the birth subsystem.
	births, tfrs := simulateBirths(startYear, endYear, scenario)

	cohorts := seedCohorts(startYear)
	first := YearState{Year: startYear, Cohorts: cohorts, Births: births[0], TFR: tfrs[0]}
	first.fillAggregates()
	m.States = append(m.States, first)

	for year := startYear + 1; year <= endYear; year++ {
		idx := year - startYear
		prev := &m.States[idx-1]
		state := stepYear(prev, year, births[idx], tfrs[idx], scenario)
		m.States = append(m.States, state)
	}

	return m, nil
}

// State returns the simulated state for a calendar year, or nil outside
// the simulated range.
func (m *Model) State(year int) *YearState {
	idx := year - m.StartYear
	if idx < 0 || idx >= len(m.States) {
		return nil
	}
	return &m.States[idx]
}

// Pyramid returns the age-by-sex slice for one year as pyramid bands,
// age 0 through the terminal 100+ band.
func (m *Model) Pyramid(year int) []domain.PyramidBand {
	state := m.State(year)
	if state == nil {
		return nil
	}
	bands := make([]domain.PyramidBand, data.MaxAge+1)
	for age := 0; age <= data.MaxAge; age++ {
		bands[age] = domain.PyramidBand{
			Age:    age,
			Male:   state.Cohorts[age][data.Male],
			Female: state.Cohorts[age][data.Female],
		}
	}
	return bands
}

// seedCohorts builds the start-year structure from historical birth
// cohorts aged forward under historical mortality.
func seedCohorts(startYear int) Cohorts {
	var cohorts Cohorts
	for age := 0; age <= data.MaxAge; age++ {
		birthYear := startYear - age
		b, ok := data.BirthsForYear(birthYear)
		if !ok {
			continue
		}
		male := b * data.MaleBirthShare
		female := b - male
		for y := birthYear; y < startYear; y++ {
			livedAge := y - birthYear
			male *= 1 - data.MortalityRate(y, livedAge, data.Male)
			female *= 1 - data.MortalityRate(y, livedAge, data.Female)
		}
		cohorts[age][data.Male] += male
		cohorts[age][data.Female] += female
	}
	return cohorts
}

// stepYear advances the structure by one year: age every cohort, apply
// mortality, add the new birth cohort, then apply migration.
func stepYear(prev *YearState, year int, births, tfr float64, scenario *domain.ResolvedScenario) YearState {
	var next Cohorts
	var deaths float64

	for age := data.MaxAge; age >= 0; age-- {
		for _, sex := range []data.Sex{data.Male, data.Female} {
			alive := prev.Cohorts[age][sex]
			q := data.MortalityRate(year, age, sex)
			survivors := alive * (1 - q)
			deaths += alive * q
			target := age + 1
			if target > data.MaxAge {
				target = data.MaxAge // terminal band absorbs 100+
			}
			next[target][sex] += survivors
		}
	}

	maleBirths := births * data.MaleBirthShare
	next[0][data.Male] += maleBirths
	next[0][data.Female] += births - maleBirths

	netMigration, imm := applyMigration(&next, scenario.Immigration)

	state := YearState{
		Year:                    year,
		Cohorts:                 next,
		Births:                  births,
		Deaths:                  deaths,
		NetMigration:            netMigration,
		TFR:                     tfr,
		ImmigrationWork:         imm.Work,
		ImmigrationFamily:       imm.Family,
		ImmigrationHumanitarian: imm.Humanitarian,
	}
	state.fillAggregates()
	return state
}

// applyMigration adds the three typed immigration cohorts and removes
// emigration as a flat share of the working-age population. Returns the
// net migration balance and the clamped inflow counts.
func applyMigration(cohorts *Cohorts, counts domain.ImmigrationCounts) (float64, domain.ImmigrationCounts) {
	counts = counts.Clamped()

	inflows := map[data.ImmigrantType]float64{
		data.WorkBased:    counts.Work,
		data.FamilyBased:  counts.Family,
		data.Humanitarian: counts.Humanitarian,
	}
	for _, t := range data.ImmigrantTypes {
		count := inflows[t]
		if count == 0 {
			continue
		}
		for age := 0; age <= data.MaxAge; age++ {
			share := data.ImmigrantAgeShare(t, age)
			if share == 0 {
				continue
			}
			arrivals := count * share
			cohorts[age][data.Male] += arrivals / 2
			cohorts[age][data.Female] += arrivals / 2
		}
	}

	var emigrants float64
	for age := data.WorkingAgeMin; age <= data.WorkingAgeMax; age++ {
		for _, sex := range []data.Sex{data.Male, data.Female} {
			leaving := cohorts[age][sex] * data.EmigrationRate
			cohorts[age][sex] -= leaving
			emigrants += leaving
		}
	}

	return counts.Total() - emigrants, counts
}

// fillAggregates derives the broad-band counts and ratios from the cohort
// structure. A zero working-age population yields a non-finite dependency
// ratio rather than an error.
func (s *YearState) fillAggregates() {
	s.Children = s.Cohorts.SumRange(0, data.ChildMax)
	s.WorkingAge = s.Cohorts.SumRange(data.WorkingAgeMin, data.WorkingAgeMax)
	s.Elderly = s.Cohorts.SumRange(data.ElderlyMin, data.MaxAge)
	s.TotalPopulation = s.Children + s.WorkingAge + s.Elderly
	s.DependencyRatio = s.Elderly / s.WorkingAge * 100
	if s.WorkingAge == 0 {
		// Keep the IEEE sentinel explicit for the zero/zero case.
		if s.Elderly == 0 {
			s.DependencyRatio = math.NaN()
		}
	}
}
