package population

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

func baselineScenario() *domain.ResolvedScenario {
	return &domain.ResolvedScenario{
		Name:              "baseline",
		TargetTFR:         1.25,
		TFRTransitionYear: 2030,
		Immigration: domain.ImmigrationCounts{
			Work:         15000,
			Family:       15000,
			Humanitarian: 10000,
		},
	}
}

func TestSimulateRangeValidation(t *testing.T) {
	sc := baselineScenario()

	_, err := SimulateRange(2060, 1990, sc)
	assert.Error(t, err, "inverted window")

	_, err = SimulateRange(1850, 1990, sc)
	assert.Error(t, err, "start before cohort data")
}

func TestSimulateRangeIsDeterministic(t *testing.T) {
	sc := baselineScenario()

	a, err := SimulateRange(1990, 2060, sc)
	require.NoError(t, err)
	b, err := SimulateRange(1990, 2060, sc)
	require.NoError(t, err)

	require.Equal(t, len(a.States), len(b.States))
	for i := range a.States {
		assert.Equal(t, a.States[i], b.States[i], "year %d", a.States[i].Year)
	}
}

func TestSeedCohortsPlausible(t *testing.T) {
	cohorts := seedCohorts(1990)
	total := cohorts.Total()
	assert.Greater(t, total, 3.0e6, "seeded 1990 population implausibly small")
	assert.Less(t, total, 6.0e6, "seeded 1990 population implausibly large")

	for age := 0; age <= data.MaxAge; age++ {
		assert.GreaterOrEqual(t, cohorts[age][data.Male], 0.0)
		assert.GreaterOrEqual(t, cohorts[age][data.Female], 0.0)
	}
}

func TestStepYearConservesPeople(t *testing.T) {
	sc := baselineScenario()
	m, err := SimulateRange(1990, 2010, sc)
	require.NoError(t, err)

	for i := 1; i < len(m.States); i++ {
		prev := &m.States[i-1]
		cur := &m.States[i]
		expected := prev.TotalPopulation - cur.Deaths + cur.Births + cur.NetMigration
		assert.InDelta(t, expected, cur.TotalPopulation, 1.0,
			"population identity broken in %d", cur.Year)
	}
}

func TestHistoricalBirthsAreRecorded(t *testing.T) {
	sc := baselineScenario()
	m, err := SimulateRange(1990, 2030, sc)
	require.NoError(t, err)

	for year := 1990; year <= data.LastHistoricalYear; year++ {
		recorded, ok := data.BirthsForYear(year)
		require.True(t, ok)
		assert.Equal(t, recorded, m.State(year).Births, "year %d", year)
	}

	// Projection years derive births from the cohort structure instead.
	projected := m.State(data.LastHistoricalYear + 1)
	require.NotNil(t, projected)
	assert.Greater(t, projected.Births, 0.0)
}

func TestTFRTransition(t *testing.T) {
	sc := baselineScenario()
	sc.TargetTFR = 1.85
	sc.TFRTransitionYear = 2044

	m, err := SimulateRange(1990, 2060, sc)
	require.NoError(t, err)

	// Recorded TFR inside the historical window.
	recorded, ok := data.HistoricalTFR(2024)
	require.True(t, ok)
	assert.InDelta(t, recorded, m.State(2024).TFR, 1e-12)

	// Linear interpolation halfway through the transition.
	start := data.CurrentTFR()
	assert.InDelta(t, start+(1.85-start)/2, m.State(2034).TFR, 1e-9)

	// Held at the target from the transition year on.
	assert.InDelta(t, 1.85, m.State(2044).TFR, 1e-12)
	assert.InDelta(t, 1.85, m.State(2060).TFR, 1e-12)
}

func TestBirthsIsolatedFromImmigration(t *testing.T) {
	closed := baselineScenario()
	closed.Immigration = domain.ImmigrationCounts{}

	open := baselineScenario()
	open.Immigration = domain.ImmigrationCounts{Work: 50000, Family: 30000, Humanitarian: 20000}

	a, err := SimulateRange(1990, 2060, closed)
	require.NoError(t, err)
	b, err := SimulateRange(1990, 2060, open)
	require.NoError(t, err)

	for i := range a.States {
		assert.Equal(t, a.States[i].Births, b.States[i].Births, "year %d", a.States[i].Year)
		assert.Equal(t, a.States[i].TFR, b.States[i].TFR, "year %d", a.States[i].Year)
	}

	// Immigration still changes the headline population.
	assert.Greater(t, b.State(2060).TotalPopulation, a.State(2060).TotalPopulation)
}

func TestNegativeImmigrationClamped(t *testing.T) {
	sc := baselineScenario()
	sc.Immigration = domain.ImmigrationCounts{Work: -5000, Family: -5000, Humanitarian: -5000}

	m, err := SimulateRange(1990, 2000, sc)
	require.NoError(t, err)

	for i := 1; i < len(m.States); i++ {
		s := &m.States[i]
		assert.Zero(t, s.ImmigrationWork)
		assert.Zero(t, s.ImmigrationFamily)
		assert.Zero(t, s.ImmigrationHumanitarian)
		// Emigration alone drives migration negative.
		assert.Less(t, s.NetMigration, 0.0)
	}
}

func TestBaselinePopulationDeclines(t *testing.T) {
	m, err := SimulateRange(1990, 2060, baselineScenario())
	require.NoError(t, err)

	assert.Less(t, m.State(2060).TotalPopulation, m.State(2024).TotalPopulation,
		"low-fertility baseline must show long-run decline")
	assert.Greater(t, m.State(2060).DependencyRatio, m.State(2024).DependencyRatio,
		"dependency ratio must worsen as cohorts age")
}

func TestAgingIsMonotonicWithoutMigration(t *testing.T) {
	sc := baselineScenario()
	sc.Immigration = domain.ImmigrationCounts{}

	m, err := SimulateRange(1990, 2060, sc)
	require.NoError(t, err)

	// With no inflow a cohort can only shrink as it ages. The terminal
	// band accumulates survivors from two cohorts, so it is excluded.
	const eps = 1e-9
	for i := 0; i+1 < len(m.States); i++ {
		cur, next := &m.States[i], &m.States[i+1]
		for age := 0; age+1 < data.MaxAge; age++ {
			for _, sex := range []data.Sex{data.Male, data.Female} {
				assert.LessOrEqual(t, next.Cohorts[age+1][sex], cur.Cohorts[age][sex]+eps,
					"year %d age %d sex %d grew while aging", next.Year, age+1, sex)
			}
		}
	}
}

func TestDeclineUnderLowFertilityClosedBorders(t *testing.T) {
	sc := &domain.ResolvedScenario{
		Name:              "closed_low_fertility",
		TargetTFR:         1.25,
		TFRTransitionYear: 2030,
	}

	m, err := SimulateRange(1990, 2060, sc)
	require.NoError(t, err)

	assert.Less(t, m.State(2060).TotalPopulation, m.State(2024).TotalPopulation,
		"trend fertility with no immigration and no growth must decline by 2060")
}

func TestDependencyRatioSentinel(t *testing.T) {
	var s YearState
	s.fillAggregates()
	assert.True(t, math.IsNaN(s.DependencyRatio), "empty population yields NaN, not a fake zero")
}

func TestPyramid(t *testing.T) {
	m, err := SimulateRange(1990, 2010, baselineScenario())
	require.NoError(t, err)

	bands := m.Pyramid(2000)
	require.Len(t, bands, data.MaxAge+1)
	assert.Equal(t, 0, bands[0].Age)
	assert.Equal(t, data.MaxAge, bands[len(bands)-1].Age)
	for _, b := range bands {
		assert.GreaterOrEqual(t, b.Male, 0.0, "age %d", b.Age)
		assert.GreaterOrEqual(t, b.Female, 0.0, "age %d", b.Age)
	}

	assert.Nil(t, m.Pyramid(1989))
	assert.Nil(t, m.Pyramid(2011))
}

func TestStateLookup(t *testing.T) {
	m, err := SimulateRange(1990, 1995, baselineScenario())
	require.NoError(t, err)

	require.NotNil(t, m.State(1990))
	require.NotNil(t, m.State(1995))
	assert.Equal(t, 1993, m.State(1993).Year)
	assert.Nil(t, m.State(1989))
	assert.Nil(t, m.State(1996))
}
