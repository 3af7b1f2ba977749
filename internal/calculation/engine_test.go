package calculation

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/fiscal"
	"github.com/Olliwn/truth-engine-sub001/internal/population"
)

func baselineConfig() domain.ScenarioConfig {
	// Empty axes resolve to the default presets.
	return domain.ScenarioConfig{Name: "baseline"}
}

func runBaseline(t *testing.T) *domain.SimulationResult {
	t.Helper()
	engine := NewEngine()
	result, err := engine.SimulateRange(context.Background(), 1990, 2060, baselineConfig())
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestSimulateRangeBaseline(t *testing.T) {
	result := runBaseline(t)

	assert.Equal(t, "baseline", result.Scenario)
	assert.Equal(t, 1990, result.StartYear)
	assert.Equal(t, 2060, result.EndYear)
	require.Len(t, result.AnnualResults, 71)

	for i, r := range result.AnnualResults {
		assert.Equal(t, 1990+i, r.Year)
		assert.Greater(t, r.TotalPopulation, 0.0, "year %d", r.Year)
		assert.True(t, r.GDP.IsPositive(), "year %d", r.Year)
		assert.True(t, r.TotalContributions.IsPositive(), "year %d", r.Year)
		assert.True(t, r.TotalCosts.IsPositive(), "year %d", r.Year)
	}
}

func TestSimulateRangeIsDeterministic(t *testing.T) {
	a := runBaseline(t)
	b := runBaseline(t)

	require.Equal(t, len(a.AnnualResults), len(b.AnnualResults))
	for i := range a.AnnualResults {
		assert.Equal(t, a.AnnualResults[i], b.AnnualResults[i], "year %d", a.AnnualResults[i].Year)
	}
	assert.Equal(t, a.Summary, b.Summary)
}

func TestFirstYearAnchors(t *testing.T) {
	result := runBaseline(t)
	first := result.AnnualResults[0]

	assert.True(t, first.GDP.Equal(data.GDP1990), "got %s", first.GDP)
	assert.True(t, first.DebtStock.Equal(data.DebtStock1990), "got %s", first.DebtStock)
	assert.True(t, first.InterestExpense.IsZero(), "no interest accrues in the opening year")
}

func TestDebtRecursion(t *testing.T) {
	result := runBaseline(t)
	rate := decimal.NewFromFloat(0.025) // baseline interest preset

	for i := 1; i < len(result.AnnualResults); i++ {
		prev := result.AnnualResults[i-1]
		cur := result.AnnualResults[i]

		wantInterest := prev.DebtStock.Mul(rate)
		assert.True(t, cur.InterestExpense.Equal(wantInterest),
			"year %d interest: got %s want %s", cur.Year, cur.InterestExpense, wantInterest)

		wantDebt := prev.DebtStock.Sub(cur.NetBalanceAdjusted).Add(cur.InterestExpense)
		assert.True(t, cur.DebtStock.Equal(wantDebt),
			"year %d debt: got %s want %s", cur.Year, cur.DebtStock, wantDebt)
	}
}

func TestZeroInterestRate(t *testing.T) {
	cfg := baselineConfig()
	zero := decimal.Zero
	cfg.InterestRate = domain.RateAxis{Custom: &zero}

	engine := NewEngine()
	result, err := engine.SimulateRange(context.Background(), 1990, 2060, cfg)
	require.NoError(t, err)

	for _, r := range result.AnnualResults {
		assert.True(t, r.InterestExpense.IsZero(), "year %d", r.Year)
	}
	assert.True(t, result.Summary.TotalInterestPaid.IsZero())

	// Without interest the debt stock is just the accumulated balances.
	wantDebt := data.DebtStock1990
	for _, r := range result.AnnualResults[1:] {
		wantDebt = wantDebt.Sub(r.NetBalanceAdjusted)
	}
	assert.True(t, result.Summary.FinalDebtStock.Equal(wantDebt),
		"got %s want %s", result.Summary.FinalDebtStock, wantDebt)
}

func TestRatioFieldsConsistent(t *testing.T) {
	result := runBaseline(t)

	for _, r := range result.AnnualResults {
		gdp := r.GDP.InexactFloat64()
		assert.InDelta(t, r.DebtStock.InexactFloat64()/gdp*100, r.DebtToGDP, 1e-9, "year %d", r.Year)
		assert.InDelta(t, r.TotalCosts.InexactFloat64()/gdp*100, r.SpendingToGDP, 1e-9, "year %d", r.Year)
		assert.InDelta(t, r.NetBalanceAdjusted.InexactFloat64()/gdp*100, r.DeficitToGDP, 1e-9, "year %d", r.Year)
	}
}

func TestSummaryConsistency(t *testing.T) {
	result := runBaseline(t)
	s := result.Summary
	last := result.AnnualResults[len(result.AnnualResults)-1]

	assert.True(t, s.FinalDebtStock.Equal(last.DebtStock))
	assert.Equal(t, last.DebtToGDP, s.FinalDebtToGDP)

	cumBase, cumAdj, interest := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range result.AnnualResults {
		cumBase = cumBase.Add(r.NetBalance)
		cumAdj = cumAdj.Add(r.NetBalanceAdjusted)
		interest = interest.Add(r.InterestExpense)
	}
	assert.True(t, s.CumulativeBalance.Equal(cumBase))
	assert.True(t, s.CumulativeBalanceAdjusted.Equal(cumAdj))
	assert.True(t, s.TotalInterestPaid.Equal(interest))

	if s.FirstDeficitYear != nil {
		firstDeficit := result.ResultForYear(*s.FirstDeficitYear)
		require.NotNil(t, firstDeficit)
		assert.True(t, firstDeficit.NetBalanceAdjusted.IsNegative())
		for _, r := range result.AnnualResults {
			if r.Year >= *s.FirstDeficitYear {
				break
			}
			assert.False(t, r.NetBalanceAdjusted.IsNegative(), "year %d precedes the first deficit", r.Year)
		}
	}

	peak := result.ResultForYear(s.PeakSurplusYear)
	require.NotNil(t, peak)
	for _, r := range result.AnnualResults {
		assert.False(t, r.NetBalanceAdjusted.GreaterThan(peak.NetBalanceAdjusted), "year %d", r.Year)
		if r.DebtToGDP == r.DebtToGDP { // skip NaN sentinels
			assert.LessOrEqual(t, r.DebtToGDP, s.PeakDebtToGDP, "year %d", r.Year)
		}
	}
}

func TestBirthSeriesUnaffectedByImmigration(t *testing.T) {
	engine := NewEngine()

	closed := baselineConfig()
	closed.Name = "closed"
	closed.Immigration = domain.ImmigrationAxis{Preset: "zero"}

	open := baselineConfig()
	open.Name = "open"
	open.Immigration = domain.ImmigrationAxis{Preset: "work_focused"}

	a, err := engine.SimulateRange(context.Background(), 1990, 2060, closed)
	require.NoError(t, err)
	b, err := engine.SimulateRange(context.Background(), 1990, 2060, open)
	require.NoError(t, err)

	for i := range a.AnnualResults {
		assert.Equal(t, a.AnnualResults[i].Births, b.AnnualResults[i].Births, "year %d", a.AnnualResults[i].Year)
		assert.Equal(t, a.AnnualResults[i].TFR, b.AnnualResults[i].TFR, "year %d", a.AnnualResults[i].Year)
	}
}

func TestImmigrationImpactReporting(t *testing.T) {
	cfg := baselineConfig()
	cfg.Immigration = domain.ImmigrationAxis{Preset: "zero"}

	engine := NewEngine()
	result, err := engine.SimulateRange(context.Background(), 1990, 2020, cfg)
	require.NoError(t, err)

	for _, r := range result.AnnualResults {
		assert.True(t, r.ImmigrationImpact.IsZero(), "year %d", r.Year)
		assert.True(t, r.ImpactWork.IsZero(), "year %d", r.Year)
	}
}

func TestFiscalMultiplierSummary(t *testing.T) {
	engine := NewEngine()

	plain, err := engine.SimulateRange(context.Background(), 1990, 2060, baselineConfig())
	require.NoError(t, err)
	assert.Nil(t, plain.Summary.MultiplierGrowthDrag)

	cfg := baselineConfig()
	cfg.FiscalMultiplier = true
	withMult, err := engine.SimulateRange(context.Background(), 1990, 2060, cfg)
	require.NoError(t, err)
	require.NotNil(t, withMult.Summary.MultiplierGrowthDrag)
	assert.False(t, withMult.Summary.MultiplierGrowthDrag.IsNegative())
}

func TestBreakevenRateWithinBounds(t *testing.T) {
	result := runBaseline(t)

	if rate := result.Summary.BreakevenGrowthRate; rate != nil {
		assert.True(t, rate.GreaterThanOrEqual(breakevenMinRate), "got %s", rate)
		assert.True(t, rate.LessThanOrEqual(breakevenMaxRate), "got %s", rate)
	}
}

func TestBreakevenNilWithoutBracket(t *testing.T) {
	// A scenario whose spending dwarfs any plausible revenue is in deficit
	// every single year, so no constant growth rate can zero the cumulative
	// balance and the search must report absence instead of a fake root.
	sc, err := data.ResolveScenario(baselineConfig())
	require.NoError(t, err)
	sc.Spending = &domain.SpendingConfig{Groups: []domain.SpendingGroup{
		{Group: "other", BaseCost: decimal.NewFromInt(1_000_000), WorkingWeight: 1},
	}}

	engine := NewEngine()
	model, err := population.SimulateRange(1990, 2060, sc)
	require.NoError(t, err)

	agg := fiscal.NewAggregator(sc, &model.States[0])
	snaps := make([]fiscal.Snapshot, len(model.States))
	for i := range model.States {
		snaps[i] = agg.Compute(&model.States[i])
	}

	in := &foldInput{startYear: 1990, states: model.States, snaps: snaps, scenario: sc}
	assert.Nil(t, engine.breakevenGrowthRate(in))
}

func TestBreakevenRestoresMultiplierFlag(t *testing.T) {
	sc, err := data.ResolveScenario(baselineConfig())
	require.NoError(t, err)
	sc.FiscalMultiplier = true

	engine := NewEngine()
	model, err := population.SimulateRange(1990, 2010, sc)
	require.NoError(t, err)

	agg := fiscal.NewAggregator(sc, &model.States[0])
	snaps := make([]fiscal.Snapshot, len(model.States))
	for i := range model.States {
		snaps[i] = agg.Compute(&model.States[i])
	}

	in := &foldInput{startYear: 1990, states: model.States, snaps: snaps, scenario: sc}
	engine.breakevenGrowthRate(in)
	assert.True(t, sc.FiscalMultiplier, "multiplier flag must survive the search")
	assert.False(t, in.noMultiplier, "search must fold on its own copy of the input")
}

func TestConcurrentRunsSharedScenario(t *testing.T) {
	sc, err := data.ResolveScenario(baselineConfig())
	require.NoError(t, err)
	sc.FiscalMultiplier = true

	engine := NewEngine()
	const runs = 4
	results := make([]*domain.SimulationResult, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.SimulateResolved(context.Background(), 1990, 2030, sc)
		}(i)
	}
	wg.Wait()

	for i := 0; i < runs; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
	}
	for i := 1; i < runs; i++ {
		assert.True(t, results[i].Summary.FinalDebtStock.Equal(results[0].Summary.FinalDebtStock),
			"run %d diverged from run 0", i)
		require.NotNil(t, results[i].Summary.MultiplierGrowthDrag,
			"run %d lost the multiplier mid-flight", i)
	}
	assert.True(t, sc.FiscalMultiplier)
}

func TestScaleAnchor(t *testing.T) {
	growth := decimal.NewFromFloat(0.02)

	assert.True(t, anchorGDP(1990, growth).Equal(data.GDP1990))
	assert.True(t, anchorGDP(1991, growth).Equal(data.GDP1990.Mul(decimal.NewFromFloat(1.02))))

	back := anchorGDP(1989, growth).Mul(decimal.NewFromFloat(1.02))
	assert.InDelta(t, data.GDP1990.InexactFloat64(), back.InexactFloat64(), 1e-6)
}

func TestWorkforceChange(t *testing.T) {
	prev := &population.YearState{WorkingAge: 1000}
	cur := &population.YearState{WorkingAge: 1100}
	assert.InDelta(t, 0.10, workforceChange(prev, cur).InexactFloat64(), 1e-12)

	empty := &population.YearState{}
	assert.True(t, workforceChange(empty, cur).IsZero())
}

func TestPyramidOperation(t *testing.T) {
	engine := NewEngine()

	bands, err := engine.Pyramid(context.Background(), 1990, 2060, baselineConfig(), 2030)
	require.NoError(t, err)
	require.Len(t, bands, data.MaxAge+1)

	_, err = engine.Pyramid(context.Background(), 1990, 2060, baselineConfig(), 2100)
	assert.Error(t, err)
}

func TestUnknownPresetFails(t *testing.T) {
	cfg := baselineConfig()
	cfg.GDPGrowth = domain.RateAxis{Preset: "warp_speed"}

	engine := NewEngine()
	_, err := engine.SimulateRange(context.Background(), 1990, 2060, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown gdp growth preset")
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine()
	_, err := engine.SimulateRange(ctx, 1990, 2060, baselineConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetLogger(t *testing.T) {
	engine := NewEngine()
	engine.SetLogger(nil)
	require.NotNil(t, engine.Logger)

	// The nop logger must survive a full run without output or panic.
	_, err := engine.SimulateRange(context.Background(), 1990, 2000, baselineConfig())
	assert.NoError(t, err)
}
