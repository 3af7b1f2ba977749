// Package calculation orchestrates a full scenario run: it drives the
// cohort demographics engine, converts each year's population into fiscal
// lines, and walks the debt/GDP fold that turns those lines into the
// annual result series and its summary.
package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/fiscal"
	"github.com/Olliwn/truth-engine-sub001/internal/population"
)

// Growth drag applied per point of deficit beyond the threshold when the
// fiscal multiplier is enabled.
var (
	multiplierCoeff     = decimal.NewFromFloat(0.10)
	multiplierThreshold = decimal.NewFromFloat(0.03)
)

// Engine runs population/fiscal simulations. It carries no per-run state;
// a single Engine is safe for concurrent scenario runs.
type Engine struct {
	Logger Logger
}

// NewEngine creates a simulation engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger installs a logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SimulateRange runs one scenario over an inclusive year range. The
// scenario's axes are resolved against the preset catalogs first, so the
// fold itself never branches on preset-versus-custom.
func (e *Engine) SimulateRange(ctx context.Context, startYear, endYear int, cfg domain.ScenarioConfig) (*domain.SimulationResult, error) {
	resolved, err := data.ResolveScenario(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving scenario %q: %w", cfg.Name, err)
	}
	return e.SimulateResolved(ctx, startYear, endYear, resolved)
}

// SimulateResolved runs a scenario whose axes are already collapsed to
// effective values.
func (e *Engine) SimulateResolved(ctx context.Context, startYear, endYear int, sc *domain.ResolvedScenario) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", sc.Name, err)
	}

	model, err := population.SimulateRange(startYear, endYear, sc)
	if err != nil {
		return nil, fmt.Errorf("population simulation failed: %w", err)
	}

	agg := fiscal.NewAggregator(sc, &model.States[0])
	snaps := make([]fiscal.Snapshot, len(model.States))
	for i := range model.States {
		snaps[i] = agg.Compute(&model.States[i])
	}

	in := &foldInput{startYear: startYear, states: model.States, snaps: snaps, scenario: sc}

	results := make([]domain.AnnualResult, len(model.States))
	drag := e.runFold(in, nil, results)

	result := &domain.SimulationResult{
		Scenario:      sc.Name,
		StartYear:     startYear,
		EndYear:       endYear,
		AnnualResults: results,
	}
	result.Summary = buildSummary(results)
	if sc.FiscalMultiplier {
		result.Summary.MultiplierGrowthDrag = &drag
	}
	result.Summary.BreakevenGrowthRate = e.breakevenGrowthRate(in)

	e.Logger.Debugf("scenario %q: %d years, final debt %s", sc.Name, len(results), result.Summary.FinalDebtStock.StringFixed(0))
	return result, nil
}

// Pyramid runs only the demographics engine and slices out one year's
// age-by-sex structure. It is independent of the fiscal computation.
func (e *Engine) Pyramid(ctx context.Context, startYear, endYear int, cfg domain.ScenarioConfig, year int) ([]domain.PyramidBand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolved, err := data.ResolveScenario(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving scenario %q: %w", cfg.Name, err)
	}
	model, err := population.SimulateRange(startYear, endYear, resolved)
	if err != nil {
		return nil, fmt.Errorf("population simulation failed: %w", err)
	}
	bands := model.Pyramid(year)
	if bands == nil {
		return nil, fmt.Errorf("year %d outside simulated range %d-%d", year, startYear, endYear)
	}
	return bands, nil
}

// foldInput bundles the precomputed demographic and fiscal inputs of a
// run so the breakeven search can re-walk the fold without re-simulating
// the population.
type foldInput struct {
	startYear int
	states    []population.YearState
	snaps     []fiscal.Snapshot
	scenario  *domain.ResolvedScenario
	// noMultiplier suppresses the deficit feedback regardless of the
	// scenario flag. The breakeven search folds with it set so a shared
	// scenario is never written to.
	noMultiplier bool
}

// runFold is the sequential left-fold over the year range, threading
// {debtStock, gdp} forward. growthOverride replaces the effective growth
// rate with a constant (used by the breakeven search). When results is
// non-nil it is filled with one record per year. Returns the average
// multiplier growth drag applied, zero when the multiplier is off.
func (e *Engine) runFold(in *foldInput, growthOverride *decimal.Decimal, results []domain.AnnualResult) decimal.Decimal {
	sc := in.scenario
	one := decimal.NewFromInt(1)

	gdp := anchorGDP(in.startYear, sc.ProductivityGrowth)
	gdpBase := gdp
	debt := anchorDebt(in.startYear, sc.ProductivityGrowth)

	// One cumulative premium factor per cost line; the line order is
	// stable across years for a given scenario.
	premiums := make([]decimal.Decimal, len(in.snaps[0].Costs))
	for i := range premiums {
		premiums[i] = one
	}

	var prevAdjBalance decimal.Decimal
	totalDrag := decimal.Zero

	for i := range in.states {
		state := &in.states[i]
		snap := &in.snaps[i]

		growth := sc.ProductivityGrowth
		if growthOverride != nil {
			growth = *growthOverride
		} else if i > 0 {
			growth = growth.Add(workforceChange(&in.states[i-1], state))
		}

		if sc.FiscalMultiplier && !in.noMultiplier && i > 0 && gdp.IsPositive() {
			deficitShare := prevAdjBalance.Neg().Div(gdp)
			if deficitShare.GreaterThan(multiplierThreshold) {
				d := multiplierCoeff.Mul(deficitShare.Sub(multiplierThreshold))
				growth = growth.Sub(d)
				totalDrag = totalDrag.Add(d)
			}
		}

		if i > 0 {
			gdp = gdp.Mul(one.Add(growth))
			for j := range premiums {
				premiums[j] = premiums[j].Mul(one.Add(snap.Costs[j].GrowthPremium))
			}
		}
		gf := gdp.Div(gdpBase)

		revenue := snap.TotalContributions.Mul(gf)
		costBase := snap.TotalCosts()
		costAdj := decimal.Zero
		var eduCost, healthCost, pensionCost, benefitCost decimal.Decimal
		for j, line := range snap.Costs {
			adj := line.Amount.Mul(gf).Mul(premiums[j])
			costAdj = costAdj.Add(adj)
			switch line.Category {
			case fiscal.CategoryEducation:
				eduCost = eduCost.Add(adj)
			case fiscal.CategoryHealthcare:
				healthCost = healthCost.Add(adj)
			case fiscal.CategoryPensions:
				pensionCost = pensionCost.Add(adj)
			default:
				benefitCost = benefitCost.Add(adj)
			}
		}

		impactWork := fiscal.TypeImpact(data.WorkBased, sc.Immigration.Work, i).Mul(gf)
		impactFamily := fiscal.TypeImpact(data.FamilyBased, sc.Immigration.Family, i).Mul(gf)
		impactHumanitarian := fiscal.TypeImpact(data.Humanitarian, sc.Immigration.Humanitarian, i).Mul(gf)
		impact := impactWork.Add(impactFamily).Add(impactHumanitarian)

		netBase := revenue.Sub(costBase).Add(impact)
		netAdj := revenue.Sub(costAdj).Add(impact)

		var interest decimal.Decimal
		if i > 0 {
			interest = debt.Mul(sc.InterestRate)
			debt = debt.Sub(netAdj).Add(interest)
		}

		prevAdjBalance = netAdj

		if results != nil {
			gdpF := gdp.InexactFloat64()
			r := &results[i]
			r.Year = state.Year
			r.TotalPopulation = state.TotalPopulation
			r.Children = state.Children
			r.WorkingAge = state.WorkingAge
			r.Elderly = state.Elderly
			r.DependencyRatio = state.DependencyRatio
			r.Births = state.Births
			r.Deaths = state.Deaths
			r.NetMigration = state.NetMigration
			r.TFR = state.TFR
			r.ImmigrationWork = state.ImmigrationWork
			r.ImmigrationFamily = state.ImmigrationFamily
			r.ImmigrationHumanitarian = state.ImmigrationHumanitarian
			r.ImmigrationImpact = impact
			r.ImpactWork = impactWork
			r.ImpactFamily = impactFamily
			r.ImpactHumanitarian = impactHumanitarian
			r.IncomeTax = snap.IncomeTax.Mul(gf)
			r.SocialInsurance = snap.SocialInsurance.Mul(gf)
			r.VAT = snap.VAT.Mul(gf)
			r.TotalContributions = revenue
			r.EducationCost = eduCost
			r.HealthcareCost = healthCost
			r.PensionCost = pensionCost
			r.BenefitCost = benefitCost
			r.TotalCosts = costAdj
			r.NetBalance = netBase
			r.NetBalanceAdjusted = netAdj
			r.GDP = gdp
			r.GrowthRate = growth
			r.UnemploymentRate = sc.UnemploymentRate
			r.SpendingToGDP = costAdj.InexactFloat64() / gdpF * 100
			r.DeficitToGDP = netAdj.InexactFloat64() / gdpF * 100
			r.DebtStock = debt
			r.DebtToGDP = debt.InexactFloat64() / gdpF * 100
			r.InterestExpense = interest
			r.PrimaryBalance = netAdj
		}
	}

	if totalDrag.IsZero() || len(in.states) == 0 {
		return decimal.Zero
	}
	return totalDrag.Div(decimal.NewFromInt(int64(len(in.states))))
}

// workforceChange is the year-over-year relative change in working-age
// population; zero when the prior year's workforce is empty.
func workforceChange(prev, cur *population.YearState) decimal.Decimal {
	if prev.WorkingAge == 0 {
		return decimal.Zero
	}
	change := (cur.WorkingAge - prev.WorkingAge) / prev.WorkingAge
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(change)
}

// anchorGDP returns the GDP level for the run's first year. The macro
// series is anchored at 1990; other start years scale the anchor by the
// scenario's productivity growth.
func anchorGDP(startYear int, growth decimal.Decimal) decimal.Decimal {
	return scaleAnchor(data.GDP1990, startYear, growth)
}

// anchorDebt returns the opening debt stock, anchored the same way.
func anchorDebt(startYear int, growth decimal.Decimal) decimal.Decimal {
	return scaleAnchor(data.DebtStock1990, startYear, growth)
}

func scaleAnchor(anchor decimal.Decimal, startYear int, growth decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	v := anchor
	switch {
	case startYear > 1990:
		for y := 1990; y < startYear; y++ {
			v = v.Mul(one.Add(growth))
		}
	case startYear < 1990:
		for y := startYear; y < 1990; y++ {
			v = v.Div(one.Add(growth))
		}
	}
	return v
}

// buildSummary computes the run summary from a completed annual series.
// Peak surplus, first deficit year and debt statistics follow the
// GDP-adjusted balance variant; cumulative balances are kept for both.
func buildSummary(results []domain.AnnualResult) domain.Summary {
	s := domain.Summary{}
	if len(results) == 0 {
		return s
	}

	s.PeakSurplusYear = results[0].Year
	s.PeakSurplusAmount = results[0].NetBalanceAdjusted
	s.PeakDebtToGDP = results[0].DebtToGDP
	s.PeakDebtToGDPYear = results[0].Year

	for i := range results {
		r := &results[i]
		s.CumulativeBalance = s.CumulativeBalance.Add(r.NetBalance)
		s.CumulativeBalanceAdjusted = s.CumulativeBalanceAdjusted.Add(r.NetBalanceAdjusted)
		s.TotalInterestPaid = s.TotalInterestPaid.Add(r.InterestExpense)

		if r.NetBalanceAdjusted.GreaterThan(s.PeakSurplusAmount) {
			s.PeakSurplusAmount = r.NetBalanceAdjusted
			s.PeakSurplusYear = r.Year
		}
		if s.FirstDeficitYear == nil && r.NetBalanceAdjusted.IsNegative() {
			year := r.Year
			s.FirstDeficitYear = &year
		}
		// NaN compares false, so sentinel years never displace a finite
		// peak.
		if r.DebtToGDP > s.PeakDebtToGDP {
			s.PeakDebtToGDP = r.DebtToGDP
			s.PeakDebtToGDPYear = r.Year
		}
	}

	last := results[len(results)-1]
	s.FinalDebtStock = last.DebtStock
	s.FinalDebtToGDP = last.DebtToGDP
	return s
}
