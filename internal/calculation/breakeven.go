package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// Breakeven search bounds and convergence controls. The objective, the
// cumulative GDP-adjusted balance at the horizon as a function of a
// constant growth rate, has no closed form because the cost premiums
// compound, so the root is found by bounded bisection.
var (
	breakevenMinRate = decimal.NewFromFloat(-0.05)
	breakevenMaxRate = decimal.NewFromFloat(0.10)
	// Converged when the bracket is narrower than a tenth of a basis
	// point or the cumulative balance is within one million euros.
	breakevenRateTolerance    = decimal.NewFromFloat(0.00001)
	breakevenBalanceTolerance = decimal.NewFromInt(1)
	breakevenMaxIterations    = 100
)

// breakevenGrowthRate finds the constant annual growth rate that zeroes
// the cumulative GDP-adjusted balance over the run's horizon. Returns nil
// when the bounds do not bracket a root or the search fails to converge.
func (e *Engine) breakevenGrowthRate(in *foldInput) *decimal.Decimal {
	// The breakeven rate is defined without the deficit feedback loop.
	// Fold on a copy so the caller's scenario is never touched.
	search := *in
	search.noMultiplier = true

	objective := func(rate decimal.Decimal) decimal.Decimal {
		results := make([]domain.AnnualResult, len(search.states))
		e.runFold(&search, &rate, results)
		cum := decimal.Zero
		for i := range results {
			cum = cum.Add(results[i].NetBalanceAdjusted)
		}
		return cum
	}

	lo, hi := breakevenMinRate, breakevenMaxRate
	fLo := objective(lo)
	fHi := objective(hi)

	if fLo.Abs().LessThanOrEqual(breakevenBalanceTolerance) {
		return &lo
	}
	if fHi.Abs().LessThanOrEqual(breakevenBalanceTolerance) {
		return &hi
	}
	if fLo.Sign() == fHi.Sign() {
		e.Logger.Debugf("breakeven: no root in [%s, %s]", lo.String(), hi.String())
		return nil
	}

	two := decimal.NewFromInt(2)
	for i := 0; i < breakevenMaxIterations; i++ {
		mid := lo.Add(hi).Div(two)
		fMid := objective(mid)

		if fMid.Abs().LessThanOrEqual(breakevenBalanceTolerance) || hi.Sub(lo).LessThan(breakevenRateTolerance) {
			return &mid
		}
		if fMid.Sign() == fLo.Sign() {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	// Bracket never tightened enough; report the field as absent.
	e.Logger.Warnf("breakeven: bisection did not converge after %d iterations", breakevenMaxIterations)
	return nil
}
