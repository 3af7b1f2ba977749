package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/calculation"
	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// Solver finds the lever value that zeroes the cumulative GDP-adjusted
// balance at the horizon. Each probe is a full simulation run, so the
// fertility and immigration levers see their demographic consequences,
// not just the fiscal ones.
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a solver with explicit options.
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{Engine: engine, Options: options}
}

// NewDefaultSolver creates a solver with default options.
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve runs one lever search.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Target {
	case TargetGrowthRate:
		return s.solveGrowthRate(ctx, req)
	case TargetTFR:
		return s.solveTFR(ctx, req)
	case TargetImmigration:
		return s.solveImmigration(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target %q", req.Target),
		}
	}
}

// SolveAll runs every supported lever against the same base scenario and
// summarizes which ones can reach balance at all.
func (s *Solver) SolveAll(ctx context.Context, req Request) (*MultiResult, error) {
	multi := &MultiResult{}
	for _, target := range Targets {
		r := req
		r.Target = target
		result, err := s.Solve(ctx, r)
		if err != nil {
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
		multi.Recommendations = append(multi.Recommendations, recommendation(result))
	}
	return multi, nil
}

func (s *Solver) solveGrowthRate(ctx context.Context, req Request) (*Result, error) {
	eval := func(v decimal.Decimal) (*domain.SimulationResult, error) {
		cfg := req.Scenario
		rate := v
		cfg.GDPGrowth = domain.RateAxis{Custom: &rate}
		return s.Engine.SimulateRange(ctx, req.StartYear, req.EndYear, cfg)
	}

	result := &Result{Target: TargetGrowthRate}
	value, run, err := s.bisect(ctx, "solve_growth_rate", s.Options.RateBounds, eval, result)
	if err != nil || value == nil {
		return result, err
	}
	result.OptimalRate = value
	result.Summary = &run.Summary
	return result, nil
}

func (s *Solver) solveTFR(ctx context.Context, req Request) (*Result, error) {
	// The transition year comes from the base scenario so the search only
	// moves the target level, not the pace of change.
	base, err := data.ResolveScenario(req.Scenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_tfr", Message: "failed to resolve base scenario", Cause: err}
	}

	eval := func(v decimal.Decimal) (*domain.SimulationResult, error) {
		cfg := req.Scenario
		cfg.BirthRate = domain.BirthRateAxis{Custom: &domain.BirthRateTarget{
			TargetTFR:      v.InexactFloat64(),
			TransitionYear: base.TFRTransitionYear,
		}}
		return s.Engine.SimulateRange(ctx, req.StartYear, req.EndYear, cfg)
	}

	result := &Result{Target: TargetTFR}
	value, run, err := s.bisect(ctx, "solve_tfr", s.Options.TFRBounds, eval, result)
	if err != nil || value == nil {
		return result, err
	}
	tfr := value.InexactFloat64()
	result.OptimalTFR = &tfr
	result.Summary = &run.Summary
	return result, nil
}

func (s *Solver) solveImmigration(ctx context.Context, req Request) (*Result, error) {
	// The search scales the total inflow while preserving the base
	// scenario's mix of work, family and humanitarian arrivals.
	base, err := data.ResolveScenario(req.Scenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_immigration", Message: "failed to resolve base scenario", Cause: err}
	}
	mix := immigrationMix(base.Immigration)

	eval := func(v decimal.Decimal) (*domain.SimulationResult, error) {
		total := v.InexactFloat64()
		cfg := req.Scenario
		cfg.Immigration = domain.ImmigrationAxis{Custom: &domain.ImmigrationCounts{
			Work:         total * mix.Work,
			Family:       total * mix.Family,
			Humanitarian: total * mix.Humanitarian,
		}}
		return s.Engine.SimulateRange(ctx, req.StartYear, req.EndYear, cfg)
	}

	result := &Result{Target: TargetImmigration}
	value, run, err := s.bisect(ctx, "solve_immigration", s.Options.ImmigrationBounds, eval, result)
	if err != nil || value == nil {
		return result, err
	}
	total := value.InexactFloat64()
	result.OptimalImmigration = &total
	result.Summary = &run.Summary
	return result, nil
}

// immigrationMix returns the share of each inflow type; an all-zero base
// falls back to an even split so the lever still has something to scale.
func immigrationMix(counts domain.ImmigrationCounts) domain.ImmigrationCounts {
	total := counts.Total()
	if total <= 0 {
		third := 1.0 / 3.0
		return domain.ImmigrationCounts{Work: third, Family: third, Humanitarian: third}
	}
	return domain.ImmigrationCounts{
		Work:         counts.Work / total,
		Family:       counts.Family / total,
		Humanitarian: counts.Humanitarian / total,
	}
}

// bisect runs the sign-bracketed binary search over one lever. It fills
// the iteration count and convergence info on the result and returns the
// root value with the run at that value, or nil when the bounds do not
// bracket a root.
func (s *Solver) bisect(
	ctx context.Context,
	op string,
	bounds Bounds,
	eval func(decimal.Decimal) (*domain.SimulationResult, error),
	result *Result,
) (*decimal.Decimal, *domain.SimulationResult, error) {
	objective := func(v decimal.Decimal) (decimal.Decimal, *domain.SimulationResult, error) {
		run, err := eval(v)
		if err != nil {
			return decimal.Zero, nil, &BreakEvenError{Operation: op, Message: "scenario run failed", Cause: err}
		}
		return run.Summary.CumulativeBalanceAdjusted, run, nil
	}

	lo, hi := bounds.Min, bounds.Max
	fLo, runLo, err := objective(lo)
	if err != nil {
		return nil, nil, err
	}
	fHi, runHi, err := objective(hi)
	if err != nil {
		return nil, nil, err
	}

	if fLo.Abs().LessThanOrEqual(s.Options.Tolerance) {
		result.Success = true
		result.ConvergenceInfo = "lower bound already balances"
		return &lo, runLo, nil
	}
	if fHi.Abs().LessThanOrEqual(s.Options.Tolerance) {
		result.Success = true
		result.ConvergenceInfo = "upper bound already balances"
		return &hi, runHi, nil
	}
	if fLo.Sign() == fHi.Sign() {
		result.ConvergenceInfo = fmt.Sprintf(
			"no break-even point in [%s, %s]: cumulative balance stays %s",
			lo.String(), hi.String(), signWord(fLo.Sign()))
		return nil, nil, nil
	}

	two := decimal.NewFromInt(2)
	for i := 0; i < s.Options.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}
		result.Iterations = i + 1

		mid := lo.Add(hi).Div(two)
		fMid, runMid, err := objective(mid)
		if err != nil {
			return nil, nil, err
		}

		if fMid.Abs().LessThanOrEqual(s.Options.Tolerance) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("converged in %d iterations", result.Iterations)
			return &mid, runMid, nil
		}
		if fMid.Sign() == fLo.Sign() {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	result.ConvergenceInfo = fmt.Sprintf("did not converge within %d iterations", s.Options.MaxIterations)
	return nil, nil, nil
}

func signWord(sign int) string {
	if sign < 0 {
		return "negative"
	}
	return "positive"
}

func recommendation(r *Result) string {
	if !r.Success {
		return fmt.Sprintf("%s: %s", r.Target, r.ConvergenceInfo)
	}
	switch r.Target {
	case TargetGrowthRate:
		return fmt.Sprintf("growth_rate: constant growth of %s%% balances the horizon",
			r.OptimalRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	case TargetTFR:
		return fmt.Sprintf("tfr: a fertility target of %.2f balances the horizon", *r.OptimalTFR)
	case TargetImmigration:
		return fmt.Sprintf("immigration: %.0f arrivals per year balance the horizon", *r.OptimalImmigration)
	default:
		return string(r.Target)
	}
}
