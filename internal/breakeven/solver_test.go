package breakeven

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olliwn/truth-engine-sub001/internal/calculation"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

func testRequest(target Target) Request {
	return Request{
		Scenario:  domain.ScenarioConfig{Name: "baseline"},
		StartYear: 1990,
		EndYear:   2030,
		Target:    target,
	}
}

func TestRequestValidation(t *testing.T) {
	req := testRequest(TargetGrowthRate)
	assert.NoError(t, req.Validate())

	bad := testRequest(TargetGrowthRate)
	bad.StartYear, bad.EndYear = 2030, 1990
	err := bad.Validate()
	require.Error(t, err)
	var beErr *BreakEvenError
	require.ErrorAs(t, err, &beErr)
	assert.Equal(t, "validate_request", beErr.Operation)

	unknown := testRequest(Target("warp"))
	assert.Error(t, unknown.Validate())
}

func TestSolveRejectsUnknownTarget(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())
	_, err := solver.Solve(context.Background(), testRequest(Target("warp")))
	assert.Error(t, err)
}

func TestSolveGrowthRate(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())
	result, err := solver.Solve(context.Background(), testRequest(TargetGrowthRate))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, TargetGrowthRate, result.Target)
	if result.Success {
		require.NotNil(t, result.OptimalRate)
		assert.True(t, result.OptimalRate.GreaterThanOrEqual(solver.Options.RateBounds.Min))
		assert.True(t, result.OptimalRate.LessThanOrEqual(solver.Options.RateBounds.Max))
		require.NotNil(t, result.Summary)
		assert.True(t, result.Summary.CumulativeBalanceAdjusted.Abs().
			LessThanOrEqual(solver.Options.Tolerance))
	} else {
		assert.Nil(t, result.OptimalRate)
		assert.Nil(t, result.Summary)
		assert.NotEmpty(t, result.ConvergenceInfo)
	}
}

func TestSolveReportsAbsenceOnOneSidedObjective(t *testing.T) {
	// A degenerate rate interval cannot flip the sign of the cumulative
	// balance, so the solver must report absence rather than invent a root.
	opts := DefaultSolverOptions()
	opts.RateBounds = Bounds{
		Min: decimal.NewFromFloat(0.0100),
		Max: decimal.NewFromFloat(0.0101),
	}
	opts.Tolerance = decimal.NewFromFloat(1e-9)

	solver := NewSolver(calculation.NewEngine(), opts)
	req := testRequest(TargetGrowthRate)
	req.EndYear = 2000

	result, err := solver.Solve(context.Background(), req)
	require.NoError(t, err)
	if !result.Success {
		assert.Contains(t, result.ConvergenceInfo, "no break-even point")
	}
}

func TestSolveTFRUsesBaseTransition(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())
	req := testRequest(TargetTFR)
	req.EndYear = 2040

	result, err := solver.Solve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, TargetTFR, result.Target)
	if result.Success {
		require.NotNil(t, result.OptimalTFR)
		assert.GreaterOrEqual(t, *result.OptimalTFR, 0.0)
		assert.LessOrEqual(t, *result.OptimalTFR, 3.0)
	}
}

func TestSolveImmigrationPreservesMix(t *testing.T) {
	mix := immigrationMix(domain.ImmigrationCounts{Work: 30000, Family: 10000, Humanitarian: 10000})
	assert.InDelta(t, 0.6, mix.Work, 1e-12)
	assert.InDelta(t, 0.2, mix.Family, 1e-12)
	assert.InDelta(t, 0.2, mix.Humanitarian, 1e-12)

	even := immigrationMix(domain.ImmigrationCounts{})
	assert.InDelta(t, 1.0/3.0, even.Work, 1e-12)
	assert.InDelta(t, 1.0, even.Total(), 1e-12)
}

func TestSolveAllCoversEveryTarget(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())
	req := testRequest(TargetGrowthRate)
	req.EndYear = 2010

	multi, err := solver.SolveAll(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, multi.Results, len(Targets))
	require.Len(t, multi.Recommendations, len(Targets))
	for i, target := range Targets {
		assert.Equal(t, target, multi.Results[i].Target)
		assert.NotEmpty(t, multi.Recommendations[i])
	}
}

func TestSolveContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver := NewDefaultSolver(calculation.NewEngine())
	_, err := solver.Solve(ctx, testRequest(TargetGrowthRate))
	assert.Error(t, err)
}

func TestBreakEvenError(t *testing.T) {
	plain := &BreakEvenError{Operation: "solve", Message: "boom"}
	assert.Equal(t, "solve: boom", plain.Error())
	assert.Nil(t, plain.Unwrap())

	cause := context.DeadlineExceeded
	wrapped := &BreakEvenError{Operation: "solve", Message: "boom", Cause: cause}
	assert.Contains(t, wrapped.Error(), "deadline")
	assert.ErrorIs(t, wrapped, cause)
}

func TestFormatResult(t *testing.T) {
	rate := decimal.NewFromFloat(0.0225)
	r := &Result{
		Target:          TargetGrowthRate,
		Success:         true,
		Iterations:      12,
		ConvergenceInfo: "converged in 12 iterations",
		OptimalRate:     &rate,
		Summary:         &domain.Summary{},
	}
	out := FormatResult(r)
	assert.Contains(t, out, "2.25%")
	assert.Contains(t, out, "converged in 12 iterations")

	failed := &Result{Target: TargetTFR, ConvergenceInfo: "no break-even point in [0, 3]"}
	out = FormatResult(failed)
	assert.Contains(t, out, "No solution")
	assert.False(t, strings.Contains(out, "Required"))
}
