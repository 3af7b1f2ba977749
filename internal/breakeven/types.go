// Package breakeven searches scenario levers for sustainability targets:
// given a base scenario, it finds the constant growth rate, fertility
// target or immigration volume that zeroes the cumulative GDP-adjusted
// balance over the simulation horizon.
package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// Target selects which scenario lever the solver searches over.
type Target string

const (
	TargetGrowthRate  Target = "growth_rate"
	TargetTFR         Target = "tfr"
	TargetImmigration Target = "immigration"
)

// Targets lists every supported lever in solve order.
var Targets = []Target{TargetGrowthRate, TargetTFR, TargetImmigration}

// Bounds is the inclusive search interval for one lever.
type Bounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// SolverOptions configures the bisection.
type SolverOptions struct {
	// Tolerance on the cumulative GDP-adjusted balance, EUR millions.
	Tolerance     decimal.Decimal
	MaxIterations int

	RateBounds        Bounds
	TFRBounds         Bounds
	ImmigrationBounds Bounds // total persons per year across all types
}

// DefaultSolverOptions returns the standard search configuration.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 100,
		RateBounds: Bounds{
			Min: decimal.NewFromFloat(-0.05),
			Max: decimal.NewFromFloat(0.10),
		},
		TFRBounds: Bounds{
			Min: decimal.Zero,
			Max: decimal.NewFromFloat(3.0),
		},
		ImmigrationBounds: Bounds{
			Min: decimal.Zero,
			Max: decimal.NewFromInt(200000),
		},
	}
}

// Request describes one solve: the base scenario, the simulation window
// and the lever to search.
type Request struct {
	Scenario  domain.ScenarioConfig
	StartYear int
	EndYear   int
	Target    Target
}

// Validate checks the request before any simulation runs.
func (r *Request) Validate() error {
	if r.StartYear > r.EndYear {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("start year %d is after end year %d", r.StartYear, r.EndYear),
		}
	}
	switch r.Target {
	case TargetGrowthRate, TargetTFR, TargetImmigration:
		return nil
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unsupported target %q", r.Target),
		}
	}
}

// Result is the outcome of one solve. Success is false when the bounds
// do not bracket a root; the optimal fields stay nil in that case.
type Result struct {
	Target          Target
	Success         bool
	Iterations      int
	ConvergenceInfo string

	OptimalRate        *decimal.Decimal
	OptimalTFR         *float64
	OptimalImmigration *float64

	// Summary of the run at the optimal lever value, nil on failure.
	Summary *domain.Summary
}

// MultiResult bundles one solve per supported lever.
type MultiResult struct {
	Results         []Result
	Recommendations []string
}

// BreakEvenError represents errors from the break-even solver.
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
