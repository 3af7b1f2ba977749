package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/Olliwn/truth-engine-sub001/internal/calculation"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/transform"
)

// CompareEngine orchestrates multi-scenario runs.
type CompareEngine struct {
	CalcEngine *calculation.Engine
}

// NewCompareEngine creates a comparison engine.
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{CalcEngine: calcEngine}
}

// CompareOptions configures comparison behavior.
type CompareOptions struct {
	// BaseScenarioName selects the comparison base; empty picks the first
	// scenario in the configuration.
	BaseScenarioName string

	// Templates derives the alternatives from built-in what-if templates
	// applied to the base instead of the configuration's other scenarios.
	Templates []string
}

// Compare runs every scenario in the configuration and diffs the
// alternatives against the base.
func (ce *CompareEngine) Compare(ctx context.Context, config *domain.Configuration, options CompareOptions) (*ComparisonSet, error) {
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = config.Scenarios[0].Name
	}
	if config.ScenarioByName(baseName) == nil {
		return nil, fmt.Errorf("base scenario %q not found in configuration", baseName)
	}

	start, end := config.Simulation.StartYear, config.Simulation.EndYear
	set := &ComparisonSet{
		BaseScenarioName: baseName,
		StartYear:        start,
		EndYear:          end,
	}

	baseCfg := config.ScenarioByName(baseName)
	baseRun, err := ce.CalcEngine.SimulateRange(ctx, start, end, *baseCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to run base scenario %q: %w", baseName, err)
	}
	base := buildResult(baseCfg, baseRun)
	set.BaseResult = &base

	alternatives, err := ce.alternatives(config, baseCfg, options)
	if err != nil {
		return nil, err
	}
	for _, sc := range alternatives {
		run, err := ce.CalcEngine.SimulateRange(ctx, start, end, *sc)
		if err != nil {
			return nil, fmt.Errorf("failed to run scenario %q: %w", sc.Name, err)
		}
		alt := buildResult(sc, run)
		diffFromBase(&alt, &base)
		set.AlternativeResults = append(set.AlternativeResults, alt)
	}

	set.Recommendations = recommendations(set)
	return set, nil
}

// alternatives selects the scenarios to run against the base: template
// derivations when requested, the configuration's other scenarios
// otherwise.
func (ce *CompareEngine) alternatives(config *domain.Configuration, baseCfg *domain.ScenarioConfig, options CompareOptions) ([]*domain.ScenarioConfig, error) {
	if len(options.Templates) == 0 {
		out := make([]*domain.ScenarioConfig, 0, len(config.Scenarios)-1)
		for i := range config.Scenarios {
			if config.Scenarios[i].Name != baseCfg.Name {
				out = append(out, &config.Scenarios[i])
			}
		}
		return out, nil
	}

	registry := transform.CreateBuiltInTemplates()
	out := make([]*domain.ScenarioConfig, 0, len(options.Templates))
	for _, name := range options.Templates {
		tmpl, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template %q (known: %s)",
				name, strings.Join(registry.List(), ", "))
		}
		derived, err := transform.ApplyTemplate(baseCfg, tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %q: %w", name, err)
		}
		out = append(out, derived)
	}
	return out, nil
}

func buildResult(cfg *domain.ScenarioConfig, run *domain.SimulationResult) ComparisonResult {
	r := ComparisonResult{
		ScenarioName:      cfg.Name,
		Description:       cfg.Description,
		EndYear:           run.EndYear,
		FinalDebtToGDP:    run.Summary.FinalDebtToGDP,
		PeakDebtToGDP:     run.Summary.PeakDebtToGDP,
		FirstDeficitYear:  run.Summary.FirstDeficitYear,
		CumulativeBalance: run.Summary.CumulativeBalanceAdjusted,
		BreakevenRate:     run.Summary.BreakevenGrowthRate,
		Result:            run,
	}
	if last := run.ResultForYear(run.EndYear); last != nil {
		r.EndPopulation = last.TotalPopulation
		r.EndDependencyRatio = last.DependencyRatio
	}
	return r
}

func diffFromBase(alt, base *ComparisonResult) {
	alt.PopulationDiffFromBase = alt.EndPopulation - base.EndPopulation
	alt.DebtToGDPDiffFromBase = alt.FinalDebtToGDP - base.FinalDebtToGDP
	alt.BalanceDiffFromBase = alt.CumulativeBalance.Sub(base.CumulativeBalance)
}

// recommendations points out the standout alternatives; empty when there
// is nothing to compare.
func recommendations(set *ComparisonSet) []string {
	if len(set.AlternativeResults) == 0 {
		return nil
	}

	best := &set.AlternativeResults[0]
	for i := range set.AlternativeResults {
		if set.AlternativeResults[i].FinalDebtToGDP < best.FinalDebtToGDP {
			best = &set.AlternativeResults[i]
		}
	}

	recs := []string{}
	if best.FinalDebtToGDP < set.BaseResult.FinalDebtToGDP {
		recs = append(recs, fmt.Sprintf(
			"%q ends with the lowest debt-to-GDP (%.1f%%, %.1f points below base)",
			best.ScenarioName, best.FinalDebtToGDP, -best.DebtToGDPDiffFromBase))
	} else {
		recs = append(recs, fmt.Sprintf(
			"no alternative improves on the base debt-to-GDP of %.1f%%",
			set.BaseResult.FinalDebtToGDP))
	}

	for i := range set.AlternativeResults {
		alt := &set.AlternativeResults[i]
		if alt.FirstDeficitYear == nil && set.BaseResult.FirstDeficitYear != nil {
			recs = append(recs, fmt.Sprintf("%q avoids a deficit over the whole horizon", alt.ScenarioName))
		}
	}
	return recs
}
