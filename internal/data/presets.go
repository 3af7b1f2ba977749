package data

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// BirthRatePreset is a named fertility assumption.
type BirthRatePreset struct {
	ID             string
	Label          string
	TargetTFR      float64
	TransitionYear int
}

// RatePreset is a named constant annual rate.
type RatePreset struct {
	ID    string
	Label string
	Rate  decimal.Decimal
}

// ImmigrationPreset is a named combination of the three inflow types.
type ImmigrationPreset struct {
	ID     string
	Label  string
	Counts domain.ImmigrationCounts
}

var birthRatePresets = map[string]BirthRatePreset{
	"current_trend": {"current_trend", "Current trend (TFR 1.25)", 1.25, 2030},
	"recovery":      {"recovery", "Gradual recovery (TFR 1.60)", 1.60, 2040},
	"nordic":        {"nordic", "Nordic level (TFR 1.85)", 1.85, 2045},
	"replacement":   {"replacement", "Replacement level (TFR 2.10)", 2.10, 2050},
}

var gdpPresets = map[string]RatePreset{
	"zero":     {"zero", "Stagnation (0.0%)", decimal.Zero},
	"slow":     {"slow", "Slow growth (1.0%)", decimal.NewFromFloat(0.010)},
	"baseline": {"baseline", "Baseline (1.5%)", decimal.NewFromFloat(0.015)},
	"strong":   {"strong", "Strong growth (2.5%)", decimal.NewFromFloat(0.025)},
}

var interestPresets = map[string]RatePreset{
	"low":      {"low", "Low rates (1.0%)", decimal.NewFromFloat(0.010)},
	"baseline": {"baseline", "Baseline (2.5%)", decimal.NewFromFloat(0.025)},
	"high":     {"high", "High rates (4.0%)", decimal.NewFromFloat(0.040)},
}

var unemploymentPresets = map[string]RatePreset{
	"low":      {"low", "Low unemployment (5.0%)", decimal.NewFromFloat(0.050)},
	"baseline": {"baseline", "Baseline (7.2%)", decimal.NewFromFloat(0.072)},
	"high":     {"high", "High unemployment (10.0%)", decimal.NewFromFloat(0.100)},
}

var immigrationPresets = map[string]ImmigrationPreset{
	"current":      {"current", "Current levels", domain.ImmigrationCounts{Work: 15000, Family: 15000, Humanitarian: 10000}},
	"work_focused": {"work_focused", "Work-based emphasis", domain.ImmigrationCounts{Work: 30000, Family: 10000, Humanitarian: 5000}},
	"reduced":      {"reduced", "Reduced inflows", domain.ImmigrationCounts{Work: 8000, Family: 8000, Humanitarian: 4000}},
	"zero":         {"zero", "No immigration", domain.ImmigrationCounts{}},
}

// Default preset ids, used when an axis is left empty.
const (
	DefaultBirthRatePreset    = "current_trend"
	DefaultGDPPreset          = "baseline"
	DefaultInterestPreset     = "baseline"
	DefaultUnemploymentPreset = "baseline"
	DefaultImmigrationPreset  = "current"
)

// BirthRatePresets lists the catalog in stable id order.
func BirthRatePresets() []BirthRatePreset { return sortedPresets(birthRatePresets) }

// GDPPresets lists the catalog in stable id order.
func GDPPresets() []RatePreset { return sortedPresets(gdpPresets) }

// InterestPresets lists the catalog in stable id order.
func InterestPresets() []RatePreset { return sortedPresets(interestPresets) }

// UnemploymentPresets lists the catalog in stable id order.
func UnemploymentPresets() []RatePreset { return sortedPresets(unemploymentPresets) }

// ImmigrationPresets lists the catalog in stable id order.
func ImmigrationPresets() []ImmigrationPreset { return sortedPresets(immigrationPresets) }

func sortedPresets[T any](m map[string]T) []T {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]T, 0, len(m))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// ResolveScenario collapses every axis of a scenario configuration to its
// effective value, consulting the preset catalogs. Custom overrides win;
// empty axes fall back to the default preset. The result is validated and
// clamped so the engine never sees a degenerate input.
func ResolveScenario(cfg domain.ScenarioConfig) (*domain.ResolvedScenario, error) {
	resolved := &domain.ResolvedScenario{
		Name:             cfg.Name,
		Spending:         cfg.Spending,
		FiscalMultiplier: cfg.FiscalMultiplier,
	}

	switch {
	case cfg.BirthRate.IsCustom():
		target := *cfg.BirthRate.Custom
		if target.TargetTFR < 0 {
			target.TargetTFR = 0
		}
		resolved.TargetTFR = target.TargetTFR
		resolved.TFRTransitionYear = target.TransitionYear
	default:
		preset, err := lookupPreset(birthRatePresets, cfg.BirthRate.Preset, DefaultBirthRatePreset, "birth rate")
		if err != nil {
			return nil, err
		}
		resolved.TargetTFR = preset.TargetTFR
		resolved.TFRTransitionYear = preset.TransitionYear
	}

	switch {
	case cfg.Immigration.IsCustom():
		resolved.Immigration = cfg.Immigration.Custom.Clamped()
	default:
		preset, err := lookupPreset(immigrationPresets, cfg.Immigration.Preset, DefaultImmigrationPreset, "immigration")
		if err != nil {
			return nil, err
		}
		resolved.Immigration = preset.Counts
	}

	var err error
	if resolved.ProductivityGrowth, err = resolveRate(cfg.GDPGrowth, gdpPresets, DefaultGDPPreset, "gdp growth"); err != nil {
		return nil, err
	}
	if resolved.InterestRate, err = resolveRate(cfg.InterestRate, interestPresets, DefaultInterestPreset, "interest rate"); err != nil {
		return nil, err
	}
	if resolved.UnemploymentRate, err = resolveRate(cfg.Unemployment, unemploymentPresets, DefaultUnemploymentPreset, "unemployment"); err != nil {
		return nil, err
	}

	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func resolveRate(axis domain.RateAxis, catalog map[string]RatePreset, def, kind string) (decimal.Decimal, error) {
	if axis.IsCustom() {
		return *axis.Custom, nil
	}
	preset, err := lookupPreset(catalog, axis.Preset, def, kind)
	if err != nil {
		return decimal.Zero, err
	}
	return preset.Rate, nil
}

func lookupPreset[T any](catalog map[string]T, id, def, kind string) (T, error) {
	if id == "" {
		id = def
	}
	preset, ok := catalog[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s preset %q", kind, id)
	}
	return preset, nil
}
