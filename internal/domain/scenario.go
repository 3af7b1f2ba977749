package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateAxis is a tunable rate that is either a named preset or an explicit
// custom value. Exactly one of the two is active; a non-nil Custom always
// wins over Preset.
type RateAxis struct {
	Preset string           `yaml:"preset,omitempty" json:"preset,omitempty"`
	Custom *decimal.Decimal `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// IsCustom reports whether the axis carries an explicit override.
func (a RateAxis) IsCustom() bool {
	return a.Custom != nil
}

// BirthRateTarget is an explicit fertility override: the total fertility
// rate the scenario converges to and the year the transition completes.
type BirthRateTarget struct {
	TargetTFR      float64 `yaml:"target_tfr" json:"targetTfr"`
	TransitionYear int     `yaml:"transition_year" json:"transitionYear"`
}

// BirthRateAxis selects the fertility assumption.
type BirthRateAxis struct {
	Preset string           `yaml:"preset,omitempty" json:"preset,omitempty"`
	Custom *BirthRateTarget `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// IsCustom reports whether the axis carries an explicit override.
func (a BirthRateAxis) IsCustom() bool {
	return a.Custom != nil
}

// ImmigrationCounts holds the three annual inflow counts, persons per year.
type ImmigrationCounts struct {
	Work         float64 `yaml:"work" json:"work"`
	Family       float64 `yaml:"family" json:"family"`
	Humanitarian float64 `yaml:"humanitarian" json:"humanitarian"`
}

// Clamped returns a copy with negative counts raised to zero.
func (c ImmigrationCounts) Clamped() ImmigrationCounts {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}
	return ImmigrationCounts{
		Work:         clamp(c.Work),
		Family:       clamp(c.Family),
		Humanitarian: clamp(c.Humanitarian),
	}
}

// Total returns the combined annual inflow.
func (c ImmigrationCounts) Total() float64 {
	return c.Work + c.Family + c.Humanitarian
}

// ImmigrationAxis selects the immigration assumption.
type ImmigrationAxis struct {
	Preset string             `yaml:"preset,omitempty" json:"preset,omitempty"`
	Custom *ImmigrationCounts `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// IsCustom reports whether the axis carries an explicit override.
func (a ImmigrationAxis) IsCustom() bool {
	return a.Custom != nil
}

// SpendingGroup configures a population-weighted spending driver for one
// COFOG category group. Weights describe how strongly each broad age band
// drives the group's cost; they need not sum to one.
type SpendingGroup struct {
	Group         string          `yaml:"group" json:"group"`
	BaseCost      decimal.Decimal `yaml:"base_cost" json:"baseCost"` // EUR millions at reference-year prices
	ChildWeight   float64         `yaml:"child_weight" json:"childWeight"`
	WorkingWeight float64         `yaml:"working_weight" json:"workingWeight"`
	ElderlyWeight float64         `yaml:"elderly_weight" json:"elderlyWeight"`
	GrowthPremium decimal.Decimal `yaml:"growth_premium" json:"growthPremium"` // annual rate above GDP growth
}

// SpendingConfig is the optional per-COFOG-group spending driver model.
// When present it replaces the default cost drivers entirely.
type SpendingConfig struct {
	Groups []SpendingGroup `yaml:"groups" json:"groups"`
}

// ScenarioConfig is the full input for one simulation run. It is immutable
// once handed to the engine; every tunable axis is either a preset id or a
// custom override.
type ScenarioConfig struct {
	Name             string          `yaml:"name" json:"name"`
	Description      string          `yaml:"description,omitempty" json:"description,omitempty"`
	BirthRate        BirthRateAxis   `yaml:"birth_rate" json:"birthRate"`
	Immigration      ImmigrationAxis `yaml:"immigration" json:"immigration"`
	GDPGrowth        RateAxis        `yaml:"gdp_growth" json:"gdpGrowth"`
	InterestRate     RateAxis        `yaml:"interest_rate" json:"interestRate"`
	Unemployment     RateAxis        `yaml:"unemployment" json:"unemployment"`
	Spending         *SpendingConfig `yaml:"spending,omitempty" json:"spending,omitempty"`
	FiscalMultiplier bool            `yaml:"fiscal_multiplier,omitempty" json:"fiscalMultiplier,omitempty"`
}

// DeepCopy returns an independent copy, cloning every pointer field so the
// copy can be mutated without touching the original.
func (s *ScenarioConfig) DeepCopy() *ScenarioConfig {
	out := *s
	if s.BirthRate.Custom != nil {
		c := *s.BirthRate.Custom
		out.BirthRate.Custom = &c
	}
	if s.Immigration.Custom != nil {
		c := *s.Immigration.Custom
		out.Immigration.Custom = &c
	}
	if s.GDPGrowth.Custom != nil {
		c := *s.GDPGrowth.Custom
		out.GDPGrowth.Custom = &c
	}
	if s.InterestRate.Custom != nil {
		c := *s.InterestRate.Custom
		out.InterestRate.Custom = &c
	}
	if s.Unemployment.Custom != nil {
		c := *s.Unemployment.Custom
		out.Unemployment.Custom = &c
	}
	if s.Spending != nil {
		sp := SpendingConfig{Groups: make([]SpendingGroup, len(s.Spending.Groups))}
		copy(sp.Groups, s.Spending.Groups)
		out.Spending = &sp
	}
	return &out
}

// ResolvedScenario is a ScenarioConfig with every axis collapsed to its
// effective value. The engine only ever sees resolved scenarios, so no
// preset lookups or branching on axis kind happen inside the fold.
type ResolvedScenario struct {
	Name               string
	TargetTFR          float64
	TFRTransitionYear  int
	Immigration        ImmigrationCounts
	ProductivityGrowth decimal.Decimal // annual real GDP growth from productivity
	InterestRate       decimal.Decimal // applied to prior-year debt stock
	UnemploymentRate   decimal.Decimal
	Spending           *SpendingConfig
	FiscalMultiplier   bool
}

// Validate rejects configurations the engine must never see.
func (s *ResolvedScenario) Validate() error {
	if s.TargetTFR < 0 {
		return fmt.Errorf("target TFR must not be negative, got %.2f", s.TargetTFR)
	}
	if s.Immigration.Work < 0 || s.Immigration.Family < 0 || s.Immigration.Humanitarian < 0 {
		return fmt.Errorf("immigration counts must not be negative")
	}
	if s.UnemploymentRate.LessThan(decimal.Zero) || s.UnemploymentRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("unemployment rate must be between 0 and 1, got %s", s.UnemploymentRate.String())
	}
	return nil
}
