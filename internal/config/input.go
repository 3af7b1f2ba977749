// Package config loads and validates scenario files. Invalid scenarios
// are rejected here, at the boundary, so the engine never sees them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// Default simulation window when a file leaves it unset.
const (
	DefaultStartYear = 1990
	DefaultEndYear   = 2060
)

// InputParser handles parsing of scenario configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a configuration from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(raw)
}

// Parse decodes and validates raw YAML configuration bytes.
func (ip *InputParser) Parse(raw []byte) (*domain.Configuration, error) {
	var cfg domain.Configuration
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Simulation.StartYear == 0 {
		cfg.Simulation.StartYear = DefaultStartYear
	}
	if cfg.Simulation.EndYear == 0 {
		cfg.Simulation.EndYear = DefaultEndYear
	}

	if err := ip.ValidateConfiguration(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ValidateConfiguration validates the loaded configuration.
func (ip *InputParser) ValidateConfiguration(cfg *domain.Configuration) error {
	if cfg.Simulation.StartYear > cfg.Simulation.EndYear {
		return fmt.Errorf("start year %d is after end year %d", cfg.Simulation.StartYear, cfg.Simulation.EndYear)
	}
	if cfg.Simulation.StartYear < data.EarliestCohortYear {
		return fmt.Errorf("start year %d predates the cohort data horizon (%d)", cfg.Simulation.StartYear, data.EarliestCohortYear)
	}

	if len(cfg.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(cfg.Scenarios))
	for i := range cfg.Scenarios {
		sc := &cfg.Scenarios[i]
		if sc.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true

		if err := ip.validateScenario(sc); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", sc.Name, err)
		}
	}
	return nil
}

// validateScenario enforces the per-axis exclusivity invariant and
// rejects values the engine must never see. It also resolves the
// scenario once so unknown preset ids fail at load time, not run time.
func (ip *InputParser) validateScenario(sc *domain.ScenarioConfig) error {
	if sc.BirthRate.Preset != "" && sc.BirthRate.IsCustom() {
		return fmt.Errorf("birth rate: preset and custom are mutually exclusive")
	}
	if sc.Immigration.Preset != "" && sc.Immigration.IsCustom() {
		return fmt.Errorf("immigration: preset and custom are mutually exclusive")
	}
	if sc.GDPGrowth.Preset != "" && sc.GDPGrowth.IsCustom() {
		return fmt.Errorf("gdp growth: preset and custom are mutually exclusive")
	}
	if sc.InterestRate.Preset != "" && sc.InterestRate.IsCustom() {
		return fmt.Errorf("interest rate: preset and custom are mutually exclusive")
	}
	if sc.Unemployment.Preset != "" && sc.Unemployment.IsCustom() {
		return fmt.Errorf("unemployment: preset and custom are mutually exclusive")
	}

	if sc.BirthRate.IsCustom() {
		c := sc.BirthRate.Custom
		if c.TargetTFR < 0 {
			return fmt.Errorf("birth rate: target TFR must not be negative, got %.2f", c.TargetTFR)
		}
		if c.TargetTFR > 0 && c.TransitionYear <= 0 {
			return fmt.Errorf("birth rate: transition year is required with a custom target")
		}
	}
	if sc.Immigration.IsCustom() {
		c := sc.Immigration.Custom
		if c.Work < 0 || c.Family < 0 || c.Humanitarian < 0 {
			return fmt.Errorf("immigration: counts must not be negative")
		}
	}
	if sc.Spending != nil {
		if len(sc.Spending.Groups) == 0 {
			return fmt.Errorf("spending: at least one group is required when spending drivers are set")
		}
		for _, g := range sc.Spending.Groups {
			if g.Group == "" {
				return fmt.Errorf("spending: group name is required")
			}
			if g.BaseCost.IsNegative() {
				return fmt.Errorf("spending group %q: base cost must not be negative", g.Group)
			}
		}
	}

	if _, err := data.ResolveScenario(*sc); err != nil {
		return err
	}
	return nil
}
