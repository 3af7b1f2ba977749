package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// SetBirthPreset switches the fertility axis to a named preset.
type SetBirthPreset struct {
	Preset string
}

func (t SetBirthPreset) Name() string { return "set_birth_preset" }

func (t SetBirthPreset) Description() string {
	return fmt.Sprintf("Use the %q fertility preset", t.Preset)
}

func (t SetBirthPreset) Validate(base *domain.ScenarioConfig) error {
	probe := base.DeepCopy()
	probe.BirthRate = domain.BirthRateAxis{Preset: t.Preset}
	_, err := data.ResolveScenario(*probe)
	return err
}

func (t SetBirthPreset) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	out := base.DeepCopy()
	out.BirthRate = domain.BirthRateAxis{Preset: t.Preset}
	return out, nil
}

// SetImmigrationPreset switches the immigration axis to a named preset.
type SetImmigrationPreset struct {
	Preset string
}

func (t SetImmigrationPreset) Name() string { return "set_immigration_preset" }

func (t SetImmigrationPreset) Description() string {
	return fmt.Sprintf("Use the %q immigration preset", t.Preset)
}

func (t SetImmigrationPreset) Validate(base *domain.ScenarioConfig) error {
	probe := base.DeepCopy()
	probe.Immigration = domain.ImmigrationAxis{Preset: t.Preset}
	_, err := data.ResolveScenario(*probe)
	return err
}

func (t SetImmigrationPreset) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	out := base.DeepCopy()
	out.Immigration = domain.ImmigrationAxis{Preset: t.Preset}
	return out, nil
}

// RateAxisKind names one of the three plain rate axes.
type RateAxisKind string

const (
	AxisGDPGrowth    RateAxisKind = "gdp_growth"
	AxisInterestRate RateAxisKind = "interest_rate"
	AxisUnemployment RateAxisKind = "unemployment"
)

// SetRatePreset switches a plain rate axis to a named preset.
type SetRatePreset struct {
	Axis   RateAxisKind
	Preset string
}

func (t SetRatePreset) Name() string { return "set_" + string(t.Axis) + "_preset" }

func (t SetRatePreset) Description() string {
	return fmt.Sprintf("Use the %q %s preset", t.Preset, t.Axis)
}

func (t SetRatePreset) Validate(base *domain.ScenarioConfig) error {
	probe, err := t.Apply(base)
	if err != nil {
		return err
	}
	_, err = data.ResolveScenario(*probe)
	return err
}

func (t SetRatePreset) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	out := base.DeepCopy()
	axis := domain.RateAxis{Preset: t.Preset}
	switch t.Axis {
	case AxisGDPGrowth:
		out.GDPGrowth = axis
	case AxisInterestRate:
		out.InterestRate = axis
	case AxisUnemployment:
		out.Unemployment = axis
	default:
		return nil, &TransformError{
			TransformName: t.Name(),
			Operation:     "apply",
			Reason:        fmt.Sprintf("unknown rate axis %q", t.Axis),
		}
	}
	return out, nil
}

// EnableFiscalMultiplier turns on the deficit feedback extension.
type EnableFiscalMultiplier struct{}

func (EnableFiscalMultiplier) Name() string { return "enable_fiscal_multiplier" }

func (EnableFiscalMultiplier) Description() string {
	return "Enable the fiscal multiplier deficit feedback"
}

func (EnableFiscalMultiplier) Validate(*domain.ScenarioConfig) error { return nil }

func (EnableFiscalMultiplier) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	out := base.DeepCopy()
	out.FiscalMultiplier = true
	return out, nil
}

// ScaleSpending multiplies every spending group's base cost by Factor.
// It only applies to scenarios that carry an explicit spending model.
type ScaleSpending struct {
	Factor float64
}

func (t ScaleSpending) Name() string { return "scale_spending" }

func (t ScaleSpending) Description() string {
	return fmt.Sprintf("Scale spending driver base costs by %.0f%%", t.Factor*100)
}

func (t ScaleSpending) Validate(base *domain.ScenarioConfig) error {
	if t.Factor <= 0 {
		return &TransformError{
			TransformName: t.Name(),
			Operation:     "validate",
			Reason:        fmt.Sprintf("scale factor must be positive, got %.2f", t.Factor),
		}
	}
	if base.Spending == nil || len(base.Spending.Groups) == 0 {
		return &TransformError{
			TransformName: t.Name(),
			Operation:     "validate",
			Reason:        "base scenario has no spending driver model to scale",
		}
	}
	return nil
}

func (t ScaleSpending) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	out := base.DeepCopy()
	factor := decimal.NewFromFloat(t.Factor)
	for i := range out.Spending.Groups {
		out.Spending.Groups[i].BaseCost = out.Spending.Groups[i].BaseCost.Mul(factor)
	}
	return out, nil
}
