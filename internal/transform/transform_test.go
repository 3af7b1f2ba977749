package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

func baseScenario() *domain.ScenarioConfig {
	return &domain.ScenarioConfig{
		Name:        "baseline",
		Description: "all defaults",
	}
}

func TestApplyTransformsCopiesBase(t *testing.T) {
	base := baseScenario()
	out, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	require.NotSame(t, base, out)
	assert.Equal(t, base.Name, out.Name)
}

func TestApplyTransformsNilBase(t *testing.T) {
	_, err := ApplyTransforms(nil, nil)
	assert.Error(t, err)
}

func TestSetImmigrationPreset(t *testing.T) {
	base := baseScenario()
	out, err := ApplyTransforms(base, []ScenarioTransform{
		SetImmigrationPreset{Preset: "zero"},
	})
	require.NoError(t, err)
	assert.Equal(t, "zero", out.Immigration.Preset)
	// base untouched
	assert.Empty(t, base.Immigration.Preset)

	resolved, err := data.ResolveScenario(*out)
	require.NoError(t, err)
	assert.Zero(t, resolved.Immigration.Total())
}

func TestUnknownPresetFailsValidation(t *testing.T) {
	_, err := ApplyTransforms(baseScenario(), []ScenarioTransform{
		SetBirthPreset{Preset: "no_such_preset"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestSetRatePresetAxes(t *testing.T) {
	out, err := ApplyTransforms(baseScenario(), []ScenarioTransform{
		SetRatePreset{Axis: AxisGDPGrowth, Preset: "strong"},
		SetRatePreset{Axis: AxisInterestRate, Preset: "high"},
		SetRatePreset{Axis: AxisUnemployment, Preset: "low"},
	})
	require.NoError(t, err)
	assert.Equal(t, "strong", out.GDPGrowth.Preset)
	assert.Equal(t, "high", out.InterestRate.Preset)
	assert.Equal(t, "low", out.Unemployment.Preset)
}

func TestScaleSpending(t *testing.T) {
	base := baseScenario()
	base.Spending = &domain.SpendingConfig{
		Groups: []domain.SpendingGroup{
			{Group: "health", BaseCost: decimal.NewFromInt(20000), ElderlyWeight: 1},
		},
	}

	out, err := ApplyTransforms(base, []ScenarioTransform{ScaleSpending{Factor: 0.9}})
	require.NoError(t, err)
	assert.True(t, out.Spending.Groups[0].BaseCost.Equal(decimal.NewFromInt(18000)),
		"got %s", out.Spending.Groups[0].BaseCost)
	assert.True(t, base.Spending.Groups[0].BaseCost.Equal(decimal.NewFromInt(20000)))
}

func TestScaleSpendingRequiresSpendingModel(t *testing.T) {
	_, err := ApplyTransforms(baseScenario(), []ScenarioTransform{ScaleSpending{Factor: 0.9}})
	require.Error(t, err)

	var terr *TransformError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "scale_spending", terr.TransformName)
}

func TestBuiltInTemplatesAllApply(t *testing.T) {
	registry := CreateBuiltInTemplates()
	require.NotEmpty(t, registry.List())

	for _, name := range registry.List() {
		tmpl, ok := registry.Get(name)
		require.True(t, ok)

		derived, err := ApplyTemplate(baseScenario(), tmpl)
		require.NoError(t, err, "template %s", name)
		assert.Equal(t, name, derived.Name)

		_, err = data.ResolveScenario(*derived)
		require.NoError(t, err, "template %s must resolve", name)
	}
}

func TestParseTemplateList(t *testing.T) {
	assert.Empty(t, ParseTemplateList(""))
	assert.Equal(t, []string{"a", "b"}, ParseTemplateList(" a , b ,"))
}

func TestGetTemplateHelpListsAll(t *testing.T) {
	registry := CreateBuiltInTemplates()
	help := GetTemplateHelp(registry)
	for _, name := range registry.List() {
		assert.Contains(t, help, name)
	}
}
