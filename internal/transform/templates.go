package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// Template is a named, pre-built list of transforms.
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// TemplateRegistry holds the available templates by name.
type TemplateRegistry struct {
	templates map[string]Template
}

// NewTemplateRegistry creates an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]Template)}
}

// Register adds or replaces a template.
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[t.Name] = t
}

// Get returns the named template.
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[name]
	return t, ok
}

// List returns the registered template names, sorted.
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates returns the registry of standard what-if
// variants. Each one flips a single policy lever relative to the base.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "zero_immigration",
		Description: "Close the borders: no immigration of any type",
		Transforms: []ScenarioTransform{
			SetImmigrationPreset{Preset: "zero"},
		},
	})

	registry.Register(Template{
		Name:        "work_immigration",
		Description: "Shift the inflow mix toward work-based immigration",
		Transforms: []ScenarioTransform{
			SetImmigrationPreset{Preset: "work_focused"},
		},
	})

	registry.Register(Template{
		Name:        "birth_recovery",
		Description: "Fertility recovers toward its 2010 level",
		Transforms: []ScenarioTransform{
			SetBirthPreset{Preset: "recovery"},
		},
	})

	registry.Register(Template{
		Name:        "nordic_births",
		Description: "Fertility converges to the Nordic average",
		Transforms: []ScenarioTransform{
			SetBirthPreset{Preset: "nordic"},
		},
	})

	registry.Register(Template{
		Name:        "strong_growth",
		Description: "Sustained strong productivity growth",
		Transforms: []ScenarioTransform{
			SetRatePreset{Axis: AxisGDPGrowth, Preset: "strong"},
		},
	})

	registry.Register(Template{
		Name:        "stagnation",
		Description: "Zero productivity growth over the whole horizon",
		Transforms: []ScenarioTransform{
			SetRatePreset{Axis: AxisGDPGrowth, Preset: "zero"},
		},
	})

	registry.Register(Template{
		Name:        "high_rates",
		Description: "Persistently high sovereign interest rates",
		Transforms: []ScenarioTransform{
			SetRatePreset{Axis: AxisInterestRate, Preset: "high"},
		},
	})

	registry.Register(Template{
		Name:        "full_employment",
		Description: "Structural unemployment falls to the low preset",
		Transforms: []ScenarioTransform{
			SetRatePreset{Axis: AxisUnemployment, Preset: "low"},
		},
	})

	registry.Register(Template{
		Name:        "deficit_feedback",
		Description: "Same assumptions with the fiscal multiplier enabled",
		Transforms: []ScenarioTransform{
			EnableFiscalMultiplier{},
		},
	})

	return registry
}

// ApplyTemplate derives a new scenario from base using the template's
// transforms. The result is renamed after the template.
func ApplyTemplate(base *domain.ScenarioConfig, template Template) (*domain.ScenarioConfig, error) {
	out, err := ApplyTransforms(base, template.Transforms)
	if err != nil {
		return nil, err
	}
	out.Name = template.Name
	out.Description = template.Description
	return out, nil
}

// ParseTemplateList splits a comma-separated template list, trimming
// whitespace and dropping empty entries.
func ParseTemplateList(templateList string) []string {
	parts := strings.Split(templateList, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// GetTemplateHelp renders the registry as CLI help text.
func GetTemplateHelp(registry *TemplateRegistry) string {
	var b strings.Builder
	b.WriteString("Available scenario templates:\n\n")
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		b.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}
	b.WriteString("\nUse with: truthsim compare <config> --with <template1>,<template2>\n")
	return b.String()
}
