// Package transform implements composable scenario transformations: small
// operations that derive a what-if variant from a base scenario, used by
// the comparison engine and the CLI's built-in templates.
package transform

import (
	"fmt"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// ScenarioTransform is one modification of a scenario. Transforms compose:
// a template is an ordered list of them.
type ScenarioTransform interface {
	// Apply returns a new scenario derived from base; base is not mutated.
	Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error)

	// Name returns a short identifier, e.g. "set_immigration_preset".
	Name() string

	// Description returns a human-readable summary of the modification.
	Description() string

	// Validate checks the transform parameters without applying it.
	Validate(base *domain.ScenarioConfig) error
}

// ApplyTransforms applies a sequence of transforms in order, each receiving
// the output of the previous one.
func ApplyTransforms(base *domain.ScenarioConfig, transforms []ScenarioTransform) (*domain.ScenarioConfig, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	current := base.DeepCopy()
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError reports a failure inside a transform.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
