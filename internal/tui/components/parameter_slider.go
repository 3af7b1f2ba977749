package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/Olliwn/truth-engine-sub001/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable scenario parameter with a
// visual slider bar.
type ParameterSlider struct {
	Label     string
	Value     float64
	Min       float64
	Max       float64
	Step      float64
	Unit      string
	Format    string
	Width     int
	IsFocused bool
}

// NewParameterSlider creates a slider with default formatting.
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	return &ParameterSlider{
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.2f",
		Width:  30,
	}
}

// WithUnit sets the unit suffix.
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithFormat sets the value format string.
func (p *ParameterSlider) WithFormat(format string) *ParameterSlider {
	p.Format = format
	return p
}

// Increment increases the value by one step, clamped at Max.
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value + p.Step)
}

// Decrement decreases the value by one step, clamped at Min.
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value - p.Step)
}

// SetValue sets the value directly, clamping to the range.
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// Percentage returns the value's position in the range, 0..1.
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// Render returns the styled slider line.
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	valueStr := fmt.Sprintf(p.Format, p.Value) + p.Unit

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-26s", p.Label)))
	b.WriteString(p.renderBar())
	b.WriteString(" ")
	b.WriteString(valueStyle.Render(fmt.Sprintf("%10s", valueStr)))
	return b.String()
}

func (p *ParameterSlider) renderBar() string {
	width := p.Width
	if width < 5 {
		width = 5
	}
	pos := int(math.Round(p.Percentage() * float64(width-1)))

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i == pos {
			b.WriteString(tuistyles.SliderThumbStyle.Render("o"))
		} else {
			b.WriteString(tuistyles.SliderTrackStyle.Render("-"))
		}
	}
	return "[" + b.String() + "]"
}
