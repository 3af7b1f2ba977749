package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliderClampsToRange(t *testing.T) {
	s := NewParameterSlider("test", 1.0, 0.0, 2.0, 0.5)

	s.SetValue(100)
	assert.Equal(t, 2.0, s.Value)

	s.SetValue(-100)
	assert.Equal(t, 0.0, s.Value)

	s.Increment()
	assert.Equal(t, 0.5, s.Value)

	s.SetValue(2.0)
	s.Increment()
	assert.Equal(t, 2.0, s.Value)

	s.SetValue(0.0)
	s.Decrement()
	assert.Equal(t, 0.0, s.Value)
}

func TestSliderPercentage(t *testing.T) {
	s := NewParameterSlider("test", 1.0, 0.0, 2.0, 0.5)
	assert.InDelta(t, 0.5, s.Percentage(), 1e-9)

	s.SetValue(2.0)
	assert.InDelta(t, 1.0, s.Percentage(), 1e-9)

	degenerate := NewParameterSlider("flat", 1.0, 1.0, 1.0, 0.1)
	assert.Equal(t, 0.0, degenerate.Percentage())
}

func TestSliderRenderContainsValue(t *testing.T) {
	s := NewParameterSlider("Interest rate", 2.5, 0.0, 6.0, 0.25).
		WithFormat("%.2f").WithUnit("%")
	out := s.Render()
	assert.Contains(t, out, "Interest rate")
	assert.Contains(t, out, "2.50%")
	assert.Contains(t, out, "[")
	assert.Contains(t, out, "]")
}

func TestChartRendersSeries(t *testing.T) {
	c := NewASCIIChart("Debt to GDP", 40, 10)
	c.StartLabel = "1990"
	c.EndLabel = "2060"
	values := make([]float64, 71)
	for i := range values {
		values[i] = 0.1 + float64(i)*0.01
	}
	c.Series = values

	out := c.Render()
	assert.Contains(t, out, "Debt to GDP")
	assert.Contains(t, out, "1990")
	assert.Contains(t, out, "2060")
	assert.Contains(t, out, "*")
	assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 10)
}

func TestChartHandlesEmptySeries(t *testing.T) {
	c := NewASCIIChart("empty", 40, 10)
	out := c.Render()
	assert.Contains(t, out, "no data")
}

func TestMetricCardRender(t *testing.T) {
	card := MetricCard{Label: "Population", Value: "5.21M"}
	out := card.Render()
	assert.Contains(t, out, "Population")
	assert.Contains(t, out, "5.21M")
}
