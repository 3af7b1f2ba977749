package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/Olliwn/truth-engine-sub001/internal/tui/tuistyles"
)

// ASCIIChart renders a numeric series as a braille-free line chart with
// a labeled axis. Non-finite points are skipped.
type ASCIIChart struct {
	Title  string
	Width  int
	Height int
	Series []float64
	// StartLabel and EndLabel annotate the x axis, typically years.
	StartLabel string
	EndLabel   string
}

// NewASCIIChart creates a chart of the given dimensions.
func NewASCIIChart(title string, width, height int) *ASCIIChart {
	if width < 20 {
		width = 20
	}
	if height < 4 {
		height = 4
	}
	return &ASCIIChart{Title: title, Width: width, Height: height}
}

// Render draws the chart.
func (c *ASCIIChart) Render() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render(c.Title))
	b.WriteString("\n")

	points := c.samples()
	min, max, ok := bounds(points)
	if !ok {
		b.WriteString(tuistyles.SubtitleStyle.Render("no data"))
		return b.String()
	}
	if max == min {
		max = min + 1
	}

	grid := make([][]rune, c.Height)
	for row := range grid {
		grid[row] = make([]rune, len(points))
		for col := range grid[row] {
			grid[row][col] = ' '
		}
	}
	for col, v := range points {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		frac := (v - min) / (max - min)
		row := int(math.Round(frac * float64(c.Height-1)))
		grid[c.Height-1-row][col] = '*'
	}

	for row, line := range grid {
		label := "         "
		if row == 0 {
			label = fmt.Sprintf("%8.1f ", max)
		} else if row == c.Height-1 {
			label = fmt.Sprintf("%8.1f ", min)
		}
		b.WriteString(tuistyles.SubtitleStyle.Render(label))
		b.WriteString("|" + string(line) + "\n")
	}

	b.WriteString(strings.Repeat(" ", 9))
	b.WriteString("+" + strings.Repeat("-", len(points)) + "\n")
	if c.StartLabel != "" || c.EndLabel != "" {
		pad := len(points) - len(c.StartLabel) - len(c.EndLabel) + 1
		if pad < 1 {
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", 10))
		b.WriteString(c.StartLabel + strings.Repeat(" ", pad) + c.EndLabel + "\n")
	}
	return b.String()
}

// samples resamples the series to the chart width.
func (c *ASCIIChart) samples() []float64 {
	n := len(c.Series)
	if n == 0 {
		return nil
	}
	width := c.Width - 11 // room for the axis labels
	if width < 10 {
		width = 10
	}
	if n <= width {
		return c.Series
	}
	out := make([]float64, width)
	for i := range out {
		idx := i * (n - 1) / (width - 1)
		out[i] = c.Series[idx]
	}
	return out
}

func bounds(points []float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range points {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, min <= max
}
