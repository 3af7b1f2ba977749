package output

import (
	"bytes"
	"math"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

func sampleResult() *domain.SimulationResult {
	deficitYear := 1995
	result := &domain.SimulationResult{
		Scenario:  "baseline",
		StartYear: 1990,
		EndYear:   2000,
		Summary: domain.Summary{
			PeakSurplusYear:           1992,
			PeakSurplusAmount:         decimal.NewFromInt(1500),
			FirstDeficitYear:          &deficitYear,
			CumulativeBalance:         decimal.NewFromInt(-8000),
			CumulativeBalanceAdjusted: decimal.NewFromInt(-9500),
			PeakDebtToGDP:             61.2,
			PeakDebtToGDPYear:         2000,
			FinalDebtStock:            decimal.NewFromInt(55000),
			FinalDebtToGDP:            61.2,
			TotalInterestPaid:         decimal.NewFromInt(4200),
		},
	}
	for year := 1990; year <= 2000; year++ {
		result.AnnualResults = append(result.AnnualResults, domain.AnnualResult{
			Year:               year,
			TotalPopulation:    5_000_000,
			DependencyRatio:    21.5,
			TFR:                1.78,
			NetBalanceAdjusted: decimal.NewFromInt(int64(1990 - year)),
			GDP:                decimal.NewFromInt(90000),
			DebtStock:          decimal.NewFromInt(12700),
			DebtToGDP:          14.1,
		})
	}
	return result
}

func TestFormatterFor(t *testing.T) {
	for _, format := range []string{"console", "csv", "json", ""} {
		f, err := FormatterFor(format)
		require.NoError(t, err, format)
		require.NotNil(t, f)
	}

	_, err := FormatterFor("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestConsoleFormatter(t *testing.T) {
	data, err := (ConsoleFormatter{}).Format(sampleResult())
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "SIMULATION: baseline (1990-2000)")
	assert.Contains(t, out, "First deficit year:    1995")
	assert.Contains(t, out, "Final debt stock:      55000 MEUR")
	assert.Contains(t, out, "none within search bounds")

	// Five-year sampling plus the final year.
	assert.Contains(t, out, "1990")
	assert.Contains(t, out, "1995")
	assert.Contains(t, out, "2000")
	assert.NotContains(t, out, "\n1993 ")
}

func TestConsoleFormatterNoDeficit(t *testing.T) {
	result := sampleResult()
	result.Summary.FirstDeficitYear = nil
	rate := decimal.NewFromFloat(0.021)
	result.Summary.BreakevenGrowthRate = &rate

	data, err := (ConsoleFormatter{}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "First deficit year:    never")
	assert.Contains(t, string(data), "Breakeven growth:      2.10%")
}

func TestFormatRatioSentinels(t *testing.T) {
	assert.Equal(t, "12.3%", formatRatio(12.3))
	assert.Equal(t, "n/a", formatRatio(math.Inf(1)))
	assert.Equal(t, "n/a", formatRatio(math.NaN()))
}

func TestCSVFormatter(t *testing.T) {
	data, err := (CSVFormatter{}).Format(sampleResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 12, "header plus one row per year")
	assert.True(t, strings.HasPrefix(lines[0], "Year,TotalPopulation"))
	assert.True(t, strings.HasPrefix(lines[1], "1990,"))
	assert.True(t, strings.HasPrefix(lines[11], "2000,"))
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	data, err := (JSONFormatter{}).Format(sampleResult())
	require.NoError(t, err)

	var decoded domain.SimulationResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "baseline", decoded.Scenario)
	assert.Len(t, decoded.AnnualResults, 11)
	require.NotNil(t, decoded.Summary.FirstDeficitYear)
	assert.Equal(t, 1995, *decoded.Summary.FirstDeficitYear)
}

func TestWriteReport(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteReport(buf, sampleResult(), "console"))
	assert.Contains(t, buf.String(), "SIMULATION: baseline")

	assert.Error(t, WriteReport(&bytes.Buffer{}, sampleResult(), "xml"))
}
