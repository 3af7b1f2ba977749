package data

// tfrByYear is the recorded total fertility rate series.
var tfrByYear = map[int]float64{
	1990: 1.78, 1991: 1.79, 1992: 1.85, 1993: 1.81, 1994: 1.85,
	1995: 1.81, 1996: 1.76, 1997: 1.75, 1998: 1.70, 1999: 1.73,
	2000: 1.73, 2001: 1.73, 2002: 1.72, 2003: 1.76, 2004: 1.80,
	2005: 1.80, 2006: 1.84, 2007: 1.83, 2008: 1.85, 2009: 1.86,
	2010: 1.87, 2011: 1.83, 2012: 1.80, 2013: 1.75, 2014: 1.71,
	2015: 1.65, 2016: 1.57, 2017: 1.49, 2018: 1.41, 2019: 1.35,
	2020: 1.37, 2021: 1.46, 2022: 1.32, 2023: 1.26, 2024: 1.25,
}

// Childbearing age bounds, inclusive.
const (
	FertilityMinAge = 15
	FertilityMaxAge = 49
)

// fertilityShapePivots is the relative age distribution of fertility;
// absolute rates come from scaling the normalized shape by the active TFR.
// The shape is held constant across the whole horizon.
var fertilityShapePivots = []struct {
	Age    int
	Weight float64
}{
	{15, 0.2},
	{18, 1.0},
	{20, 2.5},
	{23, 5.0},
	{25, 8.0},
	{28, 11.0},
	{30, 12.0},
	{33, 11.0},
	{35, 8.5},
	{38, 5.0},
	{40, 3.0},
	{43, 1.2},
	{45, 0.4},
	{47, 0.15},
	{49, 0.05},
}

// fertilityShape is the normalized per-age weight, summing to one over the
// childbearing range. Built once at init.
var fertilityShape [FertilityMaxAge - FertilityMinAge + 1]float64

func init() {
	var total float64
	raw := make([]float64, len(fertilityShape))
	for i := range raw {
		raw[i] = interpolateFertilityWeight(FertilityMinAge + i)
		total += raw[i]
	}
	for i := range raw {
		fertilityShape[i] = raw[i] / total
	}
}

func interpolateFertilityWeight(age int) float64 {
	pivots := fertilityShapePivots
	if age <= pivots[0].Age {
		return pivots[0].Weight
	}
	last := pivots[len(pivots)-1]
	if age >= last.Age {
		return last.Weight
	}
	for i := 1; i < len(pivots); i++ {
		lo, hi := pivots[i-1], pivots[i]
		if age >= lo.Age && age <= hi.Age {
			frac := float64(age-lo.Age) / float64(hi.Age-lo.Age)
			return lo.Weight + frac*(hi.Weight-lo.Weight)
		}
	}
	return 0
}

// HistoricalTFR returns the recorded TFR for a year, or (0, false) outside
// the recorded series.
func HistoricalTFR(year int) (float64, bool) {
	v, ok := tfrByYear[year]
	return v, ok
}

// CurrentTFR is the last recorded value, the starting point for scenario
// fertility transitions.
func CurrentTFR() float64 {
	return tfrByYear[LastHistoricalYear]
}

// FertilityShare returns the normalized share of total fertility falling
// on women of the given age; zero outside the childbearing range.
func FertilityShare(age int) float64 {
	if age < FertilityMinAge || age > FertilityMaxAge {
		return 0
	}
	return fertilityShape[age-FertilityMinAge]
}
