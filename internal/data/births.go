// Package data holds the static reference tables the simulator consumes:
// historical birth cohorts, mortality and fertility series, income decile
// curves, statutory rates and the named preset catalogs. Everything here
// is immutable after package init; the engine never mutates it.
package data

// birthsByYear is the recorded number of live births in Finland per year.
// Yearly values start in 1940 so the wartime swings and the 1945-49 baby
// boom shape the cohort structure correctly; earlier decades are carried
// as pivot years and interpolated.
var birthsByYear = map[int]float64{
	1940: 65722, 1941: 89565, 1942: 61672, 1943: 76112, 1944: 79446,
	1945: 95758, 1946: 106075, 1947: 108168, 1948: 107759, 1949: 103515,
	1950: 98065, 1951: 93063, 1952: 94314, 1953: 90866, 1954: 89845,
	1955: 89740, 1956: 88896, 1957: 86985, 1958: 81148, 1959: 83253,
	1960: 82129, 1961: 81996, 1962: 81454, 1963: 82251, 1964: 80428,
	1965: 77885, 1966: 77697, 1967: 77289, 1968: 73654, 1969: 67450,
	1970: 64559, 1971: 61067, 1972: 58864, 1973: 56787, 1974: 62472,
	1975: 65719, 1976: 66846, 1977: 65659, 1978: 63983, 1979: 63428,
	1980: 63064, 1981: 63469, 1982: 66106, 1983: 66892, 1984: 65076,
	1985: 62796, 1986: 60632, 1987: 59827, 1988: 63316, 1989: 63348,
	1990: 65549, 1991: 65395, 1992: 66731, 1993: 64826, 1994: 65231,
	1995: 63067, 1996: 60723, 1997: 59329, 1998: 57108, 1999: 57574,
	2000: 56742, 2001: 56189, 2002: 55555, 2003: 56630, 2004: 57758,
	2005: 57745, 2006: 58840, 2007: 58729, 2008: 59530, 2009: 60430,
	2010: 60980, 2011: 59961, 2012: 59493, 2013: 58134, 2014: 57232,
	2015: 55472, 2016: 52814, 2017: 50321, 2018: 47577, 2019: 45613,
	2020: 46463, 2021: 49594, 2022: 44951, 2023: 43383, 2024: 43711,
}

// birthPivots covers 1900-1939 at decade resolution.
var birthPivots = []struct {
	Year   int
	Births float64
}{
	{1900, 86339},
	{1910, 92984},
	{1920, 84714},
	{1930, 75236},
	{1940, 65722},
}

// LastHistoricalYear is the horizon of the recorded demographic series.
// Births, fertility and mortality beyond it come from the scenario model.
const LastHistoricalYear = 2024

// EarliestCohortYear bounds the seeded cohort structure; people born
// before it land in the terminal age band at seed time.
const EarliestCohortYear = 1900

// BirthsForYear returns the recorded birth cohort size for a year, or
// (0, false) when the year is outside the recorded range.
func BirthsForYear(year int) (float64, bool) {
	if year > LastHistoricalYear || year < EarliestCohortYear {
		return 0, false
	}
	if b, ok := birthsByYear[year]; ok {
		return b, true
	}
	// Pre-1940: interpolate between decade pivots.
	for i := 1; i < len(birthPivots); i++ {
		lo, hi := birthPivots[i-1], birthPivots[i]
		if year >= lo.Year && year <= hi.Year {
			frac := float64(year-lo.Year) / float64(hi.Year-lo.Year)
			return lo.Births + frac*(hi.Births-lo.Births), true
		}
	}
	return 0, false
}
