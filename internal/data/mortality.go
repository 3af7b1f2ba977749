package data

// Sex indexes the two columns of every age-by-sex table.
type Sex int

const (
	Male Sex = iota
	Female
)

// MaleBirthShare is the share of live births that are boys.
const MaleBirthShare = 0.512

// mortalityPivot is an annual death probability at a pivot age, at
// reference-year (2024) mortality levels.
type mortalityPivot struct {
	Age    int
	Male   float64
	Female float64
}

// mortalityBase holds 2024 qx values at pivot ages; intermediate ages are
// interpolated linearly. Source shape follows Statistics Finland life
// tables.
var mortalityBase = []mortalityPivot{
	{0, 0.0020, 0.0017},
	{1, 0.00020, 0.00015},
	{5, 0.00008, 0.00006},
	{10, 0.00008, 0.00006},
	{15, 0.00020, 0.00010},
	{20, 0.00060, 0.00020},
	{25, 0.00080, 0.00025},
	{30, 0.00090, 0.00030},
	{35, 0.00110, 0.00040},
	{40, 0.00150, 0.00070},
	{45, 0.00220, 0.00110},
	{50, 0.00350, 0.00180},
	{55, 0.00550, 0.00280},
	{60, 0.00850, 0.00450},
	{65, 0.0130, 0.0070},
	{70, 0.0210, 0.0110},
	{75, 0.0350, 0.0200},
	{80, 0.0600, 0.0380},
	{85, 0.1050, 0.0750},
	{90, 0.1800, 0.1400},
	{95, 0.2800, 0.2400},
	{100, 0.4000, 0.3600},
}

// mortalityImprovement is the observed average annual decline in death
// probabilities. Historical years are reconstructed by inflating the 2024
// base backwards; years past the data horizon keep the 2024 rates.
const mortalityImprovement = 0.018

// MaxAge is the terminal age band; it absorbs everyone aged 100 and over.
const MaxAge = 100

// MortalityRate returns the probability of dying within the year for a
// person of the given age and sex. Years after LastHistoricalYear fall
// back to the latest available rates, with no further extrapolation.
func MortalityRate(year, age int, sex Sex) float64 {
	if age < 0 {
		return 0
	}
	if age > MaxAge {
		age = MaxAge
	}
	base := interpolateMortality(age, sex)
	if year >= LastHistoricalYear {
		return base
	}
	factor := 1.0
	for y := year; y < LastHistoricalYear; y++ {
		factor *= 1 + mortalityImprovement
	}
	q := base * factor
	if q > 0.95 {
		q = 0.95
	}
	return q
}

func interpolateMortality(age int, sex Sex) float64 {
	pick := func(p mortalityPivot) float64 {
		if sex == Male {
			return p.Male
		}
		return p.Female
	}
	last := mortalityBase[len(mortalityBase)-1]
	if age >= last.Age {
		return pick(last)
	}
	for i := 1; i < len(mortalityBase); i++ {
		lo, hi := mortalityBase[i-1], mortalityBase[i]
		if age >= lo.Age && age <= hi.Age {
			frac := float64(age-lo.Age) / float64(hi.Age-lo.Age)
			return pick(lo) + frac*(pick(hi)-pick(lo))
		}
	}
	return pick(mortalityBase[0])
}
