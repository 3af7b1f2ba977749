package domain

// SimulationWindow is the inclusive year range of a run.
type SimulationWindow struct {
	StartYear int `yaml:"start_year" json:"startYear"`
	EndYear   int `yaml:"end_year" json:"endYear"`
}

// Configuration is a parsed scenario file: the simulation window plus a
// list of named scenarios. The first scenario acts as the comparison base
// when none is named explicitly.
type Configuration struct {
	Simulation SimulationWindow `yaml:"simulation" json:"simulation"`
	Scenarios  []ScenarioConfig `yaml:"scenarios" json:"scenarios"`
}

// ScenarioByName returns the named scenario, or nil when absent.
func (c *Configuration) ScenarioByName(name string) *ScenarioConfig {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i]
		}
	}
	return nil
}
