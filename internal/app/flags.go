package app

import (
	"flag"
	"maps"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Scenario       string
	Scale          int
	TPS            int
	StepsPerSecond int
	HUDWidth       int

	// Params holds the scenario keys given on the command line, passed
	// verbatim to the scenario factory.
	Params map[string]string
}

// scenarioFlags are forwarded to the scenario as key=value strings.
var scenarioFlags = []struct{ key, usage string }{
	{"nx", "lattice points along x"},
	{"ny", "lattice points along y"},
	{"a", "lattice spacing"},
	{"m1", "mass of particle 1"},
	{"m2", "mass of particle 2"},
	{"dt", "timestep"},
	{"px", "packet momentum"},
	{"width", "packet width"},
	{"potential", "relative potential (zero, soft-coulomb, gaussian, harmonic)"},
	{"strength", "soft-coulomb strength"},
	{"softening", "soft-coulomb softening length"},
	{"depth", "gaussian potential depth"},
	{"range", "gaussian potential range"},
	{"k", "harmonic potential stiffness"},
	{"n", "bound-pair principal quantum number"},
	{"lz", "bound-pair angular momentum"},
	{"well_width", "bound-pair well width"},
	{"steps_per_frame", "timesteps per displayed frame"},
	{"parallel", "parallel kernels"},
	{"workers", "worker count (0 = all CPUs)"},
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scenario:       "scatter",
		Scale:          12,
		TPS:            60,
		StepsPerSecond: 30,
		HUDWidth:       300,
		Params:         map[string]string{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.StepsPerSecond, "sps", c.StepsPerSecond, "displayed frames advanced per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	if c.Params == nil {
		c.Params = map[string]string{}
	}
	for _, f := range scenarioFlags {
		key := f.key
		fs.Func(key, f.usage, func(v string) error {
			c.Params[key] = v
			return nil
		})
	}
}

// ScenarioParams returns a copy of the forwarded scenario keys.
func (c *Config) ScenarioParams() map[string]string {
	return maps.Clone(c.Params)
}
