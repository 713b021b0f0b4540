package pair

import (
	"fmt"
	"sort"
	"strconv"

	"twobody/internal/core"
	"twobody/internal/potential"
	"twobody/internal/wavefunc"
)

// Setup is everything NewRunner needs.
type Setup struct {
	Config     Config
	Potentials Potentials
	Wf1, Wf2   *wavefunc.State
}

// Runner builds a runner for the setup.
func (s Setup) Runner(opts ...Option) (*Runner, error) {
	return NewRunner(s.Config, s.Potentials, s.Wf1, s.Wf2, opts...)
}

// Scenario prepares initial states and potentials for cfg. params carries the
// same flag-style pairs cfg was parsed from.
type Scenario func(cfg Config, params map[string]string) (Setup, error)

var scenarios = map[string]Scenario{}

// RegisterScenario adds a named scenario.
func RegisterScenario(name string, s Scenario) {
	if name == "" || s == nil {
		return
	}
	scenarios[name] = s
}

// ScenarioNames lists the registered scenarios in sorted order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupScenario returns the named scenario.
func LookupScenario(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (have %v)", name, ScenarioNames())
	}
	return s, nil
}

// NewSetup parses params into a Config and runs the named scenario.
func NewSetup(name string, params map[string]string) (Setup, error) {
	s, err := LookupScenario(name)
	if err != nil {
		return Setup{}, err
	}
	cfg := FromMap(params)
	if err := cfg.Validate(); err != nil {
		return Setup{}, err
	}
	return s(cfg, params)
}

func floatValue(params map[string]string, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func intValue(params map[string]string, key string, def int) int {
	if v, ok := params[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func stringValue(params map[string]string, key, def string) string {
	if v, ok := params[key]; ok && v != "" {
		return v
	}
	return def
}

// scatter sends two packets head-on along x through the named interaction.
func scatter(cfg Config, params map[string]string) (Setup, error) {
	return packets(cfg, params, stringValue(params, "potential", "soft-coulomb"))
}

// free is scatter without interaction.
func free(cfg Config, params map[string]string) (Setup, error) {
	return packets(cfg, params, "zero")
}

func packets(cfg Config, params map[string]string, potName string) (Setup, error) {
	lat := cfg.Lattice()
	lx, ly := lat.Extent()
	width := floatValue(params, "width", lx/12)
	p := floatValue(params, "px", 2)

	rel, err := potential.New(potName, params)
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	pots, err := NewPotentials(cfg, rel, nil, nil)
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	wf1, err := wavefunc.Gaussian(lat, cfg.Mass1, wavefunc.GaussianParams{X0: lx / 4, Y0: ly / 2, Px: p, Width: width})
	if err != nil {
		return Setup{}, fmt.Errorf("%w: particle 1: %v", ErrInvalidConfig, err)
	}
	wf2, err := wavefunc.Gaussian(lat, cfg.Mass2, wavefunc.GaussianParams{X0: 3 * lx / 4, Y0: ly / 2, Px: -p, Width: width})
	if err != nil {
		return Setup{}, fmt.Errorf("%w: particle 2: %v", ErrInvalidConfig, err)
	}
	return Setup{Config: cfg, Potentials: pots, Wf1: wf1, Wf2: wf2}, nil
}

// boundPair holds particle 2 in a harmonic well in the (n, lz) eigenstate and
// fires particle 1 at it as a free packet.
func boundPair(cfg Config, params map[string]string) (Setup, error) {
	lat := cfg.Lattice()
	lx, ly := lat.Extent()
	n := intValue(params, "n", 0)
	lz := intValue(params, "lz", 0)
	wellWidth := floatValue(params, "well_width", lx/10)
	x0, y0 := lx/2, ly/2

	wf2, err := wavefunc.Bound(lat, cfg.Mass2, wavefunc.BoundParams{X0: x0, Y0: y0, Width: wellWidth, N: n, Lz: lz})
	if err != nil {
		return Setup{}, fmt.Errorf("%w: particle 2: %w", ErrInvalidConfig, err)
	}
	wf1, err := wavefunc.Gaussian(lat, cfg.Mass1, wavefunc.GaussianParams{
		X0:    lx / 8,
		Y0:    y0,
		Px:    floatValue(params, "px", 2),
		Width: floatValue(params, "width", lx/12),
	})
	if err != nil {
		return Setup{}, fmt.Errorf("%w: particle 1: %v", ErrInvalidConfig, err)
	}

	rel, err := potential.New(stringValue(params, "potential", "soft-coulomb"), params)
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	well := potential.HarmonicWell(x0, y0, cfg.Mass2, wavefunc.OscillatorFrequency(cfg.Mass2, wellWidth))
	pots, err := NewPotentials(cfg, rel, nil, well)
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Setup{Config: cfg, Potentials: pots, Wf1: wf1, Wf2: wf2}, nil
}

func init() {
	RegisterScenario("scatter", scatter)
	RegisterScenario("free", free)
	RegisterScenario("bound-pair", boundPair)

	for _, name := range ScenarioNames() {
		name := name
		core.Register(name, func(cfg map[string]string) (core.Sim, error) {
			return NewView(name, cfg)
		})
	}
}
