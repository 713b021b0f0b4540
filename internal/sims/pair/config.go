package pair

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"runtime"
	"strconv"

	"twobody/internal/core"
)

// ErrInvalidConfig wraps every configuration error reported before a run.
var ErrInvalidConfig = errors.New("pair: invalid configuration")

// Config is the immutable run configuration for a two-particle simulation.
type Config struct {
	Nx, Ny  int
	Spacing float64

	Mass1, Mass2 float64

	Dt        float64
	TotalTime float64
	Frames    int

	// Parallel fans the grid passes out across Workers goroutines; zero
	// Workers means one per CPU.
	Parallel bool
	Workers  int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Nx:        24,
		Ny:        24,
		Spacing:   0.5,
		Mass1:     1,
		Mass2:     1,
		Dt:        0.01,
		TotalTime: 2,
		Frames:    21,
		Parallel:  true,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed values keep their defaults; Validate reports the rest.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["nx"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Nx = parsed
		}
	}
	if v, ok := cfg["ny"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Ny = parsed
		}
	}
	if v, ok := cfg["a"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Spacing = parsed
		}
	}
	if v, ok := cfg["m1"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Mass1 = parsed
		}
	}
	if v, ok := cfg["m2"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Mass2 = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Dt = parsed
		}
	}
	if v, ok := cfg["t"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.TotalTime = parsed
		}
	}
	if v, ok := cfg["frames"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Frames = parsed
		}
	}
	if v, ok := cfg["parallel"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Parallel = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	return c
}

// Validate rejects configurations that cannot produce a run.
func (c Config) Validate() error {
	switch {
	case c.Nx <= 0 || c.Ny <= 0:
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, c.Nx, c.Ny)
	case !positive(c.Spacing):
		return fmt.Errorf("%w: spacing %g must be positive", ErrInvalidConfig, c.Spacing)
	case !positive(c.Mass1):
		return fmt.Errorf("%w: mass1 %g must be positive", ErrInvalidConfig, c.Mass1)
	case !positive(c.Mass2):
		return fmt.Errorf("%w: mass2 %g must be positive", ErrInvalidConfig, c.Mass2)
	case !positive(c.Dt):
		return fmt.Errorf("%w: dt %g must be positive", ErrInvalidConfig, c.Dt)
	case !positive(c.TotalTime):
		return fmt.Errorf("%w: total time %g must be positive", ErrInvalidConfig, c.TotalTime)
	case c.Frames < 1:
		return fmt.Errorf("%w: frames %d must be at least 1", ErrInvalidConfig, c.Frames)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

// Lattice returns the per-particle grid.
func (c Config) Lattice() core.Lattice { return core.NewLattice(c.Nx, c.Ny, c.Spacing) }

// Steps is the number of integrator steps in a run, round(T/dt)+1.
func (c Config) Steps() int { return int(math.Round(c.TotalTime/c.Dt)) + 1 }

// FrameStep returns the step index at which frame i is due.
func (c Config) FrameStep(i int) int {
	if c.Frames <= 1 {
		return 0
	}
	return int(math.Round(float64(i) * c.TotalTime / float64(c.Frames-1) / c.Dt))
}

// WorkerCount resolves the parallel fan-out width.
func (c Config) WorkerCount() int {
	if !c.Parallel {
		return 1
	}
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Nx, "nx", c.Nx, "grid points along x per particle")
	fs.IntVar(&c.Ny, "ny", c.Ny, "grid points along y per particle")
	fs.Float64Var(&c.Spacing, "a", c.Spacing, "lattice spacing")
	fs.Float64Var(&c.Mass1, "m1", c.Mass1, "mass of particle 1")
	fs.Float64Var(&c.Mass2, "m2", c.Mass2, "mass of particle 2")
	fs.Float64Var(&c.Dt, "dt", c.Dt, "timestep")
	fs.Float64Var(&c.TotalTime, "t", c.TotalTime, "total simulated time")
	fs.IntVar(&c.Frames, "frames", c.Frames, "number of output frames")
	fs.BoolVar(&c.Parallel, "parallel", c.Parallel, "fan grid passes out across goroutines")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel workers (0 = one per CPU)")
}
