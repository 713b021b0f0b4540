package potential

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"twobody/internal/core"
)

// Zero is the non-interacting potential.
func Zero(dx, dy, domainX, domainY float64) float64 { return 0 }

// SoftCoulomb returns strength/sqrt(r²+softening²) using the minimum-image
// displacement on the periodic domain.
func SoftCoulomb(strength, softening float64) Func {
	s2 := softening * softening
	return func(dx, dy, domainX, domainY float64) float64 {
		dx = core.MinImage(dx, domainX)
		dy = core.MinImage(dy, domainY)
		return strength / math.Sqrt(dx*dx+dy*dy+s2)
	}
}

// Gaussian returns depth*exp(-r²/(2 width²)) on the minimum-image displacement.
func Gaussian(depth, width float64) Func {
	inv := 1 / (2 * width * width)
	return func(dx, dy, domainX, domainY float64) float64 {
		dx = core.MinImage(dx, domainX)
		dy = core.MinImage(dy, domainY)
		return depth * math.Exp(-(dx*dx+dy*dy)*inv)
	}
}

// Harmonic returns k r²/2 on the minimum-image displacement.
func Harmonic(k float64) Func {
	return func(dx, dy, domainX, domainY float64) float64 {
		dx = core.MinImage(dx, domainX)
		dy = core.MinImage(dy, domainY)
		return 0.5 * k * (dx*dx + dy*dy)
	}
}

// HarmonicWell binds a particle of the given mass to (x0, y0) with angular
// frequency omega.
func HarmonicWell(x0, y0, mass, omega float64) BindingFunc {
	k := mass * omega * omega
	return func(x, y, domainX, domainY float64) float64 {
		dx := core.MinImage(x-x0, domainX)
		dy := core.MinImage(y-y0, domainY)
		return 0.5 * k * (dx*dx + dy*dy)
	}
}

// CoulombWell is an attractive softened point charge at (x0, y0).
func CoulombWell(x0, y0, strength, softening float64) BindingFunc {
	s2 := softening * softening
	return func(x, y, domainX, domainY float64) float64 {
		dx := core.MinImage(x-x0, domainX)
		dy := core.MinImage(y-y0, domainY)
		return -strength / math.Sqrt(dx*dx+dy*dy+s2)
	}
}

// Factory constructs a relative potential from flag-style parameters.
type Factory func(params map[string]string) Func

var registry = map[string]Factory{}

// Register adds a named relative potential.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	registry[name] = f
}

// Names lists the registered potentials in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named relative potential.
func New(name string, params map[string]string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown potential %q (have %v)", name, Names())
	}
	return f(params), nil
}

func paramFloat(params map[string]string, key string, def float64) float64 {
	if params == nil {
		return def
	}
	if v, ok := params[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func init() {
	Register("zero", func(map[string]string) Func { return Zero })
	Register("soft-coulomb", func(p map[string]string) Func {
		return SoftCoulomb(paramFloat(p, "strength", 1), paramFloat(p, "softening", 1))
	})
	Register("gaussian", func(p map[string]string) Func {
		return Gaussian(paramFloat(p, "depth", 1), paramFloat(p, "range", 1))
	})
	Register("harmonic", func(p map[string]string) Func {
		return Harmonic(paramFloat(p, "k", 1))
	})
}
