package pair

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"twobody/internal/core"
)

// Particle selects one of the two particles.
type Particle int

const (
	Particle1 Particle = 1
	Particle2 Particle = 2
)

func (p Particle) String() string { return fmt.Sprintf("particle%d", int(p)) }

// ProbabilityDensity is the single-particle marginal of a two-particle state,
// indexed y*Nx+x. Values are not clamped at zero.
type ProbabilityDensity struct {
	Particle Particle
	Lattice  core.Lattice
	Values   []float64
}

// At returns the density at (x, y) after periodic wrapping.
func (d ProbabilityDensity) At(x, y int) float64 {
	x, y = d.Lattice.Wrap(x, y)
	return d.Values[d.Lattice.Index(x, y)]
}

// Total integrates the density over the lattice.
func (d ProbabilityDensity) Total() float64 {
	return floats.Sum(d.Values) * d.Lattice.Spacing * d.Lattice.Spacing
}

// Min returns the smallest value, which is negative only through the
// half-step imaginary product.
func (d ProbabilityDensity) Min() float64 { return floats.Min(d.Values) }

// Max returns the largest value.
func (d ProbabilityDensity) Max() float64 { return floats.Max(d.Values) }

// Marginal reduces s to the density of particle p by summing
// Real² + ImagP·ImagM over every position of the other particle and scaling
// by a². workers <= 1 runs sequentially. A cancelled ctx yields no result.
func Marginal(ctx context.Context, s *TwoParticleState, p Particle, workers int) (ProbabilityDensity, error) {
	return marginal(ctx, s, p, slicer{workers: workers})
}

func marginal(ctx context.Context, s *TwoParticleState, p Particle, sl slicer) (ProbabilityDensity, error) {
	lat := s.lat
	nx, ny, n := lat.Nx, lat.Ny, lat.Points()
	a2 := lat.Spacing * lat.Spacing
	out := make([]float64, n)

	var kernel func(y int)
	switch p {
	case Particle2:
		kernel = func(y2 int) {
			for x2 := 0; x2 < nx; x2++ {
				p2 := y2*nx + x2
				off := p2 * n
				var sum float64
				for p1 := 0; p1 < n; p1++ {
					sum += s.Probability(off + p1)
				}
				out[p2] = sum * a2
			}
		}
	case Particle1:
		kernel = func(y1 int) {
			for x1 := 0; x1 < nx; x1++ {
				p1 := y1*nx + x1
				var sum float64
				for p2 := 0; p2 < n; p2++ {
					sum += s.Probability(p2*n + p1)
				}
				out[p1] = sum * a2
			}
		}
	default:
		return ProbabilityDensity{}, fmt.Errorf("pair: unknown particle %d", int(p))
	}

	if err := sl.run(ctx, ny, kernel); err != nil {
		return ProbabilityDensity{}, err
	}
	return ProbabilityDensity{Particle: p, Lattice: lat, Values: out}, nil
}
