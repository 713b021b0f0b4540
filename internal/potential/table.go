// Package potential precomputes the time-independent potential energy tables
// consumed by the two-particle Hamiltonian.
package potential

import (
	"errors"
	"fmt"
	"math"

	"twobody/internal/core"
)

// ErrNonFinite is returned when a potential callback yields NaN or ±Inf.
var ErrNonFinite = errors.New("potential: non-finite value")

// Func is an interaction energy depending only on the physical displacement
// (dx, dy) between the particles and the side lengths of the periodic domain.
type Func func(dx, dy, domainX, domainY float64) float64

// BindingFunc is a single-particle energy at physical position (x, y).
type BindingFunc func(x, y, domainX, domainY float64) float64

// RelativeTable holds the interaction energy for every integer displacement
// (Δx, Δy) with |Δx| < Nx and |Δy| < Ny, stored over the doubled range
// (2Nx-1)×(2Ny-1).
type RelativeTable struct {
	nx, ny int
	stride int
	values []float64
}

// NewRelativeTable evaluates f once per displacement. A nil f yields an
// all-zero table.
func NewRelativeTable(lat core.Lattice, f Func) (*RelativeTable, error) {
	if lat.Nx <= 0 || lat.Ny <= 0 {
		return nil, fmt.Errorf("potential: lattice %dx%d must be positive", lat.Nx, lat.Ny)
	}
	w, h := 2*lat.Nx-1, 2*lat.Ny-1
	t := &RelativeTable{nx: lat.Nx, ny: lat.Ny, stride: w, values: make([]float64, w*h)}
	if f == nil {
		return t, nil
	}
	lx, ly := lat.Extent()
	a := lat.Spacing
	for dy := -(lat.Ny - 1); dy < lat.Ny; dy++ {
		for dx := -(lat.Nx - 1); dx < lat.Nx; dx++ {
			v := f(float64(dx)*a, float64(dy)*a, lx, ly)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: relative potential at displacement (%d,%d) is %v", ErrNonFinite, dx, dy, v)
			}
			t.values[t.offset(dx, dy)] = v
		}
	}
	return t, nil
}

// At returns the energy for displacement (dx, dy) = (x2-x1, y2-y1).
func (t *RelativeTable) At(dx, dy int) float64 {
	return t.values[t.offset(dx, dy)]
}

// Dims reports the table extents (2Nx-1, 2Ny-1).
func (t *RelativeTable) Dims() (int, int) { return t.stride, len(t.values) / t.stride }

// Values returns a copy of the table in row-major order, Δy outermost.
func (t *RelativeTable) Values() []float64 {
	return append([]float64(nil), t.values...)
}

func (t *RelativeTable) offset(dx, dy int) int {
	return (dy+t.ny-1)*t.stride + dx + t.nx - 1
}

// NewBinding evaluates f at every lattice point, indexed y*Nx+x. A nil f
// yields a nil field, which kernels treat as zero everywhere.
func NewBinding(lat core.Lattice, f BindingFunc) ([]float64, error) {
	if f == nil {
		return nil, nil
	}
	lx, ly := lat.Extent()
	xs, ys := lat.XAxis(), lat.YAxis()
	out := make([]float64, lat.Points())
	for y, py := range ys {
		for x, px := range xs {
			v := f(px, py, lx, ly)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: binding potential at (%d,%d) is %v", ErrNonFinite, x, y, v)
			}
			out[lat.Index(x, y)] = v
		}
	}
	return out, nil
}
