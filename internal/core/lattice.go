package core

import "gonum.org/v1/gonum/floats"

// Lattice describes the uniform periodic grid a single particle lives on.
// Coordinates always wrap; there is no other boundary condition.
type Lattice struct {
	Nx, Ny  int
	Spacing float64
}

// NewLattice returns a lattice with the given extents and spacing.
func NewLattice(nx, ny int, spacing float64) Lattice {
	return Lattice{Nx: nx, Ny: ny, Spacing: spacing}
}

// Points reports the number of grid points per particle.
func (l Lattice) Points() int { return l.Nx * l.Ny }

// Size reports the extents as a Size.
func (l Lattice) Size() Size { return Size{W: l.Nx, H: l.Ny} }

// Index returns the linear slice index for coordinates (x, y).
func (l Lattice) Index(x, y int) int { return y*l.Nx + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (l Lattice) Wrap(x, y int) (int, int) {
	return wrap(x, l.Nx), wrap(y, l.Ny)
}

// Extent returns the physical side lengths of the periodic domain.
func (l Lattice) Extent() (float64, float64) {
	return float64(l.Nx) * l.Spacing, float64(l.Ny) * l.Spacing
}

// XAxis returns the physical x coordinate of every column.
func (l Lattice) XAxis() []float64 { return axis(l.Nx, l.Spacing) }

// YAxis returns the physical y coordinate of every row.
func (l Lattice) YAxis() []float64 { return axis(l.Ny, l.Spacing) }

// MinImage folds a physical displacement along an axis of length period into
// [-period/2, period/2).
func MinImage(d, period float64) float64 {
	if period <= 0 {
		return d
	}
	half := period / 2
	for d >= half {
		d -= period
	}
	for d < -half {
		d += period
	}
	return d
}

// Stencil caches the wrapped neighbor indices of every coordinate along one
// axis so kernels avoid modulo arithmetic in their inner loops.
type Stencil struct {
	M2, M1, P1, P2 []int
}

// NewStencil builds the ±1 and ±2 neighbor tables for an axis of n points.
func NewStencil(n int) Stencil {
	s := Stencil{
		M2: make([]int, n),
		M1: make([]int, n),
		P1: make([]int, n),
		P2: make([]int, n),
	}
	for i := 0; i < n; i++ {
		s.M2[i] = wrap(i-2, n)
		s.M1[i] = wrap(i-1, n)
		s.P1[i] = wrap(i+1, n)
		s.P2[i] = wrap(i+2, n)
	}
	return s
}

func wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	return (v%n + n) % n
}

func axis(n int, spacing float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	floats.Span(out, 0, float64(n-1)*spacing)
	return out
}
