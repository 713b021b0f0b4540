package wavefunc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"twobody/internal/core"
)

// BoundParams selects a harmonic-oscillator eigenstate centered at (X0, Y0).
// Width is the oscillator length sqrt(1/(mω)); N is the total quantum number
// and Lz the angular momentum.
type BoundParams struct {
	X0, Y0 float64
	Width  float64
	N, Lz  int
}

type mode struct {
	nx, ny int
	c      complex128
}

var (
	invSqrt2 = 1 / math.Sqrt2

	boundModes = map[[2]int][]mode{
		{0, 0}:  {{0, 0, 1}},
		{1, 1}:  {{1, 0, complex(invSqrt2, 0)}, {0, 1, complex(0, invSqrt2)}},
		{1, -1}: {{1, 0, complex(invSqrt2, 0)}, {0, 1, complex(0, -invSqrt2)}},
		{2, 0}:  {{2, 0, complex(invSqrt2, 0)}, {0, 2, complex(invSqrt2, 0)}},
		{2, 2}:  {{2, 0, 0.5}, {1, 1, complex(0, invSqrt2)}, {0, 2, -0.5}},
		{2, -2}: {{2, 0, 0.5}, {1, 1, complex(0, -invSqrt2)}, {0, 2, -0.5}},
	}
)

// OscillatorFrequency returns ω for a particle of the given mass whose
// oscillator length is width.
func OscillatorFrequency(mass, width float64) float64 {
	return 1 / (mass * width * width)
}

// Supported reports whether (n, lz) is in the bound-state table.
func Supported(n, lz int) bool {
	_, ok := boundModes[[2]int{n, lz}]
	return ok
}

// Bound returns the normalized eigenstate of the lattice harmonic oscillator
// selected by p.N and p.Lz. Each axis is diagonalized separately and the
// 1D eigenvectors are combined according to the quantum-number table.
func Bound(lat core.Lattice, mass float64, p BoundParams) (*State, error) {
	modes, ok := boundModes[[2]int{p.N, p.Lz}]
	if !ok {
		return nil, fmt.Errorf("%w: N=%d Lz=%d", ErrUnsupportedQuantumNumbers, p.N, p.Lz)
	}
	if p.Width <= 0 {
		return nil, errorf("bound-state width %g must be positive", p.Width)
	}
	if mass <= 0 {
		return nil, errorf("mass %g must be positive", mass)
	}
	if lat.Nx < 3 || lat.Ny < 3 {
		return nil, errorf("bound states need at least 3 points per axis, have %dx%d", lat.Nx, lat.Ny)
	}

	omega := OscillatorFrequency(mass, p.Width)
	lx, ly := lat.Extent()
	phiX, err := axisModes(lat.Nx, lat.Spacing, mass, omega, p.X0, lx)
	if err != nil {
		return nil, err
	}
	phiY, err := axisModes(lat.Ny, lat.Spacing, mass, omega, p.Y0, ly)
	if err != nil {
		return nil, err
	}

	amp := make([]complex128, lat.Points())
	for y := 0; y < lat.Ny; y++ {
		for x := 0; x < lat.Nx; x++ {
			var v complex128
			for _, m := range modes {
				v += m.c * complex(phiX[m.nx][x]*phiY[m.ny][y], 0)
			}
			amp[lat.Index(x, y)] = v
		}
	}
	s, err := NewState(lat, mass, amp)
	if err != nil {
		return nil, err
	}
	return s.Normalize()
}

// axisModes diagonalizes the periodic 1D oscillator Hamiltonian and returns
// its three lowest eigenvectors. The c-th vector is signed so Σ v·d^c > 0,
// d being the displacement from center, which fixes the solver's arbitrary
// sign choice.
func axisModes(n int, spacing, mass, omega, center, period float64) ([][]float64, error) {
	k := 1 / (2 * mass * spacing * spacing)
	data := make([]float64, n*n)
	disp := make([]float64, n)
	add := func(i, j int, v float64) {
		j = ((j % n) + n) % n
		data[i*n+j] += v
	}
	for i := 0; i < n; i++ {
		add(i, i, kineticCenter*k)
		add(i, i-1, -kineticNear*k)
		add(i, i+1, -kineticNear*k)
		add(i, i-2, kineticFar*k)
		add(i, i+2, kineticFar*k)
		d := core.MinImage(float64(i)*spacing-center, period)
		disp[i] = d
		add(i, i, 0.5*mass*omega*omega*d*d)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(n, data), true); !ok {
		return nil, errorf("eigen-decomposition of %d-point oscillator failed", n)
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	out := make([][]float64, 3)
	for c := range out {
		col := make([]float64, n)
		mat.Col(col, c, &vecs)
		var moment float64
		for i, v := range col {
			moment += v * math.Pow(disp[i], float64(c))
		}
		if moment < 0 {
			for i := range col {
				col[i] = -col[i]
			}
		}
		out[c] = col
	}
	return out, nil
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidState}, args...)...)
}
