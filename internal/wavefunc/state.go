// Package wavefunc builds the single-particle amplitudes that seed a
// two-particle run.
package wavefunc

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"twobody/internal/core"
)

var (
	// ErrUnsupportedQuantumNumbers is returned for bound-state (N, Lz) pairs
	// outside the supported table.
	ErrUnsupportedQuantumNumbers = errors.New("wavefunc: unsupported quantum numbers")
	// ErrInvalidState is returned for malformed or degenerate amplitudes.
	ErrInvalidState = errors.New("wavefunc: invalid state")
)

const minNorm = 1e-300

// State is an immutable single-particle amplitude on a periodic lattice,
// indexed y*Nx+x.
type State struct {
	lat  core.Lattice
	mass float64
	amp  []complex128
}

// NewState copies amp into a new State.
func NewState(lat core.Lattice, mass float64, amp []complex128) (*State, error) {
	if lat.Nx <= 0 || lat.Ny <= 0 || lat.Spacing <= 0 {
		return nil, fmt.Errorf("%w: lattice %dx%d spacing %g", ErrInvalidState, lat.Nx, lat.Ny, lat.Spacing)
	}
	if mass <= 0 {
		return nil, fmt.Errorf("%w: mass %g must be positive", ErrInvalidState, mass)
	}
	if len(amp) != lat.Points() {
		return nil, fmt.Errorf("%w: %d amplitudes for %d lattice points", ErrInvalidState, len(amp), lat.Points())
	}
	return &State{lat: lat, mass: mass, amp: append([]complex128(nil), amp...)}, nil
}

// Lattice returns the grid the state lives on.
func (s *State) Lattice() core.Lattice { return s.lat }

// Mass returns the particle mass.
func (s *State) Mass() float64 { return s.mass }

// At returns the amplitude at (x, y) after periodic wrapping.
func (s *State) At(x, y int) complex128 {
	x, y = s.lat.Wrap(x, y)
	return s.amp[s.lat.Index(x, y)]
}

// Amplitudes returns a copy of the amplitude field.
func (s *State) Amplitudes() []complex128 {
	return append([]complex128(nil), s.amp...)
}

// Norm returns a²·Σ|ψ|².
func (s *State) Norm() float64 {
	var sum float64
	for _, v := range s.amp {
		re, im := real(v), imag(v)
		sum += re*re + im*im
	}
	return sum * s.lat.Spacing * s.lat.Spacing
}

// Normalize returns a copy scaled to unit norm. Vanishing or non-finite
// norms are rejected rather than propagated as NaN.
func (s *State) Normalize() (*State, error) {
	n := s.Norm()
	if n < minNorm || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%w: cannot normalize state with norm %g", ErrInvalidState, n)
	}
	scale := complex(1/math.Sqrt(n), 0)
	out := make([]complex128, len(s.amp))
	for i, v := range s.amp {
		out[i] = v * scale
	}
	return &State{lat: s.lat, mass: s.mass, amp: out}, nil
}

// Overlap returns a²·Σ conj(s)·o. Both states must share a lattice.
func (s *State) Overlap(o *State) complex128 {
	var sum complex128
	for i, v := range s.amp {
		sum += cmplx.Conj(v) * o.amp[i]
	}
	return sum * complex(s.lat.Spacing*s.lat.Spacing, 0)
}
