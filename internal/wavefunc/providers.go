package wavefunc

import (
	"math"
	"math/cmplx"

	"twobody/internal/core"
)

// GaussianParams describes a free wave packet.
type GaussianParams struct {
	X0, Y0 float64 // center
	Px, Py float64 // mean momentum
	Width  float64 // position standard deviation
}

// Gaussian returns a normalized packet exp(-|d|²/(4σ²))·exp(i p·d), where d
// is the minimum-image displacement from the center.
func Gaussian(lat core.Lattice, mass float64, p GaussianParams) (*State, error) {
	if p.Width <= 0 {
		return nil, errorf("gaussian width %g must be positive", p.Width)
	}
	lx, ly := lat.Extent()
	xs, ys := lat.XAxis(), lat.YAxis()
	inv := 1 / (4 * p.Width * p.Width)
	amp := make([]complex128, lat.Points())
	for y, py := range ys {
		dy := core.MinImage(py-p.Y0, ly)
		for x, px := range xs {
			dx := core.MinImage(px-p.X0, lx)
			env := math.Exp(-(dx*dx + dy*dy) * inv)
			amp[lat.Index(x, y)] = complex(env, 0) * cmplx.Exp(complex(0, p.Px*dx+p.Py*dy))
		}
	}
	s, err := NewState(lat, mass, amp)
	if err != nil {
		return nil, err
	}
	return s.Normalize()
}

// Uniform returns the normalized constant state, the kinetic ground state of
// a free particle on the torus.
func Uniform(lat core.Lattice, mass float64) (*State, error) {
	amp := make([]complex128, lat.Points())
	for i := range amp {
		amp[i] = 1
	}
	s, err := NewState(lat, mass, amp)
	if err != nil {
		return nil, err
	}
	return s.Normalize()
}

// Delta returns an unnormalized state holding value at (x, y) and zero
// elsewhere.
func Delta(lat core.Lattice, mass float64, x, y int, value complex128) (*State, error) {
	amp := make([]complex128, lat.Points())
	if len(amp) > 0 {
		x, y = lat.Wrap(x, y)
		amp[lat.Index(x, y)] = value
	}
	return NewState(lat, mass, amp)
}
