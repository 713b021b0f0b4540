package pair

import "twobody/internal/core"

// TwoParticleState is the Visscher representation of a two-particle
// amplitude: the real part at integer steps and the imaginary part at the
// half steps on either side. All three arrays share the flat index
// ((y2*Nx+x2)*Ny+y1)*Nx+x1.
//
// The imaginary buffers live in a two-slot arena; plus names the slot that
// currently holds ImagP. Swapping roles flips plus and never copies.
type TwoParticleState struct {
	lat  core.Lattice
	real []float64
	imag [2][]float64
	plus int
}

func newTwoParticleState(lat core.Lattice) *TwoParticleState {
	n := lat.Points() * lat.Points()
	return &TwoParticleState{
		lat:  lat,
		real: make([]float64, n),
		imag: [2][]float64{make([]float64, n), make([]float64, n)},
	}
}

// Lattice returns the per-particle grid.
func (s *TwoParticleState) Lattice() core.Lattice { return s.lat }

// Len reports the number of two-particle grid points.
func (s *TwoParticleState) Len() int { return len(s.real) }

// Index returns the flat index of (x1, y1, x2, y2). Coordinates must already
// be in range.
func (s *TwoParticleState) Index(x1, y1, x2, y2 int) int {
	nx, ny := s.lat.Nx, s.lat.Ny
	return ((y2*nx+x2)*ny+y1)*nx + x1
}

// Real exposes the real part at the current integer step. Callers must not
// modify it.
func (s *TwoParticleState) Real() []float64 { return s.real }

// ImagP exposes the imaginary part half a step ahead.
func (s *TwoParticleState) ImagP() []float64 { return s.imag[s.plus] }

// ImagM exposes the imaginary part half a step behind.
func (s *TwoParticleState) ImagM() []float64 { return s.imag[s.plus^1] }

// swap turns ImagP into ImagM. The returned slice is the stale buffer that
// must be overwritten with the new ImagP.
func (s *TwoParticleState) swap() []float64 {
	s.plus ^= 1
	return s.imag[s.plus]
}

// Probability returns Real² + ImagP·ImagM at flat index i. The product of the
// straddling half-step samples can be marginally negative.
func (s *TwoParticleState) Probability(i int) float64 {
	r := s.real[i]
	return r*r + s.imag[s.plus][i]*s.imag[s.plus^1][i]
}

// Norm returns a⁴·Σ(Real² + ImagP·ImagM) over the whole grid.
func (s *TwoParticleState) Norm() float64 {
	ip, im := s.imag[s.plus], s.imag[s.plus^1]
	var sum float64
	for i, r := range s.real {
		sum += r*r + ip[i]*im[i]
	}
	a2 := s.lat.Spacing * s.lat.Spacing
	return sum * a2 * a2
}
