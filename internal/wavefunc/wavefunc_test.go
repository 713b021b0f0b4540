package wavefunc

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twobody/internal/core"
	"twobody/internal/potential"
)

func TestNewStateValidates(t *testing.T) {
	lat := core.NewLattice(3, 2, 1)

	_, err := NewState(lat, 1, make([]complex128, 5))
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = NewState(lat, 0, make([]complex128, 6))
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = NewState(core.NewLattice(3, 2, 0), 1, make([]complex128, 6))
	assert.ErrorIs(t, err, ErrInvalidState)

	amp := []complex128{1, 2, 3, 4, 5, 6}
	s, err := NewState(lat, 2, amp)
	require.NoError(t, err)
	amp[0] = 99
	assert.Equal(t, complex128(1), s.At(0, 0), "state owns a copy of its input")
	assert.Equal(t, complex128(6), s.At(-1, -1))
	assert.Equal(t, 2.0, s.Mass())
}

func TestNormalizeRejectsDegenerateNorm(t *testing.T) {
	lat := core.NewLattice(4, 4, 0.5)
	zero, err := NewState(lat, 1, make([]complex128, 16))
	require.NoError(t, err)
	_, err = zero.Normalize()
	assert.ErrorIs(t, err, ErrInvalidState)

	amp := make([]complex128, 16)
	amp[3] = complex(math.NaN(), 0)
	bad, err := NewState(lat, 1, amp)
	require.NoError(t, err)
	_, err = bad.Normalize()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUniformIsNormalizedAndKineticallyFlat(t *testing.T) {
	lat := core.NewLattice(4, 4, 1)
	u, err := Uniform(lat, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, u.Norm(), 1e-12)
	assert.InDelta(t, 0.25, real(u.At(2, 3)), 1e-14)

	out := make([]complex128, 16)
	Apply(lat, 1, nil, u.amp, out)
	for i, v := range out {
		assert.InDelta(t, 0, cmplx.Abs(v), 1e-14, "index %d", i)
	}
}

func TestApplyWrapsWithStencilWeights(t *testing.T) {
	lat := core.NewLattice(6, 5, 1)
	d, err := Delta(lat, 1, 0, 0, 1)
	require.NoError(t, err)

	out := make([]complex128, lat.Points())
	Apply(lat, 1, nil, d.amp, out)

	k := 0.5
	assert.InDelta(t, k*5, real(out[lat.Index(0, 0)]), 1e-14)
	assert.InDelta(t, -k*4.0/3, real(out[lat.Index(1, 0)]), 1e-14)
	assert.InDelta(t, -k*4.0/3, real(out[lat.Index(5, 0)]), 1e-14, "left neighbor wraps to last column")
	assert.InDelta(t, k/12, real(out[lat.Index(4, 0)]), 1e-14, "second neighbor wraps")
	assert.InDelta(t, -k*4.0/3, real(out[lat.Index(0, 4)]), 1e-14, "up neighbor wraps to last row")
	assert.InDelta(t, k/12, real(out[lat.Index(0, 3)]), 1e-14)
	assert.Zero(t, out[lat.Index(3, 2)])
}

func TestGaussianPacket(t *testing.T) {
	lat := core.NewLattice(32, 32, 0.25)
	g, err := Gaussian(lat, 1, GaussianParams{X0: 4, Y0: 4, Px: 2, Width: 0.75})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, g.Norm(), 1e-12)

	center := cmplx.Abs(g.At(16, 16))
	assert.Greater(t, center, cmplx.Abs(g.At(20, 16)))
	assert.InDelta(t, cmplx.Abs(g.At(18, 16)), cmplx.Abs(g.At(14, 16)), 1e-14, "envelope is symmetric")
	assert.InDelta(t, cmplx.Abs(g.At(16, 30)), cmplx.Abs(g.At(16, 2)), 1e-14, "envelope uses minimum image")

	// Phase advances by Px·a per column.
	step := cmplx.Phase(g.At(17, 16) / g.At(16, 16))
	assert.InDelta(t, 0.5, step, 1e-12)

	_, err = Gaussian(lat, 1, GaussianParams{Width: 0})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestBoundStatesAreEigenstates(t *testing.T) {
	lat := core.NewLattice(24, 24, 0.3)
	const mass, width = 1.5, 0.8
	x0, y0 := 3.6, 3.6
	omega := OscillatorFrequency(mass, width)
	binding, err := potential.NewBinding(lat, potential.HarmonicWell(x0, y0, mass, omega))
	require.NoError(t, err)

	cases := []struct {
		n, lz int
		exact bool
	}{
		{0, 0, true},
		{1, 1, true},
		{1, -1, true},
		{2, 0, true},
		// φ2φ0 and φ1φ1 are only degenerate in the continuum limit.
		{2, 2, false},
		{2, -2, false},
	}
	for _, tc := range cases {
		s, err := Bound(lat, mass, BoundParams{X0: x0, Y0: y0, Width: width, N: tc.n, Lz: tc.lz})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, s.Norm(), 1e-12)

		h := make([]complex128, lat.Points())
		Apply(lat, mass, binding, s.amp, h)
		hs := &State{lat: lat, mass: mass, amp: h}
		energy := s.Overlap(hs)
		assert.InDelta(t, 0, imag(energy), 1e-10, "N=%d Lz=%d energy is real", tc.n, tc.lz)
		assert.InDelta(t, float64(tc.n+1)*omega, real(energy), 0.1*omega, "N=%d Lz=%d oscillator energy", tc.n, tc.lz)

		if !tc.exact {
			continue
		}
		var residual float64
		for i, v := range h {
			residual += cmplx.Abs(v - energy*s.amp[i])
		}
		assert.Less(t, residual, 1e-8, "N=%d Lz=%d is an eigenstate", tc.n, tc.lz)
	}
}

func TestBoundGroundStateIsPositiveAndCentered(t *testing.T) {
	lat := core.NewLattice(16, 12, 0.5)
	s, err := Bound(lat, 1, BoundParams{X0: 4, Y0: 3, Width: 1})
	require.NoError(t, err)
	for y := 2; y <= 10; y++ {
		for x := 4; x <= 12; x++ {
			v := s.At(x, y)
			assert.Greater(t, real(v), 0.0, "(%d,%d)", x, y)
			assert.Zero(t, imag(v))
		}
	}
	peak := s.At(8, 6)
	assert.Greater(t, real(peak), real(s.At(9, 6)))
	assert.Greater(t, real(peak), real(s.At(8, 7)))
}

func TestBoundAngularStatesAreOrthogonal(t *testing.T) {
	lat := core.NewLattice(20, 20, 0.4)
	p := BoundParams{X0: 4, Y0: 4, Width: 1, N: 1, Lz: 1}
	plus, err := Bound(lat, 1, p)
	require.NoError(t, err)
	p.Lz = -1
	minus, err := Bound(lat, 1, p)
	require.NoError(t, err)
	ground, err := Bound(lat, 1, BoundParams{X0: 4, Y0: 4, Width: 1})
	require.NoError(t, err)

	assert.InDelta(t, 0, cmplx.Abs(plus.Overlap(minus)), 1e-10)
	assert.InDelta(t, 0, cmplx.Abs(ground.Overlap(plus)), 1e-10)
}

func TestBoundRejectsUnsupportedInput(t *testing.T) {
	lat := core.NewLattice(8, 8, 1)
	for _, qn := range [][2]int{{1, 0}, {0, 1}, {2, 1}, {3, 1}, {-1, 0}} {
		_, err := Bound(lat, 1, BoundParams{Width: 1, N: qn[0], Lz: qn[1]})
		assert.ErrorIs(t, err, ErrUnsupportedQuantumNumbers, "N=%d Lz=%d", qn[0], qn[1])
		assert.False(t, Supported(qn[0], qn[1]))
	}
	assert.True(t, Supported(2, -2))

	_, err := Bound(core.NewLattice(2, 8, 1), 1, BoundParams{Width: 1})
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = Bound(lat, 1, BoundParams{Width: -1})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAdvanceTracksEigenphase(t *testing.T) {
	lat := core.NewLattice(16, 16, 0.5)
	const dt = 0.01
	s, err := Uniform(lat, 1)
	require.NoError(t, err)

	// A uniform state in a constant well of depth V evolves as exp(-iVt).
	const depth = 2.0
	binding := make([]float64, lat.Points())
	for i := range binding {
		binding[i] = depth
	}
	adv, ret := Advance(s, binding, dt)

	tau := dt / 2
	wantAdv := s.At(0, 0) * complex(1-depth*depth*tau*tau/2, -depth*tau)
	wantRet := s.At(0, 0) * complex(1-depth*depth*tau*tau/2, depth*tau)
	assert.InDelta(t, real(wantAdv), real(adv.At(5, 7)), 1e-14)
	assert.InDelta(t, imag(wantAdv), imag(adv.At(5, 7)), 1e-14)
	assert.InDelta(t, real(wantRet), real(ret.At(5, 7)), 1e-14)
	assert.InDelta(t, imag(wantRet), imag(ret.At(5, 7)), 1e-14)

	exact := cmplx.Exp(complex(0, -depth*tau))
	assert.InDelta(t, 0, cmplx.Abs(adv.At(1, 1)/s.At(1, 1)-exact), 1e-6)
}
