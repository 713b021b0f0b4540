package pair

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twobody/internal/potential"
	"twobody/internal/testutil"
)

func TestHamiltonianWrapsAcrossEdges(t *testing.T) {
	cfg := smallConfig(5, 4)
	pots, err := Potentials{}.check(cfg.Lattice())
	require.NoError(t, err)
	h := newHamiltonian(cfg, pots)

	st := newTwoParticleState(cfg.Lattice())
	src := make([]float64, st.Len())
	src[st.Index(0, 0, 0, 0)] = 1
	dst := make([]float64, st.Len())
	h.apply(dst, src)

	k := 0.5
	near, far := -k*4.0/3, k/12
	assert.InDelta(t, 2*k*5, dst[st.Index(0, 0, 0, 0)], 1e-14, "both particles contribute the center weight")

	// Particle 1 neighbors, wrapping to the opposite edge.
	assert.InDelta(t, near, dst[st.Index(1, 0, 0, 0)], 1e-14)
	assert.InDelta(t, near, dst[st.Index(4, 0, 0, 0)], 1e-14)
	assert.InDelta(t, far, dst[st.Index(3, 0, 0, 0)], 1e-14)
	assert.InDelta(t, near, dst[st.Index(0, 3, 0, 0)], 1e-14)

	// Particle 2 neighbors.
	assert.InDelta(t, near, dst[st.Index(0, 0, 4, 0)], 1e-14)
	assert.InDelta(t, far, dst[st.Index(0, 0, 3, 0)], 1e-14)
	assert.InDelta(t, near, dst[st.Index(0, 0, 0, 3)], 1e-14)
	// On a four-point axis the ±2 neighbors coincide.
	assert.InDelta(t, 2*far, dst[st.Index(0, 0, 0, 2)], 1e-14)
	assert.InDelta(t, 2*far, dst[st.Index(0, 2, 0, 0)], 1e-14)

	// Diagonal moves are not part of the stencil.
	assert.Zero(t, dst[st.Index(1, 1, 0, 0)])
	assert.Zero(t, dst[st.Index(1, 0, 1, 0)])
}

func TestHamiltonianMatchesDenseOperator(t *testing.T) {
	cfg := smallConfig(3, 4)
	cfg.Spacing = 0.7
	cfg.Mass1, cfg.Mass2 = 1.3, 0.6
	lat := cfg.Lattice()

	rng := testutil.NewRNG(7)
	bind1 := rng.Field(lat.Points())
	bind2 := rng.Field(lat.Points())
	table, err := potential.NewRelativeTable(lat, potential.SoftCoulomb(1.5, 0.4))
	require.NoError(t, err)
	pots, err := Potentials{Binding1: bind1, Binding2: bind2, Relative: table}.check(lat)
	require.NoError(t, err)
	h := newHamiltonian(cfg, pots)

	m1 := singleParticleMatrix(lat, cfg.Mass1, nil)
	m2 := singleParticleMatrix(lat, cfg.Mass2, nil)

	st := newTwoParticleState(lat)
	src := rng.Field(st.Len())
	dst := make([]float64, st.Len())
	h.apply(dst, src)

	n := lat.Points()
	for y2 := 0; y2 < lat.Ny; y2++ {
		for x2 := 0; x2 < lat.Nx; x2++ {
			for y1 := 0; y1 < lat.Ny; y1++ {
				for x1 := 0; x1 < lat.Nx; x1++ {
					p1, p2 := lat.Index(x1, y1), lat.Index(x2, y2)
					var want float64
					for q := 0; q < n; q++ {
						want += m1[p1][q] * src[p2*n+q]
						want += m2[p2][q] * src[q*n+p1]
					}
					v := bind1[p1] + bind2[p2] + table.At(x2-x1, y2-y1)
					want += v * src[p2*n+p1]
					assert.InDelta(t, want, dst[st.Index(x1, y1, x2, y2)], 1e-12, "(%d,%d,%d,%d)", x1, y1, x2, y2)
				}
			}
		}
	}
}

func TestHamiltonianIsSymmetric(t *testing.T) {
	cfg := smallConfig(4, 3)
	lat := cfg.Lattice()
	pots, err := NewPotentials(cfg, potential.Gaussian(-2, 0.8), potential.HarmonicWell(1, 1, 1, 1), nil)
	require.NoError(t, err)
	pots, err = pots.check(lat)
	require.NoError(t, err)
	h := newHamiltonian(cfg, pots)

	rng := testutil.NewRNG(11)
	n := lat.Points() * lat.Points()
	u, v := rng.Field(n), rng.Field(n)
	hu, hv := make([]float64, n), make([]float64, n)
	h.apply(hu, u)
	h.apply(hv, v)

	var uhv, vhu float64
	for i := range u {
		uhv += u[i] * hv[i]
		vhu += v[i] * hu[i]
	}
	assert.InDelta(t, uhv, vhu, 1e-10*math.Max(1, math.Abs(uhv)))
}

func TestPotentialsCheck(t *testing.T) {
	lat := smallConfig(3, 3).Lattice()

	_, err := Potentials{Binding1: make([]float64, 4)}.check(lat)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = Potentials{Binding2: make([]float64, 10)}.check(lat)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	wrong, err := potential.NewRelativeTable(smallConfig(4, 3).Lattice(), nil)
	require.NoError(t, err)
	_, err = Potentials{Relative: wrong}.check(lat)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p, err := Potentials{}.check(lat)
	require.NoError(t, err)
	require.NotNil(t, p.Relative)
}

func TestNewPotentialsReportsNonFinite(t *testing.T) {
	cfg := smallConfig(3, 3)
	_, err := NewPotentials(cfg, func(dx, dy, lx, ly float64) float64 { return 1 / (dx*dx + dy*dy) }, nil, nil)
	assert.ErrorIs(t, err, potential.ErrNonFinite)

	_, err = NewPotentials(cfg, nil, nil, func(x, y, lx, ly float64) float64 { return math.Inf(-1) })
	assert.ErrorIs(t, err, potential.ErrNonFinite)
}
