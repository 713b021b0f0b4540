package pair

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twobody/internal/core"
	"twobody/internal/potential"
	"twobody/internal/testutil"
)

func TestMarginalsAgreeWithTotalNorm(t *testing.T) {
	cfg := smallConfig(5, 4)
	cfg.Spacing = 0.6
	cfg.Dt = 0.005
	wf1, wf2 := gaussianPair(t, cfg)
	pots, err := NewPotentials(cfg, potential.SoftCoulomb(1, 0.5), nil, nil)
	require.NoError(t, err)
	r := newTestRunner(t, cfg, pots, wf1, wf2)
	for i := 0; i < 25; i++ {
		require.NoError(t, r.Step())
	}

	ctx := context.Background()
	d1, err := Marginal(ctx, r.State(), Particle1, 1)
	require.NoError(t, err)
	d2, err := Marginal(ctx, r.State(), Particle2, 3)
	require.NoError(t, err)

	norm := r.State().Norm()
	assert.InDelta(t, norm, d1.Total(), 1e-12)
	assert.InDelta(t, norm, d2.Total(), 1e-12)
	assert.Equal(t, Particle1, d1.Particle)
	assert.Equal(t, cfg.Lattice(), d2.Lattice)
}

func TestMarginalOfArbitraryState(t *testing.T) {
	lat := core.NewLattice(3, 3, 0.4)
	st := newTwoParticleState(lat)
	rng := testutil.NewRNG(21)
	copy(st.real, rng.Field(st.Len()))
	copy(st.imag[0], rng.Field(st.Len()))
	copy(st.imag[1], rng.Field(st.Len()))

	ctx := context.Background()
	d1, err := Marginal(ctx, st, Particle1, 2)
	require.NoError(t, err)
	d2, err := Marginal(ctx, st, Particle2, 1)
	require.NoError(t, err)
	assert.InDelta(t, st.Norm(), d1.Total(), 1e-12)
	assert.InDelta(t, st.Norm(), d2.Total(), 1e-12)

	// Particle 1 at (2,1) sums over every particle-2 position.
	var want float64
	for p2 := 0; p2 < 9; p2++ {
		want += st.Probability(p2*9 + lat.Index(2, 1))
	}
	assert.InDelta(t, want*0.16, d1.At(2, 1), 1e-14)
	assert.InDelta(t, d1.At(2, 1), d1.At(-1, 4), 1e-15, "At wraps")
}

func TestMarginalNegativeExcursionsStayTiny(t *testing.T) {
	cfg := smallConfig(6, 6)
	cfg.Spacing = 0.5
	cfg.Dt = 0.01
	wf1, wf2 := gaussianPair(t, cfg)
	r := newTestRunner(t, cfg, Potentials{}, wf1, wf2)

	ctx := context.Background()
	for i := 0; i < 40; i++ {
		require.NoError(t, r.Step())
		for _, p := range []Particle{Particle1, Particle2} {
			d, err := Marginal(ctx, r.State(), p, 1)
			require.NoError(t, err)
			assert.Greater(t, d.Min(), -1e-2*d.Max(), "step %d %s", i+1, p)
		}
	}
}

func TestMarginalErrors(t *testing.T) {
	st := newTwoParticleState(core.NewLattice(3, 3, 1))

	_, err := Marginal(context.Background(), st, Particle(3), 1)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 4} {
		_, err = Marginal(ctx, st, Particle1, workers)
		assert.ErrorIs(t, err, context.Canceled)
	}
}
