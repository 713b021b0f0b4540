package potential

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twobody/internal/core"
)

func TestRelativeTableIndexing(t *testing.T) {
	lat := core.NewLattice(4, 3, 0.5)
	table, err := NewRelativeTable(lat, func(dx, dy, lx, ly float64) float64 {
		return 10*dx + dy
	})
	require.NoError(t, err)

	w, h := table.Dims()
	assert.Equal(t, 7, w)
	assert.Equal(t, 5, h)

	for dy := -2; dy <= 2; dy++ {
		for dx := -3; dx <= 3; dx++ {
			want := 10*float64(dx)*0.5 + float64(dy)*0.5
			assert.InDelta(t, want, table.At(dx, dy), 1e-12, "displacement (%d,%d)", dx, dy)
		}
	}
}

func TestRelativeTableDomainSize(t *testing.T) {
	lat := core.NewLattice(6, 2, 0.25)
	var gotX, gotY float64
	_, err := NewRelativeTable(lat, func(dx, dy, lx, ly float64) float64 {
		gotX, gotY = lx, ly
		return 0
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, gotX, 1e-12)
	assert.InDelta(t, 0.5, gotY, 1e-12)
}

func TestRelativeTableRecomputationIsBitIdentical(t *testing.T) {
	lat := core.NewLattice(7, 5, 0.3)
	f := SoftCoulomb(2.5, 0.7)

	first, err := NewRelativeTable(lat, f)
	require.NoError(t, err)
	second, err := NewRelativeTable(lat, f)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Values(), second.Values()); diff != "" {
		t.Fatalf("recomputed table differs (-first +second):\n%s", diff)
	}
}

func TestRelativeTableNilIsZero(t *testing.T) {
	table, err := NewRelativeTable(core.NewLattice(3, 3, 1), nil)
	require.NoError(t, err)
	for _, v := range table.Values() {
		assert.Zero(t, v)
	}
}

func TestRelativeTableRejectsNonFinite(t *testing.T) {
	lat := core.NewLattice(3, 3, 1)
	_, err := NewRelativeTable(lat, func(dx, dy, lx, ly float64) float64 {
		return 1 / math.Hypot(dx, dy)
	})
	assert.ErrorIs(t, err, ErrNonFinite)

	_, err = NewRelativeTable(core.NewLattice(0, 3, 1), Zero)
	assert.Error(t, err)
}

func TestMinimumImageSymmetry(t *testing.T) {
	lat := core.NewLattice(8, 8, 0.5)
	table, err := NewRelativeTable(lat, SoftCoulomb(1, 0.5))
	require.NoError(t, err)

	// Displacements differing by a full period describe the same pair.
	for dx := 1; dx < 8; dx++ {
		assert.InDelta(t, table.At(dx, 0), table.At(dx-8, 0), 1e-12, "dx=%d", dx)
		assert.InDelta(t, table.At(0, dx), table.At(0, dx-8), 1e-12, "dy=%d", dx)
	}
	assert.InDelta(t, table.At(3, 2), table.At(-3, -2), 1e-12)
}

func TestNewBinding(t *testing.T) {
	lat := core.NewLattice(5, 5, 1)
	field, err := NewBinding(lat, HarmonicWell(2, 2, 1, 1))
	require.NoError(t, err)
	require.Len(t, field, 25)

	assert.Zero(t, field[lat.Index(2, 2)])
	assert.InDelta(t, 0.5, field[lat.Index(3, 2)], 1e-12)
	assert.InDelta(t, 0.5*(4+4), field[lat.Index(0, 0)], 1e-12)
	// x=4 sits two cells from the center through the wrap as well as directly.
	assert.InDelta(t, field[lat.Index(0, 2)], field[lat.Index(4, 2)], 1e-12)

	none, err := NewBinding(lat, nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = NewBinding(lat, func(x, y, lx, ly float64) float64 { return math.NaN() })
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"gaussian", "harmonic", "soft-coulomb", "zero"}, Names())

	f, err := New("harmonic", map[string]string{"k": "4"})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, f(1, 0, 10, 10), 1e-12)

	f, err = New("soft-coulomb", map[string]string{"strength": "bad"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f(0, 0, 10, 10), 1e-12, "malformed values fall back to defaults")

	_, err = New("yukawa", nil)
	assert.Error(t, err)
}
