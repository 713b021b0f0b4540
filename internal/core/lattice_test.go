package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatticeWrap(t *testing.T) {
	lat := NewLattice(5, 3, 0.5)

	cases := []struct {
		x, y   int
		wx, wy int
	}{
		{0, 0, 0, 0},
		{-1, -1, 4, 2},
		{5, 3, 0, 0},
		{-7, 7, 3, 1},
		{11, -4, 1, 2},
	}
	for _, tc := range cases {
		x, y := lat.Wrap(tc.x, tc.y)
		assert.Equal(t, tc.wx, x, "x for (%d,%d)", tc.x, tc.y)
		assert.Equal(t, tc.wy, y, "y for (%d,%d)", tc.x, tc.y)
	}

	assert.Equal(t, 15, lat.Points())
	assert.Equal(t, 2*5+3, lat.Index(3, 2))
	w, h := lat.Extent()
	assert.InDelta(t, 2.5, w, 1e-12)
	assert.InDelta(t, 1.5, h, 1e-12)
}

func TestLatticeAxes(t *testing.T) {
	lat := NewLattice(4, 1, 0.25)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75}, lat.XAxis(), 1e-12)
	assert.Equal(t, []float64{0}, lat.YAxis())
}

func TestStencilWrapsBothDirections(t *testing.T) {
	s := NewStencil(4)
	assert.Equal(t, []int{2, 3, 0, 1}, s.M2)
	assert.Equal(t, []int{3, 0, 1, 2}, s.M1)
	assert.Equal(t, []int{1, 2, 3, 0}, s.P1)
	assert.Equal(t, []int{2, 3, 0, 1}, s.P2)

	// A single-point axis wraps every neighbor onto itself.
	one := NewStencil(1)
	assert.Equal(t, []int{0}, one.M2)
	assert.Equal(t, []int{0}, one.P2)
}

func TestMinImage(t *testing.T) {
	assert.InDelta(t, -1.0, MinImage(9, 10), 1e-12)
	assert.InDelta(t, 4.0, MinImage(-6, 10), 1e-12)
	assert.InDelta(t, -5.0, MinImage(5, 10), 1e-12)
	assert.InDelta(t, 3.0, MinImage(3, 0), 1e-12)
}

func TestFixedStepAccumulates(t *testing.T) {
	fs := NewFixedStep(10)
	clock := time.Unix(100, 0)
	fs.now = func() time.Time { return clock }

	require.True(t, fs.ShouldStep(), "first call consumes the primed step")
	assert.False(t, fs.ShouldStep())

	clock = clock.Add(50 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	clock = clock.Add(60 * time.Millisecond)
	assert.True(t, fs.ShouldStep())
	assert.Equal(t, 100*time.Millisecond, fs.Interval())
}

func TestRegistry(t *testing.T) {
	before := len(Sims())
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("nil-factory", nil)
	assert.Len(t, Sims(), before)

	_, err := NewSim("does-not-exist", nil)
	assert.Error(t, err)
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Grid", Params: []Parameter{IntParam("nx", "Nx", 8), FloatParam("a", "Spacing", 0.5)}},
		{Name: "Run", Params: []Parameter{BoolParam("parallel", "Parallel", true)}},
	}}
	p, ok := snap.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "0.5", p.Value)
	assert.Equal(t, ParamTypeFloat, p.Type)

	p, ok = snap.Lookup("parallel")
	require.True(t, ok)
	assert.Equal(t, "true", p.Value)

	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}
