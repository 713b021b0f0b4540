package pair

import (
	"context"
	"math"
	"strconv"

	"twobody/internal/core"
)

// View adapts a scenario run to core.Sim for the live viewer. The display
// shows particle 1's marginal on the left and particle 2's on the right,
// separated by one column.
type View struct {
	name   string
	params map[string]string

	setup  Setup
	runner *Runner

	stepsPerFrame int
	norm          float64
	centroids     [2][2]float64

	display  []uint8
	binding  []float32
	negative []float32
}

// NewView builds the named scenario from flag-style params.
func NewView(name string, params map[string]string) (*View, error) {
	v := &View{name: name, params: map[string]string{}}
	for k, val := range params {
		v.params[k] = val
	}
	if err := v.Reset(); err != nil {
		return nil, err
	}
	return v, nil
}

// Name returns the scenario name.
func (v *View) Name() string { return v.name }

// Size reports the side-by-side display dimensions.
func (v *View) Size() core.Size {
	cfg := v.setup.Config
	return core.Size{W: 2*cfg.Nx + 1, H: cfg.Ny}
}

// Cells exposes the current display buffer.
func (v *View) Cells() []uint8 { return v.display }

// Runner exposes the active run.
func (v *View) Runner() *Runner { return v.runner }

// Reset rebuilds the scenario and its run from the current parameters.
func (v *View) Reset() error {
	setup, err := NewSetup(v.name, v.params)
	if err != nil {
		return err
	}
	runner, err := setup.Runner()
	if err != nil {
		return err
	}
	v.setup = setup
	v.runner = runner
	v.stepsPerFrame = intValue(v.params, "steps_per_frame", 1)
	if v.stepsPerFrame < 1 {
		v.stepsPerFrame = 1
	}

	size := v.Size()
	total := size.W * size.H
	v.display = make([]uint8, total)
	v.negative = make([]float32, total)
	v.binding = v.buildBindingMask()
	return v.refresh()
}

// Step advances the run by the configured number of timesteps and refreshes
// the display.
func (v *View) Step() error {
	for i := 0; i < v.stepsPerFrame; i++ {
		if err := v.runner.Step(); err != nil {
			return err
		}
	}
	return v.refresh()
}

func (v *View) refresh() error {
	st := v.runner.State()
	ctx := context.Background()
	d1, err := marginal(ctx, st, Particle1, v.runner.sl)
	if err != nil {
		return err
	}
	d2, err := marginal(ctx, st, Particle2, v.runner.sl)
	if err != nil {
		return err
	}
	v.norm = st.Norm()
	v.centroids[0] = centroid(d1)
	v.centroids[1] = centroid(d2)

	peak := math.Max(d1.Max(), d2.Max())
	nx, ny := d1.Lattice.Nx, d1.Lattice.Ny
	w := 2*nx + 1
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			i := y*nx + x
			left, right := y*w+x, y*w+nx+1+x
			v.display[left] = level(d1.Values[i], peak)
			v.display[right] = level(d2.Values[i], peak)
			v.negative[left] = negativeMask(d1.Values[i], peak)
			v.negative[right] = negativeMask(d2.Values[i], peak)
		}
		v.display[y*w+nx] = displaySeparator
	}
	return nil
}

func negativeMask(v, peak float64) float32 {
	if v >= 0 || peak <= 0 {
		return 0
	}
	// A dip of 1e-3 of the peak saturates.
	return float32(math.Min(1, -v/peak*1e3))
}

// centroid returns the circular mean position of d in display cells.
func centroid(d ProbabilityDensity) [2]float64 {
	nx, ny := d.Lattice.Nx, d.Lattice.Ny
	var cx, sx, cy, sy float64
	for y := 0; y < ny; y++ {
		ty := 2 * math.Pi * float64(y) / float64(ny)
		for x := 0; x < nx; x++ {
			p := d.Values[y*nx+x]
			tx := 2 * math.Pi * float64(x) / float64(nx)
			cx += p * math.Cos(tx)
			sx += p * math.Sin(tx)
			cy += p * math.Cos(ty)
			sy += p * math.Sin(ty)
		}
	}
	fx := math.Atan2(sx, cx) / (2 * math.Pi) * float64(nx)
	fy := math.Atan2(sy, cy) / (2 * math.Pi) * float64(ny)
	if fx < 0 {
		fx += float64(nx)
	}
	if fy < 0 {
		fy += float64(ny)
	}
	return [2]float64{fx, fy}
}

func (v *View) buildBindingMask() []float32 {
	pots := v.runner.Potentials()
	cfg := v.setup.Config
	nx, ny := cfg.Nx, cfg.Ny
	w := 2*nx + 1
	out := make([]float32, w*ny)
	for side, field := range [][]float64{pots.Binding1, pots.Binding2} {
		if field == nil {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, e := range field {
			lo = math.Min(lo, e)
			hi = math.Max(hi, e)
		}
		span := hi - lo
		if span <= 0 {
			continue
		}
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				// Deep wells glow brightest.
				t := 1 - (field[y*nx+x]-lo)/span
				out[y*w+side*(nx+1)+x] = float32(t)
			}
		}
	}
	return out
}

// BindingMask highlights the binding wells in display layout.
func (v *View) BindingMask() []float32 { return v.binding }

// NegativeMask highlights cells where the marginal density dipped below zero.
func (v *View) NegativeMask() []float32 { return v.negative }

// Centroids returns each particle's mean position in display cells.
func (v *View) Centroids() [][2]float64 {
	nx := float64(v.setup.Config.Nx)
	return [][2]float64{
		v.centroids[0],
		{v.centroids[1][0] + nx + 1, v.centroids[1][1]},
	}
}

// SetIntParameter updates an integer parameter and rebuilds the run.
func (v *View) SetIntParameter(key string, value int) bool {
	switch key {
	case "nx", "ny", "steps_per_frame":
	default:
		return false
	}
	return v.apply(key, strconv.Itoa(value))
}

// SetFloatParameter updates a floating point parameter and rebuilds the run.
func (v *View) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "a", "m1", "m2", "dt", "px":
	default:
		return false
	}
	return v.apply(key, strconv.FormatFloat(value, 'g', -1, 64))
}

func (v *View) apply(key, value string) bool {
	prev, had := v.params[key]
	v.params[key] = value
	if err := v.Reset(); err != nil {
		if had {
			v.params[key] = prev
		} else {
			delete(v.params, key)
		}
		return false
	}
	return true
}
