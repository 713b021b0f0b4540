package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"twobody/internal/sims/pair"
)

const defaultHeatLevels = 64

// densityGrid exposes a marginal density as a plotter.GridXYZ in physical
// coordinates.
type densityGrid struct {
	d *pair.ProbabilityDensity
}

func (g densityGrid) Dims() (c, r int) { return g.d.Lattice.Nx, g.d.Lattice.Ny }
func (g densityGrid) Z(c, r int) float64 {
	return g.d.Values[g.d.Lattice.Index(c, r)]
}
func (g densityGrid) X(c int) float64 { return float64(c) * g.d.Lattice.Spacing }
func (g densityGrid) Y(r int) float64 { return float64(r) * g.d.Lattice.Spacing }

// HeatmapSink renders every density of every frame to
// <Dir>/<run id>/frame-NNNN-particleN.png.
type HeatmapSink struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
	Levels int

	mu      sync.Mutex
	written []string
}

// NewHeatmapSink returns a sink writing 6x6 inch images under dir.
func NewHeatmapSink(dir string) *HeatmapSink {
	return &HeatmapSink{
		Dir:    dir,
		Width:  6 * vg.Inch,
		Height: 6 * vg.Inch,
		Levels: defaultHeatLevels,
	}
}

// RunDir returns the directory frames of the given run land in.
func (s *HeatmapSink) RunDir(f pair.Frame) string {
	return filepath.Join(s.Dir, f.RunID.String())
}

// WriteFrame renders f.
func (s *HeatmapSink) WriteFrame(ctx context.Context, f pair.Frame) error {
	dir := s.RunDir(f)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create frame dir: %w", err)
	}
	for _, d := range f.Densities() {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame-%04d-%s.png", f.Index, d.Particle))
		title := fmt.Sprintf("%s  t=%.4g  step %d", d.Particle, f.Time, f.Step)
		if err := s.save(d, title, path); err != nil {
			return err
		}
		s.mu.Lock()
		s.written = append(s.written, path)
		s.mu.Unlock()
	}
	return nil
}

// Files lists every image written so far.
func (s *HeatmapSink) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.written...)
}

func (s *HeatmapSink) save(d *pair.ProbabilityDensity, title, path string) error {
	if d.Lattice.Nx < 2 || d.Lattice.Ny < 2 {
		return fmt.Errorf("heat map of %s needs at least 2x2 points, got %dx%d", d.Particle, d.Lattice.Nx, d.Lattice.Ny)
	}
	levels := s.Levels
	if levels < 2 {
		levels = defaultHeatLevels
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(densityGrid{d: d}, palette.Heat(levels, 1))
	lo, hi := d.Min(), d.Max()
	if hi <= lo {
		hi = lo + 1
	}
	hm.Min, hm.Max = lo, hi
	p.Add(hm)

	if err := p.Save(s.Width, s.Height, path); err != nil {
		return fmt.Errorf("save heat map %s: %w", filepath.Base(path), err)
	}
	return nil
}
