package output

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveNormPlot draws the conserved norm against frame time.
func SaveNormPlot(path string, times, norms []float64) error {
	if len(times) != len(norms) {
		return fmt.Errorf("norm plot: %d times for %d norms", len(times), len(norms))
	}
	if len(norms) == 0 {
		return fmt.Errorf("norm plot: no frames")
	}

	pts := make(plotter.XYs, len(norms))
	for i := range norms {
		pts[i] = plotter.XY{X: times[i], Y: norms[i]}
	}

	p := plot.New()
	p.Title.Text = "Norm"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "a⁴ Σ (R² + I⁺I⁻)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save norm plot: %w", err)
	}
	return nil
}
