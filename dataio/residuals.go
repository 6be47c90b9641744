package dataio

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveResidualPlot renders the per-iteration relative residuals of a solve
// as a semilog line chart.
func SaveResidualPlot(path string, history []float64) error {
	xys := make(plotter.XYs, 0, len(history))
	for i, r := range history {
		if r <= 0 {
			continue // log scale cannot represent an exactly-zero residual
		}
		xys = append(xys, plotter.XY{X: float64(i + 1), Y: r})
	}
	if len(xys) == 0 {
		return fmt.Errorf("dataio: empty residual history")
	}

	p := plot.New()
	p.Title.Text = "solver residual history"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "relative residual"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("dataio: building residual plot: %w", err)
	}
	p.Add(plotter.NewGrid(), line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("dataio: saving residual plot: %w", err)
	}
	return nil
}
