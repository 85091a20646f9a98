// Package report produces the human-facing artifacts of a training run: the
// macro-F1 learning curve image and the qualitative sample dump. The final
// per-label table comes from the metrics package; this package only renders
// what needs a file.
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/seqlab-ml/seqlab/internal/train"
)

// WriteCurve renders the evaluation history as a line plot with a point per
// evaluation epoch and saves it to path. The image format follows the file
// extension (png, svg, pdf).
func WriteCurve(path string, history []train.EvalPoint) error {
	if len(history) == 0 {
		return fmt.Errorf("no evaluation points to plot")
	}

	pts := make(plotter.XYs, len(history))
	for i, h := range history {
		pts[i].X = float64(h.Epoch)
		pts[i].Y = h.MacroF1
	}

	p := plot.New()
	p.Title.Text = "Evaluation macro-F1"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "macro-F1"
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("build curve: %w", err)
	}
	p.Add(line, points)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save curve: %w", err)
	}
	return nil
}
