package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pbanos/sapling/pkg/sapling"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

/*
MetricsChart takes the classes of a dataset and the metrics of unpruned and
pruned trees and returns a grouped bar chart comparing them: accuracy, F1
and the recall and precision of every class. Measures that are NaN are
drawn as 0.
*/
func MetricsChart(classes sapling.Classes, unpruned, pruned sapling.Metrics) (*plot.Plot, error) {
	names := []string{"Accuracy", "F1"}
	for _, c := range classes {
		names = append(names, fmt.Sprintf("R%d", c))
	}
	for _, c := range classes {
		names = append(names, fmt.Sprintf("P%d", c))
	}
	p := plot.New()
	p.Title.Text = "Cross validation metrics"
	p.Y.Label.Text = "Score"
	p.Y.Min, p.Y.Max = 0, 1
	w := vg.Points(8)
	for i, series := range []struct {
		name    string
		metrics sapling.Metrics
		color   color.RGBA
	}{
		{"Unpruned", unpruned, color.RGBA{R: 255, G: 99, B: 71, A: 255}},
		{"Pruned", pruned, color.RGBA{R: 50, G: 50, B: 255, A: 255}},
	} {
		values := chartValues(series.metrics)
		if len(values) != len(names) {
			return nil, fmt.Errorf("%s metrics hold %d measures for %d classes", series.name, len(values), len(classes))
		}
		bars, err := plotter.NewBarChart(values, w)
		if err != nil {
			return nil, fmt.Errorf("charting %s metrics: %w", series.name, err)
		}
		bars.Color = series.color
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = w * vg.Length(2*i-1) / 2
		p.Add(bars)
		p.Legend.Add(series.name, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)
	return p, nil
}

/*
SaveMetricsChart draws the chart of MetricsChart onto the file at path, in
the image format its extension names (png, svg, pdf...).
*/
func SaveMetricsChart(path string, classes sapling.Classes, unpruned, pruned sapling.Metrics) error {
	p, err := MetricsChart(classes, unpruned, pruned)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving metrics chart to %s: %w", path, err)
	}
	return nil
}

func chartValues(m sapling.Metrics) plotter.Values {
	values := plotter.Values{m.Accuracy, m.F1}
	values = append(values, m.Recall...)
	values = append(values, m.Precision...)
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = 0
		}
	}
	return values
}
