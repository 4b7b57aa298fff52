package debugviz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// WritePlot draws every segment of l as a lon/lat polyline and saves the
// image to path. The format follows the file extension (png, svg, pdf).
func WritePlot(path string, l Layers) error {
	p := plot.New()
	p.Title.Text = "Trail merge"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Legend.Top = true

	for i, ly := range l.ordered() {
		var legend *plotter.Line
		for _, s := range ly.Segments {
			if len(s.Points) == 0 {
				continue
			}
			xys := make(plotter.XYs, 0, len(s.Points))
			for _, pt := range s.Points {
				xys = append(xys, plotter.XY{X: pt.Longitude, Y: pt.Latitude})
			}
			line, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("plot %s layer: %w", ly.Name, err)
			}
			line.Color = plotutil.Color(i)
			line.Width = vg.Points(1 + float64(i))
			p.Add(line)
			if legend == nil {
				legend = line
			}
		}
		if legend != nil {
			p.Legend.Add(ly.Name, legend)
		}
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
