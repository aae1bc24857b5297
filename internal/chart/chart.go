// Package chart renders the system head curve, as PNG for reports and
// as ASCII for terminals.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

// Build assembles the three-scenario system curve with the duty point
// marked on the nominal series.
func Build(points []sizing.CurvePoint, dutyFlowM3H, dutyHeadM float64) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no curve points")
	}

	p := plot.New()
	p.Title.Text = "System Curve"
	p.X.Label.Text = "Flow (m3/h)"
	p.Y.Label.Text = "Head (m)"
	p.Add(plotter.NewGrid())

	worst := make(plotter.XYs, len(points))
	nominal := make(plotter.XYs, len(points))
	best := make(plotter.XYs, len(points))
	for i, pt := range points {
		worst[i] = plotter.XY{X: pt.FlowM3H, Y: pt.WorstM}
		nominal[i] = plotter.XY{X: pt.FlowM3H, Y: pt.NominalM}
		best[i] = plotter.XY{X: pt.FlowM3H, Y: pt.BestM}
	}

	worstLine, err := plotter.NewLine(worst)
	if err != nil {
		return nil, err
	}
	worstLine.LineStyle.Width = vg.Points(1.5)
	worstLine.LineStyle.Color = color.RGBA{R: 200, A: 255}
	worstLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(worstLine)
	p.Legend.Add("worst case", worstLine)

	nominalLine, err := plotter.NewLine(nominal)
	if err != nil {
		return nil, err
	}
	nominalLine.LineStyle.Width = vg.Points(2)
	nominalLine.LineStyle.Color = color.RGBA{B: 200, A: 255}
	p.Add(nominalLine)
	p.Legend.Add("nominal", nominalLine)

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return nil, err
	}
	bestLine.LineStyle.Width = vg.Points(1.5)
	bestLine.LineStyle.Color = color.RGBA{G: 150, A: 255}
	bestLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(bestLine)
	p.Legend.Add("best case", bestLine)

	duty, err := plotter.NewScatter(plotter.XYs{{X: dutyFlowM3H, Y: dutyHeadM}})
	if err != nil {
		return nil, err
	}
	duty.GlyphStyle.Color = color.RGBA{R: 255, G: 140, A: 255}
	duty.GlyphStyle.Radius = vg.Points(5)
	duty.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(duty)
	p.Legend.Add("duty point", duty)

	p.Legend.Top = true
	p.Legend.Left = true
	p.X.Min = 0
	p.Y.Min = 0

	return p, nil
}

// WritePNG renders the curve into w.
func WritePNG(w io.Writer, points []sizing.CurvePoint, dutyFlowM3H, dutyHeadM float64) error {
	p, err := Build(points, dutyFlowM3H, dutyHeadM)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePNG renders the curve into a file.
func SavePNG(filename string, points []sizing.CurvePoint, dutyFlowM3H, dutyHeadM float64) error {
	p, err := Build(points, dutyFlowM3H, dutyHeadM)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, filename)
}

// ASCII renders the worst, nominal and best series for a terminal.
func ASCII(points []sizing.CurvePoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	if width <= 0 {
		width = 70
	}
	if height <= 0 {
		height = 15
	}

	series := make([][]float64, 3)
	for i := range series {
		series[i] = make([]float64, len(points))
	}
	for i, pt := range points {
		series[0][i] = pt.WorstM
		series[1][i] = pt.NominalM
		series[2][i] = pt.BestM
	}

	last := points[len(points)-1].FlowM3H
	return asciigraph.PlotMany(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("head (m) over flow 0..%.0f m3/h (worst/nominal/best)", last)),
	)
}
