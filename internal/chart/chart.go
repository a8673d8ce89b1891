// Package chart renders synthesized I-V curve families to a two-panel PNG:
// the irradiance sweep on the left, the temperature sweep on the right.
package chart

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/gab-dev-code/solarix-datasheet/internal/engine"
	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// Output matches the reference figure: 10x4in at 300 DPI, white background.
const (
	figWidth  = 10 * vg.Inch
	figHeight = 4 * vg.Inch
	chartDPI  = 300
)

// Render synthesizes both curve families from the ratings and writes the
// combined chart PNG to path. Invalid ratings propagate as
// *model.InvalidRatingError.
func Render(voc, isc float64, path string) error {
	irradiance, err := engine.SynthesizeIrradiance(voc, isc)
	if err != nil {
		return err
	}
	temperature, err := engine.SynthesizeTemperature(voc, isc)
	if err != nil {
		return err
	}
	return RenderFamilies(irradiance, temperature, path)
}

// RenderFamilies draws two already-synthesized curve families side by side.
func RenderFamilies(irradiance, temperature []model.IVCurve, path string) error {
	left, err := buildPlot("I-V characteristics at different irradiances", irradiance)
	if err != nil {
		return err
	}
	right, err := buildPlot("I-V characteristics at different temperatures", temperature)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(
		vgimg.UseWH(figWidth, figHeight),
		vgimg.UseDPI(chartDPI),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	plots := [][]*plot.Plot{{left, right}}
	tiles := draw.Tiles{
		Rows: 1, Cols: 2,
		PadX:     vg.Millimeter * 4,
		PadLeft:  vg.Millimeter * 2,
		PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write chart png: %w", err)
	}
	return nil
}

// buildPlot assembles one labeled curve family into a plot.
func buildPlot(title string, curves []model.IVCurve) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Voltage (V)"
	p.Y.Label.Text = "Current (A)"
	p.X.Min = 0
	p.Y.Min = 0

	for _, curve := range curves {
		xys := make(plotter.XYs, len(curve.Points))
		for i, pt := range curve.Points {
			xys[i].X = pt.V
			xys[i].Y = pt.I
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("plot curve %s: %w", curve.Label, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = parseHexColor(curve.Color)
		p.Add(line)
		p.Legend.Add(curve.Label, line)
	}

	p.Legend.Top = false
	return p, nil
}

// parseHexColor converts "#RRGGBB" to an opaque color. Malformed input
// falls back to black rather than failing the whole chart.
func parseHexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02X%02X%02X", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
