// Package sketch renders the schematic panel layout drawing: the panel
// outline, a centered grid of cell rectangles, and dimension labels.
// The sketch is always drawn portrait for document layout consistency,
// regardless of the panel's manufactured orientation.
package sketch

import (
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/gab-dev-code/solarix-datasheet/internal/engine"
	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// Canvas size matches the reference output: 8x12in at 200 DPI.
const (
	canvasWidth  = 1600
	canvasHeight = 2400

	// Blank space around the outline in panel millimeters. The extra
	// room on the top and right edges holds the dimension labels.
	padLeftMM   = 50.0
	padRightMM  = 100.0
	padTopMM    = 100.0
	padBottomMM = 50.0

	labelOffsetMM = 30.0
)

// Drawing describes a fully resolved sketch before rasterization.
type Drawing struct {
	Panel  model.PanelDimensions // swapped (portrait) dimensions
	Layout model.CellLayout
}

// Plan parses a series code and solves the portrait-normalized layout.
// The parsed dimensions are swapped so the smaller value becomes the drawn
// width; the layout is computed from the swapped rectangle so the solver's
// orientation test sees the portrait arrangement.
func Plan(code string) (Drawing, error) {
	dims, topo, err := model.ParseSeriesCode(code)
	if err != nil {
		return Drawing{}, err
	}

	drawDims := dims.Swapped()
	layout, err := engine.ComputeLayout(drawDims, topo.TotalCells())
	if err != nil {
		return Drawing{}, err
	}

	return Drawing{Panel: drawDims, Layout: layout}, nil
}

// Margins returns the blank border between the panel outline and the cell
// grid on each axis: (panel - occupied) / 2, so the grid is centered.
func (d Drawing) Margins() (x, y float64) {
	x = (d.Panel.Width - d.Layout.OccupiedWidth()) / 2
	y = (d.Panel.Height - d.Layout.OccupiedHeight()) / 2
	return x, y
}

// Render parses the series code, solves the layout, and writes the sketch
// PNG to path. Parse and layout failures propagate as their typed errors so
// the batch layer can report them per row.
func Render(code, path string) error {
	drawing, err := Plan(code)
	if err != nil {
		return err
	}
	if err := rasterize(drawing, path); err != nil {
		return fmt.Errorf("render sketch for %q: %w", code, err)
	}
	return nil
}

// rasterize draws the panel onto a white canvas and writes it as PNG.
func rasterize(d Drawing, path string) error {
	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// mm -> px scale fitting the panel plus label padding.
	contentW := d.Panel.Width + padLeftMM + padRightMM
	contentH := d.Panel.Height + padTopMM + padBottomMM
	scale := float64(canvasWidth) / contentW
	if s := float64(canvasHeight) / contentH; s < scale {
		scale = s
	}

	// Center the content block on the canvas.
	originX := (float64(canvasWidth) - contentW*scale) / 2
	originY := (float64(canvasHeight) - contentH*scale) / 2

	// toPx maps panel mm coordinates (origin = panel top-left) to pixels.
	toPx := func(x, y float64) (float64, float64) {
		return originX + (padLeftMM+x)*scale, originY + (padTopMM+y)*scale
	}

	// Panel outline.
	px, py := toPx(0, 0)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(3)
	dc.DrawRectangle(px, py, d.Panel.Width*scale, d.Panel.Height*scale)
	dc.Stroke()

	// Cell grid, centered.
	marginX, marginY := d.Margins()
	geom := d.Layout.Geometry
	dc.SetLineWidth(1)
	for row := 0; row < d.Layout.Rows; row++ {
		for col := 0; col < d.Layout.Columns; col++ {
			cx := marginX + float64(col)*(geom.CellWidth+geom.HGap)
			cy := marginY + float64(row)*(geom.CellHeight+geom.VGap)
			cpx, cpy := toPx(cx, cy)
			dc.DrawRectangle(cpx, cpy, geom.CellWidth*scale, geom.CellHeight*scale)
			dc.Stroke()
		}
	}

	// Width label centered above the top edge.
	wx, wy := toPx(d.Panel.Width/2, -labelOffsetMM)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", d.Panel.Width), wx, wy, 0.5, 0.5)

	// Height label to the right of the right edge, rotated to read
	// top-to-bottom.
	hx, hy := toPx(d.Panel.Width+labelOffsetMM, d.Panel.Height/2)
	dc.Push()
	dc.RotateAbout(gg.Radians(90), hx, hy)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", d.Panel.Height), hx, hy, 0.5, 0.5)
	dc.Pop()

	return dc.SavePNG(path)
}
