package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/gab-dev-code/solarix-datasheet/internal/engine"
	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// LayoutDXF writes the manufactured panel layout (outline plus cell grid)
// as a DXF drawing for CAD exchange. Unlike the sketch, the drawing uses
// the panel's original orientation: this is the layout as built, not the
// portrait-normalized document figure.
func LayoutDXF(path, series string) error {
	dims, topo, err := model.ParseSeriesCode(series)
	if err != nil {
		return err
	}
	layout, err := engine.ComputeLayout(dims, topo.TotalCells())
	if err != nil {
		return err
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("PANEL", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add panel layer: %w", err)
	}
	drawRect(d, 0, 0, dims.Width, dims.Height)

	if _, err := d.AddLayer("CELLS", color.Blue, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add cells layer: %w", err)
	}

	geom := layout.Geometry
	marginX := (dims.Width - layout.OccupiedWidth()) / 2
	marginY := (dims.Height - layout.OccupiedHeight()) / 2
	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Columns; col++ {
			x := marginX + float64(col)*(geom.CellWidth+geom.HGap)
			y := marginY + float64(row)*(geom.CellHeight+geom.VGap)
			drawRect(d, x, y, geom.CellWidth, geom.CellHeight)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}

// drawRect adds an axis-aligned rectangle as four LINE entities.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}
