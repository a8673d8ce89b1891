package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/gab-dev-code/solarix-datasheet/internal/sketch"
)

// PanelCanvas renders an on-screen preview of a panel's cell layout,
// portrait-normalized like the exported sketch.
type PanelCanvas struct {
	widget.BaseWidget
	drawing   sketch.Drawing
	maxWidth  float32
	maxHeight float32
}

func NewPanelCanvas(drawing sketch.Drawing, maxW, maxH float32) *PanelCanvas {
	pc := &PanelCanvas{
		drawing:   drawing,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *PanelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPanelCanvasRenderer(pc)
}

type panelCanvasRenderer struct {
	pc      *PanelCanvas
	objects []fyne.CanvasObject
}

func newPanelCanvasRenderer(pc *PanelCanvas) *panelCanvasRenderer {
	r := &panelCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *panelCanvasRenderer) scale() float32 {
	panelW := float32(r.pc.drawing.Panel.Width)
	panelH := float32(r.pc.drawing.Panel.Height)
	scaleX := r.pc.maxWidth / panelW
	scaleY := r.pc.maxHeight / panelH
	if scaleY < scaleX {
		return scaleY
	}
	return scaleX
}

func (r *panelCanvasRenderer) rebuild() {
	r.objects = nil

	d := r.pc.drawing
	scale := r.scale()
	canvasW := float32(d.Panel.Width) * scale
	canvasH := float32(d.Panel.Height) * scale

	// Panel backsheet
	bg := canvas.NewRectangle(color.NRGBA{R: 245, G: 245, B: 245, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	// Frame
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	geom := d.Layout.Geometry
	marginX, marginY := d.Margins()
	cellW := float32(geom.CellWidth) * scale
	cellH := float32(geom.CellHeight) * scale

	for row := 0; row < d.Layout.Rows; row++ {
		for col := 0; col < d.Layout.Columns; col++ {
			x := float32(marginX+float64(col)*(geom.CellWidth+geom.HGap)) * scale
			y := float32(marginY+float64(row)*(geom.CellHeight+geom.VGap)) * scale

			cell := canvas.NewRectangle(color.NRGBA{R: 21, G: 48, B: 94, A: 255})
			cell.Resize(fyne.NewSize(cellW, cellH))
			cell.Move(fyne.NewPos(x, y))
			r.objects = append(r.objects, cell)

			cellBorder := canvas.NewRectangle(color.Transparent)
			cellBorder.StrokeColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
			cellBorder.StrokeWidth = 1
			cellBorder.Resize(fyne.NewSize(cellW, cellH))
			cellBorder.Move(fyne.NewPos(x, y))
			r.objects = append(r.objects, cellBorder)
		}
	}
}

func (r *panelCanvasRenderer) Layout(size fyne.Size)        {}
func (r *panelCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *panelCanvasRenderer) Destroy()                     {}
func (r *panelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *panelCanvasRenderer) MinSize() fyne.Size {
	scale := r.scale()
	return fyne.NewSize(
		float32(r.pc.drawing.Panel.Width)*scale,
		float32(r.pc.drawing.Panel.Height)*scale,
	)
}

// RenderPanelPreview builds a scrollable preview for a series code: the cell
// layout plus a summary line. Parse and layout failures come back as a plain
// label so the preview pane never blocks the rest of the UI.
func RenderPanelPreview(series string) fyne.CanvasObject {
	if series == "" {
		return widget.NewLabel("Select a product row to preview its cell layout.")
	}

	drawing, err := sketch.Plan(series)
	if err != nil {
		msg := widget.NewLabel(fmt.Sprintf("Cannot preview %s: %v", series, err))
		msg.Wrapping = fyne.TextWrapWord
		msg.Importance = widget.DangerImportance
		return msg
	}

	header := widget.NewLabel(fmt.Sprintf(
		"%s — %.0f × %.0f mm, %d × %d cells",
		series, drawing.Panel.Width, drawing.Panel.Height,
		drawing.Layout.Columns, drawing.Layout.Rows,
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	panelCanvas := NewPanelCanvas(drawing, 360, 540)

	return container.NewVScroll(container.NewVBox(header, panelCanvas))
}
