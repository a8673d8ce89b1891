package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// fieldUnits maps template field names to display units for the
// characteristics table.
var fieldUnits = map[string]string{
	"pmax":   "W",
	"voc":    "V",
	"vmp":    "V",
	"isc":    "A",
	"imp":    "A",
	"eff":    "%",
	"weight": "kg",
	"t":      "\xb0C",
}

// fieldTitles maps template field names to human-readable row titles.
var fieldTitles = map[string]string{
	"pmax":   "Maximum Power (Pmax)",
	"voc":    "Open Circuit Voltage (Voc)",
	"vmp":    "Voltage at Max Power (Vmp)",
	"isc":    "Short Circuit Current (Isc)",
	"imp":    "Current at Max Power (Imp)",
	"eff":    "Module Efficiency",
	"weight": "Weight",
	"t":      "Operating Temperature (NOCT)",
}

// Datasheet renders a self-contained product datasheet PDF: header with the
// series name, the I-V curve chart and panel sketch images, and the
// formatted electrical characteristics table. It needs no LaTeX toolchain.
func Datasheet(path string, row model.PanelRow, sketchPNG, chartPNG string) error {
	dims, topo, err := model.ParseSeriesCode(row.Series)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Solar Module Datasheet", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+10)
	pdf.CellFormat(contentWidth, 6, row.Series, "", 1, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+18, pageWidth-marginRight, marginTop+18)

	y := marginTop + 24

	// I-V curve chart across the full content width (10:4 aspect).
	chartH := contentWidth * 0.4
	pdf.ImageOptions(chartPNG, marginLeft, y, contentWidth, chartH, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	y += chartH + 8

	// Panel sketch on the left (2:3 aspect), characteristics table right.
	sketchW := 60.0
	sketchH := sketchW * 1.5
	pdf.ImageOptions(sketchPNG, marginLeft, y, sketchW, sketchH, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	tableX := marginLeft + sketchW + 8
	tableW := pageWidth - marginRight - tableX
	drawCharacteristicsTable(pdf, row, tableX, y, tableW)

	// Mechanical summary under the table.
	my := y + 12 + float64(len(model.FieldNames()))*7 + 6
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(tableX, my)
	mech := fmt.Sprintf("Dimensions: %.0f x %.0f mm   Cells: %d (%dS x %dP)",
		dims.Width, dims.Height, topo.TotalCells(), topo.CellsInSeries, topo.ParallelStrings)
	pdf.CellFormat(tableW, 5, mech, "", 0, "L", false, 0, "")

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by Solarix Datasheet Generator", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// drawCharacteristicsTable renders the formatted fields as a two-column
// table at STC.
func drawCharacteristicsTable(pdf *fpdf.Fpdf, row model.PanelRow, x, y, w float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 7, "Electrical Characteristics (STC)", "", 1, "L", false, 0, "")
	y += 12

	names := model.FieldNames()
	values := row.FormattedFields()

	labelW := w * 0.68
	valueW := w - labelW

	pdf.SetFont("Helvetica", "", 9)
	for i, name := range names {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		pdf.SetXY(x, y)
		pdf.CellFormat(labelW, 7, fieldTitles[name], "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueW, 7, values[i]+" "+fieldUnits[name], "1", 0, "R", true, 0, "")
		y += 7
	}
}
