package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// LabelInfo holds the data encoded into each product label's QR code.
type LabelInfo struct {
	Series          string  `json:"series"`
	Width           float64 `json:"width_mm"`
	Height          float64 `json:"height_mm"`
	CellsInSeries   int     `json:"cells_series"`
	ParallelStrings int     `json:"parallel_strings"`
	Voc             float64 `json:"voc"`
	Isc             float64 `json:"isc"`
	Pmax            float64 `json:"pmax,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns,
// 10 rows per page). Each cell is approximately 66.7mm x 25.4mm on
// US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos builds label data for each generated product row.
// Rows whose series code no longer parses are skipped; the importer
// validated them, so this only guards manual callers.
func CollectLabelInfos(rows []model.PanelRow) []LabelInfo {
	var labels []LabelInfo
	for _, row := range rows {
		dims, topo, err := model.ParseSeriesCode(row.Series)
		if err != nil {
			continue
		}
		labels = append(labels, LabelInfo{
			Series:          row.Series,
			Width:           dims.Width,
			Height:          dims.Height,
			CellsInSeries:   topo.CellsInSeries,
			ParallelStrings: topo.ParallelStrings,
			Voc:             row.Voc,
			Isc:             row.Isc,
			Pmax:            row.Pmax,
		})
	}
	return labels
}

// Labels generates a PDF of QR-coded product labels for a batch. Each label
// carries the series name, dimensions and ratings, plus a QR code encoding
// the same data as JSON for warehouse scanners.
func Labels(path string, rows []model.PanelRow) error {
	labels := CollectLabelInfos(rows)
	if len(labels) == 0 {
		return fmt.Errorf("no products to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Series, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, info LabelInfo) error {
	// Light border as a cutting guide.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Series name (bold), truncated to fit.
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	series := info.Series
	if pdf.GetStringWidth(series) > textW {
		for len(series) > 0 && pdf.GetStringWidth(series+"...") > textW {
			series = series[:len(series)-1]
		}
		series += "..."
	}
	pdf.CellFormat(textW, 4.5, series, "", 1, "L", false, 0, "")

	// Dimensions and topology.
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm  %dS x %dP", info.Width, info.Height, info.CellsInSeries, info.ParallelStrings)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Ratings line.
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	ratings := fmt.Sprintf("Voc %.2fV  Isc %.2fA", info.Voc, info.Isc)
	if info.Pmax > 0 {
		ratings += fmt.Sprintf("  Pmax %.1fW", info.Pmax)
	}
	pdf.CellFormat(textW, 3, ratings, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
