// Package generator drives the per-product pipeline: parse the series code,
// solve the layout, render the sketch and I-V chart, and emit the enabled
// export formats. One bad row never aborts the batch; each row reports its
// own result.
package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gab-dev-code/solarix-datasheet/internal/chart"
	"github.com/gab-dev-code/solarix-datasheet/internal/export"
	"github.com/gab-dev-code/solarix-datasheet/internal/importer"
	"github.com/gab-dev-code/solarix-datasheet/internal/model"
	"github.com/gab-dev-code/solarix-datasheet/internal/sketch"
)

// Fixed artifact names the LaTeX template references.
const (
	templateSketchName = "panel.png"
	templateChartName  = "iv_curve.png"
)

// RowResult reports the outcome of one product row.
type RowResult struct {
	Series    string
	Artifacts []string // paths of files produced for this row
	Warnings  []string
	Err       error // nil on success
}

// OK reports whether the row produced its artifacts.
func (r RowResult) OK() bool { return r.Err == nil }

// BatchResult reports a whole run.
type BatchResult struct {
	Results    []RowResult
	LabelsPath string // empty if labels were disabled or nothing succeeded
	Archive    string // empty if zipping was disabled
}

// Succeeded returns how many rows generated cleanly.
func (b BatchResult) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns how many rows errored.
func (b BatchResult) Failed() int { return len(b.Results) - b.Succeeded() }

// Generator runs datasheet generation batches.
type Generator struct {
	Settings model.GenerateSettings
}

func New(settings model.GenerateSettings) *Generator {
	return &Generator{Settings: settings}
}

// Run processes the rows sequentially in input order. workbookPath is the
// source spreadsheet, used only for the optional traceability write-back;
// pass "" when rows did not come from a workbook. The returned error covers
// batch-level problems (unusable output directory); per-row failures live
// in the results.
func (g *Generator) Run(ctx context.Context, rows []model.PanelRow, workbookPath string) (BatchResult, error) {
	outDir := g.Settings.OutputDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return BatchResult{}, fmt.Errorf("create output directory: %w", err)
	}

	batch := BatchResult{}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		batch.Results = append(batch.Results, g.generateRow(ctx, row, workbookPath))
	}

	if g.Settings.ExportLabels {
		var good []model.PanelRow
		for i, r := range batch.Results {
			if r.OK() {
				good = append(good, rows[i])
			}
		}
		if len(good) > 0 {
			labelsPath := filepath.Join(outDir, "labels.pdf")
			if err := export.Labels(labelsPath, good); err != nil {
				return batch, fmt.Errorf("export labels: %w", err)
			}
			batch.LabelsPath = labelsPath
		}
	}

	if g.Settings.ZipOutput {
		archive := filepath.Join(outDir, "batch.zip")
		if err := export.ZipDirectory(outDir, archive); err != nil {
			return batch, fmt.Errorf("zip batch output: %w", err)
		}
		batch.Archive = archive
	}

	return batch, nil
}

// generateRow produces all enabled artifacts for one product row.
func (g *Generator) generateRow(ctx context.Context, row model.PanelRow, workbookPath string) RowResult {
	result := RowResult{Series: row.Series}

	// Artifact prefix: sanitized series plus a short unique suffix so
	// re-runs never clobber earlier output.
	base := export.FileSafeName(row.Series) + "-" + uuid.New().String()[:8]
	outDir := g.Settings.OutputDir

	sketchPath := filepath.Join(outDir, base+"_panel.png")
	if err := sketch.Render(row.Series, sketchPath); err != nil {
		result.Err = err
		return result
	}
	result.Artifacts = append(result.Artifacts, sketchPath)

	chartPath := filepath.Join(outDir, base+"_iv.png")
	if err := chart.Render(row.Voc, row.Isc, chartPath); err != nil {
		result.Err = err
		return result
	}
	result.Artifacts = append(result.Artifacts, chartPath)

	// Traceability write-back is best effort: a locked or single-sheet
	// workbook downgrades to a warning, not a row failure.
	if g.Settings.WriteBack && workbookPath != "" {
		if err := importer.WriteBack(workbookPath, row.Series, row.Voc, row.Isc, row.Pmax); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("write-back skipped: %v", err))
		}
	}

	if g.Settings.DirectPDF {
		pdfPath := filepath.Join(outDir, base+".pdf")
		if err := export.Datasheet(pdfPath, row, sketchPath, chartPath); err != nil {
			result.Err = err
			return result
		}
		result.Artifacts = append(result.Artifacts, pdfPath)
	}

	if g.Settings.ExportDXF {
		dxfPath := filepath.Join(outDir, base+".dxf")
		if err := export.LayoutDXF(dxfPath, row.Series); err != nil {
			result.Err = err
			return result
		}
		result.Artifacts = append(result.Artifacts, dxfPath)
	}

	if g.Settings.UseLatex {
		pdfPath, err := g.typeset(ctx, row, sketchPath, chartPath, base)
		if err != nil {
			result.Err = err
			return result
		}
		result.Artifacts = append(result.Artifacts, pdfPath)
	}

	return result
}

// typeset compiles the external LaTeX template for one product. The
// template reads series.tex, data.csv and the fixed-name images from its
// own directory, so the row's artifacts are staged there first.
func (g *Generator) typeset(ctx context.Context, row model.PanelRow, sketchPath, chartPath, base string) (string, error) {
	template := g.Settings.TemplateFile
	if !filepath.IsAbs(template) {
		template = filepath.Join(g.Settings.OutputDir, template)
	}
	if _, err := os.Stat(template); err != nil {
		return "", fmt.Errorf("latex template %s: %w", template, err)
	}
	dir := filepath.Dir(template)

	if err := export.WriteFragment(dir, row); err != nil {
		return "", err
	}
	if err := copyFile(sketchPath, filepath.Join(dir, templateSketchName)); err != nil {
		return "", err
	}
	if err := copyFile(chartPath, filepath.Join(dir, templateChartName)); err != nil {
		return "", err
	}

	pdf, err := export.Compile(ctx, dir, filepath.Base(template), g.Settings.LatexBinary)
	if err != nil {
		return "", err
	}

	// The engine always writes <template>.pdf; move it to the per-product
	// name so the next row does not overwrite it.
	finalPath := filepath.Join(g.Settings.OutputDir, base+"_datasheet.pdf")
	if err := os.Rename(pdf, finalPath); err != nil {
		return "", fmt.Errorf("move compiled pdf: %w", err)
	}
	return finalPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
