// solarix-gen — headless batch datasheet generation.
//
// Reads a product workbook (xlsx or csv) and writes every enabled artifact
// per product row without starting the GUI. Intended for CI pipelines and
// bulk regeneration of a whole product catalog.
//
// Usage:
//   solarix-gen -in products.xlsx -out ./datasheets -labels -zip

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/gab-dev-code/solarix-datasheet/internal/generator"
	"github.com/gab-dev-code/solarix-datasheet/internal/importer"
	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

func main() {
	defaults := model.DefaultGenerateSettings()

	in := flag.String("in", "", "input workbook (.xlsx or .csv), required")
	out := flag.String("out", defaults.OutputDir, "output directory for generated artifacts")
	directPDF := flag.Bool("pdf", defaults.DirectPDF, "render the built-in PDF datasheet")
	useLatex := flag.Bool("latex", defaults.UseLatex, "compile the external LaTeX template")
	latexBin := flag.String("latex-bin", defaults.LatexBinary, "LaTeX engine binary")
	template := flag.String("template", defaults.TemplateFile, "LaTeX template file")
	labels := flag.Bool("labels", defaults.ExportLabels, "write a QR label sheet for the batch")
	dxfOut := flag.Bool("dxf", defaults.ExportDXF, "write a layout DXF per product")
	zipOut := flag.Bool("zip", defaults.ZipOutput, "zip the batch output directory")
	writeBack := flag.Bool("write-back", defaults.WriteBack, "write generated ratings back to the workbook's second sheet")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "solarix-gen: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	var result importer.ImportResult
	if strings.HasSuffix(strings.ToLower(*in), ".csv") {
		result = importer.ImportCSV(*in)
	} else {
		result = importer.ImportExcel(*in)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "import error: %s\n", e)
	}
	if len(result.Rows) == 0 {
		fmt.Fprintf(os.Stderr, "solarix-gen: no usable product rows in %s\n", *in)
		os.Exit(1)
	}

	settings := model.GenerateSettings{
		OutputDir:    *out,
		UseLatex:     *useLatex,
		LatexBinary:  *latexBin,
		TemplateFile: *template,
		DirectPDF:    *directPDF,
		ExportLabels: *labels,
		ExportDXF:    *dxfOut,
		ZipOutput:    *zipOut,
		WriteBack:    *writeBack,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	batch, err := generator.New(settings).Run(ctx, result.Rows, *in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "solarix-gen: %v\n", err)
		os.Exit(1)
	}

	for _, r := range batch.Results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: FAILED: %v\n", r.Series, r.Err)
			continue
		}
		fmt.Printf("%s: %d file(s)\n", r.Series, len(r.Artifacts))
		for _, w := range r.Warnings {
			fmt.Fprintf(os.Stderr, "%s: %s\n", r.Series, w)
		}
	}
	if batch.LabelsPath != "" {
		fmt.Printf("labels: %s\n", batch.LabelsPath)
	}
	if batch.Archive != "" {
		fmt.Printf("archive: %s\n", batch.Archive)
	}
	fmt.Printf("done: %d generated, %d failed\n", batch.Succeeded(), batch.Failed())

	if batch.Succeeded() == 0 {
		os.Exit(1)
	}
}
