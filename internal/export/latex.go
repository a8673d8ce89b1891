// Package export writes the per-product artifacts: LaTeX fragments for the
// external typesetting template, the self-contained datasheet PDF, QR-coded
// product labels, DXF layout drawings, and the batch archive.
package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// latexEscaper escapes the characters that would break the series name
// macro, so the template compiles no matter what marketing tokens the
// code carries.
var latexEscaper = strings.NewReplacer(
	"\\", `\textbackslash{}`,
	"#", `\#`,
	"$", `\$`,
	"%", `\%`,
	"&", `\&`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

// SanitizeSeriesToken prepares a series name for use inside the template:
// spaces become underscores first, then LaTeX specials are escaped.
func SanitizeSeriesToken(series string) string {
	return latexEscaper.Replace(strings.ReplaceAll(series, " ", "_"))
}

// FileSafeName reduces a series name to a filesystem-safe artifact prefix.
func FileSafeName(series string) string {
	var b strings.Builder
	for _, r := range series {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		default:
			// Drop anything else; series codes are ASCII by convention.
		}
	}
	return b.String()
}

// WriteFragment emits the two files the LaTeX template consumes for one
// product: a macro file binding the sanitized series token and a one-row
// CSV of the formatted numeric fields.
func WriteFragment(dir string, row model.PanelRow) error {
	macro := fmt.Sprintf("\\def\\seriesname{%s}\n", SanitizeSeriesToken(row.Series))
	if err := os.WriteFile(filepath.Join(dir, "series.tex"), []byte(macro), 0644); err != nil {
		return fmt.Errorf("write series macro: %w", err)
	}

	var csv strings.Builder
	csv.WriteString(strings.Join(model.FieldNames(), ","))
	csv.WriteString("\n")
	csv.WriteString(strings.Join(row.FormattedFields(), ","))
	csv.WriteString("\n")
	if err := os.WriteFile(filepath.Join(dir, "data.csv"), []byte(csv.String()), 0644); err != nil {
		return fmt.Errorf("write data csv: %w", err)
	}
	return nil
}

// Compile runs the typesetting engine on the template inside dir and
// returns the path of the produced PDF. The engine's log is returned with
// the error on failure so the caller can surface it. The context cancels a
// hung run.
func Compile(ctx context.Context, dir, template, binary string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, "-interaction=nonstopmode", template)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w\n%s", binary, err, output)
	}

	pdf := filepath.Join(dir, strings.TrimSuffix(template, filepath.Ext(template))+".pdf")
	if _, err := os.Stat(pdf); err != nil {
		return "", fmt.Errorf("%s reported success but %s is missing\n%s", binary, pdf, output)
	}
	return pdf, nil
}
