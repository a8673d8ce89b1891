// Package importer reads panel specification tables from CSV and Excel
// files. It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition. One bad row never aborts the
// import: errors are collected per row and the remaining rows proceed.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rows     []model.PanelRow
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Series int
	Pmax   int
	Voc    int
	Vmp    int
	Isc    int
	Imp    int
	Eff    int
	Weight int
	Temp   int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"series": {"series", "series name", "code", "product", "product code", "model", "name"},
	"pmax":   {"pmax", "p_max", "max power", "power", "wp"},
	"voc":    {"voc", "v_oc", "open circuit voltage"},
	"vmp":    {"vmp", "v_mp", "vmpp"},
	"isc":    {"isc", "i_sc", "short circuit current"},
	"imp":    {"imp", "i_mp", "impp"},
	"eff":    {"eff", "efficiency"},
	"weight": {"weight", "mass", "kg"},
	"t":      {"t", "temp", "temperature", "noct"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// producing the most consistent multi-column split wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default
// positional mapping (series, pmax, voc, vmp, isc, imp, eff, weight, t)
// and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Series: -1, Pmax: -1, Voc: -1, Vmp: -1, Isc: -1,
		Imp: -1, Eff: -1, Weight: -1, Temp: -1,
	}

	set := func(role string, i int) {
		switch role {
		case "series":
			if mapping.Series == -1 {
				mapping.Series = i
			}
		case "pmax":
			if mapping.Pmax == -1 {
				mapping.Pmax = i
			}
		case "voc":
			if mapping.Voc == -1 {
				mapping.Voc = i
			}
		case "vmp":
			if mapping.Vmp == -1 {
				mapping.Vmp = i
			}
		case "isc":
			if mapping.Isc == -1 {
				mapping.Isc = i
			}
		case "imp":
			if mapping.Imp == -1 {
				mapping.Imp = i
			}
		case "eff":
			if mapping.Eff == -1 {
				mapping.Eff = i
			}
		case "weight":
			if mapping.Weight == -1 {
				mapping.Weight = i
			}
		case "t":
			if mapping.Temp == -1 {
				mapping.Temp = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					set(role, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Series: 0, Pmax: 1, Voc: 2, Vmp: 3, Isc: 4,
			Imp: 5, Eff: 6, Weight: 7, Temp: 8,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFloat parses an optional numeric cell. Empty cells yield 0 with ok
// still true; malformed text yields ok false.
func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, true
	}
	// Tolerate European decimal commas, which show up in exported sheets.
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseRow extracts a PanelRow using the given column mapping.
// Returns the row, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.PanelRow, string, string) {
	series := getCell(row, mapping.Series)
	if series == "" {
		return model.PanelRow{}, fmt.Sprintf("%s: Missing series code", rowLabel), ""
	}

	// Validate the code shape up front so the batch report points at the
	// import row, not at a later render step.
	if _, _, err := model.ParseSeriesCode(series); err != nil {
		return model.PanelRow{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	result := model.PanelRow{Series: series}
	var warning string

	numeric := []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"pmax", mapping.Pmax, &result.Pmax},
		{"voc", mapping.Voc, &result.Voc},
		{"vmp", mapping.Vmp, &result.Vmp},
		{"isc", mapping.Isc, &result.Isc},
		{"imp", mapping.Imp, &result.Imp},
		{"eff", mapping.Eff, &result.Eff},
		{"weight", mapping.Weight, &result.Weight},
		{"t", mapping.Temp, &result.Temp},
	}
	for _, field := range numeric {
		raw := getCell(row, field.idx)
		v, ok := parseFloat(raw)
		if !ok {
			return model.PanelRow{}, fmt.Sprintf("%s: Invalid %s value '%s'", rowLabel, field.name, raw), ""
		}
		*field.dst = v
	}

	if result.Voc <= 0 || result.Isc <= 0 {
		return model.PanelRow{}, fmt.Sprintf("%s: voc and isc must be positive", rowLabel), ""
	}
	if result.Pmax == 0 {
		warning = fmt.Sprintf("%s: No pmax value, curve chart will omit it", rowLabel)
	}

	return result, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports panel rows from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports panel rows from a CSV reader with a known
// delimiter. Useful for tests and piped input.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports panel rows from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Series == -1 {
			missing = append(missing, "series")
		}
		if mapping.Voc == -1 {
			missing = append(missing, "voc")
		}
		if mapping.Isc == -1 {
			missing = append(missing, "isc")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		panelRow, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Rows = append(result.Rows, panelRow)
	}

	return result
}
