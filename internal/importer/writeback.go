package importer

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Fixed cell addresses on the workbook's second sheet used for the
// traceability write-back. These match the cells the downstream review
// sheet reads from and must not move.
const (
	cellVoc    = "D18"
	cellSeries = "D19"
	cellIsc    = "D21"
	cellPmax   = "D24"
)

// WriteBack records the ratings used for a generation run into the fixed
// cells of the workbook's second sheet. Purely a traceability/debug
// mechanism: curve synthesis never reads from here, it takes plain numerics.
// Pmax of 0 means "not provided" and leaves the cell untouched.
func WriteBack(path, series string, voc, isc, pmax float64) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return fmt.Errorf("workbook has no second sheet for write-back")
	}
	sheet := sheets[1]

	if err := f.SetCellFloat(sheet, cellVoc, voc, -1, 64); err != nil {
		return fmt.Errorf("write %s: %w", cellVoc, err)
	}
	if err := f.SetCellStr(sheet, cellSeries, series); err != nil {
		return fmt.Errorf("write %s: %w", cellSeries, err)
	}
	if err := f.SetCellFloat(sheet, cellIsc, isc, -1, 64); err != nil {
		return fmt.Errorf("write %s: %w", cellIsc, err)
	}
	if pmax != 0 {
		if err := f.SetCellFloat(sheet, cellPmax, pmax, -1, 64); err != nil {
			return fmt.Errorf("write %s: %w", cellPmax, err)
		}
	}

	return f.Save()
}

// WriteBackCopy copies the workbook to a temp file and performs the
// write-back on the copy, returning its path. Used when the source workbook
// must stay pristine (e.g. it sits in a read-only upload area). The caller
// removes the file when done.
func WriteBackCopy(path, series string, voc, isc, pmax float64) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read workbook: %w", err)
	}

	tmp, err := os.CreateTemp("", "solarix-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("create temp workbook: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("copy workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if err := WriteBack(tmpPath, series, voc, isc, pmax); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

// ReadBack reads the write-back cells from the workbook's second sheet and
// returns voc and isc. Values written by WriteBack round-trip exactly.
func ReadBack(path string) (voc, isc float64, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return 0, 0, fmt.Errorf("workbook has no second sheet to read back from")
	}
	sheet := sheets[1]

	voc, err = readFloatCell(f, sheet, cellVoc)
	if err != nil {
		return 0, 0, err
	}
	isc, err = readFloatCell(f, sheet, cellIsc)
	if err != nil {
		return 0, 0, err
	}
	return voc, isc, nil
}

func readFloatCell(f *excelize.File, sheet, cell string) (float64, error) {
	raw, err := f.GetCellValue(sheet, cell)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", cell, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("cell %s is empty", cell)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("cell %s is not numeric: %q", cell, raw)
	}
	return v, nil
}
