package model

import (
	"regexp"
	"strconv"
)

// Series codes look like "1745x670-SOLARIX-ME-855-G-904-MATT-SNOW-s54p1M10HC":
// a WIDTHxHEIGHT prefix in mm, then marketing tokens, then sXXpYY encoding
// cells-in-series and parallel strings.
var (
	dimensionPattern = regexp.MustCompile(`^(\d+)x(\d+)`)
	topologyPattern  = regexp.MustCompile(`(?i)s(\d+)p(\d+)`)
)

// ParseSeriesCode extracts panel dimensions and cell topology from a product
// series code. The dimension pattern must anchor the start of the string; the
// topology token may appear anywhere. Either pattern missing is a
// *FormatError, never a silent default.
func ParseSeriesCode(code string) (PanelDimensions, CellTopology, error) {
	dm := dimensionPattern.FindStringSubmatch(code)
	if dm == nil {
		return PanelDimensions{}, CellTopology{}, &FormatError{Code: code, Reason: "missing WIDTHxHEIGHT prefix"}
	}

	width, err := strconv.Atoi(dm[1])
	if err != nil || width <= 0 {
		return PanelDimensions{}, CellTopology{}, &FormatError{Code: code, Reason: "width is not a positive integer"}
	}
	height, err := strconv.Atoi(dm[2])
	if err != nil || height <= 0 {
		return PanelDimensions{}, CellTopology{}, &FormatError{Code: code, Reason: "height is not a positive integer"}
	}

	tm := topologyPattern.FindStringSubmatch(code)
	if tm == nil {
		return PanelDimensions{}, CellTopology{}, &FormatError{Code: code, Reason: "missing sXXpYY cell configuration"}
	}

	series, err := strconv.Atoi(tm[1])
	if err != nil || series <= 0 {
		return PanelDimensions{}, CellTopology{}, &FormatError{Code: code, Reason: "cells in series is not a positive integer"}
	}
	parallel, err := strconv.Atoi(tm[2])
	if err != nil || parallel <= 0 {
		return PanelDimensions{}, CellTopology{}, &FormatError{Code: code, Reason: "parallel strings is not a positive integer"}
	}

	dims := PanelDimensions{Width: float64(width), Height: float64(height)}
	topo := CellTopology{CellsInSeries: series, ParallelStrings: parallel}
	return dims, topo, nil
}
