// Package engine implements the deterministic core of the datasheet
// generator: the cell layout solver and the parametric I-V curve
// synthesizer. Both are pure functions over their inputs.
package engine

import (
	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// ComputeLayout finds the columns x rows grid for totalCells standard cells
// that fits the panel footprint and uses the available space best.
//
// The cell footprint and gap constants are selected from the panel's
// orientation exactly as the dimensions are given; callers wanting the
// portrait-normalized sketch arrangement pass swapped dimensions.
//
// Candidates are exact divisor pairs (h, totalCells/h) enumerated with h
// ascending from 1. Each surviving pair is scored by average fractional
// space usage across both axes and the highest score wins. The score
// comparison is strict, so equal scores keep the smallest h. The ascending
// enumeration is load-bearing: prior outputs depend on this tie-break.
func ComputeLayout(dims model.PanelDimensions, totalCells int) (model.CellLayout, error) {
	geom := model.GeometryFor(dims)

	best := model.CellLayout{Geometry: geom}
	bestUsage := -1.0

	for h := 1; h <= totalCells; h++ {
		if totalCells%h != 0 {
			continue
		}
		v := totalCells / h

		reqWidth := float64(h)*geom.CellWidth + float64(h-1)*geom.HGap
		reqHeight := float64(v)*geom.CellHeight + float64(v-1)*geom.VGap
		if reqWidth > dims.Width || reqHeight > dims.Height {
			continue
		}

		usage := (reqWidth/dims.Width + reqHeight/dims.Height) / 2
		if usage > bestUsage {
			bestUsage = usage
			best.Columns = h
			best.Rows = v
		}
	}

	if bestUsage < 0 {
		return model.CellLayout{}, &model.LayoutInfeasibleError{
			Width:      dims.Width,
			Height:     dims.Height,
			TotalCells: totalCells,
		}
	}
	return best, nil
}
