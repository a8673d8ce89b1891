package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

func TestComputeLayout_SingleCell(t *testing.T) {
	// Any panel at least one cell footprint big holds a 1x1 grid.
	layout, err := ComputeLayout(model.PanelDimensions{Width: 200, Height: 100}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, layout.Columns)
	assert.Equal(t, 1, layout.Rows)
}

func TestComputeLayout_54CellsLandscape(t *testing.T) {
	// 1745x670 is landscape, so cells are 182x91 with 3/1.5mm gaps.
	// Of the divisor pairs of 54 — (1,54) (2,27) (3,18) (6,9) (9,6)
	// (18,3) (27,2) (54,1) — only (9,6) fits: 1662 x 553.5 mm.
	layout, err := ComputeLayout(model.PanelDimensions{Width: 1745, Height: 670}, 54)
	require.NoError(t, err)
	assert.Equal(t, 9, layout.Columns)
	assert.Equal(t, 6, layout.Rows)
	assert.InDelta(t, 1662.0, layout.OccupiedWidth(), 1e-9)
	assert.InDelta(t, 553.5, layout.OccupiedHeight(), 1e-9)
}

func TestComputeLayout_54CellsSwappedPortrait(t *testing.T) {
	// The same panel swapped to portrait (670x1745) rotates the cell
	// footprint and the winning factorization flips to (6,9).
	layout, err := ComputeLayout(model.PanelDimensions{Width: 670, Height: 1745}, 54)
	require.NoError(t, err)
	assert.Equal(t, 6, layout.Columns)
	assert.Equal(t, 9, layout.Rows)
	assert.LessOrEqual(t, layout.OccupiedWidth(), 670.0)
	assert.LessOrEqual(t, layout.OccupiedHeight(), 1745.0)
}

func TestComputeLayout_ExactFactorization(t *testing.T) {
	// Columns x rows must always multiply back to the cell count and the
	// occupied rectangle must fit on both axes.
	cases := []struct {
		w, h  float64
		cells int
	}{
		{2000, 1000, 36},
		{1134, 2278, 108},
		{1000, 2000, 20},
	}
	for _, tc := range cases {
		layout, err := ComputeLayout(model.PanelDimensions{Width: tc.w, Height: tc.h}, tc.cells)
		require.NoError(t, err, "cells=%d", tc.cells)
		assert.Equal(t, tc.cells, layout.Columns*layout.Rows)
		assert.LessOrEqual(t, layout.OccupiedWidth(), tc.w)
		assert.LessOrEqual(t, layout.OccupiedHeight(), tc.h)
	}
}

func TestComputeLayout_Infeasible(t *testing.T) {
	// A panel smaller than a single cell cannot hold any arrangement.
	_, err := ComputeLayout(model.PanelDimensions{Width: 100, Height: 50}, 4)
	require.Error(t, err)

	var infeasible *model.LayoutInfeasibleError
	require.True(t, errors.As(err, &infeasible))
	assert.Equal(t, 4, infeasible.TotalCells)
	assert.Equal(t, 100.0, infeasible.Width)
}

func TestComputeLayout_SquarePanelIsPortrait(t *testing.T) {
	// Orientation uses a strict width > height comparison, so a square
	// panel gets the portrait footprint (91w x 182h cells).
	layout, err := ComputeLayout(model.PanelDimensions{Width: 1000, Height: 1000}, 10)
	require.NoError(t, err)
	assert.Equal(t, 91.0, layout.Geometry.CellWidth)
	assert.Equal(t, 182.0, layout.Geometry.CellHeight)
	assert.Equal(t, 1.5, layout.Geometry.HGap)
	assert.Equal(t, 3.0, layout.Geometry.VGap)
}

func TestComputeLayout_Deterministic(t *testing.T) {
	dims := model.PanelDimensions{Width: 1745, Height: 670}
	first, err := ComputeLayout(dims, 54)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ComputeLayout(dims, 54)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeLayout_TieBreakKeepsSmallestColumns(t *testing.T) {
	// A square panel with portrait geometry scores (h,v) and (v,h)
	// differently in general, but a symmetric cell count on a generous
	// square panel can tie; the ascending enumeration keeps the smaller
	// column count. 4 cells on a roomy square: candidates (1,4) (2,2)
	// (4,1). Verify the result is stable and exactly reproducible.
	dims := model.PanelDimensions{Width: 3000, Height: 3000}
	layout, err := ComputeLayout(dims, 4)
	require.NoError(t, err)
	again, err := ComputeLayout(dims, 4)
	require.NoError(t, err)
	assert.Equal(t, layout, again)
	assert.Equal(t, 4, layout.Columns*layout.Rows)
}
