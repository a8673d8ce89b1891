package sketch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

func TestPlan_SwapsToPortrait(t *testing.T) {
	d, err := Plan("1745x670-SOLARIX-ME-855-G-904-MATT-SNOW-s54p1M10HC")
	require.NoError(t, err)

	// The sketch is drawn tall: smaller parsed dimension becomes width.
	assert.Equal(t, 670.0, d.Panel.Width)
	assert.Equal(t, 1745.0, d.Panel.Height)

	// Solved against the swapped rectangle the grid is 6x9 of 91x182 cells.
	assert.Equal(t, 6, d.Layout.Columns)
	assert.Equal(t, 9, d.Layout.Rows)
	assert.Equal(t, 91.0, d.Layout.Geometry.CellWidth)
}

func TestPlan_MarginsCenterTheGrid(t *testing.T) {
	d, err := Plan("1745x670-X-s54p1")
	require.NoError(t, err)

	mx, my := d.Margins()
	assert.InDelta(t, (670.0-d.Layout.OccupiedWidth())/2, mx, 1e-9)
	assert.InDelta(t, (1745.0-d.Layout.OccupiedHeight())/2, my, 1e-9)
	assert.GreaterOrEqual(t, mx, 0.0)
	assert.GreaterOrEqual(t, my, 0.0)
}

func TestPlan_PortraitCodeUnchanged(t *testing.T) {
	d, err := Plan("670x1745-X-s54p1")
	require.NoError(t, err)
	assert.Equal(t, 670.0, d.Panel.Width)
	assert.Equal(t, 1745.0, d.Panel.Height)
}

func TestRender_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.png")
	err := Render("1745x670-X-s54p1", path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_PropagatesTypedErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.png")

	var fe *model.FormatError
	err := Render("garbage-code", path)
	require.True(t, errors.As(err, &fe))

	// 54 cells cannot fit a 100x200mm panel in any factorization.
	var le *model.LayoutInfeasibleError
	err = Render("100x200-X-s54p1", path)
	require.True(t, errors.As(err, &le))

	// Nothing should have been written on failure.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
