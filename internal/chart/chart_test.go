package chart

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

func TestRender_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iv.png")
	require.NoError(t, Render(49.5, 11.2, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_InvalidRatings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iv.png")
	err := Render(0, 11.2, path)

	var invalid *model.InvalidRatingError
	require.True(t, errors.As(err, &invalid))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildPlot_LegendPerCurve(t *testing.T) {
	curves := []model.IVCurve{
		{Label: "1000 W/m²", Color: "#002060", Points: []model.IVPoint{{V: 0, I: 10}, {V: 40, I: 0}}},
		{Label: "800 W/m²", Color: "#0070C0", Points: []model.IVPoint{{V: 0, I: 8}, {V: 40, I: 0}}},
	}
	p, err := buildPlot("test", curves)
	require.NoError(t, err)
	assert.Equal(t, "Voltage (V)", p.X.Label.Text)
	assert.Equal(t, "Current (A)", p.Y.Label.Text)
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x00, G: 0x20, B: 0x60, A: 255}, parseHexColor("#002060"))
	assert.Equal(t, color.RGBA{R: 0x92, G: 0xD0, B: 0x50, A: 255}, parseHexColor("#92D050"))
	assert.Equal(t, color.Black, parseHexColor("not-a-color"))
}
