package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

func goodRow() model.PanelRow {
	return model.PanelRow{
		Series: "1745x670-SOLARIX-ME-855-s54p1M10HC",
		Pmax:   455, Voc: 49.5, Vmp: 41.6, Isc: 11.2, Imp: 10.9,
		Eff: 21.3, Weight: 23.5, Temp: 45,
	}
}

func testSettings(t *testing.T) model.GenerateSettings {
	t.Helper()
	s := model.DefaultGenerateSettings()
	s.OutputDir = t.TempDir()
	s.UseLatex = false
	s.DirectPDF = true
	return s
}

func TestRun_SingleRow(t *testing.T) {
	g := New(testSettings(t))

	batch, err := g.Run(context.Background(), []model.PanelRow{goodRow()}, "")
	require.NoError(t, err)
	require.Len(t, batch.Results, 1)

	r := batch.Results[0]
	require.NoError(t, r.Err)
	require.Len(t, r.Artifacts, 3) // sketch, chart, pdf
	for _, a := range r.Artifacts {
		_, err := os.Stat(a)
		assert.NoError(t, err, "artifact %s should exist", a)
	}
	assert.Equal(t, 1, batch.Succeeded())
	assert.Equal(t, 0, batch.Failed())
}

func TestRun_BadRowDoesNotAbortBatch(t *testing.T) {
	g := New(testSettings(t))

	rows := []model.PanelRow{
		{Series: "garbage", Voc: 40, Isc: 10},
		goodRow(),
	}
	batch, err := g.Run(context.Background(), rows, "")
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)

	require.Error(t, batch.Results[0].Err)
	var fe *model.FormatError
	assert.ErrorAs(t, batch.Results[0].Err, &fe)

	assert.NoError(t, batch.Results[1].Err)
	assert.Equal(t, 1, batch.Succeeded())
	assert.Equal(t, 1, batch.Failed())
}

func TestRun_InfeasibleLayoutIsRowError(t *testing.T) {
	g := New(testSettings(t))

	batch, err := g.Run(context.Background(), []model.PanelRow{
		{Series: "100x200-X-s54p1", Voc: 40, Isc: 10},
	}, "")
	require.NoError(t, err)
	require.Len(t, batch.Results, 1)

	var le *model.LayoutInfeasibleError
	assert.ErrorAs(t, batch.Results[0].Err, &le)
}

func TestRun_LabelsAndZip(t *testing.T) {
	s := testSettings(t)
	s.ExportLabels = true
	s.ZipOutput = true
	g := New(s)

	batch, err := g.Run(context.Background(), []model.PanelRow{goodRow()}, "")
	require.NoError(t, err)

	require.NotEmpty(t, batch.LabelsPath)
	_, err = os.Stat(batch.LabelsPath)
	assert.NoError(t, err)

	require.NotEmpty(t, batch.Archive)
	assert.Equal(t, "batch.zip", filepath.Base(batch.Archive))
	_, err = os.Stat(batch.Archive)
	assert.NoError(t, err)
}

func TestRun_LabelsSkippedWhenNothingSucceeds(t *testing.T) {
	s := testSettings(t)
	s.ExportLabels = true
	g := New(s)

	batch, err := g.Run(context.Background(), []model.PanelRow{
		{Series: "garbage", Voc: 40, Isc: 10},
	}, "")
	require.NoError(t, err)
	assert.Empty(t, batch.LabelsPath)
}

func TestRun_DXFExport(t *testing.T) {
	s := testSettings(t)
	s.DirectPDF = false
	s.ExportDXF = true
	g := New(s)

	batch, err := g.Run(context.Background(), []model.PanelRow{goodRow()}, "")
	require.NoError(t, err)

	r := batch.Results[0]
	require.NoError(t, r.Err)
	require.Len(t, r.Artifacts, 3) // sketch, chart, dxf
	assert.True(t, strings.HasSuffix(r.Artifacts[2], ".dxf"))
}

func TestRun_UniqueArtifactNames(t *testing.T) {
	g := New(testSettings(t))
	ctx := context.Background()

	first, err := g.Run(ctx, []model.PanelRow{goodRow()}, "")
	require.NoError(t, err)
	second, err := g.Run(ctx, []model.PanelRow{goodRow()}, "")
	require.NoError(t, err)

	// Same product generated twice must not overwrite earlier output.
	assert.NotEqual(t, first.Results[0].Artifacts[0], second.Results[0].Artifacts[0])
}

func TestRun_CancelledContext(t *testing.T) {
	g := New(testSettings(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Run(ctx, []model.PanelRow{goodRow()}, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_MissingLatexTemplate(t *testing.T) {
	s := testSettings(t)
	s.DirectPDF = false
	s.UseLatex = true
	s.TemplateFile = "template.tex"
	g := New(s)

	batch, err := g.Run(context.Background(), []model.PanelRow{goodRow()}, "")
	require.NoError(t, err)
	require.Error(t, batch.Results[0].Err)
	assert.Contains(t, batch.Results[0].Err.Error(), "template")
}
