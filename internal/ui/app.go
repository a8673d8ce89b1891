package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/gab-dev-code/solarix-datasheet/internal/generator"
	rowimporter "github.com/gab-dev-code/solarix-datasheet/internal/importer"
	"github.com/gab-dev-code/solarix-datasheet/internal/model"
	"github.com/gab-dev-code/solarix-datasheet/internal/project"
	"github.com/gab-dev-code/solarix-datasheet/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window       fyne.Window
	config       model.AppConfig
	configPath   string
	rows         []model.PanelRow
	workbookPath string
	lastBatch    *generator.BatchResult
	tabs         *container.AppTabs

	// UI references for dynamic updates
	rowsContainer    *fyne.Container
	previewContainer *fyne.Container
	resultContainer  *fyne.Container
}

func NewApp(window fyne.Window) *App {
	configPath := project.DefaultConfigPath()
	config, err := project.LoadAppConfig(configPath)
	if err != nil {
		config = model.DefaultAppConfig()
	}
	return &App{
		window:     window,
		config:     config,
		configPath: configPath,
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Workbook...", func() {
			a.openWorkbook()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Generate Datasheets", func() {
			a.runGenerate()
			a.tabs.SelectIndex(3) // Switch to Results tab
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear All Products", func() {
			a.rows = nil
			a.workbookPath = ""
			a.refreshRowsList()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About Solarix Datasheet Generator",
		"Solarix Datasheet Generator\n\n"+
			"Generates PDF datasheets for solar panel product lines:\n"+
			"cell layout sketches, I-V characteristic curves, and\n"+
			"electrical specification tables from a product workbook.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	productsTab := container.NewTabItem("Products", a.buildProductsPanel())
	previewTab := container.NewTabItem("Preview", a.buildPreviewPanel())
	settingsTab := container.NewTabItem("Settings", a.buildSettingsPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(productsTab, previewTab, settingsTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// ─── Products Panel ────────────────────────────────────────

func (a *App) buildProductsPanel() fyne.CanvasObject {
	a.rowsContainer = container.NewVBox()
	a.refreshRowsList()

	openBtn := widget.NewButtonWithIcon("Open Workbook", theme.FolderOpenIcon(), func() {
		a.openWorkbook()
	})
	addBtn := widget.NewButtonWithIcon("Add Product", theme.ContentAddIcon(), func() {
		a.showAddProductDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Product Rows", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			openBtn,
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.rowsContainer),
	)
}

func (a *App) refreshRowsList() {
	a.rowsContainer.RemoveAll()

	if len(a.rows) == 0 {
		a.rowsContainer.Add(widget.NewLabel("No products loaded. Open a workbook or click 'Add Product'."))
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Series", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Pmax (W)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Voc (V)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Isc (A)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.rowsContainer.Add(header)
	a.rowsContainer.Add(widget.NewSeparator())

	for i := range a.rows {
		idx := i // capture
		r := a.rows[idx]
		row := container.NewGridWithColumns(6,
			widget.NewLabel(r.Series),
			widget.NewLabel(fmt.Sprintf("%.1f", r.Pmax)),
			widget.NewLabel(fmt.Sprintf("%.2f", r.Voc)),
			widget.NewLabel(fmt.Sprintf("%.2f", r.Isc)),
			widget.NewButtonWithIcon("", theme.VisibilityIcon(), func() {
				a.showPreview(a.rows[idx].Series)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.rows = append(a.rows[:idx], a.rows[idx+1:]...)
				a.refreshRowsList()
			}),
		)
		a.rowsContainer.Add(row)
	}
}

func (a *App) showAddProductDialog() {
	seriesEntry := widget.NewEntry()
	seriesEntry.SetPlaceHolder("e.g. 1745x670-SOLARIX-ME-855-s54p1M10HC")

	pmaxEntry := widget.NewEntry()
	pmaxEntry.SetPlaceHolder("Peak power in W")

	vocEntry := widget.NewEntry()
	vocEntry.SetPlaceHolder("Open-circuit voltage in V")

	vmpEntry := widget.NewEntry()
	iscEntry := widget.NewEntry()
	iscEntry.SetPlaceHolder("Short-circuit current in A")
	impEntry := widget.NewEntry()
	effEntry := widget.NewEntry()
	weightEntry := widget.NewEntry()
	tempEntry := widget.NewEntry()

	form := dialog.NewForm("Add Product", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Series Code", seriesEntry),
			widget.NewFormItem("Pmax (W)", pmaxEntry),
			widget.NewFormItem("Voc (V)", vocEntry),
			widget.NewFormItem("Vmp (V)", vmpEntry),
			widget.NewFormItem("Isc (A)", iscEntry),
			widget.NewFormItem("Imp (A)", impEntry),
			widget.NewFormItem("Efficiency (%)", effEntry),
			widget.NewFormItem("Weight (kg)", weightEntry),
			widget.NewFormItem("NOCT (C)", tempEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if _, _, err := model.ParseSeriesCode(seriesEntry.Text); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			voc, _ := strconv.ParseFloat(vocEntry.Text, 64)
			isc, _ := strconv.ParseFloat(iscEntry.Text, 64)
			if voc <= 0 || isc <= 0 {
				dialog.ShowError(fmt.Errorf("Voc and Isc must be > 0"), a.window)
				return
			}
			pmax, _ := strconv.ParseFloat(pmaxEntry.Text, 64)
			vmp, _ := strconv.ParseFloat(vmpEntry.Text, 64)
			imp, _ := strconv.ParseFloat(impEntry.Text, 64)
			eff, _ := strconv.ParseFloat(effEntry.Text, 64)
			weight, _ := strconv.ParseFloat(weightEntry.Text, 64)
			temp, _ := strconv.ParseFloat(tempEntry.Text, 64)

			a.rows = append(a.rows, model.PanelRow{
				Series: seriesEntry.Text,
				Pmax:   pmax, Voc: voc, Vmp: vmp, Isc: isc, Imp: imp,
				Eff: eff, Weight: weight, Temp: temp,
			})
			a.refreshRowsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 500))
	form.Show()
}

// ─── Preview Panel ─────────────────────────────────────────

func (a *App) buildPreviewPanel() fyne.CanvasObject {
	a.previewContainer = container.NewStack(widgets.RenderPanelPreview(""))
	return a.previewContainer
}

func (a *App) showPreview(series string) {
	a.previewContainer.RemoveAll()
	a.previewContainer.Add(widgets.RenderPanelPreview(series))
	a.previewContainer.Refresh()
	a.tabs.SelectIndex(1) // Switch to Preview tab
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := &a.config.Defaults

	textEntry := func(val *string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(*val)
		e.OnChanged = func(text string) { *val = text }
		return e
	}
	boolCheck := func(val *bool) *widget.Check {
		c := widget.NewCheck("", func(b bool) { *val = b })
		c.Checked = *val
		return c
	}

	outputSection := widget.NewCard("Output", "", container.NewGridWithColumns(2,
		widget.NewLabel("Output Directory"), textEntry(&s.OutputDir),
		widget.NewLabel("Built-in PDF Datasheet"), boolCheck(&s.DirectPDF),
		widget.NewLabel("QR Label Sheet"), boolCheck(&s.ExportLabels),
		widget.NewLabel("Layout DXF"), boolCheck(&s.ExportDXF),
		widget.NewLabel("Zip Batch Output"), boolCheck(&s.ZipOutput),
		widget.NewLabel("Workbook Write-Back"), boolCheck(&s.WriteBack),
	))

	latexSection := widget.NewCard("LaTeX Typesetting", "", container.NewGridWithColumns(2,
		widget.NewLabel("Compile with LaTeX"), boolCheck(&s.UseLatex),
		widget.NewLabel("Engine Binary"), textEntry(&s.LatexBinary),
		widget.NewLabel("Template File"), textEntry(&s.TemplateFile),
	))

	saveBtn := widget.NewButtonWithIcon("Save as Defaults", theme.DocumentSaveIcon(), func() {
		if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Settings Saved",
			fmt.Sprintf("Defaults written to %s", a.configPath), a.window)
	})

	return container.NewVScroll(container.NewVBox(
		outputSection,
		latexSection,
		saveBtn,
	))
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No results yet. Load products, then choose File > Generate Datasheets."),
	)
	return a.resultContainer
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()

	if a.lastBatch == nil {
		a.resultContainer.Add(widget.NewLabel("No results yet."))
		a.resultContainer.Refresh()
		return
	}

	var items []fyne.CanvasObject
	for _, r := range a.lastBatch.Results {
		if r.Err != nil {
			line := widget.NewLabel(fmt.Sprintf("%s: FAILED — %v", r.Series, r.Err))
			line.Importance = widget.DangerImportance
			items = append(items, line)
			continue
		}
		items = append(items, widget.NewLabel(
			fmt.Sprintf("%s: %d file(s) generated", r.Series, len(r.Artifacts))))
		for _, w := range r.Warnings {
			warn := widget.NewLabel("  " + w)
			warn.Importance = widget.WarningImportance
			items = append(items, warn)
		}
	}

	items = append(items, widget.NewSeparator())
	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d generated, %d failed",
		a.lastBatch.Succeeded(), a.lastBatch.Failed(),
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	if a.lastBatch.Archive != "" {
		items = append(items, widget.NewLabel("Archive: "+a.lastBatch.Archive))
	}

	a.resultContainer.Add(container.NewVScroll(container.NewVBox(items...)))
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runGenerate() {
	if len(a.rows) == 0 {
		dialog.ShowInformation("Nothing to generate", "Load a workbook or add a product first.", a.window)
		return
	}

	gen := generator.New(a.config.Defaults)
	batch, err := gen.Run(context.Background(), a.rows, a.workbookPath)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.lastBatch = &batch
	a.refreshResults()

	msg := fmt.Sprintf("Generated datasheets for %d of %d products.", batch.Succeeded(), len(batch.Results))
	if batch.Failed() > 0 {
		msg += fmt.Sprintf("\n\n%d products failed; see the Results tab.", batch.Failed())
	}
	dialog.ShowInformation("Generation Complete", msg, a.window)
}

func (a *App) openWorkbook() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		var result rowimporter.ImportResult
		if strings.HasSuffix(strings.ToLower(path), ".csv") {
			result = rowimporter.ImportCSV(path)
		} else {
			result = rowimporter.ImportExcel(path)
		}
		a.handleImportResult(result, path)
	}, a.window)
}

func (a *App) handleImportResult(result rowimporter.ImportResult, path string) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Warnings) > 0 {
		// Just log warnings, don't block
		fmt.Printf("Import warnings: %v\n", result.Warnings)
	}

	if len(result.Rows) > 0 {
		a.rows = append(a.rows, result.Rows...)
		a.workbookPath = path
		a.refreshRowsList()

		project.RememberWorkbook(&a.config, path)
		if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
			fmt.Printf("could not save config: %v\n", err)
		}

		msg := fmt.Sprintf("Successfully imported %d products.", len(result.Rows))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
