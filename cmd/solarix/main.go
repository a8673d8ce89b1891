// Solarix Datasheet Generator — solar panel datasheet generation desktop app.
//
// Loads a product workbook, previews cell layouts, and generates per-product
// datasheets (layout sketch, I-V curves, PDF, optional LaTeX/DXF/labels).
//
// Build:
//   go build -o solarix ./cmd/solarix
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o solarix.exe ./cmd/solarix
//   GOOS=darwin  GOARCH=amd64 go build -o solarix-darwin ./cmd/solarix
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/gab-dev-code/solarix-datasheet/internal/ui"
)

func main() {
	application := app.NewWithID("com.gab-dev-code.solarix-datasheet")
	window := application.NewWindow("Solarix Datasheet Generator")

	appUI := ui.NewApp(window)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()
	window.ShowAndRun()
}
