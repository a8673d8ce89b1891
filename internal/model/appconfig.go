package model

// GenerateSettings controls which artifacts a batch run produces and how
// the typesetting step is invoked.
type GenerateSettings struct {
	OutputDir    string `json:"output_dir"`    // batch artifacts land here
	UseLatex     bool   `json:"use_latex"`     // compile template.tex with xelatex
	LatexBinary  string `json:"latex_binary"`  // typesetting engine binary
	TemplateFile string `json:"template_file"` // LaTeX template path
	DirectPDF    bool   `json:"direct_pdf"`    // render the built-in fpdf datasheet
	ExportLabels bool   `json:"export_labels"` // QR label sheet for the batch
	ExportDXF    bool   `json:"export_dxf"`    // per-panel layout DXF
	ZipOutput    bool   `json:"zip_output"`    // archive the batch directory
	WriteBack    bool   `json:"write_back"`    // traceability write-back to sheet 2
}

// DefaultGenerateSettings returns the settings used for a fresh install:
// direct PDF output only, LaTeX disabled until a template is configured.
func DefaultGenerateSettings() GenerateSettings {
	return GenerateSettings{
		OutputDir:    "datasheets",
		UseLatex:     false,
		LatexBinary:  "xelatex",
		TemplateFile: "template.tex",
		DirectPDF:    true,
		ExportLabels: false,
		ExportDXF:    false,
		ZipOutput:    false,
		WriteBack:    false,
	}
}

// AppConfig holds application-wide preferences.
type AppConfig struct {
	Defaults        GenerateSettings `json:"defaults"`
	RecentWorkbooks []string         `json:"recent_workbooks"`
	Theme           string           `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Defaults:        DefaultGenerateSettings(),
		RecentWorkbooks: []string{},
		Theme:           "system",
	}
}
