package model

// PanelDimensions holds the physical panel size in mm as parsed from the
// series code. Width is the first number in the code and Height the second,
// regardless of which is visually larger.
type PanelDimensions struct {
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
}

// IsLandscape reports whether the panel is wider than tall. A square panel
// counts as portrait (strict comparison).
func (d PanelDimensions) IsLandscape() bool {
	return d.Width > d.Height
}

// Swapped returns the dimensions reordered so the smaller value is Width and
// the larger is Height. Used for the portrait-normalized sketch.
func (d PanelDimensions) Swapped() PanelDimensions {
	if d.Width < d.Height {
		return d
	}
	return PanelDimensions{Width: d.Height, Height: d.Width}
}

// CellTopology describes the electrical wiring of the panel's cells.
type CellTopology struct {
	CellsInSeries   int `json:"cells_in_series"`
	ParallelStrings int `json:"parallel_strings"`
}

// TotalCells returns the number of active cells: series x parallel.
func (t CellTopology) TotalCells() int {
	return t.CellsInSeries * t.ParallelStrings
}

// Standard half-cut M10 cell footprint in mm.
const (
	CellStandardWidth  = 182.0
	CellStandardHeight = 91.0
)

// CellGeometry holds the cell footprint and inter-cell gaps for one panel
// orientation. The values are a fixed lookup, not user-configurable.
type CellGeometry struct {
	CellWidth  float64 // mm
	CellHeight float64 // mm
	HGap       float64 // mm between columns
	VGap       float64 // mm between rows
}

// GeometryFor returns the cell geometry for a panel of the given dimensions.
// Landscape panels lay cells 182w x 91h with 3mm column / 1.5mm row gaps;
// portrait panels rotate the cell and swap the gaps.
func GeometryFor(dims PanelDimensions) CellGeometry {
	if dims.IsLandscape() {
		return CellGeometry{
			CellWidth:  CellStandardWidth,
			CellHeight: CellStandardHeight,
			HGap:       3.0,
			VGap:       1.5,
		}
	}
	return CellGeometry{
		CellWidth:  CellStandardHeight,
		CellHeight: CellStandardWidth,
		HGap:       1.5,
		VGap:       3.0,
	}
}

// CellLayout is an exact factorization of the total cell count into a grid
// that fits the panel footprint.
type CellLayout struct {
	Columns  int          `json:"columns"`
	Rows     int          `json:"rows"`
	Geometry CellGeometry `json:"-"`
}

// OccupiedWidth returns the width of the cell grid including gaps.
func (l CellLayout) OccupiedWidth() float64 {
	return float64(l.Columns)*l.Geometry.CellWidth + float64(l.Columns-1)*l.Geometry.HGap
}

// OccupiedHeight returns the height of the cell grid including gaps.
func (l CellLayout) OccupiedHeight() float64 {
	return float64(l.Rows)*l.Geometry.CellHeight + float64(l.Rows-1)*l.Geometry.VGap
}

// ElectricalRatings are the scalar ratings anchoring the I-V curve shape.
// MaxPower is optional and only carried through for traceability.
type ElectricalRatings struct {
	OpenCircuitVoltage  float64 `json:"voc"`            // V
	ShortCircuitCurrent float64 `json:"isc"`            // A
	MaxPower            float64 `json:"pmax,omitempty"` // W, 0 = not provided
}

// PanelRow is one imported spreadsheet row describing a single product.
// Voc/Isc/Pmax drive the curve synthesis; the remaining fields are display
// values passed through to the datasheet after fixed-decimal formatting.
type PanelRow struct {
	Series string  `json:"series"`
	Pmax   float64 `json:"pmax"`
	Voc    float64 `json:"voc"`
	Vmp    float64 `json:"vmp"`
	Isc    float64 `json:"isc"`
	Imp    float64 `json:"imp"`
	Eff    float64 `json:"eff"`
	Weight float64 `json:"weight"`
	Temp   float64 `json:"t"`
}

// Ratings extracts the electrical ratings from the row.
func (r PanelRow) Ratings() ElectricalRatings {
	return ElectricalRatings{
		OpenCircuitVoltage:  r.Voc,
		ShortCircuitCurrent: r.Isc,
		MaxPower:            r.Pmax,
	}
}

// IVPoint is a single (voltage, current) sample.
type IVPoint struct {
	V float64
	I float64
}

// IVCurve is one labeled curve of an irradiance or temperature family.
type IVCurve struct {
	Label  string
	Color  string // hex RGB, matching the reference palette
	Points []IVPoint
}

// Fixed sweep conditions. IrradianceLevels is deliberately descending so the
// 1000 W/m² curve draws first and tops the legend.
var (
	IrradianceLevels  = []float64{1000, 800, 600, 400, 200} // W/m²
	TemperatureLevels = []float64{70, 50, 25, 0}            // °C
)

// CurveSamples is the number of voltage samples per curve.
const CurveSamples = 100

// Temperature coefficients relative to the 25°C reference.
const (
	ReferenceTemp = 25.0
	VocTempCoeff  = -0.003 // -0.3%/°C
	IscTempCoeff  = 0.0005 // +0.05%/°C
)
