package engine

import (
	"fmt"
	"math"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

// Curve palettes, one color per sweep condition in declaration order.
var (
	irradianceColors  = []string{"#002060", "#0070C0", "#00B0F0", "#92D050", "#FFFF00"}
	temperatureColors = []string{"#C00000", "#FFC000", "#0070C0", "#002060"}
)

// validateRatings rejects non-finite or non-positive ratings. A bad rating
// aborts synthesis for that product only; the batch continues.
func validateRatings(voc, isc float64) error {
	if math.IsNaN(voc) || math.IsInf(voc, 0) || voc <= 0 {
		return &model.InvalidRatingError{Field: "voc", Value: voc}
	}
	if math.IsNaN(isc) || math.IsInf(isc, 0) || isc <= 0 {
		return &model.InvalidRatingError{Field: "isc", Value: isc}
	}
	return nil
}

// sampleCurve evaluates the empirical quartic knee model
// I(v) = isc * (1 - (v/voc)^4) at n evenly spaced voltages in [0, voc].
// The shape visually resembles a real I-V characteristic without solving
// the diode equation. I(0) = isc and I(voc) = 0 exactly.
func sampleCurve(voc, isc float64, n int) []model.IVPoint {
	points := make([]model.IVPoint, n)
	for i := 0; i < n; i++ {
		v := voc * float64(i) / float64(n-1)
		r := v / voc
		points[i] = model.IVPoint{V: v, I: isc * (1 - r*r*r*r)}
	}
	return points
}

// SynthesizeIrradiance builds the I-V curve family across the fixed
// irradiance sweep. Short-circuit current scales linearly with G/1000; the
// voltage span is unchanged.
func SynthesizeIrradiance(voc, isc float64) ([]model.IVCurve, error) {
	if err := validateRatings(voc, isc); err != nil {
		return nil, err
	}

	curves := make([]model.IVCurve, 0, len(model.IrradianceLevels))
	for i, g := range model.IrradianceLevels {
		curves = append(curves, model.IVCurve{
			Label:  fmt.Sprintf("%.0f W/m²", g),
			Color:  irradianceColors[i],
			Points: sampleCurve(voc, isc*(g/1000), model.CurveSamples),
		})
	}
	return curves, nil
}

// SynthesizeTemperature builds the I-V curve family across the fixed
// temperature sweep. Voc drops 0.3%/°C above the 25°C reference and Isc
// rises 0.05%/°C; at the reference the inputs pass through unchanged.
func SynthesizeTemperature(voc, isc float64) ([]model.IVCurve, error) {
	if err := validateRatings(voc, isc); err != nil {
		return nil, err
	}

	curves := make([]model.IVCurve, 0, len(model.TemperatureLevels))
	for i, t := range model.TemperatureLevels {
		vocT := voc * (1 + model.VocTempCoeff*(t-model.ReferenceTemp))
		iscT := isc * (1 + model.IscTempCoeff*(t-model.ReferenceTemp))
		curves = append(curves, model.IVCurve{
			Label:  fmt.Sprintf("%.0f °C", t),
			Color:  temperatureColors[i],
			Points: sampleCurve(vocT, iscT, model.CurveSamples),
		})
	}
	return curves, nil
}
