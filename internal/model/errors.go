package model

import "fmt"

// FormatError reports a series code missing one of its required patterns.
// It carries the offending code so batch logs stay diagnosable.
type FormatError struct {
	Code   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot parse series code %q: %s", e.Code, e.Reason)
}

// LayoutInfeasibleError reports that no exact factorization of the cell
// count fits the panel footprint under the orientation's spacing rules.
type LayoutInfeasibleError struct {
	Width      float64
	Height     float64
	TotalCells int
}

func (e *LayoutInfeasibleError) Error() string {
	return fmt.Sprintf("cannot fit %d cells in panel %.0fx%.0fmm", e.TotalCells, e.Width, e.Height)
}

// InvalidRatingError reports a missing, non-finite, zero, or negative
// electrical rating. Curve synthesis aborts for that product only.
type InvalidRatingError struct {
	Field string
	Value float64
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("invalid rating %s=%v: must be a positive finite number", e.Field, e.Value)
}
