package model

import "strconv"

// Datasheet fields are rounded to fixed decimal places before template
// injection: voltages and currents get two decimals, power/efficiency/
// weight/temperature one.

// FormattedFields returns the row's display values as strings in template
// column order: pmax, voc, vmp, isc, imp, eff, weight, t.
func (r PanelRow) FormattedFields() []string {
	return []string{
		format1(r.Pmax),
		format2(r.Voc),
		format2(r.Vmp),
		format2(r.Isc),
		format2(r.Imp),
		format1(r.Eff),
		format1(r.Weight),
		format1(r.Temp),
	}
}

// FieldNames lists the template column headers matching FormattedFields.
func FieldNames() []string {
	return []string{"pmax", "voc", "vmp", "isc", "imp", "eff", "weight", "t"}
}

func format2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func format1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
