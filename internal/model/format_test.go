package model

import "testing"

func TestFormattedFields(t *testing.T) {
	row := PanelRow{
		Series: "1745x670-X-s54p1",
		Pmax:   455.04,
		Voc:    49.5,
		Vmp:    41.666,
		Isc:    11.2,
		Imp:    10.9,
		Eff:    21.28,
		Weight: 23.456,
		Temp:   45,
	}

	got := row.FormattedFields()
	want := []string{"455.0", "49.50", "41.67", "11.20", "10.90", "21.3", "23.5", "45.0"}

	if len(got) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %s: expected %q, got %q", FieldNames()[i], want[i], got[i])
		}
	}
}

func TestFieldNamesMatchFieldCount(t *testing.T) {
	if len(FieldNames()) != len(PanelRow{}.FormattedFields()) {
		t.Error("field names and formatted fields must stay in lockstep")
	}
}

func TestRatingsExtraction(t *testing.T) {
	row := PanelRow{Voc: 49.5, Isc: 11.2, Pmax: 455}
	r := row.Ratings()
	if r.OpenCircuitVoltage != 49.5 || r.ShortCircuitCurrent != 11.2 || r.MaxPower != 455 {
		t.Errorf("unexpected ratings: %+v", r)
	}
}
