package calibration

import "testing"

func TestBandsLabel(t *testing.T) {
	b := NewBands(17, 25, 35, 100)
	cases := []struct {
		v    int
		want string
	}{
		{16, "17-25"},
		{17, "17-25"},
		{24, "17-25"},
		{25, "25-35"},
		{34, "25-35"},
		{35, "35-100"},
		{99, "35-100"},
		{100, "35-100"},
		{250, "35-100"},
	}
	for _, tc := range cases {
		if got := b.Label(tc.v); got != tc.want {
			t.Fatalf("Label(%d) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestBandsLabels(t *testing.T) {
	got := NewBands(0, 5, 10).Labels()
	if len(got) != 2 || got[0] != "0-5" || got[1] != "5-10" {
		t.Fatalf("labels: %v", got)
	}
}

func TestParseBandLabel(t *testing.T) {
	lo, hi, err := ParseBandLabel("25-35")
	if err != nil || lo != 25 || hi != 35 {
		t.Fatalf("parse: %d %d %v", lo, hi, err)
	}
	for _, bad := range []string{"25", "x-35", "25-y", ""} {
		if _, _, err := ParseBandLabel(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestShippedBandLabelsRoundTrip(t *testing.T) {
	sets := map[string]Bands{
		"employment":  EmploymentBands,
		"homeowner":   HomeownerBands,
		"medical":     MedicalBands,
		"marital":     MaritalBands,
		"household":   HouseholdBands,
		"licence":     LicenceBands,
		"ncd":         NCDBands,
		"conviction":  ConvictionBands,
		"vehicle_age": VehicleAgeBands,
		"value":       ValueBands,
	}
	for name, b := range sets {
		for _, label := range b.Labels() {
			lo, hi, err := ParseBandLabel(label)
			if err != nil {
				t.Fatalf("%s label %q: %v", name, label, err)
			}
			if hi <= lo {
				t.Fatalf("%s label %q inverted", name, label)
			}
			// A value inside the band must map back to the same label.
			if got := b.Label(lo); got != label {
				t.Fatalf("%s Label(%d) = %q, want %q", name, lo, got, label)
			}
		}
	}
}

func TestNewBandsPanics(t *testing.T) {
	for _, edges := range [][]int{{17}, {17, 17}, {25, 17, 35}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for edges %v", edges)
				}
			}()
			NewBands(edges...)
		}()
	}
}
