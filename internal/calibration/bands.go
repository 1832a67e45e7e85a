package calibration

import (
	"fmt"
	"strconv"
	"strings"
)

// Bands maps an integer covariate onto half-open [lo, hi) band labels such
// as "25-35". Values below the first edge fall into the first band and
// values at or above the last edge into the last, so banded lookups never
// miss.
type Bands struct {
	edges []int
}

// NewBands builds a banding from ascending edges; NewBands(17, 25, 100)
// yields bands "17-25" and "25-100".
func NewBands(edges ...int) Bands {
	if len(edges) < 2 {
		panic("calibration: banding needs at least two edges")
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			panic(fmt.Sprintf("calibration: band edges not ascending at %d", edges[i]))
		}
	}
	return Bands{edges: edges}
}

// Label returns the band label covering v.
func (b Bands) Label(v int) string {
	for i := 0; i+2 < len(b.edges); i++ {
		if v < b.edges[i+1] {
			return bandLabel(b.edges[i], b.edges[i+1])
		}
	}
	return bandLabel(b.edges[len(b.edges)-2], b.edges[len(b.edges)-1])
}

// Labels returns every band label in ascending order.
func (b Bands) Labels() []string {
	out := make([]string, 0, len(b.edges)-1)
	for i := 0; i+1 < len(b.edges); i++ {
		out = append(out, bandLabel(b.edges[i], b.edges[i+1]))
	}
	return out
}

func bandLabel(lo, hi int) string {
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}

// ParseBandLabel splits a "lo-hi" band label back into its edges.
func ParseBandLabel(label string) (lo, hi int, err error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("calibration: malformed band label %q", label)
	}
	lo, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("calibration: malformed band label %q", label)
	}
	hi, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("calibration: malformed band label %q", label)
	}
	return lo, hi, nil
}

// Band sets used by the shipped pack. Generators band a covariate with the
// same edges the pack's conditioning keys were built from.
var (
	EmploymentBands = NewBands(17, 21, 25, 35, 50, 60, 65, 100)
	HomeownerBands  = NewBands(17, 25, 35, 45, 55, 65, 100)
	MedicalBands    = NewBands(17, 30, 50, 65, 100)
	MaritalBands    = NewBands(16, 20, 25, 30, 35, 45, 55, 65, 75, 100)
	HouseholdBands  = NewBands(17, 25, 40, 60, 100)
	LicenceBands    = NewBands(17, 21, 25, 100)
	NCDBands        = NewBands(17, 21, 25, 35, 50, 100)
	ConvictionBands = NewBands(17, 21, 25, 35, 50, 65, 100)
	VehicleAgeBands = NewBands(0, 5, 10, 15, 20, 30)
	ValueBands      = NewBands(0, 20000, 40000, 1000000)
)
