package calibration

import (
	"math"
	"sort"
	"testing"

	"quotesynth/internal/dist"
)

func TestBuiltinCarriesEveryRegistryTable(t *testing.T) {
	s := Builtin()
	for name, spec := range Registry() {
		switch spec.Shape {
		case ShapeCategorical:
			tbl := s.Categorical(name)
			if tbl.Len() == 0 {
				t.Errorf("categorical table %q empty", name)
			}
			if tbl.Arity() != spec.Arity {
				t.Errorf("table %q arity %d, want %d", name, tbl.Arity(), spec.Arity)
			}
		case ShapeParam:
			if s.Params(name).Len() == 0 {
				t.Errorf("param table %q empty", name)
			}
		case ShapeRate:
			if s.Rates(name).Len() == 0 {
				t.Errorf("rate table %q empty", name)
			}
		case ShapeCurve:
			if s.Curve(name).Len() == 0 {
				t.Errorf("curve %q empty", name)
			}
		}
	}
}

func TestBuiltinSexSplit(t *testing.T) {
	s := Builtin()
	sex, err := s.Categorical(TableSex).Query(dist.K())
	if err != nil {
		t.Fatalf("sex table: %v", err)
	}
	if w := sex.Weight("male"); math.Abs(w-0.535) > 1e-12 {
		t.Fatalf("male weight: %v", w)
	}
	if w := sex.Weight("female"); math.Abs(w-0.465) > 1e-12 {
		t.Fatalf("female weight: %v", w)
	}
}

func TestBuiltinVehicleClosure(t *testing.T) {
	s := Builtin()
	model, err := s.Categorical(TableVehicleModel).Query(dist.K())
	if err != nil {
		t.Fatalf("vehicle model table: %v", err)
	}
	for _, slug := range model.Labels() {
		spec, ok := s.Vehicle(slug)
		if !ok {
			t.Fatalf("slug %q has no spec row", slug)
		}
		if spec.Make == "" || spec.Body == "" || spec.NewPrice <= 0 {
			t.Fatalf("spec %q incomplete: %+v", slug, spec)
		}
		if spec.Fuel == "electric" && spec.EngineCC != 0 {
			t.Fatalf("electric %q has engine displacement %d", slug, spec.EngineCC)
		}
		if spec.Fuel != "electric" && spec.EngineCC <= 0 {
			t.Fatalf("%q missing engine displacement", slug)
		}
	}
}

func TestBuiltinOccupationClosure(t *testing.T) {
	s := Builtin()
	tbl := s.Categorical(TableOccupation)
	for _, key := range tbl.Keys() {
		c, err := tbl.Query(key)
		if err != nil {
			t.Fatalf("occupation (%s): %v", key, err)
		}
		for _, code := range c.Labels() {
			if _, ok := s.OccupationTitle(code); !ok {
				t.Fatalf("occupation code %q has no title", code)
			}
		}
	}
}

func TestBuiltinRegionClosure(t *testing.T) {
	s := Builtin()
	regions, err := s.Categorical(TableRegion).Query(dist.K())
	if err != nil {
		t.Fatalf("region table: %v", err)
	}
	for _, region := range regions.Labels() {
		if _, err := s.Categorical(TablePostcodeArea).Query(dist.K(region)); err != nil {
			t.Errorf("postcode areas for %q: %v", region, err)
		}
		if _, err := s.Categorical(TableCity).Query(dist.K(region)); err != nil {
			t.Errorf("cities for %q: %v", region, err)
		}
		if _, err := s.Rates(TableUrbanRate).Query(dist.K(region)); err != nil {
			t.Errorf("urban rate for %q: %v", region, err)
		}
	}
}

func TestBuiltinNamedDriverCountByAgeBand(t *testing.T) {
	s := Builtin()
	tbl := s.Categorical(TableNamedDriverCount)
	for _, group := range []string{"partnered", "solo"} {
		for _, band := range HouseholdBands.Labels() {
			if _, err := tbl.Query(dist.K(group, band)); err != nil {
				t.Fatalf("%s %s: %v", group, band, err)
			}
		}
	}
	midlife, err := tbl.Query(dist.K("partnered", "40-60"))
	if err != nil {
		t.Fatalf("partnered 40-60: %v", err)
	}
	if w := midlife.Weight("2"); math.Abs(w-0.17) > 1e-12 {
		t.Fatalf("partnered 40-60 weight for two drivers: %v", w)
	}
	// Bands without an exact row fall back to the group-level row.
	fallback, err := tbl.Query(dist.K("partnered", "25-40"))
	if err != nil {
		t.Fatalf("partnered 25-40: %v", err)
	}
	if w := fallback.Weight("1"); math.Abs(w-0.65) > 1e-12 {
		t.Fatalf("partnered fallback weight for one driver: %v", w)
	}
}

func TestBuiltinConvictionRateCoverage(t *testing.T) {
	s := Builtin()
	for _, band := range ConvictionBands.Labels() {
		for _, sex := range []string{"male", "female"} {
			rate, err := s.Rates(TableConvictionRate).Query(dist.K(band, sex))
			if err != nil {
				t.Fatalf("conviction rate (%s, %s): %v", band, sex, err)
			}
			if rate <= 0 || rate >= 1 {
				t.Fatalf("conviction rate (%s, %s) = %v", band, sex, rate)
			}
		}
	}
}

func TestSetPanicsOnUnknownName(t *testing.T) {
	s := Builtin()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown table name")
		}
	}()
	s.Categorical("not_a_table")
}

func TestRegistryNames(t *testing.T) {
	names := RegistryNames()
	if len(names) != len(Registry()) {
		t.Fatalf("names %d, registry %d", len(names), len(Registry()))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
	i := sort.SearchStrings(names, TableSex)
	if i == len(names) || names[i] != TableSex {
		t.Fatalf("registry missing %q", TableSex)
	}
}
