package dist

import (
	"math"
	"testing"
)

func TestParamValidate(t *testing.T) {
	valid := []Param{
		{Family: FamilyPoisson, Loc: 0.2},
		{Family: FamilyExponential, Loc: 1.5},
		{Family: FamilyLogNormal, Loc: 7.2, Scale: 0.8},
		{Family: FamilyNormal, Loc: 0, Scale: 1},
	}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Fatalf("%s: %v", p.Family, err)
		}
	}
	invalid := []Param{
		{Family: FamilyPoisson, Loc: 0},
		{Family: FamilyExponential, Loc: -1},
		{Family: FamilyLogNormal, Loc: 1, Scale: 0},
		{Family: FamilyNormal, Loc: 1, Scale: -2},
		{Family: "weibull", Loc: 1, Scale: 1},
	}
	for _, p := range invalid {
		if err := p.Validate(); err == nil {
			t.Fatalf("%s loc=%v scale=%v: expected error", p.Family, p.Loc, p.Scale)
		}
	}
}

func TestParamSampleDeterministic(t *testing.T) {
	params := []Param{
		{Family: FamilyPoisson, Loc: 3},
		{Family: FamilyLogNormal, Loc: 7, Scale: 0.5},
		{Family: FamilyNormal, Loc: 10, Scale: 2},
		{Family: FamilyExponential, Loc: 0.25},
	}
	for _, p := range params {
		a, err := p.Sample(newSeeded(42))
		if err != nil {
			t.Fatalf("%s: %v", p.Family, err)
		}
		b, err := p.Sample(newSeeded(42))
		if err != nil {
			t.Fatalf("%s: %v", p.Family, err)
		}
		if a != b {
			t.Fatalf("%s: %v != %v for identical sources", p.Family, a, b)
		}
	}
}

func TestParamSampleRanges(t *testing.T) {
	s := newSeeded(7)
	for i := 0; i < 200; i++ {
		n, err := Param{Family: FamilyPoisson, Loc: 2}.Sample(s)
		if err != nil || n < 0 || n != math.Trunc(n) {
			t.Fatalf("poisson draw %v %v", n, err)
		}
		v, err := Param{Family: FamilyLogNormal, Loc: 7, Scale: 0.6}.Sample(s)
		if err != nil || v <= 0 {
			t.Fatalf("lognormal draw %v %v", v, err)
		}
		e, err := Param{Family: FamilyExponential, Loc: 0.5}.Sample(s)
		if err != nil || e < 0 {
			t.Fatalf("exponential draw %v %v", e, err)
		}
	}
}

func TestParamSampleUnknownFamily(t *testing.T) {
	if _, err := (Param{Family: "gamma"}).Sample(newSeeded(1)); err == nil {
		t.Fatalf("expected error for unknown family")
	}
}
