package generate

import (
	"bytes"
	"encoding/json"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"

	"quotesynth/internal/calibration"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

func testEnv(seed uint64) *Env {
	return NewEnv(calibration.Builtin(), randstream.NewManager(seed), time.Time{})
}

func TestRecordDeterministic(t *testing.T) {
	a, err := Record(testEnv(42), 5)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := Record(testEnv(42), 5)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("records differ for identical (seed, index)")
	}
	aj, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	bj, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(aj, bj) {
		t.Fatalf("serialized records differ")
	}
}

func TestRecordIndependentOfGenerationOrder(t *testing.T) {
	env := testEnv(7)
	first, err := Record(env, 9)
	if err != nil {
		t.Fatalf("record 9: %v", err)
	}
	// Generating other records in between must not disturb record 9.
	for _, idx := range []uint64{0, 3, 11} {
		if _, err := Record(env, idx); err != nil {
			t.Fatalf("record %d: %v", idx, err)
		}
	}
	again, err := Record(env, 9)
	if err != nil {
		t.Fatalf("record 9 again: %v", err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Fatalf("record 9 changed after generating other indices")
	}
}

func TestStageOrderFixed(t *testing.T) {
	want := []string{
		"geography", "proposer", "vehicle", "policy", "claims",
		"convictions", "named_drivers", "addons", "metadata", "address",
	}
	stages := Stages()
	if len(stages) != len(want) {
		t.Fatalf("stage count %d, want %d", len(stages), len(want))
	}
	for i, st := range stages {
		if st.Name != want[i] {
			t.Fatalf("stage %d is %q, want %q", i, st.Name, want[i])
		}
	}
}

var (
	postcodeRE = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,2} [0-9][A-Z]{2}$`)
	plateRE    = regexp.MustCompile(`^[A-Z]{2}[0-9]{2} [A-Z]{3}$`)
)

func TestBatchInvariants(t *testing.T) {
	const seed, n = 1234, 150
	env := testEnv(seed)
	ref := env.Reference
	refDate := quote.DateOf(ref)

	for i := uint64(0); i < n; i++ {
		q, err := Record(env, i)
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}

		md := q.Metadata
		if md.RootSeed != seed || md.RecordIndex != i {
			t.Fatalf("record %d: provenance %d/%d", i, md.RootSeed, md.RecordIndex)
		}
		id, err := uuid.Parse(md.QuoteID)
		if err != nil || id.Version() != 4 {
			t.Fatalf("record %d: quote id %q: %v", i, md.QuoteID, err)
		}
		if md.CreatedAt.After(ref) || !md.CreatedAt.After(ref.AddDate(0, 0, -7)) {
			t.Fatalf("record %d: created_at %s outside window", i, md.CreatedAt)
		}

		if !postcodeRE.MatchString(q.Address.Postcode) {
			t.Fatalf("record %d: postcode %q", i, q.Address.Postcode)
		}
		if !plateRE.MatchString(q.Vehicle.RegistrationMark) {
			t.Fatalf("record %d: registration mark %q", i, q.Vehicle.RegistrationMark)
		}
		if q.Vehicle.FuelType == quote.FuelElectric && q.Vehicle.EngineCC != 0 {
			t.Fatalf("record %d: electric vehicle with engine_cc %d", i, q.Vehicle.EngineCC)
		}

		m := q.Policy.Usage.AnnualMileage
		if m < 1000 || m > 40000 || m%500 != 0 {
			t.Fatalf("record %d: annual mileage %d", i, m)
		}

		if len(q.Claims) > maxClaims {
			t.Fatalf("record %d: %d claims", i, len(q.Claims))
		}
		for j := 1; j < len(q.Claims); j++ {
			if q.Claims[j].Date.Before(q.Claims[j-1].Date) {
				t.Fatalf("record %d: claims out of order", i)
			}
		}
		for _, c := range q.Claims {
			if c.AmountGBP < 50 || c.AmountGBP > 250000 {
				t.Fatalf("record %d: claim amount %d", i, c.AmountGBP)
			}
		}
		for j := 1; j < len(q.Convictions); j++ {
			if q.Convictions[j].Date.Before(q.Convictions[j-1].Date) {
				t.Fatalf("record %d: convictions out of order", i)
			}
		}

		if len(q.NamedDrivers) > 2 {
			t.Fatalf("record %d: %d named drivers", i, len(q.NamedDrivers))
		}
		partners := 0
		for _, nd := range q.NamedDrivers {
			if nd.Relationship == quote.RelationSpouse || nd.Relationship == quote.RelationPartner {
				partners++
			}
			if nd.Relationship == quote.RelationChild && q.Proposer.Age < 35 {
				t.Fatalf("record %d: child driver for proposer aged %d", i, q.Proposer.Age)
			}
		}
		if partners > 1 {
			t.Fatalf("record %d: %d spouse/partner drivers", i, partners)
		}

		if q.Proposer.Employment == quote.EmploymentRetired {
			if q.Proposer.Occupation != "Retired" || q.Proposer.SOCCode != "" {
				t.Fatalf("record %d: retired proposer occupation %q/%q", i, q.Proposer.Occupation, q.Proposer.SOCCode)
			}
		}

		for _, code := range q.AddOns.Selected {
			switch code {
			case quote.AddOnToolsInTransit:
				if q.Policy.Usage.ClassOfUse != quote.UseBusiness {
					t.Fatalf("record %d: tools cover without business use", i)
				}
			case quote.AddOnNCDStepBack:
				if q.Policy.NCDYears < 3 {
					t.Fatalf("record %d: NCD step-back with %d NCD years", i, q.Policy.NCDYears)
				}
			}
		}

		if q.Policy.CoverStart.Before(refDate) {
			t.Fatalf("record %d: cover starts %s before reference", i, q.Policy.CoverStart)
		}
	}
}

func TestClaimsRegeneratedInIsolation(t *testing.T) {
	env := testEnv(99)
	for idx := uint64(0); idx < 40; idx++ {
		d := &Draft{Index: idx}
		for _, st := range Stages() {
			if err := st.Run(env, d, env.Streams.Stream(idx, st.Name)); err != nil {
				t.Fatalf("record %d: stage %s: %v", idx, st.Name, err)
			}
		}
		// Re-derive the claims group alone from the upstream context; the
		// named stream must reproduce it without replaying any other stage.
		re := &Draft{
			Index:     idx,
			Geography: d.Geography,
			Proposer:  d.Proposer,
			Vehicle:   d.Vehicle,
			Policy:    d.Policy,
		}
		if err := runClaims(env, re, env.Streams.Stream(idx, "claims")); err != nil {
			t.Fatalf("record %d: regenerate claims: %v", idx, err)
		}
		if !reflect.DeepEqual(re.Claims, d.Claims) {
			t.Fatalf("record %d: claims differ on isolated regeneration", idx)
		}
	}
}

// TestConvictionPenaltiesAreFunctionOfCode sweeps many seeds and asserts the
// penalty triple never varies for a given offence code: two convictions with
// the same code must carry identical points, fine, and ban months.
func TestConvictionPenaltiesAreFunctionOfCode(t *testing.T) {
	type triple struct{ points, fine, ban int }
	seen := map[string]triple{}
	for seed := uint64(1); seed <= 40; seed++ {
		env := testEnv(seed)
		for idx := uint64(0); idx < 25; idx++ {
			q, err := Record(env, idx)
			if err != nil {
				t.Fatalf("seed %d record %d: %v", seed, idx, err)
			}
			for _, c := range q.Convictions {
				got := triple{points: c.Points, fine: c.FineGBP, ban: c.BanMonths}
				if prev, ok := seen[c.Code]; ok && prev != got {
					t.Fatalf("code %s: penalty %+v vs earlier %+v", c.Code, got, prev)
				}
				seen[c.Code] = got
				pen, ok := PenaltyFor(c.Code)
				if !ok {
					t.Fatalf("code %s has no penalty profile", c.Code)
				}
				if got != (triple{points: pen.Points, fine: pen.FineGBP, ban: pen.BanMonths}) {
					t.Fatalf("code %s: penalty %+v, lookup carries %d/%d/%d", c.Code, got, pen.Points, pen.FineGBP, pen.BanMonths)
				}
			}
		}
	}
	if len(seen) == 0 {
		t.Fatal("sweep produced no convictions")
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a, err := Record(testEnv(1), 0)
	if err != nil {
		t.Fatalf("seed 1: %v", err)
	}
	b, err := Record(testEnv(2), 0)
	if err != nil {
		t.Fatalf("seed 2: %v", err)
	}
	if a.Metadata.QuoteID == b.Metadata.QuoteID {
		t.Fatalf("distinct seeds produced the same quote id")
	}
}

func TestNewEnvDefaults(t *testing.T) {
	env := testEnv(1)
	if !env.Reference.Equal(DefaultReference) {
		t.Fatalf("zero reference not defaulted: %s", env.Reference)
	}
	loc := time.FixedZone("ahead", 3600)
	env = NewEnv(calibration.Builtin(), randstream.NewManager(1), time.Date(2026, 3, 1, 12, 0, 0, 0, loc))
	if env.Reference.Location() != time.UTC {
		t.Fatalf("reference not normalized to UTC")
	}
}

func TestInvariantErrorMessage(t *testing.T) {
	err := &InvariantError{Record: 3, Field: "proposer.age", Detail: "age 12 outside 17..100"}
	if got := err.Error(); got != "record 3: proposer.age: age 12 outside 17..100" {
		t.Fatalf("message: %q", got)
	}
}
