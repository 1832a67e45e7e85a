package generate

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"quotesynth/internal/adjust"
	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

// DefaultReference anchors all date arithmetic when no reference is supplied.
// Generation never reads the wall clock: a fixed anchor is what makes reruns
// byte-identical.
var DefaultReference = time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

// minDrivingAge is the youngest age a proposer or named driver can hold a
// licence.
const minDrivingAge = 17

// Env is everything the stages read besides the draft itself.
type Env struct {
	Tables    *calibration.Set
	Streams   *randstream.Manager
	Reference time.Time
	Rules     Rules
}

// NewEnv builds a generation environment with the default behavioral rules.
// A zero reference time selects DefaultReference.
func NewEnv(tables *calibration.Set, streams *randstream.Manager, reference time.Time) *Env {
	if reference.IsZero() {
		reference = DefaultReference
	}
	return &Env{
		Tables:    tables,
		Streams:   streams,
		Reference: reference.UTC(),
		Rules:     DefaultRules(),
	}
}

func (e *Env) refDate() quote.Date { return quote.DateOf(e.Reference) }

// Record generates the record at the given index by running every stage in
// order and sealing the result. The returned quote is fully validated.
func Record(env *Env, index uint64) (quote.Quote, error) {
	d := &Draft{Index: index}
	for _, st := range Stages() {
		s := env.Streams.Stream(index, st.Name)
		if err := st.Run(env, d, s); err != nil {
			return quote.Quote{}, fmt.Errorf("record %d: stage %s: %w", index, st.Name, err)
		}
		if !st.done(d) {
			return quote.Quote{}, &InvariantError{
				Record: index,
				Field:  st.Name,
				Detail: "stage returned without filling its group",
			}
		}
	}
	return assemble(env, d)
}

// pick samples a label from the named categorical table with no adjustment.
func (e *Env) pick(s *randstream.Stream, table string, key dist.Key) (string, error) {
	c, err := e.Tables.Categorical(table).Query(key)
	if err != nil {
		return "", err
	}
	return c.Sample(s), nil
}

// pickInt samples from a table whose labels are decimal integers.
func (e *Env) pickInt(s *randstream.Stream, table string, key dist.Key) (int, error) {
	label, err := e.pick(s, table, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(label)
	if err != nil {
		return 0, fmt.Errorf("table %q: label %q is not numeric: %w", table, label, err)
	}
	return n, nil
}

// categorical samples after applying weight rules against the covariates.
func (e *Env) categorical(s *randstream.Stream, table string, key dist.Key, rules []adjust.WeightRule, cov adjust.Covariates) (string, error) {
	c, err := e.Tables.Categorical(table).Query(key)
	if err != nil {
		return "", err
	}
	if len(rules) > 0 {
		c, err = adjust.Weights(c, rules, cov)
		if err != nil {
			return "", err
		}
	}
	return c.Sample(s), nil
}

func (e *Env) categoricalInt(s *randstream.Stream, table string, key dist.Key, rules []adjust.WeightRule, cov adjust.Covariates) (int, error) {
	label, err := e.categorical(s, table, key, rules, cov)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(label)
	if err != nil {
		return 0, fmt.Errorf("table %q: label %q is not numeric: %w", table, label, err)
	}
	return n, nil
}

// rate reads a Bernoulli rate and applies rate rules.
func (e *Env) rate(table string, key dist.Key, rules []adjust.RateRule, cov adjust.Covariates) (float64, error) {
	r, err := e.Tables.Rates(table).Query(key)
	if err != nil {
		return 0, err
	}
	return adjust.Rate(r, rules, cov), nil
}

// bernoulli draws one success/failure from an unadjusted rate table.
func (e *Env) bernoulli(s *randstream.Stream, table string, key dist.Key) (bool, error) {
	r, err := e.Tables.Rates(table).Query(key)
	if err != nil {
		return false, err
	}
	return s.Bernoulli(r), nil
}

// param samples the named parametric distribution.
func (e *Env) param(s *randstream.Stream, table string, key dist.Key) (float64, error) {
	p, err := e.Tables.Params(table).Query(key)
	if err != nil {
		return 0, err
	}
	return p.Sample(s)
}

// lognormalFromCurves samples a log-normal whose natural-scale median and
// standard deviation come from empirical curves evaluated at x.
func (e *Env) lognormalFromCurves(s *randstream.Stream, medianCurve, sdCurve string, x float64, rules []adjust.ParamRule, cov adjust.Covariates) (float64, error) {
	median := e.Tables.Curve(medianCurve).At(x)
	sd := e.Tables.Curve(sdCurve).At(x)
	p := dist.Param{Family: dist.FamilyLogNormal, Loc: math.Log(median), Scale: logSigma(median, sd)}
	p = adjust.Param(p, rules, cov)
	return p.Sample(s)
}

// logSigma converts a natural-scale median and standard deviation to the
// log-normal sigma parameter.
func logSigma(median, sd float64) float64 {
	if median <= 0 || sd <= 0 {
		return 0.01
	}
	ratio := sd / median
	return math.Sqrt(math.Log(1 + ratio*ratio))
}

// covariates snapshots the draft for rule predicates. Fields belonging to
// stages that have not run yet are zero.
func covariates(d *Draft, refYear int) adjust.Covariates {
	cov := adjust.Covariates{
		Age:           d.Proposer.Age,
		Sex:           d.Proposer.Sex,
		MaritalStatus: d.Proposer.MaritalStatus,
		Employment:    d.Proposer.Employment,
		Region:        d.Geography.Region,
		Urban:         d.Geography.Urban,
		Homeowner:     d.Proposer.Homeowner,
		LicenceYears:  d.Proposer.Licence.YearsHeld,
		VehicleValue:  d.Vehicle.EstimatedValue,
		FuelType:      d.Vehicle.FuelType,
		BodyType:      d.Vehicle.BodyType,
		EngineCC:      d.Vehicle.EngineCC,
		AnnualMileage: d.Policy.Usage.AnnualMileage,
		ClassOfUse:    d.Policy.Usage.ClassOfUse,
		CoverType:     d.Policy.CoverType,
		NCDYears:      d.Policy.NCDYears,
	}
	if d.Vehicle.FirstRegistered > 0 {
		cov.VehicleAge = refYear - d.Vehicle.FirstRegistered
	}
	return cov
}

// ageAt returns completed years between a birth date and a reference date.
func ageAt(dob, ref quote.Date) int {
	age := ref.Year - dob.Year
	if ref.Month < dob.Month || (ref.Month == dob.Month && ref.Day < dob.Day) {
		age--
	}
	return age
}

// birthDate picks a date of birth uniformly within the year that leaves the
// subject exactly age years old at the reference date.
func birthDate(ref quote.Date, age int, s *randstream.Stream) quote.Date {
	month, day := ref.Month, ref.Day
	// A leap-day reference anchors on Feb 28 so the birth year, which may not
	// be a leap year, never rolls the anchor into March.
	if month == time.February && day == 29 {
		day = 28
	}
	anchor := quote.Date{Year: ref.Year - age, Month: month, Day: day}
	anchor = quote.DateOf(anchor.Time())
	return anchor.AddDays(-s.IntBetween(0, 364))
}

func areaKind(urban bool) string {
	if urban {
		return "urban"
	}
	return "rural"
}

func roundTo(v float64, step int) int {
	if step <= 0 {
		step = 1
	}
	return int(math.Round(v/float64(step))) * step
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
