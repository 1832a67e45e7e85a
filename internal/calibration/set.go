// Package calibration holds the pre-computed distribution tables the engine
// samples from. A Set is loaded once at startup, either from the pack
// compiled into the binary or from a SQLite pack produced by the data
// pipeline, and is immutable afterwards. Table names, key widths, and
// fallback chains are fixed by a registry so that packs can be validated for
// coverage before any generation runs.
package calibration

import (
	"fmt"
	"sort"

	"quotesynth/internal/dist"
)

// Table names resolvable through a Set. The registry below fixes the shape,
// key width, and fallback chain of each.
const (
	TableRegion           = "region"
	TablePostcodeArea     = "postcode_area"
	TableCity             = "city"
	TableIMDDecile        = "imd_decile"
	TableSex              = "sex"
	TableAge              = "age"
	TableMaritalStatus    = "marital_status"
	TableTitle            = "title"
	TableFirstName        = "first_name"
	TableSurname          = "surname"
	TableOccupation       = "occupation"
	TableEmployment       = "employment_status"
	TableLicenceType      = "licence_type"
	TableLicencePassDelay = "licence_pass_delay"
	TableVehicleModel     = "vehicle_model"
	TableVehicleAge       = "vehicle_age"
	TableVehicleDoors     = "vehicle_doors"
	TableVehicleSeats     = "vehicle_seats"
	TableModificationType = "modification_type"
	TableCoverType        = "cover_type"
	TablePaymentFrequency = "payment_frequency"
	TableVoluntaryExcess  = "voluntary_excess"
	TableNCDYears         = "ncd_years"
	TableClassOfUse       = "class_of_use"
	TableOvernightLoc     = "overnight_location"
	TableDaytimeLoc       = "daytime_location"
	TablePreviousInsurer  = "previous_insurer"
	TableClaimType        = "claim_type"
	TableClaimFault       = "claim_fault"
	TableConvictionCode   = "conviction_code"
	TableConvictionCount  = "conviction_count"
	TableNamedDriverCount = "named_driver_count"
	TableRelationship     = "relationship"
	TableBreakdownLevel   = "breakdown_level"
	TableChannel          = "channel"

	TableClaimAmount = "claim_amount"

	TableHomeownerRate    = "homeowner_rate"
	TableMedicalRate      = "medical_rate"
	TableConvictionRate   = "conviction_rate"
	TableAlarmRate        = "alarm_factory_rate"
	TableImmobiliserRate  = "immobiliser_rate"
	TableTrackerRate      = "tracker_rate"
	TableModificationRate = "modification_rate"
	TableAddOnRate        = "addon_rate"
	TableUrbanRate        = "urban_rate"

	CurveClaimRate        = "claim_rate"
	CurveMaleAgeWeight    = "male_age_weight"
	CurveFemaleAgeWeight  = "female_age_weight"
	CurveVehicleAgeWeight = "vehicle_age_weight"
	CurveDepreciation     = "depreciation"
	CurveOdometerMedian   = "odometer_median"
	CurveOdometerSD       = "odometer_sd"
	CurveMileageMedian    = "annual_mileage_median"
	CurveMileageSD        = "annual_mileage_sd"
)

// Shape identifies which container a registry table lives in.
type Shape int

// Registry table shapes.
const (
	ShapeCategorical Shape = iota
	ShapeParam
	ShapeRate
	ShapeCurve
)

// Spec fixes the contract of one registry table.
type Spec struct {
	Shape Shape
	Arity int
	Masks [][]bool
}

// registry lists every table a Set must carry. Loaders reject packs that
// name tables outside it or disagree with its key widths.
var registry = map[string]Spec{
	TableRegion:           {Shape: ShapeCategorical, Arity: 0},
	TablePostcodeArea:     {Shape: ShapeCategorical, Arity: 1, Masks: [][]bool{dist.MaskAll(1)}},
	TableCity:             {Shape: ShapeCategorical, Arity: 1, Masks: [][]bool{dist.MaskAll(1)}},
	TableIMDDecile:        {Shape: ShapeCategorical, Arity: 1},
	TableSex:              {Shape: ShapeCategorical, Arity: 0},
	TableAge:              {Shape: ShapeCategorical, Arity: 1},
	TableMaritalStatus:    {Shape: ShapeCategorical, Arity: 2, Masks: [][]bool{dist.MaskAll(2)}},
	TableTitle:            {Shape: ShapeCategorical, Arity: 2},
	TableFirstName:        {Shape: ShapeCategorical, Arity: 1},
	TableSurname:          {Shape: ShapeCategorical, Arity: 0},
	TableOccupation:       {Shape: ShapeCategorical, Arity: 1, Masks: [][]bool{dist.MaskAll(1)}},
	TableEmployment:       {Shape: ShapeCategorical, Arity: 1},
	TableLicenceType:      {Shape: ShapeCategorical, Arity: 1},
	TableLicencePassDelay: {Shape: ShapeCategorical, Arity: 0},
	TableVehicleModel:     {Shape: ShapeCategorical, Arity: 0},
	TableVehicleAge:       {Shape: ShapeCategorical, Arity: 0},
	TableVehicleDoors:     {Shape: ShapeCategorical, Arity: 1, Masks: [][]bool{dist.MaskAll(1)}},
	TableVehicleSeats:     {Shape: ShapeCategorical, Arity: 1, Masks: [][]bool{dist.MaskAll(1)}},
	TableModificationType: {Shape: ShapeCategorical, Arity: 0},
	TableCoverType:        {Shape: ShapeCategorical, Arity: 0},
	TablePaymentFrequency: {Shape: ShapeCategorical, Arity: 0},
	TableVoluntaryExcess:  {Shape: ShapeCategorical, Arity: 0},
	TableNCDYears:         {Shape: ShapeCategorical, Arity: 1},
	TableClassOfUse:       {Shape: ShapeCategorical, Arity: 1, Masks: [][]bool{dist.MaskAll(1)}},
	TableOvernightLoc:     {Shape: ShapeCategorical, Arity: 1},
	TableDaytimeLoc:       {Shape: ShapeCategorical, Arity: 1},
	TablePreviousInsurer:  {Shape: ShapeCategorical, Arity: 0},
	TableClaimType:        {Shape: ShapeCategorical, Arity: 0},
	TableClaimFault:       {Shape: ShapeCategorical, Arity: 1},
	TableConvictionCode:   {Shape: ShapeCategorical, Arity: 0},
	TableConvictionCount:  {Shape: ShapeCategorical, Arity: 0},
	TableNamedDriverCount: {Shape: ShapeCategorical, Arity: 2, Masks: [][]bool{dist.MaskAt(2, 1), dist.MaskAll(2)}},
	TableRelationship:     {Shape: ShapeCategorical, Arity: 1, Masks: [][]bool{dist.MaskAll(1)}},
	TableBreakdownLevel:   {Shape: ShapeCategorical, Arity: 0},
	TableChannel:          {Shape: ShapeCategorical, Arity: 0},

	TableClaimAmount: {Shape: ShapeParam, Arity: 1},

	TableHomeownerRate:    {Shape: ShapeRate, Arity: 1},
	TableMedicalRate:      {Shape: ShapeRate, Arity: 1},
	TableConvictionRate:   {Shape: ShapeRate, Arity: 2},
	TableAlarmRate:        {Shape: ShapeRate, Arity: 1},
	TableImmobiliserRate:  {Shape: ShapeRate, Arity: 1},
	TableTrackerRate:      {Shape: ShapeRate, Arity: 1},
	TableModificationRate: {Shape: ShapeRate, Arity: 0},
	TableAddOnRate:        {Shape: ShapeRate, Arity: 1},
	TableUrbanRate:        {Shape: ShapeRate, Arity: 1, Masks: [][]bool{dist.MaskAll(1)}},

	CurveClaimRate:        {Shape: ShapeCurve},
	CurveMaleAgeWeight:    {Shape: ShapeCurve},
	CurveFemaleAgeWeight:  {Shape: ShapeCurve},
	CurveVehicleAgeWeight: {Shape: ShapeCurve},
	CurveDepreciation:     {Shape: ShapeCurve},
	CurveOdometerMedian:   {Shape: ShapeCurve},
	CurveOdometerSD:       {Shape: ShapeCurve},
	CurveMileageMedian:    {Shape: ShapeCurve},
	CurveMileageSD:        {Shape: ShapeCurve},
}

// Registry returns the table contract map, keyed by table name.
func Registry() map[string]Spec {
	out := make(map[string]Spec, len(registry))
	for name, spec := range registry {
		out[name] = spec
	}
	return out
}

// RegistryNames returns all registry table names in sorted order.
func RegistryNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VehicleSpec is one sampleable vehicle variant. NewPrice anchors the value
// depreciation curve; EngineCC is zero for battery-electric vehicles.
type VehicleSpec struct {
	Slug     string
	Make     string
	Model    string
	Fuel     string
	Body     string
	EngineCC int
	NewPrice int
	Weight   float64
}

// Set is an immutable collection of every table the generators consult.
type Set struct {
	categorical map[string]*dist.CategoricalTable
	params      map[string]*dist.ParamTable
	rates       map[string]*dist.Table[float64]
	curves      map[string]dist.Curve
	vehicles    map[string]VehicleSpec
	occupations map[string]string
}

// Categorical returns the named categorical table. Requesting a name outside
// the registry is a programming error and panics; Set construction already
// guarantees every registry table is present.
func (s *Set) Categorical(name string) *dist.CategoricalTable {
	t, ok := s.categorical[name]
	if !ok {
		panic(fmt.Sprintf("calibration: no categorical table %q", name))
	}
	return t
}

// Params returns the named parametric table.
func (s *Set) Params(name string) *dist.ParamTable {
	t, ok := s.params[name]
	if !ok {
		panic(fmt.Sprintf("calibration: no param table %q", name))
	}
	return t
}

// Rates returns the named Bernoulli rate table.
func (s *Set) Rates(name string) *dist.Table[float64] {
	t, ok := s.rates[name]
	if !ok {
		panic(fmt.Sprintf("calibration: no rate table %q", name))
	}
	return t
}

// Curve returns the named empirical curve.
func (s *Set) Curve(name string) dist.Curve {
	c, ok := s.curves[name]
	if !ok {
		panic(fmt.Sprintf("calibration: no curve %q", name))
	}
	return c
}

// Vehicle resolves a sampled vehicle slug to its spec row.
func (s *Set) Vehicle(slug string) (VehicleSpec, bool) {
	v, ok := s.vehicles[slug]
	return v, ok
}

// OccupationTitle resolves a sampled SOC code to its occupation title.
func (s *Set) OccupationTitle(code string) (string, bool) {
	t, ok := s.occupations[code]
	return t, ok
}

// validate checks that every registry table is present with the declared
// shape and that parametric rows carry legal parameters.
func (s *Set) validate() error {
	for name, spec := range registry {
		switch spec.Shape {
		case ShapeCategorical:
			t, ok := s.categorical[name]
			if !ok {
				return fmt.Errorf("calibration: missing categorical table %q", name)
			}
			if t.Arity() != spec.Arity {
				return fmt.Errorf("calibration: table %q arity %d, registry says %d", name, t.Arity(), spec.Arity)
			}
		case ShapeParam:
			t, ok := s.params[name]
			if !ok {
				return fmt.Errorf("calibration: missing param table %q", name)
			}
			for _, key := range t.Keys() {
				p, err := t.Query(key)
				if err != nil {
					return err
				}
				if err := p.Validate(); err != nil {
					return fmt.Errorf("calibration: table %q key (%s): %w", name, key, err)
				}
			}
		case ShapeRate:
			t, ok := s.rates[name]
			if !ok {
				return fmt.Errorf("calibration: missing rate table %q", name)
			}
			for _, key := range t.Keys() {
				r, err := t.Query(key)
				if err != nil {
					return err
				}
				if r < 0 || r > 1 {
					return fmt.Errorf("calibration: table %q key (%s): rate %v outside [0,1]", name, key, r)
				}
			}
		case ShapeCurve:
			if _, ok := s.curves[name]; !ok {
				return fmt.Errorf("calibration: missing curve %q", name)
			}
		}
	}
	if len(s.vehicles) == 0 {
		return fmt.Errorf("calibration: vehicle spec lookup is empty")
	}
	if len(s.occupations) == 0 {
		return fmt.Errorf("calibration: occupation title lookup is empty")
	}
	return nil
}
