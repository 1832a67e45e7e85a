package generate

import (
	"math"

	"quotesynth/internal/adjust"
	"quotesynth/pkg/quote"
)

// Rules bundles the behavioral couplings applied on top of the calibration
// tables: ordered, named nudges that make downstream fields respond to
// upstream ones. Tests swap them out to probe stages in isolation.
type Rules struct {
	CoverType       []adjust.WeightRule
	VoluntaryExcess []adjust.WeightRule
	Relationship    []adjust.WeightRule
	Mileage         []adjust.ParamRule
	ClaimCount      []adjust.ParamRule
	ConvictionRate  []adjust.RateRule
	AddOnRates      map[quote.AddOnCode][]adjust.RateRule
}

// DefaultRules returns the standard rule set. Log-normal location shifts are
// expressed as ln(factor) because Loc is the log-space mean.
func DefaultRules() Rules {
	return Rules{
		CoverType: []adjust.WeightRule{
			{
				Name:     "old_cheap_vehicle_tpo",
				When:     func(c adjust.Covariates) bool { return c.VehicleAge >= 12 && c.VehicleValue < 1500 },
				Outcome:  string(quote.CoverTPO),
				Multiply: 3.0,
			},
			{
				Name:     "old_cheap_vehicle_tpft",
				When:     func(c adjust.Covariates) bool { return c.VehicleAge >= 12 && c.VehicleValue < 1500 },
				Outcome:  string(quote.CoverTPFT),
				Multiply: 2.5,
			},
			{
				Name:     "young_driver_tpft",
				When:     func(c adjust.Covariates) bool { return c.Age < 25 && c.VehicleValue < 3000 },
				Outcome:  string(quote.CoverTPFT),
				Multiply: 2.0,
			},
		},
		VoluntaryExcess: []adjust.WeightRule{
			{
				Name:     "young_driver_high_excess",
				When:     func(c adjust.Covariates) bool { return c.Age < 25 },
				Outcome:  "500",
				Multiply: 1.8,
			},
			{
				Name:     "young_driver_low_excess",
				When:     func(c adjust.Covariates) bool { return c.Age < 25 },
				Outcome:  "0",
				Multiply: 0.5,
			},
			{
				Name:     "high_value_excess",
				When:     func(c adjust.Covariates) bool { return c.VehicleValue > 30000 },
				Outcome:  "500",
				Multiply: 1.5,
			},
		},
		Relationship: []adjust.WeightRule{
			{
				Name:    "no_adult_child_under_35",
				When:    func(c adjust.Covariates) bool { return c.Age < 35 },
				Outcome: string(quote.RelationChild),
				Exclude: true,
			},
		},
		Mileage: []adjust.ParamRule{
			{
				Name:   "business_use_mileage",
				When:   func(c adjust.Covariates) bool { return c.ClassOfUse == quote.UseBusiness },
				AddLoc: math.Log(1.30),
			},
			{
				Name:   "social_only_mileage",
				When:   func(c adjust.Covariates) bool { return c.ClassOfUse == quote.UseSocialOnly },
				AddLoc: math.Log(0.85),
			},
			{
				Name:   "retired_mileage",
				When:   func(c adjust.Covariates) bool { return c.Employment == quote.EmploymentRetired },
				AddLoc: math.Log(0.80),
			},
		},
		ClaimCount: []adjust.ParamRule{
			{
				Name:   "high_mileage_claims",
				When:   func(c adjust.Covariates) bool { return c.AnnualMileage > 15000 },
				MulLoc: 1.25,
			},
			{
				Name:   "low_mileage_claims",
				When:   func(c adjust.Covariates) bool { return c.AnnualMileage < 5000 },
				MulLoc: 0.85,
			},
		},
		ConvictionRate: []adjust.RateRule{
			{
				Name:     "business_use_convictions",
				When:     func(c adjust.Covariates) bool { return c.ClassOfUse == quote.UseBusiness },
				Multiply: 1.2,
			},
		},
		AddOnRates: map[quote.AddOnCode][]adjust.RateRule{
			quote.AddOnCourtesyCar: {
				{
					Name:     "comprehensive_courtesy_car",
					When:     func(c adjust.Covariates) bool { return c.CoverType == quote.CoverComprehensive },
					Multiply: 1.3,
				},
			},
			quote.AddOnWindscreen: {
				{
					Name:     "comprehensive_windscreen",
					When:     func(c adjust.Covariates) bool { return c.CoverType == quote.CoverComprehensive },
					Multiply: 1.2,
				},
			},
			quote.AddOnBreakdown: {
				{
					Name:     "older_vehicle_breakdown",
					When:     func(c adjust.Covariates) bool { return c.VehicleAge > 10 },
					Multiply: 1.4,
				},
			},
			// Add of -1 drives the rate to the zero clamp: a hard gate.
			quote.AddOnToolsInTransit: {
				{
					Name: "tools_cover_needs_business_use",
					When: func(c adjust.Covariates) bool { return c.ClassOfUse != quote.UseBusiness },
					Add:  -1,
				},
			},
			quote.AddOnNCDStepBack: {
				{
					Name: "step_back_needs_ncd",
					When: func(c adjust.Covariates) bool { return c.NCDYears < 3 },
					Add:  -1,
				},
			},
		},
	}
}
