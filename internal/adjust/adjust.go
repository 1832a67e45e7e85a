// Package adjust applies correlation rules to base distributions before
// sampling. Rules are ordered, data-driven nudges: when a predicate over the
// already-generated covariates holds, a categorical outcome's weight is
// multiplied or shifted, a Bernoulli rate is scaled, or a parametric
// location/scale moves. Categorical weights renormalize after adjustment and
// clamp to a positive floor, so no outcome becomes unreachable unless a rule
// excludes it outright.
package adjust

import (
	"fmt"

	"quotesynth/internal/dist"
	"quotesynth/pkg/quote"
)

// MinWeight is the post-adjustment floor for categorical weights that were
// not explicitly excluded.
const MinWeight = 1e-9

// minPositive keeps adjusted rates and scales strictly positive where the
// family requires it.
const minPositive = 1e-9

// Covariates carries the upstream record values rules may consult. Stages
// fill in only the fields generated before them; rules must not read fields
// their stage order has not produced yet.
type Covariates struct {
	Age           int
	Sex           quote.Sex
	MaritalStatus quote.MaritalStatus
	Employment    quote.EmploymentStatus
	Region        string
	Urban         bool
	Homeowner     bool
	LicenceYears  int
	VehicleAge    int
	VehicleValue  int
	FuelType      quote.FuelType
	BodyType      quote.BodyType
	EngineCC      int
	AnnualMileage int
	ClassOfUse    quote.ClassOfUse
	CoverType     quote.CoverType
	NCDYears      int
}

// Predicate decides whether a rule fires for the given covariates.
type Predicate func(Covariates) bool

// WeightRule nudges one categorical outcome. A zero Multiply means "no
// multiplicative change"; Exclude removes the outcome entirely.
type WeightRule struct {
	Name     string
	When     Predicate
	Outcome  string
	Multiply float64
	Add      float64
	Exclude  bool
}

// RateRule scales a Bernoulli success rate.
type RateRule struct {
	Name     string
	When     Predicate
	Multiply float64
	Add      float64
}

// ParamRule shifts parametric location and scale.
type ParamRule struct {
	Name     string
	When     Predicate
	MulLoc   float64
	AddLoc   float64
	MulScale float64
	AddScale float64
}

// Weights applies the matching rules in order and returns the renormalized
// result. Rules naming an outcome the base distribution does not carry are
// rule-table bugs and are reported as errors.
func Weights(base dist.Categorical, rules []WeightRule, cov Covariates) (dist.Categorical, error) {
	weights := make(map[string]float64, base.Len())
	for _, label := range base.Labels() {
		weights[label] = base.Weight(label)
	}
	excluded := make(map[string]bool)

	for _, rule := range rules {
		if rule.When != nil && !rule.When(cov) {
			continue
		}
		w, ok := weights[rule.Outcome]
		if !ok {
			return dist.Categorical{}, fmt.Errorf("adjust: rule %q targets unknown outcome %q", rule.Name, rule.Outcome)
		}
		if rule.Exclude {
			weights[rule.Outcome] = 0
			excluded[rule.Outcome] = true
			continue
		}
		if rule.Multiply != 0 {
			w *= rule.Multiply
		}
		w += rule.Add
		weights[rule.Outcome] = w
	}

	for label, w := range weights {
		if !excluded[label] && w < MinWeight {
			weights[label] = MinWeight
		}
	}

	adjusted, err := dist.NewCategorical(weights)
	if err != nil {
		return dist.Categorical{}, fmt.Errorf("adjust: rules left no sampleable outcome: %w", err)
	}
	return adjusted, nil
}

// Rate applies the matching rules in order and clamps the result to [0, 1].
func Rate(base float64, rules []RateRule, cov Covariates) float64 {
	rate := base
	for _, rule := range rules {
		if rule.When != nil && !rule.When(cov) {
			continue
		}
		if rule.Multiply != 0 {
			rate *= rule.Multiply
		}
		rate += rule.Add
	}
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

// Param applies the matching rules in order, then clamps whichever parameter
// the family requires to stay positive.
func Param(base dist.Param, rules []ParamRule, cov Covariates) dist.Param {
	p := base
	for _, rule := range rules {
		if rule.When != nil && !rule.When(cov) {
			continue
		}
		if rule.MulLoc != 0 {
			p.Loc *= rule.MulLoc
		}
		p.Loc += rule.AddLoc
		if rule.MulScale != 0 {
			p.Scale *= rule.MulScale
		}
		p.Scale += rule.AddScale
	}
	switch p.Family {
	case dist.FamilyPoisson, dist.FamilyExponential:
		if p.Loc < minPositive {
			p.Loc = minPositive
		}
	case dist.FamilyLogNormal, dist.FamilyNormal:
		if p.Scale < minPositive {
			p.Scale = minPositive
		}
	}
	return p
}
