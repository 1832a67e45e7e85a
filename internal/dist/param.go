package dist

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// Family names a supported parametric distribution family.
type Family string

// Supported families. Loc and Scale are interpreted per family.
const (
	// FamilyPoisson uses Loc as the rate lambda; Scale is ignored.
	FamilyPoisson Family = "poisson"
	// FamilyLogNormal uses Loc as mu and Scale as sigma of the underlying normal.
	FamilyLogNormal Family = "lognormal"
	// FamilyNormal uses Loc as the mean and Scale as the standard deviation.
	FamilyNormal Family = "normal"
	// FamilyExponential uses Loc as the rate; Scale is ignored.
	FamilyExponential Family = "exponential"
)

// Param is a parametric distribution with key-dependent parameters.
type Param struct {
	Family Family
	Loc    float64
	Scale  float64
}

// Validate reports whether the family is known and the parameters are legal
// for it. Calibration loaders call this once so sampling can assume a valid
// receiver.
func (p Param) Validate() error {
	switch p.Family {
	case FamilyPoisson, FamilyExponential:
		if p.Loc <= 0 {
			return fmt.Errorf("dist: %s rate must be > 0, got %v", p.Family, p.Loc)
		}
	case FamilyLogNormal, FamilyNormal:
		if p.Scale <= 0 {
			return fmt.Errorf("dist: %s scale must be > 0, got %v", p.Family, p.Scale)
		}
	default:
		return fmt.Errorf("dist: unknown family %q", p.Family)
	}
	return nil
}

// Sample draws one value from the distribution using the stream's source.
func (p Param) Sample(s Stream) (float64, error) {
	switch p.Family {
	case FamilyPoisson:
		return distuv.Poisson{Lambda: p.Loc, Src: s.Src()}.Rand(), nil
	case FamilyLogNormal:
		return distuv.LogNormal{Mu: p.Loc, Sigma: p.Scale, Src: s.Src()}.Rand(), nil
	case FamilyNormal:
		return distuv.Normal{Mu: p.Loc, Sigma: p.Scale, Src: s.Src()}.Rand(), nil
	case FamilyExponential:
		return distuv.Exponential{Rate: p.Loc, Src: s.Src()}.Rand(), nil
	}
	return 0, fmt.Errorf("dist: unknown family %q", p.Family)
}
