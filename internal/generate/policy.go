package generate

import (
	"quotesynth/internal/adjust"
	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

func runPolicy(env *Env, d *Draft, s *randstream.Stream) error {
	cov := covariates(d, env.Reference.Year())

	cover, err := env.categorical(s, calibration.TableCoverType, dist.K(), env.Rules.CoverType, cov)
	if err != nil {
		return err
	}
	cov.CoverType = quote.CoverType(cover)

	payment, err := env.pick(s, calibration.TablePaymentFrequency, dist.K())
	if err != nil {
		return err
	}
	excess, err := env.categoricalInt(s, calibration.TableVoluntaryExcess, dist.K(), env.Rules.VoluntaryExcess, cov)
	if err != nil {
		return err
	}

	// NCD cannot exceed the years the licence has been held; sampled values
	// above the cap collapse onto it.
	ncd, err := env.pickInt(s, calibration.TableNCDYears, dist.K(calibration.NCDBands.Label(d.Proposer.Age)))
	if err != nil {
		return err
	}
	if ncd > d.Proposer.Licence.YearsHeld {
		ncd = d.Proposer.Licence.YearsHeld
	}
	insurer := ""
	if ncd > 0 {
		insurer, err = env.pick(s, calibration.TablePreviousInsurer, dist.K())
		if err != nil {
			return err
		}
	}

	class, err := env.pick(s, calibration.TableClassOfUse, dist.K(string(d.Proposer.Employment)))
	if err != nil {
		return err
	}
	cov.ClassOfUse = quote.ClassOfUse(class)
	mileage, err := annualMileage(env, s, cov)
	if err != nil {
		return err
	}
	overnight, err := env.pick(s, calibration.TableOvernightLoc, dist.K(areaKind(d.Geography.Urban)))
	if err != nil {
		return err
	}
	daytime, err := env.pick(s, calibration.TableDaytimeLoc, dist.K(commuteKind(quote.ClassOfUse(class))))
	if err != nil {
		return err
	}

	d.Policy = quote.Policy{
		CoverType:        quote.CoverType(cover),
		CoverStart:       env.refDate().AddDays(s.IntBetween(0, 29)),
		PaymentFrequency: quote.PaymentFrequency(payment),
		VoluntaryExcess:  excess,
		NCDYears:         ncd,
		PreviousInsurer:  insurer,
		Usage: quote.Usage{
			ClassOfUse:        quote.ClassOfUse(class),
			AnnualMileage:     mileage,
			OvernightLocation: overnight,
			DaytimeLocation:   daytime,
		},
	}
	return nil
}

// annualMileage draws from the vehicle-age mileage curve, shifted by class of
// use and employment, rounded to the nearest five hundred miles.
func annualMileage(env *Env, s *randstream.Stream, cov adjust.Covariates) (int, error) {
	v, err := env.lognormalFromCurves(s, calibration.CurveMileageMedian, calibration.CurveMileageSD, float64(cov.VehicleAge), env.Rules.Mileage, cov)
	if err != nil {
		return 0, err
	}
	return clampInt(roundTo(v, 500), 1000, 40000), nil
}

func commuteKind(class quote.ClassOfUse) string {
	if class == quote.UseSocialOnly {
		return "no_commuting"
	}
	return "commuting"
}
