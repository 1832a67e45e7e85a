package generate

import (
	"fmt"
	"sort"

	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

// Endorsements stay disclosable for four years.
const convictionYears = 4

func runConvictions(env *Env, d *Draft, s *randstream.Stream) error {
	cov := covariates(d, env.Reference.Year())
	band := calibration.ConvictionBands.Label(d.Proposer.Age)
	rate, err := env.rate(calibration.TableConvictionRate, dist.K(band, string(d.Proposer.Sex)), env.Rules.ConvictionRate, cov)
	if err != nil {
		return err
	}

	convictions := []quote.Conviction{}
	if s.Bernoulli(rate) {
		n, err := env.pickInt(s, calibration.TableConvictionCount, dist.K())
		if err != nil {
			return err
		}
		ref := env.refDate()
		for i := 0; i < n; i++ {
			code, err := env.pick(s, calibration.TableConvictionCode, dist.K())
			if err != nil {
				return err
			}
			pen, ok := PenaltyFor(code)
			if !ok {
				return fmt.Errorf("conviction code %q has no penalty profile", code)
			}
			// Only the date is random; the penalty triple is the code's.
			convictions = append(convictions, quote.Conviction{
				Date:      ref.AddDays(-s.IntBetween(1, convictionYears*365)),
				Code:      code,
				Points:    pen.Points,
				FineGBP:   pen.FineGBP,
				BanMonths: pen.BanMonths,
			})
		}
		sort.Slice(convictions, func(i, j int) bool { return convictions[i].Date.Before(convictions[j].Date) })
	}
	d.Convictions = convictions
	return nil
}
