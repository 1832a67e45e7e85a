package generate

import (
	"slices"

	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

// runAddOns draws an independent Bernoulli per add-on in canonical order.
// Breakdown cover, when selected, carries a recovery level.
func runAddOns(env *Env, d *Draft, s *randstream.Stream) error {
	cov := covariates(d, env.Reference.Year())
	selected := []quote.AddOnCode{}
	for _, code := range quote.AddOnCodes() {
		rate, err := env.rate(calibration.TableAddOnRate, dist.K(string(code)), env.Rules.AddOnRates[code], cov)
		if err != nil {
			return err
		}
		if s.Bernoulli(rate) {
			selected = append(selected, code)
		}
	}
	addOns := quote.AddOns{Selected: selected}
	if slices.Contains(selected, quote.AddOnBreakdown) {
		level, err := env.pick(s, calibration.TableBreakdownLevel, dist.K())
		if err != nil {
			return err
		}
		addOns.BreakdownLevel = quote.BreakdownLevel(level)
	}
	d.AddOns = addOns
	return nil
}
