package generate

import (
	"sort"

	"quotesynth/internal/adjust"
	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

// Disclosure window and cap for prior claims.
const (
	claimYears = 5
	maxClaims  = 5
)

// runClaims draws the claim count from a Poisson whose mean is the annual
// claim rate at the proposer's age scaled to the disclosure window, then
// fills each claim. NCD impact follows fault: anything but a confirmed
// non-fault claim touches the bonus.
func runClaims(env *Env, d *Draft, s *randstream.Stream) error {
	cov := covariates(d, env.Reference.Year())
	annual := env.Tables.Curve(calibration.CurveClaimRate).At(float64(d.Proposer.Age))
	p := adjust.Param(dist.Param{Family: dist.FamilyPoisson, Loc: annual * claimYears}, env.Rules.ClaimCount, cov)
	drawn, err := p.Sample(s)
	if err != nil {
		return err
	}
	n := int(drawn)
	if n > maxClaims {
		n = maxClaims
	}

	ref := env.refDate()
	claims := make([]quote.Claim, 0, n)
	for i := 0; i < n; i++ {
		claimType, err := env.pick(s, calibration.TableClaimType, dist.K())
		if err != nil {
			return err
		}
		fault, err := env.pick(s, calibration.TableClaimFault, dist.K(claimType))
		if err != nil {
			return err
		}
		amount, err := env.param(s, calibration.TableClaimAmount, dist.K(claimType))
		if err != nil {
			return err
		}
		c := quote.Claim{
			Date:        ref.AddDays(-s.IntBetween(1, claimYears*365)),
			Type:        quote.ClaimType(claimType),
			Fault:       quote.FaultStatus(fault),
			AmountGBP:   clampInt(roundTo(amount, 1), 50, 250000),
			NCDAffected: quote.FaultStatus(fault) != quote.FaultNotAtFault,
		}
		if c.Fault != quote.FaultPending {
			if c.Date.DaysUntil(ref) > 180 {
				c.Settled = s.Bernoulli(0.95)
			} else {
				c.Settled = s.Bernoulli(0.55)
			}
		}
		claims = append(claims, c)
	}
	sort.Slice(claims, func(i, j int) bool { return claims[i].Date.Before(claims[j].Date) })
	d.Claims = claims
	return nil
}
