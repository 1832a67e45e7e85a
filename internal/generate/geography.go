package generate

import (
	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
)

// runGeography samples the location context every later stage may condition
// on: region, postcode area, city, urban flag, and deprivation decile.
func runGeography(env *Env, d *Draft, s *randstream.Stream) error {
	region, err := env.pick(s, calibration.TableRegion, dist.K())
	if err != nil {
		return err
	}
	area, err := env.pick(s, calibration.TablePostcodeArea, dist.K(region))
	if err != nil {
		return err
	}
	city, err := env.pick(s, calibration.TableCity, dist.K(region))
	if err != nil {
		return err
	}
	urbanRate, err := env.Tables.Rates(calibration.TableUrbanRate).Query(dist.K(region))
	if err != nil {
		return err
	}
	urban := s.Bernoulli(urbanRate)
	imd, err := env.pickInt(s, calibration.TableIMDDecile, dist.K(areaKind(urban)))
	if err != nil {
		return err
	}
	d.Geography = Geography{
		Region:       region,
		PostcodeArea: area,
		City:         city,
		Urban:        urban,
		IMDDecile:    imd,
	}
	return nil
}
