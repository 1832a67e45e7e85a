package generate

import (
	"fmt"

	"quotesynth/internal/adjust"
	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

const (
	secondModificationRate = 0.20
	aftermarketAlarmRate   = 0.10
)

func runVehicle(env *Env, d *Draft, s *randstream.Stream) error {
	slug, err := env.pick(s, calibration.TableVehicleModel, dist.K())
	if err != nil {
		return err
	}
	row, ok := env.Tables.Vehicle(slug)
	if !ok {
		return fmt.Errorf("vehicle slug %q missing from the model lookup", slug)
	}
	vage, err := env.pickInt(s, calibration.TableVehicleAge, dist.K())
	if err != nil {
		return err
	}
	firstReg := env.Reference.Year() - vage

	value := estimatedValue(env, row, vage, s)
	odometer, err := env.lognormalFromCurves(s, calibration.CurveOdometerMedian, calibration.CurveOdometerSD, float64(vage), nil, adjust.Covariates{})
	if err != nil {
		return err
	}
	doors, err := env.pickInt(s, calibration.TableVehicleDoors, dist.K(row.Body))
	if err != nil {
		return err
	}
	seats, err := env.pickInt(s, calibration.TableVehicleSeats, dist.K(row.Body))
	if err != nil {
		return err
	}
	mods, err := sampleModifications(env, s)
	if err != nil {
		return err
	}
	security, err := sampleSecurity(env, s, vage, value)
	if err != nil {
		return err
	}
	d.Vehicle = quote.Vehicle{
		Make:             row.Make,
		Model:            row.Model,
		FuelType:         quote.FuelType(row.Fuel),
		BodyType:         quote.BodyType(row.Body),
		Doors:            doors,
		Seats:            seats,
		FirstRegistered:  firstReg,
		EngineCC:         row.EngineCC,
		EstimatedValue:   value,
		OdometerMiles:    clampInt(roundTo(odometer, 100), 0, 250000),
		InsuranceGroup:   insuranceGroup(value, row.EngineCC, quote.FuelType(row.Fuel)),
		RegistrationMark: registrationMark(firstReg, s),
		Modifications:    mods,
		Security:         security,
	}
	return nil
}

// estimatedValue depreciates the list price by vehicle age and applies a
// condition jitter, rounded to the nearest fifty pounds.
func estimatedValue(env *Env, row calibration.VehicleSpec, vage int, s *randstream.Stream) int {
	factor := env.Tables.Curve(calibration.CurveDepreciation).At(float64(vage))
	jitter := 0.85 + 0.30*s.Float64()
	v := roundTo(float64(row.NewPrice)*factor*jitter, 50)
	if v < 250 {
		v = 250
	}
	return v
}

// insuranceGroup estimates the ABI 1..50 group from value, displacement and
// fuel. The estimator is fixed engine logic, not calibration data.
func insuranceGroup(value, engineCC int, fuel quote.FuelType) int {
	var g int
	switch {
	case value < 5000:
		g = 6
	case value < 10000:
		g = 12
	case value < 15000:
		g = 18
	case value < 20000:
		g = 22
	case value < 30000:
		g = 28
	case value < 40000:
		g = 33
	case value < 50000:
		g = 38
	default:
		g = 43
	}
	if engineCC > 2000 {
		g += 3
	} else if engineCC > 1500 {
		g++
	}
	if fuel == quote.FuelElectric || fuel == quote.FuelPluginHybrid {
		g -= 3
	}
	return clampInt(g, 1, 50)
}

// plateLetters excludes I, Q and Z, which are never issued in the random
// element of a current-format mark.
const plateLetters = "ABCDEFGHJKLMNOPRSTUVWXY"

// registrationMark renders a current-format UK mark for the registration
// year: the age identifier is the two-digit year for March-series plates and
// year+50 for September-series.
func registrationMark(year int, s *randstream.Stream) string {
	id := year % 100
	if s.Bernoulli(0.5) {
		id += 50
	}
	b := make([]byte, 0, 8)
	b = append(b,
		plateLetters[s.IntN(len(plateLetters))],
		plateLetters[s.IntN(len(plateLetters))],
		'0'+byte(id/10),
		'0'+byte(id%10),
		' ')
	for i := 0; i < 3; i++ {
		b = append(b, plateLetters[s.IntN(len(plateLetters))])
	}
	return string(b)
}

// sampleModifications returns the declared modification list, usually empty.
// A second modification never repeats the first.
func sampleModifications(env *Env, s *randstream.Stream) ([]string, error) {
	mods := []string{}
	modified, err := env.bernoulli(s, calibration.TableModificationRate, dist.K())
	if err != nil || !modified {
		return mods, err
	}
	first, err := env.pick(s, calibration.TableModificationType, dist.K())
	if err != nil {
		return nil, err
	}
	mods = append(mods, first)
	if !s.Bernoulli(secondModificationRate) {
		return mods, nil
	}
	base, err := env.Tables.Categorical(calibration.TableModificationType).Query(dist.K())
	if err != nil {
		return nil, err
	}
	rest, err := base.Reweight(func(label string, w float64) float64 {
		if label == first {
			return 0
		}
		return w
	})
	if err != nil {
		return nil, err
	}
	return append(mods, rest.Sample(s)), nil
}

func sampleSecurity(env *Env, s *randstream.Stream, vage, value int) (quote.Security, error) {
	band := calibration.VehicleAgeBands.Label(vage)
	factory, err := env.bernoulli(s, calibration.TableAlarmRate, dist.K(band))
	if err != nil {
		return quote.Security{}, err
	}
	alarm := quote.AlarmNone
	switch {
	case factory:
		alarm = quote.AlarmFactory
	case s.Bernoulli(aftermarketAlarmRate):
		alarm = quote.AlarmAftermarket
	}
	immobiliser, err := env.bernoulli(s, calibration.TableImmobiliserRate, dist.K(band))
	if err != nil {
		return quote.Security{}, err
	}
	tracker, err := env.bernoulli(s, calibration.TableTrackerRate, dist.K(calibration.ValueBands.Label(value)))
	if err != nil {
		return quote.Security{}, err
	}
	return quote.Security{Alarm: alarm, Immobiliser: immobiliser, Tracker: tracker}, nil
}
