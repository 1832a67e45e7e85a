package generate

import (
	"fmt"

	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

// The population marital table carries ONS statuses only; cohabiting is a
// quote-schema status assigned to a share of mid-age singles.
const (
	cohabitRate   = 0.35
	cohabitMinAge = 22
	cohabitMaxAge = 60
)

func runProposer(env *Env, d *Draft, s *randstream.Stream) error {
	sex, err := env.pick(s, calibration.TableSex, dist.K())
	if err != nil {
		return err
	}
	age, err := env.pickInt(s, calibration.TableAge, dist.K(sex))
	if err != nil {
		return err
	}
	marital, err := env.pick(s, calibration.TableMaritalStatus, dist.K(sex, calibration.MaritalBands.Label(age)))
	if err != nil {
		return err
	}
	if marital == string(quote.MaritalSingle) && age >= cohabitMinAge && age <= cohabitMaxAge && s.Bernoulli(cohabitRate) {
		marital = string(quote.MaritalLivingWithPartner)
	}
	title, err := env.pick(s, calibration.TableTitle, dist.K(sex, marital))
	if err != nil {
		return err
	}
	first, err := env.pick(s, calibration.TableFirstName, dist.K(sex))
	if err != nil {
		return err
	}
	last, err := env.pick(s, calibration.TableSurname, dist.K())
	if err != nil {
		return err
	}
	employment, err := env.pick(s, calibration.TableEmployment, dist.K(calibration.EmploymentBands.Label(age)))
	if err != nil {
		return err
	}
	occupation, socCode, err := sampleOccupation(env, s, sex, quote.EmploymentStatus(employment))
	if err != nil {
		return err
	}
	homeowner, err := env.bernoulli(s, calibration.TableHomeownerRate, dist.K(calibration.HomeownerBands.Label(age)))
	if err != nil {
		return err
	}
	medical, err := env.bernoulli(s, calibration.TableMedicalRate, dist.K(calibration.MedicalBands.Label(age)))
	if err != nil {
		return err
	}
	licence, err := sampleLicence(env, s, age)
	if err != nil {
		return err
	}
	d.Proposer = quote.Proposer{
		Title:             quote.Title(title),
		FirstName:         first,
		LastName:          last,
		Sex:               quote.Sex(sex),
		DateOfBirth:       birthDate(env.refDate(), age, s),
		Age:               age,
		MaritalStatus:     quote.MaritalStatus(marital),
		Occupation:        occupation,
		SOCCode:           socCode,
		Employment:        quote.EmploymentStatus(employment),
		Homeowner:         homeowner,
		MedicalConditions: medical,
		Licence:           licence,
	}
	return nil
}

// sampleOccupation resolves an occupation title. Working statuses sample a
// SOC unit group keyed by sex; non-working statuses carry a descriptive
// occupation with no SOC code.
func sampleOccupation(env *Env, s *randstream.Stream, sex string, employment quote.EmploymentStatus) (title, code string, err error) {
	switch employment {
	case quote.EmploymentRetired:
		return "Retired", "", nil
	case quote.EmploymentStudentFull:
		return "Student", "", nil
	case quote.EmploymentUnemployed:
		return "Unemployed", "", nil
	case quote.EmploymentHousePerson:
		return "Household duties", "", nil
	case quote.EmploymentDisability:
		return "Not in employment", "", nil
	}
	code, err = env.pick(s, calibration.TableOccupation, dist.K(sex))
	if err != nil {
		return "", "", err
	}
	title, ok := env.Tables.OccupationTitle(code)
	if !ok {
		return "", "", fmt.Errorf("occupation code %q has no title entry", code)
	}
	return title, code, nil
}

// sampleLicence draws licence type by age band. Full licences date from a
// pass delayed 0-10 years past the minimum driving age; provisional holders
// have held nothing yet.
func sampleLicence(env *Env, s *randstream.Stream, age int) (quote.Licence, error) {
	kind, err := env.pick(s, calibration.TableLicenceType, dist.K(calibration.LicenceBands.Label(age)))
	if err != nil {
		return quote.Licence{}, err
	}
	if quote.LicenceType(kind) == quote.LicenceProvisional {
		return quote.Licence{Type: quote.LicenceProvisional, Entitlement: "B"}, nil
	}
	delay, err := env.pickInt(s, calibration.TableLicencePassDelay, dist.K())
	if err != nil {
		return quote.Licence{}, err
	}
	years := age - minDrivingAge - delay
	if years < 0 {
		years = 0
	}
	return quote.Licence{Type: quote.LicenceFull, YearsHeld: years, Entitlement: "B"}, nil
}
