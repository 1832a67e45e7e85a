package generate

import (
	"quotesynth/internal/adjust"
	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

// sameSexCoupleRate applies to spouse/partner drivers outside civil
// partnerships, which are always same-sex here.
const sameSexCoupleRate = 0.03

func runNamedDrivers(env *Env, d *Draft, s *randstream.Stream) error {
	cov := covariates(d, env.Reference.Year())
	group := "solo"
	if partnered(d.Proposer.MaritalStatus) {
		group = "partnered"
	}
	n, err := env.pickInt(s, calibration.TableNamedDriverCount, dist.K(group, calibration.HouseholdBands.Label(d.Proposer.Age)))
	if err != nil {
		return err
	}

	drivers := make([]quote.NamedDriver, 0, n)
	havePartner := false
	for i := 0; i < n; i++ {
		rel, err := sampleRelationship(env, s, d, cov, havePartner)
		if err != nil {
			return err
		}
		if rel == quote.RelationSpouse || rel == quote.RelationPartner {
			havePartner = true
		}
		driver, err := buildNamedDriver(env, s, d, rel)
		if err != nil {
			return err
		}
		drivers = append(drivers, driver)
	}
	d.NamedDrivers = drivers
	return nil
}

func partnered(m quote.MaritalStatus) bool {
	switch m {
	case quote.MaritalMarried, quote.MaritalCivilPartnership, quote.MaritalLivingWithPartner:
		return true
	}
	return false
}

// sampleRelationship draws the relationship keyed by the proposer's marital
// status. At most one spouse or partner appears per policy, so once one has
// been drawn both outcomes are zeroed for the rest of the household.
func sampleRelationship(env *Env, s *randstream.Stream, d *Draft, cov adjust.Covariates, havePartner bool) (quote.Relationship, error) {
	c, err := env.Tables.Categorical(calibration.TableRelationship).Query(dist.K(string(d.Proposer.MaritalStatus)))
	if err != nil {
		return "", err
	}
	c, err = adjust.Weights(c, env.Rules.Relationship, cov)
	if err != nil {
		return "", err
	}
	if havePartner {
		c, err = c.Reweight(func(label string, w float64) float64 {
			if label == string(quote.RelationSpouse) || label == string(quote.RelationPartner) {
				return 0
			}
			return w
		})
		if err != nil {
			return "", err
		}
	}
	return quote.Relationship(c.Sample(s)), nil
}

func buildNamedDriver(env *Env, s *randstream.Stream, d *Draft, rel quote.Relationship) (quote.NamedDriver, error) {
	p := d.Proposer
	var (
		sex     string
		age     int
		marital string
		shared  bool
		err     error
	)
	switch rel {
	case quote.RelationSpouse, quote.RelationPartner:
		sex = oppositeSex(p.Sex)
		if p.MaritalStatus == quote.MaritalCivilPartnership || s.Bernoulli(sameSexCoupleRate) {
			sex = string(p.Sex)
		}
		age = clampInt(p.Age+s.IntBetween(-5, 5), minDrivingAge, 100)
		marital = string(p.MaritalStatus)
		shared = s.Bernoulli(0.8)
	case quote.RelationChild:
		// The relationship rules exclude children of proposers under 35, so
		// the age window below is always non-empty.
		if sex, err = env.pick(s, calibration.TableSex, dist.K()); err != nil {
			return quote.NamedDriver{}, err
		}
		hi := p.Age - 18
		if hi > 25 {
			hi = 25
		}
		age = s.IntBetween(minDrivingAge, hi)
		marital = string(quote.MaritalSingle)
		shared = s.Bernoulli(0.95)
	case quote.RelationParent:
		if sex, err = env.pick(s, calibration.TableSex, dist.K()); err != nil {
			return quote.NamedDriver{}, err
		}
		age = clampInt(p.Age+s.IntBetween(20, 35), minDrivingAge, 95)
		if marital, err = env.pick(s, calibration.TableMaritalStatus, dist.K(sex, calibration.MaritalBands.Label(age))); err != nil {
			return quote.NamedDriver{}, err
		}
		shared = s.Bernoulli(0.5)
	case quote.RelationSibling:
		if sex, err = env.pick(s, calibration.TableSex, dist.K()); err != nil {
			return quote.NamedDriver{}, err
		}
		age = clampInt(p.Age+s.IntBetween(-8, 8), minDrivingAge, 95)
		if marital, err = env.pick(s, calibration.TableMaritalStatus, dist.K(sex, calibration.MaritalBands.Label(age))); err != nil {
			return quote.NamedDriver{}, err
		}
		shared = s.Bernoulli(0.5)
	default: // friend, other family
		if sex, err = env.pick(s, calibration.TableSex, dist.K()); err != nil {
			return quote.NamedDriver{}, err
		}
		age = clampInt(p.Age+s.IntBetween(-10, 10), minDrivingAge, 95)
		if marital, err = env.pick(s, calibration.TableMaritalStatus, dist.K(sex, calibration.MaritalBands.Label(age))); err != nil {
			return quote.NamedDriver{}, err
		}
		shared = rel == quote.RelationOtherFamily && s.Bernoulli(0.4)
	}

	first, err := env.pick(s, calibration.TableFirstName, dist.K(sex))
	if err != nil {
		return quote.NamedDriver{}, err
	}
	last := p.LastName
	if !shared {
		if last, err = env.pick(s, calibration.TableSurname, dist.K()); err != nil {
			return quote.NamedDriver{}, err
		}
	}
	title, err := env.pick(s, calibration.TableTitle, dist.K(sex, marital))
	if err != nil {
		return quote.NamedDriver{}, err
	}
	employment, err := env.pick(s, calibration.TableEmployment, dist.K(calibration.EmploymentBands.Label(age)))
	if err != nil {
		return quote.NamedDriver{}, err
	}
	occupation, _, err := sampleOccupation(env, s, sex, quote.EmploymentStatus(employment))
	if err != nil {
		return quote.NamedDriver{}, err
	}
	licence, err := sampleLicence(env, s, age)
	if err != nil {
		return quote.NamedDriver{}, err
	}
	return quote.NamedDriver{
		Relationship:  rel,
		Title:         quote.Title(title),
		FirstName:     first,
		LastName:      last,
		Sex:           quote.Sex(sex),
		DateOfBirth:   birthDate(env.refDate(), age, s),
		Age:           age,
		MaritalStatus: quote.MaritalStatus(marital),
		Occupation:    occupation,
		Licence:       licence,
	}, nil
}

func oppositeSex(s quote.Sex) string {
	if s == quote.SexMale {
		return string(quote.SexFemale)
	}
	return string(quote.SexMale)
}
