package generate

import (
	"fmt"
	"slices"
	"strconv"

	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/pkg/quote"
)

// assemble seals the draft into an immutable quote: it fills the computed
// fields and then validates every structural invariant. A violation is a bug
// in a generator or a calibration table, reported as *InvariantError.
func assemble(env *Env, d *Draft) (quote.Quote, error) {
	d.Policy.CoverEnd = d.Policy.CoverStart.AddDays(365)

	q := quote.Quote{
		Metadata:     d.Metadata,
		Proposer:     d.Proposer,
		Vehicle:      d.Vehicle,
		Policy:       d.Policy,
		Claims:       d.Claims,
		Convictions:  d.Convictions,
		NamedDrivers: d.NamedDrivers,
		AddOns:       d.AddOns,
		Address:      d.Address,
	}
	if err := validateRecord(env, d.Index, &q); err != nil {
		return quote.Quote{}, err
	}
	return q, nil
}

func validateRecord(env *Env, index uint64, q *quote.Quote) error {
	fail := func(field, format string, args ...any) error {
		return &InvariantError{Record: index, Field: field, Detail: fmt.Sprintf(format, args...)}
	}
	ref := quote.DateOf(env.Reference)

	p := q.Proposer
	if p.Age < minDrivingAge || p.Age > 100 {
		return fail("proposer.age", "age %d outside 17..100", p.Age)
	}
	if got := ageAt(p.DateOfBirth, ref); got != p.Age {
		return fail("proposer.date_of_birth", "%s implies age %d, record says %d", p.DateOfBirth, got, p.Age)
	}
	if p.Licence.YearsHeld > p.Age-minDrivingAge {
		return fail("proposer.licence.years_held", "%d years held at age %d", p.Licence.YearsHeld, p.Age)
	}
	if p.Licence.Type == quote.LicenceProvisional && p.Licence.YearsHeld != 0 {
		return fail("proposer.licence.years_held", "provisional licence held %d years", p.Licence.YearsHeld)
	}

	v := q.Vehicle
	if err := checkBodyFit(env, "vehicle.doors", calibration.TableVehicleDoors, v.BodyType, v.Doors, fail); err != nil {
		return err
	}
	if err := checkBodyFit(env, "vehicle.seats", calibration.TableVehicleSeats, v.BodyType, v.Seats, fail); err != nil {
		return err
	}
	if v.FirstRegistered > ref.Year {
		return fail("vehicle.first_registered_year", "%d is in the future", v.FirstRegistered)
	}
	if v.EstimatedValue <= 0 {
		return fail("vehicle.estimated_value_gbp", "value %d", v.EstimatedValue)
	}
	if v.OdometerMiles < 0 {
		return fail("vehicle.odometer_miles", "negative reading %d", v.OdometerMiles)
	}
	if v.InsuranceGroup < 1 || v.InsuranceGroup > 50 {
		return fail("vehicle.insurance_group", "group %d outside 1..50", v.InsuranceGroup)
	}
	if v.RegistrationMark == "" {
		return fail("vehicle.registration_mark", "empty")
	}

	pol := q.Policy
	if pol.CoverStart.Before(ref) {
		return fail("policy.cover_start_date", "%s before reference %s", pol.CoverStart, ref)
	}
	if ref.DaysUntil(pol.CoverStart) > 30 {
		return fail("policy.cover_start_date", "%s more than 30 days past reference", pol.CoverStart)
	}
	if pol.CoverEnd != pol.CoverStart.AddDays(365) {
		return fail("policy.cover_end_date", "%s is not cover start + 365 days", pol.CoverEnd)
	}
	if pol.NCDYears > p.Licence.YearsHeld {
		return fail("policy.ncd_years", "%d NCD years on a %d-year licence", pol.NCDYears, p.Licence.YearsHeld)
	}
	if (pol.NCDYears > 0) != (pol.PreviousInsurer != "") {
		return fail("policy.previous_insurer", "presence must match ncd_years > 0")
	}
	if pol.Usage.AnnualMileage <= 0 {
		return fail("policy.usage.annual_mileage", "mileage %d", pol.Usage.AnnualMileage)
	}

	for i, c := range q.Claims {
		field := func(name string) string { return fmt.Sprintf("claims[%d].%s", i, name) }
		days := c.Date.DaysUntil(ref)
		if days < 1 || days > claimYears*365 {
			return fail(field("date"), "%s outside the %d-year window", c.Date, claimYears)
		}
		if c.AmountGBP <= 0 {
			return fail(field("amount_gbp"), "amount %d", c.AmountGBP)
		}
		if c.Fault == quote.FaultNotAtFault && c.NCDAffected {
			return fail(field("ncd_affected"), "non-fault claim cannot touch NCD")
		}
		if c.Fault == quote.FaultPending && c.Settled {
			return fail(field("settled"), "pending claim marked settled")
		}
	}

	for i, c := range q.Convictions {
		field := func(name string) string { return fmt.Sprintf("convictions[%d].%s", i, name) }
		pen, ok := PenaltyFor(c.Code)
		if !ok {
			return fail(field("code"), "unknown code %q", c.Code)
		}
		if c.Points != pen.Points {
			return fail(field("penalty_points"), "%d points, code %s carries %d", c.Points, c.Code, pen.Points)
		}
		if c.FineGBP != pen.FineGBP {
			return fail(field("fine_gbp"), "fine %d, code %s carries %d", c.FineGBP, c.Code, pen.FineGBP)
		}
		if c.BanMonths != pen.BanMonths {
			return fail(field("ban_months"), "%d ban months, code %s carries %d", c.BanMonths, c.Code, pen.BanMonths)
		}
		days := c.Date.DaysUntil(ref)
		if days < 1 || days > convictionYears*365 {
			return fail(field("date"), "%s outside the %d-year window", c.Date, convictionYears)
		}
	}

	for i, nd := range q.NamedDrivers {
		field := func(name string) string { return fmt.Sprintf("named_drivers[%d].%s", i, name) }
		if nd.Age < minDrivingAge || nd.Age > 100 {
			return fail(field("age"), "age %d outside 17..100", nd.Age)
		}
		if got := ageAt(nd.DateOfBirth, ref); got != nd.Age {
			return fail(field("date_of_birth"), "%s implies age %d, record says %d", nd.DateOfBirth, got, nd.Age)
		}
		switch nd.Relationship {
		case quote.RelationSpouse, quote.RelationPartner:
			if diff := nd.Age - p.Age; diff < -5 || diff > 5 {
				return fail(field("age"), "%s aged %d, proposer %d", nd.Relationship, nd.Age, p.Age)
			}
		case quote.RelationChild:
			if nd.Age > 25 {
				return fail(field("age"), "child aged %d", nd.Age)
			}
			if p.Age-nd.Age < 18 {
				return fail(field("age"), "child aged %d with proposer aged %d", nd.Age, p.Age)
			}
		}
	}

	hasBreakdown := slices.Contains(q.AddOns.Selected, quote.AddOnBreakdown)
	if hasBreakdown != (q.AddOns.BreakdownLevel != "") {
		return fail("add_ons.breakdown_level", "level presence must match breakdown selection")
	}

	md := q.Metadata
	if md.QuoteID == "" {
		return fail("metadata.quote_id", "empty")
	}
	if md.Channel.IsAggregator() != (md.AggregatorRef != "") {
		return fail("metadata.aggregator_reference", "presence must match channel %q", md.Channel)
	}
	if md.RecordIndex != index {
		return fail("metadata.record_index", "stamped %d, generating %d", md.RecordIndex, index)
	}

	addr := q.Address
	if addr.Postcode == "" || addr.Street == "" || addr.City == "" {
		return fail("address", "incomplete address")
	}
	if addr.IMDDecile < 1 || addr.IMDDecile > 10 {
		return fail("address.imd_decile", "decile %d outside 1..10", addr.IMDDecile)
	}
	return nil
}

// checkBodyFit verifies the sampled count is one of the labels the body
// type's table row supports.
func checkBodyFit(env *Env, field, table string, body quote.BodyType, got int, fail func(string, string, ...any) error) error {
	row, err := env.Tables.Categorical(table).Query(dist.K(string(body)))
	if err != nil {
		return err
	}
	if row.Weight(strconv.Itoa(got)) == 0 {
		return fail(field, "%d not offered for body type %q", got, body)
	}
	return nil
}
