package render

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"quotesynth/pkg/quote"
)

// coreColumns is the flattened analytic projection of a quote record. Nested
// collections are reduced to counts; the JSON formats keep full fidelity.
// The Parquet schema mirrors this list, name for name and in order.
var coreColumns = []string{
	"record_index",
	"quote_id",
	"root_seed",
	"channel",
	"aggregator_reference",
	"created_at",
	"title",
	"first_name",
	"last_name",
	"sex",
	"date_of_birth",
	"age",
	"marital_status",
	"employment_status",
	"occupation",
	"soc_code",
	"licence_type",
	"licence_years_held",
	"homeowner",
	"medical_conditions",
	"region",
	"city",
	"postcode",
	"is_urban",
	"imd_decile",
	"vehicle_make",
	"vehicle_model",
	"fuel_type",
	"body_type",
	"engine_cc",
	"first_registered_year",
	"estimated_value_gbp",
	"odometer_miles",
	"insurance_group",
	"registration_mark",
	"doors",
	"seats",
	"modification_count",
	"cover_type",
	"cover_start_date",
	"cover_end_date",
	"payment_frequency",
	"voluntary_excess_gbp",
	"ncd_years",
	"previous_insurer",
	"class_of_use",
	"annual_mileage",
	"overnight_location",
	"daytime_location",
	"claim_count",
	"conviction_count",
	"named_driver_count",
	"add_on_count",
	"breakdown_level",
}

// CSVWriter renders the core-column projection, header first.
type CSVWriter struct {
	cw          *csv.Writer
	wroteHeader bool
}

// NewCSVWriter wraps w in a CSV encoder.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{cw: csv.NewWriter(w)}
}

// Write appends one flattened record, emitting the header row first.
func (c *CSVWriter) Write(q quote.Quote) error {
	if !c.wroteHeader {
		if err := c.cw.Write(coreColumns); err != nil {
			return err
		}
		c.wroteHeader = true
	}
	return c.cw.Write(flattenRow(q))
}

// Close flushes buffered rows. An empty batch still gets the header.
func (c *CSVWriter) Close() error {
	if !c.wroteHeader {
		if err := c.cw.Write(coreColumns); err != nil {
			return err
		}
		c.wroteHeader = true
	}
	c.cw.Flush()
	return c.cw.Error()
}

func flattenRow(q quote.Quote) []string {
	p := q.Proposer
	v := q.Vehicle
	pol := q.Policy
	md := q.Metadata
	addr := q.Address
	return []string{
		strconv.FormatUint(md.RecordIndex, 10),
		md.QuoteID,
		strconv.FormatUint(md.RootSeed, 10),
		string(md.Channel),
		md.AggregatorRef,
		md.CreatedAt.Format(time.RFC3339),
		string(p.Title),
		p.FirstName,
		p.LastName,
		string(p.Sex),
		p.DateOfBirth.String(),
		strconv.Itoa(p.Age),
		string(p.MaritalStatus),
		string(p.Employment),
		p.Occupation,
		p.SOCCode,
		string(p.Licence.Type),
		strconv.Itoa(p.Licence.YearsHeld),
		strconv.FormatBool(p.Homeowner),
		strconv.FormatBool(p.MedicalConditions),
		addr.Region,
		addr.City,
		addr.Postcode,
		strconv.FormatBool(addr.Urban),
		strconv.Itoa(addr.IMDDecile),
		v.Make,
		v.Model,
		string(v.FuelType),
		string(v.BodyType),
		strconv.Itoa(v.EngineCC),
		strconv.Itoa(v.FirstRegistered),
		strconv.Itoa(v.EstimatedValue),
		strconv.Itoa(v.OdometerMiles),
		strconv.Itoa(v.InsuranceGroup),
		v.RegistrationMark,
		strconv.Itoa(v.Doors),
		strconv.Itoa(v.Seats),
		strconv.Itoa(len(v.Modifications)),
		string(pol.CoverType),
		pol.CoverStart.String(),
		pol.CoverEnd.String(),
		string(pol.PaymentFrequency),
		strconv.Itoa(pol.VoluntaryExcess),
		strconv.Itoa(pol.NCDYears),
		pol.PreviousInsurer,
		string(pol.Usage.ClassOfUse),
		strconv.Itoa(pol.Usage.AnnualMileage),
		pol.Usage.OvernightLocation,
		pol.Usage.DaytimeLocation,
		strconv.Itoa(len(q.Claims)),
		strconv.Itoa(len(q.Convictions)),
		strconv.Itoa(len(q.NamedDrivers)),
		strconv.Itoa(len(q.AddOns.Selected)),
		string(q.AddOns.BreakdownLevel),
	}
}
