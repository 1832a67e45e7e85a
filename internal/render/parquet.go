package render

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"quotesynth/pkg/quote"
)

// parquetFlushRows is how many buffered rows become one Parquet row group.
const parquetFlushRows = 4096

// parquetSchema mirrors coreColumns; the column names and order must stay
// identical so CSV and Parquet artifacts describe the same projection.
var parquetSchema = arrow.NewSchema([]arrow.Field{
	{Name: "record_index", Type: arrow.PrimitiveTypes.Uint64},
	{Name: "quote_id", Type: arrow.BinaryTypes.String},
	{Name: "root_seed", Type: arrow.PrimitiveTypes.Uint64},
	{Name: "channel", Type: arrow.BinaryTypes.String},
	{Name: "aggregator_reference", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "created_at", Type: &arrow.TimestampType{Unit: arrow.Millisecond}},
	{Name: "title", Type: arrow.BinaryTypes.String},
	{Name: "first_name", Type: arrow.BinaryTypes.String},
	{Name: "last_name", Type: arrow.BinaryTypes.String},
	{Name: "sex", Type: arrow.BinaryTypes.String},
	{Name: "date_of_birth", Type: arrow.BinaryTypes.String},
	{Name: "age", Type: arrow.PrimitiveTypes.Int32},
	{Name: "marital_status", Type: arrow.BinaryTypes.String},
	{Name: "employment_status", Type: arrow.BinaryTypes.String},
	{Name: "occupation", Type: arrow.BinaryTypes.String},
	{Name: "soc_code", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "licence_type", Type: arrow.BinaryTypes.String},
	{Name: "licence_years_held", Type: arrow.PrimitiveTypes.Int32},
	{Name: "homeowner", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "medical_conditions", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "region", Type: arrow.BinaryTypes.String},
	{Name: "city", Type: arrow.BinaryTypes.String},
	{Name: "postcode", Type: arrow.BinaryTypes.String},
	{Name: "is_urban", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "imd_decile", Type: arrow.PrimitiveTypes.Int32},
	{Name: "vehicle_make", Type: arrow.BinaryTypes.String},
	{Name: "vehicle_model", Type: arrow.BinaryTypes.String},
	{Name: "fuel_type", Type: arrow.BinaryTypes.String},
	{Name: "body_type", Type: arrow.BinaryTypes.String},
	{Name: "engine_cc", Type: arrow.PrimitiveTypes.Int32},
	{Name: "first_registered_year", Type: arrow.PrimitiveTypes.Int32},
	{Name: "estimated_value_gbp", Type: arrow.PrimitiveTypes.Int64},
	{Name: "odometer_miles", Type: arrow.PrimitiveTypes.Int64},
	{Name: "insurance_group", Type: arrow.PrimitiveTypes.Int32},
	{Name: "registration_mark", Type: arrow.BinaryTypes.String},
	{Name: "doors", Type: arrow.PrimitiveTypes.Int32},
	{Name: "seats", Type: arrow.PrimitiveTypes.Int32},
	{Name: "modification_count", Type: arrow.PrimitiveTypes.Int32},
	{Name: "cover_type", Type: arrow.BinaryTypes.String},
	{Name: "cover_start_date", Type: arrow.BinaryTypes.String},
	{Name: "cover_end_date", Type: arrow.BinaryTypes.String},
	{Name: "payment_frequency", Type: arrow.BinaryTypes.String},
	{Name: "voluntary_excess_gbp", Type: arrow.PrimitiveTypes.Int64},
	{Name: "ncd_years", Type: arrow.PrimitiveTypes.Int32},
	{Name: "previous_insurer", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "class_of_use", Type: arrow.BinaryTypes.String},
	{Name: "annual_mileage", Type: arrow.PrimitiveTypes.Int64},
	{Name: "overnight_location", Type: arrow.BinaryTypes.String},
	{Name: "daytime_location", Type: arrow.BinaryTypes.String},
	{Name: "claim_count", Type: arrow.PrimitiveTypes.Int32},
	{Name: "conviction_count", Type: arrow.PrimitiveTypes.Int32},
	{Name: "named_driver_count", Type: arrow.PrimitiveTypes.Int32},
	{Name: "add_on_count", Type: arrow.PrimitiveTypes.Int32},
	{Name: "breakdown_level", Type: arrow.BinaryTypes.String, Nullable: true},
}, nil)

// ParquetWriter renders the core-column projection as a Parquet file, one
// row group per parquetFlushRows records.
type ParquetWriter struct {
	fw      *pqarrow.FileWriter
	builder *array.RecordBuilder
	rows    int
}

// NewParquetWriter builds a Parquet writer over w.
func NewParquetWriter(w io.Writer) (*ParquetWriter, error) {
	mem := memory.NewGoAllocator()
	fw, err := pqarrow.NewFileWriter(parquetSchema, w, nil, pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(mem)))
	if err != nil {
		return nil, err
	}
	return &ParquetWriter{
		fw:      fw,
		builder: array.NewRecordBuilder(mem, parquetSchema),
	}, nil
}

// Write buffers one record, flushing a row group when the buffer fills.
func (p *ParquetWriter) Write(q quote.Quote) error {
	p.appendRow(q)
	p.rows++
	if p.rows >= parquetFlushRows {
		return p.flush()
	}
	return nil
}

// Close flushes the final row group and writes the file footer.
func (p *ParquetWriter) Close() error {
	if err := p.flush(); err != nil {
		return err
	}
	p.builder.Release()
	return p.fw.Close()
}

func (p *ParquetWriter) flush() error {
	if p.rows == 0 {
		return nil
	}
	rec := p.builder.NewRecord()
	defer rec.Release()
	p.rows = 0
	return p.fw.Write(rec)
}

// appendRow pushes the record's columns in schema order. The cursor-based
// helpers keep this aligned with flattenRow.
func (p *ParquetWriter) appendRow(q quote.Quote) {
	i := 0
	next := func() array.Builder {
		f := p.builder.Field(i)
		i++
		return f
	}
	str := func(v string) { next().(*array.StringBuilder).Append(v) }
	optStr := func(v string) {
		b := next().(*array.StringBuilder)
		if v == "" {
			b.AppendNull()
		} else {
			b.Append(v)
		}
	}
	i32 := func(v int) { next().(*array.Int32Builder).Append(int32(v)) }
	i64 := func(v int) { next().(*array.Int64Builder).Append(int64(v)) }
	u64 := func(v uint64) { next().(*array.Uint64Builder).Append(v) }
	boolean := func(v bool) { next().(*array.BooleanBuilder).Append(v) }

	pr := q.Proposer
	v := q.Vehicle
	pol := q.Policy
	md := q.Metadata
	addr := q.Address

	u64(md.RecordIndex)
	str(md.QuoteID)
	u64(md.RootSeed)
	str(string(md.Channel))
	optStr(md.AggregatorRef)
	next().(*array.TimestampBuilder).Append(arrow.Timestamp(md.CreatedAt.UnixMilli()))
	str(string(pr.Title))
	str(pr.FirstName)
	str(pr.LastName)
	str(string(pr.Sex))
	str(pr.DateOfBirth.String())
	i32(pr.Age)
	str(string(pr.MaritalStatus))
	str(string(pr.Employment))
	str(pr.Occupation)
	optStr(pr.SOCCode)
	str(string(pr.Licence.Type))
	i32(pr.Licence.YearsHeld)
	boolean(pr.Homeowner)
	boolean(pr.MedicalConditions)
	str(addr.Region)
	str(addr.City)
	str(addr.Postcode)
	boolean(addr.Urban)
	i32(addr.IMDDecile)
	str(v.Make)
	str(v.Model)
	str(string(v.FuelType))
	str(string(v.BodyType))
	i32(v.EngineCC)
	i32(v.FirstRegistered)
	i64(v.EstimatedValue)
	i64(v.OdometerMiles)
	i32(v.InsuranceGroup)
	str(v.RegistrationMark)
	i32(v.Doors)
	i32(v.Seats)
	i32(len(v.Modifications))
	str(string(pol.CoverType))
	str(pol.CoverStart.String())
	str(pol.CoverEnd.String())
	str(string(pol.PaymentFrequency))
	i64(pol.VoluntaryExcess)
	i32(pol.NCDYears)
	optStr(pol.PreviousInsurer)
	str(string(pol.Usage.ClassOfUse))
	i64(pol.Usage.AnnualMileage)
	str(pol.Usage.OvernightLocation)
	str(pol.Usage.DaytimeLocation)
	i32(len(q.Claims))
	i32(len(q.Convictions))
	i32(len(q.NamedDrivers))
	i32(len(q.AddOns.Selected))
	optStr(string(q.AddOns.BreakdownLevel))
}
