// Command calibration-check validates a calibration pack against the
// generators' conditioning-key space. It derives every key a generation run
// can construct (region labels, band labels, sampled outcome labels that
// feed later lookups) and verifies each resolves through the pack's tables
// or their fallback chains, so coverage gaps surface before a batch does.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/generate"
	"quotesynth/pkg/quote"
)

var exitFunc = os.Exit

func main() {
	exitFunc(cli(os.Args[1:], os.Stdout, os.Stderr))
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calibration-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var packPath string
	fs.StringVar(&packPath, "pack", "", "SQLite calibration pack path (default built-in pack)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	report, err := run(packPath)
	if err != nil {
		fmt.Fprintf(stderr, "Calibration check failed: %v\n", err)
		return 1
	}
	if len(report.issues) > 0 {
		for _, issue := range report.issues {
			fmt.Fprintln(stderr, issue)
		}
		fmt.Fprintf(stderr, "Calibration check failed: %d gap(s).\n", len(report.issues))
		return 1
	}
	fmt.Fprintf(stdout, "Calibration check passed: %d lookups across %d tables.\n",
		report.checked, len(calibration.RegistryNames()))
	return 0
}

func run(packPath string) (*checker, error) {
	set := calibration.Builtin()
	if packPath != "" {
		loaded, err := calibration.LoadSQLite(packPath)
		if err != nil {
			return nil, err
		}
		set = loaded
	}
	c := &checker{set: set}
	c.checkAll()
	return c, nil
}

type checker struct {
	set     *calibration.Set
	issues  []string
	checked int
}

func (c *checker) report(format string, args ...any) {
	c.issues = append(c.issues, fmt.Sprintf(format, args...))
}

// categorical resolves a key and returns the row for label harvesting. The
// zero distribution comes back on a gap, already reported.
func (c *checker) categorical(table string, key dist.Key) (dist.Categorical, bool) {
	c.checked++
	row, err := c.set.Categorical(table).Query(key)
	if err != nil {
		c.report("%v", err)
		return dist.Categorical{}, false
	}
	return row, true
}

func (c *checker) rate(table string, key dist.Key) {
	c.checked++
	if _, err := c.set.Rates(table).Query(key); err != nil {
		c.report("%v", err)
	}
}

func (c *checker) param(table string, key dist.Key) {
	c.checked++
	if _, err := c.set.Params(table).Query(key); err != nil {
		c.report("%v", err)
	}
}

// labels resolves an unconditioned table and returns its outcome labels.
func (c *checker) labels(table string) []string {
	row, ok := c.categorical(table, dist.K())
	if !ok {
		return nil
	}
	return row.Labels()
}

// outcomeUnion collects the distinct outcome labels across every row of a
// conditioned table. Downstream lookups key on sampled outcomes, so the
// union is the full key space a run can feed them.
func (c *checker) outcomeUnion(table string) []string {
	t := c.set.Categorical(table)
	seen := map[string]struct{}{}
	for _, key := range t.Keys() {
		row, err := t.Query(key)
		if err != nil {
			c.report("%v", err)
			continue
		}
		for _, label := range row.Labels() {
			seen[label] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func (c *checker) checkAll() {
	areaKinds := []string{"rural", "urban"}
	commuteKinds := []string{"commuting", "no_commuting"}
	driverGroups := []string{"partnered", "solo"}

	// Unconditioned tables double as the label spaces conditioned lookups
	// are keyed by.
	regions := c.labels(calibration.TableRegion)
	sexes := c.labels(calibration.TableSex)
	claimTypes := c.labels(calibration.TableClaimType)
	convictionCodes := c.labels(calibration.TableConvictionCode)
	vehicleSlugs := c.labels(calibration.TableVehicleModel)
	c.labels(calibration.TableSurname)
	c.labels(calibration.TableLicencePassDelay)
	c.labels(calibration.TableVehicleAge)
	c.labels(calibration.TableModificationType)
	c.labels(calibration.TableCoverType)
	c.labels(calibration.TablePaymentFrequency)
	c.labels(calibration.TableVoluntaryExcess)
	c.labels(calibration.TablePreviousInsurer)
	c.labels(calibration.TableConvictionCount)
	c.labels(calibration.TableBreakdownLevel)
	c.labels(calibration.TableChannel)
	c.rate(calibration.TableModificationRate, dist.K())

	for _, region := range regions {
		c.categorical(calibration.TablePostcodeArea, dist.K(region))
		c.categorical(calibration.TableCity, dist.K(region))
		c.rate(calibration.TableUrbanRate, dist.K(region))
	}
	for _, kind := range areaKinds {
		c.categorical(calibration.TableIMDDecile, dist.K(kind))
		c.categorical(calibration.TableOvernightLoc, dist.K(kind))
	}
	for _, kind := range commuteKinds {
		c.categorical(calibration.TableDaytimeLoc, dist.K(kind))
	}

	for _, sex := range sexes {
		c.categorical(calibration.TableAge, dist.K(sex))
		c.categorical(calibration.TableFirstName, dist.K(sex))
		c.categorical(calibration.TableOccupation, dist.K(sex))
		for _, band := range calibration.MaritalBands.Labels() {
			c.categorical(calibration.TableMaritalStatus, dist.K(sex, band))
		}
		for _, band := range calibration.ConvictionBands.Labels() {
			c.rate(calibration.TableConvictionRate, dist.K(band, sex))
		}
	}

	maritals := c.outcomeUnion(calibration.TableMaritalStatus)
	for _, marital := range maritals {
		c.categorical(calibration.TableRelationship, dist.K(marital))
		for _, sex := range sexes {
			c.categorical(calibration.TableTitle, dist.K(sex, marital))
		}
	}

	for _, band := range calibration.EmploymentBands.Labels() {
		c.categorical(calibration.TableEmployment, dist.K(band))
	}
	for _, band := range calibration.LicenceBands.Labels() {
		c.categorical(calibration.TableLicenceType, dist.K(band))
	}
	for _, band := range calibration.HomeownerBands.Labels() {
		c.rate(calibration.TableHomeownerRate, dist.K(band))
	}
	for _, band := range calibration.MedicalBands.Labels() {
		c.rate(calibration.TableMedicalRate, dist.K(band))
	}
	for _, band := range calibration.NCDBands.Labels() {
		c.categorical(calibration.TableNCDYears, dist.K(band))
	}

	for _, employment := range c.outcomeUnion(calibration.TableEmployment) {
		c.categorical(calibration.TableClassOfUse, dist.K(employment))
	}
	for _, group := range driverGroups {
		c.categorical(calibration.TableNamedDriverCount, dist.K(group))
	}

	for _, claimType := range claimTypes {
		c.categorical(calibration.TableClaimFault, dist.K(claimType))
		c.param(calibration.TableClaimAmount, dist.K(claimType))
	}

	c.checkVehicles(vehicleSlugs)

	for _, band := range calibration.VehicleAgeBands.Labels() {
		c.rate(calibration.TableAlarmRate, dist.K(band))
		c.rate(calibration.TableImmobiliserRate, dist.K(band))
	}
	for _, band := range calibration.ValueBands.Labels() {
		c.rate(calibration.TableTrackerRate, dist.K(band))
	}
	for _, code := range quote.AddOnCodes() {
		c.rate(calibration.TableAddOnRate, dist.K(string(code)))
	}

	for _, code := range convictionCodes {
		c.checked++
		if _, ok := generate.PenaltyFor(code); !ok {
			c.report("conviction code %q has no penalty profile", code)
		}
	}
	c.checkOccupations(sexes)
}

// checkVehicles resolves every sampleable slug to its spec row and verifies
// the body-derived lookups for each distinct body type.
func (c *checker) checkVehicles(slugs []string) {
	bodies := map[string]struct{}{}
	for _, slug := range slugs {
		c.checked++
		spec, ok := c.set.Vehicle(slug)
		if !ok {
			c.report("vehicle slug %q has no spec row", slug)
			continue
		}
		bodies[spec.Body] = struct{}{}
	}
	sorted := make([]string, 0, len(bodies))
	for body := range bodies {
		sorted = append(sorted, body)
	}
	sort.Strings(sorted)
	for _, body := range sorted {
		c.categorical(calibration.TableVehicleDoors, dist.K(body))
		c.categorical(calibration.TableVehicleSeats, dist.K(body))
	}
}

func (c *checker) checkOccupations(sexes []string) {
	seen := map[string]struct{}{}
	for _, sex := range sexes {
		row, ok := c.categorical(calibration.TableOccupation, dist.K(sex))
		if !ok {
			continue
		}
		for _, code := range row.Labels() {
			seen[code] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(seen))
	for code := range seen {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)
	for _, code := range sorted {
		c.checked++
		if _, ok := c.set.OccupationTitle(code); !ok {
			c.report("occupation code %q has no title", code)
		}
	}
}
