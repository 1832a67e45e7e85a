// Package quote defines the synthetic motor-insurance quote record produced
// by the generation engine, together with the enumerated field vocabularies
// shared by generators, sinks, and renderers.
package quote

import "time"

// Sex identifies the proposer or named driver sex as recorded on the licence.
type Sex string

// Licence-holder sexes recognised by the calibration tables.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// MaritalStatus enumerates the marital statuses carried on a quote.
type MaritalStatus string

// Marital statuses; living_with_partner is a quote-schema value the
// population tables do not carry directly, assigned during generation.
const (
	MaritalSingle            MaritalStatus = "single"
	MaritalMarried           MaritalStatus = "married"
	MaritalCivilPartnership  MaritalStatus = "civil_partnership"
	MaritalDivorced          MaritalStatus = "divorced"
	MaritalSeparated         MaritalStatus = "separated"
	MaritalWidowed           MaritalStatus = "widowed"
	MaritalLivingWithPartner MaritalStatus = "living_with_partner"
)

// Title is the salutation sampled conditionally on sex and marital status.
type Title string

const (
	TitleMr   Title = "mr"
	TitleMrs  Title = "mrs"
	TitleMiss Title = "miss"
	TitleMs   Title = "ms"
	TitleDr   Title = "dr"
)

// EmploymentStatus enumerates proposer employment states.
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentStudentFull  EmploymentStatus = "student_full_time"
	EmploymentStudentPart  EmploymentStatus = "student_part_time"
	EmploymentHousePerson  EmploymentStatus = "house_person"
	EmploymentRetired      EmploymentStatus = "retired"
	EmploymentVoluntary    EmploymentStatus = "voluntary_work"
	EmploymentDisability   EmploymentStatus = "not_employed_due_to_disability"
)

// LicenceType distinguishes full from provisional UK driving licences.
type LicenceType string

const (
	LicenceFull        LicenceType = "full"
	LicenceProvisional LicenceType = "provisional"
)

// FuelType enumerates vehicle fuel categories.
type FuelType string

const (
	FuelPetrol       FuelType = "petrol"
	FuelDiesel       FuelType = "diesel"
	FuelElectric     FuelType = "electric"
	FuelHybrid       FuelType = "hybrid"
	FuelPluginHybrid FuelType = "plug_in_hybrid"
)

// BodyType enumerates vehicle body shapes used for door/seat conditioning.
type BodyType string

const (
	BodyHatchback   BodyType = "hatchback"
	BodySaloon      BodyType = "saloon"
	BodyEstate      BodyType = "estate"
	BodySUV         BodyType = "suv"
	BodyCoupe       BodyType = "coupe"
	BodyConvertible BodyType = "convertible"
	BodyMPV         BodyType = "mpv"
	BodyPickup      BodyType = "pickup"
	BodyVan         BodyType = "van"
	BodyOther       BodyType = "other"
)

// AlarmType records how the vehicle alarm was fitted, if at all.
type AlarmType string

const (
	AlarmNone        AlarmType = "none"
	AlarmFactory     AlarmType = "factory"
	AlarmAftermarket AlarmType = "aftermarket"
)

// CoverType enumerates the policy cover levels.
type CoverType string

const (
	CoverComprehensive CoverType = "comprehensive"
	CoverTPFT          CoverType = "third_party_fire_and_theft"
	CoverTPO           CoverType = "third_party_only"
)

// PaymentFrequency enumerates premium payment schedules.
type PaymentFrequency string

const (
	PayAnnual  PaymentFrequency = "annual"
	PayMonthly PaymentFrequency = "monthly"
)

// ClassOfUse enumerates permitted vehicle use classes.
type ClassOfUse string

const (
	UseSocialOnly      ClassOfUse = "social_only"
	UseSocialCommuting ClassOfUse = "social_commuting"
	UseBusiness        ClassOfUse = "business"
)

// ClaimType enumerates prior-claim categories.
type ClaimType string

const (
	ClaimAccident       ClaimType = "accident"
	ClaimWindscreen     ClaimType = "windscreen"
	ClaimTheft          ClaimType = "theft"
	ClaimVandalism      ClaimType = "vandalism"
	ClaimStormFlood     ClaimType = "storm_flood"
	ClaimPersonalInjury ClaimType = "personal_injury"
	ClaimFire           ClaimType = "fire"
	ClaimOther          ClaimType = "other"
)

// FaultStatus records the fault determination of a prior claim.
type FaultStatus string

const (
	FaultAtFault    FaultStatus = "at_fault"
	FaultNotAtFault FaultStatus = "not_at_fault"
	FaultPending    FaultStatus = "pending"
)

// Channel identifies where the quote request originated.
type Channel string

// Distribution channels; the four aggregators carry reference prefixes.
const (
	ChannelCompareTheMarket Channel = "compare_the_market"
	ChannelMoneySupermarket Channel = "moneysupermarket"
	ChannelConfused         Channel = "confused"
	ChannelGoCompare        Channel = "gocompare"
	ChannelDirectWeb        Channel = "direct_web"
	ChannelDirectPhone      Channel = "direct_phone"
	ChannelBroker           Channel = "broker"
)

// Relationship enumerates named-driver relationships to the proposer.
type Relationship string

const (
	RelationSpouse      Relationship = "spouse"
	RelationPartner     Relationship = "partner"
	RelationChild       Relationship = "child"
	RelationParent      Relationship = "parent"
	RelationSibling     Relationship = "sibling"
	RelationFriend      Relationship = "friend"
	RelationOtherFamily Relationship = "other_family"
)

// AddOnCode enumerates optional covers a proposer may attach to the policy.
type AddOnCode string

const (
	AddOnBreakdown        AddOnCode = "breakdown_cover"
	AddOnLegalExpenses    AddOnCode = "legal_expenses"
	AddOnMotorLegal       AddOnCode = "motor_legal_protection"
	AddOnKeyCover         AddOnCode = "key_cover"
	AddOnCourtesyCar      AddOnCode = "courtesy_car"
	AddOnWindscreen       AddOnCode = "windscreen_cover"
	AddOnExcessProtect    AddOnCode = "excess_protection"
	AddOnNCDStepBack      AddOnCode = "no_claims_step_back"
	AddOnPersonalAccident AddOnCode = "personal_accident"
	AddOnBelongings       AddOnCode = "personal_belongings"
	AddOnToolsInTransit   AddOnCode = "tools_in_transit"
)

// BreakdownLevel enumerates breakdown-cover service tiers.
type BreakdownLevel string

const (
	BreakdownRoadside BreakdownLevel = "roadside"
	BreakdownNational BreakdownLevel = "national_recovery"
	BreakdownEuropean BreakdownLevel = "european"
)

// Licence describes the driving licence held by a proposer or named driver.
type Licence struct {
	Type        LicenceType `json:"type"`
	YearsHeld   int         `json:"years_held"`
	Entitlement string      `json:"entitlement"`
}

// Proposer is the policyholder requesting the quote.
type Proposer struct {
	Title             Title            `json:"title"`
	FirstName         string           `json:"first_name"`
	LastName          string           `json:"last_name"`
	Sex               Sex              `json:"sex"`
	DateOfBirth       Date             `json:"date_of_birth"`
	Age               int              `json:"age"`
	MaritalStatus     MaritalStatus    `json:"marital_status"`
	Occupation        string           `json:"occupation"`
	SOCCode           string           `json:"soc_code,omitempty"`
	Employment        EmploymentStatus `json:"employment_status"`
	Homeowner         bool             `json:"homeowner"`
	MedicalConditions bool             `json:"has_medical_conditions"`
	Licence           Licence          `json:"licence"`
}

// Security describes the anti-theft equipment fitted to the vehicle.
type Security struct {
	Alarm       AlarmType `json:"alarm"`
	Immobiliser bool      `json:"immobiliser"`
	Tracker     bool      `json:"tracker"`
}

// Vehicle is the insured vehicle.
type Vehicle struct {
	Make             string   `json:"make"`
	Model            string   `json:"model"`
	FuelType         FuelType `json:"fuel_type"`
	BodyType         BodyType `json:"body_type"`
	Doors            int      `json:"doors"`
	Seats            int      `json:"seats"`
	FirstRegistered  int      `json:"first_registered_year"`
	EngineCC         int      `json:"engine_cc,omitempty"`
	EstimatedValue   int      `json:"estimated_value_gbp"`
	OdometerMiles    int      `json:"odometer_miles"`
	InsuranceGroup   int      `json:"insurance_group"`
	RegistrationMark string   `json:"registration_mark"`
	Modifications    []string `json:"modifications"`
	Security         Security `json:"security"`
}

// Usage captures how and where the vehicle is used and kept.
type Usage struct {
	ClassOfUse        ClassOfUse `json:"class_of_use"`
	AnnualMileage     int        `json:"annual_mileage"`
	OvernightLocation string     `json:"overnight_location"`
	DaytimeLocation   string     `json:"daytime_location"`
}

// Policy carries the requested cover terms.
type Policy struct {
	CoverType        CoverType        `json:"cover_type"`
	CoverStart       Date             `json:"cover_start_date"`
	CoverEnd         Date             `json:"cover_end_date"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency"`
	VoluntaryExcess  int              `json:"voluntary_excess_gbp"`
	NCDYears         int              `json:"ncd_years"`
	PreviousInsurer  string           `json:"previous_insurer,omitempty"`
	Usage            Usage            `json:"usage"`
}

// Claim is a prior claim disclosed on the quote.
type Claim struct {
	Date        Date        `json:"date"`
	Type        ClaimType   `json:"type"`
	Fault       FaultStatus `json:"fault"`
	AmountGBP   int         `json:"amount_gbp"`
	NCDAffected bool        `json:"ncd_affected"`
	Settled     bool        `json:"settled"`
}

// Conviction is a prior motoring conviction disclosed on the quote. Points,
// fine, and ban duration are fixed properties of the offence code.
type Conviction struct {
	Date      Date   `json:"date"`
	Code      string `json:"code"`
	Points    int    `json:"penalty_points"`
	FineGBP   int    `json:"fine_gbp"`
	BanMonths int    `json:"ban_months"`
}

// NamedDriver is an additional driver on the policy.
type NamedDriver struct {
	Relationship  Relationship  `json:"relationship"`
	Title         Title         `json:"title"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Sex           Sex           `json:"sex"`
	DateOfBirth   Date          `json:"date_of_birth"`
	Age           int           `json:"age"`
	MaritalStatus MaritalStatus `json:"marital_status"`
	Occupation    string        `json:"occupation"`
	Licence       Licence       `json:"licence"`
}

// AddOns is the optional-cover selection attached to the policy.
type AddOns struct {
	Selected       []AddOnCode    `json:"selected"`
	BreakdownLevel BreakdownLevel `json:"breakdown_level,omitempty"`
}

// Address is the proposer's home address, consistent with the sampled
// geography (postcode, region, urban flag, deprivation decile).
type Address struct {
	HouseNumber int    `json:"house_number"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	Region      string `json:"region"`
	Urban       bool   `json:"is_urban"`
	IMDDecile   int    `json:"imd_decile"`
}

// Metadata carries quote provenance. RecordIndex and RootSeed identify the
// exact substreams that produced the record, so any group can be regenerated
// in isolation.
type Metadata struct {
	QuoteID       string    `json:"quote_id"`
	Channel       Channel   `json:"channel"`
	AggregatorRef string    `json:"aggregator_reference,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	RecordIndex   uint64    `json:"record_index"`
	RootSeed      uint64    `json:"root_seed"`
}

// Quote is one complete synthetic quote record. Quotes are immutable once
// assembled; generators build them group by group and the assembler seals
// and validates the result.
type Quote struct {
	Metadata     Metadata      `json:"metadata"`
	Proposer     Proposer      `json:"proposer"`
	Vehicle      Vehicle       `json:"vehicle"`
	Policy       Policy        `json:"policy"`
	Claims       []Claim       `json:"claims"`
	Convictions  []Conviction  `json:"convictions"`
	NamedDrivers []NamedDriver `json:"named_drivers"`
	AddOns       AddOns        `json:"add_ons"`
	Address      Address       `json:"address"`
}

// AddOnCodes lists every add-on in canonical order. Generators iterate this
// order so records are reproducible.
func AddOnCodes() []AddOnCode {
	return []AddOnCode{
		AddOnBreakdown,
		AddOnLegalExpenses,
		AddOnMotorLegal,
		AddOnKeyCover,
		AddOnCourtesyCar,
		AddOnWindscreen,
		AddOnExcessProtect,
		AddOnNCDStepBack,
		AddOnPersonalAccident,
		AddOnBelongings,
		AddOnToolsInTransit,
	}
}

// IsAggregator reports whether the channel is a price-comparison site whose
// quotes carry an aggregator reference.
func (c Channel) IsAggregator() bool {
	switch c {
	case ChannelCompareTheMarket, ChannelMoneySupermarket, ChannelConfused, ChannelGoCompare:
		return true
	}
	return false
}

// Prefix returns the aggregator reference prefix for the channel, or the
// empty string for direct channels.
func (c Channel) Prefix() string {
	switch c {
	case ChannelCompareTheMarket:
		return "CTM"
	case ChannelMoneySupermarket:
		return "MSM"
	case ChannelConfused:
		return "CON"
	case ChannelGoCompare:
		return "GCO"
	}
	return ""
}
