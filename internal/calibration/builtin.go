package calibration

import (
	"math"
	"strconv"

	"quotesynth/internal/dist"
)

// Builtin returns the distribution pack compiled into the binary. The values
// are calibration snapshots of the UK motor book: licence-holder demographics,
// population vehicle mix, claim and conviction experience, and market-share
// style assumption tables. A SQLite pack from the data pipeline can override
// any table by name; see LoadSQLite.
func Builtin() *Set {
	s := &Set{
		categorical: make(map[string]*dist.CategoricalTable),
		params:      make(map[string]*dist.ParamTable),
		rates:       make(map[string]*dist.Table[float64]),
		curves:      make(map[string]dist.Curve),
		vehicles:    make(map[string]VehicleSpec),
		occupations: make(map[string]string),
	}
	s.addGeography()
	s.addDemographics()
	s.addNames()
	s.addOccupations()
	s.addVehicles()
	s.addPolicy()
	s.addClaims()
	s.addConvictions()
	s.addHousehold()
	if err := s.validate(); err != nil {
		panic("calibration: built-in pack invalid: " + err.Error())
	}
	return s
}

func (s *Set) putCategorical(name string, key dist.Key, weights map[string]float64) {
	t, ok := s.categorical[name]
	if !ok {
		spec := registry[name]
		t = dist.NewTable[dist.Categorical](name, spec.Arity, spec.Masks...)
		s.categorical[name] = t
	}
	t.Put(key, dist.MustCategorical(weights))
}

func (s *Set) putParam(name string, key dist.Key, p dist.Param) {
	t, ok := s.params[name]
	if !ok {
		spec := registry[name]
		t = dist.NewTable[dist.Param](name, spec.Arity, spec.Masks...)
		s.params[name] = t
	}
	t.Put(key, p)
}

func (s *Set) putRate(name string, key dist.Key, rate float64) {
	t, ok := s.rates[name]
	if !ok {
		spec := registry[name]
		t = dist.NewTable[float64](name, spec.Arity, spec.Masks...)
		s.rates[name] = t
	}
	t.Put(key, rate)
}

func (s *Set) putCurve(name string, points []dist.Point) {
	s.curves[name] = dist.MustCurve(points)
}

// regionCities mirrors the simplified region to city lookup used for
// addresses.
var regionCities = map[string][]string{
	"London":                   {"London"},
	"South East":               {"Brighton", "Reading", "Southampton", "Oxford", "Canterbury", "Guildford", "Maidstone", "Portsmouth"},
	"South West":               {"Bristol", "Plymouth", "Exeter", "Bath", "Bournemouth", "Gloucester", "Swindon", "Taunton"},
	"East of England":          {"Norwich", "Cambridge", "Ipswich", "Colchester", "Chelmsford", "Peterborough", "Luton", "Watford"},
	"East Midlands":            {"Nottingham", "Leicester", "Derby", "Lincoln", "Northampton", "Mansfield"},
	"West Midlands":            {"Birmingham", "Coventry", "Wolverhampton", "Stoke-on-Trent", "Worcester", "Hereford"},
	"Yorkshire and The Humber": {"Leeds", "Sheffield", "Bradford", "York", "Hull", "Doncaster", "Huddersfield"},
	"North West":               {"Manchester", "Liverpool", "Preston", "Bolton", "Blackpool", "Chester", "Warrington"},
	"North East":               {"Newcastle upon Tyne", "Sunderland", "Durham", "Middlesbrough", "Darlington"},
	"Wales":                    {"Cardiff", "Swansea", "Newport", "Wrexham", "Bangor", "Aberystwyth"},
	"Scotland":                 {"Edinburgh", "Glasgow", "Aberdeen", "Dundee", "Inverness", "Stirling", "Perth"},
	"Northern Ireland":         {"Belfast", "Derry", "Lisburn", "Newry", "Bangor"},
}

func (s *Set) addGeography() {
	s.putCategorical(TableRegion, dist.K(), map[string]float64{
		"London": 0.132, "South East": 0.138, "North West": 0.110,
		"Yorkshire and The Humber": 0.082, "East Midlands": 0.073,
		"West Midlands": 0.089, "East of England": 0.094, "South West": 0.085,
		"North East": 0.040, "Wales": 0.047, "Scotland": 0.082,
		"Northern Ireland": 0.028,
	})

	areas := map[string]map[string]float64{
		"London":                   {"E": 0.14, "N": 0.12, "NW": 0.12, "SE": 0.14, "SW": 0.14, "W": 0.12, "EC": 0.06, "WC": 0.04, "IG": 0.06, "CR": 0.06},
		"South East":               {"BN": 0.13, "RG": 0.13, "SO": 0.12, "OX": 0.11, "GU": 0.11, "ME": 0.10, "CT": 0.10, "PO": 0.10, "SL": 0.10},
		"South West":               {"BS": 0.18, "PL": 0.14, "EX": 0.14, "BA": 0.12, "BH": 0.14, "GL": 0.10, "SN": 0.10, "TA": 0.08},
		"East of England":          {"NR": 0.14, "CB": 0.13, "IP": 0.13, "CO": 0.12, "CM": 0.12, "PE": 0.13, "LU": 0.12, "SG": 0.11},
		"East Midlands":            {"NG": 0.24, "LE": 0.22, "DE": 0.18, "LN": 0.14, "NN": 0.22},
		"West Midlands":            {"B": 0.30, "CV": 0.20, "WV": 0.14, "ST": 0.14, "WR": 0.12, "HR": 0.10},
		"Yorkshire and The Humber": {"LS": 0.20, "S": 0.18, "BD": 0.14, "YO": 0.14, "HU": 0.14, "DN": 0.10, "HD": 0.10},
		"North West":               {"M": 0.24, "L": 0.20, "PR": 0.12, "BL": 0.10, "FY": 0.10, "CH": 0.12, "WA": 0.12},
		"North East":               {"NE": 0.34, "SR": 0.22, "DH": 0.18, "TS": 0.16, "DL": 0.10},
		"Wales":                    {"CF": 0.30, "SA": 0.24, "NP": 0.18, "LL": 0.16, "SY": 0.12},
		"Scotland":                 {"EH": 0.24, "G": 0.28, "AB": 0.16, "DD": 0.12, "IV": 0.10, "FK": 0.06, "PH": 0.04},
		"Northern Ireland":         {"BT": 1.0},
	}
	for region, weights := range areas {
		s.putCategorical(TablePostcodeArea, dist.K(region), weights)
	}
	s.putCategorical(TablePostcodeArea, dist.K(dist.Wildcard), map[string]float64{
		"B": 0.1, "M": 0.1, "LS": 0.1, "G": 0.1, "CF": 0.1,
		"E": 0.1, "BS": 0.1, "NG": 0.1, "NE": 0.1, "BN": 0.1,
	})

	for region, cities := range regionCities {
		weights := make(map[string]float64, len(cities))
		for _, city := range cities {
			weights[city] = 1
		}
		s.putCategorical(TableCity, dist.K(region), weights)
	}
	s.putCategorical(TableCity, dist.K(dist.Wildcard), map[string]float64{"London": 1})

	for region, rate := range map[string]float64{
		"London": 0.99, "South East": 0.78, "South West": 0.66,
		"East of England": 0.70, "East Midlands": 0.70, "West Midlands": 0.80,
		"Yorkshire and The Humber": 0.78, "North West": 0.85, "North East": 0.80,
		"Wales": 0.62, "Scotland": 0.70, "Northern Ireland": 0.60,
	} {
		s.putRate(TableUrbanRate, dist.K(region), rate)
	}
	s.putRate(TableUrbanRate, dist.K(dist.Wildcard), 0.80)

	s.putCategorical(TableIMDDecile, dist.K("urban"), map[string]float64{
		"1": 0.14, "2": 0.13, "3": 0.12, "4": 0.11, "5": 0.10,
		"6": 0.09, "7": 0.09, "8": 0.08, "9": 0.07, "10": 0.07,
	})
	s.putCategorical(TableIMDDecile, dist.K("rural"), map[string]float64{
		"1": 0.04, "2": 0.06, "3": 0.08, "4": 0.10, "5": 0.11,
		"6": 0.12, "7": 0.12, "8": 0.13, "9": 0.12, "10": 0.12,
	})
}

func (s *Set) addDemographics() {
	// Sex split of full licence holders.
	s.putCategorical(TableSex, dist.K(), map[string]float64{"male": 0.535, "female": 0.465})

	// Age weights derive from smoothed licence-holder curves so the age
	// categorical stays one row per year without a thousand-line literal.
	s.putCurve(CurveMaleAgeWeight, []dist.Point{
		{X: 17, Y: 0.0045}, {X: 19, Y: 0.0095}, {X: 21, Y: 0.0120}, {X: 23, Y: 0.0135},
		{X: 25, Y: 0.0145}, {X: 30, Y: 0.0158}, {X: 35, Y: 0.0162}, {X: 40, Y: 0.0165},
		{X: 45, Y: 0.0166}, {X: 50, Y: 0.0165}, {X: 55, Y: 0.0158}, {X: 60, Y: 0.0148},
		{X: 65, Y: 0.0135}, {X: 70, Y: 0.0118}, {X: 75, Y: 0.0095}, {X: 80, Y: 0.0062},
		{X: 85, Y: 0.0034}, {X: 90, Y: 0.0014}, {X: 95, Y: 0.0004}, {X: 100, Y: 0.0001},
	})
	s.putCurve(CurveFemaleAgeWeight, []dist.Point{
		{X: 17, Y: 0.0040}, {X: 19, Y: 0.0090}, {X: 21, Y: 0.0118}, {X: 23, Y: 0.0132},
		{X: 25, Y: 0.0142}, {X: 30, Y: 0.0156}, {X: 35, Y: 0.0160}, {X: 40, Y: 0.0164},
		{X: 45, Y: 0.0165}, {X: 50, Y: 0.0163}, {X: 55, Y: 0.0155}, {X: 60, Y: 0.0144},
		{X: 65, Y: 0.0128}, {X: 70, Y: 0.0108}, {X: 75, Y: 0.0082}, {X: 80, Y: 0.0050},
		{X: 85, Y: 0.0024}, {X: 90, Y: 0.0009}, {X: 95, Y: 0.0002}, {X: 100, Y: 0.00005},
	})
	for _, sex := range []string{"male", "female"} {
		curve := s.curves[CurveMaleAgeWeight]
		if sex == "female" {
			curve = s.curves[CurveFemaleAgeWeight]
		}
		weights := make(map[string]float64, 84)
		for age := 17; age <= 100; age++ {
			weights[strconv.Itoa(age)] = curve.At(float64(age))
		}
		s.putCategorical(TableAge, dist.K(sex), weights)
	}

	marital := map[string]map[string]map[string]float64{
		"male": {
			"16-20":  {"single": 0.985, "married": 0.010, "civil_partnership": 0.005},
			"20-25":  {"single": 0.920, "married": 0.065, "civil_partnership": 0.005, "divorced": 0.004, "separated": 0.004, "widowed": 0.002},
			"25-30":  {"single": 0.780, "married": 0.190, "civil_partnership": 0.010, "divorced": 0.010, "separated": 0.008, "widowed": 0.002},
			"30-35":  {"single": 0.550, "married": 0.400, "civil_partnership": 0.012, "divorced": 0.022, "separated": 0.014, "widowed": 0.002},
			"35-45":  {"single": 0.320, "married": 0.570, "civil_partnership": 0.012, "divorced": 0.070, "separated": 0.024, "widowed": 0.004},
			"45-55":  {"single": 0.170, "married": 0.630, "civil_partnership": 0.010, "divorced": 0.130, "separated": 0.045, "widowed": 0.015},
			"55-65":  {"single": 0.100, "married": 0.670, "civil_partnership": 0.008, "divorced": 0.150, "separated": 0.032, "widowed": 0.040},
			"65-75":  {"single": 0.060, "married": 0.700, "civil_partnership": 0.006, "divorced": 0.120, "separated": 0.019, "widowed": 0.095},
			"75-100": {"single": 0.040, "married": 0.620, "civil_partnership": 0.004, "divorced": 0.076, "separated": 0.010, "widowed": 0.250},
		},
		"female": {
			"16-20":  {"single": 0.975, "married": 0.018, "civil_partnership": 0.007},
			"20-25":  {"single": 0.880, "married": 0.100, "civil_partnership": 0.006, "divorced": 0.006, "separated": 0.006, "widowed": 0.002},
			"25-30":  {"single": 0.680, "married": 0.280, "civil_partnership": 0.010, "divorced": 0.016, "separated": 0.012, "widowed": 0.002},
			"30-35":  {"single": 0.440, "married": 0.500, "civil_partnership": 0.012, "divorced": 0.028, "separated": 0.018, "widowed": 0.002},
			"35-45":  {"single": 0.260, "married": 0.610, "civil_partnership": 0.012, "divorced": 0.082, "separated": 0.030, "widowed": 0.006},
			"45-55":  {"single": 0.130, "married": 0.640, "civil_partnership": 0.010, "divorced": 0.155, "separated": 0.045, "widowed": 0.020},
			"55-65":  {"single": 0.080, "married": 0.630, "civil_partnership": 0.008, "divorced": 0.170, "separated": 0.032, "widowed": 0.080},
			"65-75":  {"single": 0.050, "married": 0.580, "civil_partnership": 0.005, "divorced": 0.125, "separated": 0.015, "widowed": 0.225},
			"75-100": {"single": 0.040, "married": 0.340, "civil_partnership": 0.003, "divorced": 0.077, "separated": 0.010, "widowed": 0.530},
		},
	}
	for sex, byBand := range marital {
		for band, weights := range byBand {
			s.putCategorical(TableMaritalStatus, dist.K(sex, band), weights)
		}
	}
	s.putCategorical(TableMaritalStatus, dist.K(dist.Wildcard, dist.Wildcard), map[string]float64{
		"single": 0.40, "married": 0.45, "divorced": 0.08,
		"separated": 0.03, "widowed": 0.03, "civil_partnership": 0.01,
	})

	maleTitles := map[string]float64{"mr": 0.97, "dr": 0.03}
	for _, status := range []string{"single", "married", "divorced", "widowed", "civil_partnership", "separated", "living_with_partner"} {
		s.putCategorical(TableTitle, dist.K("male", status), maleTitles)
	}
	femaleTitles := map[string]map[string]float64{
		"single":              {"miss": 0.45, "ms": 0.45, "dr": 0.05, "mrs": 0.05},
		"married":             {"mrs": 0.70, "ms": 0.18, "dr": 0.05, "miss": 0.07},
		"divorced":            {"ms": 0.50, "mrs": 0.30, "miss": 0.13, "dr": 0.07},
		"widowed":             {"mrs": 0.65, "ms": 0.25, "dr": 0.05, "miss": 0.05},
		"civil_partnership":   {"ms": 0.50, "mrs": 0.30, "miss": 0.13, "dr": 0.07},
		"separated":           {"ms": 0.45, "mrs": 0.35, "miss": 0.13, "dr": 0.07},
		"living_with_partner": {"ms": 0.40, "miss": 0.35, "mrs": 0.18, "dr": 0.07},
	}
	for status, weights := range femaleTitles {
		s.putCategorical(TableTitle, dist.K("female", status), weights)
	}

	for band, weights := range map[string]map[string]float64{
		"17-21": {"student_full_time": 0.55, "employed": 0.25, "unemployed": 0.10, "self_employed": 0.03, "student_part_time": 0.05, "house_person": 0.02},
		"21-25": {"employed": 0.55, "student_full_time": 0.20, "unemployed": 0.08, "self_employed": 0.07, "student_part_time": 0.05, "house_person": 0.03, "not_employed_due_to_disability": 0.02},
		"25-35": {"employed": 0.65, "self_employed": 0.13, "house_person": 0.08, "unemployed": 0.05, "student_full_time": 0.03, "student_part_time": 0.02, "not_employed_due_to_disability": 0.03, "voluntary_work": 0.01},
		"35-50": {"employed": 0.65, "self_employed": 0.15, "house_person": 0.07, "unemployed": 0.04, "not_employed_due_to_disability": 0.04, "retired": 0.02, "voluntary_work": 0.02, "student_part_time": 0.01},
		"50-60": {"employed": 0.55, "self_employed": 0.14, "retired": 0.12, "house_person": 0.06, "not_employed_due_to_disability": 0.06, "unemployed": 0.04, "voluntary_work": 0.03},
		"60-65": {"retired": 0.40, "employed": 0.35, "self_employed": 0.10, "house_person": 0.05, "not_employed_due_to_disability": 0.05, "voluntary_work": 0.03, "unemployed": 0.02},
		"65-100": {"retired": 0.82, "employed": 0.06, "self_employed": 0.04, "house_person": 0.03, "not_employed_due_to_disability": 0.03, "voluntary_work": 0.02},
	} {
		s.putCategorical(TableEmployment, dist.K(band), weights)
	}

	for band, rate := range map[string]float64{
		"17-25": 0.08, "25-35": 0.35, "35-45": 0.55,
		"45-55": 0.68, "55-65": 0.75, "65-100": 0.78,
	} {
		s.putRate(TableHomeownerRate, dist.K(band), rate)
	}
	for band, rate := range map[string]float64{
		"17-30": 0.01, "30-50": 0.02, "50-65": 0.05, "65-100": 0.08,
	} {
		s.putRate(TableMedicalRate, dist.K(band), rate)
	}

	s.putCategorical(TableLicenceType, dist.K("17-21"), map[string]float64{"full": 0.65, "provisional": 0.35})
	s.putCategorical(TableLicenceType, dist.K("21-25"), map[string]float64{"full": 0.88, "provisional": 0.12})
	s.putCategorical(TableLicenceType, dist.K("25-100"), map[string]float64{"full": 0.97, "provisional": 0.03})

	// Years between turning seventeen and passing the test.
	s.putCategorical(TableLicencePassDelay, dist.K(), map[string]float64{
		"0": 0.28, "1": 0.22, "2": 0.14, "3": 0.09, "4": 0.07, "5": 0.05,
		"6": 0.04, "7": 0.03, "8": 0.03, "9": 0.02, "10": 0.03,
	})
}

// ukSurnames lists the top UK surnames in frequency order; sampling weight
// decays as a Zipf curve over the rank.
var ukSurnames = []string{
	"Smith", "Jones", "Williams", "Taylor", "Brown", "Davies", "Evans", "Wilson",
	"Thomas", "Roberts", "Johnson", "Lewis", "Walker", "Robinson", "Wood", "Thompson",
	"White", "Watson", "Jackson", "Wright", "Green", "Harris", "Cooper", "King",
	"Lee", "Martin", "Clarke", "James", "Morgan", "Hughes", "Edwards", "Hill",
	"Moore", "Clark", "Harrison", "Scott", "Young", "Morris", "Hall", "Ward",
	"Turner", "Carter", "Phillips", "Mitchell", "Patel", "Adams", "Campbell",
	"Anderson", "Allen", "Cook", "Bailey", "Palmer", "Stevens", "Bell", "Collins",
	"Richardson", "Cox", "Howard", "Murphy", "Price", "Bennett", "Griffiths",
	"Kelly", "Simpson", "Marshall", "Russell", "Gray", "Mills", "Murray", "Hunt",
	"Foster", "Webb", "Powell", "Butler", "Barnes", "Holmes", "Owen", "Reid",
	"Fisher", "Ellis", "Chapman", "Dixon", "Gordon", "Knight", "Grant", "Henderson",
	"Ross", "Stone", "Graham", "Ferguson", "Watts", "Rose", "Robertson", "Spencer",
	"Gibson", "Pearson", "Walsh", "Day", "Brooks", "Hamilton", "Harvey", "Hart",
	"Ford", "Fox", "Mason", "Kennedy", "Andrews", "Reynolds", "McDonald", "Tucker",
	"Cameron", "Burke", "Barker", "Holland", "Cole", "Perry", "Shaw", "Long",
	"Sullivan", "Ball", "George", "Harper", "Wells", "Armstrong", "Gardner", "Lane",
	"West", "Lawrence", "May", "Pearce", "Burns", "Carr", "Jenkins", "Hussain",
	"Ali", "Khan", "Ahmed", "Singh", "Begum", "Kaur", "Rahman", "Islam",
	"O'Brien", "O'Connor", "O'Neill", "Ryan", "Byrne", "Doyle", "McCarthy", "Lynch",
	"Doherty", "Quinn", "Gallagher", "Brennan", "Duffy", "Farrell", "Casey",
	"Lowe", "Rice", "Chambers", "Dawson", "Dean", "Cross", "Jordan", "Sharp",
	"Swift", "Todd", "Winter", "Bishop", "Porter", "Hood", "Rowe", "Carpenter",
	"Berry", "Poole", "Howe", "Reeves", "Page", "Francis", "Curtis", "Barber",
	"French", "Bolton", "Fleming", "Norton", "Payne", "Wilkinson", "Davidson", "Crawford",
	"Arnold", "Booth", "Hardy", "Newton", "Lloyd", "Warner", "Nicholson", "Parsons",
}

// ukStreets lists common UK street names, sampled uniformly.
var ukStreets = []string{
	"High Street", "Station Road", "Church Lane", "Park Road", "Victoria Road",
	"Manor Road", "Church Street", "London Road", "Green Lane", "The Crescent",
	"Mill Lane", "Springfield Road", "King Street", "Queen Street", "New Road",
	"Grange Road", "Stanley Road", "Main Street", "The Avenue", "School Lane",
	"Meadow Close", "Oak Drive", "Elm Road", "Beech Avenue", "Cedar Close",
	"Willow Way", "Birch Lane", "Maple Drive", "Ash Road", "Pine Close",
	"Richmond Road", "Albert Road", "Windsor Road", "Bridge Street", "Market Street",
	"Chapel Lane", "Orchard Road", "Hillside", "The Green", "Brookside",
	"Rosemary Lane", "Primrose Drive", "Lavender Close", "Hawthorn Avenue", "Poplar Road",
	"Sycamore Drive", "Holly Close", "Ivy Lane", "Jasmine Court", "Heather Way",
}

// Streets returns the street-name list used by the address generator.
func Streets() []string {
	out := make([]string, len(ukStreets))
	copy(out, ukStreets)
	return out
}

func (s *Set) addNames() {
	surnames := make(map[string]float64, len(ukSurnames))
	for i, name := range ukSurnames {
		surnames[name] += 1 / math.Pow(float64(i+1), 0.6)
	}
	s.putCategorical(TableSurname, dist.K(), surnames)

	s.putCategorical(TableFirstName, dist.K("male"), map[string]float64{
		"Oliver": 5.0, "George": 4.8, "Jack": 4.5, "Harry": 4.4, "Noah": 4.2,
		"Charlie": 4.0, "Thomas": 3.9, "Jacob": 3.7, "Oscar": 3.6, "William": 3.5,
		"James": 3.4, "Leo": 3.2, "Alfie": 3.1, "Henry": 3.0, "Joshua": 2.9,
		"Archie": 2.8, "Freddie": 2.7, "Arthur": 2.6, "Ethan": 2.5, "Daniel": 2.5,
		"Alexander": 2.4, "Max": 2.3, "Mohammed": 2.3, "Samuel": 2.2, "Lucas": 2.1,
		"Joseph": 2.1, "Edward": 2.0, "Benjamin": 2.0, "Mason": 1.9, "Logan": 1.9,
		"Michael": 1.8, "David": 1.8, "Adam": 1.7, "Ryan": 1.6, "Matthew": 1.6,
		"Luke": 1.5, "Christopher": 1.4, "Andrew": 1.3, "Paul": 1.2, "Mark": 1.1,
	})
	s.putCategorical(TableFirstName, dist.K("female"), map[string]float64{
		"Olivia": 5.0, "Amelia": 4.8, "Isla": 4.5, "Ava": 4.3, "Emily": 4.1,
		"Sophia": 3.9, "Grace": 3.8, "Mia": 3.7, "Poppy": 3.5, "Ella": 3.4,
		"Lily": 3.3, "Evie": 3.1, "Isabella": 3.0, "Freya": 2.9, "Charlotte": 2.8,
		"Sienna": 2.7, "Daisy": 2.6, "Phoebe": 2.5, "Alice": 2.4, "Florence": 2.4,
		"Jessica": 2.3, "Sophie": 2.2, "Ruby": 2.1, "Maisie": 2.0, "Evelyn": 2.0,
		"Elsie": 1.9, "Emma": 1.9, "Lucy": 1.8, "Hannah": 1.7, "Sarah": 1.7,
		"Laura": 1.6, "Rebecca": 1.5, "Rachel": 1.4, "Claire": 1.3, "Karen": 1.2,
		"Susan": 1.2, "Linda": 1.1, "Margaret": 1.0, "Patricia": 1.0, "Janet": 0.9,
	})
}

// occupationRow is one SOC unit-group entry with per-sex sampling weights.
type occupationRow struct {
	code   string
	title  string
	male   float64
	female float64
}

var occupationRows = []occupationRow{
	{"2136", "Programmers and software development professionals", 3.2, 0.9},
	{"2231", "Nurses", 0.5, 4.8},
	{"6121", "Nursery nurses and assistants", 0.1, 2.2},
	{"5231", "Vehicle technicians, mechanics and electricians", 2.6, 0.1},
	{"8211", "Large goods vehicle drivers", 3.0, 0.2},
	{"8214", "Taxi and cab drivers and chauffeurs", 1.8, 0.2},
	{"5315", "Carpenters and joiners", 2.4, 0.1},
	{"5312", "Bricklayers and masons", 1.6, 0.05},
	{"5241", "Electricians and electrical fitters", 2.5, 0.1},
	{"5314", "Plumbers and heating and ventilating engineers", 2.2, 0.05},
	{"2211", "Medical practitioners", 0.9, 1.1},
	{"2315", "Primary and nursery education teaching professionals", 0.6, 3.0},
	{"2314", "Secondary education teaching professionals", 1.2, 1.8},
	{"4122", "Book-keepers, payroll managers and wages clerks", 0.5, 2.4},
	{"4150", "Other administrative occupations", 1.2, 4.0},
	{"7111", "Sales and retail assistants", 2.4, 4.6},
	{"6135", "Care workers and home carers", 0.6, 4.4},
	{"9241", "Security guards and related occupations", 1.4, 0.2},
	{"9111", "Farm workers", 0.8, 0.2},
	{"5330", "Construction and building trades n.e.c.", 1.8, 0.05},
	{"2421", "Chartered and certified accountants", 1.3, 1.2},
	{"2412", "Solicitors", 0.6, 0.8},
	{"1150", "Managers and directors in retail and wholesale", 1.6, 1.2},
	{"3545", "Sales accounts and business development managers", 1.6, 1.0},
	{"4217", "Typists and related keyboard occupations", 0.1, 0.8},
	{"9233", "Cleaners and domestics", 0.5, 3.2},
	{"5434", "Chefs", 1.7, 0.9},
	{"9272", "Kitchen and catering assistants", 0.7, 2.2},
	{"3231", "Youth and community workers", 0.4, 1.0},
	{"2219", "Health professionals n.e.c.", 0.3, 0.9},
	{"3132", "IT user support technicians", 1.3, 0.5},
	{"3315", "Police officers (sergeant and below)", 1.1, 0.5},
	{"3443", "Fitness instructors", 0.4, 0.6},
	{"6240", "Housekeepers and related occupations", 0.05, 0.7},
}

func (s *Set) addOccupations() {
	male := make(map[string]float64, len(occupationRows))
	female := make(map[string]float64, len(occupationRows))
	all := make(map[string]float64, len(occupationRows))
	for _, row := range occupationRows {
		male[row.code] = row.male
		female[row.code] = row.female
		all[row.code] = row.male + row.female
		s.occupations[row.code] = row.title
	}
	s.putCategorical(TableOccupation, dist.K("male"), male)
	s.putCategorical(TableOccupation, dist.K("female"), female)
	s.putCategorical(TableOccupation, dist.K(dist.Wildcard), all)
}

func (s *Set) addVehicles() {
	weights := make(map[string]float64, len(vehicleRows))
	for _, v := range vehicleRows {
		s.vehicles[v.Slug] = v
		weights[v.Slug] = v.Weight
	}
	s.putCategorical(TableVehicleModel, dist.K(), weights)

	s.putCurve(CurveVehicleAgeWeight, []dist.Point{
		{X: 0, Y: 0.030}, {X: 1, Y: 0.055}, {X: 2, Y: 0.060}, {X: 3, Y: 0.062},
		{X: 4, Y: 0.060}, {X: 5, Y: 0.058}, {X: 7, Y: 0.052}, {X: 9, Y: 0.046},
		{X: 11, Y: 0.040}, {X: 13, Y: 0.034}, {X: 15, Y: 0.027}, {X: 18, Y: 0.018},
		{X: 21, Y: 0.010}, {X: 25, Y: 0.004}, {X: 30, Y: 0.001},
	})
	ageWeights := make(map[string]float64, 31)
	curve := s.curves[CurveVehicleAgeWeight]
	for age := 0; age <= 30; age++ {
		ageWeights[strconv.Itoa(age)] = curve.At(float64(age))
	}
	s.putCategorical(TableVehicleAge, dist.K(), ageWeights)

	doors := map[string]map[string]float64{
		"hatchback":   {"3": 0.20, "5": 0.80},
		"saloon":      {"4": 1.0},
		"estate":      {"5": 1.0},
		"suv":         {"5": 1.0},
		"convertible": {"2": 0.80, "3": 0.20},
		"coupe":       {"2": 0.50, "3": 0.50},
		"mpv":         {"5": 1.0},
		"pickup":      {"4": 0.70, "2": 0.30},
		"van":         {"3": 0.50, "5": 0.50},
		"other":       {"5": 0.70, "3": 0.30},
	}
	for body, weights := range doors {
		s.putCategorical(TableVehicleDoors, dist.K(body), weights)
	}
	s.putCategorical(TableVehicleDoors, dist.K(dist.Wildcard), doors["other"])

	seats := map[string]map[string]float64{
		"hatchback":   {"5": 0.95, "4": 0.05},
		"saloon":      {"5": 1.0},
		"estate":      {"5": 0.85, "7": 0.15},
		"suv":         {"5": 0.75, "7": 0.25},
		"convertible": {"2": 0.30, "4": 0.70},
		"coupe":       {"2": 0.15, "4": 0.85},
		"mpv":         {"5": 0.30, "7": 0.70},
		"pickup":      {"5": 0.60, "2": 0.40},
		"van":         {"2": 0.40, "5": 0.60},
		"other":       {"5": 0.80, "2": 0.20},
	}
	for body, weights := range seats {
		s.putCategorical(TableVehicleSeats, dist.K(body), weights)
	}
	s.putCategorical(TableVehicleSeats, dist.K(dist.Wildcard), seats["other"])

	s.putCategorical(TableModificationType, dist.K(), map[string]float64{
		"Alloy Wheels": 0.35, "Tinted Windows": 0.18, "Exhaust System": 0.10,
		"Body Kit": 0.08, "Engine Tuning": 0.06, "Spoiler": 0.05,
		"Lowered Suspension": 0.05, "Sound System": 0.04, "Dash Cam": 0.04,
		"Parking Sensors": 0.03, "Towbar": 0.02,
	})
	s.putRate(TableModificationRate, dist.K(), 0.08)

	for band, rate := range map[string]float64{
		"0-5": 0.90, "5-10": 0.85, "10-15": 0.75, "15-20": 0.60, "20-30": 0.40,
	} {
		s.putRate(TableAlarmRate, dist.K(band), rate)
	}
	for band, rate := range map[string]float64{
		"0-5": 0.98, "5-10": 0.97, "10-15": 0.95, "15-20": 0.90, "20-30": 0.80,
	} {
		s.putRate(TableImmobiliserRate, dist.K(band), rate)
	}
	for band, rate := range map[string]float64{
		"0-20000": 0.02, "20000-40000": 0.08, "40000-1000000": 0.25,
	} {
		s.putRate(TableTrackerRate, dist.K(band), rate)
	}

	s.putCurve(CurveDepreciation, []dist.Point{
		{X: 0, Y: 1.00}, {X: 1, Y: 0.77}, {X: 2, Y: 0.65}, {X: 3, Y: 0.56},
		{X: 4, Y: 0.49}, {X: 5, Y: 0.43}, {X: 6, Y: 0.38}, {X: 7, Y: 0.33},
		{X: 8, Y: 0.29}, {X: 10, Y: 0.22}, {X: 12, Y: 0.17}, {X: 15, Y: 0.11},
		{X: 20, Y: 0.06}, {X: 25, Y: 0.04}, {X: 30, Y: 0.03},
	})
	s.putCurve(CurveOdometerMedian, []dist.Point{
		{X: 0, Y: 500}, {X: 1, Y: 9500}, {X: 2, Y: 19000},
		{X: 3, Y: 28000}, {X: 5, Y: 42000}, {X: 8, Y: 62000}, {X: 10, Y: 74000},
		{X: 12, Y: 84000}, {X: 15, Y: 97000}, {X: 20, Y: 112000}, {X: 25, Y: 121000},
		{X: 30, Y: 127000},
	})
	s.putCurve(CurveOdometerSD, []dist.Point{
		{X: 0, Y: 300}, {X: 1, Y: 3500}, {X: 2, Y: 8000},
		{X: 3, Y: 12000}, {X: 5, Y: 17000}, {X: 8, Y: 24000}, {X: 10, Y: 28000},
		{X: 12, Y: 31000}, {X: 15, Y: 35000}, {X: 20, Y: 39000}, {X: 25, Y: 42000},
		{X: 30, Y: 44000},
	})
	s.putCurve(CurveMileageMedian, []dist.Point{
		{X: 0, Y: 10500}, {X: 1, Y: 10000}, {X: 2, Y: 9800},
		{X: 3, Y: 9500}, {X: 5, Y: 8800}, {X: 8, Y: 7900}, {X: 10, Y: 7300},
		{X: 12, Y: 6800}, {X: 15, Y: 6000}, {X: 20, Y: 5100}, {X: 25, Y: 4400},
		{X: 30, Y: 3900},
	})
	s.putCurve(CurveMileageSD, []dist.Point{
		{X: 0, Y: 4500}, {X: 1, Y: 4400}, {X: 2, Y: 4300},
		{X: 3, Y: 4200}, {X: 5, Y: 4000}, {X: 8, Y: 3700}, {X: 10, Y: 3500},
		{X: 12, Y: 3300}, {X: 15, Y: 3000}, {X: 20, Y: 2700}, {X: 25, Y: 2500},
		{X: 30, Y: 2300},
	})
}

func (s *Set) addPolicy() {
	s.putCategorical(TableCoverType, dist.K(), map[string]float64{
		"comprehensive": 0.85, "third_party_fire_and_theft": 0.10, "third_party_only": 0.05,
	})
	s.putCategorical(TablePaymentFrequency, dist.K(), map[string]float64{
		"annual": 0.45, "monthly": 0.55,
	})
	s.putCategorical(TableVoluntaryExcess, dist.K(), map[string]float64{
		"0": 0.15, "100": 0.25, "150": 0.05, "250": 0.35, "500": 0.15, "1000": 0.05,
	})

	for band, weights := range map[string]map[string]float64{
		"17-21": {"0": 0.55, "1": 0.25, "2": 0.15, "3": 0.05},
		"21-25": {"0": 0.30, "1": 0.20, "2": 0.18, "3": 0.14, "4": 0.10, "5": 0.08},
		"25-35": {"0": 0.15, "1": 0.10, "2": 0.12, "3": 0.13, "4": 0.12, "5": 0.14, "6": 0.09, "7": 0.06, "8": 0.05, "9": 0.04},
		"35-50": {"0": 0.08, "1": 0.05, "2": 0.06, "3": 0.07, "4": 0.08, "5": 0.12, "6": 0.10, "7": 0.09, "8": 0.08, "9": 0.27},
		"50-100": {"0": 0.05, "1": 0.03, "2": 0.04, "3": 0.05, "4": 0.06, "5": 0.09, "6": 0.08, "7": 0.08, "8": 0.09, "9": 0.43},
	} {
		s.putCategorical(TableNCDYears, dist.K(band), weights)
	}

	for status, weights := range map[string]map[string]float64{
		"employed":                       {"social_commuting": 0.62, "social_only": 0.23, "business": 0.15},
		"self_employed":                  {"business": 0.45, "social_commuting": 0.35, "social_only": 0.20},
		"student_full_time":              {"social_commuting": 0.50, "social_only": 0.45, "business": 0.05},
		"student_part_time":              {"social_commuting": 0.55, "social_only": 0.40, "business": 0.05},
		"retired":                        {"social_only": 0.92, "social_commuting": 0.03, "business": 0.05},
		"unemployed":                     {"social_only": 0.85, "social_commuting": 0.12, "business": 0.03},
		"house_person":                   {"social_only": 0.88, "social_commuting": 0.09, "business": 0.03},
		"voluntary_work":                 {"social_only": 0.60, "social_commuting": 0.35, "business": 0.05},
		"not_employed_due_to_disability": {"social_only": 0.90, "social_commuting": 0.08, "business": 0.02},
	} {
		s.putCategorical(TableClassOfUse, dist.K(status), weights)
	}
	s.putCategorical(TableClassOfUse, dist.K(dist.Wildcard), map[string]float64{
		"social_commuting": 0.45, "social_only": 0.40, "business": 0.15,
	})

	s.putCategorical(TableOvernightLoc, dist.K("urban"), map[string]float64{
		"street_near_home": 0.40, "driveway": 0.25, "garage": 0.08,
		"car_park": 0.15, "private_property": 0.07, "street_away_from_home": 0.05,
	})
	s.putCategorical(TableOvernightLoc, dist.K("rural"), map[string]float64{
		"driveway": 0.45, "garage": 0.25, "street_near_home": 0.15,
		"private_property": 0.08, "car_park": 0.05, "street_away_from_home": 0.02,
	})
	s.putCategorical(TableDaytimeLoc, dist.K("commuting"), map[string]float64{
		"office_car_park": 0.45, "street_near_work": 0.25,
		"public_car_park": 0.15, "at_home": 0.10, "customers_premises": 0.05,
	})
	s.putCategorical(TableDaytimeLoc, dist.K("no_commuting"), map[string]float64{
		"at_home": 0.70, "public_car_park": 0.10, "street_near_work": 0.10,
		"office_car_park": 0.05, "other": 0.05,
	})

	s.putCategorical(TablePreviousInsurer, dist.K(), map[string]float64{
		"Admiral": 0.14, "Direct Line": 0.12, "Aviva": 0.10, "AXA": 0.08,
		"LV=": 0.06, "Churchill": 0.05, "Hastings Direct": 0.05, "esure": 0.04,
		"NFU Mutual": 0.03, "RAC": 0.03, "AA": 0.03, "Saga": 0.02,
		"Zurich": 0.02, "RSA": 0.02, "Allianz": 0.02, "More Than": 0.02,
		"Swinton": 0.02, "Privilege": 0.02, "Co-op Insurance": 0.02,
		"Other": 0.11,
	})

	s.putCategorical(TableChannel, dist.K(), map[string]float64{
		"compare_the_market": 0.30, "moneysupermarket": 0.25, "confused": 0.20,
		"gocompare": 0.15, "direct_web": 0.07, "direct_phone": 0.02, "broker": 0.01,
	})
}

func (s *Set) addClaims() {
	s.putCurve(CurveClaimRate, []dist.Point{
		{X: 18, Y: 0.165}, {X: 22, Y: 0.132}, {X: 27, Y: 0.105}, {X: 32, Y: 0.092},
		{X: 37, Y: 0.088}, {X: 42, Y: 0.087}, {X: 47, Y: 0.090}, {X: 52, Y: 0.089},
		{X: 57, Y: 0.087}, {X: 62, Y: 0.085}, {X: 67, Y: 0.088}, {X: 72, Y: 0.094},
		{X: 87, Y: 0.115},
	})

	s.putCategorical(TableClaimType, dist.K(), map[string]float64{
		"accident": 0.72, "windscreen": 0.10, "theft": 0.06,
		"vandalism": 0.04, "storm_flood": 0.03, "personal_injury": 0.03,
		"fire": 0.01, "other": 0.01,
	})

	for claimType, weights := range map[string]map[string]float64{
		"accident":        {"at_fault": 0.55, "not_at_fault": 0.40, "pending": 0.05},
		"windscreen":      {"not_at_fault": 0.95, "at_fault": 0.05},
		"theft":           {"not_at_fault": 0.98, "pending": 0.02},
		"vandalism":       {"not_at_fault": 0.97, "pending": 0.03},
		"storm_flood":     {"not_at_fault": 0.99, "pending": 0.01},
		"fire":            {"not_at_fault": 0.95, "pending": 0.05},
		"personal_injury": {"not_at_fault": 0.60, "at_fault": 0.35, "pending": 0.05},
		"other":           {"not_at_fault": 0.70, "at_fault": 0.20, "pending": 0.10},
	} {
		s.putCategorical(TableClaimFault, dist.K(claimType), weights)
	}

	// Log-normal severity per claim type, parameterized by median and log
	// standard deviation.
	for claimType, p := range map[string]struct {
		median float64
		sigma  float64
	}{
		"accident":        {2000, 1.0},
		"windscreen":      {350, 0.3},
		"theft":           {5000, 0.8},
		"vandalism":       {1200, 0.6},
		"storm_flood":     {2500, 0.7},
		"fire":            {8000, 1.0},
		"personal_injury": {4000, 1.2},
		"other":           {1500, 0.8},
	} {
		s.putParam(TableClaimAmount, dist.K(claimType), dist.Param{
			Family: dist.FamilyLogNormal,
			Loc:    math.Log(p.median),
			Scale:  p.sigma,
		})
	}
}

func (s *Set) addConvictions() {
	for key, rate := range map[[2]string]float64{
		{"17-21", "male"}: 0.080, {"17-21", "female"}: 0.045,
		{"21-25", "male"}: 0.095, {"21-25", "female"}: 0.050,
		{"25-35", "male"}: 0.085, {"25-35", "female"}: 0.045,
		{"35-50", "male"}: 0.060, {"35-50", "female"}: 0.035,
		{"50-65", "male"}: 0.040, {"50-65", "female"}: 0.022,
		{"65-100", "male"}: 0.020, {"65-100", "female"}: 0.010,
	} {
		s.putRate(TableConvictionRate, dist.K(key[0], key[1]), rate)
	}

	s.putCategorical(TableConvictionCode, dist.K(), map[string]float64{
		"SP30": 0.40, "SP50": 0.10, "SP10": 0.02,
		"IN10": 0.12, "CU80": 0.08, "DR10": 0.06, "DR80": 0.02,
		"CD10": 0.05, "AC10": 0.02, "TS10": 0.03,
		"MS90": 0.05, "LC20": 0.02, "DD40": 0.01, "CD30": 0.01, "MR09": 0.01,
	})
	s.putCategorical(TableConvictionCount, dist.K(), map[string]float64{
		"1": 0.80, "2": 0.15, "3": 0.05,
	})
}

func (s *Set) addHousehold() {
	// Count is conditioned on household group and proposer age band. Young
	// solo proposers often add a parent; mid-life partnered households add a
	// spouse and sometimes a child of driving age.
	s.putCategorical(TableNamedDriverCount, dist.K("partnered", "17-25"), map[string]float64{
		"0": 0.35, "1": 0.58, "2": 0.07,
	})
	s.putCategorical(TableNamedDriverCount, dist.K("partnered", "40-60"), map[string]float64{
		"0": 0.20, "1": 0.63, "2": 0.17,
	})
	s.putCategorical(TableNamedDriverCount, dist.K("partnered", dist.Wildcard), map[string]float64{
		"0": 0.25, "1": 0.65, "2": 0.10,
	})
	s.putCategorical(TableNamedDriverCount, dist.K("solo", "17-25"), map[string]float64{
		"0": 0.58, "1": 0.34, "2": 0.08,
	})
	s.putCategorical(TableNamedDriverCount, dist.K("solo", "60-100"), map[string]float64{
		"0": 0.78, "1": 0.18, "2": 0.04,
	})
	s.putCategorical(TableNamedDriverCount, dist.K("solo", dist.Wildcard), map[string]float64{
		"0": 0.70, "1": 0.22, "2": 0.08,
	})
	s.putCategorical(TableNamedDriverCount, dist.K(dist.Wildcard, dist.Wildcard), map[string]float64{
		"0": 0.55, "1": 0.35, "2": 0.10,
	})

	for status, weights := range map[string]map[string]float64{
		"married":             {"spouse": 0.75, "child": 0.15, "parent": 0.02, "sibling": 0.03, "friend": 0.04, "other_family": 0.01},
		"civil_partnership":   {"spouse": 0.75, "child": 0.10, "parent": 0.04, "sibling": 0.04, "friend": 0.05, "other_family": 0.02},
		"living_with_partner": {"partner": 0.78, "child": 0.08, "parent": 0.04, "sibling": 0.04, "friend": 0.05, "other_family": 0.01},
	} {
		s.putCategorical(TableRelationship, dist.K(status), weights)
	}
	s.putCategorical(TableRelationship, dist.K(dist.Wildcard), map[string]float64{
		"friend": 0.28, "partner": 0.22, "sibling": 0.18, "parent": 0.16,
		"child": 0.10, "other_family": 0.06,
	})

	for code, rate := range map[string]float64{
		"breakdown_cover":        0.25,
		"legal_expenses":         0.20,
		"motor_legal_protection": 0.15,
		"key_cover":              0.15,
		"courtesy_car":           0.12,
		"windscreen_cover":       0.10,
		"excess_protection":      0.10,
		"no_claims_step_back":    0.08,
		"personal_accident":      0.05,
		"personal_belongings":    0.03,
		"tools_in_transit":       0.01,
	} {
		s.putRate(TableAddOnRate, dist.K(code), rate)
	}

	s.putCategorical(TableBreakdownLevel, dist.K(), map[string]float64{
		"roadside": 0.40, "national_recovery": 0.35, "european": 0.25,
	})
}
