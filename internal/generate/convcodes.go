package generate

// Penalty is the sentencing profile fixed per DVLA endorsement code. A
// record's points, fine and ban months are a pure function of its code: the
// profile carries the canonical value for each, never a range to sample
// from, so any conviction can be checked against its code alone.
type Penalty struct {
	Description string
	Points      int
	FineGBP     int
	BanMonths   int
}

var penalties = map[string]Penalty{
	"SP30": {"Exceeding statutory speed limit on a public road", 3, 150, 0},
	"SP50": {"Exceeding speed limit on a motorway", 3, 150, 0},
	"SP10": {"Exceeding goods vehicle speed limit", 3, 100, 0},
	"IN10": {"Using a vehicle uninsured against third party risks", 6, 300, 0},
	"CU80": {"Using a hand-held device while driving", 6, 200, 0},
	"DR10": {"Driving or attempting to drive with alcohol above limit", 10, 500, 18},
	"DR80": {"Driving or attempting to drive when unfit through drugs", 10, 500, 18},
	"CD10": {"Driving without due care and attention", 5, 300, 0},
	"CD30": {"Driving without due care or reasonable consideration", 9, 1000, 18},
	"DD40": {"Dangerous driving", 11, 1500, 12},
	"AC10": {"Failing to stop after an accident", 6, 500, 0},
	"TS10": {"Failing to comply with traffic light signals", 3, 100, 0},
	"MR09": {"Reckless or dangerous driving (EU mutual recognition)", 8, 1000, 12},
	"LC20": {"Driving otherwise than in accordance with a licence", 4, 200, 0},
	"MS90": {"Failure to give information as to identity of driver", 6, 300, 0},
}

// PenaltyFor returns the sentencing profile for an endorsement code.
func PenaltyFor(code string) (Penalty, bool) {
	p, ok := penalties[code]
	return p, ok
}
