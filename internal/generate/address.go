package generate

import (
	"math"
	"strconv"

	"quotesynth/internal/calibration"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

var streetNames = calibration.Streets()

// postcodeUnitLetters excludes the letters the final two positions of a UK
// postcode never use.
const postcodeUnitLetters = "ABDEFGHJLNPQRSTUWXYZ"

// runAddress renders a home address consistent with the sampled geography.
func runAddress(env *Env, d *Draft, s *randstream.Stream) error {
	g := d.Geography
	// Low house numbers dominate real streets; skew the draw toward them.
	house := 1 + int(math.Pow(s.Float64(), 1.6)*199)
	d.Address = quote.Address{
		HouseNumber: clampInt(house, 1, 200),
		Street:      streetNames[s.IntN(len(streetNames))],
		City:        g.City,
		Postcode:    formatPostcode(g.PostcodeArea, s),
		Region:      g.Region,
		Urban:       g.Urban,
		IMDDecile:   g.IMDDecile,
	}
	return nil
}

// formatPostcode synthesizes "<area><district> <sector><unit>", e.g.
// "LS11 8QT", from the sampled postcode area.
func formatPostcode(area string, s *randstream.Stream) string {
	b := make([]byte, 0, 8)
	b = append(b, area...)
	b = strconv.AppendInt(b, int64(s.IntBetween(1, 28)), 10)
	b = append(b, ' ', '0'+byte(s.IntN(10)))
	b = append(b,
		postcodeUnitLetters[s.IntN(len(postcodeUnitLetters))],
		postcodeUnitLetters[s.IntN(len(postcodeUnitLetters))])
	return string(b)
}
