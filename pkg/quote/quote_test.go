package quote

import "testing"

func TestChannelAggregator(t *testing.T) {
	prefixes := map[Channel]string{
		ChannelCompareTheMarket: "CTM",
		ChannelMoneySupermarket: "MSM",
		ChannelConfused:         "CON",
		ChannelGoCompare:        "GCO",
	}
	for c, want := range prefixes {
		if !c.IsAggregator() {
			t.Fatalf("%s not an aggregator", c)
		}
		if got := c.Prefix(); got != want {
			t.Fatalf("%s prefix %q, want %q", c, got, want)
		}
	}
	for _, c := range []Channel{ChannelDirectWeb, ChannelDirectPhone, ChannelBroker} {
		if c.IsAggregator() {
			t.Fatalf("%s reported as aggregator", c)
		}
		if got := c.Prefix(); got != "" {
			t.Fatalf("%s prefix %q", c, got)
		}
	}
}

func TestAddOnCodesCanonicalOrder(t *testing.T) {
	codes := AddOnCodes()
	if len(codes) == 0 || codes[0] != AddOnBreakdown {
		t.Fatalf("codes: %v", codes)
	}
	seen := make(map[AddOnCode]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			t.Fatalf("duplicate code %s", c)
		}
		seen[c] = true
	}
	// The slice is rebuilt per call so callers cannot mutate the order.
	codes[0] = AddOnKeyCover
	if again := AddOnCodes(); again[0] != AddOnBreakdown {
		t.Fatalf("canonical order mutated")
	}
}
