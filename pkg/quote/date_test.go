package quote

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOfTruncates(t *testing.T) {
	loc := time.FixedZone("behind", -5*3600)
	d := DateOf(time.Date(2025, 11, 1, 23, 30, 0, 0, loc))
	// 23:30 at UTC-5 is already November 2nd in UTC.
	if d != (Date{Year: 2025, Month: time.November, Day: 2}) {
		t.Fatalf("date: %+v", d)
	}
}

func TestDateAddDays(t *testing.T) {
	d := Date{Year: 2025, Month: time.December, Day: 31}
	if got := d.AddDays(1); got != (Date{Year: 2026, Month: time.January, Day: 1}) {
		t.Fatalf("year boundary: %+v", got)
	}
	if got := d.AddDays(-365); got != (Date{Year: 2024, Month: time.December, Day: 31}) {
		t.Fatalf("back a year: %+v", got)
	}
	start := Date{Year: 2025, Month: time.November, Day: 14}
	if got := start.AddDays(365); got != (Date{Year: 2026, Month: time.November, Day: 14}) {
		t.Fatalf("policy year: %+v", got)
	}
}

func TestDateDaysUntilAndBefore(t *testing.T) {
	a := Date{Year: 2025, Month: time.November, Day: 1}
	b := a.AddDays(30)
	if got := a.DaysUntil(b); got != 30 {
		t.Fatalf("days until: %d", got)
	}
	if got := b.DaysUntil(a); got != -30 {
		t.Fatalf("negative days until: %d", got)
	}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatalf("ordering broken")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := Date{Year: 2025, Month: time.March, Day: 7}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-03-07"` {
		t.Fatalf("encoded: %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip: %+v", back)
	}
}

func TestDateZeroValueJSONRoundTrip(t *testing.T) {
	var d Date
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("zero date encoded as %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("null decoded to %+v", back)
	}
}

func TestDateUnmarshalRejectsMalformed(t *testing.T) {
	for _, bad := range []string{`"2025-13-01"`, `"07/03/2025"`, `2025`, `""`} {
		var d Date
		if err := json.Unmarshal([]byte(bad), &d); err == nil {
			t.Fatalf("accepted %s", bad)
		}
	}
}

func TestDateIsZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Fatalf("zero value not zero")
	}
	if (Date{Year: 2025, Month: time.January, Day: 1}).IsZero() {
		t.Fatalf("set date reported zero")
	}
}
