package dist

import (
	"math/rand/v2"
	"strings"
	"testing"
)

// scripted replays a fixed sequence of unit-interval draws.
type scripted struct {
	vals []float64
	next int
}

func (s *scripted) Float64() float64 {
	v := s.vals[s.next%len(s.vals)]
	s.next++
	return v
}

func (s *scripted) IntN(n int) int { return int(s.Float64() * float64(n)) }

func (s *scripted) Src() rand.Source { return rand.NewPCG(0, 0) }

// seeded is a real PCG-backed stream for sampling tests.
type seeded struct {
	*rand.Rand
	src rand.Source
}

func (s seeded) Src() rand.Source { return s.src }

func newSeeded(seed uint64) seeded {
	src := rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)
	return seeded{Rand: rand.New(src), src: src}
}

func TestKeyString(t *testing.T) {
	if got := K("male", "17-20").String(); got != "male,17-20" {
		t.Fatalf("key string: %q", got)
	}
	if got := K().String(); got != "" {
		t.Fatalf("empty key string: %q", got)
	}
}

func TestGapErrorMessage(t *testing.T) {
	err := &GapError{Table: "age", Key: K("male", Wildcard)}
	msg := err.Error()
	if !strings.Contains(msg, `"age"`) || !strings.Contains(msg, "male") {
		t.Fatalf("gap message: %q", msg)
	}
}
