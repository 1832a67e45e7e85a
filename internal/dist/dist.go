// Package dist implements the three distribution shapes the engine samples
// from: weighted categorical outcomes, parametric families, and empirical
// curves. Keyed tables hold one distribution per conditioning key and resolve
// misses through an ordered fallback chain; a miss after the whole chain is a
// calibration gap, which aborts generation rather than silently substituting
// a default.
package dist

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Stream is the draw source distributions sample from. It is satisfied by
// *randstream.Stream; samplers never reach for global generator state.
type Stream interface {
	Float64() float64
	IntN(n int) int
	Src() rand.Source
}

// Key is an ordered conditioning tuple, e.g. (sex, age_band). The wildcard
// component "*" matches any value during fallback resolution.
type Key []string

// Wildcard is the key component that matches any value.
const Wildcard = "*"

// K builds a key from its components.
func K(parts ...string) Key {
	return Key(parts)
}

func (k Key) String() string {
	return strings.Join(k, ",")
}

// joined is the internal map form of a key. The separator cannot appear in
// calibration labels.
func (k Key) joined() string {
	return strings.Join(k, "\x1f")
}

// masked returns a copy of k with the components selected by mask replaced
// by the wildcard.
func (k Key) masked(mask []bool) Key {
	out := make(Key, len(k))
	for i, part := range k {
		if i < len(mask) && mask[i] {
			out[i] = Wildcard
		} else {
			out[i] = part
		}
	}
	return out
}

// GapError reports a conditioning key that no row or fallback of a table
// covers. Generation treats it as fatal for the whole batch.
type GapError struct {
	Table string
	Key   Key
}

func (e *GapError) Error() string {
	return fmt.Sprintf("dist: no row in table %q covers key (%s)", e.Table, e.Key)
}
