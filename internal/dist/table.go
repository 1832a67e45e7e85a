package dist

import (
	"fmt"
	"sort"
	"strings"
)

// Table holds distributions of one shape keyed by conditioning tuples. Query
// resolves the exact key first, then each declared fallback mask in order;
// tables shipped with the engine declare masks that guarantee coverage, so a
// GapError from a shipped table means the pack itself is broken.
type Table[T any] struct {
	name  string
	arity int
	rows  map[string]T
	masks [][]bool
}

// NewTable creates an empty table. Arity fixes the conditioning-key width;
// masks form the fallback chain, tried in the order given.
func NewTable[T any](name string, arity int, masks ...[]bool) *Table[T] {
	for _, m := range masks {
		if len(m) != arity {
			panic(fmt.Sprintf("dist: table %q mask width %d != arity %d", name, len(m), arity))
		}
	}
	return &Table[T]{name: name, arity: arity, rows: make(map[string]T), masks: masks}
}

// CategoricalTable maps conditioning keys to categorical distributions.
type CategoricalTable = Table[Categorical]

// ParamTable maps conditioning keys to parametric distributions.
type ParamTable = Table[Param]

// Name returns the table name used in gap reports.
func (t *Table[T]) Name() string {
	return t.name
}

// Arity returns the conditioning-key width.
func (t *Table[T]) Arity() int {
	return t.arity
}

// Masks returns the declared fallback chain.
func (t *Table[T]) Masks() [][]bool {
	out := make([][]bool, len(t.masks))
	for i, m := range t.masks {
		out[i] = append([]bool(nil), m...)
	}
	return out
}

// Put stores the distribution for key, replacing any existing row. A key of
// the wrong width is an initialization bug and panics.
func (t *Table[T]) Put(key Key, value T) {
	if len(key) != t.arity {
		panic(fmt.Sprintf("dist: table %q key (%s) width %d != arity %d", t.name, key, len(key), t.arity))
	}
	t.rows[key.joined()] = value
}

// Query resolves key to a distribution, walking the fallback chain on a
// miss. The final miss is reported as a *GapError carrying the original key.
func (t *Table[T]) Query(key Key) (T, error) {
	var zero T
	if len(key) != t.arity {
		return zero, fmt.Errorf("dist: table %q queried with key (%s) width %d, arity is %d", t.name, key, len(key), t.arity)
	}
	if v, ok := t.rows[key.joined()]; ok {
		return v, nil
	}
	for _, mask := range t.masks {
		if v, ok := t.rows[key.masked(mask).joined()]; ok {
			return v, nil
		}
	}
	return zero, &GapError{Table: t.name, Key: key}
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// Keys returns every row key in sorted order.
func (t *Table[T]) Keys() []Key {
	joined := make([]string, 0, len(t.rows))
	for k := range t.rows {
		joined = append(joined, k)
	}
	sort.Strings(joined)
	keys := make([]Key, len(joined))
	for i, j := range joined {
		if j == "" {
			keys[i] = Key{}
			continue
		}
		keys[i] = Key(strings.Split(j, "\x1f"))
	}
	return keys
}

// MaskAll returns a fallback mask that wildcards every component.
func MaskAll(arity int) []bool {
	m := make([]bool, arity)
	for i := range m {
		m[i] = true
	}
	return m
}

// MaskAt returns a fallback mask that wildcards the listed positions.
func MaskAt(arity int, positions ...int) []bool {
	m := make([]bool, arity)
	for _, p := range positions {
		m[p] = true
	}
	return m
}
