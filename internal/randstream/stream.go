// Package randstream derives the independent, reproducible random substreams
// that drive generation. Every (root seed, record index, group name) triple
// maps to its own PCG generator, so any field group of any record can be
// regenerated in isolation without consuming draws from any other stream,
// and records can be produced on any number of workers with identical output.
package randstream

import (
	"hash/fnv"
	"math/rand/v2"
)

// Manager hands out substreams for one root seed.
type Manager struct {
	root uint64
}

// NewManager returns a stream manager for the given root seed.
func NewManager(root uint64) *Manager {
	return &Manager{root: root}
}

// Root returns the root seed the manager derives all substreams from.
func (m *Manager) Root() uint64 {
	return m.root
}

// Stream returns the substream for one field group of one record. Calling it
// again with the same arguments returns a fresh generator positioned at the
// start of the same sequence.
func (m *Manager) Stream(record uint64, group string) *Stream {
	src := rand.NewPCG(m.root, substreamSeed(record, group))
	return &Stream{Rand: rand.New(src), src: src}
}

// Stream is a deterministic draw source for a single (record, group) pair.
// It exposes the full math/rand/v2 draw surface plus the raw Source required
// by distribution samplers.
type Stream struct {
	*rand.Rand
	src rand.Source
}

// Src returns the underlying source so samplers can drive parametric
// distributions from this stream rather than any global generator.
func (s *Stream) Src() rand.Source {
	return s.src
}

// Bernoulli reports a single trial with success probability p.
func (s *Stream) Bernoulli(p float64) bool {
	return s.Float64() < p
}

// IntBetween returns a uniform integer in [lo, hi] inclusive. It panics if
// hi < lo, matching the rand.IntN contract for invalid arguments.
func (s *Stream) IntBetween(lo, hi int) int {
	return lo + s.IntN(hi-lo+1)
}

// Read fills p with deterministic pseudo-random bytes, making the stream
// usable wherever an entropy reader is expected (UUID derivation). It never
// returns an error.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		v := s.Uint64()
		for i := 0; i < 8 && n < len(p); i++ {
			p[n] = byte(v)
			v >>= 8
			n++
		}
	}
	return n, nil
}

// substreamSeed mixes the record index and group name into the second PCG
// seed word. The group hash is FNV-1a; splitmix64 rounds decorrelate nearby
// record indices.
func substreamSeed(record uint64, group string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(group))
	return splitmix64(splitmix64(record) ^ h.Sum64())
}

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
