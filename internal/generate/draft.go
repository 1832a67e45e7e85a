// Package generate builds quote records one stage at a time. Each stage owns
// one field group, draws from its own named random stream, and conditions
// only on groups produced by earlier stages, so a record is a pure function
// of (root seed, record index) and any single group can be re-derived in
// isolation.
package generate

import (
	"fmt"

	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

// Geography is the sampled location context later stages condition on. Only
// part of it surfaces directly in the record (via Address); the rest keys
// rate and weight lookups.
type Geography struct {
	Region       string
	PostcodeArea string
	City         string
	Urban        bool
	IMDDecile    int
}

// Draft is the record under construction. Each stage writes its own group
// exactly once; nothing is overwritten.
type Draft struct {
	Index        uint64
	Geography    Geography
	Proposer     quote.Proposer
	Vehicle      quote.Vehicle
	Policy       quote.Policy
	Claims       []quote.Claim
	Convictions  []quote.Conviction
	NamedDrivers []quote.NamedDriver
	AddOns       quote.AddOns
	Metadata     quote.Metadata
	Address      quote.Address
}

// Stage is one step of the generation order. Run must draw randomness only
// from the stream the orchestrator hands it; the stream is derived from the
// stage name, which therefore must never change for a released dataset
// format.
type Stage struct {
	Name string
	Run  func(*Env, *Draft, *randstream.Stream) error
	done func(*Draft) bool
}

// Stages returns the fixed generation order. Conditioning always points at
// earlier stages; the order is part of the determinism contract.
func Stages() []Stage {
	return []Stage{
		{Name: "geography", Run: runGeography, done: func(d *Draft) bool { return d.Geography.Region != "" }},
		{Name: "proposer", Run: runProposer, done: func(d *Draft) bool { return d.Proposer.FirstName != "" }},
		{Name: "vehicle", Run: runVehicle, done: func(d *Draft) bool { return d.Vehicle.Make != "" }},
		{Name: "policy", Run: runPolicy, done: func(d *Draft) bool { return d.Policy.CoverType != "" }},
		{Name: "claims", Run: runClaims, done: func(d *Draft) bool { return d.Claims != nil }},
		{Name: "convictions", Run: runConvictions, done: func(d *Draft) bool { return d.Convictions != nil }},
		{Name: "named_drivers", Run: runNamedDrivers, done: func(d *Draft) bool { return d.NamedDrivers != nil }},
		{Name: "addons", Run: runAddOns, done: func(d *Draft) bool { return d.AddOns.Selected != nil }},
		{Name: "metadata", Run: runMetadata, done: func(d *Draft) bool { return d.Metadata.QuoteID != "" }},
		{Name: "address", Run: runAddress, done: func(d *Draft) bool { return d.Address.Postcode != "" }},
	}
}

// InvariantError reports a generated record that violates a structural
// invariant. A breach means a generator or calibration bug, not bad luck, so
// it aborts the whole batch.
type InvariantError struct {
	Record uint64
	Field  string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("record %d: %s: %s", e.Record, e.Field, e.Detail)
}
