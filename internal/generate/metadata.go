package generate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"quotesynth/internal/calibration"
	"quotesynth/internal/dist"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

const refDigits = "0123456789"

// runMetadata stamps provenance: channel, quote id, creation time, and the
// (root seed, record index) pair that reproduces the record. The quote id is
// a version-4 UUID drawn from the metadata stream, so it is as reproducible
// as every other field.
func runMetadata(env *Env, d *Draft, s *randstream.Stream) error {
	channelLabel, err := env.pick(s, calibration.TableChannel, dist.K())
	if err != nil {
		return err
	}
	channel := quote.Channel(channelLabel)
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		return fmt.Errorf("quote id: %w", err)
	}
	created := env.Reference.
		AddDate(0, 0, -s.IntBetween(0, 6)).
		Add(-time.Duration(s.IntBetween(1, 86399)) * time.Second)
	md := quote.Metadata{
		QuoteID:     id.String(),
		Channel:     channel,
		CreatedAt:   created,
		RecordIndex: d.Index,
		RootSeed:    env.Streams.Root(),
	}
	if channel.IsAggregator() {
		md.AggregatorRef = aggregatorRef(channel, s)
	}
	d.Metadata = md
	return nil
}

// aggregatorRef renders the panel reference aggregators attach to a quote,
// a channel prefix plus eight digits.
func aggregatorRef(c quote.Channel, s *randstream.Stream) string {
	b := make([]byte, 0, 12)
	b = append(b, c.Prefix()...)
	b = append(b, '-')
	for i := 0; i < 8; i++ {
		b = append(b, refDigits[s.IntN(len(refDigits))])
	}
	return string(b)
}
