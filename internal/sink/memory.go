package sink

import (
	"context"
	"sync"

	"quotesynth/pkg/quote"
)

// Memory buffers records in process, for tests and ephemeral batches.
type Memory struct {
	mu     sync.Mutex
	quotes []quote.Quote
	closed bool
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Write appends one record.
func (m *Memory) Write(_ context.Context, q quote.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = append(m.quotes, q)
	return nil
}

// Close marks the sink complete.
func (m *Memory) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Quotes returns a copy of everything written so far.
func (m *Memory) Quotes() []quote.Quote {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]quote.Quote, len(m.quotes))
	copy(out, m.quotes)
	return out
}

// Closed reports whether Close has been called.
func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
