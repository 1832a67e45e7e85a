package sink

import (
	"context"
	"fmt"
	"os"

	"quotesynth/internal/render"
	"quotesynth/pkg/quote"
)

// Stream adapts a render.Writer to the Sink interface for destinations the
// caller already owns, such as stdout.
type Stream struct {
	rw render.Writer
}

// NewStream wraps an open render writer.
func NewStream(rw render.Writer) *Stream {
	return &Stream{rw: rw}
}

// Write encodes one record.
func (s *Stream) Write(_ context.Context, q quote.Quote) error {
	return s.rw.Write(q)
}

// Close flushes the encoder. The underlying destination stays open.
func (s *Stream) Close(context.Context) error {
	return s.rw.Close()
}

// File renders records into a file it owns.
type File struct {
	rw render.Writer
	f  *os.File
}

// OpenFile creates path (truncating any previous content) and renders into
// it with the given format.
func OpenFile(path string, format render.Format, pretty bool) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: create %s: %w", path, err)
	}
	rw, err := formatWriter(format, pretty, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{rw: rw, f: f}, nil
}

// Write encodes one record.
func (s *File) Write(_ context.Context, q quote.Quote) error {
	return s.rw.Write(q)
}

// Close flushes the encoder and closes the file.
func (s *File) Close(context.Context) error {
	if err := s.rw.Close(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}
