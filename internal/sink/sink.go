// Package sink delivers generated records to their destination: a local
// file or stream in any render format, a Postgres table, or memory for
// tests. The engine writes records in index order; sinks may rely on that.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"

	"quotesynth/internal/render"
	"quotesynth/pkg/quote"
)

// Driver identifies a concrete sink implementation.
type Driver string

const (
	DriverFile     Driver = "file"     // local file or supplied writer
	DriverPostgres Driver = "postgres" // quotes table, payload as jsonb
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
)

// EnvPostgresDSN names the environment variable the postgres driver reads
// its connection string from.
const EnvPostgresDSN = "QUOTESYNTH_POSTGRES_DSN"

// Sink consumes records one at a time.
type Sink interface {
	Write(ctx context.Context, q quote.Quote) error
	Close(ctx context.Context) error
}

// Spec selects a driver and its destination.
type Spec struct {
	Driver Driver
	// Path is the file driver's output path; empty writes to Out.
	Path   string
	Format render.Format
	// Pretty switches the json format to indented output.
	Pretty bool
	// Out overrides the file driver's destination when Path is empty
	// (typically stdout).
	Out io.Writer
}

// Open builds the sink spec selects. An empty driver means file.
//
//	QUOTESYNTH_POSTGRES_DSN: postgres DSN when driver=postgres
func Open(ctx context.Context, spec Spec) (Sink, error) {
	switch spec.Driver {
	case "", DriverFile:
		if spec.Path != "" {
			return OpenFile(spec.Path, spec.Format, spec.Pretty)
		}
		if spec.Out == nil {
			return nil, fmt.Errorf("sink: file driver needs a path or a writer")
		}
		rw, err := formatWriter(spec.Format, spec.Pretty, spec.Out)
		if err != nil {
			return nil, err
		}
		return NewStream(rw), nil
	case DriverPostgres:
		return NewPostgres(ctx, os.Getenv(EnvPostgresDSN))
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("sink: unknown driver %s", spec.Driver)
	}
}

func formatWriter(format render.Format, pretty bool, w io.Writer) (render.Writer, error) {
	if format == "" {
		format = render.FormatJSONL
	}
	if format == render.FormatJSON && pretty {
		return render.NewJSONWriter(w, true), nil
	}
	return render.NewWriter(format, w)
}
