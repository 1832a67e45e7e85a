// Package render encodes quote records into the supported batch output
// formats. Writers stream record by record so callers never need the whole
// batch in memory; Close flushes any buffered tail.
package render

import (
	"fmt"
	"io"

	"quotesynth/pkg/quote"
)

// Format identifies an output encoding.
type Format string

const (
	// FormatJSONL is one JSON object per line.
	FormatJSONL Format = "jsonl"
	// FormatJSON is a single JSON array of records.
	FormatJSON Format = "json"
	// FormatCSV is one flattened row of core columns per record.
	FormatCSV Format = "csv"
	// FormatParquet is a Parquet file of the core columns.
	FormatParquet Format = "parquet"
)

// Formats lists the supported formats in canonical order.
func Formats() []Format {
	return []Format{FormatJSONL, FormatJSON, FormatCSV, FormatParquet}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSONL, FormatJSON, FormatCSV, FormatParquet:
		return Format(s), nil
	}
	return "", fmt.Errorf("render: unknown format %q (want jsonl, json, csv or parquet)", s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	return string(f)
}

// ContentType returns the MIME type artifacts of this format are served
// with.
func (f Format) ContentType() string {
	switch f {
	case FormatJSONL:
		return "application/x-ndjson"
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	default:
		return "application/octet-stream"
	}
}

// Writer encodes records one at a time into a single output.
type Writer interface {
	Write(q quote.Quote) error
	Close() error
}

// NewWriter returns a streaming writer for the format over w. The JSON
// format is compact; use NewJSONWriter directly for indented output.
func NewWriter(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, false), nil
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatParquet:
		return NewParquetWriter(w)
	}
	return nil, fmt.Errorf("render: unknown format %q", format)
}
