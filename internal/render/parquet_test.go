package render

import (
	"bytes"
	"testing"

	"quotesynth/pkg/quote"
)

// The CSV and Parquet artifacts must describe the same projection.
func TestParquetSchemaMatchesCoreColumns(t *testing.T) {
	if got := parquetSchema.NumFields(); got != len(coreColumns) {
		t.Fatalf("schema has %d fields, want %d", got, len(coreColumns))
	}
	for i, want := range coreColumns {
		if got := parquetSchema.Field(i).Name; got != want {
			t.Fatalf("schema field %d = %q, want %q", i, got, want)
		}
	}
}

func TestParquetWriterProducesFile(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewParquetWriter(&buf)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	for i := uint64(0); i < 3; i++ {
		if err := w.Write(sampleQuote(i)); err != nil {
			t.Fatalf("write record %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("PAR1")) || !bytes.HasSuffix(out, []byte("PAR1")) {
		t.Fatal("output missing parquet magic bytes")
	}
	// Column names land verbatim in the footer schema; dictionary pages carry
	// the string values.
	for _, want := range []string{"insurance_group", "breakdown_level", "00000000-0000-4000-8000-000000000002"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("output missing %q", want)
		}
	}
}

func TestParquetEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewParquetWriter(&buf)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("PAR1")) || !bytes.HasSuffix(out, []byte("PAR1")) {
		t.Fatal("empty batch is not a parquet file")
	}
}

// Crossing the row-group size exercises the mid-stream flush.
func TestParquetRowGroupFlush(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewParquetWriter(&buf)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	for i := 0; i < parquetFlushRows+4; i++ {
		if err := w.Write(quote.Quote{}); err != nil {
			t.Fatalf("write record %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("PAR1")) {
		t.Fatal("output missing parquet footer")
	}
}
