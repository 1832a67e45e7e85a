package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quotesynth/internal/render"
	"quotesynth/pkg/quote"
)

func testQuote(index uint64) quote.Quote {
	coverStart := quote.Date{Year: 2025, Month: time.November, Day: 10}
	return quote.Quote{
		Metadata: quote.Metadata{
			QuoteID:     fmt.Sprintf("00000000-0000-4000-8000-%012d", index),
			Channel:     quote.ChannelDirectWeb,
			CreatedAt:   time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC),
			RecordIndex: index,
			RootSeed:    7,
		},
		Proposer: quote.Proposer{
			FirstName:   "Sam",
			LastName:    "Archer",
			Sex:         quote.SexFemale,
			DateOfBirth: quote.Date{Year: 1990, Month: time.May, Day: 4},
			Age:         35,
		},
		Policy: quote.Policy{
			CoverType:  quote.CoverComprehensive,
			CoverStart: coverStart,
			CoverEnd:   coverStart.AddDays(365),
		},
	}
}

func TestMemorySink(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for i := uint64(0); i < 3; i++ {
		if err := m.Write(ctx, testQuote(i)); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	got := m.Quotes()
	if len(got) != 3 {
		t.Fatalf("stored %d records, want 3", len(got))
	}
	got[0].Metadata.QuoteID = "mutated"
	if m.Quotes()[0].Metadata.QuoteID == "mutated" {
		t.Fatal("Quotes returned the backing slice")
	}

	if m.Closed() {
		t.Fatal("sink closed before Close")
	}
	if err := m.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !m.Closed() {
		t.Fatal("Close did not mark the sink closed")
	}
}

func TestFileSinkJSONL(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "batch.jsonl")
	s, err := OpenFile(path, render.FormatJSONL, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := uint64(0); i < 2; i++ {
		if err := s.Write(ctx, testQuote(i)); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("file has %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		var q quote.Quote
		if err := json.Unmarshal([]byte(line), &q); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if q.Metadata.RecordIndex != uint64(i) {
			t.Fatalf("line %d has record index %d", i, q.Metadata.RecordIndex)
		}
	}
}

func TestFileSinkCSV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "batch.csv")
	s, err := OpenFile(path, render.FormatCSV, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Write(ctx, testQuote(0)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("csv has %d rows, want header plus record", len(rows))
	}
	if rows[0][0] != "record_index" || rows[1][0] != "0" {
		t.Fatalf("unexpected csv cells %q, %q", rows[0][0], rows[1][0])
	}
}

func TestOpenFileCreateError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "out.jsonl")
	if _, err := OpenFile(missing, render.FormatJSONL, false); err == nil {
		t.Fatal("OpenFile created a file under a missing directory")
	}
}

func TestStreamSink(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	s := NewStream(render.NewJSONLWriter(&buf))
	if err := s.Write(ctx, testQuote(4)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.Contains(buf.String(), `"record_index":4`) {
		t.Fatalf("stream output %q missing record", buf.String())
	}
}

func TestOpenDispatch(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Spec{Driver: DriverMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Fatalf("memory driver returned %T", s)
	}

	var buf bytes.Buffer
	s, err = Open(ctx, Spec{Out: &buf})
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	if _, ok := s.(*Stream); !ok {
		t.Fatalf("writer spec returned %T", s)
	}
	// Empty format means jsonl.
	if err := s.Write(ctx, testQuote(0)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("default format wrote %d lines, want 1", got)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	s, err = Open(ctx, Spec{Driver: DriverFile, Path: path, Format: render.FormatJSON})
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if _, ok := s.(*File); !ok {
		t.Fatalf("file spec returned %T", s)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := Open(ctx, Spec{}); err == nil {
		t.Fatal("file driver without path or writer accepted")
	}
	if _, err := Open(ctx, Spec{Driver: Driver("kafka")}); err == nil {
		t.Fatal("unknown driver accepted")
	}
}

func TestOpenPrettyJSON(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	s, err := Open(ctx, Spec{Out: &buf, Format: render.FormatJSON, Pretty: true})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Write(ctx, testQuote(0)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "[\n  {") {
		t.Fatalf("pretty output starts %q", buf.String()[:8])
	}
}
