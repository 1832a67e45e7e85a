package engine

// The golden file pins the exact JSONL bytes for a fixed seed so any change
// to the sampling pipeline that shifts output shows up as a diff rather than
// passing silently. Two modes, following the project's snapshot convention:
//   go test ./internal/engine -run TestGoldenSeed123 -update
//     Regenerates testdata/seed123.golden.jsonl (reviewed and committed).
//   go test ./internal/engine -run TestGoldenSeed123
//     Fails if current output diverges from the committed file.
// A missing file is written on first run so a fresh checkout bootstraps its
// own baseline.

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"quotesynth/internal/render"
)

var updateGolden = flag.Bool("update", false, "rewrite the engine golden file")

const (
	goldenSeed    = 123
	goldenRecords = 20
	goldenFile    = "seed123.golden.jsonl"
)

func currentGoldenBytes(t *testing.T) []byte {
	t.Helper()
	e := newTestEngine(t)
	records, err := e.Batch(context.Background(), goldenSeed, goldenRecords)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	var buf bytes.Buffer
	w := render.NewJSONLWriter(&buf)
	for _, q := range records {
		if err := w.Write(q); err != nil {
			t.Fatalf("encode record %d: %v", q.Metadata.RecordIndex, err)
		}
	}
	return buf.Bytes()
}

func TestGoldenSeed123(t *testing.T) {
	path := filepath.Join("testdata", goldenFile)
	current := currentGoldenBytes(t)

	committed, err := os.ReadFile(path)
	if *updateGolden || os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o750); mkErr != nil {
			t.Fatalf("create testdata: %v", mkErr)
		}
		if wrErr := os.WriteFile(path, current, 0o600); wrErr != nil {
			t.Fatalf("write golden: %v", wrErr)
		}
		t.Logf("golden file %s written, %d bytes", path, len(current))
		return
	}
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if !bytes.Equal(committed, current) {
		t.Fatalf("seed %d output diverges from %s; rerun with -update and review the diff before committing", goldenSeed, path)
	}
}
