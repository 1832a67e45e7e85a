package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"quotesynth/internal/blob/core"
)

func TestStore_PutGetHeadListDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("driver = %s", s.Driver())
	}

	body := []byte(`{"record_index":0}`)
	info, err := s.Put(ctx, "runs/qr_01/out.jsonl", bytes.NewReader(body), core.PutOptions{
		ContentType: "application/x-ndjson",
		Metadata:    map[string]string{"records": "1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(body)) || info.ContentType != "application/x-ndjson" {
		t.Fatalf("put info = %+v", info)
	}

	got, rc, err := s.Get(ctx, "runs/qr_01/out.jsonl")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if !bytes.Equal(data, body) || got.Metadata["records"] != "1" {
		t.Fatalf("get = %q, %+v", data, got)
	}

	if _, err := s.Head(ctx, "runs/qr_01/out.jsonl"); err != nil {
		t.Fatalf("head: %v", err)
	}
	if _, err := s.Head(ctx, "missing"); err == nil {
		t.Fatal("head of missing key succeeded")
	}

	infos, err := s.List(ctx, "runs/")
	if err != nil || len(infos) != 1 {
		t.Fatalf("list = %+v, %v", infos, err)
	}

	ok, err := s.Delete(ctx, "runs/qr_01/out.jsonl")
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	ok, err = s.Delete(ctx, "runs/qr_01/out.jsonl")
	if err != nil || ok {
		t.Fatalf("second delete = %v, %v", ok, err)
	}
}

func TestStore_PutIsCreateOnly(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.Put(ctx, "k", strings.NewReader("one"), core.PutOptions{}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := s.Put(ctx, "k", strings.NewReader("two"), core.PutOptions{}); err == nil {
		t.Fatal("second put succeeded")
	}
}

func TestStore_CopiesInsulateCallers(t *testing.T) {
	ctx := context.Background()
	s := New()
	md := map[string]string{"a": "1"}
	if _, err := s.Put(ctx, "k", strings.NewReader("data"), core.PutOptions{Metadata: md}); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Mutating the caller's map after Put must not reach the store.
	md["a"] = "changed"
	head, err := s.Head(ctx, "k")
	if err != nil || head.Metadata["a"] != "1" {
		t.Fatalf("head = %+v, %v", head, err)
	}

	// Mutating a returned copy must not reach the store either.
	head.Metadata["a"] = "changed"
	again, err := s.Head(ctx, "k")
	if err != nil || again.Metadata["a"] != "1" {
		t.Fatalf("head after mutation = %+v, %v", again, err)
	}
}

func TestStore_PresignUnsupported(t *testing.T) {
	s := New()
	if _, err := s.PresignURL(context.Background(), "k", core.SignedURLOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("presign err = %v", err)
	}
}
