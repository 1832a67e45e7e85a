package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"quotesynth/internal/blob/core"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestStore_PutGetHeadListDelete(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	if s.Driver() != core.DriverFilesystem {
		t.Fatalf("driver = %s", s.Driver())
	}

	const key = "runs/qr_01/artifact.jsonl"
	body := []byte("hello world")
	info, err := s.Put(ctx, key, bytes.NewReader(body), core.PutOptions{
		ContentType: "application/x-ndjson",
		Metadata:    map[string]string{"records": "2"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != key || info.Size != int64(len(body)) {
		t.Fatalf("put info = %+v", info)
	}
	if info.ETag != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Fatalf("etag = %s", info.ETag)
	}
	if info.ContentType != "application/x-ndjson" || info.Metadata["records"] != "2" {
		t.Fatalf("put info lost options: %+v", info)
	}

	got, rc, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil || !bytes.Equal(data, body) {
		t.Fatalf("get body = %q, %v", data, err)
	}
	if got.ETag != info.ETag || got.Size != info.Size {
		t.Fatalf("get info = %+v", got)
	}

	head, err := s.Head(ctx, key)
	if err != nil || head.ETag != info.ETag {
		t.Fatalf("head = %+v, %v", head, err)
	}

	infos, err := s.List(ctx, "runs/")
	if err != nil || len(infos) != 1 || infos[0].Key != key {
		t.Fatalf("list = %+v, %v", infos, err)
	}
	infos, err = s.List(ctx, "other/")
	if err != nil || len(infos) != 0 {
		t.Fatalf("list with foreign prefix = %+v, %v", infos, err)
	}

	ok, err := s.Delete(ctx, key)
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	ok, err = s.Delete(ctx, key)
	if err != nil || ok {
		t.Fatalf("second delete = %v, %v", ok, err)
	}
	if _, _, err := s.Get(ctx, key); err == nil {
		t.Fatal("get succeeded after delete")
	}
}

func TestStore_PutIsCreateOnly(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	if _, err := s.Put(ctx, "a.txt", strings.NewReader("one"), core.PutOptions{}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	_, err := s.Put(ctx, "a.txt", strings.NewReader("two"), core.PutOptions{})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second put err = %v", err)
	}
	// Original content must survive the rejected overwrite.
	_, rc, err := s.Get(ctx, "a.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "one" {
		t.Fatalf("content after rejected overwrite = %q", data)
	}
}

func TestStore_KeySanitization(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	for _, key := range []string{"", "  ", "../escape", "/abs/path", "a/../../b"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("put accepted key %q", key)
		}
		if _, err := s.Head(ctx, key); err == nil {
			t.Fatalf("head accepted key %q", key)
		}
	}
}

func TestStore_ListSortsKeys(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	for _, key := range []string{"runs/b/out.csv", "runs/a/out.csv", "runs/c/out.csv"} {
		if _, err := s.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := s.List(ctx, "runs/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"runs/a/out.csv", "runs/b/out.csv", "runs/c/out.csv"}
	if len(infos) != len(want) {
		t.Fatalf("list returned %d keys", len(infos))
	}
	for i, info := range infos {
		if info.Key != want[i] {
			t.Fatalf("list[%d] = %s, want %s", i, info.Key, want[i])
		}
	}
}

func TestStore_PresignURL(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	u, err := s.PresignURL(ctx, "runs/x/out.jsonl", core.SignedURLOptions{Method: "GET"})
	if err != nil || u != "http://local.blob/runs/x/out.jsonl" {
		t.Fatalf("presign = %q, %v", u, err)
	}
	if _, err := s.PresignURL(ctx, "runs/x/out.jsonl", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("put presign err = %v", err)
	}
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestStore_PutReaderFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := s.Put(ctx, "bad.bin", errorReader{}, core.PutOptions{}); err == nil {
		t.Fatal("put succeeded with failing reader")
	}
	if _, err := s.Head(ctx, "bad.bin"); err == nil {
		t.Fatal("sidecar written for failed put")
	}
	if _, err := os.Stat(dir + "/bad.bin"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("data file left behind: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
