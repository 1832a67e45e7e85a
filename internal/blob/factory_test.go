package blob

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestOpenSelectsDriverFromEnv(t *testing.T) {
	ctx := context.Background()

	t.Setenv("QUOTESYNTH_BLOB_DRIVER", "memory")
	s, err := Open(ctx)
	if err != nil || s.Driver() != DriverMemory {
		t.Fatalf("memory driver: %v, %v", s, err)
	}

	t.Setenv("QUOTESYNTH_BLOB_DRIVER", "fs")
	t.Setenv("QUOTESYNTH_BLOB_FS_ROOT", t.TempDir())
	s, err = Open(ctx)
	if err != nil || s.Driver() != DriverFilesystem {
		t.Fatalf("fs driver: %v, %v", s, err)
	}

	// Empty driver defaults to the filesystem.
	t.Setenv("QUOTESYNTH_BLOB_DRIVER", "")
	s, err = Open(ctx)
	if err != nil || s.Driver() != DriverFilesystem {
		t.Fatalf("default driver: %v, %v", s, err)
	}

	t.Setenv("QUOTESYNTH_BLOB_DRIVER", "s3")
	t.Setenv("QUOTESYNTH_BLOB_S3_BUCKET", "")
	if _, err := Open(ctx); err == nil {
		t.Fatal("s3 driver without bucket accepted")
	}

	t.Setenv("QUOTESYNTH_BLOB_DRIVER", "tape")
	if _, err := Open(ctx); err == nil {
		t.Fatal("unknown driver accepted")
	}
}

// The facade constructors and re-exported types must compose without callers
// touching internal/infra/blob.
func TestFacadeRoundtrip(t *testing.T) {
	ctx := context.Background()
	stores := map[string]Store{
		"memory": NewMemory(),
		"s3mock": NewMockS3ForTests(),
	}
	fsStore, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	stores["fs"] = fsStore

	for name, s := range stores {
		if _, err := s.Put(ctx, "runs/x/out.jsonl", strings.NewReader("{}\n"), PutOptions{ContentType: "application/x-ndjson"}); err != nil {
			t.Fatalf("%s put: %v", name, err)
		}
		info, rc, err := s.Get(ctx, "runs/x/out.jsonl")
		if err != nil {
			t.Fatalf("%s get: %v", name, err)
		}
		data, _ := io.ReadAll(rc)
		_ = rc.Close()
		if string(data) != "{}\n" || info.Size != 3 {
			t.Fatalf("%s roundtrip = %q, %+v", name, data, info)
		}
	}
}
