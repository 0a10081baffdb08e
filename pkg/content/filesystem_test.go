package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marmos91/filevault/pkg/models"
)

func TestFilesystemStoreRoundTrip(t *testing.T) {
	store := NewFilesystemStore(t.TempDir())
	ctx := context.Background()

	payload := []byte("hello world")
	path, err := store.Write(ctx, payload)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Read = %q, want %q", got, payload)
	}
}

func TestFilesystemStoreUniquePaths(t *testing.T) {
	store := NewFilesystemStore(t.TempDir())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		path, err := store.Write(ctx, []byte("same bytes"))
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if seen[path] {
			t.Fatalf("path %q allocated twice", path)
		}
		seen[path] = true
	}
}

func TestFilesystemStoreCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "storage")
	store := NewFilesystemStore(root)

	if _, err := store.Write(context.Background(), []byte("x")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := os.Stat(root); err != nil {
		t.Errorf("storage root not created: %v", err)
	}
}

func TestFilesystemStoreReadMissing(t *testing.T) {
	store := NewFilesystemStore(t.TempDir())

	_, err := store.Read(context.Background(), filepath.Join(store.Root(), "no-such-file"))
	if !errors.Is(err, models.ErrContentNotFound) {
		t.Errorf("Read missing path = %v, want ErrContentNotFound", err)
	}
}

func TestFilesystemStoreEmptyPayload(t *testing.T) {
	store := NewFilesystemStore(t.TempDir())
	ctx := context.Background()

	path, err := store.Write(ctx, nil)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Read = %d bytes, want 0", len(got))
	}
}
