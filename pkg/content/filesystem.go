package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/marmos91/filevault/pkg/models"
)

// FilesystemStore is the default content store, keeping payloads as flat
// files under a single root directory. Each payload gets a random UUID name,
// so concurrent writers never touch the same path.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates a filesystem store rooted at root. The root
// directory is created lazily on first write.
func NewFilesystemStore(root string) *FilesystemStore {
	return &FilesystemStore{root: root}
}

// Root returns the storage root directory.
func (s *FilesystemStore) Root() string {
	return s.root
}

// Write stores data under a fresh UUID-named file and returns its full path.
func (s *FilesystemStore) Write(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage root %q: %w", s.root, err)
	}

	path := filepath.Join(s.root, uuid.New().String())
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write content to %q: %w", path, err)
	}

	return path, nil
}

// Read returns the payload stored at path.
func (s *FilesystemStore) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to read content from %q: %w", path, err)
	}
	return data, nil
}

// Compile-time interface check
var _ Store = (*FilesystemStore)(nil)
