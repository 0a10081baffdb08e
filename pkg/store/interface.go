// Package store provides the metadata persistence layer.
//
// This package implements the Store interface for file and user metadata:
// ownership, hierarchy, and visibility. Binary content lives in the content
// store; only its local path is recorded here.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL
package store

import (
	"context"

	"github.com/marmos91/filevault/pkg/models"
)

// PageSize is the fixed number of files returned per listing page.
const PageSize = 20

// UserStore defines user metadata operations.
//
// Thread Safety: implementations must be safe for concurrent use from
// multiple goroutines.
type UserStore interface {
	// CreateUser creates a new user. The user ID is generated if empty and
	// returned. Returns models.ErrDuplicateUser if the email is taken.
	CreateUser(ctx context.Context, user *models.User) (string, error)

	// GetUserByID returns a user by their unique ID.
	// Returns models.ErrUserNotFound if no user has this ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail returns a user by email.
	// Returns models.ErrUserNotFound if no user has this email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int64, error)
}

// FileStore defines file metadata operations.
type FileStore interface {
	// CreateFile inserts a new file record. The ID is generated if empty and
	// returned.
	CreateFile(ctx context.Context, file *models.File) (string, error)

	// GetFile returns a file by ID regardless of owner.
	// Returns models.ErrFileNotFound if the record doesn't exist.
	GetFile(ctx context.Context, id string) (*models.File, error)

	// GetUserFile returns a file by ID scoped to its owner. A file owned by
	// somebody else is reported as models.ErrFileNotFound, never as a
	// permission error.
	GetUserFile(ctx context.Context, id, userID string) (*models.File, error)

	// ListFiles returns one page of files owned by userID. A nil parentID
	// lists all owned files; otherwise only direct children of *parentID are
	// returned. Pages are PageSize long, zero-based, and ordered by creation
	// time (ID as tiebreak) so repeated calls are stable. An empty page is a
	// valid result, not an error.
	ListFiles(ctx context.Context, userID string, parentID *string, page int) ([]*models.File, error)

	// SetFilePublic sets the visibility flag on a file owned by userID and
	// returns the updated record. The update is applied unconditionally, so
	// re-publishing an already-public file succeeds.
	// Returns models.ErrFileNotFound if the file doesn't exist or is owned by
	// somebody else.
	SetFilePublic(ctx context.Context, id, userID string, isPublic bool) (*models.File, error)

	// CountFiles returns the total number of file records.
	CountFiles(ctx context.Context) (int64, error)
}

// Store is the full metadata persistence interface.
type Store interface {
	UserStore
	FileStore

	// Healthcheck verifies the database connection is usable.
	Healthcheck(ctx context.Context) error

	// Close releases the underlying database connection.
	Close() error
}
