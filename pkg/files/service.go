// Package files implements the file access and hierarchy service.
//
// The service owns every rule about the folder/file/image type model: parent
// validation, ownership resolution, visibility gating, paginated listing, and
// content round-trips. Callers hand it an already-resolved user identity (or
// nil for anonymous reads); token handling lives in the auth gate.
package files

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/marmos91/filevault/internal/logger"
	"github.com/marmos91/filevault/pkg/content"
	"github.com/marmos91/filevault/pkg/models"
	"github.com/marmos91/filevault/pkg/store"
)

// Service coordinates metadata and content for all file operations.
type Service struct {
	store   store.Store
	content content.Store
}

// NewService creates a Service over the given stores.
func NewService(metaStore store.Store, contentStore content.Store) *Service {
	return &Service{store: metaStore, content: contentStore}
}

// CreateRequest carries the parameters for Create.
type CreateRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"` // base64-encoded payload, empty for folders
}

// Create validates the request and creates a new file or folder.
//
// Validation order follows the API contract: name, then type, then data.
// For non-root parents the immediate parent must exist, be a folder, and be
// owned by user. Content is written to the content store before the metadata
// record is inserted, so a failed write never leaves metadata behind; an
// orphan payload from a crash between the two steps is accepted since
// nothing references it (no rollback is attempted).
func (s *Service) Create(ctx context.Context, user *models.User, req CreateRequest) (*models.File, error) {
	if req.Name == "" {
		return nil, models.ErrMissingName
	}
	if !models.FileType(req.Type).IsValid() {
		return nil, models.ErrMissingType
	}
	isFolder := req.Type == string(models.TypeFolder)
	if !isFolder && req.Data == "" {
		return nil, models.ErrMissingData
	}

	parentID := req.ParentID
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID {
		parent, err := s.store.GetUserFile(ctx, parentID, user.ID)
		if err != nil {
			if errors.Is(err, models.ErrFileNotFound) {
				return nil, models.ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to load parent: %w", err)
		}
		if !parent.IsFolder() {
			return nil, models.ErrParentNotFolder
		}
	}

	file := &models.File{
		UserID:   user.ID,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentID: parentID,
	}

	if !isFolder {
		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, models.ErrMissingData
		}

		localPath, err := s.content.Write(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("failed to store content: %w", err)
		}
		file.LocalPath = localPath
	}

	if _, err := s.store.CreateFile(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	logger.Debug("File created", "file_id", file.ID, "type", file.Type, "user_id", user.ID)
	return file, nil
}

// Show returns a file owned by user.
//
// A syntactically invalid ID, a missing record, and a record owned by
// somebody else all come back as models.ErrFileNotFound.
func (s *Service) Show(ctx context.Context, user *models.User, id string) (*models.File, error) {
	return s.resolveOwned(ctx, user, id)
}

// List returns one page of the user's files.
//
// A nil parentID lists every file the user owns; a non-nil one restricts the
// listing to direct children of that ID (models.RootParentID selects
// root-level files). Pages are store.PageSize long and zero-based; negative
// pages are treated as page zero. An empty page is a valid, empty result.
func (s *Service) List(ctx context.Context, user *models.User, parentID *string, page int) ([]*models.File, error) {
	if page < 0 {
		page = 0
	}
	files, err := s.store.ListFiles(ctx, user.ID, parentID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

// SetVisibility sets the public flag on a file owned by user and returns the
// updated record. The operation is idempotent: requesting the current state
// is a success, not an error.
func (s *Service) SetVisibility(ctx context.Context, user *models.User, id string, isPublic bool) (*models.File, error) {
	if _, err := s.resolveOwned(ctx, user, id); err != nil {
		return nil, err
	}

	file, err := s.store.SetFilePublic(ctx, id, user.ID, isPublic)
	if err != nil {
		return nil, err
	}

	logger.Debug("File visibility changed", "file_id", id, "is_public", isPublic)
	return file, nil
}

// ReadContent returns the raw payload of a file plus its MIME type, inferred
// from the file name's extension.
//
// requester may be nil for anonymous access: public files are readable by
// anyone, private files only by their owner, and a private file that isn't
// the requester's is indistinguishable from a missing one. Folders have no
// content and return models.ErrFolderHasNoContent. A payload missing from
// the content store is reported as models.ErrFileNotFound.
func (s *Service) ReadContent(ctx context.Context, requester *models.User, id string) ([]byte, string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", models.ErrFileNotFound
	}

	file, err := s.store.GetFile(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if !file.IsPublic && (requester == nil || requester.ID != file.UserID) {
		return nil, "", models.ErrFileNotFound
	}

	if file.IsFolder() {
		return nil, "", models.ErrFolderHasNoContent
	}

	data, err := s.content.Read(ctx, file.LocalPath)
	if err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			logger.Warn("File metadata references missing content", "file_id", file.ID, "path", file.LocalPath)
			return nil, "", models.ErrFileNotFound
		}
		return nil, "", fmt.Errorf("failed to read content: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(file.Name))
	if mimeType == "" {
		return nil, "", models.ErrMimeUnresolved
	}

	return data, mimeType, nil
}

// resolveOwned is the single resolve-and-authorize path used by Show and
// SetVisibility, so the ownership-leak policy cannot drift between
// operations: invalid syntax, absence, and foreign ownership all fold into
// models.ErrFileNotFound.
func (s *Service) resolveOwned(ctx context.Context, user *models.User, id string) (*models.File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrFileNotFound
	}
	return s.store.GetUserFile(ctx, id, user.ID)
}
