package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/marmos91/filevault/pkg/models"
)

// ============================================
// FILE OPERATIONS
// ============================================

func (s *GORMStore) CreateFile(ctx context.Context, file *models.File) (string, error) {
	if file.ParentID == "" {
		file.ParentID = models.RootParentID
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}
	return createWithID(s.db, ctx, file, func(f *models.File, id string) { f.ID = id }, file.ID, models.ErrFileNotFound)
}

func (s *GORMStore) GetFile(ctx context.Context, id string) (*models.File, error) {
	return getByField[models.File](s.db, ctx, "id", id, models.ErrFileNotFound)
}

func (s *GORMStore) GetUserFile(ctx context.Context, id, userID string) (*models.File, error) {
	var file models.File
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&file).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrFileNotFound)
	}
	return &file, nil
}

// ListFiles returns one page of files owned by userID.
//
// The ordering is created_at then id, ascending. Both columns are immutable
// after insert, so two requests for the same page see the same slice absent
// concurrent writes, and consecutive pages are disjoint.
func (s *GORMStore) ListFiles(ctx context.Context, userID string, parentID *string, page int) ([]*models.File, error) {
	if page < 0 {
		page = 0
	}

	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if parentID != nil {
		q = q.Where("parent_id = ?", *parentID)
	}

	files := make([]*models.File, 0, PageSize)
	err := q.Order("created_at ASC, id ASC").
		Offset(page * PageSize).
		Limit(PageSize).
		Find(&files).Error
	if err != nil {
		return nil, convertStoreError(err)
	}
	return files, nil
}

// SetFilePublic updates the visibility flag and returns the refreshed record.
// The update is applied unconditionally: setting a flag to its current value
// is a success, which keeps publish/unpublish idempotent.
func (s *GORMStore) SetFilePublic(ctx context.Context, id, userID string, isPublic bool) (*models.File, error) {
	var updated models.File
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var file models.File
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&file).Error; err != nil {
			return convertNotFoundError(err, models.ErrFileNotFound)
		}

		if err := tx.Model(&file).Update("is_public", isPublic).Error; err != nil {
			return convertStoreError(err)
		}

		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			return convertNotFoundError(err, models.ErrFileNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *GORMStore) CountFiles(ctx context.Context) (int64, error) {
	return countAll[models.File](s.db, ctx)
}
