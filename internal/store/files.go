package store

import (
	"context"

	"gorm.io/gorm"

	"vulntrack/internal/models"
)

// FileRepository is the blob-store contract: put/get by id.
type FileRepository interface {
	Put(ctx context.Context, f *models.StoredFile) error
	Get(ctx context.Context, id string) (*models.StoredFile, error)
}

type fileRepository struct {
	db *gorm.DB
}

func (r *fileRepository) Put(ctx context.Context, f *models.StoredFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fileRepository) Get(ctx context.Context, id string) (*models.StoredFile, error) {
	var f models.StoredFile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}
