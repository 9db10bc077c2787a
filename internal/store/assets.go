package store

import (
	"context"

	"gorm.io/gorm"

	"vulntrack/internal/models"
)

// AssetRepository defines asset persistence. Every lookup is scoped by the
// owning organization id; the ownership edge is immutable after creation.
type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	ByID(ctx context.Context, orgID, id int64) (*models.Asset, error)
	Get(ctx context.Context, id int64) (*models.Asset, error)
	ListActive(ctx context.Context, orgID int64) ([]models.Asset, error)
	ListArchived(ctx context.Context, orgID int64) ([]models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	SetArchived(ctx context.Context, id int64, archived bool) error
}

type assetRepository struct {
	db *gorm.DB
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) ByID(ctx context.Context, orgID, id int64) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).
		Where("id = ? AND org_id = ?", id, orgID).
		First(&asset).Error; err != nil {
		return nil, translate(err)
	}
	return &asset, nil
}

func (r *assetRepository) Get(ctx context.Context, id int64) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).First(&asset, id).Error; err != nil {
		return nil, translate(err)
	}
	return &asset, nil
}

func (r *assetRepository) ListActive(ctx context.Context, orgID int64) ([]models.Asset, error) {
	return r.list(ctx, orgID, false)
}

func (r *assetRepository) ListArchived(ctx context.Context, orgID int64) ([]models.Asset, error) {
	return r.list(ctx, orgID, true)
}

func (r *assetRepository) list(ctx context.Context, orgID int64, archived bool) ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND archived = ?", orgID, archived).
		Order("id").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) error {
	res := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ? AND org_id = ?", asset.ID, asset.OrgID).
		Update("name", asset.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetArchived is idempotent and touches only the asset's own flag.
func (r *assetRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	var asset models.Asset
	if err := r.db.WithContext(ctx).First(&asset, id).Error; err != nil {
		return translate(err)
	}
	if asset.Archived == archived {
		return nil
	}
	return r.db.WithContext(ctx).Model(&asset).Update("archived", archived).Error
}
