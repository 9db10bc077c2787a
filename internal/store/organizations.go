package store

import (
	"context"

	"gorm.io/gorm"

	"vulntrack/internal/models"
)

// OrganizationRepository defines organization persistence. Organizations
// are soft-deleted only: archive/activate toggle the archived flag and
// never cascade to child assets.
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	ByID(ctx context.Context, id int64) (*models.Organization, error)
	ListActive(ctx context.Context) ([]models.Organization, error)
	ListArchived(ctx context.Context) ([]models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	SetArchived(ctx context.Context, id int64, archived bool) error
}

type orgRepository struct {
	db *gorm.DB
}

func (r *orgRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *orgRepository) ByID(ctx context.Context, id int64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

func (r *orgRepository) ListActive(ctx context.Context) ([]models.Organization, error) {
	return r.list(ctx, false)
}

func (r *orgRepository) ListArchived(ctx context.Context) ([]models.Organization, error) {
	return r.list(ctx, true)
}

func (r *orgRepository) list(ctx context.Context, archived bool) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := r.db.WithContext(ctx).
		Where("archived = ?", archived).
		Order("id").
		Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *orgRepository) Update(ctx context.Context, org *models.Organization) error {
	res := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("id = ?", org.ID).
		Update("name", org.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetArchived is idempotent: re-archiving an archived org is a no-op.
func (r *orgRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return translate(err)
	}
	if org.Archived == archived {
		return nil
	}
	return r.db.WithContext(ctx).Model(&org).Update("archived", archived).Error
}
