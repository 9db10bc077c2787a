package store

import (
	"context"

	"gorm.io/gorm"

	"vulntrack/internal/models"
)

// AssessmentRepository defines assessment persistence. Unlike the levels
// above it, assessments are hard-deletable; delete cascades to the
// assessment's vulnerabilities in one transaction.
type AssessmentRepository interface {
	Create(ctx context.Context, a *models.Assessment) error
	ByID(ctx context.Context, assetID, id int64) (*models.Assessment, error)
	Get(ctx context.Context, id int64) (*models.Assessment, error)
	ListByAsset(ctx context.Context, assetID int64) ([]models.Assessment, error)
	Update(ctx context.Context, a *models.Assessment) error
	Delete(ctx context.Context, id int64) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func (r *assessmentRepository) Create(ctx context.Context, a *models.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assessmentRepository) ByID(ctx context.Context, assetID, id int64) (*models.Assessment, error) {
	var a models.Assessment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND asset_id = ?", id, assetID).
		First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *assessmentRepository) Get(ctx context.Context, id int64) (*models.Assessment, error) {
	var a models.Assessment
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *assessmentRepository) ListByAsset(ctx context.Context, assetID int64) ([]models.Assessment, error) {
	var out []models.Assessment
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assessmentRepository) Update(ctx context.Context, a *models.Assessment) error {
	res := r.db.WithContext(ctx).Model(&models.Assessment{}).
		Where("id = ? AND asset_id = ?", a.ID, a.AssetID).
		Updates(map[string]any{
			"name":       a.Name,
			"executive":  a.Executive,
			"testers":    a.Testers,
			"scope":      a.Scope,
			"start_date": a.StartDate,
			"end_date":   a.EndDate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Assessment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("assessment_id = ?", id).Delete(&models.Vulnerability{}).Error
	})
}
