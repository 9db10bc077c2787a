package store

import (
	"context"

	"gorm.io/gorm"

	"vulntrack/internal/models"
)

// VulnerabilityRepository defines finding persistence.
type VulnerabilityRepository interface {
	Create(ctx context.Context, v *models.Vulnerability) error
	ByID(ctx context.Context, id int64) (*models.Vulnerability, error)
	ListByAssessment(ctx context.Context, assessmentID int64) ([]models.Vulnerability, error)
	Update(ctx context.Context, v *models.Vulnerability) error
	Delete(ctx context.Context, id int64) error
	SetJiraKey(ctx context.Context, id int64, key string) error
}

type vulnRepository struct {
	db *gorm.DB
}

func (r *vulnRepository) Create(ctx context.Context, v *models.Vulnerability) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vulnRepository) ByID(ctx context.Context, id int64) (*models.Vulnerability, error) {
	var v models.Vulnerability
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *vulnRepository) ListByAssessment(ctx context.Context, assessmentID int64) ([]models.Vulnerability, error) {
	var out []models.Vulnerability
	if err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *vulnRepository) Update(ctx context.Context, v *models.Vulnerability) error {
	res := r.db.WithContext(ctx).Model(&models.Vulnerability{}).
		Where("id = ? AND assessment_id = ?", v.ID, v.AssessmentID).
		Updates(map[string]any{
			"name":        v.Name,
			"severity":    v.Severity,
			"status":      v.Status,
			"description": v.Description,
			"remediation": v.Remediation,
			"evidence":    v.Evidence,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *vulnRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Vulnerability{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *vulnRepository) SetJiraKey(ctx context.Context, id int64, key string) error {
	res := r.db.WithContext(ctx).Model(&models.Vulnerability{}).
		Where("id = ?", id).
		Update("jira_issue_key", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
