package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vulntrack/internal/models"
)

// RefreshTokenRepository tracks issued refresh JWTs by jti. Consume is the
// rotation primitive: it revokes the row and hands back the owner, so a
// replayed token finds the row already revoked.
type RefreshTokenRepository interface {
	Save(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	Consume(ctx context.Context, jti string) (int64, error)
	RevokeAll(ctx context.Context, userID int64) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func (r *refreshTokenRepository) Save(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&models.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}).Error
}

func (r *refreshTokenRepository) Consume(ctx context.Context, jti string) (int64, error) {
	var userID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.RefreshToken
		if err := tx.Where("jti = ? AND revoked = ? AND expires_at > ?", jti, false, time.Now()).
			First(&rt).Error; err != nil {
			return translate(err)
		}
		userID = rt.UserID
		return tx.Model(&rt).Update("revoked", true).Error
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *refreshTokenRepository) RevokeAll(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

// OneTimeTokenRepository backs verification and password-reset tokens.
// Issuing a token supersedes any outstanding token of the same kind for
// the user; consuming is single-use.
type OneTimeTokenRepository interface {
	Issue(ctx context.Context, kind models.TokenKind, userID int64, value string, expiresAt time.Time) error
	Consume(ctx context.Context, kind models.TokenKind, value string) (int64, error)
}

type oneTimeTokenRepository struct {
	db *gorm.DB
}

func (r *oneTimeTokenRepository) Issue(ctx context.Context, kind models.TokenKind, userID int64, value string, expiresAt time.Time) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OneTimeToken{}).
			Where("user_id = ? AND kind = ? AND consumed_at IS NULL", userID, kind).
			Update("consumed_at", now).Error; err != nil {
			return err
		}
		return tx.Create(&models.OneTimeToken{
			Kind:      kind,
			UserID:    userID,
			Value:     value,
			ExpiresAt: expiresAt,
		}).Error
	})
}

func (r *oneTimeTokenRepository) Consume(ctx context.Context, kind models.TokenKind, value string) (int64, error) {
	var userID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tok models.OneTimeToken
		if err := tx.Where("value = ? AND kind = ? AND consumed_at IS NULL AND expires_at > ?",
			value, kind, time.Now()).
			First(&tok).Error; err != nil {
			return translate(err)
		}
		userID = tok.UserID
		return tx.Model(&tok).Update("consumed_at", time.Now()).Error
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}
