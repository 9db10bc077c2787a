package models

import "time"

// RefreshToken tracks an issued refresh JWT by its jti so it can be
// revoked before expiry. Rotation revokes the row on first use.
type RefreshToken struct {
	ID        int64     `gorm:"primaryKey"`
	JTI       string    `gorm:"column:jti;size:36;uniqueIndex;not null"`
	UserID    int64     `gorm:"index;not null"`
	Revoked   bool      `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

type TokenKind string

const (
	TokenReset  TokenKind = "reset"
	TokenVerify TokenKind = "verify"
)

// OneTimeToken backs email verification and password reset. A token is
// valid until it expires, is consumed, or a newer token of the same kind
// is issued for the user.
type OneTimeToken struct {
	ID         int64      `gorm:"primaryKey"`
	Kind       TokenKind  `gorm:"size:16;index:idx_one_time_user_kind;not null"`
	UserID     int64      `gorm:"index:idx_one_time_user_kind;not null"`
	Value      string     `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt  time.Time  `gorm:"not null"`
	ConsumedAt *time.Time
	CreatedAt  time.Time
}
