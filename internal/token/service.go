package token

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vulntrack/internal/models"
)

// ErrUnauthorized is returned for every validation failure: bad signature,
// expired, malformed, revoked. Callers never learn which.
var ErrUnauthorized = errors.New("unauthorized")

// Config carries all token settings explicitly; nothing is read from the
// environment here.
type Config struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
	VerifyTTL  time.Duration
}

// Claims is the access-token payload.
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshStore persists refresh-token ids so they can be revoked before
// expiry. Consume must be single-use.
type RefreshStore interface {
	Save(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	Consume(ctx context.Context, jti string) (int64, error)
}

// OneTimeStore persists verification and reset tokens.
type OneTimeStore interface {
	Issue(ctx context.Context, kind models.TokenKind, userID int64, value string, expiresAt time.Time) error
	Consume(ctx context.Context, kind models.TokenKind, value string) (int64, error)
}

type Service struct {
	cfg     Config
	refresh RefreshStore
	oneTime OneTimeStore
	now     func() time.Time
}

func NewService(cfg Config, refresh RefreshStore, oneTime OneTimeStore) *Service {
	return &Service{cfg: cfg, refresh: refresh, oneTime: oneTime, now: time.Now}
}

// IssueAccessToken returns a short-lived stateless JWT embedding the
// user's id and role.
func (s *Service) IssueAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", err
	}
	log.Printf("token: issued access token for user %d", user.ID)
	return raw, nil
}

// ValidateAccessToken is stateless: signature and expiry only.
func (s *Service) ValidateAccessToken(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		log.Printf("token: access token rejected: %v", err)
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// IssueRefreshToken returns a long-lived JWT whose jti is persisted so the
// token can be revoked independently of its expiry.
func (s *Service) IssueRefreshToken(ctx context.Context, user *models.User) (string, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.RefreshTTL)
	jti := uuid.NewString()
	claims := jwt.RegisteredClaims{
		ID:        jti,
		Issuer:    s.cfg.Issuer,
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", err
	}
	if err := s.refresh.Save(ctx, jti, user.ID, expiresAt); err != nil {
		return "", err
	}
	log.Printf("token: issued refresh token for user %d", user.ID)
	return raw, nil
}

// ValidateRefreshToken checks signature and expiry, then consumes the
// persisted jti. Rotation is on: a successfully validated refresh token is
// revoked here, and the caller issues a fresh pair. A replay therefore
// fails on the Consume step.
func (s *Service) ValidateRefreshToken(ctx context.Context, raw string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid || claims.ID == "" {
		log.Printf("token: refresh token rejected: %v", err)
		return 0, ErrUnauthorized
	}
	userID, err := s.refresh.Consume(ctx, claims.ID)
	if err != nil {
		log.Printf("token: refresh token revoked or unknown (jti %s)", claims.ID)
		return 0, ErrUnauthorized
	}
	return userID, nil
}

// IssueResetToken supersedes any outstanding reset token for the user.
func (s *Service) IssueResetToken(ctx context.Context, user *models.User) (string, error) {
	return s.issueOneTime(ctx, models.TokenReset, user.ID, s.cfg.ResetTTL)
}

func (s *Service) ConsumeResetToken(ctx context.Context, value string) (int64, error) {
	return s.consumeOneTime(ctx, models.TokenReset, value)
}

func (s *Service) IssueVerificationToken(ctx context.Context, user *models.User) (string, error) {
	return s.issueOneTime(ctx, models.TokenVerify, user.ID, s.cfg.VerifyTTL)
}

func (s *Service) ConsumeVerificationToken(ctx context.Context, value string) (int64, error) {
	return s.consumeOneTime(ctx, models.TokenVerify, value)
}

func (s *Service) issueOneTime(ctx context.Context, kind models.TokenKind, userID int64, ttl time.Duration) (string, error) {
	value := uuid.NewString()
	if err := s.oneTime.Issue(ctx, kind, userID, value, s.now().Add(ttl)); err != nil {
		return "", err
	}
	log.Printf("token: issued %s token for user %d", kind, userID)
	return value, nil
}

func (s *Service) consumeOneTime(ctx context.Context, kind models.TokenKind, value string) (int64, error) {
	userID, err := s.oneTime.Consume(ctx, kind, value)
	if err != nil {
		log.Printf("token: %s token rejected", kind)
		return 0, ErrUnauthorized
	}
	return userID, nil
}

func (s *Service) keyFunc(t *jwt.Token) (interface{}, error) {
	return s.cfg.Secret, nil
}
