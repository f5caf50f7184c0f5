package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (token string, jti string, err error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (userID uuid.UUID, jti string, err error)
	// AccessTTL is the validity window stamped into issued access tokens.
	AccessTTL() time.Duration
}

// RefreshTokenStore persists issued refresh tokens for rotation and revocation.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	RevokeByJTI(ctx context.Context, jti string) error
}

// RefreshToken is the stored state of an issued refresh token.
type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	UserID         uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ResetTokenStore persists consumable password-reset tokens.
type ResetTokenStore interface {
	Create(ctx context.Context, reset PasswordReset) error
	GetByToken(ctx context.Context, token string) (PasswordReset, error)
	Consume(ctx context.Context, token string) error
}

// PasswordReset is a short-lived, single-use reset grant.
type PasswordReset struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	Consumed  bool
	CreatedAt time.Time
}
