package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT session tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT session token bound to the given
	// user ID. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Verification fails closed: any signature mismatch, structural
	// malformation, or past expiry yields a typed error (ErrInvalidToken,
	// ErrExpiredToken), never a partial identity.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// TokenLifetime returns the configured validity duration of issued
	// tokens. The session cookie shares this lifetime.
	TokenLifetime() time.Duration
}

// Claims represents the verified contents of a session token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
