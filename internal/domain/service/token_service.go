package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure kinds. They are distinguished internally for logging only;
// the delivery layer collapses both into the same unauthenticated response so the
// caller cannot tell a tampered token from a stale one.
var (
	// ErrTokenExpired is returned when a token's signature is valid but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for malformed structure or signature mismatch.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims defines the custom claims embedded in issued tokens.
// UserID is not serialized; it is derived from the registered subject claim.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token carrying the user's identity.
	// The token is valid from the moment of issue until issue time plus the
	// configured lifetime.
	Issue(userID uuid.UUID, email string) (string, error)

	// Verify checks the signature, structure and expiry of a token string.
	// It returns ErrTokenExpired or ErrTokenInvalid (possibly wrapped) on failure.
	Verify(tokenString string) (*Claims, error)
}
