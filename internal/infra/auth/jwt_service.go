// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"authd/config"
	"authd/internal/domain/service"
	"authd/internal/errors"
)

// tokenTTL fixes the validity window of every issued token: a token issued at
// time T expires at exactly T plus seven days.
const tokenTTL = 7 * 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Process-wide HS256 signing key.
	ttl    time.Duration // Validity window applied to every issued token.
}

// NewJWTService is the constructor for jwtService.
// The signing secret must come from external configuration; there is no
// fallback, and an empty secret fails application startup.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Token),
		ttl:    tokenTTL,
	}, nil
}

// Issue creates a signed token embedding the user's identity claims.
func (s *jwtService) Issue(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the signature, structure and expiry of a token string.
// Expiry and malformed/tampered tokens surface as distinct sentinel errors so
// the delivery layer can log the cause while answering uniformly.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}
	if !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "malformed subject claim")
	}
	claims.UserID = userID

	return claims, nil
}
