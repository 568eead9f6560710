package auth

import (
	"testing"
	"time"

	"authd/config"
	"authd/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_token_secret_key_very_long_for_testing"

func newTokenTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Token = secret

	return cfg
}

// signTestToken signs arbitrary iat/exp claims with the given secret so tests
// can place a token anywhere in its validity window without a fake clock.
func signTestToken(t *testing.T, secret string, userID uuid.UUID, email string, issuedAt time.Time) string {
	t.Helper()

	claims := &service.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(7 * 24 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	jwtService, err := NewJWTService(newTokenTestConfig(testSecret))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := jwtService.Issue(userID, "a@test.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "a@test.com", claims.Email)

	// The validity window is exactly seven days from issue.
	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 7*24*time.Hour, ttl)
}

func TestJWTService_ValidUntilSevenDays(t *testing.T) {
	jwtService, err := NewJWTService(newTokenTestConfig(testSecret))
	require.NoError(t, err)

	userID := uuid.New()

	// Issued 6 days 23 hours ago: still inside the window.
	oldButValid := signTestToken(t, testSecret, userID, "a@test.com",
		time.Now().Add(-(6*24*time.Hour + 23*time.Hour)))
	claims, err := jwtService.Verify(oldButValid)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWTService_ExpiredAfterSevenDays(t *testing.T) {
	jwtService, err := NewJWTService(newTokenTestConfig(testSecret))
	require.NoError(t, err)

	// Issued just past seven days ago: rejected as expired, not merely invalid.
	expired := signTestToken(t, testSecret, uuid.New(), "a@test.com",
		time.Now().Add(-(7*24*time.Hour + 5*time.Second)))
	claims, err := jwtService.Verify(expired)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_TamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTokenTestConfig(testSecret))
	require.NoError(t, err)

	// Signed with a different secret: signature mismatch.
	forged := signTestToken(t, "some_other_secret_key", uuid.New(), "a@test.com", time.Now())
	claims, err := jwtService.Verify(forged)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_MalformedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTokenTestConfig(testSecret))
	require.NoError(t, err)

	claims, err := jwtService.Verify("clearly-not-a-jwt-token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_BadSubjectClaim(t *testing.T) {
	jwtService, err := NewJWTService(newTokenTestConfig(testSecret))
	require.NoError(t, err)

	// Well-signed token whose subject is not a UUID.
	now := time.Now()
	claims := &service.Claims{
		Email: "a@test.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parsed, err := jwtService.Verify(signed)
	assert.Nil(t, parsed)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_EmptySecret(t *testing.T) {
	// Startup must fail when the signing secret is absent.
	jwtService, err := NewJWTService(newTokenTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "token signing secret must be provided")
}
