package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "authd/internal/delivery/context"
	"authd/internal/delivery/http/response"
	domainerrors "authd/internal/domain/errors"
	"authd/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer token on the Authorization header.
// Every failure answers with the same unauthenticated response; whether the
// token was absent, tampered or expired is only visible in the logs.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c,
				domainerrors.ErrUnauthenticated.ErrorCode(),
				"Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c,
				domainerrors.ErrUnauthenticated.ErrorCode(),
				"Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				m.logger.Debug("Rejected expired token", slog.String("path", c.Path()))
			} else {
				m.logger.Debug("Rejected invalid token", slog.String("path", c.Path()), slog.Any("error", err))
			}

			return response.Unauthorized(c,
				domainerrors.ErrUnauthenticated.ErrorCode(),
				domainerrors.ErrUnauthenticated.Message())
		}

		// Set user info on the context for handlers to use
		c.Set(string(deliverycontext.KeyUserID), claims.UserID)

		return next(c)
	}
}
