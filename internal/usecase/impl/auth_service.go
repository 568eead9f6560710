// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"authd/config"
	deliverycontext "authd/internal/delivery/context"
	"authd/internal/domain/entity"
	domainerrors "authd/internal/domain/errors"
	"authd/internal/domain/repository"
	"authd/internal/domain/service"
	"authd/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultMinPasswordLength = 6

// authService implements the AuthUsecase interface.
type authService struct {
	users             repository.UserRepository
	hasher            service.PasswordHasher
	tokens            service.TokenService
	minPasswordLength int
	logger            *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	users repository.UserRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AuthUsecase {
	minLength := defaultMinPasswordLength
	if cfg.PasswordPolicy != nil && cfg.PasswordPolicy.MinLength > 0 {
		minLength = cfg.PasswordPolicy.MinLength
	}

	return &authService{
		users:             users,
		hasher:            hasher,
		tokens:            tokens,
		minPasswordLength: minLength,
		logger:            logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}
	if len(input.Password) < srv.minPasswordLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password is too short")
	}

	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	// 1. Reject duplicates up front. The store's unique constraint still backs
	// this check, so a concurrent registration cannot slip through between the
	// lookup and the insert.
	_, err := srv.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("registration failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// 2. Hash the password.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("registration failed")
	}

	// 3. Persist the new account.
	newUser := &entity.User{
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := srv.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("registration failed")
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	// 4. Issue a token so the caller is logged in immediately.
	token, err := srv.tokens.Issue(newUser.ID, newUser.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("registration failed")
	}

	srv.log(ctx).Debug("User registered successfully", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{User: newUser, Token: token}, nil
}

// Login orchestrates the login process.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}

	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	// 1. Find the account. An unknown email yields the same error as a wrong
	// password so responses cannot be used to enumerate accounts.
	user, err := srv.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// 2. Check the password.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	// 3. Issue a fresh token.
	token, err := srv.tokens.Issue(user.ID, user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("login failed")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// GetProfile retrieves the account identified by a verified token subject.
func (srv *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.log(ctx).Debug("Getting profile", slog.Any("userID", userID))

	user, err := srv.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// normalizeEmail lowercases and trims an email before it is used as a lookup key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
