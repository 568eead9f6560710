// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"authd/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when no user record matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create collides with an existing email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage. The store enforces
	// email uniqueness atomically; a collision yields ErrDuplicateEmail even
	// when two registrations race.
	Create(ctx context.Context, user *entity.User) error
}
