// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single account record in the system. The email acts as the
// login identifier and is stored in its normalized form (lowercased, trimmed).
// A record is created once at registration and never modified afterwards.
type User struct {
	ID           uuid.UUID // The unique identifier for the account.
	Email        string    // Normalized email, unique across all records.
	PasswordHash string    // The bcrypt hash of the account's password.
	CreatedAt    time.Time // Timestamp of when the account was registered.
}
