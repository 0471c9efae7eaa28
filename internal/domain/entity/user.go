// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record at the heart of the system. The store assigns
// the ID on insert; identity fields are immutable afterwards.
type User struct {
	ID           uuid.UUID // Store-assigned unique identifier.
	Name         string    // The user's display name.
	Email        string    // Unique across all users; the authentication key. Stored lowercased.
	PasswordHash string    // One-way bcrypt digest. The plaintext is never persisted or logged.
	Role         Role      // Enumerated role carried into issued tokens.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
