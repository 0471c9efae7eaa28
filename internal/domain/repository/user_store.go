// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"fleetauth/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence. The application layer handles
// these outcomes without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an insert violates the unique email
	// constraint. The store's constraint is the single arbiter of concurrent
	// registrations with the same email.
	ErrEmailTaken = errors.New("email already taken")
)

// UserStore defines the durable email -> user mapping the credential core
// consumes. The application layer depends on this interface, not the
// concrete implementation.
type UserStore interface {
	// ExistsByEmail reports whether a user with the given email is persisted.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user and assigns its ID. Returns ErrEmailTaken
	// if the email is already present.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
