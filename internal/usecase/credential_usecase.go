// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"fleetauth/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// CredentialUsecase owns the credential lifecycle: registration uniqueness,
// password hashing and login verification. It never issues tokens; the auth
// facade composes it with the token service.
type CredentialUsecase interface {
	// Register creates a new user. Fails with domain ErrDuplicateEmail when
	// the email is already registered, whether detected by the pre-check or
	// by the store's unique constraint at insert time.
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)

	// Login authenticates an email/password pair. A missing account and a
	// wrong password both fail with the identical ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput) (*entity.User, error)
}
