package usecase

import (
	"context"

	"github.com/google/uuid"

	"fleetauth/internal/domain/entity"
)

// --- Output DTOs ---

// PublicUser is the externally visible projection of a user record.
// The password hash never leaves the core through this type.
type PublicUser struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
}

// NewPublicUser projects a user entity onto its public fields.
func NewPublicUser(user *entity.User) *PublicUser {
	return &PublicUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// AuthOutput carries a freshly minted token together with the public user.
type AuthOutput struct {
	Token string      `json:"token"`
	User  *PublicUser `json:"user"`
}

// AuthUsecase is the facade the delivery layer depends on: the three
// credential operations exposed over HTTP.
type AuthUsecase interface {
	// Register creates an account and mints a token for it.
	// ErrDuplicateEmail passes through untouched.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login authenticates and mints a token.
	// ErrInvalidCredentials passes through untouched.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// VerifyToken verifies a bearer token and re-resolves the user record by
	// the subject claim, so the response reflects the stored name and role
	// rather than stale token claims. Every failure (malformed token, bad
	// signature, expiry, vanished user) surfaces as ErrUnauthorized.
	VerifyToken(ctx context.Context, token string) (*PublicUser, error)
}
