package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fleetauth/internal/domain/entity"
)

// Claims defines the custom claims carried by issued tokens. The subject of
// the registered claims is the user ID; email and role ride alongside so the
// HTTP layer can authorize without a store round trip.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into the user's ID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and verifying signed,
// expiring credentials. This abstracts the token format from the use cases.
type TokenService interface {
	// Issue creates a signed token asserting the given identity and role,
	// expiring a fixed duration from issuance.
	Issue(userID uuid.UUID, email string, role entity.Role) (string, error)

	// Verify checks a token string against the signing key and the current
	// time, returning the decoded claims. Failures are reported as the typed
	// domain errors ErrMalformedToken, ErrBadSignature and ErrTokenExpired.
	Verify(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured token lifetime.
	AccessTokenDuration() time.Duration
}
