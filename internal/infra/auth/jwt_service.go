package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fleetauth/config"
	"fleetauth/internal/domain/entity"
	domainerrors "fleetauth/internal/domain/errors"
	"fleetauth/internal/domain/service"
	"fleetauth/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The signing secret is read-only after construction; tokens move through
// Issued -> Valid -> Expired with no revocation state.
type jwtService struct {
	secret   []byte        // Secret key for signing tokens, process-wide.
	tokenTTL time.Duration // Fixed horizon from issuance to expiry.
	leeway   time.Duration // Grace window for clock skew between issuer and verifier.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	tokenTTL := cfg.Auth.TokenTTL
	if tokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &jwtService{
		secret:   []byte(cfg.SecretKey.Signing),
		tokenTTL: tokenTTL,
		leeway:   cfg.Auth.ClockSkew,
	}, nil
}

// Issue creates a signed token carrying the user's identity and role claims.
func (s *jwtService) Issue(userID uuid.UUID, email string, role entity.Role) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks a token string against the signing secret and the clock.
// Parse failures, signature mismatches and expiry each map to their typed
// domain error; any mutation of the claims invalidates the signature.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Pin the signing method; a token re-signed with another alg is a forgery.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(s.leeway))

	if err != nil {
		return nil, translateJWTError(err)
	}

	return claims, nil
}

// AccessTokenDuration returns the configured token lifetime.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.tokenTTL
}

// translateJWTError maps jwt/v5 sentinel errors onto the domain's typed
// token errors. The library verifies the signature before validating
// claims, so a tampered token reports ErrBadSignature even when it is
// also expired.
func translateJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired.WrapMessage("token verification failed")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domainerrors.ErrBadSignature.WrapMessage("token verification failed")
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domainerrors.ErrMalformedToken.WrapMessage("token verification failed")
	default:
		// Structurally valid token failing another registered-claim check.
		return domainerrors.ErrMalformedToken.WrapMessage(err.Error())
	}
}
