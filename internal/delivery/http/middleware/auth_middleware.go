package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"fleetauth/internal/delivery/http/response"
	"fleetauth/internal/domain/service"
)

// AuthMiddleware provides middleware for bearer-token authentication.
// Identity is always taken from the presented token, never from ambient
// request state.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer token and stores the decoded identity on
// the echo context. All verification failures are reported uniformly as
// unauthorized; the finer-grained cause is only logged.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := BearerToken(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "missing or malformed authorization header")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			m.logger.Warn("Bearer token rejected", slog.Any("error", err))

			return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
		}

		userID, err := claims.UserID()
		if err != nil {
			m.logger.Warn("Bearer token subject is not a valid user id", slog.String("subject", claims.Subject))

			return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
		}

		// Set user info on the context for handlers to use
		c.Set("userID", userID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		return next(c)
	}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}

	return tokenString, true
}
