package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/core/ports"
)

// Context keys set by Auth. The raw token is kept so handlers can forward it
// to provider endpoints that want the caller's own credential.
const (
	ClaimsKey   = "auth_claims"
	RawTokenKey = "auth_token"
)

// Auth verifies the bearer token with the identity provider and injects the
// resulting claims into context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.VerifyToken(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ClaimsKey, *claims)
			c.Set(RawTokenKey, parts[1])

			return next(c)
		}
	}
}
