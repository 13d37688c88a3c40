package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/api/middleware"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// ctxClaims extracts the auth claims injected by the Auth middleware. A
// missing value means the route was registered without the middleware, which
// is a wiring bug surfaced as 401 rather than a panic.
func ctxClaims(c echo.Context) (ports.AuthClaims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(ports.AuthClaims)
	if !ok || claims.UID == "" {
		return ports.AuthClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// ctxRawToken returns the caller's own bearer token for forwarding to
// provider endpoints that act on the end-user credential.
func ctxRawToken(c echo.Context) (string, error) {
	token, ok := c.Get(middleware.RawTokenKey).(string)
	if !ok || token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	return token, nil
}
