package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/api/metrics"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// Allower decides whether a subject may spend one request from its budget.
type Allower interface {
	Allow(ctx context.Context, scope, subject string) (bool, error)
}

// RateLimit counts requests per subject within the given scope. The subject
// is the authenticated uid when available, the client IP otherwise. Limiter
// errors fail open: an unreachable counter must not take the API down.
func RateLimit(limiter Allower, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := c.RealIP()
			if claims, ok := c.Get(ClaimsKey).(ports.AuthClaims); ok {
				subject = claims.UID
			}

			allowed, err := limiter.Allow(c.Request().Context(), scope, subject)
			if err != nil {
				c.Logger().Warnf("rate limiter unavailable: %v", err)
				return next(c)
			}
			if !allowed {
				metrics.RateLimitRejectionsTotal.WithLabelValues(scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
