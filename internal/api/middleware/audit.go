package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// AuditSink accepts audit entries for asynchronous persistence.
type AuditSink interface {
	Record(entry domain.AuditEntry)
}

// Audit records one entry per handled request. It runs inside Auth so the
// entry carries the caller's uid and role; the handler's error still
// propagates untouched. The recorded status is always the one the response
// was committed with: when the handler errors, recording is deferred to the
// response's finish hook so it reflects the error handler's mapping.
func Audit(sink AuditSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			record := func() {
				entry := domain.AuditEntry{
					Method:     c.Request().Method,
					Path:       c.Path(),
					IP:         c.RealIP(),
					UserAgent:  c.Request().UserAgent(),
					StatusCode: c.Response().Status,
					DurationMs: time.Since(start).Milliseconds(),
					CreatedAt:  time.Now().UTC(),
				}
				if claims, ok := c.Get(ClaimsKey).(ports.AuthClaims); ok {
					entry.UID = claims.UID
					entry.Role = string(claims.Role)
				}
				sink.Record(entry)
			}

			err := next(c)
			if err != nil && !c.Response().Committed {
				// The final status is known only once the error handler
				// writes the response.
				c.Response().After(record)
				return err
			}

			record()
			return err
		}
	}
}
