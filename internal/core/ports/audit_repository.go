package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// AuditRepository persists the request audit trail.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}
