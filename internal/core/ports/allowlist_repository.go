package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// AllowlistRepository persists the invitation allow-list.
type AllowlistRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.AllowedEmail, error)
	List(ctx context.Context) ([]domain.AllowedEmail, error)
	Create(ctx context.Context, entry *domain.AllowedEmail) (*domain.AllowedEmail, error)
	Delete(ctx context.Context, id string) error
}
