package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// AllowlistService manages which emails may accept invitations.
type AllowlistService interface {
	List(ctx context.Context) ([]domain.AllowedEmail, error)
	Add(ctx context.Context, actor AuthClaims, email string) (*domain.AllowedEmail, error)
	Remove(ctx context.Context, id string) error
}
