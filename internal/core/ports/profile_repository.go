package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// ProfileRepository persists the local identity mirror.
type ProfileRepository interface {
	FindByUID(ctx context.Context, uid string) (*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)

	// Upsert replaces the identity-derived fields and role for the uid,
	// creating the row when absent.
	Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)

	// SetRole patches only the role field of an existing row.
	SetRole(ctx context.Context, uid string, role domain.Role) error

	// SetEmailVerified patches only the verified flag of an existing row.
	SetEmailVerified(ctx context.Context, uid string, verified bool) error
}
