package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// InvitationRepository persists hashed invitation tokens.
type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error)

	// FindByHash returns the invitation with the given token hash without
	// consuming it. Expiry is the caller's concern.
	FindByHash(ctx context.Context, tokenHash string) (*domain.Invitation, error)

	// ConsumeByHash atomically deletes the invitation with the given token
	// hash and returns it. When two callers race, exactly one receives the
	// row; the other gets domain.ErrInvitationNotFound.
	ConsumeByHash(ctx context.Context, tokenHash string) (*domain.Invitation, error)
}
