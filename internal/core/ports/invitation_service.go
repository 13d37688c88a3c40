package ports

import (
	"context"
	"time"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// CreateInvitationInput carries a validated invitation request. A zero TTL
// selects the configured default.
type CreateInvitationInput struct {
	Email string
	Role  domain.Role
	TTL   time.Duration
}

// InvitationResult returns the raw token exactly once; it is never
// recoverable afterwards.
type InvitationResult struct {
	Token     string      `json:"token"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// AcceptResult reports the granted role and the upserted profile.
type AcceptResult struct {
	Role    domain.Role     `json:"role"`
	Profile *domain.Profile `json:"profile"`
}

// InvitationService manages the single-use invitation lifecycle.
type InvitationService interface {
	Create(ctx context.Context, actor AuthClaims, input CreateInvitationInput) (*InvitationResult, error)
	Accept(ctx context.Context, actorUID, rawToken string) (*AcceptResult, error)
}
