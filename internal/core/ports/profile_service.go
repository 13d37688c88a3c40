package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// SignupInput carries a validated signup request.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SignupResult reports the created identity and mirror profile, plus whether
// the best-effort verification email went out.
type SignupResult struct {
	UID                   string          `json:"uid"`
	Email                 string          `json:"email"`
	DisplayName           string          `json:"display_name"`
	Profile               *domain.Profile `json:"profile"`
	VerificationEmailSent bool            `json:"verification_email_sent"`
}

// MeResult bundles the provider identity with its reconciled local profile.
type MeResult struct {
	Identity *domain.Identity `json:"identity"`
	Profile  *domain.Profile  `json:"profile"`
}

// ProfileService reconciles local profiles with identity-provider state and
// applies role changes, provider first.
type ProfileService interface {
	Signup(ctx context.Context, input SignupInput) (*SignupResult, error)

	// EnsureProfile resolves the caller's identity, lazily creating the
	// local profile and healing claim/verified-flag divergence.
	EnsureProfile(ctx context.Context, uid string) (*MeResult, error)

	// AssignRole changes the target's global role on behalf of actor.
	AssignRole(ctx context.Context, actor AuthClaims, targetUID string, role domain.Role) error
}
