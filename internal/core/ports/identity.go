package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// AuthClaims are the verified claims extracted from a bearer token.
type AuthClaims struct {
	UID   string
	Email string
	Role  domain.Role
}

// TokenVerifier turns a presented bearer token into verified claims.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*AuthClaims, error)
}

// IdentityProvider is the capability set the platform requires from the
// external identity provider. It is the system of record for the role claim;
// every failure is treated as non-retryable within the current request.
type IdentityProvider interface {
	TokenVerifier

	// Lookup fetches the provider-owned identity record.
	Lookup(ctx context.Context, uid string) (*domain.Identity, error)

	// SetRoleClaim replaces the identity's role claim.
	SetRoleClaim(ctx context.Context, uid string, role domain.Role) error

	// CreateIdentity registers a new credential and returns its uid.
	CreateIdentity(ctx context.Context, email, password, displayName string) (string, error)

	// DeleteIdentity removes an identity. Used only to roll back a failed
	// signup.
	DeleteIdentity(ctx context.Context, uid string) error

	// PasswordResetLink generates a password-reset link for the email.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// RefreshResult is the outcome of exchanging a refresh token.
type RefreshResult struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id"`
	ProjectID    string `json:"project_id"`
}

// TokenGateway covers the provider endpoints that operate on end-user
// credentials rather than the admin surface.
type TokenGateway interface {
	// SignInWithPassword exchanges email/password for an ID token.
	SignInWithPassword(ctx context.Context, email, password string) (idToken, refreshToken string, err error)

	// SendVerificationEmail asks the provider to email a verification link
	// to the holder of the ID token.
	SendVerificationEmail(ctx context.Context, idToken string) error

	// RefreshToken exchanges a refresh token for a fresh ID token.
	RefreshToken(ctx context.Context, refreshToken string) (*RefreshResult, error)
}
