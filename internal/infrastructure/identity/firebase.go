// Package identity adapts the external identity provider behind the core
// ports. The provider owns the credential and the role claim; everything here
// either reads provider state or asks it to change the claim.
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

const roleClaimKey = "role"

// FirebaseProvider implements ports.IdentityProvider on the Firebase Admin
// SDK. All errors are wrapped in domain.ErrIdentityProvider so callers can
// map them uniformly.
type FirebaseProvider struct {
	client *auth.Client
}

var _ ports.IdentityProvider = (*FirebaseProvider)(nil)

// NewFirebaseProvider initialises the Admin SDK. With an empty credentials
// file the SDK falls back to application default credentials.
func NewFirebaseProvider(ctx context.Context, projectID, credentialsFile string) (*FirebaseProvider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) VerifyToken(ctx context.Context, token string) (*ports.AuthClaims, error) {
	decoded, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: verify token: %v", domain.ErrIdentityProvider, err)
	}

	claims := &ports.AuthClaims{
		UID:  decoded.UID,
		Role: roleFromClaims(decoded.Claims),
	}
	if email, ok := decoded.Claims["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}

func (p *FirebaseProvider) Lookup(ctx context.Context, uid string) (*domain.Identity, error) {
	record, err := p.client.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: get user %s: %v", domain.ErrIdentityProvider, uid, err)
	}
	return &domain.Identity{
		UID:           record.UID,
		Email:         record.Email,
		DisplayName:   record.DisplayName,
		EmailVerified: record.EmailVerified,
		Role:          roleFromClaims(record.CustomClaims),
	}, nil
}

func (p *FirebaseProvider) SetRoleClaim(ctx context.Context, uid string, role domain.Role) error {
	err := p.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{roleClaimKey: string(role)})
	if err != nil {
		return fmt.Errorf("%w: set role claim for %s: %v", domain.ErrIdentityProvider, uid, err)
	}
	return nil
}

func (p *FirebaseProvider) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: create user: %v", domain.ErrIdentityProvider, err)
	}
	return record.UID, nil
}

func (p *FirebaseProvider) DeleteIdentity(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("%w: delete user %s: %v", domain.ErrIdentityProvider, uid, err)
	}
	return nil
}

func (p *FirebaseProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: password reset link: %v", domain.ErrIdentityProvider, err)
	}
	return link, nil
}

// roleFromClaims extracts the role claim; unknown or absent claims come back
// empty so the caller decides the default.
func roleFromClaims(claims map[string]interface{}) domain.Role {
	raw, ok := claims[roleClaimKey].(string)
	if !ok {
		return ""
	}
	role := domain.Role(raw)
	if !role.Valid() {
		return ""
	}
	return role
}
