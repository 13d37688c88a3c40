package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// DevVerifier accepts HS256 tokens signed with a shared secret. It exists so
// the API can run locally without provider credentials; never enable it in
// production.
type DevVerifier struct {
	secret []byte
}

var _ ports.TokenVerifier = (*DevVerifier)(nil)

func NewDevVerifier(secret string) *DevVerifier {
	return &DevVerifier{secret: []byte(secret)}
}

func (v *DevVerifier) VerifyToken(_ context.Context, token string) (*ports.AuthClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: verify dev token: %v", domain.ErrIdentityProvider, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", domain.ErrIdentityProvider)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: dev token missing sub", domain.ErrIdentityProvider)
	}

	out := &ports.AuthClaims{UID: sub}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if raw, ok := claims[roleClaimKey].(string); ok {
		if role := domain.Role(raw); role.Valid() {
			out.Role = role
		}
	}
	return out, nil
}
