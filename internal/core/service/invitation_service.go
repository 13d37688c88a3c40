package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

const (
	tokenBytes = 32

	minInviteTTL = time.Minute
	maxInviteTTL = 30 * 24 * time.Hour
)

// InvitationService manages single-use, expiring, hashed invitation tokens.
type InvitationService struct {
	invitations  ports.InvitationRepository
	allowlist    ports.AllowlistRepository
	profiles     ports.ProfileRepository
	identity     ports.IdentityProvider
	founderEmail string
	defaultTTL   time.Duration
	logger       zerolog.Logger
}

func NewInvitationService(
	invitations ports.InvitationRepository,
	allowlist ports.AllowlistRepository,
	profiles ports.ProfileRepository,
	identity ports.IdentityProvider,
	founderEmail string,
	defaultTTL time.Duration,
	logger zerolog.Logger,
) *InvitationService {
	if defaultTTL <= 0 {
		defaultTTL = 7 * 24 * time.Hour
	}
	return &InvitationService{
		invitations:  invitations,
		allowlist:    allowlist,
		profiles:     profiles,
		identity:     identity,
		founderEmail: strings.ToLower(founderEmail),
		defaultTTL:   defaultTTL,
		logger:       logger,
	}
}

// Create mints an invitation for email with the given role. Only the SHA-256
// hash of the token is persisted; the raw token is returned exactly once and
// cannot be recovered later. The founder role is never invitable.
func (s *InvitationService) Create(ctx context.Context, actor ports.AuthClaims, input ports.CreateInvitationInput) (*ports.InvitationResult, error) {
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, input.Role)
	}
	if input.Role == domain.RoleFounder {
		return nil, fmt.Errorf("%w: cannot invite the founder role", domain.ErrForbidden)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl < minInviteTTL {
		ttl = minInviteTTL
	}
	if ttl > maxInviteTTL {
		ttl = maxInviteTTL
	}

	token, hash, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	inv, err := s.invitations.Create(ctx, &domain.Invitation{
		Email:     strings.ToLower(input.Email),
		Role:      input.Role,
		TokenHash: hash,
		ExpiresAt: time.Now().UTC().Add(ttl),
		CreatedBy: actor.UID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("email", inv.Email).
		Str("role", string(inv.Role)).
		Str("created_by", actor.UID).
		Time("expires_at", inv.ExpiresAt).
		Msg("invitation created")

	return &ports.InvitationResult{
		Token:     token,
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

// Accept redeems a raw token for the authenticated identity. The redemption
// is a best-effort saga: the role claim is applied first, then the profile is
// upserted, and only then is the invitation consumed, so a mid-failure leaves
// the invitation intact and re-acceptable while the claim self-heals via
// EnsureProfile. The final consume is a conditional delete-and-return: when
// two accepts race, only the caller that actually removed the row is treated
// as authoritative, the loser fails with ErrInvitationNotFound.
func (s *InvitationService) Accept(ctx context.Context, actorUID, rawToken string) (*ports.AcceptResult, error) {
	inv, err := s.invitations.FindByHash(ctx, hashInviteToken(rawToken))
	if err != nil {
		return nil, err
	}
	if inv.Expired(time.Now().UTC()) {
		return nil, domain.ErrInvitationExpired
	}

	ident, err := s.identity.Lookup(ctx, actorUID)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(ident.Email)
	if email == "" || email != strings.ToLower(inv.Email) {
		return nil, fmt.Errorf("%w: invitation email mismatch", domain.ErrForbidden)
	}

	if email != s.founderEmail {
		if _, err := s.allowlist.FindByEmail(ctx, email); err != nil {
			if err == domain.ErrAllowedEmailNotFound {
				return nil, fmt.Errorf("%w: email not on allowlist", domain.ErrForbidden)
			}
			return nil, err
		}
	}

	if err := s.identity.SetRoleClaim(ctx, actorUID, inv.Role); err != nil {
		return nil, err
	}

	first, last := splitName(ident.DisplayName)
	profile, err := s.profiles.Upsert(ctx, &domain.Profile{
		UID:           actorUID,
		Email:         ident.Email,
		FirstName:     first,
		LastName:      last,
		EmailVerified: ident.EmailVerified,
		Role:          inv.Role,
	})
	if err != nil {
		// Claim already applied; the invitation stays redeemable and the
		// mirror heals on the next EnsureProfile read.
		s.logger.Error().Err(err).Str("uid", actorUID).Msg("invitation claim applied but profile upsert failed")
		return nil, err
	}

	if _, err := s.invitations.ConsumeByHash(ctx, inv.TokenHash); err != nil {
		s.logger.Warn().Str("uid", actorUID).Msg("invitation consumed concurrently, rejecting accept")
		return nil, err
	}

	s.logger.Info().
		Str("uid", actorUID).
		Str("email", email).
		Str("role", string(inv.Role)).
		Msg("invitation accepted")

	return &ports.AcceptResult{Role: inv.Role, Profile: profile}, nil
}

// generateInviteToken returns a hex-encoded 256-bit random token and its
// SHA-256 hash.
func generateInviteToken() (token, hash string, err error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(b)
	return token, hashInviteToken(token), nil
}

// hashInviteToken derives the stored fingerprint of a raw token.
func hashInviteToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
