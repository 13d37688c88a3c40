package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// ProfileService keeps the local profile mirror consistent with the identity
// provider. The provider's role claim is always mutated first; the local row
// is a derivable cache, so a failed local write leaves stale data that
// EnsureProfile heals on the next read, never a wrong permission.
type ProfileService struct {
	identity     ports.IdentityProvider
	tokens       ports.TokenGateway
	profiles     ports.ProfileRepository
	founderEmail string
	logger       zerolog.Logger
}

func NewProfileService(identity ports.IdentityProvider, tokens ports.TokenGateway, profiles ports.ProfileRepository, founderEmail string, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		identity:     identity,
		tokens:       tokens,
		profiles:     profiles,
		founderEmail: strings.ToLower(founderEmail),
		logger:       logger,
	}
}

// Signup registers a credential with the identity provider, sets the initial
// role claim, and creates the mirror profile. The configured founder email is
// auto-elevated. If any step after identity creation fails, the identity is
// deleted so a retry starts clean.
func (s *ProfileService) Signup(ctx context.Context, input ports.SignupInput) (*ports.SignupResult, error) {
	displayName := strings.TrimSpace(input.FirstName + " " + input.LastName)

	uid, err := s.identity.CreateIdentity(ctx, input.Email, input.Password, displayName)
	if err != nil {
		return nil, err
	}

	role := domain.RolePatient
	if strings.EqualFold(input.Email, s.founderEmail) {
		role = domain.RoleFounder
	}

	if err := s.identity.SetRoleClaim(ctx, uid, role); err != nil {
		s.rollbackIdentity(ctx, uid)
		return nil, err
	}

	profile, err := s.profiles.Create(ctx, &domain.Profile{
		UID:           uid,
		Email:         input.Email,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		EmailVerified: false,
		Role:          role,
	})
	if err != nil {
		s.rollbackIdentity(ctx, uid)
		s.logger.Error().Err(err).Str("uid", uid).Msg("signup profile persistence failed, identity rolled back")
		return nil, err
	}

	// Best effort: a failed verification email never fails the signup.
	emailSent := s.sendVerificationEmail(ctx, input.Email, input.Password)

	s.logger.Info().Str("uid", uid).Str("role", string(role)).Msg("signup completed")

	return &ports.SignupResult{
		UID:                   uid,
		Email:                 input.Email,
		DisplayName:           displayName,
		Profile:               profile,
		VerificationEmailSent: emailSent,
	}, nil
}

// EnsureProfile reads the provider identity and reconciles the local mirror:
// it creates the profile on first authenticated contact, elevates the founder
// email to the top role, aligns a divergent role claim with the derived role,
// and syncs the verified flag one way from the provider.
func (s *ProfileService) EnsureProfile(ctx context.Context, uid string) (*ports.MeResult, error) {
	ident, err := s.identity.Lookup(ctx, uid)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUID(ctx, uid)
	switch {
	case err == nil:
		if profile.EmailVerified != ident.EmailVerified {
			if err := s.profiles.SetEmailVerified(ctx, uid, ident.EmailVerified); err != nil {
				return nil, err
			}
			profile.EmailVerified = ident.EmailVerified
		}
	case err == domain.ErrProfileNotFound:
		profile, err = s.provisionProfile(ctx, ident)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &ports.MeResult{Identity: ident, Profile: profile}, nil
}

// provisionProfile creates the missing mirror row, deriving the role: founder
// email always maps to the top role, otherwise an existing valid claim wins,
// otherwise the lowest role. The claim is reconciled before the local write.
func (s *ProfileService) provisionProfile(ctx context.Context, ident *domain.Identity) (*domain.Profile, error) {
	role := domain.RolePatient
	switch {
	case strings.EqualFold(ident.Email, s.founderEmail):
		role = domain.RoleFounder
	case ident.Role.Valid():
		role = ident.Role
	}

	if ident.Role != role {
		if err := s.identity.SetRoleClaim(ctx, ident.UID, role); err != nil {
			return nil, err
		}
		s.logger.Info().Str("uid", ident.UID).Str("role", string(role)).Msg("role claim reconciled")
	}

	first, last := splitName(ident.DisplayName)
	profile, err := s.profiles.Create(ctx, &domain.Profile{
		UID:           ident.UID,
		Email:         ident.Email,
		FirstName:     first,
		LastName:      last,
		EmailVerified: ident.EmailVerified,
		Role:          role,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("uid", ident.UID).Str("role", string(role)).Msg("profile auto-provisioned")
	return profile, nil
}

// AssignRole changes the target's global role on behalf of actor. The claim
// is applied first; only then is the local mirror patched, so a provider
// failure leaves zero local mutation.
func (s *ProfileService) AssignRole(ctx context.Context, actor ports.AuthClaims, targetUID string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	if actor.UID == targetUID {
		return fmt.Errorf("%w: self role changes are not allowed", domain.ErrForbidden)
	}
	if !actor.Role.AtLeast(domain.RoleCofounder) {
		return fmt.Errorf("%w: insufficient role for assignment", domain.ErrForbidden)
	}
	if actor.Role == domain.RoleCofounder && role == domain.RoleFounder {
		return fmt.Errorf("%w: cofounders cannot assign the founder role", domain.ErrForbidden)
	}

	ident, err := s.identity.Lookup(ctx, targetUID)
	if err != nil {
		return err
	}
	current := ident.Role
	if !current.Valid() {
		current = domain.RolePatient
	}

	// A cofounder must strictly outrank both the target's current role and
	// the requested one; founders are bounded only by the self-change rule.
	if actor.Role == domain.RoleCofounder {
		if current.Level() >= actor.Role.Level() || role.Level() >= actor.Role.Level() {
			return fmt.Errorf("%w: insufficient role for target change", domain.ErrForbidden)
		}
	}

	if err := s.identity.SetRoleClaim(ctx, targetUID, role); err != nil {
		return err
	}

	if _, err := s.profiles.FindByUID(ctx, targetUID); err == nil {
		if err := s.profiles.SetRole(ctx, targetUID, role); err != nil {
			// Claim already applied; the mirror stays stale until the
			// next role write. Surface the failure, don't hide it.
			s.logger.Error().Err(err).Str("uid", targetUID).Msg("role claim applied but profile update failed")
			return err
		}
	} else if err == domain.ErrProfileNotFound {
		first, last := splitName(ident.DisplayName)
		if _, err := s.profiles.Create(ctx, &domain.Profile{
			UID:       targetUID,
			Email:     ident.Email,
			FirstName: first,
			LastName:  last,
			Role:      role,
		}); err != nil {
			s.logger.Error().Err(err).Str("uid", targetUID).Msg("role claim applied but profile creation failed")
			return err
		}
	} else {
		return err
	}

	s.logger.Info().
		Str("actor_uid", actor.UID).
		Str("target_uid", targetUID).
		Str("role", string(role)).
		Msg("role assigned")
	return nil
}

func (s *ProfileService) rollbackIdentity(ctx context.Context, uid string) {
	if err := s.identity.DeleteIdentity(ctx, uid); err != nil {
		s.logger.Warn().Err(err).Str("uid", uid).Msg("signup rollback failed, identity left dangling")
	}
}

func (s *ProfileService) sendVerificationEmail(ctx context.Context, email, password string) bool {
	if s.tokens == nil {
		return false
	}
	idToken, _, err := s.tokens.SignInWithPassword(ctx, email, password)
	if err == nil {
		err = s.tokens.SendVerificationEmail(ctx, idToken)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("verification email request failed")
		return false
	}
	return true
}

// splitName infers first/last name fields from a provider display name.
func splitName(displayName string) (first, last string) {
	parts := strings.Fields(displayName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
