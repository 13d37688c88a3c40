package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// AllowlistService manages which emails may accept invitations.
type AllowlistService struct {
	allowlist ports.AllowlistRepository
	logger    zerolog.Logger
}

func NewAllowlistService(allowlist ports.AllowlistRepository, logger zerolog.Logger) *AllowlistService {
	return &AllowlistService{allowlist: allowlist, logger: logger}
}

func (s *AllowlistService) List(ctx context.Context) ([]domain.AllowedEmail, error) {
	return s.allowlist.List(ctx)
}

// Add stores the email lower-cased so allow-list checks stay
// case-insensitive.
func (s *AllowlistService) Add(ctx context.Context, actor ports.AuthClaims, email string) (*domain.AllowedEmail, error) {
	entry, err := s.allowlist.Create(ctx, &domain.AllowedEmail{
		Email:     strings.ToLower(email),
		CreatedBy: actor.UID,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", entry.Email).Str("created_by", actor.UID).Msg("allowlist entry added")
	return entry, nil
}

func (s *AllowlistService) Remove(ctx context.Context, id string) error {
	if err := s.allowlist.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("allowlist entry removed")
	return nil
}
