package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// PatientService manages the caller's self-service record. Role and
// verification state are never touched here.
type PatientService struct {
	patients ports.PatientRepository
	identity ports.IdentityProvider
	logger   zerolog.Logger
}

func NewPatientService(patients ports.PatientRepository, identity ports.IdentityProvider, logger zerolog.Logger) *PatientService {
	return &PatientService{patients: patients, identity: identity, logger: logger}
}

// CreateOrUpdate idempotently upserts the caller's record. Name fields fall
// back to the provider display name when the request omits them; sub-document
// patches apply by field presence.
func (s *PatientService) CreateOrUpdate(ctx context.Context, uid string, patch ports.PatientPatch) (*domain.PatientRecord, error) {
	ident, err := s.identity.Lookup(ctx, uid)
	if err != nil {
		return nil, err
	}

	first, last := splitName(ident.DisplayName)
	if patch.FirstName != nil && *patch.FirstName != "" {
		first = *patch.FirstName
	}
	if patch.LastName != nil && *patch.LastName != "" {
		last = *patch.LastName
	}

	record, err := s.patients.Upsert(ctx, &domain.PatientRecord{
		UID:       uid,
		Email:     ident.Email,
		FirstName: first,
		LastName:  last,
	}, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("uid", uid).Msg("patient record upserted")
	return record, nil
}

func (s *PatientService) Get(ctx context.Context, uid string) (*domain.PatientRecord, error) {
	return s.patients.FindByUID(ctx, uid)
}

// Patch applies field-presence updates: absent fields stay unchanged, present
// zero values clear.
func (s *PatientService) Patch(ctx context.Context, uid string, patch ports.PatientPatch) (*domain.PatientRecord, error) {
	record, err := s.patients.Patch(ctx, uid, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("uid", uid).Msg("patient record updated")
	return record, nil
}
