package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// PatientPatch carries optional self-service field updates; nil means
// unchanged, a non-nil zero value clears the field.
type PatientPatch struct {
	FirstName        *string
	LastName         *string
	Bio              *domain.PatientBio
	EmergencyContact *domain.EmergencyContact
}

// PatientRepository persists self-service patient records.
type PatientRepository interface {
	FindByUID(ctx context.Context, uid string) (*domain.PatientRecord, error)
	Upsert(ctx context.Context, record *domain.PatientRecord, patch PatientPatch) (*domain.PatientRecord, error)
	Patch(ctx context.Context, uid string, patch PatientPatch) (*domain.PatientRecord, error)
}
