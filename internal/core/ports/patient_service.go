package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// PatientService manages the caller's own patient record. It never touches
// role or verification state.
type PatientService interface {
	// CreateOrUpdate idempotently upserts the caller's record, filling
	// name fields from the identity provider when absent.
	CreateOrUpdate(ctx context.Context, uid string, patch PatientPatch) (*domain.PatientRecord, error)

	Get(ctx context.Context, uid string) (*domain.PatientRecord, error)

	// Patch applies field-presence updates to an existing record.
	Patch(ctx context.Context, uid string, patch PatientPatch) (*domain.PatientRecord, error)
}
