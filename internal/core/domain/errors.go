package domain

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP status
// codes in a single place; the message is diagnostic only and must never be
// parsed for control flow.
var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrPatientNotFound       = errors.New("patient record not found")
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrMemberNotFound        = errors.New("department member not found")
	ErrAllowedEmailNotFound  = errors.New("allowlist entry not found")
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationExpired     = errors.New("invitation expired")
	ErrDuplicateDepartment   = errors.New("department already exists")
	ErrDuplicateMember       = errors.New("member already exists in department")
	ErrDuplicateAllowedEmail = errors.New("email already on allowlist")
	ErrDuplicateProfile      = errors.New("profile already exists")
	ErrForbidden             = errors.New("access forbidden")
	ErrInvalidRole           = errors.New("invalid role")
	ErrIdentityProvider      = errors.New("identity provider failure")
)
