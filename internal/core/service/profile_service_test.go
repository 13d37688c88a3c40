package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

const founderEmail = "founder@example.com"

func newProfileService(identity *stubIdentity, profiles *stubProfiles) *ProfileService {
	return NewProfileService(identity, &stubTokens{}, profiles, founderEmail, zerolog.Nop())
}

func TestProfileService_Signup_DefaultsToPatient(t *testing.T) {
	identity := newStubIdentity()
	profiles := newStubProfiles()
	svc := newProfileService(identity, profiles)

	result, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:     "alice@example.com",
		Password:  "s3cret-pass",
		FirstName: "Alice",
		LastName:  "Nguyen",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if result.Profile.Role != domain.RolePatient {
		t.Fatalf("expected patient role, got %s", result.Profile.Role)
	}
	if ident := identity.identities[result.UID]; ident == nil || ident.Role != domain.RolePatient {
		t.Fatalf("expected patient role claim on identity, got %+v", ident)
	}
	if result.DisplayName != "Alice Nguyen" {
		t.Fatalf("unexpected display name: %q", result.DisplayName)
	}
	if !result.VerificationEmailSent {
		t.Fatalf("expected verification email to be reported sent")
	}
}

func TestProfileService_Signup_FounderElevation(t *testing.T) {
	identity := newStubIdentity()
	profiles := newStubProfiles()
	svc := newProfileService(identity, profiles)

	result, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:     "Founder@Example.com",
		Password:  "s3cret-pass",
		FirstName: "Fay",
		LastName:  "Ong",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if result.Profile.Role != domain.RoleFounder {
		t.Fatalf("expected founder role, got %s", result.Profile.Role)
	}
	if ident := identity.identities[result.UID]; ident.Role != domain.RoleFounder {
		t.Fatalf("expected founder role claim, got %s", ident.Role)
	}
}

func TestProfileService_Signup_RollsBackIdentityOnProfileFailure(t *testing.T) {
	identity := newStubIdentity()
	profiles := newStubProfiles()
	profiles.createErr = errors.New("write failed")
	svc := newProfileService(identity, profiles)

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:     "bob@example.com",
		Password:  "s3cret-pass",
		FirstName: "Bob",
		LastName:  "Lim",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(identity.deleted) != 1 {
		t.Fatalf("expected identity rollback, deleted=%v", identity.deleted)
	}
	if len(identity.identities) != 0 {
		t.Fatalf("expected no identities left, got %d", len(identity.identities))
	}
}

func TestProfileService_Signup_RollsBackIdentityOnClaimFailure(t *testing.T) {
	identity := newStubIdentity()
	identity.claimErr = errors.New("claim rejected")
	profiles := newStubProfiles()
	svc := newProfileService(identity, profiles)

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:     "bob@example.com",
		Password:  "s3cret-pass",
		FirstName: "Bob",
		LastName:  "Lim",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(identity.deleted) != 1 {
		t.Fatalf("expected identity rollback, deleted=%v", identity.deleted)
	}
	if len(profiles.profiles) != 0 {
		t.Fatalf("expected no profile persisted")
	}
}

func TestProfileService_EnsureProfile_ProvisionsMissingProfile(t *testing.T) {
	identity := newStubIdentity()
	identity.add(&domain.Identity{
		UID:           "u1",
		Email:         "ada@example.com",
		DisplayName:   "Ada Lovelace Byron",
		EmailVerified: true,
		Role:          domain.RoleStaff,
	})
	profiles := newStubProfiles()
	svc := newProfileService(identity, profiles)

	result, err := svc.EnsureProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("EnsureProfile returned error: %v", err)
	}
	p := result.Profile
	if p.FirstName != "Ada" || p.LastName != "Lovelace Byron" {
		t.Fatalf("unexpected inferred names: %q %q", p.FirstName, p.LastName)
	}
	if p.Role != domain.RoleStaff {
		t.Fatalf("expected existing claim to win, got %s", p.Role)
	}
	if !p.EmailVerified {
		t.Fatalf("expected verified flag copied from identity")
	}
	if len(identity.claimCalls) != 0 {
		t.Fatalf("claim already aligned, expected no reconciliation, got %v", identity.claimCalls)
	}
}

func TestProfileService_EnsureProfile_FounderEmailOverridesClaim(t *testing.T) {
	identity := newStubIdentity()
	identity.add(&domain.Identity{
		UID:   "u1",
		Email: "Founder@Example.com",
		Role:  domain.RolePatient,
	})
	profiles := newStubProfiles()
	svc := newProfileService(identity, profiles)

	result, err := svc.EnsureProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("EnsureProfile returned error: %v", err)
	}
	if result.Profile.Role != domain.RoleFounder {
		t.Fatalf("expected founder role, got %s", result.Profile.Role)
	}
	if identity.identities["u1"].Role != domain.RoleFounder {
		t.Fatalf("expected claim reconciled to founder, got %s", identity.identities["u1"].Role)
	}
}

func TestProfileService_EnsureProfile_SyncsVerifiedFlag(t *testing.T) {
	identity := newStubIdentity()
	identity.add(&domain.Identity{UID: "u1", Email: "ada@example.com", EmailVerified: true, Role: domain.RolePatient})
	profiles := newStubProfiles()
	profiles.profiles["u1"] = &domain.Profile{UID: "u1", Email: "ada@example.com", Role: domain.RolePatient, EmailVerified: false}
	svc := newProfileService(identity, profiles)

	result, err := svc.EnsureProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("EnsureProfile returned error: %v", err)
	}
	if !result.Profile.EmailVerified {
		t.Fatalf("expected verified flag synced to true")
	}
	if !profiles.profiles["u1"].EmailVerified {
		t.Fatalf("expected stored profile updated")
	}
}

func TestProfileService_AssignRole_SelfChangeForbidden(t *testing.T) {
	svc := newProfileService(newStubIdentity(), newStubProfiles())
	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleFounder}

	err := svc.AssignRole(context.Background(), actor, "u1", domain.RoleStaff)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProfileService_AssignRole_RequiresCofounder(t *testing.T) {
	svc := newProfileService(newStubIdentity(), newStubProfiles())
	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleDeptAdmin}

	err := svc.AssignRole(context.Background(), actor, "u2", domain.RoleStaff)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProfileService_AssignRole_CofounderCannotGrantFounder(t *testing.T) {
	identity := newStubIdentity()
	identity.add(&domain.Identity{UID: "u2", Email: "x@example.com", Role: domain.RoleStaff})
	svc := newProfileService(identity, newStubProfiles())
	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleCofounder}

	err := svc.AssignRole(context.Background(), actor, "u2", domain.RoleFounder)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProfileService_AssignRole_CofounderMustOutrankTarget(t *testing.T) {
	identity := newStubIdentity()
	identity.add(&domain.Identity{UID: "u2", Email: "x@example.com", Role: domain.RoleCofounder})
	svc := newProfileService(identity, newStubProfiles())
	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleCofounder}

	// Target already at the actor's own level.
	if err := svc.AssignRole(context.Background(), actor, "u2", domain.RoleStaff); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for peer target, got %v", err)
	}

	// Requested role at the actor's own level.
	identity.identities["u2"].Role = domain.RoleStaff
	if err := svc.AssignRole(context.Background(), actor, "u2", domain.RoleCofounder); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for peer grant, got %v", err)
	}
}

func TestProfileService_AssignRole_ProviderFailureLeavesLocalStateUntouched(t *testing.T) {
	identity := newStubIdentity()
	identity.add(&domain.Identity{UID: "u2", Email: "x@example.com", Role: domain.RoleStaff})
	profiles := newStubProfiles()
	profiles.profiles["u2"] = &domain.Profile{UID: "u2", Role: domain.RoleStaff}
	svc := newProfileService(identity, profiles)

	identity.claimErr = errors.New("provider down")
	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleFounder}
	if err := svc.AssignRole(context.Background(), actor, "u2", domain.RoleDeptAdmin); err == nil {
		t.Fatalf("expected error")
	}
	if profiles.profiles["u2"].Role != domain.RoleStaff {
		t.Fatalf("expected local role untouched, got %s", profiles.profiles["u2"].Role)
	}
}

func TestProfileService_AssignRole_UpdatesClaimThenProfile(t *testing.T) {
	identity := newStubIdentity()
	identity.add(&domain.Identity{UID: "u2", Email: "x@example.com", DisplayName: "Xu Lee", Role: domain.RoleStaff})
	profiles := newStubProfiles()
	profiles.profiles["u2"] = &domain.Profile{UID: "u2", Role: domain.RoleStaff}
	svc := newProfileService(identity, profiles)

	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleFounder}
	if err := svc.AssignRole(context.Background(), actor, "u2", domain.RoleDeptAdmin); err != nil {
		t.Fatalf("AssignRole returned error: %v", err)
	}
	if identity.identities["u2"].Role != domain.RoleDeptAdmin {
		t.Fatalf("expected claim updated")
	}
	if profiles.profiles["u2"].Role != domain.RoleDeptAdmin {
		t.Fatalf("expected profile updated")
	}
}

func TestProfileService_AssignRole_CreatesMissingProfile(t *testing.T) {
	identity := newStubIdentity()
	identity.add(&domain.Identity{UID: "u2", Email: "x@example.com", DisplayName: "Xu Lee", Role: domain.RolePatient})
	profiles := newStubProfiles()
	svc := newProfileService(identity, profiles)

	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleFounder}
	if err := svc.AssignRole(context.Background(), actor, "u2", domain.RoleStaff); err != nil {
		t.Fatalf("AssignRole returned error: %v", err)
	}
	p := profiles.profiles["u2"]
	if p == nil || p.Role != domain.RoleStaff {
		t.Fatalf("expected profile created with staff role, got %+v", p)
	}
	if p.FirstName != "Xu" || p.LastName != "Lee" {
		t.Fatalf("unexpected inferred names: %q %q", p.FirstName, p.LastName)
	}
}
