package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

type stubInvitationService struct {
	created   *ports.InvitationResult
	createErr error
	accepted  *ports.AcceptResult
	acceptErr error
	lastInput ports.CreateInvitationInput
	lastToken string
}

func (s *stubInvitationService) Create(_ context.Context, _ ports.AuthClaims, input ports.CreateInvitationInput) (*ports.InvitationResult, error) {
	s.lastInput = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubInvitationService) Accept(_ context.Context, _, rawToken string) (*ports.AcceptResult, error) {
	s.lastToken = rawToken
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return s.accepted, nil
}

func TestInvitationHandler_Create(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubInvitationService{created: &ports.InvitationResult{
		Token: "raw-token",
		Email: "a@b.com",
		Role:  domain.RoleStaff,
	}}
	h := NewInvitationHandler(svc)

	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleCofounder}
	body := `{"email":"a@b.com","role":"staff","ttl_minutes":60}`
	c, rec := authedContext(e, http.MethodPost, "/api/v1/invitations", body, actor)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastInput.TTL != time.Hour {
		t.Fatalf("expected 1h TTL, got %v", svc.lastInput.TTL)
	}
}

func TestInvitationHandler_Create_RejectsInvalidEmail(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewInvitationHandler(&stubInvitationService{})

	actor := ports.AuthClaims{UID: "u1", Role: domain.RoleCofounder}
	c, _ := authedContext(e, http.MethodPost, "/api/v1/invitations", `{"email":"nope","role":"staff"}`, actor)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestInvitationHandler_Accept(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubInvitationService{accepted: &ports.AcceptResult{Role: domain.RoleStaff}}
	h := NewInvitationHandler(svc)

	actor := ports.AuthClaims{UID: "u1", Role: domain.RolePatient}
	c, rec := authedContext(e, http.MethodPost, "/api/v1/invitations/accept", `{"token":"raw-token"}`, actor)

	if err := h.Accept(c); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastToken != "raw-token" {
		t.Fatalf("expected raw token forwarded, got %q", svc.lastToken)
	}
}

func TestInvitationHandler_Accept_ErrorPropagates(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewInvitationHandler(&stubInvitationService{acceptErr: domain.ErrInvitationExpired})

	actor := ports.AuthClaims{UID: "u1", Role: domain.RolePatient}
	c, _ := authedContext(e, http.MethodPost, "/api/v1/invitations/accept", `{"token":"raw-token"}`, actor)

	if err := h.Accept(c); err != domain.ErrInvitationExpired {
		t.Fatalf("expected domain.ErrInvitationExpired, got %v", err)
	}
}
