package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/api/metrics"
	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// InvitationHandler covers issuing and redeeming role invitations.
type InvitationHandler struct {
	invitations ports.InvitationService
}

func NewInvitationHandler(invitations ports.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

type createInvitationRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required"`
	TTLMinutes int    `json:"ttl_minutes" validate:"omitempty,gt=0"`
}

type acceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

// Create issues an invitation and returns the raw token once.
//
// @Summary      Create an invitation
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvitationRequest  true  "Invitation details"
// @Success      201   {object}  ports.InvitationResult
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /invitations [post]
func (h *InvitationHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.invitations.Create(c.Request().Context(), claims, ports.CreateInvitationInput{
		Email: req.Email,
		Role:  domain.Role(req.Role),
		TTL:   time.Duration(req.TTLMinutes) * time.Minute,
	})
	if err != nil {
		return err
	}

	metrics.InvitationsCreatedTotal.WithLabelValues(string(result.Role)).Inc()
	return c.JSON(http.StatusCreated, result)
}

// Accept redeems an invitation for the authenticated caller.
//
// @Summary      Accept an invitation
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      acceptInvitationRequest  true  "Raw invitation token"
// @Success      200   {object}  ports.AcceptResult
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /invitations/accept [post]
func (h *InvitationHandler) Accept(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req acceptInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.invitations.Accept(c.Request().Context(), claims.UID, req.Token)
	if err != nil {
		metrics.InvitationsAcceptedTotal.WithLabelValues(acceptOutcome(err)).Inc()
		return err
	}

	metrics.InvitationsAcceptedTotal.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusOK, result)
}

func acceptOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvitationNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvitationExpired):
		return "expired"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
