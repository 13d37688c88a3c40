package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/api/metrics"
	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// ProfileHandler serves the caller's reconciled profile and role changes.
type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Me returns the caller's provider identity and local profile, creating the
// profile on first sight.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  ports.MeResult
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /users/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.profiles.EnsureProfile(c.Request().Context(), claims.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// AssignRole changes the target identity's global role.
//
// @Summary      Assign a global role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid   path      string             true  "Target identity uid"
// @Param        body  body      assignRoleRequest  true  "New role"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /users/{uid}/role [put]
func (h *ProfileHandler) AssignRole(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := domain.Role(req.Role)
	if err := h.profiles.AssignRole(c.Request().Context(), claims, c.Param("uid"), role); err != nil {
		return err
	}

	metrics.RoleAssignmentsTotal.WithLabelValues(string(role)).Inc()
	return c.NoContent(http.StatusNoContent)
}
