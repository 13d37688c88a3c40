package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/core/ports"
)

// AllowlistHandler manages the invitation allow-list.
type AllowlistHandler struct {
	allowlist ports.AllowlistService
}

func NewAllowlistHandler(allowlist ports.AllowlistService) *AllowlistHandler {
	return &AllowlistHandler{allowlist: allowlist}
}

type addAllowedEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// List returns every allow-list entry.
//
// @Summary      List allowed emails
// @Tags         allowlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.AllowedEmail
// @Router       /allowlist [get]
func (h *AllowlistHandler) List(c echo.Context) error {
	entries, err := h.allowlist.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Add puts an email on the allow-list.
//
// @Summary      Add an allowed email
// @Tags         allowlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addAllowedEmailRequest  true  "Email to allow"
// @Success      201   {object}  domain.AllowedEmail
// @Failure      409   {object}  map[string]string
// @Router       /allowlist [post]
func (h *AllowlistHandler) Add(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addAllowedEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.allowlist.Add(c.Request().Context(), claims, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Remove deletes an allow-list entry.
//
// @Summary      Remove an allowed email
// @Tags         allowlist
// @Security     BearerAuth
// @Param        id  path  string  true  "Entry id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /allowlist/{id} [delete]
func (h *AllowlistHandler) Remove(c echo.Context) error {
	if err := h.allowlist.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
