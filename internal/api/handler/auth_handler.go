package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/api/metrics"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// AuthHandler covers credential lifecycle: signup, login, token refresh, and
// the provider-backed email flows.
type AuthHandler struct {
	profiles ports.ProfileService
	tokens   ports.TokenGateway
	identity ports.IdentityProvider
}

func NewAuthHandler(profiles ports.ProfileService, tokens ports.TokenGateway, identity ports.IdentityProvider) *AuthHandler {
	return &AuthHandler{profiles: profiles, tokens: tokens, identity: identity}
}

type signupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetResponse struct {
	Message string `json:"message"`
}

// Signup registers a credential with the identity provider and creates the
// local profile mirror.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  ports.SignupResult
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.profiles.Signup(c.Request().Context(), ports.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(result.Profile.Role)).Inc()
	return c.JSON(http.StatusCreated, result)
}

// Login exchanges email/password for provider tokens.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idToken, refreshToken, err := h.tokens.SignInWithPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	return c.JSON(http.StatusOK, loginResponse{IDToken: idToken, RefreshToken: refreshToken})
}

// Refresh exchanges a refresh token for a fresh ID token.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  ports.RefreshResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.tokens.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}
	return c.JSON(http.StatusOK, result)
}

// PasswordReset asks the provider to issue a password-reset link for the
// email. The response body is byte-identical whether or not the account
// exists, and the link itself is never returned to the caller.
//
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passwordResetRequest  true  "Account email"
// @Success      200   {object}  passwordResetResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/password-reset [post]
func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// The outcome is discarded: reflecting it would reveal which accounts
	// exist.
	_, _ = h.identity.PasswordResetLink(c.Request().Context(), req.Email)

	return c.JSON(http.StatusOK, passwordResetResponse{
		Message: "if the account exists, a reset link has been issued",
	})
}

// ResendVerification asks the provider to re-send the verification email to
// the authenticated caller.
//
// @Summary      Resend the verification email
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	token, err := ctxRawToken(c)
	if err != nil {
		return err
	}
	if err := h.tokens.SendVerificationEmail(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
