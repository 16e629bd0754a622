// Package handler contains the HTTP handlers for the application.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"authgate/internal/delivery/http/response"
	"authgate/internal/delivery/http/session"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the auth endpoints.
type AuthHandler struct {
	uc       usecase.AuthUsecase
	sessions session.Store
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, sessions session.Store, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		sessions: sessions,
		logger:   logger,
	}
}

// Register handles POST /auth/register. A new account answers 200 (the
// contract fixes 200, not 201) with the generated user_id; every failure
// answers 422 with a single message field.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	// RegisterInput only validates `required` on username; if more tags are
	// added the message must be derived from the validator error instead.
	if err := c.Validate(&input); err != nil {
		return response.Unprocessable(c, "username is required")
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, response.Registered{
		UserID:   output.User.ID,
		Username: output.User.Username,
		Message:  fmt.Sprintf("Welcome %s!", output.User.Username),
	})
}

// Login handles POST /auth/login. On verified credentials the full user
// snapshot is attached to the caller's session; any verification failure
// answers the uniform 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.sessions.AttachUser(c, output.User); err != nil {
		return errors.Wrap(err, "failed to establish session")
	}

	return response.Message(c, http.StatusOK, fmt.Sprintf("Welcome %s!", output.User.Username))
}

// Logout handles GET /auth/logout. Logging out without a session is a no-op,
// not an error; a failed destruction leaves the session live and is the only
// 5xx this contract defines.
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, ok := h.sessions.CurrentUser(c); !ok {
		return response.Message(c, http.StatusOK, "no session")
	}

	if err := h.sessions.Destroy(c); err != nil {
		h.logger.Error("Failed to destroy session", slog.Any("error", err))

		return domainerrors.ErrSessionDestroyFailed
	}

	return response.Message(c, http.StatusOK, "logged out")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "ok"})
}
