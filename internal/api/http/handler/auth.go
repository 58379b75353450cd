package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// AuthService defines account and session operations.
type AuthService interface {
	Signup(ctx context.Context, params model.SignupParams) (model.User, error)
	Login(ctx context.Context, params model.LoginParams) (model.Session, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params model.ProfileParams) (model.Session, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, params model.ChangePasswordParams) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// Auth handles HTTP endpoints for accounts and sessions.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	cookie         CookieConfig
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, cookie CookieConfig, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Signup handles POST /api/auth/signup.
func (h *Auth) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{"Invalid request body"})
	}

	user, err := h.authService.Signup(c.Request().Context(), model.SignupParams(req))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Created",
		"userId":  user.ID,
	})
}

// Login handles POST /api/auth/login and sets the session cookie.
func (h *Auth) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{"Invalid request body"})
	}

	session, err := h.authService.Login(c.Request().Context(), model.LoginParams(req))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	h.cookie.set(c, session.Token)

	return c.JSON(http.StatusOK, message{"Logged in"})
}

// Logout handles POST /api/auth/logout. The token itself stays valid
// until it expires.
func (h *Auth) Logout(c echo.Context) error {
	h.cookie.clear(c)
	return c.JSON(http.StatusOK, message{"Logged out"})
}

// User handles GET /api/auth/user.
func (h *Auth) User(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /api/auth/user and re-issues the session cookie.
func (h *Auth) UpdateUser(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{"Invalid request body"})
	}

	session, err := h.authService.UpdateProfile(c.Request().Context(), claims.UserID, model.ProfileParams(req))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	h.cookie.set(c, session.Token)

	return c.JSON(http.StatusOK, session.User)
}

// DeleteUser handles DELETE /api/auth/user.
func (h *Auth) DeleteUser(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	if err := h.authService.DeleteAccount(c.Request().Context(), claims.UserID); err != nil {
		return handleError(c, h.logger, err)
	}

	h.cookie.clear(c)

	return c.JSON(http.StatusOK, message{"Account deleted"})
}

// ChangePassword handles PUT /api/auth/change-password.
func (h *Auth) ChangePassword(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{"Invalid request body"})
	}

	err := h.authService.ChangePassword(c.Request().Context(), claims.UserID, model.ChangePasswordParams(req))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, message{"Password updated successfully"})
}
