package handler

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
	"github.com/dtroode/eventhub-server/internal/service"
)

// AvatarService defines avatar storage operations.
type AvatarService interface {
	Upload(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error)
}

// Avatar handles HTTP endpoints for user avatars.
type Avatar struct {
	avatarService  AvatarService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAvatar creates a new Avatar handler.
func NewAvatar(avatarService AvatarService, contextManager model.ContextManager, logger *logger.Logger) *Avatar {
	return &Avatar{avatarService: avatarService, contextManager: contextManager, logger: logger}
}

// Upload handles PUT /api/auth/user/avatar. The body is the raw image.
func (h *Avatar) Upload(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	data, err := io.ReadAll(io.LimitReader(c.Request().Body, service.MaxAvatarSize+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, message{"Invalid request body"})
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	err = h.avatarService.Upload(c.Request().Context(), claims.UserID, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, message{"Avatar updated"})
}

// Download handles GET /api/users/:id/avatar.
func (h *Avatar) Download(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, message{"Not found"})
	}

	rc, err := h.avatarService.Download(c.Request().Context(), userID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	head, _ := br.Peek(512)

	return c.Stream(http.StatusOK, http.DetectContentType(head), br)
}
