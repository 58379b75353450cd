package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// message is the JSON body of every non-resource response.
type message struct {
	Message string `json:"message"`
}

// handleError is the single place where service errors become HTTP
// responses. Unexpected errors are logged and never leaked to the client.
func handleError(c echo.Context, log *logger.Logger, err error) error {
	var (
		validationErr *model.ValidationError
		conflictErr   *model.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, message{validationErr.Message})
	case errors.Is(err, model.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, message{"Invalid credentials"})
	case errors.Is(err, model.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, message{"Invalid token"})
	case errors.As(err, &conflictErr):
		return c.JSON(http.StatusConflict, message{conflictErr.Message})
	case errors.Is(err, model.ErrConflict):
		return c.JSON(http.StatusConflict, message{"Conflict"})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, message{"Not found"})
	case errors.Is(err, model.ErrUpstream):
		log.Error("HTTP handler: event catalog failure",
			"path", c.Request().URL.Path,
			"error", err.Error())
		return c.JSON(http.StatusBadGateway, message{"Event service unavailable"})
	default:
		log.Error("HTTP handler: unexpected error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err.Error())
		return c.JSON(http.StatusInternalServerError, message{"internal server error"})
	}
}
