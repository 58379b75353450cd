package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apictx "github.com/dtroode/eventhub-server/internal/api/http/context"
	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// Session validates the session cookie of API requests and injects the
// claims into the request context.
type Session struct {
	tokens         TokenValidator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewSession creates a new Session middleware instance.
func NewSession(tokens TokenValidator, contextManager model.ContextManager, logger *logger.Logger) *Session {
	return &Session{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Require answers 401 unless the request carries a valid session.
func (m *Session) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(apictx.SessionCookie)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Authentication required"})
		}

		claims, err := m.tokens.Validate(cookie.Value)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
		}

		req := c.Request()
		c.SetRequest(req.WithContext(m.contextManager.SetSessionToContext(req.Context(), claims)))

		return next(c)
	}
}
