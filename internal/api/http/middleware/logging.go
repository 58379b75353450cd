package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/eventhub-server/internal/logger"
)

// Logging logs every HTTP request with its status and duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status and duration of each request.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			// Let echo render the error so the logged status is final.
			c.Error(err)
		}

		status := c.Response().Status
		duration := time.Since(start)

		l.logger.Info("HTTP request completed",
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds())

		if err != nil {
			l.logger.Error("HTTP request failed",
				"method", req.Method,
				"path", req.URL.Path,
				"error", err.Error(),
				"status", status)
		}

		return nil
	}
}
