package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/eventhub-server/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, 0)

	e := echo.New()
	e.Use(NewLogging(log).Handle)
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	apitest.New().Handler(e).Get("/ok").Expect(t).Status(http.StatusNoContent).End()
	assert.Contains(t, buf.String(), "HTTP request completed")
	assert.Contains(t, buf.String(), "path=/ok")
	assert.Contains(t, buf.String(), "status=204")

	buf.Reset()
	apitest.New().Handler(e).Get("/boom").Expect(t).Status(http.StatusInternalServerError).End()
	assert.Contains(t, buf.String(), "HTTP request failed")
	assert.Contains(t, buf.String(), "status=500")
	assert.Contains(t, buf.String(), "error=boom")
}
