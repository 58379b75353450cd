package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apictx "github.com/dtroode/eventhub-server/internal/api/http/context"
)

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

func (cfg CookieConfig) set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     apictx.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clear expires the cookie; a negative MaxAge is sent as Max-Age=0.
func (cfg CookieConfig) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     apictx.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
