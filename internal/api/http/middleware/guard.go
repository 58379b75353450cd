package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	apictx "github.com/dtroode/eventhub-server/internal/api/http/context"
	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// RouteClass is the access class of a request path.
type RouteClass int

const (
	Public RouteClass = iota
	Protected
	AuthOnly
)

func (c RouteClass) String() string {
	switch c {
	case Protected:
		return "protected"
	case AuthOnly:
		return "auth-only"
	default:
		return "public"
	}
}

const (
	LoginPath = "/login"
	HomePath  = "/"
)

type routeRule struct {
	prefix string
	class  RouteClass
}

// Protected prefixes come first: the first matching rule wins.
var defaultRules = []routeRule{
	{"/tickets", Protected},
	{"/profile", Protected},
	{"/settings", Protected},
	{"/rsvp", Protected},
	{"/user", Protected},
	{"/login", AuthOnly},
	{"/signup", AuthOnly},
}

// TokenValidator checks a session token.
type TokenValidator interface {
	Validate(token string) (model.SessionClaims, error)
}

// Guard redirects page requests based on route class and session state.
type Guard struct {
	tokens TokenValidator
	rules  []routeRule
	logger *logger.Logger
}

// NewGuard creates a Guard with the default route table.
func NewGuard(tokens TokenValidator, logger *logger.Logger) *Guard {
	return &Guard{tokens: tokens, rules: defaultRules, logger: logger}
}

// Classify returns the class of p. The path is cleaned first, the same way
// the static file handler resolves it.
func (g *Guard) Classify(p string) RouteClass {
	p = path.Clean("/" + p)
	for _, r := range g.rules {
		if hasSegmentPrefix(p, r.prefix) {
			return r.class
		}
	}
	return Public
}

// Handle is an echo middleware. It validates the cookie on every request
// and never touches the token.
func (g *Guard) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqPath := c.Request().URL.Path
		class := g.Classify(reqPath)
		if class == Public {
			return next(c)
		}

		authenticated := false
		if cookie, err := c.Cookie(apictx.SessionCookie); err == nil && cookie.Value != "" {
			_, err := g.tokens.Validate(cookie.Value)
			authenticated = err == nil
		}

		switch {
		case class == AuthOnly && authenticated:
			g.logger.Debug("Guard: redirecting authenticated user", "path", reqPath)
			return c.Redirect(http.StatusFound, HomePath)
		case class == Protected && !authenticated:
			g.logger.Debug("Guard: redirecting anonymous user", "path", reqPath)
			return c.Redirect(http.StatusFound, LoginPath)
		}

		return next(c)
	}
}

// hasSegmentPrefix matches prefix on path segment boundaries, so "/rsvp"
// matches "/rsvp" and "/rsvp/1" but not "/rsvpx".
func hasSegmentPrefix(p, prefix string) bool {
	if !strings.HasPrefix(p, prefix) {
		return false
	}
	return len(p) == len(prefix) || p[len(prefix)] == '/'
}
