package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apictx "github.com/dtroode/eventhub-server/internal/api/http/context"
	"github.com/dtroode/eventhub-server/internal/api/http/middleware"
	"github.com/dtroode/eventhub-server/internal/password"
	"github.com/dtroode/eventhub-server/internal/service"
	"github.com/dtroode/eventhub-server/internal/testutil"
	"github.com/dtroode/eventhub-server/internal/token"
)

const weekSeconds = 604800

func newAuthEcho(t *testing.T, secure bool) *echo.Echo {
	t.Helper()
	log := testutil.MakeNoopLogger()

	jwtManager, err := token.NewJWT("handler-secret")
	require.NoError(t, err)
	tokens := service.NewTokenService(jwtManager, log)
	authService := service.NewAuth(testutil.NewUserStore(), password.NewBcrypt(4), tokens, log)

	cm := apictx.NewManager()
	h := NewAuth(authService, cm, CookieConfig{Secure: secure, TTL: token.SessionTTL}, log)
	session := middleware.NewSession(tokens, cm, log)

	e := echo.New()
	e.POST("/api/auth/signup", h.Signup)
	e.POST("/api/auth/login", h.Login)
	e.POST("/api/auth/logout", h.Logout)
	e.GET("/api/auth/user", h.User, session.Require)
	e.PUT("/api/auth/user", h.UpdateUser, session.Require)
	e.DELETE("/api/auth/user", h.DeleteUser, session.Require)
	e.PUT("/api/auth/change-password", h.ChangePassword, session.Require)
	return e
}

func sessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == apictx.SessionCookie {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", apictx.SessionCookie)
	return nil
}

func login(t *testing.T, e *echo.Echo, email, pw string) *http.Cookie {
	t.Helper()
	res := apitest.New().Handler(e).
		Post("/api/auth/login").
		JSON(`{"email":"` + email + `","password":"` + pw + `"}`).
		Expect(t).Status(http.StatusOK).End()
	return sessionCookie(t, res.Response)
}

func signup(t *testing.T, e *echo.Echo, name, email, pw string) {
	t.Helper()
	apitest.New().Handler(e).
		Post("/api/auth/signup").
		JSON(`{"name":"` + name + `","email":"` + email + `","password":"` + pw + `"}`).
		Expect(t).Status(http.StatusCreated).End()
}

func TestAuth_SignupLoginFlow(t *testing.T) {
	e := newAuthEcho(t, false)

	apitest.New().Handler(e).
		Post("/api/auth/signup").
		JSON(`{"name":"A","email":"a@x.com","password":"secret1"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.message", "Created")).
		Assert(jsonpath.Present("$.userId")).
		End()

	apitest.New().Handler(e).
		Post("/api/auth/signup").
		JSON(`{"name":"A","email":"a@x.com","password":"secret1"}`).
		Expect(t).
		Status(http.StatusConflict).
		Assert(jsonpath.Equal("$.message", "User exists")).
		End()

	apitest.New().Handler(e).
		Post("/api/auth/login").
		JSON(`{"email":"a@x.com","password":"wrong"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.message", "Invalid credentials")).
		CookieNotPresent(apictx.SessionCookie).
		End()

	apitest.New().Handler(e).
		Post("/api/auth/login").
		JSON(`{"email":"nobody@x.com","password":"secret1"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.message", "Invalid credentials")).
		End()

	res := apitest.New().Handler(e).
		Post("/api/auth/login").
		JSON(`{"email":"a@x.com","password":"secret1"}`).
		Expect(t).
		Status(http.StatusOK).
		Cookies(apitest.NewCookie(apictx.SessionCookie).MaxAge(weekSeconds).HttpOnly(true).Path("/")).
		End()

	cookie := sessionCookie(t, res.Response)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure)
	assert.NotEmpty(t, cookie.Value)

	apitest.New().Handler(e).
		Get("/api/auth/user").
		Cookies(apitest.NewCookie(apictx.SessionCookie).Value(cookie.Value)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.email", "a@x.com")).
		Assert(jsonpath.NotPresent("$.passwordHash")).
		End()
}

func TestAuth_SignupMissingFields(t *testing.T) {
	e := newAuthEcho(t, false)

	apitest.New().Handler(e).
		Post("/api/auth/signup").
		JSON(`{"email":"a@x.com"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.message", "Missing fields")).
		End()

	apitest.New().Handler(e).
		Post("/api/auth/signup").
		JSON(`{not json`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestAuth_SecureCookieInProduction(t *testing.T) {
	e := newAuthEcho(t, true)
	signup(t, e, "A", "a@x.com", "pw")

	cookie := login(t, e, "a@x.com", "pw")
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
}

func TestAuth_Logout(t *testing.T) {
	e := newAuthEcho(t, false)

	res := apitest.New().Handler(e).
		Post("/api/auth/logout").
		Expect(t).
		Status(http.StatusOK).
		End()

	setCookie := res.Response.Header.Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(setCookie, apictx.SessionCookie+"="))
	assert.Contains(t, setCookie, "Max-Age=0")
}

func TestAuth_UserRequiresSession(t *testing.T) {
	e := newAuthEcho(t, false)

	apitest.New().Handler(e).
		Get("/api/auth/user").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	expired, err := token.NewJWT("handler-secret", token.WithClock(func() time.Time {
		return time.Now().Add(-8 * 24 * time.Hour)
	}))
	require.NoError(t, err)
	stale, _, err := expired.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	apitest.New().Handler(e).
		Get("/api/auth/user").
		Cookies(apitest.NewCookie(apictx.SessionCookie).Value(stale)).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestAuth_ProfileAndPassword(t *testing.T) {
	e := newAuthEcho(t, false)
	signup(t, e, "A", "a@x.com", "pw")
	signup(t, e, "B", "b@x.com", "pw")
	cookie := login(t, e, "a@x.com", "pw")
	auth := apitest.NewCookie(apictx.SessionCookie).Value(cookie.Value)

	apitest.New().Handler(e).
		Put("/api/auth/user").
		Cookies(auth).
		JSON(`{"name":"A","email":"b@x.com"}`).
		Expect(t).
		Status(http.StatusConflict).
		End()

	res := apitest.New().Handler(e).
		Put("/api/auth/user").
		Cookies(auth).
		JSON(`{"name":"Ann","email":"ann@x.com"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.name", "Ann")).
		CookiePresent(apictx.SessionCookie).
		End()
	auth = apitest.NewCookie(apictx.SessionCookie).Value(sessionCookie(t, res.Response).Value)

	apitest.New().Handler(e).
		Put("/api/auth/change-password").
		Cookies(auth).
		JSON(`{"currentPassword":"nope","newPassword":"pw2"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.message", "Current password is incorrect")).
		End()

	apitest.New().Handler(e).
		Put("/api/auth/change-password").
		Cookies(auth).
		JSON(`{"currentPassword":"pw","newPassword":"pw2"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	login(t, e, "ann@x.com", "pw2")

	apitest.New().Handler(e).
		Delete("/api/auth/user").
		Cookies(auth).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().Handler(e).
		Get("/api/auth/user").
		Cookies(auth).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}
