package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	apictx "github.com/dtroode/eventhub-server/internal/api/http/context"
	"github.com/dtroode/eventhub-server/internal/api/http/middleware"
	"github.com/dtroode/eventhub-server/internal/model"
	"github.com/dtroode/eventhub-server/internal/service"
	"github.com/dtroode/eventhub-server/internal/testutil"
)

func newTicketEcho(userID uuid.UUID, users model.UserStore) *echo.Echo {
	log := testutil.MakeNoopLogger()
	cm := apictx.NewManager()
	session := middleware.NewSession(staticValidator{model.SessionClaims{UserID: userID}}, cm, log)

	tickets := NewTicket(service.NewTicket(testutil.NewTicketStore(), log), cm, log)
	reviews := NewReview(service.NewReview(testutil.NewReviewStore(), users, log), cm, log)

	e := echo.New()
	e.GET("/api/tickets", tickets.List, session.Require)
	e.POST("/api/tickets/reserve", tickets.Reserve, session.Require)
	e.DELETE("/api/tickets/:id", tickets.Cancel, session.Require)
	e.GET("/api/reviews/:eventId", reviews.List)
	e.POST("/api/reviews/:eventId", reviews.Create, session.Require)
	return e
}

func TestTicket_ReserveListCancel(t *testing.T) {
	e := newTicketEcho(uuid.New(), testutil.NewUserStore())
	auth := apitest.NewCookie(apictx.SessionCookie).Value("ok")

	apitest.New().Handler(e).
		Get("/api/tickets").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().Handler(e).
		Post("/api/tickets/reserve").
		Cookies(auth).
		JSON(`{"eventName":"Show"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	res := apitest.New().Handler(e).
		Post("/api/tickets/reserve").
		Cookies(auth).
		JSON(`{"eventId":"ev1","eventName":"Show","venue":"Hall","city":"Austin"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.ticket.status", "reserved")).
		Assert(jsonpath.Present("$.ticketId")).
		End()

	var created struct {
		TicketID string `json:"ticketId"`
	}
	res.JSON(&created)
	require.NotEmpty(t, created.TicketID)

	apitest.New().Handler(e).
		Post("/api/tickets/reserve").
		Cookies(auth).
		JSON(`{"eventId":"ev1","eventName":"Show"}`).
		Expect(t).
		Status(http.StatusConflict).
		Assert(jsonpath.Equal("$.message", service.DuplicateReservationMessage)).
		End()

	apitest.New().Handler(e).
		Get("/api/tickets").
		Cookies(auth).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		End()

	apitest.New().Handler(e).
		Delete("/api/tickets/" + uuid.NewString()).
		Cookies(auth).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.New().Handler(e).
		Delete("/api/tickets/" + created.TicketID).
		Cookies(auth).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().Handler(e).
		Get("/api/tickets").
		Cookies(auth).
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()
}

func TestReview_CreateAndList(t *testing.T) {
	userID := uuid.New()
	users := testutil.NewUserStore()
	_, err := users.Create(context.Background(), model.User{ID: userID, Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	e := newTicketEcho(userID, users)
	auth := apitest.NewCookie(apictx.SessionCookie).Value("ok")

	apitest.New().Handler(e).
		Post("/api/reviews/ev1").
		Cookies(auth).
		JSON(`{"title":"Great","body":"Loved it","rating":9}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.New().Handler(e).
		Post("/api/reviews/ev1").
		JSON(`{"title":"Great","body":"Loved it","rating":5}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().Handler(e).
		Post("/api/reviews/ev1").
		Cookies(auth).
		JSON(`{"title":"Great","body":"Loved it","rating":5}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.reviewer", "Ann")).
		End()

	apitest.New().Handler(e).
		Get("/api/reviews/ev1").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		Assert(jsonpath.Equal("$[0].title", "Great")).
		End()
}
