package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// EventService defines catalog read operations.
type EventService interface {
	Search(ctx context.Context, query model.EventQuery) (model.EventPage, error)
	Get(ctx context.Context, id string) (model.EventDetail, error)
}

// Event handles HTTP endpoints for the event catalog.
type Event struct {
	eventService EventService
	logger       *logger.Logger
}

// NewEvent creates a new Event handler.
func NewEvent(eventService EventService, logger *logger.Logger) *Event {
	return &Event{eventService: eventService, logger: logger}
}

// Search handles GET /api/events.
func (h *Event) Search(c echo.Context) error {
	query := model.EventQuery{
		Keyword:          c.QueryParam("keyword"),
		CountryCode:      c.QueryParam("countryCode"),
		ClassificationID: c.QueryParam("classificationId"),
		PostalCode:       c.QueryParam("postalCode"),
		LatLong:          c.QueryParam("latlong"),
		StartDateTime:    c.QueryParam("startDateTime"),
		EndDateTime:      c.QueryParam("endDateTime"),
	}

	var err error
	if query.Page, err = intParam(c, "page"); err != nil {
		return c.JSON(http.StatusBadRequest, message{"page must be a number"})
	}
	if query.Size, err = intParam(c, "size"); err != nil {
		return c.JSON(http.StatusBadRequest, message{"size must be a number"})
	}

	page, err := h.eventService.Search(c.Request().Context(), query)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, page)
}

// Get handles GET /api/events/:id.
func (h *Event) Get(c echo.Context) error {
	event, err := h.eventService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, event)
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
