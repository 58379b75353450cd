package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// TicketService defines reservation operations.
type TicketService interface {
	Reserve(ctx context.Context, userID uuid.UUID, params model.ReserveParams) (model.Ticket, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Ticket, error)
	Cancel(ctx context.Context, userID, ticketID uuid.UUID) error
}

// Ticket handles HTTP endpoints for ticket reservations.
type Ticket struct {
	ticketService  TicketService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTicket creates a new Ticket handler.
func NewTicket(ticketService TicketService, contextManager model.ContextManager, logger *logger.Logger) *Ticket {
	return &Ticket{ticketService: ticketService, contextManager: contextManager, logger: logger}
}

type reserveRequest struct {
	EventID   string `json:"eventId"`
	EventName string `json:"eventName"`
	EventDate string `json:"eventDate"`
	EventTime string `json:"eventTime"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
}

// List handles GET /api/tickets.
func (h *Ticket) List(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	tickets, err := h.ticketService.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, tickets)
}

// Reserve handles POST /api/tickets/reserve.
func (h *Ticket) Reserve(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	var req reserveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{"Invalid request body"})
	}

	ticket, err := h.ticketService.Reserve(c.Request().Context(), claims.UserID, model.ReserveParams(req))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":  "Ticket reserved successfully",
		"ticketId": ticket.ID,
		"ticket":   ticket,
	})
}

// Cancel handles DELETE /api/tickets/:id.
func (h *Ticket) Cancel(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, message{"Ticket not found"})
	}

	if err := h.ticketService.Cancel(c.Request().Context(), claims.UserID, ticketID); err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, message{"Ticket cancelled"})
}
