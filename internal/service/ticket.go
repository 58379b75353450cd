package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// DuplicateReservationMessage is returned when a user already
// holds an active ticket for the event.
const DuplicateReservationMessage = "You already have a reservation for this event"

type Ticket struct {
	ticketStore model.TicketStore
	logger      *logger.Logger
}

func NewTicket(ticketStore model.TicketStore, logger *logger.Logger) *Ticket {
	return &Ticket{ticketStore: ticketStore, logger: logger}
}

// Reserve creates an active ticket. Uniqueness per (user, event) is
// enforced by the store in the same statement that inserts the row.
func (s *Ticket) Reserve(ctx context.Context, userID uuid.UUID, params model.ReserveParams) (model.Ticket, error) {
	eventID := strings.TrimSpace(params.EventID)
	eventName := strings.TrimSpace(params.EventName)
	if eventID == "" || eventName == "" {
		return model.Ticket{}, model.NewValidationError("Event ID and name are required")
	}

	ticket, err := s.ticketStore.Create(ctx, model.Ticket{
		ID:         uuid.New(),
		UserID:     userID,
		EventID:    eventID,
		EventName:  eventName,
		EventDate:  params.EventDate,
		EventTime:  params.EventTime,
		Venue:      params.Venue,
		City:       params.City,
		Status:     model.TicketStatusReserved,
		ReservedAt: time.Now(),
	})
	if errors.Is(err, model.ErrConflict) {
		s.logger.Info("Ticket service: duplicate reservation rejected",
			"user_id", userID,
			"event_id", eventID)
		return model.Ticket{}, model.NewConflictError(DuplicateReservationMessage)
	}
	if err != nil {
		return model.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.logger.Info("Ticket service: ticket reserved",
		"user_id", userID,
		"event_id", eventID,
		"ticket_id", ticket.ID)

	return ticket, nil
}

func (s *Ticket) List(ctx context.Context, userID uuid.UUID) ([]model.Ticket, error) {
	tickets, err := s.ticketStore.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	return tickets, nil
}

// Cancel releases a ticket owned by userID. Tickets of other users are
// reported as model.ErrNotFound.
func (s *Ticket) Cancel(ctx context.Context, userID, ticketID uuid.UUID) error {
	if err := s.ticketStore.Cancel(ctx, ticketID, userID); err != nil {
		return fmt.Errorf("failed to cancel ticket: %w", err)
	}

	s.logger.Info("Ticket service: ticket cancelled",
		"user_id", userID,
		"ticket_id", ticketID)

	return nil
}
