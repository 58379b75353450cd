package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TicketStore defines persistence operations for ticket reservations.
type TicketStore interface {
	Create(ctx context.Context, ticket Ticket) (Ticket, error)
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	Cancel(ctx context.Context, id, userID uuid.UUID) error
}

// TicketStatus enumerates reservation states.
type TicketStatus string

const (
	// TicketStatusReserved is an active reservation.
	TicketStatusReserved TicketStatus = "reserved"
	// TicketStatusCancelled is a reservation released by its owner.
	TicketStatusCancelled TicketStatus = "cancelled"
)

// Ticket is a reservation of one event by one user.
type Ticket struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	EventID     string       `json:"eventId"`
	EventName   string       `json:"eventName"`
	EventDate   string       `json:"eventDate,omitempty"`
	EventTime   string       `json:"eventTime,omitempty"`
	Venue       string       `json:"venue,omitempty"`
	City        string       `json:"city,omitempty"`
	Status      TicketStatus `json:"status"`
	ReservedAt  time.Time    `json:"reservedAt"`
	CancelledAt *time.Time   `json:"cancelledAt,omitempty"`
}

// ReserveParams contains the event snapshot stored with a reservation.
type ReserveParams struct {
	EventID   string
	EventName string
	EventDate string
	EventTime string
	Venue     string
	City      string
}
