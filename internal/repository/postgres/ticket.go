package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/eventhub-server/internal/model"
)

var _ model.TicketStore = (*TicketRepository)(nil)

type TicketRepository struct {
	db *Connection
}

func NewTicketRepository(db *Connection) *TicketRepository {
	return &TicketRepository{
		db: db,
	}
}

// Create inserts a reservation in a single statement. The partial unique
// index on (user_id, event_id) for reserved rows turns a duplicate active
// reservation into model.ErrConflict, whatever the interleaving of callers.
// An owner that no longer exists yields model.ErrNotFound.
func (r *TicketRepository) Create(ctx context.Context, ticket model.Ticket) (model.Ticket, error) {
	query := `
		INSERT INTO tickets (id, user_id, event_id, event_name, event_date, event_time, venue, city, status, reserved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, event_id, event_name, event_date, event_time, venue, city, status, reserved_at, cancelled_at`

	var saved model.Ticket
	err := r.db.QueryRowContext(ctx, query,
		ticket.ID, ticket.UserID, ticket.EventID, ticket.EventName,
		ticket.EventDate, ticket.EventTime, ticket.Venue, ticket.City,
		string(ticket.Status), ticket.ReservedAt,
	).Scan(
		&saved.ID, &saved.UserID, &saved.EventID, &saved.EventName,
		&saved.EventDate, &saved.EventTime, &saved.Venue, &saved.City,
		&saved.Status, &saved.ReservedAt, &saved.CancelledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Ticket{}, model.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return model.Ticket{}, model.ErrNotFound
		}
		return model.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	return saved, nil
}

func (r *TicketRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]model.Ticket, error) {
	query := `
		SELECT id, user_id, event_id, event_name, event_date, event_time, venue, city, status, reserved_at, cancelled_at
		FROM tickets
		WHERE user_id = $1 AND status = 'reserved'
		ORDER BY reserved_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		err := rows.Scan(
			&t.ID, &t.UserID, &t.EventID, &t.EventName,
			&t.EventDate, &t.EventTime, &t.Venue, &t.City,
			&t.Status, &t.ReservedAt, &t.CancelledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}

// Cancel releases an active reservation owned by userID.
func (r *TicketRepository) Cancel(ctx context.Context, id, userID uuid.UUID) error {
	const query = `
		UPDATE tickets SET status = 'cancelled', cancelled_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = 'reserved'`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel ticket: %w", err)
	}

	return requireAffected(res)
}
