package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReviewStore defines persistence operations for event reviews.
type ReviewStore interface {
	Create(ctx context.Context, review Review) (Review, error)
	GetByEventID(ctx context.Context, eventID string) ([]Review, error)
}

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of an event.
type Review struct {
	ID        uuid.UUID `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    uuid.UUID `json:"userId"`
	Reviewer  string    `json:"reviewer"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewParams contains user supplied review fields.
type ReviewParams struct {
	Title  string
	Body   string
	Rating int
}
