package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/eventhub-server/internal/model"
)

var _ model.ReviewStore = (*ReviewRepository)(nil)

type ReviewRepository struct {
	db *Connection
}

func NewReviewRepository(db *Connection) *ReviewRepository {
	return &ReviewRepository{
		db: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review model.Review) (model.Review, error) {
	query := `
		INSERT INTO reviews (id, event_id, user_id, reviewer, title, body, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, event_id, user_id, reviewer, title, body, rating, created_at, updated_at`

	var saved model.Review
	err := r.db.QueryRowContext(ctx, query,
		review.ID, review.EventID, review.UserID, review.Reviewer,
		review.Title, review.Body, review.Rating, review.CreatedAt, review.UpdatedAt,
	).Scan(
		&saved.ID, &saved.EventID, &saved.UserID, &saved.Reviewer,
		&saved.Title, &saved.Body, &saved.Rating, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Review{}, model.ErrNotFound
		}
		return model.Review{}, fmt.Errorf("failed to create review: %w", err)
	}

	return saved, nil
}

func (r *ReviewRepository) GetByEventID(ctx context.Context, eventID string) ([]model.Review, error) {
	query := `
		SELECT id, event_id, user_id, reviewer, title, body, rating, created_at, updated_at
		FROM reviews
		WHERE event_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(
			&rv.ID, &rv.EventID, &rv.UserID, &rv.Reviewer,
			&rv.Title, &rv.Body, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}
