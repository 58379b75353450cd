package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

type Review struct {
	reviewStore model.ReviewStore
	userStore   model.UserStore
	logger      *logger.Logger
}

func NewReview(reviewStore model.ReviewStore, userStore model.UserStore, logger *logger.Logger) *Review {
	return &Review{reviewStore: reviewStore, userStore: userStore, logger: logger}
}

// Create stores a review signed with the author's current display name.
func (s *Review) Create(ctx context.Context, userID uuid.UUID, eventID string, params model.ReviewParams) (model.Review, error) {
	eventID = strings.TrimSpace(eventID)
	title := strings.TrimSpace(params.Title)
	body := strings.TrimSpace(params.Body)
	if eventID == "" || title == "" || body == "" {
		return model.Review{}, model.NewValidationError("Title, body and rating are required")
	}
	if params.Rating < model.MinRating || params.Rating > model.MaxRating {
		return model.Review{}, model.NewValidationError(
			fmt.Sprintf("Rating must be between %d and %d", model.MinRating, model.MaxRating))
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.Review{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	now := time.Now()
	review, err := s.reviewStore.Create(ctx, model.Review{
		ID:        uuid.New(),
		EventID:   eventID,
		UserID:    userID,
		Reviewer:  user.Name,
		Title:     title,
		Body:      body,
		Rating:    params.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Review{}, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info("Review service: review created",
		"user_id", userID,
		"event_id", eventID,
		"review_id", review.ID)

	return review, nil
}

func (s *Review) List(ctx context.Context, eventID string) ([]model.Review, error) {
	reviews, err := s.reviewStore.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}
