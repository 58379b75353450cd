package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// ReviewService defines event review operations.
type ReviewService interface {
	Create(ctx context.Context, userID uuid.UUID, eventID string, params model.ReviewParams) (model.Review, error)
	List(ctx context.Context, eventID string) ([]model.Review, error)
}

// Review handles HTTP endpoints for event reviews.
type Review struct {
	reviewService  ReviewService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewReview creates a new Review handler.
func NewReview(reviewService ReviewService, contextManager model.ContextManager, logger *logger.Logger) *Review {
	return &Review{reviewService: reviewService, contextManager: contextManager, logger: logger}
}

type reviewRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

// List handles GET /api/reviews/:eventId.
func (h *Review) List(c echo.Context) error {
	reviews, err := h.reviewService.List(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create handles POST /api/reviews/:eventId.
func (h *Review) Create(c echo.Context) error {
	claims, ok := h.contextManager.GetSessionFromContext(c.Request().Context())
	if !ok {
		return handleError(c, h.logger, model.ErrInvalidToken)
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{"Invalid request body"})
	}

	review, err := h.reviewService.Create(c.Request().Context(), claims.UserID, c.Param("eventId"), model.ReviewParams(req))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, review)
}
