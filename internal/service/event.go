package service

import (
	"context"
	"fmt"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

type Event struct {
	catalog model.EventCatalog
	logger  *logger.Logger
}

func NewEvent(catalog model.EventCatalog, logger *logger.Logger) *Event {
	return &Event{catalog: catalog, logger: logger}
}

// Search queries the catalog. An empty location search is retried once
// without the location filter and flagged as a fallback.
func (s *Event) Search(ctx context.Context, query model.EventQuery) (model.EventPage, error) {
	if query.Page < 0 {
		query.Page = 0
	}
	if query.Size <= 0 {
		query.Size = defaultPageSize
	}
	if query.Size > maxPageSize {
		query.Size = maxPageSize
	}

	page, err := s.catalog.Search(ctx, query)
	if err != nil {
		return model.EventPage{}, fmt.Errorf("failed to search events: %w", err)
	}

	if len(page.Events) == 0 && query.HasLocation() {
		s.logger.Debug("Event service: location search empty, retrying without location",
			"postal_code", query.PostalCode,
			"lat_long", query.LatLong)

		query.PostalCode = ""
		query.LatLong = ""
		query.Page = 0

		page, err = s.catalog.Search(ctx, query)
		if err != nil {
			return model.EventPage{}, fmt.Errorf("failed to search events: %w", err)
		}
		page.Fallback = true
	}

	if page.Events == nil {
		page.Events = []model.Event{}
	}

	return page, nil
}

func (s *Event) Get(ctx context.Context, id string) (model.EventDetail, error) {
	if id == "" {
		return model.EventDetail{}, model.NewValidationError("Event ID is required")
	}

	event, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return model.EventDetail{}, fmt.Errorf("failed to get event: %w", err)
	}

	if event.PriceRanges == nil {
		event.PriceRanges = []model.PriceRange{}
	}

	return event, nil
}
