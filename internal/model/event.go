package model

import "context"

// EventCatalog reads events from the third-party ticketing API.
type EventCatalog interface {
	Search(ctx context.Context, query EventQuery) (EventPage, error)
	GetByID(ctx context.Context, id string) (EventDetail, error)
}

// EventQuery holds catalog search filters. Empty fields are not sent upstream.
type EventQuery struct {
	Keyword          string
	CountryCode      string
	ClassificationID string
	PostalCode       string
	LatLong          string
	StartDateTime    string
	EndDateTime      string
	Page             int
	Size             int
}

// HasLocation reports whether the query narrows results by location.
func (q EventQuery) HasLocation() bool {
	return q.PostalCode != "" || q.LatLong != ""
}

// Event is a catalog entry as listed in search results.
type Event struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city,omitempty"`
	Venue     string `json:"venue,omitempty"`
	Location  string `json:"location,omitempty"`
	ImageURL  string `json:"src,omitempty"`
	LocalDate string `json:"localDate,omitempty"`
	LocalTime string `json:"localTime,omitempty"`
}

// PriceRange is a ticket price band reported by the catalog.
type PriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// EventDetail is a single catalog entry with display-ready date and time.
type EventDetail struct {
	Event
	Date        string       `json:"date,omitempty"`
	Time        string       `json:"time,omitempty"`
	PriceRanges []PriceRange `json:"priceRanges"`
}

// EventPage is one page of search results.
type EventPage struct {
	Events        []Event `json:"events"`
	Page          int     `json:"page"`
	TotalPages    int     `json:"totalPages"`
	TotalElements int     `json:"totalElements"`
	// Fallback is set when a location search came back empty and the
	// results were re-fetched without the location filter.
	Fallback bool `json:"fallback"`
}
