// Package catalog reads events from the Ticketmaster Discovery API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/dtroode/eventhub-server/internal/config"
	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

const (
	defaultCountryCode = "US"
	maxCacheSizeMB     = 64
	maxBodySize        = 4 << 20

	detailDateLayout = "Monday, January 2, 2006"
	detailTimeLayout = "3:04 PM"
)

var _ model.EventCatalog = (*Ticketmaster)(nil)

// Ticketmaster is a cached, coalescing client of the Discovery API.
// Responses are cached by request, never by user.
type Ticketmaster struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   *bigcache.BigCache
	group   singleflight.Group
	logger  *logger.Logger
}

func New(cfg config.Ticketmaster, logger *logger.Logger) (*Ticketmaster, error) {
	cacheCfg := bigcache.DefaultConfig(cfg.CacheTTL)
	cacheCfg.HardMaxCacheSize = maxCacheSizeMB
	cacheCfg.Verbose = false

	cache, err := bigcache.NewBigCache(cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}

	return &Ticketmaster{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   cache,
		logger:  logger,
	}, nil
}

func (t *Ticketmaster) Close() error {
	return t.cache.Close()
}

func (t *Ticketmaster) Search(ctx context.Context, query model.EventQuery) (model.EventPage, error) {
	params := url.Values{}
	setParam(params, "keyword", query.Keyword)
	setParam(params, "classificationId", query.ClassificationID)
	setParam(params, "postalCode", query.PostalCode)
	setParam(params, "latlong", query.LatLong)
	setParam(params, "startDateTime", query.StartDateTime)
	setParam(params, "endDateTime", query.EndDateTime)
	if query.CountryCode != "" {
		params.Set("countryCode", query.CountryCode)
	} else {
		params.Set("countryCode", defaultCountryCode)
	}
	params.Set("page", strconv.Itoa(query.Page))
	if query.Size > 0 {
		params.Set("size", strconv.Itoa(query.Size))
	}

	body, err := t.fetch(ctx, "/events.json", params)
	if err != nil {
		return model.EventPage{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.EventPage{}, fmt.Errorf("%w: decode search response: %v", model.ErrUpstream, err)
	}

	page := model.EventPage{
		Events:        make([]model.Event, 0, len(resp.Embedded.Events)),
		Page:          resp.Page.Number,
		TotalPages:    resp.Page.TotalPages,
		TotalElements: resp.Page.TotalElements,
	}
	for _, e := range resp.Embedded.Events {
		page.Events = append(page.Events, e.toEvent())
	}

	return page, nil
}

func (t *Ticketmaster) GetByID(ctx context.Context, id string) (model.EventDetail, error) {
	body, err := t.fetch(ctx, "/events/"+url.PathEscape(id)+".json", url.Values{})
	if err != nil {
		return model.EventDetail{}, err
	}

	var e tmEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return model.EventDetail{}, fmt.Errorf("%w: decode event: %v", model.ErrUpstream, err)
	}
	if e.ID == "" {
		return model.EventDetail{}, model.ErrNotFound
	}

	detail := model.EventDetail{
		Event:       e.toEvent(),
		Date:        formatLocal(e.Dates.Start.LocalDate, "2006-01-02", detailDateLayout),
		Time:        formatLocal(e.Dates.Start.LocalTime, "15:04:05", detailTimeLayout),
		PriceRanges: make([]model.PriceRange, 0, len(e.PriceRanges)),
	}
	for _, pr := range e.PriceRanges {
		detail.PriceRanges = append(detail.PriceRanges, model.PriceRange{Min: pr.Min, Max: pr.Max, Currency: pr.Currency})
	}

	return detail, nil
}

// fetch returns the response body for path, serving repeats from the cache
// and sharing one upstream call between identical concurrent requests.
func (t *Ticketmaster) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	key := cacheKey(path, params)

	if body, err := t.cache.Get(key); err == nil {
		return body, nil
	} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
		t.logger.Warn("Catalog: cache read failed", "error", err.Error())
	}

	// The shared call outlives any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := t.group.DoChan(key, func() (any, error) {
		body, err := t.get(shared, path, params)
		if err != nil {
			return nil, err
		}
		if err := t.cache.Set(key, body); err != nil {
			t.logger.Warn("Catalog: cache write failed", "error", err.Error())
		}
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (t *Ticketmaster) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("apikey", t.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error("Catalog: upstream request failed", "path", path, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	t.logger.Debug("Catalog: upstream response",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, model.ErrNotFound
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", model.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", model.ErrUpstream, err)
	}

	return body, nil
}

func cacheKey(path string, params url.Values) string {
	return strconv.FormatUint(xxhash.Sum64String(path+"?"+params.Encode()), 16)
}

func setParam(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}

func formatLocal(value, layout, display string) string {
	if value == "" {
		return ""
	}
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return value
	}
	return parsed.Format(display)
}

type searchResponse struct {
	Embedded struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}

type tmEvent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	PriceRanges []struct {
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
		Currency string  `json:"currency"`
	} `json:"priceRanges"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			State struct {
				StateCode string `json:"stateCode"`
			} `json:"state"`
		} `json:"venues"`
	} `json:"_embedded"`
}

func (e tmEvent) toEvent() model.Event {
	event := model.Event{
		ID:        e.ID,
		Name:      e.Name,
		LocalDate: e.Dates.Start.LocalDate,
		LocalTime: e.Dates.Start.LocalTime,
	}
	if len(e.Images) > 0 {
		event.ImageURL = e.Images[0].URL
	}
	if len(e.Embedded.Venues) > 0 {
		v := e.Embedded.Venues[0]
		event.Venue = v.Name
		event.City = v.City.Name
		parts := make([]string, 0, 2)
		for _, p := range []string{v.City.Name, v.State.StateCode} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		event.Location = strings.Join(parts, ", ")
	}
	return event
}
