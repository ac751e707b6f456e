// Package geocode resolves free-text place names to coordinates through an
// external place-search service. Lookups are one-shot and explicitly
// non-critical: the user can always set coordinates with a map click, so
// failures are logged and never surfaced.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// Client issues place-search lookups against a Nominatim-style endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a geocode client from the application configuration.
func NewClient(cfg *model.Config, logger *log.Logger) *Client {
	timeout := time.Duration(cfg.HTTPTimeoutSec) * time.Second
	if cfg.HTTPTimeoutSec <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   cfg.GeocodeURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// searchResult is one candidate match from the place-search service. The
// service returns coordinates as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Search looks up the best match for the given place name and returns its
// coordinates. Blank or whitespace-only input is a no-op. On no match or any
// transport failure the second return value is false and the caller's current
// coordinates stay untouched.
func (c *Client) Search(ctx context.Context, query string) (model.Coordinates, bool) {
	if strings.TrimSpace(query) == "" {
		return model.Coordinates{}, false
	}

	coords, err := c.lookup(ctx, query)
	if err != nil {
		c.logger.Error(ctx, "Geocode lookup failed", log.Fields{"query": query, "error": err})
		return model.Coordinates{}, false
	}

	c.logger.Info(ctx, "Geocode resolved", log.Fields{"query": query, "lat": coords.Lat, "lng": coords.Lng})
	return coords, true
}

// lookup issues the search request, asking the service for at most one match.
func (c *Client) lookup(ctx context.Context, query string) (model.Coordinates, error) {
	endpoint := fmt.Sprintf("%s?format=json&q=%s&limit=1", c.endpoint, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Coordinates{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Coordinates{}, fmt.Errorf("geocode status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return model.Coordinates{}, err
	}
	if len(results) == 0 {
		return model.Coordinates{}, fmt.Errorf("no match for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return model.Coordinates{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return model.Coordinates{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return model.Coordinates{Lat: lat, Lng: lng}, nil
}
