// Package api implements the HTTP clients for the external astrology backend:
// person record CRUD against /users/ and chart generation against the /astro/
// endpoints. The backend is an opaque collaborator; this package only shapes
// payloads, issues requests, and classifies responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"astroscope/pkg/log"
	"astroscope/pkg/model"
)

// Client issues requests against the backend REST API. The base URL comes
// from configuration; an empty base URL produces relative request URLs, which
// is almost certainly a misconfiguration but is left to fail at request time.
type Client struct {
	baseURL         string
	defaultTimezone string
	httpClient      *http.Client
	logger          *log.Logger
}

// NewClient creates a backend API client from the application configuration.
func NewClient(cfg *model.Config, logger *log.Logger) *Client {
	timeout := time.Duration(cfg.HTTPTimeoutSec) * time.Second
	if cfg.HTTPTimeoutSec <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:         strings.TrimSuffix(cfg.APIBaseURL, "/"),
		defaultTimezone: cfg.DefaultTimezone,
		httpClient:      &http.Client{Timeout: timeout},
		logger:          logger,
	}
}

// endpoint joins the base URL with a path.
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// getJSON issues a GET request and decodes the JSON response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// sendJSON issues a request with a JSON body and returns the raw response.
// The caller owns the response body.
func (c *Client) sendJSON(ctx context.Context, method, path string, payload interface{}) (*http.Response, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// send issues a request with a JSON body, discards any response content, and
// treats every non-2xx status as failure.
func (c *Client) send(ctx context.Context, method, path string, payload interface{}) error {
	resp, err := c.sendJSON(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend status %d", resp.StatusCode)
	}
	return nil
}
