package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"footballadmin/internal/observability"
)

// APIError is a non-2xx response from the football data API. Fetchers treat
// it as skippable (log and move to the next competition code), unlike
// transport errors which abort the whole fetch.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sports api returned status %d: %s", e.StatusCode, e.Body)
}

// Client calls the third-party football data API. Every request carries the
// static API key in the X-Auth-Token header.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient builds a client with an explicit request timeout so a hung
// upstream response cannot hold a handler indefinitely.
func NewClient(baseURL, apiKey string, logger *observability.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// GetCompetition fetches the competition resource for one code
func (c *Client) GetCompetition(ctx context.Context, code string) (map[string]interface{}, error) {
	var competition map[string]interface{}
	if err := c.get(ctx, fmt.Sprintf("/competitions/%s", code), &competition); err != nil {
		return nil, err
	}
	return competition, nil
}

// GetMatches fetches the matches array for one competition code
func (c *Client) GetMatches(ctx context.Context, code string) ([]map[string]interface{}, error) {
	return c.getArray(ctx, fmt.Sprintf("/competitions/%s/matches", code), "matches")
}

// GetStandings fetches the standings array for one competition code
func (c *Client) GetStandings(ctx context.Context, code string) ([]map[string]interface{}, error) {
	return c.getArray(ctx, fmt.Sprintf("/competitions/%s/standings", code), "standings")
}

// GetScorers fetches the top scorers array for one competition code
func (c *Client) GetScorers(ctx context.Context, code string) ([]map[string]interface{}, error) {
	return c.getArray(ctx, fmt.Sprintf("/competitions/%s/scorers", code), "scorers")
}

// GetTeams fetches the teams array for one competition code
func (c *Client) GetTeams(ctx context.Context, code string) ([]map[string]interface{}, error) {
	return c.getArray(ctx, fmt.Sprintf("/competitions/%s/teams", code), "teams")
}

// getArray fetches an endpoint and extracts the named array field from the
// provider-shaped response body.
func (c *Client) getArray(ctx context.Context, path, field string) ([]map[string]interface{}, error) {
	var body map[string]json.RawMessage
	if err := c.get(ctx, path, &body); err != nil {
		return nil, err
	}

	raw, ok := body[field]
	if !ok {
		return nil, nil
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %q field: %w", field, err)
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path
	ctx = observability.WithFields(ctx, observability.Field{Key: "sports_api_url", Value: url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build sports api request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "sports api request failed", err)
		return fmt.Errorf("sports api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode sports api response: %w", err)
	}
	return nil
}
