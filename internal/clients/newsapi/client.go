package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"footballadmin/internal/observability"
)

// APIError is a non-2xx response from the news API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("news api returned status %d: %s", e.StatusCode, e.Body)
}

// Client calls the general news API for football coverage
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *observability.Logger
}

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

type newsResponse struct {
	Status   string                   `json:"status"`
	Results  []map[string]interface{} `json:"results"`
	NextPage string                   `json:"nextPage"`
}

// FetchPage returns one page of football news and the opaque cursor of the
// next page; an empty cursor means the result set is exhausted.
func (c *Client) FetchPage(ctx context.Context, page string) ([]map[string]interface{}, string, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("q", "football")
	q.Set("language", "en")
	if page != "" {
		q.Set("page", page)
	}
	reqURL := c.baseURL + "/news?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build news api request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "news api request failed", err)
		return nil, "", fmt.Errorf("news api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, "", fmt.Errorf("failed to decode news api response: %w", err)
	}
	return parsed.Results, parsed.NextPage, nil
}
