package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultEndpoint is the Google Custom Search JSON API.
	DefaultEndpoint = "https://www.googleapis.com/customsearch/v1"

	// DefaultMaxResults is used when Search is called with maxResults <= 0.
	DefaultMaxResults = 50

	// resultsPerQuery is the largest page size the API accepts.
	resultsPerQuery = 10

	defaultRequestTimeout = 30 * time.Second
)

// Client queries the Custom Search API.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	apiKey     string
	engineID   string
	queryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint. Tests point it at httptest servers.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithQueryDelay sets the pause after each API call. Zero disables it.
func WithQueryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.queryDelay = d
		}
	}
}

// WithLogger sets the logger for failed queries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.SetTimeout(d)
		}
	}
}

// NewClient creates a search client for the given API key and search
// engine ID. Empty credentials are not rejected here; the API reports them.
func NewClient(apiKey, engineID string, opts ...Option) *Client {
	c := &Client{
		httpClient: resty.New().
			SetTimeout(defaultRequestTimeout).
			SetHeader("Accept", "application/json"),
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		engineID:   engineID,
		queryDelay: time.Second,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse is the subset of the API response we read.
type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// Search runs every query template for city and industry and returns the
// filtered links, at most maxResults of them.
//
// Querying stops early once maxResults raw links have been collected. A
// failed query is logged at warn level and skipped. The only error returned
// is the context's.
func (c *Client) Search(ctx context.Context, city, industry string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var links []string
	for i, query := range BuildQueries(city, industry) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := c.Query(ctx, query)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("search query failed",
				"query", query,
				"error", err,
			)
		}
		links = append(links, found...)

		c.logger.Debug("search query done",
			"index", i,
			"links", len(found),
			"total", len(links),
		)

		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		if len(links) >= maxResults {
			break
		}
	}

	return FilterURLs(links, maxResults), nil
}

// Query sends a single search query and returns the result links in
// ranking order. A response without items yields no links and no error.
func (c *Client) Query(ctx context.Context, query string) ([]string, error) {
	var result searchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": c.apiKey,
			"cx":  c.engineID,
			"q":   query,
			"num": strconv.Itoa(resultsPerQuery),
		}).
		SetResult(&result).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to query search API: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search API error (status %d): %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	links := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}
	return links, nil
}

// wait pauses for the query delay, returning early on cancellation.
func (c *Client) wait(ctx context.Context) error {
	if c.queryDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.queryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
