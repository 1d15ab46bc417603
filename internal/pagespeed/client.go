package pagespeed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nao1215/leadfinder/internal/model"
)

// DefaultEndpoint is the PageSpeed Insights v5 API.
const DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// Lighthouse audits regularly take tens of seconds.
const defaultRequestTimeout = 90 * time.Second

// ErrMissingCategory is returned when the response lacks a requested
// category or its score.
var ErrMissingCategory = errors.New("pagespeed response is missing a category score")

// categories are requested in this order.
var categories = []string{"PERFORMANCE", "ACCESSIBILITY", "BEST_PRACTICES", "SEO"}

// Client calls the PageSpeed Insights API.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	apiKey     string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
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

// NewClient creates a PageSpeed client. An empty apiKey still sends
// requests; the API decides whether to serve them.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: resty.New().
			SetTimeout(defaultRequestTimeout).
			SetHeader("Accept", "application/json"),
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// categoryResult is one Lighthouse category. Score is nil when Lighthouse
// could not compute it.
type categoryResult struct {
	Score *float64 `json:"score"`
}

type runPagespeedResponse struct {
	LighthouseResult *struct {
		Categories map[string]categoryResult `json:"categories"`
	} `json:"lighthouseResult"`
}

// Score runs a Lighthouse audit of pageURL and returns the four category
// scores multiplied by 100.
func (c *Client) Score(ctx context.Context, pageURL string) (*model.PageSpeedScores, error) {
	var result runPagespeedResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("url", pageURL).
		SetQueryParam("key", c.apiKey).
		SetQueryParamsFromValues(map[string][]string{"category": categories}).
		SetResult(&result).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to query pagespeed API: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pagespeed API error (status %d): %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if result.LighthouseResult == nil {
		return nil, fmt.Errorf("%w: no lighthouseResult", ErrMissingCategory)
	}

	cats := result.LighthouseResult.Categories
	var scores model.PageSpeedScores
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"performance", &scores.Performance},
		{"accessibility", &scores.Accessibility},
		{"best-practices", &scores.BestPractices},
		{"seo", &scores.SEO},
	} {
		cat, ok := cats[f.key]
		if !ok || cat.Score == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingCategory, f.key)
		}
		*f.dst = *cat.Score * 100
	}
	return &scores, nil
}
