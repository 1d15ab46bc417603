package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// Fetch defaults. Several small-business hosts block unknown agents, so a
// desktop browser User-Agent is sent.
const (
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeout     = 10 * time.Second
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// StatusError is returned by Fetch when the server answers with a
// non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s for url: %s", e.Status, e.URL)
}

// Response is a fetched page body, already decoded to UTF-8.
type Response struct {
	// URL is the requested URL.
	URL string

	// FinalURL is the URL after redirects.
	FinalURL string

	// StatusCode is the HTTP status code.
	StatusCode int

	// ContentType is the Content-Type response header.
	ContentType string

	// Body is the response body, truncated to the fetcher's size limit.
	Body []byte
}

// Fetcher downloads single pages over HTTP.
type Fetcher struct {
	// client performs the requests. Its Timeout bounds each fetch.
	client *http.Client

	// userAgent is the User-Agent header to use.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the HTTP client. The client's own timeout is kept.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes read per page.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewFetcher creates a Fetcher with the default User-Agent, timeout and
// body size limit.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads pageURL. A non-2xx status yields *StatusError; transport
// failures and timeouts are returned wrapped.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", pageURL, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return nil, &StatusError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", pageURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := toUTF8(raw, contentType)
	if err != nil {
		// Undecodable bodies are parsed as-is.
		body = raw
	}

	return &Response{
		URL:         pageURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// toUTF8 converts body to UTF-8 using the Content-Type charset, a <meta>
// declaration or content sniffing.
func toUTF8(body []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
