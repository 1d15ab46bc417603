// Package crawler fetches and parses the landing page of a candidate website.
//
// # Components
//
//   - Fetcher: issues a single GET with a desktop browser User-Agent, a fixed
//     timeout and a body size cap. Non-2xx responses are returned as
//     *StatusError.
//   - Parser: parses HTML with golang.org/x/net/html and exposes the result
//     as a Page holding a goquery document for selector-based checks and the
//     visible text of the page for pattern matching.
//
// Only the landing page is fetched; links are not followed.
//
// # Usage
//
//	fetcher := crawler.NewFetcher(crawler.WithTimeout(10 * time.Second))
//	resp, err := fetcher.Fetch(ctx, "https://example.com")
//	if err != nil {
//	    return err
//	}
//	page, err := crawler.ParseResponse(resp)
package crawler
