// Package search finds candidate business websites for a city and industry.
//
// It expands a fixed table of query templates, sends each query to the
// Google Custom Search JSON API and filters the returned links:
//   - duplicates are dropped, keeping the first occurrence
//   - social networks, forums and code hosts are rejected by host
//   - document downloads (.pdf, .docx, .xlsx, ...) are rejected
//   - on the justdial.com directory only business detail pages are kept
//
// A failing query is logged and contributes no links; only context
// cancellation aborts a search.
package search
