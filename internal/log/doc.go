// Package log provides secure logging built on top of the standard slog
// package.
//
// The SecureHandler masks sensitive attribute values before they reach the
// underlying handler:
//   - attribute keys that name credentials (api_key, key, token, secret, ...)
//   - values that look like bearer tokens or Google API keys
//   - the key= query parameter of URL-valued attributes, since the search
//     and PageSpeed APIs take their credentials in the query string
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Warn("search request failed",
//	    "url", "https://www.googleapis.com/customsearch/v1?key=AIza...&q=x",
//	) // logged as ...?key=***REDACTED***&q=x
package log
