package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while still getting a human-readable message.
var (
	// ErrNoIndustry is returned when the industry list is empty.
	ErrNoIndustry = errors.New("no industry specified: provide at least one --industry or keep the defaults")

	// ErrNoCity is returned when the target city is blank.
	ErrNoCity = errors.New("no city specified: --city must not be empty")

	// ErrInvalidMaxResults is returned when the search result cap is not positive.
	ErrInvalidMaxResults = errors.New("invalid max results: must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidDelay is returned when the analysis or query delay is negative.
	// Use 0 to disable the delay.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidTimeout is returned when the page fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidSkipRecent is returned when the skip-recent window is negative.
	ErrInvalidSkipRecent = errors.New("invalid skip-recent window: must be non-negative")
)
