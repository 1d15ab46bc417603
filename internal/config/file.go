package config

import "time"

// File represents the structure of the .leadfinder configuration file.
// Every field is optional; zero values leave the built-in defaults alone.
type File struct {
	// City is the default target city.
	City string `yaml:"city,omitempty"`

	// Industries replaces the default industry list when non-empty.
	Industries []string `yaml:"industries,omitempty"`

	// MaxResults caps the filtered URL list per industry.
	MaxResults int `yaml:"maxResults,omitempty"`

	// Workers is the number of concurrent page analyses.
	Workers int `yaml:"workers,omitempty"`

	// Delay is the minimum spacing between page analyses (e.g. "1s").
	// A pointer distinguishes an explicit "0s" from an absent value.
	Delay *time.Duration `yaml:"delay,omitempty"`

	// QueryDelay is the pause after each search API call.
	QueryDelay *time.Duration `yaml:"queryDelay,omitempty"`

	// Timeout bounds each page fetch.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent overrides the page fetch User-Agent.
	UserAgent string `yaml:"userAgent,omitempty"`

	// OutputDir is where result files are written.
	OutputDir string `yaml:"outputDir,omitempty"`
}
