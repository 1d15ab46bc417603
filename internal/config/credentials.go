package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read at startup.
const DefaultEnvFile = ".env"

// Credentials holds the API keys for the hosted search and scoring services.
// Missing values are not rejected here; the APIs report them as
// authentication failures.
type Credentials struct {
	// SearchAPIKey is the Google Custom Search API key.
	SearchAPIKey string `env:"SEARCH_API_KEY"`

	// SearchEngineID is the custom search engine id (cx).
	SearchEngineID string `env:"SEARCH_ENGINE_ID"`

	// PageSpeedAPIKey is the PageSpeed Insights API key.
	PageSpeedAPIKey string `env:"PAGESPEED_API_KEY"`
}

// LoadCredentials reads the API keys from the process environment after
// loading envFile. Values in envFile override variables already set, which
// matches how operators edit .env between runs. A missing envFile is not
// an error.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Overload(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return creds, nil
}

// HasSearch reports whether both search credentials are present.
func (c Credentials) HasSearch() bool {
	return c.SearchAPIKey != "" && c.SearchEngineID != ""
}
