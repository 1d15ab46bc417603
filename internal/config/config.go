package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/leadfinder/internal/crawler"
)

// Default configuration values.
const (
	// DefaultCity is the city searched when --city is not given.
	DefaultCity = "Jaipur"

	// DefaultMaxResults caps the number of URLs kept per industry search.
	DefaultMaxResults = 50

	// DefaultWorkers is the number of pages analyzed concurrently.
	DefaultWorkers = 5

	// DefaultAnalysisDelay is the minimum spacing between two page analyses.
	// The hosted PageSpeed API rejects bursts, so one analysis per second is
	// the safe default.
	DefaultAnalysisDelay = 1 * time.Second

	// DefaultQueryDelay is the pause after each search API call.
	DefaultQueryDelay = 1 * time.Second

	// DefaultFetchTimeout bounds a single page fetch.
	DefaultFetchTimeout = crawler.DefaultTimeout

	// DefaultUserAgent is sent with every page fetch.
	DefaultUserAgent = crawler.DefaultUserAgent

	// DefaultMaxBodySize limits how much of a page body is read.
	DefaultMaxBodySize = crawler.DefaultMaxBodySize

	// DefaultOutputDir is where result files are written.
	DefaultOutputDir = "."

	// AppName is the application name used for XDG directory paths.
	AppName = "leadfinder"
)

// defaultIndustries is the fixed list of industries searched by default.
var defaultIndustries = []string{
	"manufacturing company",
	"real estate agency",
	"dental practice",
	"law firm",
	"beauty salon",
	"fitness center",
}

// DefaultIndustries returns a copy of the default industry list.
func DefaultIndustries() []string {
	out := make([]string, len(defaultIndustries))
	copy(out, defaultIndustries)
	return out
}

// Config holds all configuration options for a leadfinder run.
// It is built once from CLI flags and the optional config file and then
// passed to every component constructor; components never read the
// environment themselves.
type Config struct {
	// City is the target city substituted into search queries.
	City string

	// Industries are searched sequentially, one result file each.
	Industries []string

	// MaxResults caps the filtered URL list per industry.
	MaxResults int

	// Workers is the number of concurrent page analyses.
	Workers int

	// AnalysisDelay is the token-bucket interval shared by all workers.
	// Zero disables rate limiting.
	AnalysisDelay time.Duration

	// QueryDelay is the pause after each search API call.
	QueryDelay time.Duration

	// FetchTimeout bounds each page fetch.
	FetchTimeout time.Duration

	// UserAgent is the User-Agent header for page fetches.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// OutputDir is the directory result files are written to.
	OutputDir string

	// MarkdownReport also writes a Markdown summary per industry.
	MarkdownReport bool

	// XLSXReport also writes a spreadsheet per industry.
	XLSXReport bool

	// SaveToDB stores every run in the SQLite history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	DBDir string

	// SkipRecent drops URLs that were analyzed successfully within this
	// window according to the history database. Zero disables it.
	SkipRecent time.Duration

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string

	// EnvFile is the dotenv file loaded before reading credentials.
	EnvFile string

	// Credentials are the API keys, loaded once at startup.
	Credentials Credentials

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		City:          DefaultCity,
		Industries:    DefaultIndustries(),
		MaxResults:    DefaultMaxResults,
		Workers:       DefaultWorkers,
		AnalysisDelay: DefaultAnalysisDelay,
		QueryDelay:    DefaultQueryDelay,
		FetchTimeout:  DefaultFetchTimeout,
		UserAgent:     DefaultUserAgent,
		MaxBodySize:   DefaultMaxBodySize,
		OutputDir:     DefaultOutputDir,
		SaveToDB:      true,
		DBDir:         XDGDataDir(),
		EnvFile:       DefaultEnvFile,
	}
}

// ApplyFile overlays the non-zero values of a config file onto c.
// CLI flags are applied afterwards by the caller so they win.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if strings.TrimSpace(f.City) != "" {
		c.City = f.City
	}
	if len(f.Industries) > 0 {
		c.Industries = append([]string(nil), f.Industries...)
	}
	if f.MaxResults > 0 {
		c.MaxResults = f.MaxResults
	}
	if f.Workers > 0 {
		c.Workers = f.Workers
	}
	if f.Delay != nil {
		c.AnalysisDelay = *f.Delay
	}
	if f.QueryDelay != nil {
		c.QueryDelay = *f.QueryDelay
	}
	if f.Timeout > 0 {
		c.FetchTimeout = f.Timeout
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
}

// XDGDataDir returns the XDG data directory for leadfinder.
// On Linux: ~/.local/share/leadfinder
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for leadfinder.
// On Linux: ~/.config/leadfinder
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.City) == "" {
		return ErrNoCity
	}
	if len(c.Industries) == 0 {
		return ErrNoIndustry
	}
	for _, industry := range c.Industries {
		if strings.TrimSpace(industry) == "" {
			return ErrNoIndustry
		}
	}
	if c.MaxResults <= 0 {
		return ErrInvalidMaxResults
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.AnalysisDelay < 0 || c.QueryDelay < 0 {
		return ErrInvalidDelay
	}
	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.SkipRecent < 0 {
		return ErrInvalidSkipRecent
	}
	return nil
}
