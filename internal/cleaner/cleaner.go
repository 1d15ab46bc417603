package cleaner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/leadfinder/internal/report"
)

// CleanedSuffix marks files written by the cleaner. Such files are never
// cleaned again.
const CleanedSuffix = "_cleaned.json"

// ErrNotArray is returned when a result file does not hold a JSON array.
var ErrNotArray = errors.New("does not contain a JSON array")

// excludePatterns are matched as substrings of the lower-cased URL.
var excludePatterns = []string{
	".pdf",
	".doc",
	".docx",
	".csv",
	"github.com",
	"reddit.com",
	"justdial.com",
	"linkedin.com/jobs",
	"/careers",
	"/job",
}

// ShouldKeepURL reports whether an entry with this url survives cleaning.
// Empty URLs are dropped.
func ShouldKeepURL(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	for _, pattern := range excludePatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

// Stats describes the outcome of cleaning one file.
type Stats struct {
	// Input is the cleaned file.
	Input string

	// Output is the written <base>_cleaned.json file.
	Output string

	// Original is the number of entries read.
	Original int

	// Removed is the number of entries dropped.
	Removed int

	// Remaining is the number of entries written.
	Remaining int
}

// CleanedPath returns the output path for input: the extension is replaced
// by "_cleaned.json".
func CleanedPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + CleanedSuffix
}

// CleanFile filters the JSON array in path and writes the kept entries,
// unchanged, to CleanedPath(path). Entries whose "url" is missing, not a
// string or rejected by ShouldKeepURL are removed.
// A file that is valid JSON but not an array yields ErrNotArray.
func CleanFile(path string) (Stats, error) {
	stats := Stats{Input: path}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return stats, fmt.Errorf("failed to read file: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return stats, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if _, ok := decoded.([]any); !ok {
		return stats, ErrNotArray
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return stats, fmt.Errorf("failed to parse JSON: %w", err)
	}

	kept := make([]json.RawMessage, 0, len(entries))
	for i, entry := range entries {
		keep, err := keepEntry(entry)
		if err != nil {
			return stats, fmt.Errorf("entry %d: %w", i, err)
		}
		if keep {
			kept = append(kept, entry)
		}
	}

	var buf bytes.Buffer
	if _, err := report.EncodeJSON(&buf, kept); err != nil {
		return stats, fmt.Errorf("failed to encode JSON: %w", err)
	}

	stats.Output = CleanedPath(path)
	if err := os.WriteFile(stats.Output, buf.Bytes(), 0o600); err != nil {
		return stats, fmt.Errorf("failed to write %s: %w", stats.Output, err)
	}

	stats.Original = len(entries)
	stats.Remaining = len(kept)
	stats.Removed = stats.Original - stats.Remaining
	return stats, nil
}

// keepEntry decides a single array entry. Entries must be JSON objects.
func keepEntry(entry json.RawMessage) (bool, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(entry, &obj); err != nil {
		return false, errors.New("entry is not a JSON object")
	}

	raw, ok := obj["url"]
	if !ok {
		return false, nil
	}
	var url string
	if err := json.Unmarshal(raw, &url); err != nil {
		return false, nil
	}
	return ShouldKeepURL(url), nil
}

// FileResult is the outcome for one file of a directory run.
type FileResult struct {
	// Path is the input file.
	Path string

	// Stats holds the counts when Err is nil.
	Stats Stats

	// Err is the failure, if any.
	Err error
}

// Cleaner runs CleanFile over a directory and prints a report per file.
type Cleaner struct {
	out    io.Writer
	logger *slog.Logger
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithOutput sets where per-file reports are printed.
func WithOutput(w io.Writer) Option {
	return func(c *Cleaner) {
		c.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

// New creates a Cleaner that prints to stdout.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListFiles returns the *.json files in dir that are not cleaner output,
// in lexical order.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, CleanedSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// CleanDir cleans every result file in dir. Each file is processed
// independently; a failing file is reported and the rest still run.
// The returned error is non-nil only when dir cannot be listed.
func (c *Cleaner) CleanDir(dir string) ([]FileResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		fmt.Fprintf(c.out, "No JSON files found in %s\n", dir)
		return nil, nil
	}

	fmt.Fprintf(c.out, "Found %d JSON files to process\n\n", len(files))

	results := make([]FileResult, 0, len(files))
	for _, path := range files {
		stats, err := CleanFile(path)
		results = append(results, FileResult{Path: path, Stats: stats, Err: err})

		switch {
		case errors.Is(err, ErrNotArray):
			c.logger.Warn("skipping file", "file", path, "error", err)
			fmt.Fprintf(c.out, "Warning: %s %s\n\n", path, ErrNotArray)
		case err != nil:
			c.logger.Error("failed to clean file", "file", path, "error", err)
			fmt.Fprintf(c.out, "Error processing %s: %v\n\n", path, err)
		default:
			c.printStats(stats)
		}
	}

	return results, nil
}

// printStats prints the per-file report.
func (c *Cleaner) printStats(s Stats) {
	fmt.Fprintf(c.out, "Processed %s:\n", s.Input)
	fmt.Fprintf(c.out, "- Original entries: %d\n", s.Original)
	fmt.Fprintf(c.out, "- Removed entries: %d\n", s.Removed)
	fmt.Fprintf(c.out, "- Remaining entries: %d\n", s.Remaining)
	fmt.Fprintf(c.out, "- Saved to: %s\n\n", s.Output)
}
