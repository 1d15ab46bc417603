package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/leadfinder/internal/model"
)

// Report is the output of one industry search: the analysis results plus the
// run metadata every format needs.
type Report struct {
	// City is the searched city.
	City string

	// Industry is the searched industry.
	Industry string

	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time

	// Results are the analysis results in search order.
	Results []*model.AnalysisResult

	// Summary aggregates Results.
	Summary model.BatchSummary
}

// NewReport creates a Report for results and computes its summary.
func NewReport(city, industry string, results []*model.AnalysisResult) *Report {
	return &Report{
		City:        city,
		Industry:    industry,
		GeneratedAt: time.Now(),
		Results:     results,
		Summary:     model.Summarize(results),
	}
}

// Writer defines the interface for report output.
// Implementations write a Report in one format to their destination.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *Report) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// ResultFileName returns the file name for an industry's results, e.g.
// "results_law_firm.json" for ("law firm", "json").
func ResultFileName(industry, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(industry), " ", "_")
	return "results_" + name + "." + strings.TrimPrefix(ext, ".")
}

// WriteFile writes report to path using the Writer built by newWriter.
// Parent directories are created as needed and the file is written with
// mode 0600, replacing any previous content.
func WriteFile(path string, report *Report, newWriter func(io.Writer) Writer) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := newWriter(f).Write(report); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
