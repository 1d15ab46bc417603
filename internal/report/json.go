package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/leadfinder/internal/model"
)

// JSONWriter outputs the result array of a report in JSON format.
// This is the primary per-industry output and the input of the cleaner.
//
// HTML escaping is disabled so URLs keep their literal '&' and non-ASCII
// text is written as UTF-8.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report's results as a JSON array.
// A report without results is written as [].
func (w *JSONWriter) Write(report *Report) (int, error) {
	results := report.Results
	if results == nil {
		results = []*model.AnalysisResult{}
	}
	return w.writeJSON(results)
}

// writeJSON encodes v and writes it to the output with a trailing newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}
	// Encode appends the trailing newline.
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

// EncodeJSON writes v in the result file format: two-space indent, no HTML
// escaping, trailing newline. The cleaner uses it so cleaned files match
// the originals.
func EncodeJSON(output io.Writer, v any) (int, error) {
	return NewJSONWriter(output, WithPrettyPrint()).writeJSON(v)
}
