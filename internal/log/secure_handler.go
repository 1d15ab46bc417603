package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys contains attribute keys that should always be sanitized.
var sensitiveKeys = map[string]bool{
	"authorization":       true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-goog-api-key":      true,
	"proxy-authorization": true,

	"key":               true,
	"api_key":           true,
	"apikey":            true,
	"api-key":           true,
	"search_api_key":    true,
	"pagespeed_api_key": true,
	"password":          true,
	"secret":            true,
	"token":             true,
	"access_token":      true,
}

// sensitivePatterns contains regex patterns that indicate sensitive values.
var sensitivePatterns = []*regexp.Regexp{
	// Google API keys
	regexp.MustCompile(`^AIza[0-9A-Za-z_\-]{35}$`),

	// Bearer tokens
	regexp.MustCompile(`(?i)^bearer\s+.+`),

	// Basic auth
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),

	// JWT tokens
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
}

// queryKeyPattern matches credential query parameters inside URLs and error
// messages, e.g. "...customsearch/v1?key=AIza...&cx=...".
var queryKeyPattern = regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|access_token)=)[^&\s"']+`)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// SecureHandler wraps an slog.Handler to sanitize sensitive information.
// It works with any underlying handler (text, JSON, etc.).
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's message and attributes and passes it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, RedactURL(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = h.sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitizedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// sanitizeAttr sanitizes a single attribute, recursively handling groups.
func (h *SecureHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if sensitiveKeys[keyLower] || containsSensitiveKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		strVal := a.Value.String()
		if isSensitiveValue(strVal) {
			return slog.String(a.Key, MaskValue)
		}
		return slog.String(a.Key, RedactURL(strVal))
	case slog.KindAny:
		// Errors from HTTP clients embed the full request URL.
		if err, ok := a.Value.Any().(error); ok && err != nil {
			return slog.String(a.Key, RedactURL(err.Error()))
		}
	}

	return a
}

// containsSensitiveKeyword checks if the key contains sensitive keywords.
// The bare "key" keyword is matched exactly in sensitiveKeys instead of here
// to avoid false positives such as "monkey" or "keyword".
func containsSensitiveKeyword(key string) bool {
	sensitiveKeywords := []string{
		"password", "secret", "token", "credential", "api_key", "apikey",
	}

	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isSensitiveValue checks if a value matches sensitive patterns.
func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// RedactURL masks credential query parameters in s. Strings without such
// parameters are returned unchanged.
func RedactURL(s string) string {
	if !strings.Contains(s, "=") {
		return s
	}
	return queryKeyPattern.ReplaceAllString(s, "${1}"+MaskValue)
}

// NewSecureLogger creates a new slog.Logger with secure handling.
// verbose selects Debug level; otherwise only warnings and errors are logged.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSecureHandler(textHandler))
}

// NewSecureJSONLogger creates a new slog.Logger with JSON output and secure handling.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSecureHandler(jsonHandler))
}
