package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAnalysisResultJSON(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("success result with null pagespeed", func(t *testing.T) {
		t.Parallel()

		r := AnalysisResult{
			URL:       "https://example.com",
			Timestamp: ts,
			Status:    StatusSuccess,
			ContactInfo: ContactInfo{
				Emails: []string{"info@example.com"},
			},
		}

		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `{"url":"https://example.com","timestamp":"2025-01-02T03:04:05Z","status":"success",` +
			`"pagespeed":null,"contact_info":{"emails":["info@example.com"],"phones":[],"social_links":[]},` +
			`"design_issues":[]}`
		if string(data) != want {
			t.Errorf("got  %s\nwant %s", data, want)
		}
	})

	t.Run("success result with scores", func(t *testing.T) {
		t.Parallel()

		r := AnalysisResult{
			URL:       "https://example.com",
			Timestamp: ts,
			Status:    StatusSuccess,
			PageSpeed: &PageSpeedScores{Performance: 85, Accessibility: 90, BestPractices: 75, SEO: 100},
		}

		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), `"pagespeed":{"performance":85,"accessibility":90,"best_practices":75,"seo":100}`) {
			t.Errorf("unexpected pagespeed encoding: %s", data)
		}
	})

	t.Run("error result carries only error fields", func(t *testing.T) {
		t.Parallel()

		r := AnalysisResult{
			URL:       "https://broken.example",
			Timestamp: ts,
			Status:    StatusError,
			Error:     "404 Not Found",
		}

		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `{"url":"https://broken.example","timestamp":"2025-01-02T03:04:05Z","status":"error","error":"404 Not Found"}`
		if string(data) != want {
			t.Errorf("got  %s\nwant %s", data, want)
		}
	})

	t.Run("pointer marshals the same as value", func(t *testing.T) {
		t.Parallel()

		r := &AnalysisResult{URL: "https://example.com", Timestamp: ts, Status: StatusError, Error: "x"}
		fromPtr, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		fromVal, err := json.Marshal(*r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(fromPtr) != string(fromVal) {
			t.Errorf("pointer %s != value %s", fromPtr, fromVal)
		}
	})

	t.Run("html characters are not escaped", func(t *testing.T) {
		t.Parallel()

		results := []*AnalysisResult{
			{URL: "https://acme.in/?a=1&b=2", Timestamp: ts, Status: StatusSuccess},
			{URL: "https://acme.in/<x>", Timestamp: ts, Status: StatusError, Error: "got <nil> body"},
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(results); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{`"https://acme.in/?a=1&b=2"`, `"https://acme.in/<x>"`, `"got <nil> body"`} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %s in %s", want, out)
			}
		}
		if strings.Contains(out, `\u0026`) || strings.Contains(out, `\u003c`) {
			t.Errorf("unexpected escaping in %s", out)
		}
	})

	t.Run("decodes back", func(t *testing.T) {
		t.Parallel()

		in := `{"url":"https://example.com","timestamp":"2025-01-02T03:04:05Z","status":"success",` +
			`"pagespeed":{"performance":50,"accessibility":60,"best_practices":70,"seo":80},` +
			`"contact_info":{"emails":[],"phones":["555-123-4567"],"social_links":[]},` +
			`"design_issues":[{"type":"performance","severity":"low","description":"Image missing lazy loading"}]}`

		var r AnalysisResult
		if err := json.Unmarshal([]byte(in), &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.IsSuccess() {
			t.Error("expected success status")
		}
		if r.PageSpeed == nil || r.PageSpeed.SEO != 80 {
			t.Errorf("unexpected pagespeed: %+v", r.PageSpeed)
		}
		if len(r.DesignIssues) != 1 || r.DesignIssues[0].Severity != SeverityLow {
			t.Errorf("unexpected issues: %+v", r.DesignIssues)
		}
		if len(r.ContactInfo.Phones) != 1 {
			t.Errorf("unexpected phones: %v", r.ContactInfo.Phones)
		}
	})
}

func TestNewResults(t *testing.T) {
	t.Parallel()

	t.Run("NewSuccessResult", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		r := NewSuccessResult("https://example.com", nil, ContactInfo{}, nil)
		if r.Status != StatusSuccess {
			t.Errorf("expected success, got %s", r.Status)
		}
		if r.Timestamp.Before(before) {
			t.Error("expected timestamp to be set to now")
		}
		if !r.IsSuccess() {
			t.Error("expected IsSuccess to be true")
		}
	})

	t.Run("NewErrorResult", func(t *testing.T) {
		t.Parallel()

		r := NewErrorResult("https://example.com", errors.New("connection refused"))
		if r.Status != StatusError {
			t.Errorf("expected error status, got %s", r.Status)
		}
		if r.Error != "connection refused" {
			t.Errorf("unexpected error message %q", r.Error)
		}
		if r.IsSuccess() {
			t.Error("expected IsSuccess to be false")
		}
	})

	t.Run("NewErrorResult with nil error", func(t *testing.T) {
		t.Parallel()

		r := NewErrorResult("https://example.com", nil)
		if r.Error == "" {
			t.Error("expected a non-empty error message")
		}
	})

	t.Run("nil result is not a success", func(t *testing.T) {
		t.Parallel()

		var r *AnalysisResult
		if r.IsSuccess() {
			t.Error("expected nil result to not be a success")
		}
	})
}

func TestContactInfoHasAny(t *testing.T) {
	t.Parallel()

	if (ContactInfo{}).HasAny() {
		t.Error("expected empty ContactInfo to have nothing")
	}
	if !(ContactInfo{SocialLinks: []string{"https://facebook.com/x"}}).HasAny() {
		t.Error("expected ContactInfo with a social link to have something")
	}
}
