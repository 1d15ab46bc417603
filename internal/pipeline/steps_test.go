package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nao1215/leadfinder/internal/crawler"
	"github.com/nao1215/leadfinder/internal/model"
)

const leadPage = `<html><head><title>Acme Law</title></head><body>
	<p>Write to office@acme.example or call 555-123-4567</p>
	<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
	<img src="/team.jpg">
</body></html>`

// fakeScorer returns fixed scores or an error.
type fakeScorer struct {
	scores *model.PageSpeedScores
	err    error
}

func (f *fakeScorer) Score(_ context.Context, _ string) (*model.PageSpeedScores, error) {
	return f.scores, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pageServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("step order", func(t *testing.T) {
		t.Parallel()

		a := NewAnalyzer(crawler.NewFetcher(), &fakeScorer{}, discardLogger())
		want := []string{"fetch", "parse", "pagespeed", "contacts", "design"}
		if got := a.StepNames(); strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("StepNames() = %v, want %v", got, want)
		}

		withoutScorer := NewAnalyzer(crawler.NewFetcher(), nil, discardLogger())
		if len(withoutScorer.StepNames()) != 4 {
			t.Errorf("expected pagespeed step to be skipped, got %v", withoutScorer.StepNames())
		}
	})

	t.Run("success result", func(t *testing.T) {
		t.Parallel()

		server := pageServer(t, http.StatusOK, leadPage)
		scores := &model.PageSpeedScores{Performance: 42, Accessibility: 50, BestPractices: 60, SEO: 70}

		result := NewAnalyzer(crawler.NewFetcher(), &fakeScorer{scores: scores}, discardLogger()).
			Analyze(context.Background(), server.URL)

		if !result.IsSuccess() {
			t.Fatalf("expected success, got error %q", result.Error)
		}
		if result.URL != server.URL {
			t.Errorf("unexpected URL %q", result.URL)
		}
		if result.PageSpeed != scores {
			t.Errorf("expected scores to be passed through, got %+v", result.PageSpeed)
		}
		if len(result.ContactInfo.Emails) != 1 || result.ContactInfo.Emails[0] != "office@acme.example" {
			t.Errorf("unexpected emails %v", result.ContactInfo.Emails)
		}
		if len(result.ContactInfo.Phones) != 1 {
			t.Errorf("unexpected phones %v", result.ContactInfo.Phones)
		}
		if len(result.ContactInfo.SocialLinks) != 1 {
			t.Errorf("unexpected social links %v", result.ContactInfo.SocialLinks)
		}
		// viewport, alt text, lazy loading, css framework
		if len(result.DesignIssues) != 4 {
			t.Errorf("expected 4 design issues, got %+v", result.DesignIssues)
		}
		if result.Timestamp.IsZero() {
			t.Error("expected timestamp")
		}
	})

	t.Run("scoring failure leaves pagespeed null", func(t *testing.T) {
		t.Parallel()

		server := pageServer(t, http.StatusOK, leadPage)

		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelWarn}))

		result := NewAnalyzer(crawler.NewFetcher(), &fakeScorer{err: errors.New("quota")}, logger).
			Analyze(context.Background(), server.URL)

		if !result.IsSuccess() {
			t.Fatalf("expected success, got error %q", result.Error)
		}
		if result.PageSpeed != nil {
			t.Errorf("expected nil pagespeed, got %+v", result.PageSpeed)
		}
		if !strings.Contains(logBuf.String(), "pagespeed scoring failed") {
			t.Errorf("expected warning, got %q", logBuf.String())
		}
	})

	t.Run("http error becomes error result", func(t *testing.T) {
		t.Parallel()

		server := pageServer(t, http.StatusNotFound, "gone")

		result := NewAnalyzer(crawler.NewFetcher(), &fakeScorer{}, discardLogger()).
			Analyze(context.Background(), server.URL)

		if result.Status != model.StatusError {
			t.Fatalf("expected error status, got %s", result.Status)
		}
		if !strings.Contains(result.Error, "404") {
			t.Errorf("expected status in error message, got %q", result.Error)
		}
		if result.PageSpeed != nil || result.DesignIssues != nil {
			t.Error("error result should carry no success fields")
		}
	})

	t.Run("unreachable host becomes error result", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		unreachable := server.URL
		server.Close()

		result := NewAnalyzer(crawler.NewFetcher(), nil, discardLogger()).
			Analyze(context.Background(), unreachable)

		if result.IsSuccess() {
			t.Error("expected error result")
		}
		if result.Error == "" {
			t.Error("expected error message")
		}
	})
}

func TestStepsRequireEarlierOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		step Step
		want error
	}{
		{name: "parse without response", step: NewParseStep(), want: errNoResponse},
		{name: "contacts without page", step: NewContactStep(), want: errNoPage},
		{name: "design without page", step: NewDesignStep(), want: errNoPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.step.Do(context.Background(), &Analysis{}); !errors.Is(err, tt.want) {
				t.Errorf("Do() error = %v, want %v", err, tt.want)
			}
		})
	}
}
