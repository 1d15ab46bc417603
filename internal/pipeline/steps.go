package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/leadfinder/internal/analyzer"
	"github.com/nao1215/leadfinder/internal/crawler"
	"github.com/nao1215/leadfinder/internal/model"
)

// errNoResponse and errNoPage guard against misordered pipelines.
var (
	errNoResponse = errors.New("parse step requires a fetched response")
	errNoPage     = errors.New("step requires a parsed page")
)

// PageFetcher downloads a page. *crawler.Fetcher implements it.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*crawler.Response, error)
}

// Scorer scores a page. *pagespeed.Client implements it.
type Scorer interface {
	Score(ctx context.Context, pageURL string) (*model.PageSpeedScores, error)
}

// FetchStep downloads the landing page.
type FetchStep struct {
	fetcher PageFetcher
}

// NewFetchStep creates a fetch step.
func NewFetchStep(fetcher PageFetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches a.URL into a.Response.
func (s *FetchStep) Do(ctx context.Context, a *Analysis) error {
	resp, err := s.fetcher.Fetch(ctx, a.URL)
	if err != nil {
		return err
	}
	a.Response = resp
	return nil
}

// ParseStep parses the fetched HTML.
type ParseStep struct{}

// NewParseStep creates a parse step.
func NewParseStep() *ParseStep {
	return &ParseStep{}
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do parses a.Response into a.Page.
func (s *ParseStep) Do(_ context.Context, a *Analysis) error {
	if a.Response == nil {
		return errNoResponse
	}
	page, err := crawler.ParseResponse(a.Response)
	if err != nil {
		return err
	}
	a.Page = page
	return nil
}

// PageSpeedStep scores the page. A scoring failure is logged and leaves
// a.PageSpeed nil; it never fails the analysis.
type PageSpeedStep struct {
	scorer Scorer
	logger *slog.Logger
}

// NewPageSpeedStep creates a pagespeed step. A nil logger uses slog.Default().
func NewPageSpeedStep(scorer Scorer, logger *slog.Logger) *PageSpeedStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageSpeedStep{scorer: scorer, logger: logger}
}

// Name returns the step name.
func (s *PageSpeedStep) Name() string {
	return "pagespeed"
}

// Do scores a.URL into a.PageSpeed.
func (s *PageSpeedStep) Do(ctx context.Context, a *Analysis) error {
	scores, err := s.scorer.Score(ctx, a.URL)
	if err != nil {
		s.logger.Warn("pagespeed scoring failed",
			"url", a.URL,
			"error", err,
		)
		a.PageSpeed = nil
		return nil
	}
	a.PageSpeed = scores
	return nil
}

// ContactStep extracts contact information.
type ContactStep struct{}

// NewContactStep creates a contacts step.
func NewContactStep() *ContactStep {
	return &ContactStep{}
}

// Name returns the step name.
func (s *ContactStep) Name() string {
	return "contacts"
}

// Do extracts contacts from a.Page.
func (s *ContactStep) Do(_ context.Context, a *Analysis) error {
	if a.Page == nil {
		return errNoPage
	}
	a.Contacts = analyzer.ExtractContacts(a.Page)
	return nil
}

// DesignStep runs the design audit.
type DesignStep struct{}

// NewDesignStep creates a design step.
func NewDesignStep() *DesignStep {
	return &DesignStep{}
}

// Name returns the step name.
func (s *DesignStep) Name() string {
	return "design"
}

// Do audits a.Page into a.Issues.
func (s *DesignStep) Do(_ context.Context, a *Analysis) error {
	if a.Page == nil {
		return errNoPage
	}
	a.Issues = analyzer.AuditDesign(a.Page)
	return nil
}
