package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/leadfinder/internal/model"
)

// Analyzer turns a URL into an AnalysisResult by running the standard
// pipeline: fetch, parse, pagespeed, contacts, design.
type Analyzer struct {
	pipeline *Pipeline
}

// NewAnalyzer creates an Analyzer. A nil scorer skips the pagespeed step,
// so every success result has null scores.
func NewAnalyzer(fetcher PageFetcher, scorer Scorer, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}

	p := New(WithLogger(logger))
	p.AddSteps(NewFetchStep(fetcher), NewParseStep())
	if scorer != nil {
		p.AddStep(NewPageSpeedStep(scorer, logger))
	}
	p.AddSteps(NewContactStep(), NewDesignStep())

	return &Analyzer{pipeline: p}
}

// Analyze runs the pipeline for pageURL. It never returns nil: any step
// failure becomes an error result.
func (a *Analyzer) Analyze(ctx context.Context, pageURL string) *model.AnalysisResult {
	state := &Analysis{URL: pageURL}
	if err := a.pipeline.Execute(ctx, state); err != nil {
		return model.NewErrorResult(pageURL, err)
	}
	return model.NewSuccessResult(pageURL, state.PageSpeed, state.Contacts, state.Issues)
}

// StepNames returns the steps the analyzer runs, in order.
func (a *Analyzer) StepNames() []string {
	return a.pipeline.StepNames()
}
