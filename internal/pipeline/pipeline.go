package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/leadfinder/internal/crawler"
	"github.com/nao1215/leadfinder/internal/model"
)

// Analysis is the state of one URL as it moves through the pipeline.
// Each step reads what earlier steps stored and adds its own output.
type Analysis struct {
	// URL is the page being analyzed.
	URL string

	// Response is set by the fetch step.
	Response *crawler.Response

	// Page is set by the parse step.
	Page *crawler.Page

	// PageSpeed is set by the pagespeed step; nil when scoring failed.
	PageSpeed *model.PageSpeedScores

	// Contacts is set by the contacts step.
	Contacts model.ContactInfo

	// Issues is set by the design step.
	Issues []model.DesignIssue
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// analysis from previous steps.
type Step interface {
	// Do executes the pipeline step.
	// An error stops the pipeline and turns the URL into an error result.
	Do(ctx context.Context, a *Analysis) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// Execute does not modify the pipeline, so one Pipeline may serve many
// goroutines once its steps are added.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence and returns the first error.
// Cancellation is checked before each step; steps handle their own
// timeouts.
func (p *Pipeline) Execute(ctx context.Context, a *Analysis) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("pipeline cancelled",
				"step", step.Name(),
				"url", a.URL,
				"reason", err,
			)
			return err
		}

		if err := step.Do(ctx, a); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"url", a.URL,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"url", a.URL,
		)
	}

	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
