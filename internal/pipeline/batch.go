package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/leadfinder/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Batch defaults.
const (
	DefaultConcurrency = 5
	DefaultDelay       = time.Second
)

// URLAnalyzer analyzes a single URL. *Analyzer implements it.
type URLAnalyzer interface {
	Analyze(ctx context.Context, pageURL string) *model.AnalysisResult
}

// BatchProcessor analyzes many URLs concurrently.
//
// At most concurrency analyses run at once, and analyses start no faster
// than one per delay across all workers. There are no retries.
type BatchProcessor struct {
	// analyzer is shared by all workers.
	analyzer URLAnalyzer

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// limiter spaces analysis starts. Nil disables rate limiting.
	limiter *rate.Limiter

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values keep the default of 5.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithDelay sets the minimum interval between analysis starts, shared by
// all workers. Zero disables rate limiting; negative values are ignored.
func WithDelay(d time.Duration) BatchOption {
	return func(b *BatchProcessor) {
		switch {
		case d == 0:
			b.limiter = nil
		case d > 0:
			b.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor with 5 workers and a one
// second delay.
func NewBatchProcessor(analyzer URLAnalyzer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: DefaultConcurrency,
		limiter:     rate.NewLimiter(rate.Every(DefaultDelay), 1),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes urls and returns one result per URL, in input
// order. If ctx is cancelled, URLs that had not started yet get error
// results carrying the context error, and that error is returned too.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]*model.AnalysisResult, error) {
	results := make([]*model.AnalysisResult, len(urls))
	err := bp.ProcessBatchWithCallback(ctx, urls, func(result *model.AnalysisResult, index int) {
		results[index] = result
	})
	return results, err
}

// ProcessBatchWithCallback analyzes urls and calls callback once per URL
// as results complete, so calls arrive in completion order. index is the
// URL's position in urls. Calls are serialized; callback needs no locking
// of its own.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	urls []string,
	callback func(result *model.AnalysisResult, index int),
) error {
	bp.logger.Info("starting batch analysis",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	var mu sync.Mutex
	deliver := func(result *model.AnalysisResult, index int) {
		mu.Lock()
		defer mu.Unlock()
		callback(result, index)
	}

	// Workers never return errors, so a plain Group is enough: one failed
	// URL must not cancel the others.
	var g errgroup.Group
	g.SetLimit(bp.concurrency)

	for i, pageURL := range urls {
		g.Go(func() error {
			deliver(bp.analyzeOne(ctx, pageURL, i, len(urls)), i)
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // workers always return nil

	bp.logger.Info("batch analysis complete",
		"total_urls", len(urls),
		"elapsed", time.Since(startTime),
	)

	return ctx.Err()
}

// analyzeOne waits for the rate limiter and analyzes one URL.
func (bp *BatchProcessor) analyzeOne(ctx context.Context, pageURL string, index, total int) *model.AnalysisResult {
	if err := ctx.Err(); err != nil {
		return model.NewErrorResult(pageURL, err)
	}
	if bp.limiter != nil {
		if err := bp.limiter.Wait(ctx); err != nil {
			return model.NewErrorResult(pageURL, err)
		}
	}

	bp.logger.Info("analyzing url",
		"url", pageURL,
		"index", index+1,
		"total", total,
	)

	result := bp.analyzer.Analyze(ctx, pageURL)
	if result == nil {
		result = model.NewErrorResult(pageURL, nil)
	}
	if !result.IsSuccess() {
		bp.logger.Warn("analysis failed",
			"url", pageURL,
			"error", result.Error,
		)
	}
	return result
}
