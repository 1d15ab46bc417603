package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/leadfinder/internal/config"
	"github.com/nao1215/leadfinder/internal/crawler"
	"github.com/nao1215/leadfinder/internal/database"
	"github.com/nao1215/leadfinder/internal/model"
	"github.com/nao1215/leadfinder/internal/pagespeed"
	"github.com/nao1215/leadfinder/internal/pipeline"
	"github.com/nao1215/leadfinder/internal/report"
	"github.com/nao1215/leadfinder/internal/search"
	"github.com/spf13/cobra"
)

// NewFindCmd creates the find command.
func NewFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search for business websites and analyze them",
		Long: `Find searches for business websites in a city, one industry at a time,
and analyzes the landing page of every result.

For each industry it writes results_<industry>.json to the output directory:
one entry per website with PageSpeed scores, contact details and design
issues, or an error message when the site could not be analyzed.

Examples:
  # Search the default industries in Jaipur
  leadfinder find

  # Search two industries in another city
  leadfinder find --city Austin --industry "law firm" --industry "dental practice"

  # Also write Markdown and spreadsheet summaries
  leadfinder find --markdown --xlsx -o results/

  # Skip websites analyzed successfully in the last week
  leadfinder find --skip-recent 168h`,
		Args: cobra.NoArgs,
		RunE: runFindCmd,
	}

	// Search flags
	cmd.Flags().String("city", config.DefaultCity,
		"Target city substituted into search queries")
	cmd.Flags().StringArrayP("industry", "i", nil,
		"Industry to search (repeatable; default: the built-in industry list)")
	cmd.Flags().IntP("max-results", "n", config.DefaultMaxResults,
		"Maximum number of websites analyzed per industry")
	cmd.Flags().Duration("query-delay", config.DefaultQueryDelay,
		"Pause after each search API call")

	// Analysis flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of websites analyzed concurrently")
	cmd.Flags().DurationP("delay", "d", config.DefaultAnalysisDelay,
		"Minimum spacing between two analyses (0 disables)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for each page fetch")

	// Output flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory for result files (created if needed)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown summary per industry")
	cmd.Flags().BoolP("xlsx", "x", false,
		"Also write a spreadsheet per industry")

	// History flags
	cmd.Flags().Bool("no-db", false,
		"Do not store runs in the history database")
	cmd.Flags().Duration("skip-recent", 0,
		"Skip websites analyzed successfully within this window (requires the history database)")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the history database")

	// Configuration flags
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: ./.leadfinder, ~/.config/leadfinder/config.yaml or ~/.leadfinder)")
	cmd.Flags().String("env-file", config.DefaultEnvFile,
		"Dotenv file holding the API keys")

	return cmd
}

// runFindCmd executes the find command.
func runFindCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildFindConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	if !cfg.Credentials.HasSearch() {
		logger.Warn("search credentials are not set; every search query will fail",
			"env_file", cfg.EnvFile)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := newFinder(cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Run(ctx)
}

// buildFindConfig creates a Config from defaults, the config file and the
// command flags, in increasing priority.
func buildFindConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit config path must exist; otherwise the file is optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("city") {
		if cfg.City, err = flags.GetString("city"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("industry") {
		if cfg.Industries, err = flags.GetStringArray("industry"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-results") {
		if cfg.MaxResults, err = flags.GetInt("max-results"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("query-delay") {
		if cfg.QueryDelay, err = flags.GetDuration("query-delay"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("delay") {
		if cfg.AnalysisDelay, err = flags.GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.FetchTimeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.XLSXReport, err = flags.GetBool("xlsx"); err != nil {
		return nil, err
	}

	noDB, err := flags.GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	if cfg.SkipRecent, err = flags.GetDuration("skip-recent"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}
	if cfg.EnvFile, err = flags.GetString("env-file"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	cfg.Credentials, err = config.LoadCredentials(cfg.EnvFile)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// urlSearcher finds candidate website URLs for one industry.
type urlSearcher interface {
	Search(ctx context.Context, city, industry string, maxResults int) ([]string, error)
}

// finder runs the find workflow for every configured industry.
type finder struct {
	cfg      *config.Config
	searcher urlSearcher
	batch    *pipeline.BatchProcessor
	db       *database.HistoryDB
	out      io.Writer
	logger   *slog.Logger
}

// newFinder wires the search, analysis and history components from cfg.
func newFinder(cfg *config.Config, out io.Writer, logger *slog.Logger) (*finder, error) {
	searcher := search.NewClient(
		cfg.Credentials.SearchAPIKey,
		cfg.Credentials.SearchEngineID,
		search.WithQueryDelay(cfg.QueryDelay),
		search.WithLogger(logger),
	)

	fetcher := crawler.NewFetcher(
		crawler.WithTimeout(cfg.FetchTimeout),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
	scorer := pagespeed.NewClient(cfg.Credentials.PageSpeedAPIKey)

	batch := pipeline.NewBatchProcessor(
		pipeline.NewAnalyzer(fetcher, scorer, logger),
		pipeline.WithConcurrency(cfg.Workers),
		pipeline.WithDelay(cfg.AnalysisDelay),
		pipeline.WithBatchLogger(logger),
	)

	var db *database.HistoryDB
	if cfg.SaveToDB || cfg.SkipRecent > 0 {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Info("database opened", "path", db.Path())
	}

	return &finder{
		cfg:      cfg,
		searcher: searcher,
		batch:    batch,
		db:       db,
		out:      out,
		logger:   logger,
	}, nil
}

// Close releases the history database, if open.
func (f *finder) Close() {
	if f.db == nil {
		return
	}
	if err := f.db.Close(); err != nil {
		f.logger.Error("failed to close database", "error", err)
	}
}

// Run processes the configured industries sequentially.
func (f *finder) Run(ctx context.Context) error {
	f.logger.Info("starting find",
		"city", f.cfg.City,
		"industries", f.cfg.Industries,
		"max_results", f.cfg.MaxResults,
		"workers", f.cfg.Workers,
	)

	for _, industry := range f.cfg.Industries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.runIndustry(ctx, industry); err != nil {
			return err
		}
	}
	return nil
}

// runIndustry searches one industry, analyzes the results and writes every
// output. A cancelled batch still writes the partial results.
func (f *finder) runIndustry(ctx context.Context, industry string) error {
	startedAt := time.Now()
	fmt.Fprintf(f.out, "Searching for %s in %s...\n", industry, f.cfg.City)

	urls, err := f.searcher.Search(ctx, f.cfg.City, industry, f.cfg.MaxResults)
	if err != nil {
		return fmt.Errorf("search for %s failed: %w", industry, err)
	}

	urls = f.skipRecent(ctx, urls)
	fmt.Fprintf(f.out, "Found %d websites to analyze\n", len(urls))

	results := make([]*model.AnalysisResult, len(urls))
	var done int
	batchErr := f.batch.ProcessBatchWithCallback(ctx, urls, func(result *model.AnalysisResult, index int) {
		results[index] = result
		done++
		status := "ok"
		if !result.IsSuccess() {
			status = "error: " + result.Error
		}
		fmt.Fprintf(f.out, "[%d/%d] %s (%s)\n", done, len(urls), result.URL, status)
	})

	rep := report.NewReport(f.cfg.City, industry, results)
	if err := f.writeOutputs(rep); err != nil {
		return err
	}

	if _, err := report.NewSimpleWriter(f.out, report.WithVerbose(f.cfg.Verbose)).Write(rep); err != nil {
		return err
	}

	if f.db != nil && f.cfg.SaveToDB {
		run := &database.Run{City: f.cfg.City, Industry: industry, StartedAt: startedAt}
		if _, err := f.db.SaveRun(context.WithoutCancel(ctx), run, results); err != nil {
			f.logger.Error("failed to save run", "industry", industry, "error", err)
		} else {
			f.logger.Info("run saved to database", "industry", industry, "run_id", run.ID)
		}
	}

	return batchErr
}

// skipRecent drops URLs that the history database has a recent success
// for. Lookup failures keep the URL.
func (f *finder) skipRecent(ctx context.Context, urls []string) []string {
	if f.db == nil || f.cfg.SkipRecent <= 0 {
		return urls
	}

	kept := make([]string, 0, len(urls))
	for _, u := range urls {
		recent, err := f.db.HasRecentResult(ctx, u, f.cfg.SkipRecent)
		if err != nil {
			f.logger.Warn("history lookup failed", "url", u, "error", err)
		}
		if recent {
			f.logger.Info("skipping recently analyzed website", "url", u)
			continue
		}
		kept = append(kept, u)
	}
	return kept
}

// writeOutputs writes the JSON result file and the optional summaries.
func (f *finder) writeOutputs(rep *report.Report) error {
	outputs := []struct {
		enabled   bool
		ext       string
		newWriter func(io.Writer) report.Writer
	}{
		{true, "json", func(w io.Writer) report.Writer { return report.NewJSONWriter(w, report.WithPrettyPrint()) }},
		{f.cfg.MarkdownReport, "md", func(w io.Writer) report.Writer { return report.NewMarkdownWriter(w) }},
		{f.cfg.XLSXReport, "xlsx", func(w io.Writer) report.Writer { return report.NewXLSXWriter(w) }},
	}

	var errs []error
	for _, o := range outputs {
		if !o.enabled {
			continue
		}
		path := filepath.Join(f.cfg.OutputDir, report.ResultFileName(rep.Industry, o.ext))
		if err := report.WriteFile(path, rep, o.newWriter); err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(f.out, "Saved %s\n", path)
	}
	return errors.Join(errs...)
}
