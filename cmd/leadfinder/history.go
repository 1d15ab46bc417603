package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/leadfinder/internal/config"
	"github.com/nao1215/leadfinder/internal/database"
	"github.com/nao1215/leadfinder/internal/model"
	"github.com/nao1215/leadfinder/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command reads past runs from the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored find runs",
		Long: `History lists the runs stored by 'leadfinder find' or prints one of them.

Every industry search is stored as a run with its analysis results in the
history database under the XDG data directory.

Examples:
  # List all runs
  leadfinder history

  # List runs for one city and industry
  leadfinder history --city Jaipur --industry "law firm"

  # Print the results of run 12
  leadfinder history --run 12

  # Export run 12 as JSON or Markdown
  leadfinder history --run 12 --json > results.json
  leadfinder history --run 12 --markdown > results.md`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	// Filter flags
	cmd.Flags().String("city", "", "Only list runs for this city")
	cmd.Flags().StringP("industry", "i", "", "Only list runs for this industry")

	// Run selection flags
	cmd.Flags().Int64P("run", "r", 0, "Print the results of the run with this ID")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false, "Print the run as a JSON result array")
	cmd.Flags().BoolP("markdown", "m", false, "Print the run as a Markdown summary")

	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory holding the history database")

	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	city, err := flags.GetString("city")
	if err != nil {
		return err
	}
	industry, err := flags.GetString("industry")
	if err != nil {
		return err
	}
	runID, err := flags.GetInt64("run")
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}

	if (jsonOutput || markdownOutput) && runID == 0 {
		return errors.New("--json and --markdown require --run")
	}

	setupLogger(cmd)

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if runID > 0 {
		var w report.Writer
		switch {
		case jsonOutput:
			w = report.NewJSONWriter(out, report.WithPrettyPrint())
		case markdownOutput:
			w = report.NewMarkdownWriter(out)
		default:
			w = report.NewSimpleWriter(out, report.WithVerbose(true), report.WithShowEmpty(true))
		}
		return showRun(ctx, db, runID, w)
	}

	return listRuns(ctx, db, out, city, industry)
}

// listRuns prints the stored runs matching city and industry.
func listRuns(ctx context.Context, db *database.HistoryDB, out io.Writer, city, industry string) error {
	runs, err := db.ListRuns(ctx, city, industry)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found in the database.")
		fmt.Fprintln(out, "\nUse 'leadfinder find' to search for leads.")
		return nil
	}

	fmt.Fprintf(out, "Stored runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-19s  %-12s  %-24s  %5s  %s\n", "ID", "Date", "City", "Industry", "URLs", "Summary")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 90))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-19s  %-12s  %-24s  %5d  %s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.City,
			run.Industry,
			run.URLCount,
			formatRunSummary(run.Summary),
		)
	}

	fmt.Fprintln(out, "\nUse 'leadfinder history --run <id>' to print a run.")
	return nil
}

// showRun writes one stored run with w.
func showRun(ctx context.Context, db *database.HistoryDB, id int64, w report.Writer) error {
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get run %d: %w", id, err)
	}
	if run == nil {
		return fmt.Errorf("run with ID %d not found", id)
	}

	results, err := db.GetRunResults(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get results of run %d: %w", id, err)
	}

	rep := report.NewReport(run.City, run.Industry, results)
	rep.GeneratedAt = run.StartedAt

	_, err = w.Write(rep)
	return err
}

// formatRunSummary formats a batch summary into a compact string.
func formatRunSummary(s model.BatchSummary) string {
	parts := []string{
		fmt.Sprintf("ok:%d", s.Succeeded),
		fmt.Sprintf("err:%d", s.Failed),
		fmt.Sprintf("email:%d", s.WithEmails),
	}
	if v := s.IssuesBySeverity[model.SeverityHigh]; v > 0 {
		parts = append(parts, fmt.Sprintf("H:%d", v))
	}
	if v := s.IssuesBySeverity[model.SeverityMedium]; v > 0 {
		parts = append(parts, fmt.Sprintf("M:%d", v))
	}
	if v := s.IssuesBySeverity[model.SeverityLow]; v > 0 {
		parts = append(parts, fmt.Sprintf("L:%d", v))
	}
	return strings.Join(parts, " ")
}
