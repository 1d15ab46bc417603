package main

import (
	"github.com/nao1215/leadfinder/internal/cleaner"
	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [dir]",
		Short: "Remove unwanted entries from result files",
		Long: `Clean filters every *.json result file in a directory and writes the
kept entries to <name>_cleaned.json next to it.

Entries are removed when their url is missing or points at a document
(.pdf, .doc, .docx, .csv), a code or forum site (github.com, reddit.com),
a business directory (justdial.com) or a job listing (linkedin.com/jobs,
/careers, /job). Files already ending in _cleaned.json are skipped.

Examples:
  # Clean result files in the current directory
  leadfinder clean

  # Clean result files written with --output-dir
  leadfinder clean results/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCleanCmd,
	}
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	c := cleaner.New(
		cleaner.WithOutput(cmd.OutOrStdout()),
		cleaner.WithLogger(setupLogger(cmd)),
	)

	_, err := c.CleanDir(dir)
	return err
}
