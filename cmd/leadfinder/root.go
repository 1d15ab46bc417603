package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/leadfinder/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for leadfinder.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadfinder",
		Short: "Find small-business websites that need web design work",
		Long: `leadfinder is a lead-generation tool for web design agencies.

It queries a web search API for business websites in a target city and
industry, fetches each landing page, and records contact details
(emails, phone numbers, social links), PageSpeed scores and design issues
such as missing mobile support or outdated libraries.

API keys are read from the environment or a .env file:
  SEARCH_API_KEY      Google Custom Search API key
  SEARCH_ENGINE_ID    Custom search engine id
  PAGESPEED_API_KEY   PageSpeed Insights API key`,
		Version:           getVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: validateLogFormat,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", logFormatText, `Log format on stderr: "text" or "json"`)

	cmd.AddCommand(NewFindCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// Log formats accepted by --log-format.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// getLogFormat retrieves the log format flag from the command or its parent.
func getLogFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format, err = cmd.Root().PersistentFlags().GetString("log-format")
		if err != nil {
			return logFormatText
		}
	}
	return format
}

// validateLogFormat rejects unknown --log-format values before any command runs.
func validateLogFormat(cmd *cobra.Command, _ []string) error {
	switch format := getLogFormat(cmd); format {
	case logFormatText, logFormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q (want %q or %q)", format, logFormatText, logFormatJSON)
	}
}

// setupLogger creates the stderr logger for a command. API keys travel in
// request URLs, so every logger goes through the secure handler.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	var logger *slog.Logger
	if getLogFormat(cmd) == logFormatJSON {
		logger = log.NewSecureJSONLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	} else {
		logger = log.NewSecureLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	}
	slog.SetDefault(logger)
	return logger
}
