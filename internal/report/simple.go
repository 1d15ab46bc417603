package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/leadfinder/internal/model"
)

// SimpleWriter outputs a human-readable run summary for the terminal.
// Plain ASCII rules are used so the output can be piped to files.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether empty sections are shown.
	showEmpty bool

	// verbose lists every website, not only the ones with contacts.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report summary in human-readable format.
func (w *SimpleWriter) Write(report *Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeIssues(&sb, report)
	w.writeLeads(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeRule writes a section title between two rules.
func writeRule(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeHeader writes the run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        LEADFINDER SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "City:      %s\n", report.City)
	fmt.Fprintf(sb, "Industry:  %s\n", report.Industry)
	fmt.Fprintf(sb, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	sb.WriteString("\n")
}

// writeSummary writes status and contact counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *Report) {
	s := report.Summary

	writeRule(sb, "SUMMARY")

	fmt.Fprintf(sb, "  WEBSITES:  %d\n", s.Total)
	fmt.Fprintf(sb, "  ANALYZED:  %d\n", s.Succeeded)
	fmt.Fprintf(sb, "  FAILED:    %d\n", s.Failed)
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  EMAILS:    %d site(s)\n", s.WithEmails)
	fmt.Fprintf(sb, "  PHONES:    %d site(s)\n", s.WithPhones)
	fmt.Fprintf(sb, "  SOCIAL:    %d site(s)\n", s.WithSocialLinks)
	if s.MeanPageSpeed != nil {
		sb.WriteString("\n")
		fmt.Fprintf(sb, "  PERFORMANCE (mean of %d): %.1f\n", s.Scored, s.MeanPageSpeed.Performance)
	}
	sb.WriteString("\n")
}

// writeIssues writes the design issue counts by severity.
func (w *SimpleWriter) writeIssues(sb *strings.Builder, report *Report) {
	s := report.Summary
	if s.TotalIssues() == 0 && !w.showEmpty {
		return
	}

	writeRule(sb, "DESIGN ISSUES")

	for _, severity := range model.Severities() {
		fmt.Fprintf(sb, "  [%s] %-7s %d\n",
			getSeverityIndicator(severity), strings.ToUpper(severity.String())+":", s.IssuesBySeverity[severity])
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL:      %d issues\n", s.TotalIssues())
	sb.WriteString("\n")
}

// writeLeads writes the websites with contact details. In verbose mode
// every website is listed, including failures.
func (w *SimpleWriter) writeLeads(sb *strings.Builder, report *Report) {
	var lines []string
	for _, r := range report.Results {
		if r == nil {
			continue
		}
		switch {
		case !r.IsSuccess():
			if w.verbose {
				lines = append(lines, fmt.Sprintf("  [x] %s\n      Error: %s\n", r.URL, r.Error))
			}
		case r.ContactInfo.HasAny() || w.verbose:
			lines = append(lines, formatLead(r))
		}
	}

	if len(lines) == 0 && !w.showEmpty {
		return
	}

	writeRule(sb, "LEADS")

	if len(lines) == 0 {
		sb.WriteString("  No websites with contact details\n\n")
		return
	}
	for _, line := range lines {
		sb.WriteString(line)
	}
	sb.WriteString("\n")
}

// formatLead formats one successful result.
func formatLead(r *model.AnalysisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  [+] %s\n", r.URL)
	if len(r.ContactInfo.Emails) > 0 {
		fmt.Fprintf(&sb, "      Emails: %s\n", strings.Join(r.ContactInfo.Emails, ", "))
	}
	if len(r.ContactInfo.Phones) > 0 {
		fmt.Fprintf(&sb, "      Phones: %s\n", strings.Join(r.ContactInfo.Phones, ", "))
	}
	if len(r.ContactInfo.SocialLinks) > 0 {
		fmt.Fprintf(&sb, "      Social: %s\n", socialPlatformsText(r.ContactInfo.SocialLinks))
	}
	if len(r.DesignIssues) > 0 {
		fmt.Fprintf(&sb, "      Issues: %s\n", issueTypesText(r.DesignIssues))
	}
	return sb.String()
}

// getSeverityIndicator returns a visual indicator for the severity level.
func getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
