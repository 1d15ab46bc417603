package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/leadfinder/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs a lead summary in Markdown format.
// This format is meant for sharing a run with people who will not read JSON.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeIssues(md, report)
	w.writeLeads(md, report)
	w.writeRecommendations(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *Report) {
	industry := cases.Title(language.English).String(report.Industry)
	md.H1(fmt.Sprintf("Leads: %s in %s", industry, report.City))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"City", report.City},
			{"Industry", industry},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Websites Analyzed", strconv.Itoa(report.Summary.Total)},
		},
	})
	md.PlainText("")
}

// writeSummary writes status counts and contact coverage.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *Report) {
	s := report.Summary

	md.H2("Summary")
	md.PlainText("")

	rows := [][]string{
		{"✅ Analyzed", strconv.Itoa(s.Succeeded)},
		{"❌ Failed", strconv.Itoa(s.Failed)},
		{"📧 With Emails", strconv.Itoa(s.WithEmails)},
		{"📞 With Phones", strconv.Itoa(s.WithPhones)},
		{"🔗 With Social Links", strconv.Itoa(s.WithSocialLinks)},
	}
	if s.MeanPageSpeed != nil {
		rows = append(rows,
			[]string{"Mean Performance", formatScore(s.MeanPageSpeed.Performance)},
			[]string{"Mean Accessibility", formatScore(s.MeanPageSpeed.Accessibility)},
			[]string{"Mean Best Practices", formatScore(s.MeanPageSpeed.BestPractices)},
			[]string{"Mean SEO", formatScore(s.MeanPageSpeed.SEO)},
		)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeIssues writes the severity table, the issue chart and an alert.
func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, report *Report) {
	s := report.Summary

	md.H2("Design Issues")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 High", strconv.Itoa(s.IssuesBySeverity[model.SeverityHigh])},
			{"🟡 Medium", strconv.Itoa(s.IssuesBySeverity[model.SeverityMedium])},
			{"🔵 Low", strconv.Itoa(s.IssuesBySeverity[model.SeverityLow])},
			{"**Total**", "**" + strconv.Itoa(s.TotalIssues()) + "**"},
		},
	})
	md.PlainText("")

	if s.TotalIssues() > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of issues per type.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Design Issues by Type"),
		piechart.WithShowData(true),
	)

	for _, t := range model.IssueTypes() {
		if n := report.Summary.IssuesByType[t]; n > 0 {
			chart.LabelAndIntValue(model.GetIssueInfo(t).Title, uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert describing how much outreach material the run found.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *Report) {
	s := report.Summary
	high := s.IssuesBySeverity[model.SeverityHigh]

	switch {
	case s.Total == 0:
		md.Note("The search returned no websites to analyze.")
	case s.Succeeded == 0:
		md.Cautionf("All %d website(s) failed to load.", s.Total)
	case high > 0:
		md.Importantf(
			"%d high severity issue(s) found. These sites are the strongest redesign leads.",
			high,
		)
	case s.TotalIssues() > 0:
		md.Note("Only medium and low severity issues were found.")
	default:
		md.Tip("No design issues were detected on the analyzed websites.")
	}
	md.PlainText("")
}

// writeLeads writes one row per website.
func (w *MarkdownWriter) writeLeads(md *markdown.Markdown, report *Report) {
	md.H2("Websites")
	md.PlainText("")

	if len(report.Results) == 0 {
		md.PlainText("No websites analyzed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Results))
	var failed []string
	for _, r := range report.Results {
		if r == nil {
			continue
		}
		if !r.IsSuccess() {
			rows = append(rows, []string{truncateString(r.URL, 50), "❌", "-", "-", "-", "-", "-"})
			failed = append(failed, fmt.Sprintf("%s: %s", r.URL, r.Error))
			continue
		}
		rows = append(rows, []string{
			truncateString(r.URL, 50),
			"✅",
			joinOrDash(r.ContactInfo.Emails),
			joinOrDash(r.ContactInfo.Phones),
			socialPlatformsText(r.ContactInfo.SocialLinks),
			performanceText(r.PageSpeed),
			issueTypesText(r.DesignIssues),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Website", "Status", "Emails", "Phones", "Social", "Performance", "Issues"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(failed) > 0 {
		md.Details("Failed websites", strings.Join(failed, "\n"))
		md.PlainText("")
	}
}

// writeRecommendations lists a recommendation for every issue type seen.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *Report) {
	var items []string
	for _, t := range model.IssueTypes() {
		n := report.Summary.IssuesByType[t]
		if n == 0 {
			continue
		}
		info := model.GetIssueInfo(t)
		items = append(items, fmt.Sprintf("**%s** (%s, %d issue(s)): %s",
			info.Title, info.Severity, n, info.Recommendation))
	}
	if len(items) == 0 {
		return
	}

	md.H2("Recommendations")
	md.PlainText("")
	md.BulletList(items...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [leadfinder](https://github.com/nao1215/leadfinder)*")
}

// formatScore formats a 0-100 score with one decimal place.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// performanceText returns the performance score, or "-" when unscored.
func performanceText(scores *model.PageSpeedScores) string {
	if scores == nil {
		return "-"
	}
	return formatScore(scores.Performance)
}

// issueTypesText returns the distinct issue types of a result, sorted.
func issueTypesText(issues []model.DesignIssue) string {
	if len(issues) == 0 {
		return "-"
	}
	seen := make(map[string]bool, len(issues))
	var types []string
	for _, issue := range issues {
		name := issue.Type.String()
		if !seen[name] {
			seen[name] = true
			types = append(types, name)
		}
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}

// socialPlatformsText lists the distinct platform domains linked from a
// site, e.g. "facebook.com, linkedin.com", or "-" when there are none.
func socialPlatformsText(links []string) string {
	seen := make(map[string]bool)
	var domains []string
	for _, link := range links {
		domain := model.PlatformFromLink(link).Domain()
		if domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true
		domains = append(domains, domain)
	}
	if len(domains) == 0 {
		return "-"
	}
	sort.Strings(domains)
	return strings.Join(domains, ", ")
}

// joinOrDash joins values with ", " or returns "-" for an empty list.
func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return truncateString(strings.Join(values, ", "), 60)
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
