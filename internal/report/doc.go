// Package report provides result output for leadfinder runs.
//
// This package contains writers for different output formats:
//   - JSONWriter: the per-industry result file, an array of analysis results
//   - MarkdownWriter: a shareable summary with tables and a mermaid chart
//   - XLSXWriter: a spreadsheet with one row per website
//   - SimpleWriter: a human-readable summary for terminal display
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably. WriteFile and
// ResultFileName place the output next to the other result files.
package report
