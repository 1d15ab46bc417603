// Package model defines the core data structures used throughout leadfinder.
//
// This package contains the following main types:
//   - AnalysisResult: the outcome of analyzing one candidate website
//   - DesignIssue: a single finding of the design audit
//   - Severity: the ordered importance of a design issue
//   - BatchSummary: aggregate counts over a batch of results
//
// Models live in their own package so that the search, pipeline, report and
// database packages can share them without import cycles. All of them are
// serializable to JSON for result files and the history database.
package model
