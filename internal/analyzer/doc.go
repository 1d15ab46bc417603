// Package analyzer extracts lead information from a parsed landing page.
//
// Two analyses are provided:
//   - ExtractContacts finds email addresses and phone numbers in the visible
//     text and links to social media profiles.
//   - AuditDesign runs a fixed checklist of design checks and reports each
//     problem as a model.DesignIssue.
//
// Both are pure functions of the page and safe for concurrent use.
package analyzer
