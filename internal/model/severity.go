package model

import (
	"fmt"
	"strings"
)

// Severity represents how much a design issue hurts a website.
// Values are ordered so that issues can be sorted and compared.
type Severity int

const (
	// SeverityLow indicates cosmetic or minor performance issues.
	// Examples: images without lazy loading, no modern CSS framework.
	SeverityLow Severity = iota

	// SeverityMedium indicates issues that visibly degrade the site.
	// Examples: outdated jQuery, images without alt text.
	SeverityMedium

	// SeverityHigh indicates issues that break the site for many visitors.
	// Example: no mobile viewport.
	SeverityHigh
)

// String returns the lower-case name used in result files.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a severity name (case-insensitive) to Severity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	default:
		return SeverityLow, fmt.Errorf("unknown severity %q", name)
	}
}

// Severities returns all severity levels from highest to lowest.
func Severities() []Severity {
	return []Severity{SeverityHigh, SeverityMedium, SeverityLow}
}

// IssueInfo contains metadata about an issue type: the severity assigned
// by the design audit, a short title and a sales-oriented recommendation.
type IssueInfo struct {
	Severity       Severity
	Title          string
	Recommendation string
}

// issueInfoMapping maps issue types to their metadata.
// The design audit takes severities from here so that reports and result
// files always agree.
var issueInfoMapping = map[IssueType]IssueInfo{
	IssueMobileResponsive: {
		Severity:       SeverityHigh,
		Title:          "Not mobile friendly",
		Recommendation: "Offer a responsive redesign; most local customers browse on phones.",
	},
	IssueOutdatedFramework: {
		Severity:       SeverityMedium,
		Title:          "Outdated JavaScript libraries",
		Recommendation: "Offer a front-end upgrade to current jQuery or a modern framework.",
	},
	IssueAccessibility: {
		Severity:       SeverityMedium,
		Title:          "Accessibility gaps",
		Recommendation: "Offer an accessibility pass: alt text, contrast and semantic markup.",
	},
	IssuePerformance: {
		Severity:       SeverityLow,
		Title:          "Unoptimized images",
		Recommendation: "Offer image optimization with lazy loading and modern formats.",
	},
	IssueModernFrameworks: {
		Severity:       SeverityLow,
		Title:          "No modern CSS framework",
		Recommendation: "Offer a visual refresh built on a current CSS framework.",
	},
}

// GetSeverity returns the severity for an issue type.
// Unknown issue types are treated as SeverityLow.
func GetSeverity(issueType IssueType) Severity {
	if info, ok := issueInfoMapping[issueType]; ok {
		return info.Severity
	}
	return SeverityLow
}

// GetIssueInfo returns the full metadata for an issue type.
func GetIssueInfo(issueType IssueType) IssueInfo {
	if info, ok := issueInfoMapping[issueType]; ok {
		return info
	}
	return IssueInfo{
		Severity:       SeverityLow,
		Title:          string(issueType),
		Recommendation: "Review the site manually.",
	}
}
