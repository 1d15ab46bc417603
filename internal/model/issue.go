package model

// IssueType identifies the kind of design issue found on a page.
type IssueType string

// Issue types reported by the design audit.
const (
	// IssueMobileResponsive is reported when no viewport meta tag exists.
	IssueMobileResponsive IssueType = "mobile_responsive"
	// IssueOutdatedFramework is reported for each jQuery 1.x/2.x script.
	IssueOutdatedFramework IssueType = "outdated_framework"
	// IssueAccessibility is reported for each image without alt text.
	IssueAccessibility IssueType = "accessibility"
	// IssuePerformance is reported for each raster image without lazy loading.
	IssuePerformance IssueType = "performance"
	// IssueModernFrameworks is reported once when no modern CSS framework is linked.
	IssueModernFrameworks IssueType = "modern_frameworks"
)

// IssueTypes returns all issue types in audit order.
func IssueTypes() []IssueType {
	return []IssueType{
		IssueMobileResponsive,
		IssueOutdatedFramework,
		IssueAccessibility,
		IssuePerformance,
		IssueModernFrameworks,
	}
}

// String returns the string representation of the IssueType.
func (t IssueType) String() string {
	return string(t)
}

// DesignIssue is a single finding of the design audit.
type DesignIssue struct {
	// Type is the issue category.
	Type IssueType `json:"type"`

	// Severity is taken from the central issue table.
	Severity Severity `json:"severity"`

	// Description is a human-readable explanation, e.g.
	// "Using outdated jQuery version: /js/jquery-1.8.min.js".
	Description string `json:"description"`
}

// NewDesignIssue creates a DesignIssue whose severity comes from the
// central issue table.
func NewDesignIssue(issueType IssueType, description string) DesignIssue {
	return DesignIssue{
		Type:        issueType,
		Severity:    GetSeverity(issueType),
		Description: description,
	}
}
