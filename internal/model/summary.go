package model

// BatchSummary holds aggregate counts over a batch of analysis results.
// Reports and the history database recompute it from the result slice.
type BatchSummary struct {
	// Total is the number of results.
	Total int `json:"total"`

	// Succeeded is the number of success results.
	Succeeded int `json:"succeeded"`

	// Failed is the number of error results.
	Failed int `json:"failed"`

	// === Contact coverage ===

	// WithEmails counts success results with at least one email.
	WithEmails int `json:"with_emails"`

	// WithPhones counts success results with at least one phone number.
	WithPhones int `json:"with_phones"`

	// WithSocialLinks counts success results with at least one social link.
	WithSocialLinks int `json:"with_social_links"`

	// === Design issues ===

	// IssuesBySeverity counts design issues per severity.
	IssuesBySeverity map[Severity]int `json:"issues_by_severity"`

	// IssuesByType counts design issues per issue type.
	IssuesByType map[IssueType]int `json:"issues_by_type"`

	// === PageSpeed ===

	// Scored counts success results that have PageSpeed scores.
	Scored int `json:"scored"`

	// MeanPageSpeed is the mean of each score over scored results,
	// or nil if nothing was scored.
	MeanPageSpeed *PageSpeedScores `json:"mean_pagespeed,omitempty"`
}

// Summarize computes a BatchSummary over results. Nil entries are ignored.
func Summarize(results []*AnalysisResult) BatchSummary {
	s := BatchSummary{
		IssuesBySeverity: make(map[Severity]int),
		IssuesByType:     make(map[IssueType]int),
	}

	var sum PageSpeedScores
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Total++
		if !r.IsSuccess() {
			s.Failed++
			continue
		}
		s.Succeeded++

		if len(r.ContactInfo.Emails) > 0 {
			s.WithEmails++
		}
		if len(r.ContactInfo.Phones) > 0 {
			s.WithPhones++
		}
		if len(r.ContactInfo.SocialLinks) > 0 {
			s.WithSocialLinks++
		}

		for _, issue := range r.DesignIssues {
			s.IssuesBySeverity[issue.Severity]++
			s.IssuesByType[issue.Type]++
		}

		if r.PageSpeed != nil {
			s.Scored++
			sum.Performance += r.PageSpeed.Performance
			sum.Accessibility += r.PageSpeed.Accessibility
			sum.BestPractices += r.PageSpeed.BestPractices
			sum.SEO += r.PageSpeed.SEO
		}
	}

	if s.Scored > 0 {
		n := float64(s.Scored)
		s.MeanPageSpeed = &PageSpeedScores{
			Performance:   sum.Performance / n,
			Accessibility: sum.Accessibility / n,
			BestPractices: sum.BestPractices / n,
			SEO:           sum.SEO / n,
		}
	}
	return s
}

// TotalIssues returns the number of design issues across all results.
func (s BatchSummary) TotalIssues() int {
	total := 0
	for _, n := range s.IssuesBySeverity {
		total += n
	}
	return total
}
