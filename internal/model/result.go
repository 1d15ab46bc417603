package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Status is the outcome of analyzing one URL.
type Status string

const (
	// StatusSuccess means the page was fetched, parsed and analyzed.
	StatusSuccess Status = "success"
	// StatusError means some step failed; only Error is meaningful.
	StatusError Status = "error"
)

// PageSpeedScores holds the Lighthouse category scores, each 0-100.
type PageSpeedScores struct {
	Performance   float64 `json:"performance"`
	Accessibility float64 `json:"accessibility"`
	BestPractices float64 `json:"best_practices"`
	SEO           float64 `json:"seo"`
}

// ContactInfo holds the contact details extracted from a page.
// Each list has set semantics: no duplicates, sorted.
type ContactInfo struct {
	Emails      []string `json:"emails"`
	Phones      []string `json:"phones"`
	SocialLinks []string `json:"social_links"`
}

// HasAny reports whether at least one contact detail was found.
func (c ContactInfo) HasAny() bool {
	return len(c.Emails) > 0 || len(c.Phones) > 0 || len(c.SocialLinks) > 0
}

// normalized replaces nil lists with empty ones so they encode as [].
func (c ContactInfo) normalized() ContactInfo {
	if c.Emails == nil {
		c.Emails = []string{}
	}
	if c.Phones == nil {
		c.Phones = []string{}
	}
	if c.SocialLinks == nil {
		c.SocialLinks = []string{}
	}
	return c
}

// AnalysisResult is the outcome of analyzing one candidate website.
// Exactly one is produced for every URL handed to the analyzer.
//
// A successful result carries PageSpeed (nil when scoring failed), ContactInfo
// and DesignIssues; an error result carries only Error.
type AnalysisResult struct {
	// URL is the analyzed address, as returned by the search.
	URL string `json:"url"`

	// Timestamp is when the analysis finished.
	Timestamp time.Time `json:"timestamp"`

	// Status is success or error.
	Status Status `json:"status"`

	// PageSpeed holds the Lighthouse scores, or nil if scoring failed.
	PageSpeed *PageSpeedScores `json:"pagespeed"`

	// ContactInfo holds extracted emails, phones and social links.
	ContactInfo ContactInfo `json:"contact_info"`

	// DesignIssues lists the design audit findings in detection order.
	DesignIssues []DesignIssue `json:"design_issues"`

	// Error is the failure message for error results.
	Error string `json:"error,omitempty"`
}

// NewSuccessResult creates a success result stamped with the current time.
func NewSuccessResult(url string, scores *PageSpeedScores, contacts ContactInfo, issues []DesignIssue) *AnalysisResult {
	return &AnalysisResult{
		URL:          url,
		Timestamp:    time.Now(),
		Status:       StatusSuccess,
		PageSpeed:    scores,
		ContactInfo:  contacts,
		DesignIssues: issues,
	}
}

// NewErrorResult creates an error result stamped with the current time.
func NewErrorResult(url string, err error) *AnalysisResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &AnalysisResult{
		URL:       url,
		Timestamp: time.Now(),
		Status:    StatusError,
		Error:     msg,
	}
}

// IsSuccess reports whether the analysis succeeded.
func (r *AnalysisResult) IsSuccess() bool {
	return r != nil && r.Status == StatusSuccess
}

type successResultJSON struct {
	URL          string           `json:"url"`
	Timestamp    time.Time        `json:"timestamp"`
	Status       Status           `json:"status"`
	PageSpeed    *PageSpeedScores `json:"pagespeed"`
	ContactInfo  ContactInfo      `json:"contact_info"`
	DesignIssues []DesignIssue    `json:"design_issues"`
}

type errorResultJSON struct {
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
	Error     string    `json:"error"`
}

// MarshalJSON encodes the two result shapes: success results always carry
// pagespeed (possibly null), contact_info and design_issues; error results
// carry only the error message.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if r.Status == StatusError {
		return marshalLiteral(errorResultJSON{
			URL:       r.URL,
			Timestamp: r.Timestamp,
			Status:    r.Status,
			Error:     r.Error,
		})
	}

	issues := r.DesignIssues
	if issues == nil {
		issues = []DesignIssue{}
	}
	return marshalLiteral(successResultJSON{
		URL:          r.URL,
		Timestamp:    r.Timestamp,
		Status:       r.Status,
		PageSpeed:    r.PageSpeed,
		ContactInfo:  r.ContactInfo.normalized(),
		DesignIssues: issues,
	})
}

// marshalLiteral encodes v without HTML escaping, so "&", "<" and ">" in
// URLs and error messages are written as-is.
func marshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
