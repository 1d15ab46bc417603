package search

import (
	"net/url"
	"regexp"
	"strings"
)

// blockedDomains are matched as substrings of the lower-cased host.
var blockedDomains = []string{
	"facebook.com",
	"twitter.com",
	"instagram.com",
	"linkedin.com",
	"reddit.com",
	"github.com",
	"quora.com",
}

// blockedExtensions are matched as suffixes of the lower-cased URL.
var blockedExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".csv",
}

// directoryDomain is a business directory whose listing pages are noise but
// whose per-business detail pages are useful leads.
const directoryDomain = "justdial.com"

// detailPagePattern matches directory detail pages such as
// /Jaipur/Acme-Dental-Clinic-XYZ123_BZDET. It is case-sensitive.
var detailPagePattern = regexp.MustCompile(`/[^/]+-[A-Z0-9]+_BZDET/?$`)

// FilterURLs removes duplicates and unwanted links from urls, preserving the
// order of first occurrence, and truncates the result to maxResults.
// A non-positive maxResults means no limit.
func FilterURLs(urls []string, maxResults int) []string {
	seen := make(map[string]struct{}, len(urls))
	filtered := make([]string, 0, len(urls))

	for _, raw := range urls {
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}

		if !IsAllowedURL(raw) {
			continue
		}
		filtered = append(filtered, raw)
		if maxResults > 0 && len(filtered) == maxResults {
			break
		}
	}
	return filtered
}

// IsAllowedURL reports whether a single link survives the domain, extension
// and directory rules. Links that cannot be parsed are rejected.
func IsAllowedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)

	for _, domain := range blockedDomains {
		if strings.Contains(host, domain) {
			return false
		}
	}

	lower := strings.ToLower(raw)
	for _, ext := range blockedExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}

	if strings.Contains(host, directoryDomain) {
		return detailPagePattern.MatchString(u.Path)
	}
	return true
}
