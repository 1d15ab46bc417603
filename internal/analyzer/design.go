package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/leadfinder/internal/crawler"
	"github.com/nao1215/leadfinder/internal/model"
)

// designCheck inspects a document and returns the issues it finds.
type designCheck func(doc *goquery.Document) []model.DesignIssue

// designChecks run in this order; their issues are concatenated without
// de-duplication.
var designChecks = []designCheck{
	checkViewport,
	checkOutdatedJQuery,
	checkImages,
	checkModernCSS,
}

// modernCSSFrameworks are stylesheet href fragments that indicate a current
// CSS framework.
var modernCSSFrameworks = []string{"tailwind", "bootstrap-5", "bulma"}

// outdatedJQuery are script src fragments of jQuery 1.x and 2.x builds.
var outdatedJQuery = []string{"jquery-1", "jquery-2"}

// lazyLoadCandidates are image suffixes that should be lazy loaded.
// The comparison is case-sensitive.
var lazyLoadCandidates = []string{".png", ".jpg", ".jpeg"}

// AuditDesign runs the design checklist over the page:
//  1. missing viewport meta tag (mobile_responsive, high)
//  2. one issue per jQuery 1.x/2.x script (outdated_framework, medium)
//  3. per image: missing alt text (accessibility, medium) and png/jpg
//     without loading="lazy" (performance, low)
//  4. no stylesheet from a modern CSS framework (modern_frameworks, low)
func AuditDesign(page *crawler.Page) []model.DesignIssue {
	issues := make([]model.DesignIssue, 0)
	if page == nil || page.Doc == nil {
		return issues
	}
	for _, check := range designChecks {
		issues = append(issues, check(page.Doc)...)
	}
	return issues
}

func checkViewport(doc *goquery.Document) []model.DesignIssue {
	if doc.Find(`meta[name="viewport"]`).Length() > 0 {
		return nil
	}
	return []model.DesignIssue{
		model.NewDesignIssue(model.IssueMobileResponsive, "No mobile viewport meta tag found"),
	}
}

func checkOutdatedJQuery(doc *goquery.Document) []model.DesignIssue {
	var issues []model.DesignIssue
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		src = strings.ToLower(src)
		if containsAny(src, outdatedJQuery) {
			issues = append(issues, model.NewDesignIssue(
				model.IssueOutdatedFramework,
				"Using outdated jQuery version: "+src,
			))
		}
	})
	return issues
}

func checkImages(doc *goquery.Document) []model.DesignIssue {
	var issues []model.DesignIssue
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, _ := s.Attr("alt"); alt == "" {
			issues = append(issues, model.NewDesignIssue(model.IssueAccessibility, "Image missing alt text"))
		}

		src, _ := s.Attr("src")
		if !hasAnySuffix(src, lazyLoadCandidates) {
			return
		}
		if loading, _ := s.Attr("loading"); loading != "lazy" {
			issues = append(issues, model.NewDesignIssue(model.IssuePerformance, "Image missing lazy loading"))
		}
	})
	return issues
}

func checkModernCSS(doc *goquery.Document) []model.DesignIssue {
	modern := false
	doc.Find(`link[rel~="stylesheet"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if containsAny(strings.ToLower(href), modernCSSFrameworks) {
			modern = true
			return false
		}
		return true
	})
	if modern {
		return nil
	}
	return []model.DesignIssue{
		model.NewDesignIssue(model.IssueModernFrameworks, "No modern CSS framework detected"),
	}
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
