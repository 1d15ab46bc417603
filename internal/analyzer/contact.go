package analyzer

import (
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/leadfinder/internal/crawler"
	"github.com/nao1215/leadfinder/internal/model"
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// phoneRegex matches North American style numbers such as
	// 555-123-4567, (555) 123-4567 and +555.123.4567.
	phoneRegex = regexp.MustCompile(`\b\+?\(?[0-9]{3}\)?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4}\b`)
)

// ExtractContacts returns the emails and phone numbers found in the page's
// visible text and the hrefs of links to social media profiles.
// Each list is de-duplicated and sorted.
func ExtractContacts(page *crawler.Page) model.ContactInfo {
	info := model.ContactInfo{
		Emails:      []string{},
		Phones:      []string{},
		SocialLinks: []string{},
	}
	if page == nil {
		return info
	}

	info.Emails = uniqueSorted(emailRegex.FindAllString(page.Text, -1))
	info.Phones = uniqueSorted(phoneRegex.FindAllString(page.Text, -1))
	if page.Doc != nil {
		info.SocialLinks = uniqueSorted(socialLinks(page.Doc))
	}
	return info
}

// socialLinks returns the raw href of every anchor pointing at a social
// media platform.
func socialLinks(doc *goquery.Document) []string {
	links := make([]string, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if model.PlatformFromLink(href).IsValid() {
			links = append(links, href)
		}
	})
	return links
}

// uniqueSorted returns the distinct values of in, sorted. Values are
// compared exactly; surrounding whitespace is trimmed first.
func uniqueSorted(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
