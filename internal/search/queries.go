package search

import "strings"

// queryTemplates are sent in this order. {city} and {industry} are replaced
// verbatim; the templates favor small businesses with dated websites.
var queryTemplates = []string{
	`"{city}" "small business" -jobs`,
	`"contact us" "{industry}" "{city}" -jobs`,
	`inurl:contact "{industry}" "{city}"`,
	`"established * 2020" "{industry}" "{city}" "contact"`,
	`"{industry} company" "{city}" "email us"`,
	`"powered by wordpress" "{city}" "{industry}"`,
	`"© 2020" OR "© 2019" OR "© 2018" "{industry}" "{city}"`,
	`"{industry}" "{city}" "book appointment" -squarespace -wix`,
}

// BuildQuery substitutes city and industry into template.
func BuildQuery(template, city, industry string) string {
	return strings.NewReplacer("{city}", city, "{industry}", industry).Replace(template)
}

// BuildQueries returns every template with city and industry substituted,
// in table order.
func BuildQueries(city, industry string) []string {
	queries := make([]string, len(queryTemplates))
	for i, tmpl := range queryTemplates {
		queries[i] = BuildQuery(tmpl, city, industry)
	}
	return queries
}
