package crawler

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is a parsed landing page.
type Page struct {
	// URL is the address the page was fetched from.
	URL string

	// Text is the visible text of the page. Text nodes outside script,
	// style, noscript and template elements are joined as rendered: inline
	// markup adds no separator, block elements are separated by a space,
	// and whitespace runs are collapsed.
	Text string

	// Doc is the parsed document for selector queries.
	Doc *goquery.Document
}

// invisibleElements hold text that is never rendered.
var invisibleElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// blockElements start and end a line of rendered text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "head": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "option": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"title": true, "tr": true, "ul": true,
}

// Parser turns HTML into a Page.
type Parser struct {
	// baseURL is the URL of the page being parsed.
	baseURL *url.URL
}

// NewParser creates a new HTML parser for the page at baseURL.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse parses HTML content. The HTML parser is lenient, so only read
// errors are returned; malformed markup still yields a Page.
func (p *Parser) Parse(content io.Reader) (*Page, error) {
	root, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	page := &Page{
		URL: p.baseURL.String(),
		Doc: goquery.NewDocumentFromNode(root),
	}
	page.Doc.Url = p.baseURL

	var text strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		block := false
		switch n.Type {
		case html.ElementNode:
			if invisibleElements[n.Data] {
				return
			}
			if block = blockElements[n.Data]; block {
				text.WriteByte(' ')
			}
		case html.TextNode:
			text.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if block {
			text.WriteByte(' ')
		}
	}
	walk(root)

	page.Text = strings.Join(strings.Fields(text.String()), " ")
	return page, nil
}

// ParseResponse parses a fetched response, using its final URL as base.
func ParseResponse(resp *Response) (*Page, error) {
	base := resp.FinalURL
	if base == "" {
		base = resp.URL
	}
	parser, err := NewParser(base)
	if err != nil {
		return nil, err
	}
	page, err := parser.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, err
	}
	page.URL = resp.URL
	return page, nil
}
