package crawler

import (
	"strings"
	"testing"
)

// TestParser tests HTML parsing functionality.
func TestParser(t *testing.T) {
	t.Parallel()

	t.Run("collects visible text only", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<style>.x { color: red }</style>
			<script>var hidden = "script@hidden.example";</script>
		</head><body>
			<p>Call us</p><p>info@acme.example</p>
			<noscript>enable js</noscript>
		</body></html>`

		parser, err := NewParser("https://acme.example/")
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		page, err := parser.Parse(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if !strings.Contains(page.Text, "Call us info@acme.example") {
			t.Errorf("expected block-separated text, got %q", page.Text)
		}
		for _, hidden := range []string{"script@hidden.example", "color: red", "enable js"} {
			if strings.Contains(page.Text, hidden) {
				t.Errorf("invisible text %q leaked into %q", hidden, page.Text)
			}
		}
	})

	t.Run("joins text as rendered", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			html string
			want string
		}{
			{
				name: "inline markup adds no separator",
				html: `<p>Mail: info<span>@</span>acme.com</p><p>Tel: <b>555</b>-123-4567</p>`,
				want: "Mail: info@acme.com Tel: 555-123-4567",
			},
			{
				name: "block elements are separated",
				html: `<div>office@acme.example</div><div>555-000-1111</div>`,
				want: "office@acme.example 555-000-1111",
			},
			{
				name: "line break separates",
				html: `<p>Call<br>555-123-4567</p>`,
				want: "Call 555-123-4567",
			},
			{
				name: "source whitespace collapses",
				html: "<p>Call us\n\t at <a href=\"tel:5551234567\">555-123-4567</a></p>",
				want: "Call us at 555-123-4567",
			},
			{
				name: "table cells are separated",
				html: `<table><tr><td>Phone</td><td>555-123-4567</td></tr></table>`,
				want: "Phone 555-123-4567",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				parser, err := NewParser("https://acme.example/")
				if err != nil {
					t.Fatalf("failed to create parser: %v", err)
				}
				page, err := parser.Parse(strings.NewReader(tt.html))
				if err != nil {
					t.Fatalf("failed to parse: %v", err)
				}
				if page.Text != tt.want {
					t.Errorf("Text = %q, want %q", page.Text, tt.want)
				}
			})
		}
	})

	t.Run("exposes goquery document", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="viewport" content="width=device-width"></head>
			<body><img src="a.png"><img src="b.jpg" alt="b"></body></html>`

		parser, err := NewParser("https://acme.example/")
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		page, err := parser.Parse(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if page.Doc.Find(`meta[name="viewport"]`).Length() != 1 {
			t.Error("expected viewport meta tag to be found")
		}
		if page.Doc.Find("img").Length() != 2 {
			t.Errorf("expected 2 images, got %d", page.Doc.Find("img").Length())
		}
	})

	t.Run("tolerates malformed html", func(t *testing.T) {
		t.Parallel()

		parser, err := NewParser("https://acme.example/")
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		page, err := parser.Parse(strings.NewReader(`<div><p>unclosed <b>tags`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Text != "unclosed tags" {
			t.Errorf("unexpected text %q", page.Text)
		}
	})
}

func TestNewParserInvalidURL(t *testing.T) {
	t.Parallel()

	if _, err := NewParser("http://[::1"); err == nil {
		t.Error("expected error for invalid base URL")
	}
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	resp := &Response{
		URL:      "http://acme.example",
		FinalURL: "https://www.acme.example/",
		Body:     []byte(`<a href="about">About</a>`),
	}

	page, err := ParseResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.URL != "http://acme.example" {
		t.Errorf("expected requested URL to be kept, got %q", page.URL)
	}
	if page.Doc.Url == nil || page.Doc.Url.String() != "https://www.acme.example/" {
		t.Errorf("expected document URL to be the final URL, got %v", page.Doc.Url)
	}
	if page.Text != "About" {
		t.Errorf("unexpected text %q", page.Text)
	}
}
