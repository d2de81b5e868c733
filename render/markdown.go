// Package render provides output renderers over a crawled page.
// This file implements the Markdown renderer: the page body is stripped of
// noise elements, reduced to its main content container, and converted.
package render

import (
	"bytes"
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/crawlpage/page"
)

// noiseSelectors are elements removed before conversion. They contribute no
// meaningful content to the page text.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// Markdown renders the page's main content as Markdown.
type Markdown struct{}

// NewMarkdown creates a Markdown renderer.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Render strips noise from the body, selects the best content container,
// and converts the remaining HTML fragment to Markdown. The body is parsed
// fresh here: stripping mutates the tree, and the page's own cached document
// must stay intact for link extraction.
func (r *Markdown) Render(p *page.Page) ([]byte, error) {
	if len(p.Body) == 0 || !p.IsHTML() {
		return nil, fmt.Errorf("page %s has no parseable HTML document", p.URL)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing body of %s: %w", p.URL, err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// <main> is the most semantically precise container, then <article>,
	// then the whole <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("no content container found in %s", p.URL)
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return nil, fmt.Errorf("converting to markdown: %w", err)
	}
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *Markdown) Extension() string {
	return ".md"
}
