// Package render — JSON renderer.
// Builds the structured page report: response facts, title, and the resolved
// in-domain link set.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/crawlpage/core"
	"github.com/gaurav-prasanna/crawlpage/page"
)

// JSON renders a page as an indented PageReport.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// Render builds the report. Link extraction runs as a side effect, so the
// report reflects exactly what a crawler would follow from this page.
func (r *JSON) Render(p *page.Page) ([]byte, error) {
	links := make([]string, 0, len(p.Links()))
	for _, l := range p.Links() {
		links = append(links, l.String())
	}

	report := core.PageReport{
		URL:            p.URL.String(),
		Code:           p.Code,
		Fetched:        p.Fetched(),
		Success:        p.IsSuccess(),
		Redirect:       p.IsRedirect(),
		Depth:          p.Depth,
		Referer:        p.Referer,
		ResponseTimeMs: p.ResponseTimeMs,
		ContentType:    p.ContentType(),
		Title:          pageTitle(p),
		Links:          links,
		UserData:       p.UserData,
	}
	if target := p.MetaRefreshRedirect(); target != nil {
		report.MetaRefresh = target.String()
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSON) Extension() string {
	return ".json"
}

// pageTitle pulls the document title, empty when there is no document.
func pageTitle(p *page.Page) string {
	doc := p.Doc()
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("head title").First().Text())
}
