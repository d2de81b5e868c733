// Package core defines the boundary interfaces around the page engine and
// the shared report types the renderers emit.
package core

import (
	"github.com/gaurav-prasanna/crawlpage/page"
)

// PageReport is the structured JSON view of a crawled page.
type PageReport struct {
	URL            string         `json:"url"`
	Code           int            `json:"code"`
	Fetched        bool           `json:"fetched"`
	Success        bool           `json:"success"`
	Redirect       bool           `json:"redirect"`
	Depth          int            `json:"depth"`
	Referer        string         `json:"referer,omitempty"`
	ResponseTimeMs int64          `json:"response_time_ms,omitempty"`
	ContentType    string         `json:"content_type,omitempty"`
	Title          string         `json:"title,omitempty"`
	MetaRefresh    string         `json:"meta_refresh,omitempty"`
	Links          []string       `json:"links"`
	UserData       map[string]any `json:"user_data,omitempty"`
}

// Renderer converts a page into a final output format.
type Renderer interface {
	Render(p *page.Page) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// Store persists pages in their canonical form and reconstructs them later.
type Store interface {
	Save(p *page.Page) error
	Get(rawURL string) (*page.Page, error)
	Close() error
}
