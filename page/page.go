// Package page models a single fetched web resource inside a crawl pipeline.
// A Page owns the raw response, lazily parses the HTML document, extracts the
// outbound in-domain links a crawler should follow next, detects meta-refresh
// redirects, and round-trips through a canonical serialized form.
package page

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Default status classification ranges. A per-page SuccessCodes override
// replaces the success range only.
const (
	successMin = 200
	successMax = 226

	redirectMin = 300
	redirectMax = 307
)

// Header maps lower-cased header names to their ordered values.
// The canonical serialized form requires lower-cased keys, so this is a
// plain map rather than net/http.Header (which canonicalizes names).
type Header map[string][]string

// Get returns the first value for the given name, or "".
func (h Header) Get(name string) string {
	vs := h[strings.ToLower(name)]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Set replaces the values for the given name.
func (h Header) Set(name string, values ...string) {
	h[strings.ToLower(name)] = values
}

// Page is one crawled resource. It is a single-owner value: no internal
// locking, all lazy fields are computed on first access by the one goroutine
// that holds the page.
type Page struct {
	// URL identifies this page. Always absolute; immutable after New.
	URL *url.URL

	// Body is the raw response payload. Empty when the fetch failed or
	// after DiscardDoc.
	Body []byte

	// Headers holds the response headers. The content-type key is always
	// present (defaulted to a single empty string).
	Headers Header

	// Code is the HTTP status, 0 when the page was never fetched.
	Code int

	// RedirectTo is set when the response itself was a redirect.
	RedirectTo *url.URL

	// Err is the error captured from a failed fetch attempt. Opaque here;
	// it is carried for the caller and never interpreted.
	Err error

	// Depth is the crawl distance from the seed. Not guaranteed to be the
	// shortest path.
	Depth int

	// Referer is the page that linked to this one.
	Referer string

	// ResponseTimeMs is the fetch latency in milliseconds.
	ResponseTimeMs int64

	// Aliases are alternate URLs this page is also known by.
	Aliases []*url.URL

	// DomainAliases are hostnames treated as the same site as URL.Host.
	DomainAliases []string

	// SuccessCodes, when non-nil, replaces the default 200–226 range for
	// IsSuccess.
	SuccessCodes []int

	// UserData is an open bag of caller metadata, carried through
	// serialization unmodified and never interpreted.
	UserData map[string]any

	// Storable hints to a persistence layer whether this page should be
	// saved. Defaults to true.
	Storable bool

	fetched bool

	doc      *goquery.Document
	docReady bool

	base      *url.URL
	baseReady bool

	links      []*url.URL
	linksReady bool
}

// Options carries the raw fetch results a Page is constructed from.
// Every field is optional; Code nil means the fetch never completed.
type Options struct {
	Code           *int
	Headers        map[string][]string
	Body           []byte
	Error          error
	RedirectTo     *url.URL
	Referer        string
	Depth          int
	ResponseTimeMs int64
	Aliases        []*url.URL
	DomainAliases  []string
	SuccessCodes   []int
}

// New constructs a Page from raw fetch results. Whether a status code was
// supplied fixes Fetched for the lifetime of the page.
func New(u *url.URL, opts Options) *Page {
	p := &Page{
		URL:            u,
		Body:           opts.Body,
		Headers:        normalizeHeaders(opts.Headers),
		RedirectTo:     opts.RedirectTo,
		Err:            opts.Error,
		Referer:        opts.Referer,
		Depth:          opts.Depth,
		ResponseTimeMs: opts.ResponseTimeMs,
		Aliases:        opts.Aliases,
		DomainAliases:  opts.DomainAliases,
		SuccessCodes:   opts.SuccessCodes,
		Storable:       true,
	}
	if opts.Code != nil {
		p.Code = *opts.Code
		p.fetched = true
	}
	return p
}

// normalizeHeaders lower-cases all keys and guarantees a content-type entry.
func normalizeHeaders(raw map[string][]string) Header {
	h := make(Header, len(raw)+1)
	for k, vs := range raw {
		h[strings.ToLower(k)] = vs
	}
	if len(h["content-type"]) == 0 {
		h["content-type"] = []string{""}
	}
	return h
}

// Fetched reports whether a status code was supplied at construction time.
// It never changes, even if Code is mutated later.
func (p *Page) Fetched() bool {
	return p.fetched
}

// ContentType returns the raw first content-type header value.
func (p *Page) ContentType() string {
	return p.Headers.Get("content-type")
}

// IsHTML reports whether the content type marks the body as parseable HTML.
func (p *Page) IsHTML() bool {
	mediaType := strings.TrimSpace(strings.SplitN(p.ContentType(), ";", 2)[0])
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// Doc returns the parsed HTML document, parsing the body on first access.
// It returns nil when there is no body, the content type is not HTML, or
// parsing failed. The result is cached; DiscardDoc releases it.
func (p *Page) Doc() *goquery.Document {
	if p.docReady {
		return p.doc
	}
	p.docReady = true
	if len(p.Body) == 0 || !p.IsHTML() {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	if err != nil {
		return nil
	}
	p.doc = doc
	return p.doc
}

// InDomain reports whether u belongs to this page's site: same host, a
// configured domain alias, or the www-prefixed form of this page's host.
// Hosts compare by exact string equality.
func (p *Page) InDomain(u *url.URL) bool {
	if u == nil {
		return false
	}
	host := u.Host
	if host == p.URL.Host || host == "www."+p.URL.Host {
		return true
	}
	for _, alias := range p.DomainAliases {
		if host == alias {
			return true
		}
	}
	return false
}

// IsRedirect reports whether the status code is a redirect (300–307).
func (p *Page) IsRedirect() bool {
	return p.Code >= redirectMin && p.Code <= redirectMax
}

// IsNotFound reports whether the status code is 404.
func (p *Page) IsNotFound() bool {
	return p.Code == http.StatusNotFound
}

// IsSuccess reports whether the status code counts as a successful response:
// membership in SuccessCodes when the override is set, 200–226 otherwise.
func (p *Page) IsSuccess() bool {
	if p.SuccessCodes != nil {
		for _, c := range p.SuccessCodes {
			if p.Code == c {
				return true
			}
		}
		return false
	}
	return p.Code >= successMin && p.Code <= successMax
}

// DiscardLinks forces the link cache to the empty sequence, permanently.
// A later Links call returns the empty sequence without re-scanning.
func (p *Page) DiscardLinks() {
	p.links = []*url.URL{}
	p.linksReady = true
}

// DiscardDoc drops the parsed document and raw body to bound memory in
// long-running crawls. Links are computed first so they are not lost; a
// later Links call returns the cached sequence.
func (p *Page) DiscardDoc() {
	p.Links()
	p.doc = nil
	p.docReady = true
	p.Body = nil
}
