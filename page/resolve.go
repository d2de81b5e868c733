package page

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// trailingFragment matches a fragment at the end of a raw link whose text is
// a non-empty run of letters, digits, underscore, and hyphen. Anything else
// after a '#' is left untouched.
var trailingFragment = regexp.MustCompile(`#[a-zA-Z0-9_-]+$`)

// Base returns the effective base URL for relative resolution: the value of
// a <head><base href> when the document declares one that resolves to a
// non-empty URL, the page's own URL otherwise. Computed once and cached.
func (p *Page) Base() *url.URL {
	if p.baseReady {
		return p.base
	}
	p.baseReady = true
	p.base = p.URL
	doc := p.Doc()
	if doc == nil {
		return p.base
	}
	href, ok := doc.Find("head base[href]").First().Attr("href")
	if !ok {
		return p.base
	}
	// A malformed base href falls back to the page URL rather than
	// aborting link discovery.
	resolved, err := resolve(href, p.URL)
	if err == nil && resolved != nil && resolved.String() != "" {
		p.base = resolved
	}
	return p.base
}

// Resolve turns a raw href from this page into an absolute URL, resolving
// relative references against Base. It returns (nil, nil) for an empty link.
func (p *Page) Resolve(link string) (*url.URL, error) {
	return resolve(link, p.Base())
}

// resolve merges a raw link against relativeTo per RFC 3986. The raw text is
// first stripped of a trailing fragment, then percent-decoded and re-encoded
// to guard against double-encoding in malformed HTML. Malformed links return
// an error; bulk extraction swallows it and skips the link.
func resolve(link string, relativeTo *url.URL) (*url.URL, error) {
	if link == "" {
		return nil, nil
	}
	link = trailingFragment.ReplaceAllString(link, "")

	normalized, err := normalizeEncoding(link)
	if err != nil {
		return nil, fmt.Errorf("decoding link %q: %w", link, err)
	}
	rel, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("parsing link %q: %w", link, err)
	}

	abs := relativeTo.ResolveReference(rel)
	if abs.Path == "" {
		abs.Path = "/"
	}
	if !abs.IsAbs() {
		return nil, fmt.Errorf("link %q did not resolve to an absolute URL", link)
	}
	return abs, nil
}

// normalizeEncoding decodes every percent escape in the raw link and
// re-encodes what cannot round-trip: '%', '#', and '?' stay escaped, since
// decoding them would move the path/query/fragment boundaries or spawn a new
// escape; every other byte is decoded here and re-encoded by the URL type
// when rendered. Invalid escape sequences fail resolution.
func normalizeEncoding(link string) (string, error) {
	if _, err := url.PathUnescape(link); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(link))
	for i := 0; i < len(link); i++ {
		if link[i] != '%' {
			b.WriteByte(link[i])
			continue
		}
		// The unescape check above guarantees two hex digits follow.
		decoded := unhex(link[i+1])<<4 | unhex(link[i+2])
		switch decoded {
		case '%', '#', '?':
			b.WriteString(link[i : i+3])
		default:
			b.WriteByte(decoded)
		}
		i += 2
	}
	return b.String(), nil
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
