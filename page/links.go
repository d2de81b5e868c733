package page

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Links returns the deduplicated, absolute, in-domain, followable URLs
// discovered on this page, in first-seen document order. The scan runs at
// most once; later calls return the cached sequence.
//
// A page carrying <meta name="robots"> with both noindex and nofollow in its
// content yields no links at all. Individual anchors with rel containing
// nofollow are skipped. Hrefs that fail to resolve are skipped without
// aborting the scan. A meta-refresh redirect target, when in-domain, is
// appended to the set.
func (p *Page) Links() []*url.URL {
	if p.linksReady {
		return p.links
	}
	p.linksReady = true
	p.links = []*url.URL{}

	doc := p.Doc()
	if doc == nil {
		return p.links
	}
	if excludedByMetaRobots(doc) {
		return p.links
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if rel, ok := s.Attr("rel"); ok && strings.Contains(rel, "nofollow") {
			return
		}
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		abs, err := p.Resolve(href)
		if err != nil || abs == nil {
			return
		}
		if !p.InDomain(abs) {
			return
		}
		key := abs.String()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		p.links = append(p.links, abs)
	})

	if target := p.MetaRefreshRedirect(); target != nil {
		if _, dup := seen[target.String()]; !dup {
			p.links = append(p.links, target)
		}
	}
	return p.links
}

// excludedByMetaRobots reports whether a robots meta tag excludes the whole
// page from link discovery. The noindex/nofollow checks are case-sensitive
// substring matches on the content attribute.
func excludedByMetaRobots(doc *goquery.Document) bool {
	excluded := false
	doc.Find(`meta[name="robots"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content, _ := s.Attr("content")
		if strings.Contains(content, "noindex") && strings.Contains(content, "nofollow") {
			excluded = true
			return false
		}
		return true
	})
	return excluded
}

// MetaRefreshRedirect returns the target of a meta-refresh redirect when the
// page declares one and the target is in-domain, nil otherwise. Cross-domain
// meta-redirects are not followed.
//
// The http-equiv attribute is matched against the three conventional spellings
// (refresh, Refresh, REFRESH). The content attribute is expected in the
// "<delay>;URL=<target>" form; the whole value is lower-cased before the
// single split on ";url=", so the target comes back lower-cased as well.
func (p *Page) MetaRefreshRedirect() *url.URL {
	doc := p.Doc()
	if doc == nil {
		return nil
	}
	sel := doc.Find(`meta[http-equiv="refresh"], meta[http-equiv="Refresh"], meta[http-equiv="REFRESH"]`).First()
	content, ok := sel.Attr("content")
	if !ok {
		return nil
	}
	parts := strings.SplitN(strings.ToLower(content), ";url=", 2)
	if len(parts) != 2 {
		return nil
	}
	target, err := url.Parse(parts[1])
	if err != nil {
		return nil
	}
	if !p.InDomain(target) {
		return nil
	}
	return target
}
