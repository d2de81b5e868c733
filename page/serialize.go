package page

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ToMap produces the canonical map form of the page. Computing it forces
// link extraction, so the links the page would yield are captured even if
// the document is discarded afterwards.
//
// An unset user-data bag serializes as an empty object; FromMap deliberately
// does not mirror this (an absent key stays unset). That asymmetry is part
// of the contract, not an oversight.
func (p *Page) ToMap() map[string]any {
	links := make([]string, 0, len(p.Links()))
	for _, l := range p.Links() {
		links = append(links, l.String())
	}

	redirectTo := ""
	if p.RedirectTo != nil {
		redirectTo = p.RedirectTo.String()
	}

	userData := p.UserData
	if userData == nil {
		userData = map[string]any{}
	}

	return map[string]any{
		"url":              p.URL.String(),
		"headers":          p.Headers,
		"body":             string(p.Body),
		"links":            links,
		"code":             p.Code,
		"depth":            p.Depth,
		"referer":          p.Referer,
		"redirect_to":      redirectTo,
		"response_time_ms": p.ResponseTimeMs,
		"fetched":          p.fetched,
		"user_data":        userData,
	}
}

// ToJSON serializes the canonical map as JSON text, dropping every key whose
// value is nil or an empty string, sequence, or mapping, and dropping the
// headers key entirely when the content type is empty. The transform is lossy
// one-directionally: after it, empty values are indistinguishable from absent
// ones.
func (p *Page) ToJSON() ([]byte, error) {
	m := p.ToMap()
	for k, v := range m {
		if emptyValue(v) {
			delete(m, k)
		}
	}
	if p.ContentType() == "" {
		delete(m, "headers")
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling page %s: %w", p.URL, err)
	}
	return data, nil
}

func emptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case Header:
		return len(val) == 0
	}
	return false
}

// FromMap reconstructs a Page from its canonical map form. Reconstruction is
// best-effort, never strict: absent or malformed optional fields come back as
// type-appropriate zero values rather than errors. Only an unparsable url is
// fatal.
func FromMap(m map[string]any) (*Page, error) {
	u, err := url.Parse(asString(m["url"]))
	if err != nil {
		return nil, fmt.Errorf("parsing page url: %w", err)
	}

	p := &Page{
		URL:            u,
		Headers:        headersFrom(m["headers"]),
		Body:           []byte(asString(m["body"])),
		Code:           asInt(m["code"]),
		Depth:          asInt(m["depth"]),
		Referer:        asString(m["referer"]),
		ResponseTimeMs: int64(asInt(m["response_time_ms"])),
		Storable:       true,
		fetched:        asBool(m["fetched"]),
	}

	if raw := asString(m["redirect_to"]); raw != "" {
		if target, err := url.Parse(raw); err == nil {
			p.RedirectTo = target
		}
	}

	// Restored links repopulate the cache directly; the page never
	// re-scans a document it was reconstructed with.
	p.links = []*url.URL{}
	p.linksReady = true
	for _, raw := range asStrings(m["links"]) {
		link, err := url.Parse(raw)
		if err != nil {
			continue
		}
		p.links = append(p.links, link)
	}

	if bag, ok := m["user_data"].(map[string]any); ok {
		p.UserData = bag
	}

	return p, nil
}

// FromJSON parses JSON text produced by ToJSON and reconstructs the page
// via FromMap.
func FromJSON(data []byte) (*Page, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshaling page: %w", err)
	}
	return FromMap(m)
}

// headersFrom rebuilds the header map from its serialized form, tolerating
// both native and JSON-decoded shapes. Absent or unrecognized input defaults
// to the single empty content-type entry.
func headersFrom(v any) Header {
	switch raw := v.(type) {
	case Header:
		return normalizeHeaders(raw)
	case map[string][]string:
		return normalizeHeaders(raw)
	case map[string]any:
		h := make(map[string][]string, len(raw))
		for k, vs := range raw {
			h[k] = asStrings(vs)
		}
		return normalizeHeaders(h)
	}
	return normalizeHeaders(nil)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt coerces the numeric shapes JSON decoding can produce. Malformed or
// missing values come back as 0 by design, not as an error.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asStrings(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
