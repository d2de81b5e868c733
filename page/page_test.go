package page

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return u
}

func newHTMLPage(t *testing.T, rawURL, body string, opts Options) *Page {
	t.Helper()
	if opts.Code == nil {
		code := 200
		opts.Code = &code
	}
	if opts.Headers == nil {
		opts.Headers = map[string][]string{"content-type": {"text/html"}}
	}
	opts.Body = []byte(body)
	return New(mustParse(t, rawURL), opts)
}

func TestNew_Defaults(t *testing.T) {
	p := New(mustParse(t, "http://example.com/"), Options{})

	if p.Fetched() {
		t.Fatal("page without status code: Fetched() = true, want false")
	}
	if !p.Storable {
		t.Fatal("Storable default: got false, want true")
	}
	if got := p.Headers["content-type"]; len(got) != 1 || got[0] != "" {
		t.Fatalf("default content-type: got %v, want [\"\"]", got)
	}
}

func TestNew_HeaderKeysLowerCased(t *testing.T) {
	p := New(mustParse(t, "http://example.com/"), Options{
		Headers: map[string][]string{"Content-Type": {"text/html; charset=utf-8"}},
	})

	if got := p.Headers.Get("content-type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type: got %q", got)
	}
	if _, ok := p.Headers["Content-Type"]; ok {
		t.Fatal("canonical-cased key survived normalization")
	}
}

func TestFetched_FixedAtConstruction(t *testing.T) {
	code := 200
	p := New(mustParse(t, "http://example.com/"), Options{Code: &code})
	if !p.Fetched() {
		t.Fatal("page with status code: Fetched() = false, want true")
	}

	// Mutating the code later must not affect Fetched.
	p.Code = 0
	if !p.Fetched() {
		t.Fatal("Fetched() changed after Code mutation")
	}
}

func TestInDomain(t *testing.T) {
	p := New(mustParse(t, "http://example.com/"), Options{})

	if !p.InDomain(p.URL) {
		t.Fatal("InDomain is not reflexive")
	}
	if !p.InDomain(mustParse(t, "http://www.example.com/x")) {
		t.Fatal("www-prefixed host: got false, want true")
	}
	if p.InDomain(mustParse(t, "http://sub.example.com/x")) {
		t.Fatal("unrelated subdomain: got true, want false")
	}
	if p.InDomain(nil) {
		t.Fatal("nil URL: got true, want false")
	}

	p.DomainAliases = []string{"sub.example.com"}
	if !p.InDomain(mustParse(t, "http://sub.example.com/x")) {
		t.Fatal("aliased subdomain: got false, want true")
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"application/json", false},
		{"", false},
	}
	for _, tt := range tests {
		p := New(mustParse(t, "http://example.com/"), Options{
			Headers: map[string][]string{"content-type": {tt.contentType}},
		})
		if got := p.IsHTML(); got != tt.want {
			t.Fatalf("IsHTML for %q: got %t, want %t", tt.contentType, got, tt.want)
		}
	}
}

func TestStatusClassification(t *testing.T) {
	p := New(mustParse(t, "http://example.com/"), Options{})

	p.Code = 226
	if !p.IsSuccess() {
		t.Fatal("226: IsSuccess() = false, want true")
	}
	p.Code = 227
	if p.IsSuccess() {
		t.Fatal("227: IsSuccess() = true, want false")
	}

	p.Code = 404
	if !p.IsNotFound() {
		t.Fatal("404: IsNotFound() = false")
	}

	for _, code := range []int{300, 301, 307} {
		p.Code = code
		if !p.IsRedirect() {
			t.Fatalf("%d: IsRedirect() = false, want true", code)
		}
	}
	p.Code = 308
	if p.IsRedirect() {
		t.Fatal("308: IsRedirect() = true, want false")
	}
}

func TestIsSuccess_Override(t *testing.T) {
	p := New(mustParse(t, "http://example.com/"), Options{SuccessCodes: []int{418}})

	p.Code = 418
	if !p.IsSuccess() {
		t.Fatal("418 with {418} override: IsSuccess() = false, want true")
	}
	p.Code = 200
	if p.IsSuccess() {
		t.Fatal("200 with {418} override: IsSuccess() = true, want false")
	}
}

func TestDoc_NonHTMLBody(t *testing.T) {
	p := New(mustParse(t, "http://example.com/data"), Options{
		Body:    []byte(`{"a": 1}`),
		Headers: map[string][]string{"content-type": {"application/json"}},
	})
	if p.Doc() != nil {
		t.Fatal("non-HTML content type produced a document")
	}
}

func TestDoc_NoBody(t *testing.T) {
	p := New(mustParse(t, "http://example.com/"), Options{
		Headers: map[string][]string{"content-type": {"text/html"}},
	})
	if p.Doc() != nil {
		t.Fatal("empty body produced a document")
	}
}
