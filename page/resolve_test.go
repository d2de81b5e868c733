package page

import "testing"

func TestResolve_Relative(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/dir/index.html", "<html><body></body></html>", Options{})

	got, err := p.Resolve("../other/page.html")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "http://example.com/other/page.html" {
		t.Fatalf("resolved: got %s", got)
	}
}

func TestResolve_EmptyLink(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	got, err := p.Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("empty link: got %s, want nil", got)
	}
}

func TestResolve_StripsTrailingFragment(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	got, err := p.Resolve("/a/b#section-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "http://example.com/a/b" {
		t.Fatalf("fragment not stripped: got %s", got)
	}
}

func TestResolve_EmptyPathBecomesSlash(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	got, err := p.Resolve("http://example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Path != "/" {
		t.Fatalf("path: got %q, want \"/\"", got.Path)
	}
}

func TestResolve_FixedPoint(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	for _, link := range []string{
		"/a/b",
		"sub/page.html",
		"http://example.com/x?q=1",
		"/with%20space",
		"/a%25b",
		"/a%23b",
	} {
		first, err := p.Resolve(link)
		if err != nil {
			t.Fatalf("resolving %q: %v", link, err)
		}
		second, err := p.Resolve(first.String())
		if err != nil {
			t.Fatalf("re-resolving %q: %v", first, err)
		}
		if first.String() != second.String() {
			t.Fatalf("not a fixed point: %s -> %s", first, second)
		}
	}
}

func TestResolve_DoesNotDoubleEncode(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	// An already-encoded space must stay single-encoded, and a raw space
	// must come out encoded the same way.
	for _, link := range []string{"/a%20b", "/a b"} {
		got, err := p.Resolve(link)
		if err != nil {
			t.Fatalf("resolving %q: %v", link, err)
		}
		if got.String() != "http://example.com/a%20b" {
			t.Fatalf("resolving %q: got %s", link, got)
		}
	}
}

func TestResolve_EncodedPercent(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	got, err := p.Resolve("/a%25b")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "http://example.com/a%25b" {
		t.Fatalf("encoded percent: got %s", got)
	}

	// The canonical form contains %25 and must survive re-resolution.
	again, err := p.Resolve(got.String())
	if err != nil {
		t.Fatalf("re-resolving %s: %v", got, err)
	}
	if again.String() != got.String() {
		t.Fatalf("not a fixed point: %s -> %s", got, again)
	}
}

func TestResolve_EncodedDelimitersStayInPath(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	got, err := p.Resolve("/a%23b")
	if err != nil {
		t.Fatal(err)
	}
	if got.Fragment != "" {
		t.Fatalf("encoded hash became a fragment: %s", got)
	}
	if got.String() != "http://example.com/a%23b" {
		t.Fatalf("encoded hash: got %s", got)
	}

	got, err = p.Resolve("/a%3Fb")
	if err != nil {
		t.Fatal(err)
	}
	if got.RawQuery != "" {
		t.Fatalf("encoded question mark became a query: %s", got)
	}
}

func TestResolve_DecodesOverEncodedSafeBytes(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	// %41 is 'A'; an over-encoded safe byte normalizes to its plain form.
	got, err := p.Resolve("/a%41b")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "http://example.com/aAb" {
		t.Fatalf("over-encoded byte: got %s", got)
	}
}

func TestResolve_BareTrailingHashKept(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	// Only a non-empty trailing fragment token is stripped; a bare '#'
	// passes through and parses as an empty fragment.
	got, err := p.Resolve("/a/b#")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "http://example.com/a/b" {
		t.Fatalf("bare trailing hash: got %s", got)
	}
	if !trailingFragment.MatchString("/a/b#section-1") {
		t.Fatal("non-empty fragment token no longer matches")
	}
	if trailingFragment.MatchString("/a/b#") {
		t.Fatal("empty fragment token matches the stripping pattern")
	}
}

func TestResolve_InvalidEscapeFails(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/", "", Options{})

	if _, err := p.Resolve("/bad%zz"); err == nil {
		t.Fatal("invalid percent escape resolved without error")
	}
}

func TestBase_FromBaseHref(t *testing.T) {
	body := `<html><head><base href="http://example.com/sub/"></head><body></body></html>`
	p := newHTMLPage(t, "http://example.com/", body, Options{})

	if got := p.Base().String(); got != "http://example.com/sub/" {
		t.Fatalf("base: got %s", got)
	}

	resolved, err := p.Resolve("page.html")
	if err != nil {
		t.Fatal(err)
	}
	if resolved.String() != "http://example.com/sub/page.html" {
		t.Fatalf("resolved against base: got %s", resolved)
	}
}

func TestBase_DefaultsToPageURL(t *testing.T) {
	p := newHTMLPage(t, "http://example.com/dir/", "<html><body></body></html>", Options{})

	if got := p.Base(); got != p.URL {
		t.Fatalf("base without <base href>: got %s, want page URL", got)
	}
}

func TestBase_MalformedHrefFallsBack(t *testing.T) {
	body := `<html><head><base href="%zz"></head><body></body></html>`
	p := newHTMLPage(t, "http://example.com/dir/", body, Options{})

	if got := p.Base(); got != p.URL {
		t.Fatalf("base with malformed href: got %s, want page URL", got)
	}
}
