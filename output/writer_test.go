package output

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://example.com/docs/intro", "example_com_docs_intro"},
		{"https://example.com/", "example_com"},
		{"https://example.com/a-b/c.d", "example_com_a_b_c_d"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.raw)
		if err != nil {
			t.Fatal(err)
		}
		if got := FilenameFromURL(u); got != tt.want {
			t.Fatalf("filename for %s: got %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	u, _ := url.Parse("https://example.com/docs/intro")
	path, err := w.Write(u, []byte("# hello"), ".md")
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "example_com_docs_intro.md") {
		t.Fatalf("path: got %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# hello" {
		t.Fatalf("content: got %q", data)
	}
}
