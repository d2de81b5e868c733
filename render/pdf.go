// Package render — PDF renderer.
// Produces a one-page crawl summary: title, source URL, response facts, and
// the discovered link set. Page content is not typeset; the Markdown renderer
// is the content path.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/crawlpage/page"
)

// PDF renders a page summary as a PDF document.
type PDF struct{}

// NewPDF creates a PDF renderer.
func NewPDF() *PDF {
	return &PDF{}
}

// Render writes the summary PDF.
func (r *PDF) Render(p *page.Page) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	title := pageTitle(p)
	if title == "" {
		title = p.URL.String()
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Source: "+p.URL.String(), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	writeFact(pdf, "Status", fmt.Sprintf("%d", p.Code))
	writeFact(pdf, "Fetched", fmt.Sprintf("%t", p.Fetched()))
	writeFact(pdf, "Depth", fmt.Sprintf("%d", p.Depth))
	if p.Referer != "" {
		writeFact(pdf, "Referer", p.Referer)
	}
	if p.ResponseTimeMs > 0 {
		writeFact(pdf, "Response time", fmt.Sprintf("%d ms", p.ResponseTimeMs))
	}
	if ct := p.ContentType(); ct != "" {
		writeFact(pdf, "Content type", ct)
	}
	pdf.Ln(4)

	links := p.Links()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, fmt.Sprintf("Links (%d)", len(links)), "", "L", false)
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range links {
		pdf.MultiCell(0, 4.5, "• "+l.String(), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDF) Extension() string {
	return ".pdf"
}

func writeFact(pdf *gofpdf.Fpdf, label, value string) {
	pdf.MultiCell(0, 5, label+": "+value, "", "L", false)
}
