// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFConverter reads the embedded text layer of a PDF in-process. Scanned,
// image-only pages yield no text.
type PDFConverter struct{}

// NewPDFConverter creates the default in-process converter.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

// Convert opens pdfPath, concatenates the plain text of every page from the
// first to the last with no separator, and closes the file on every path.
func (c *PDFConverter) Convert(pdfPath string) (text string, err error) {
	// The parser panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parsing %s: %v", pdfPath, r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, pdfPath, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}
