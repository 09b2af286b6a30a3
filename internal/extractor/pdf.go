package extractor

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"billsplit/internal/domain"
)

// maxPages bounds how much of the document is read. The financial summary
// always appears on the leading pages; later pages carry call detail that
// only adds prompt cost and noise.
const maxPages = 2

// PDFExtractor reads PDF documents. It implements port.TextExtractor.
type PDFExtractor struct{}

// New creates a PDFExtractor.
func New() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the concatenated plain text of at most the first two
// pages. A page with no extractable text contributes an empty string rather
// than failing the whole extraction. A document that cannot be opened or
// parsed at all fails with domain.ErrExtraction.
func (e *PDFExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", domain.ErrExtraction, path, err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("%w: %s has no pages", domain.ErrExtraction, path)
	}
	if numPages > maxPages {
		numPages = maxPages
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}
