package typst

import (
	"bytes"
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// ValidatePDF checks that data parses as a PDF with at least one page and
// returns the page count.
func ValidatePDF(data []byte) (pages int, err error) {
	// The reader panics on some truncated inputs.
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	n := reader.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("%w: document has no pages", ErrInvalidPDF)
	}
	if reader.Page(1).V.IsNull() {
		return 0, fmt.Errorf("%w: first page missing", ErrInvalidPDF)
	}
	return n, nil
}
