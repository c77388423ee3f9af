package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Package extractor converts raw PDF bytes into plain text. Only the embedded
// text layer is read; scanned (image-only) PDFs require OCR and are rejected
// with ErrNoText. Extraction is deterministic for a given byte input.

var (
	ErrEncrypted = errors.New("pdf is encrypted")
	ErrNoText    = errors.New("pdf contains no extractable text")
)

// Extractor converts PDF bytes into concatenated page text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// PDFExtractor validates the document structure with pdfcpu, then extracts
// the text layer page by page.
type PDFExtractor struct {
	conf *pdfcpumodel.Configuration
}

// NewPDFExtractor builds an extractor with pdfcpu's default (relaxed) validation.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{conf: pdfcpumodel.NewDefaultConfiguration()}
}

// Extract returns the document's page text in page order, pages separated by
// blank lines. Unparsable or encrypted documents and documents with no text
// layer fail with an extraction error.
func (e *PDFExtractor) Extract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("parse pdf: empty input")
	}

	// Structural pass: pdfcpu rejects malformed and password-protected files
	// up front, before the text walk.
	pageCount, err := api.PageCount(bytes.NewReader(data), e.conf)
	if err != nil {
		if isEncryptionError(err) {
			return "", ErrEncrypted
		}
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	if pageCount == 0 {
		return "", fmt.Errorf("%w: document has no pages", ErrNoText)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if isEncryptionError(err) {
			return "", ErrEncrypted
		}
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			// A broken page does not fail the whole document.
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	if len(pages) == 0 {
		return "", ErrNoText
	}
	return strings.Join(pages, "\n\n"), nil
}

func isEncryptionError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "encrypt") || strings.Contains(msg, "password")
}
