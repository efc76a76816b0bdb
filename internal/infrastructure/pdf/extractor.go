// Package pdf extracts plain text from uploaded documents. PDFs go through
// github.com/ledongthuc/pdf; HTML is stripped to text; anything else is
// treated as plain text.
//
// Scanned (image-only) PDFs come out empty, which the pipeline treats as a
// skippable per-document failure.
package pdf

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
)

// Extractor converts document binaries to plain text.
type Extractor struct{}

// NewExtractor returns a ready Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText dispatches on content type, falling back to content sniffing.
func (e *Extractor) ExtractText(content []byte, contentType string) (string, error) {
	if len(content) == 0 {
		return "", errors.New(errors.CodeDocumentNoExtractedText, "empty document content")
	}

	switch {
	case strings.HasPrefix(contentType, "application/pdf") || bytes.HasPrefix(content, []byte("%PDF-")):
		return extractPDF(content)
	case strings.HasPrefix(contentType, "text/html") || sniffHTML(content):
		return extractHTML(content)
	default:
		return sanitizeText(content), nil
	}
}

func sniffHTML(content []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(content))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// sanitizeText returns the content as UTF-8 text, replacing invalid bytes.
func sanitizeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), "�")
}
