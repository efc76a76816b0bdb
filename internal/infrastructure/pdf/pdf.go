package pdf

import (
	"bytes"
	"io"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
)

// extractPDF reads the page text of the whole file. The underlying reader
// panics on malformed cross-reference tables, so parse failures of either
// kind come back as a DOC_005 error.
func extractPDF(content []byte) (text string, err error) {
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return "", errors.New(errors.CodeDocumentUnsupportedType, "not a PDF file")
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.Newf(errors.CodeDocumentExtractionFailed, "malformed PDF: %v", r)
		}
	}()

	reader, err := ledongthuc.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", errors.Wrap(err, errors.CodeDocumentExtractionFailed, "open PDF")
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeDocumentExtractionFailed, "extract PDF text")
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", errors.Wrap(err, errors.CodeDocumentExtractionFailed, "extract PDF text")
	}
	return sb.String(), nil
}
