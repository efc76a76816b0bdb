package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a single-page PDF around the given content stream,
// with the cross-reference offsets computed while writing.
func buildPDF(t *testing.T, contentStream string, compress bool) []byte {
	t.Helper()

	data := []byte(contentStream)
	filter := ""
	if compress {
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		data = buf.Bytes()
		filter = " /Filter /FlateDecode"
	}

	var pdf bytes.Buffer
	offsets := make([]int, 0, 5)
	object := func(body string) {
		offsets = append(offsets, pdf.Len())
		pdf.WriteString(body)
	}

	pdf.WriteString("%PDF-1.4\n")
	object("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	object("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	object("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>\nendobj\n")

	offsets = append(offsets, pdf.Len())
	fmt.Fprintf(&pdf, "4 0 obj\n<< /Length %d%s >>\nstream\n", len(data), filter)
	pdf.Write(data)
	pdf.WriteString("\nendstream\nendobj\n")

	object("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefStart := pdf.Len()
	fmt.Fprintf(&pdf, "xref\n0 %d\n", len(offsets)+1)
	pdf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&pdf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&pdf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefStart)
	return pdf.Bytes()
}

func TestExtractPDFSimpleText(t *testing.T) {
	content := buildPDF(t, "BT /F1 12 Tf (Koopovereenkomst woning) Tj ET", false)

	text, err := NewExtractor().ExtractText(content, "application/pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Koopovereenkomst woning")
}

func TestExtractPDFHexString(t *testing.T) {
	// 48656C6C6F20576F726C64 = "Hello World"; Funda-style generators emit
	// their text this way.
	content := buildPDF(t, "BT /F1 12 Tf <48656C6C6F20576F726C64> Tj ET", false)

	text, err := NewExtractor().ExtractText(content, "application/pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Hello World")
}

func TestExtractPDFFlateStream(t *testing.T) {
	content := buildPDF(t, "BT /F1 12 Tf (Vraagprijs:) Tj ( EUR 425.000 k.k.) Tj ET", true)

	text, err := NewExtractor().ExtractText(content, "application/pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Vraagprijs:")
	assert.Contains(t, text, "EUR 425.000 k.k.")
}

func TestExtractPDFTJArray(t *testing.T) {
	content := buildPDF(t, "BT /F1 12 Tf [(Bouw) -120 (jaar: 1932)] TJ ET", false)

	text, err := NewExtractor().ExtractText(content, "application/pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Bouw")
	assert.Contains(t, text, "jaar: 1932")
}

func TestExtractPDFMultipleShows(t *testing.T) {
	content := buildPDF(t, "BT /F1 12 Tf (regel een) Tj 0 -14 Td (regel twee) Tj ET", false)

	text, err := NewExtractor().ExtractText(content, "application/pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "regel een")
	assert.Contains(t, text, "regel twee")
}

func TestExtractPDFEscapes(t *testing.T) {
	content := buildPDF(t, `BT /F1 12 Tf (haakjes \(test\) en backslash \\) Tj ET`, false)

	text, err := NewExtractor().ExtractText(content, "application/pdf")
	require.NoError(t, err)
	assert.Contains(t, text, `haakjes (test) en backslash \`)
}

func TestExtractPDFRejectsNonPDF(t *testing.T) {
	_, err := NewExtractor().ExtractText([]byte("plain bytes"), "application/pdf")
	require.Error(t, err)
}

func TestExtractPDFMalformed(t *testing.T) {
	// Valid magic bytes, garbage body: the reader must fail, not panic.
	_, err := NewExtractor().ExtractText([]byte("%PDF-1.4\nnot really a pdf"), "application/pdf")
	require.Error(t, err)
}

func TestExtractPDFSniffsMagicBytes(t *testing.T) {
	content := buildPDF(t, "BT /F1 12 Tf (gesnoven) Tj ET", false)

	// Wrong content type, but the %PDF- prefix wins.
	text, err := NewExtractor().ExtractText(content, "application/octet-stream")
	require.NoError(t, err)
	assert.Contains(t, text, "gesnoven")
}

func TestExtractHTML(t *testing.T) {
	page := []byte(`<!DOCTYPE html>
<html><head><title>Funda</title><style>body{color:red}</style>
<script>alert(1)</script></head>
<body><h1>Keizersgracht 12</h1><p>Vraagprijs: &euro; 425.000 k.k.</p>
<ul><li>3 kamers</li><li>Energielabel C</li></ul></body></html>`)

	text, err := NewExtractor().ExtractText(page, "text/html")
	require.NoError(t, err)
	assert.Contains(t, text, "Keizersgracht 12")
	assert.Contains(t, text, "425.000")
	assert.Contains(t, text, "Energielabel C")
	assert.NotContains(t, text, "alert(1)")
	assert.NotContains(t, text, "color:red")
}

func TestExtractHTMLSniffed(t *testing.T) {
	text, err := NewExtractor().ExtractText([]byte("<html><body>los document</body></html>"), "")
	require.NoError(t, err)
	assert.Contains(t, text, "los document")
}

func TestExtractPlainText(t *testing.T) {
	text, err := NewExtractor().ExtractText([]byte("gewone tekst"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "gewone tekst", text)
}

func TestExtractPlainTextInvalidUTF8(t *testing.T) {
	text, err := NewExtractor().ExtractText([]byte{'a', 0xff, 'b'}, "text/plain")
	require.NoError(t, err)
	assert.Contains(t, text, "a")
	assert.Contains(t, text, "b")
}

func TestExtractEmptyContent(t *testing.T) {
	_, err := NewExtractor().ExtractText(nil, "application/pdf")
	require.Error(t, err)
}
