package loaders

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"EduLens/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// decodeContent turns raw object bytes into text. The ladder is: PDF
// extraction for PDF objects, the bytes themselves when they are valid
// UTF-8, and a permissive byte-per-rune decode otherwise so no object is
// ever dropped from ingestion.
func decodeContent(data []byte, name string, log *logger.Logger) string {
	if mimetype.Detect(data).Is("application/pdf") {
		text, err := extractPDFText(data)
		if err == nil {
			return text
		}
		if log != nil {
			log.Warn(fmt.Sprintf("PDF extraction failed for %q, falling back to raw decode: %v", name, err))
		}
	}

	if utf8.Valid(data) {
		return string(data)
	}

	return decodePermissive(data)
}

// extractPDFText extracts text from every page of the PDF and concatenates
// the pages in order. A page that fails to extract is skipped.
func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// decodePermissive maps each byte to the rune with the same value
// (ISO 8859-1 semantics). Lossless for any input, never errors.
func decodePermissive(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
