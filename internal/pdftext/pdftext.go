// Package pdftext extracts plain text from uploaded PDF documents for the
// refinement flow. Extraction failures degrade to an empty result: the
// caller proceeds without document context rather than failing the
// request.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract returns the plain text of a PDF document. Unreadable or
// malformed input yields ("", err); callers treat that as "no document
// text available".
func Extract(data []byte) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("pdftext.Extract: parser panicked on malformed input", "panic", r)
			text = ""
			err = fmt.Errorf("malformed PDF document")
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Warn("pdftext.Extract: failed to open PDF", "error", err, "size", len(data))
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		slog.Warn("pdftext.Extract: failed to extract text", "error", err)
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

// collapseWhitespace normalizes runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
