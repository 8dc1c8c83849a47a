// Package export renders a project's conversation log as downloadable
// documents: a paginated PDF or a flat role-prefixed text blob. Both are
// read-only with respect to project state.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

// Layout constants for the PDF rendering.
const (
	pdfMarginMM    = 17.6 // roughly a 50pt margin
	pdfLineWidth   = 78   // characters per wrapped line
	pdfTitleSize   = 14
	pdfRoleSize    = 11
	pdfBodySize    = 10
	pdfLineHeight  = 5.3
	pdfGapPara     = 3.5
	pdfGapTurn     = 7.0
	pdfGapRoleLine = 7.0
)

// sanitizeText strips non-ASCII characters so the built-in PDF fonts can
// render every rune.
func sanitizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// wrapText greedily wraps text at maxWidth characters on word boundaries,
// stripping markdown bold markers first.
func wrapText(text string, maxWidth int) []string {
	words := strings.Split(strings.ReplaceAll(text, "**", ""), " ")
	var lines []string
	var current string
	for _, word := range words {
		if len(current)+len(word)+1 <= maxWidth {
			if current == "" {
				current = word
			} else {
				current += " " + word
			}
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// ToTxt renders the turn list as a flat role-prefixed text document with
// "---" separators between turns.
func ToTxt(turns []models.Turn, title string) []byte {
	parts := make([]string, 0, len(turns))
	for _, turn := range turns {
		parts = append(parts, fmt.Sprintf("%s:\n%s\n\n", strings.ToUpper(string(turn.Role)), turn.Content))
	}
	return []byte(strings.Join(parts, "---\n\n"))
}

// ToPdf renders the turn list as a paginated A4 PDF: bold title, bold
// role headers, body text word-wrapped at a fixed column budget with
// automatic page breaks.
func ToPdf(turns []models.Turn, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginMM, pdfMarginMM, pdfMarginMM)
	pdf.SetAutoPageBreak(true, pdfMarginMM)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.CellFormat(0, 8, sanitizeText(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, turn := range turns {
		pdf.SetFont("Helvetica", "B", pdfRoleSize)
		pdf.CellFormat(0, pdfGapRoleLine, sanitizeText(strings.ToUpper(string(turn.Role))+":"), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", pdfBodySize)
		for _, paragraph := range strings.Split(turn.Content, "\n") {
			for _, line := range wrapText(paragraph, pdfLineWidth) {
				pdf.CellFormat(0, pdfLineHeight, sanitizeText(line), "", 1, "L", false, 0, "")
			}
			pdf.Ln(pdfGapPara)
		}
		pdf.Ln(pdfGapTurn)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
