package pdftext

import (
	"strings"
	"testing"

	"github.com/ForgeLabs/MarketForge/internal/export"
	"github.com/ForgeLabs/MarketForge/internal/models"
)

func TestExtractRoundTrip(t *testing.T) {
	turns := []models.Turn{
		{Role: models.RoleAssistant, Content: "Quarterly marketing strategy overview."},
	}
	data, err := export.ToPdf(turns, "Strategy Doc")
	if err != nil {
		t.Fatalf("ToPdf failed: %v", err)
	}

	text, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(text, "Quarterly marketing strategy overview.") {
		t.Errorf("extracted text = %q", text)
	}
}

func TestExtractMalformedInput(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not a pdf"), []byte("%PDF-1.4 truncated")} {
		text, err := Extract(data)
		if err == nil {
			t.Errorf("Extract(%.20q) succeeded unexpectedly", data)
		}
		if text != "" {
			t.Errorf("Extract(%.20q) returned text %q, want empty", data, text)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := collapseWhitespace("  one\n\ttwo   three \n")
	if got != "one two three" {
		t.Errorf("collapsed = %q", got)
	}
}
