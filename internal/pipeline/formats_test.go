package pipeline

import (
	"testing"

	"discosync/internal"
)

func TestSummarizeFormatsEmpty(t *testing.T) {
	summary, variant := SummarizeFormats(nil)
	if summary != "" || variant != "" {
		t.Fatalf("got %q %q", summary, variant)
	}
}

func TestSummarizeFormatsPiece(t *testing.T) {
	summary, variant := SummarizeFormats([]internal.FormatEntry{
		{Name: "Vinyl", Qty: "1", Text: "Red", Descriptions: []string{"LP", "Album"}},
	})
	if summary != "Vinyl LP Album (Red) x1" {
		t.Fatalf("summary %q", summary)
	}
	if variant != "Red" {
		t.Fatalf("variant %q", variant)
	}
}

func TestSummarizeFormatsMultipleEntries(t *testing.T) {
	summary, variant := SummarizeFormats([]internal.FormatEntry{
		{Name: "Vinyl", Qty: "1", Descriptions: []string{"LP"}},
		{Name: "Vinyl", Qty: "1", Descriptions: []string{`7"`, "Single"}},
	})
	if summary != `Vinyl LP x1|Vinyl 7" Single x1` {
		t.Fatalf("summary %q", summary)
	}
	if variant != "" {
		t.Fatalf("variant %q", variant)
	}
}

func TestSummarizeFormatsVariantDedup(t *testing.T) {
	_, variant := SummarizeFormats([]internal.FormatEntry{
		{Name: "Vinyl", Text: "Red", Descriptions: []string{"Limited Edition"}},
		{Name: "Vinyl", Text: "Red"},
	})
	if variant != "Red|Limited Edition" {
		t.Fatalf("variant %q", variant)
	}
}

func TestSummarizeFormatsVariantKeywordCase(t *testing.T) {
	_, variant := SummarizeFormats([]internal.FormatEntry{
		{Name: "Vinyl", Descriptions: []string{"Album", "REISSUE", "Remastered"}},
	})
	if variant != "REISSUE|Remastered" {
		t.Fatalf("variant %q", variant)
	}
}

func TestSummarizeFormatsSkipsEmptyEntry(t *testing.T) {
	summary, variant := SummarizeFormats([]internal.FormatEntry{
		{},
		{Name: "CD"},
	})
	if summary != "CD" || variant != "" {
		t.Fatalf("got %q %q", summary, variant)
	}
}

func TestFirstBarcode(t *testing.T) {
	identifiers := []internal.Identifier{
		{Type: "Matrix / Runout", Value: "A-1"},
		{Type: "Barcode", Value: " 7 2438-29752-2 9 "},
		{Type: "barcode", Value: "second"},
	}
	if got := FirstBarcode(identifiers); got != "7 2438-29752-2 9" {
		t.Fatalf("got %q", got)
	}
	if got := FirstBarcode(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}
