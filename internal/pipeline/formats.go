package pipeline

import (
	"strings"

	"discosync/internal"
)

// variantKeywords marks descriptions carrying pressing/edition information,
// matched case-insensitively as substrings.
var variantKeywords = []string{
	"colored", "red", "blue", "green", "marbled", "splatter",
	"limited", "reissue", "remastered", "club",
}

// SummarizeFormats builds a compact human summary like
// "Vinyl LP Album (Red) x1|CD Album x1" and a variant string of color or
// edition bits, deduplicated with first occurrence winning.
func SummarizeFormats(formats []internal.FormatEntry) (string, string) {
	parts := make([]string, 0, len(formats))
	variantBits := make([]string, 0)

	for _, f := range formats {
		name := strings.TrimSpace(f.Name)
		qty := strings.TrimSpace(f.Qty)
		text := strings.TrimSpace(f.Text)

		// Variant prefers the free-text annotation, then sniffs descriptions.
		if text != "" {
			variantBits = append(variantBits, text)
		}
		for _, d := range f.Descriptions {
			d = strings.TrimSpace(d)
			if d != "" && hasVariantKeyword(d) {
				variantBits = append(variantBits, d)
			}
		}

		pieceParts := make([]string, 0, len(f.Descriptions)+1)
		if name != "" {
			pieceParts = append(pieceParts, name)
		}
		for _, d := range f.Descriptions {
			if d != "" {
				pieceParts = append(pieceParts, d)
			}
		}
		piece := strings.Join(pieceParts, " ")
		if text != "" {
			piece = strings.TrimSpace(piece + " (" + text + ")")
		}
		if qty != "" {
			piece = strings.TrimSpace(piece + " x" + qty)
		}
		if piece != "" {
			parts = append(parts, piece)
		}
	}

	seen := make(map[string]struct{}, len(variantBits))
	uniq := make([]string, 0, len(variantBits))
	for _, b := range variantBits {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		uniq = append(uniq, b)
	}

	return strings.Join(parts, "|"), CleanText(strings.Join(uniq, "|"))
}

func hasVariantKeyword(desc string) bool {
	lower := strings.ToLower(desc)
	for _, k := range variantKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// FirstBarcode plucks the first identifier of type "barcode". Not part of
// the row set yet; kept ready for the disabled barcode column.
func FirstBarcode(identifiers []internal.Identifier) string {
	for _, id := range identifiers {
		if strings.EqualFold(strings.TrimSpace(id.Type), "barcode") {
			return CleanText(id.Value)
		}
	}
	return ""
}
