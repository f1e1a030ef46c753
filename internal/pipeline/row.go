package pipeline

import (
	"strconv"
	"strings"

	"discosync/internal"
)

// BuildRow assembles one normalized row from the basic listing record and
// the optional full release record. full is nil when enrichment is disabled
// or its fetch was contained; every field then falls back to basic. Fields
// resolve independently, so one row may mix both sources.
func BuildRow(item internal.CollectionItem, full *internal.ReleaseRecord) internal.Row {
	basic := item.Basic
	f := full
	if f == nil {
		f = &internal.ReleaseRecord{}
	}

	// List fields resolve all-or-nothing per key: whichever source's whole
	// slice wins, never an element-wise merge.
	artists := f.Artists
	if len(artists) == 0 {
		artists = basic.Artists
	}
	labels := f.Labels
	if len(labels) == 0 {
		labels = basic.Labels
	}
	formats := f.Formats
	if len(formats) == 0 {
		formats = basic.Formats
	}
	genres := f.Genres
	if len(genres) == 0 {
		genres = basic.Genres
	}
	styles := f.Styles
	if len(styles) == 0 {
		styles = basic.Styles
	}

	formatSummary, variant := SummarizeFormats(formats)

	releaseID := item.ReleaseID
	if releaseID == 0 {
		releaseID = basic.ID
	}

	return internal.Row{
		ReleaseID:   releaseID,
		MasterID:    pickInt(f.MasterID, basic.MasterID),
		Artist:      CleanText(JoinNames(artists)),
		Title:       CleanText(pickString(f.Title, basic.Title)),
		DateAdded:   CleanText(item.DateAdded),
		Variant:     variant,
		Format:      formatSummary,
		ReleaseDate: CleanText(firstNonEmpty(f.Released, basic.Released, basic.ReleasedFormatted, yearString(basic.Year))),
		Country:     CleanText(pickString(f.Country, basic.Country)),
		Label:       CleanText(JoinLabelNames(labels)),
		Catno:       JoinCatnos(labels),
		Genres:      strings.Join(genres, "|"),
		Styles:      strings.Join(styles, "|"),
		// Barcode:     FirstBarcode(f.Identifiers),
		// ResourceURL: CleanText(pickString(f.ResourceURL, basic.ResourceURL)),
	}
}

// pickString prefers the full record's value whenever it is non-empty. A
// full record explicitly reporting "" still loses to basic: any non-empty
// signal beats a genuinely-unknown marker, even a stale one.
func pickString(fullValue, basicValue string) string {
	if fullValue != "" {
		return fullValue
	}
	return basicValue
}

func pickInt(fullValue, basicValue int) int {
	if fullValue != 0 {
		return fullValue
	}
	return basicValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
