package internal

// CollectionItem is one entry of the user's collection listing. ReleaseID
// carries the listing's own release link; Basic is the lightweight record
// embedded in the listing payload.
type CollectionItem struct {
	ReleaseID int
	DateAdded string
	Basic     ReleaseRecord
}

// ReleaseRecord holds the fields shared by a collection entry's
// basic_information and the full per-release payload. Absent values are zero
// values; Identifiers is only ever populated on full records.
type ReleaseRecord struct {
	ID                int
	MasterID          int
	Title             string
	Country           string
	Released          string
	ReleasedFormatted string
	Year              int
	ResourceURL       string
	Artists           []NameEntry
	Labels            []LabelEntry
	Formats           []FormatEntry
	Genres            []string
	Styles            []string
	Identifiers       []Identifier
}

type NameEntry struct {
	Name string
}

type LabelEntry struct {
	Name  string
	Catno string
}

// FormatEntry describes one physical/digital configuration of a release,
// e.g. {Name: "Vinyl", Qty: "1", Text: "Red", Descriptions: ["LP", "Album"]}.
type FormatEntry struct {
	Name         string
	Qty          string
	Text         string
	Descriptions []string
}

type Identifier struct {
	Type  string
	Value string
}

// Row is one normalized output row. Text fields are single-line and
// whitespace-collapsed; list-derived fields are '|'-joined in source order.
// MasterID 0 means unknown and is stored as NULL.
type Row struct {
	ReleaseID   int
	MasterID    int
	Artist      string
	Title       string
	DateAdded   string
	Variant     string
	Format      string
	ReleaseDate string
	Country     string
	Label       string
	Catno       string
	Genres      string
	Styles      string
	// Disabled columns, ready to enable together with the commented lines in
	// pipeline.BuildRow and the storage schema:
	// Barcode     string
	// ResourceURL string
}
