package pipeline

import (
	"regexp"
	"strings"

	"discosync/internal"
)

var (
	breakReplacer = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")
	reSpaces      = regexp.MustCompile(`\s+`)
)

// CleanText collapses a value to a single trimmed line: line breaks and tabs
// become spaces, any whitespace run becomes one space. Idempotent.
func CleanText(s string) string {
	s = breakReplacer.Replace(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// JoinNames renders an ordered name list as "Name1|Name2", skipping entries
// without a name.
func JoinNames(entries []internal.NameEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			parts = append(parts, e.Name)
		}
	}
	return strings.Join(parts, "|")
}

func JoinLabelNames(labels []internal.LabelEntry) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Name != "" {
			parts = append(parts, l.Name)
		}
	}
	return strings.Join(parts, "|")
}

func JoinCatnos(labels []internal.LabelEntry) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Catno != "" {
			parts = append(parts, l.Catno)
		}
	}
	return strings.Join(parts, "|")
}
