package pulllist

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTitle produces the search-pattern form of a raw title. Issue
// markers and subtitle separators confuse the backend's tokenizer, so '#'
// and ':' are removed; "Saga #72" becomes "Saga 72" and "Something: Epilogue"
// becomes "Something Epilogue". Unicode is compatibility-folded so visually
// identical titles from different exports collapse to one entry.
func NormalizeTitle(raw string) string {
	folded := norm.NFKC.String(raw)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r == '#' || r == ':' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

var dateLayouts = []string{DateLayout, "01/02/2006"}

// ParseReleaseDate accepts the two date forms snapshot exports use,
// preferring the canonical ISO form.
func ParseReleaseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized release date %q", value)
}
