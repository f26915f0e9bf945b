package pulllist

import "time"

// DateLayout is the canonical release date form, chosen so lexical and
// chronological order agree in the store.
const DateLayout = "2006-01-02"

// Release is a single pull-list entry: a normalized comic title and the day
// it ships.
type Release struct {
	Title       string
	ReleaseDate time.Time
}

type releaseKey struct {
	title string
	date  string
}

func (r Release) key() releaseKey {
	return releaseKey{title: r.Title, date: r.ReleaseDate.Format(DateLayout)}
}

// Midnight truncates t to the start of its calendar day, keeping the
// location. Release dates carry no time of day, so comparisons happen at day
// granularity.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
