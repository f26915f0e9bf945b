package acquisition

import (
	"time"

	"comicgrabr/internal/pulllist"
)

// NextReleaseDay returns the next occurrence of the release weekday strictly
// after the given day. On the release weekday itself the following week is
// returned; the look-ahead report never points at the day being processed.
func NextReleaseDay(from time.Time, weekday time.Weekday) time.Time {
	day := pulllist.Midnight(from)
	offset := (int(weekday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}
