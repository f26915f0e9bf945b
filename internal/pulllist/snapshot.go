package pulllist

import (
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"comicgrabr/internal/logging"
	"comicgrabr/internal/services"
)

type snapshotRow struct {
	Title   string `csv:"Comic"`
	Release string `csv:"Release"`
}

// ReadSnapshot parses a pull-list snapshot CSV into releases with normalized
// titles and parsed dates. Rows with an empty title or an unparseable date
// are logged and skipped; only an unreadable or structurally broken file
// fails the read.
func ReadSnapshot(logger *slog.Logger, path string) ([]Release, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrData, "pulllist", "snapshot", "open", err)
	}
	defer file.Close()

	var rows []snapshotRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, services.Wrap(services.ErrData, "pulllist", "snapshot", "parse csv", err)
	}

	releases := make([]Release, 0, len(rows))
	for i, row := range rows {
		title := NormalizeTitle(row.Title)
		if title == "" {
			continue
		}
		date, err := ParseReleaseDate(row.Release)
		if err != nil {
			// Header is line 1, so data row i is file line i+2.
			logger.Warn("skipping snapshot row",
				logging.Int("line", i+2),
				logging.String(logging.FieldTitle, title),
				logging.Error(services.Wrap(services.ErrData, "pulllist", "snapshot", "", err)),
			)
			continue
		}
		releases = append(releases, Release{Title: title, ReleaseDate: date})
	}
	return releases, nil
}
