package pulllist

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"comicgrabr/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users need to delete the database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages pull-list persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the pull-list database under the data
// directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "pulllist.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild from a snapshot)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Reconcile replaces the stored pull list with the snapshot contents in one
// transaction. Entries dated before today are dropped, duplicate keys
// collapse with the later occurrence winning, and the resulting row count is
// returned. An empty effective snapshot clears the store.
func (s *Store) Reconcile(ctx context.Context, releases []Release, today time.Time) (int, error) {
	day := Midnight(today)

	keep := make([]Release, 0, len(releases))
	seen := make(map[releaseKey]int, len(releases))
	for _, rel := range releases {
		if Midnight(rel.ReleaseDate).Before(day) {
			continue
		}
		key := rel.key()
		if idx, ok := seen[key]; ok {
			keep[idx] = rel
			continue
		}
		seen[key] = len(keep)
		keep = append(keep, rel)
	}

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin reconcile tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM releases"); err != nil {
			return fmt.Errorf("clear releases: %w", err)
		}
		for _, rel := range keep {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO releases (title, release_date) VALUES (?, ?)",
				rel.Title, rel.ReleaseDate.Format(DateLayout),
			); err != nil {
				return fmt.Errorf("insert release %q: %w", rel.Title, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit reconcile: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(keep), nil
}

// All returns every stored release sorted by date, then title.
func (s *Store) All(ctx context.Context) ([]Release, error) {
	return s.query(ctx, "SELECT title, release_date FROM releases ORDER BY release_date, title")
}

// DueOn returns the releases shipping exactly on the given day.
func (s *Store) DueOn(ctx context.Context, day time.Time) ([]Release, error) {
	return s.query(ctx,
		"SELECT title, release_date FROM releases WHERE release_date = ? ORDER BY release_date, title",
		Midnight(day).Format(DateLayout))
}

// DueOnOrBefore returns the releases shipping on or before the given day.
func (s *Store) DueOnOrBefore(ctx context.Context, day time.Time) ([]Release, error) {
	return s.query(ctx,
		"SELECT title, release_date FROM releases WHERE release_date <= ? ORDER BY release_date, title",
		Midnight(day).Format(DateLayout))
}

// Count returns the number of stored releases.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM releases").Scan(&count); err != nil {
		return 0, fmt.Errorf("count releases: %w", err)
	}
	return count, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Release, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query releases: %w", err)
	}
	defer rows.Close()

	var releases []Release
	for rows.Next() {
		var title, date string
		if err := rows.Scan(&title, &date); err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		parsed, err := time.Parse(DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("stored release date %q: %w", date, err)
		}
		releases = append(releases, Release{Title: title, ReleaseDate: parsed})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate releases: %w", err)
	}
	return releases, nil
}
