// Package history keeps the play history in a local SQLite database so
// playback can resume where it stopped.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"hlsx/internal/config"
	"hlsx/internal/media"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS history (
	url        TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	stream_url TEXT NOT NULL DEFAULT '',
	quality    TEXT NOT NULL DEFAULT '',
	position   REAL NOT NULL DEFAULT 0,
	duration   REAL NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS history_updated_at ON history (updated_at DESC)`,
}

// Store is a handle to the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating history schema: %w", err)
		}
	}

	return &Store{db: db, now: time.Now}, nil
}

// OpenDefault opens the database at config.HistoryPath.
func OpenDefault() (*Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes or updates the entry for entry.URL.
func (s *Store) Save(ctx context.Context, entry media.HistoryEntry) error {
	if entry.URL == "" {
		return fmt.Errorf("history entry has no URL")
	}
	updated := entry.UpdatedAt
	if updated.IsZero() {
		updated = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (url, title, stream_url, quality, position, duration, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			stream_url = excluded.stream_url,
			quality = excluded.quality,
			position = excluded.position,
			duration = excluded.duration,
			updated_at = excluded.updated_at`,
		entry.URL, entry.Title, entry.StreamURL, entry.Quality,
		entry.Position, entry.Duration, updated.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// Load returns all entries, most recently updated first.
func (s *Store) Load(ctx context.Context) ([]media.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, stream_url, quality, position, duration, updated_at
		FROM history
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		var e media.HistoryEntry
		var updated int64
		if err := rows.Scan(&e.URL, &e.Title, &e.StreamURL, &e.Quality, &e.Position, &e.Duration, &updated); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.UpdatedAt = time.Unix(0, updated)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Find returns the entry for url, if any.
func (s *Store) Find(ctx context.Context, url string) (media.HistoryEntry, bool, error) {
	var e media.HistoryEntry
	var updated int64
	err := s.db.QueryRowContext(ctx, `
		SELECT url, title, stream_url, quality, position, duration, updated_at
		FROM history WHERE url = ?`, url).
		Scan(&e.URL, &e.Title, &e.StreamURL, &e.Quality, &e.Position, &e.Duration, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return media.HistoryEntry{}, false, nil
	}
	if err != nil {
		return media.HistoryEntry{}, false, fmt.Errorf("reading history: %w", err)
	}
	e.UpdatedAt = time.Unix(0, updated)
	return e, true, nil
}

// Remove deletes the entry for url.
func (s *Store) Remove(ctx context.Context, url string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE url = ?`, url); err != nil {
		return fmt.Errorf("removing history entry: %w", err)
	}
	return nil
}

// FormatForDisplay creates display strings for fzf selection from history entries.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	var items []string
	for _, e := range entries {
		display := e.Title
		if e.Quality != "" {
			display += " [" + e.Quality + "]"
		}
		if e.Position > 0 {
			if e.Duration > 0 {
				display += fmt.Sprintf(" %.0f%%", (e.Position/e.Duration)*100)
			} else {
				display += " @" + formatPosition(e.Position)
			}
		}
		items = append(items, display)
	}
	return items
}

// formatPosition formats seconds as H:MM:SS or M:SS.
func formatPosition(seconds float64) string {
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
