// Package bookmarks persists saved summaries in a local SQLite database.
package bookmarks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// ErrNotFound is returned when no bookmark has the requested ID.
var ErrNotFound = errors.New("bookmark not found")

// Bookmark is one saved summary.
type Bookmark struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Summary string    `json:"summary"`
	Tags    []string  `json:"tags"`
	SavedAt time.Time `json:"saved_at"`
}

const schema = `CREATE TABLE IF NOT EXISTS bookmarks (
	id       TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	url      TEXT NOT NULL,
	summary  TEXT NOT NULL,
	tags     TEXT NOT NULL,
	saved_at INTEGER NOT NULL
)`

// Store is a SQLite-backed bookmark collection.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema. Pass
// ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("bookmarks: empty database path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("bookmarks: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: open: %w", err)
	}
	// One connection keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bookmarks: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores b and returns it with ID and SavedAt filled in when they were
// empty. An empty title falls back to the URL; tags pass through ParseTags
// limits.
func (s *Store) Save(ctx context.Context, b Bookmark) (Bookmark, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.SavedAt.IsZero() {
		b.SavedAt = time.Now().UTC()
	}
	if b.Title == "" {
		b.Title = b.URL
	}
	b.Tags = ParseTags(joinTags(b.Tags))
	tags, err := json.Marshal(b.Tags)
	if err != nil {
		return Bookmark{}, fmt.Errorf("bookmarks: encode tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO bookmarks(id, title, url, summary, tags, saved_at) VALUES(?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.URL, b.Summary, string(tags), b.SavedAt.UnixNano())
	if err != nil {
		return Bookmark{}, fmt.Errorf("bookmarks: insert: %w", err)
	}
	log.Debug().Str("id", b.ID).Str("url", b.URL).Int("tags", len(b.Tags)).Msg("bookmark saved")
	return b, nil
}

// Get returns the bookmark with the given ID or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Bookmark, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, url, summary, tags, saved_at FROM bookmarks WHERE id = ?`, id)
	b, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, err
}

// List returns all bookmarks, newest first.
func (s *Store) List(ctx context.Context) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, url, summary, tags, saved_at FROM bookmarks ORDER BY saved_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: list: %w", err)
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the bookmark with the given ID or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("bookmarks: delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Clear removes every bookmark and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks`)
	if err != nil {
		return 0, fmt.Errorf("bookmarks: clear: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (Bookmark, error) {
	var (
		b     Bookmark
		tags  string
		saved int64
	)
	if err := r.Scan(&b.ID, &b.Title, &b.URL, &b.Summary, &tags, &saved); err != nil {
		return Bookmark{}, err
	}
	if err := json.Unmarshal([]byte(tags), &b.Tags); err != nil {
		return Bookmark{}, fmt.Errorf("bookmarks: decode tags for %s: %w", b.ID, err)
	}
	b.SavedAt = time.Unix(0, saved).UTC()
	return b, nil
}
