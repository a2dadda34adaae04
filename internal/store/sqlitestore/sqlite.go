// Package sqlitestore persists bucket-list items in a local SQLite database.
// Every query is scoped to the owning user.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/bucketlist/internal/model"
)

// Store implements the app Source and Writer on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the database at path. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bucket_items (
		owner TEXT NOT NULL,
		id TEXT NOT NULL,
		title TEXT NOT NULL CHECK(length(trim(title)) > 0),
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		image_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		sort_order INTEGER NOT NULL,
		PRIMARY KEY (owner, id)
	);

	CREATE INDEX IF NOT EXISTS idx_bucket_items_owner_order ON bucket_items(owner, sort_order);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns the owner's items in insertion order.
func (s *Store) List(ctx context.Context, owner string) ([]model.BucketItem, error) {
	if owner == "" {
		return nil, errors.New("sqlitestore: missing owner")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, location, priority, completed, image_url, created_at
		FROM bucket_items
		WHERE owner = ?
		ORDER BY sort_order
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []model.BucketItem{}
	for rows.Next() {
		var (
			it        model.BucketItem
			priority  string
			createdAt string
		)
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Location, &priority, &it.Completed, &it.ImageURL, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		it.Priority = model.Priority(priority)
		it.Owner = owner
		if it.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at of %s: %w", it.ID, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Put inserts a new item at the end or updates an existing one in place.
func (s *Store) Put(ctx context.Context, owner string, it model.BucketItem) error {
	if owner == "" {
		return errors.New("sqlitestore: missing owner")
	}
	priority := it.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bucket_items (owner, id, title, description, location, priority, completed, image_url, created_at, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(sort_order), 0) + 1 FROM bucket_items WHERE owner = ?))
		ON CONFLICT(owner, id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			location = excluded.location,
			priority = excluded.priority,
			completed = excluded.completed,
			image_url = excluded.image_url
	`, owner, it.ID, it.Title, it.Description, it.Location, string(priority), it.Completed, it.ImageURL,
		it.CreatedAt.UTC().Format(time.RFC3339Nano), owner)
	if err != nil {
		return fmt.Errorf("failed to put item %s: %w", it.ID, err)
	}
	return nil
}

// Delete removes an item. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, owner, id string) error {
	if owner == "" {
		return errors.New("sqlitestore: missing owner")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bucket_items WHERE owner = ? AND id = ?`, owner, id); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}
