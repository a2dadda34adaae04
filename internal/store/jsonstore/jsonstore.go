package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/idilsaglam/bucketlist/internal/model"
)

// JSON-backed storage. One human-readable file per user under Dir.
// No locking; fine for a local single-user tool.

const dataFileName = "bucketlist.json"

// Store persists each user's items in Dir/<user>/bucketlist.json.
type Store struct {
	Dir string
}

func New(dir string) *Store { return &Store{Dir: dir} }

func (s *Store) dataPath(owner string) (string, error) {
	if owner == "" {
		return "", errors.New("jsonstore: missing owner")
	}
	return filepath.Join(s.Dir, url.PathEscape(owner), dataFileName), nil
}

// List returns the owner's items in saved order. A missing file is an empty
// list.
func (s *Store) List(ctx context.Context, owner string) ([]model.BucketItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load(owner)
}

// Put inserts or replaces an item, keeping the position of an existing one.
func (s *Store) Put(ctx context.Context, owner string, it model.BucketItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	items, err := s.load(owner)
	if err != nil {
		return err
	}
	it.Owner = owner
	replaced := false
	for i := range items {
		if items[i].ID == it.ID {
			items[i] = it
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, it)
	}
	return s.save(owner, items)
}

// Delete removes an item. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, owner, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	items, err := s.load(owner)
	if err != nil {
		return err
	}
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if len(out) == len(items) {
		return nil
	}
	return s.save(owner, out)
}

func (s *Store) load(owner string) ([]model.BucketItem, error) {
	p, err := s.dataPath(owner)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.BucketItem{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.BucketItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}

func (s *Store) save(owner string, items []model.BucketItem) error {
	p, err := s.dataPath(owner)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
