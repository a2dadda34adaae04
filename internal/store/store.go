// Package store holds the in-memory, ordered collection of bucket-list items
// for the signed-in user. It is the single source of truth the views are
// derived from.
//
// A Store is not safe for concurrent use; callers serialize access (the TUI
// update loop, or one CLI command at a time).
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/bucketlist/internal/model"
)

// Store is the ordered item collection.
type Store struct {
	items []model.BucketItem
	owner string
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithOwner stamps every created item with the owning user's identifier.
func WithOwner(owner string) Option {
	return func(s *Store) { s.owner = owner }
}

// WithIDGenerator overrides id allocation. Generated ids that collide with an
// existing item are retried.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Reset replaces the whole collection. Bootstrap uses it once to populate the
// store from the persistence collaborator.
func (s *Store) Reset(items []model.BucketItem) error {
	seen := make(map[string]struct{}, len(items))
	out := make([]model.BucketItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			return fmt.Errorf("reset: item %q has no id", it.Title)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("reset: %w: %s", model.ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.Priority == "" {
			it.Priority = model.PriorityMedium
		}
		out = append(out, it)
	}
	s.items = out
	return nil
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []model.BucketItem {
	out := make([]model.BucketItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Get returns the item with the given id.
func (s *Store) Get(id string) (model.BucketItem, bool) {
	i := s.index(id)
	if i < 0 {
		return model.BucketItem{}, false
	}
	return s.items[i], true
}

// Create appends a new item built from d. A blank title leaves the store
// untouched and returns model.ErrEmptyTitle.
func (s *Store) Create(d model.Draft) (model.BucketItem, error) {
	if err := d.Validate(); err != nil {
		return model.BucketItem{}, err
	}
	d = d.Normalized()
	it := model.BucketItem{
		ID:          s.allocID(),
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Priority:    d.Priority,
		Completed:   false,
		CreatedAt:   s.now(),
		Owner:       s.owner,
	}
	s.items = append(s.items, it)
	return it, nil
}

// Remove deletes the item permanently. An unknown id is a no-op.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return model.ErrNotFound
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return nil
}

// ToggleCompleted flips the completed flag in place.
func (s *Store) ToggleCompleted(id string) error {
	i := s.index(id)
	if i < 0 {
		return model.ErrNotFound
	}
	s.items[i].Completed = !s.items[i].Completed
	return nil
}

// Replace swaps the item with a new value, keeping its position, ID,
// CreatedAt and Owner. A blank title is rejected like on Create.
func (s *Store) Replace(id string, it model.BucketItem) error {
	i := s.index(id)
	if i < 0 {
		return model.ErrNotFound
	}
	if strings.TrimSpace(it.Title) == "" {
		return model.ErrEmptyTitle
	}
	if it.Priority == "" {
		it.Priority = model.PriorityMedium
	}
	if !it.Priority.Valid() {
		return model.ErrInvalidPriority
	}
	cur := s.items[i]
	it.ID = cur.ID
	it.CreatedAt = cur.CreatedAt
	it.Owner = cur.Owner
	it.Title = strings.TrimSpace(it.Title)
	s.items[i] = it
	return nil
}

// SetImage stores an attachment reference on the item. Only ImageURL changes.
func (s *Store) SetImage(id, ref string) error {
	i := s.index(id)
	if i < 0 {
		return model.ErrNotFound
	}
	s.items[i].ImageURL = ref
	return nil
}

func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) allocID() string {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
}
