// Package edit tracks the single in-progress edit of a bucket-list item.
//
// A Session is either idle or editing exactly one item. Draft changes stay in
// the session until Commit writes them to the store.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/bucketlist/internal/model"
)

var ErrNotEditing = errors.New("no edit in progress")

// Field names a draft field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldLocation    Field = "location"
	FieldPriority    Field = "priority"
)

// Fields lists the draft fields in form order.
var Fields = []Field{FieldTitle, FieldDescription, FieldLocation, FieldPriority}

// ParseField maps a field name to a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// Target is the part of the item store the session writes to.
type Target interface {
	Get(id string) (model.BucketItem, bool)
	Replace(id string, it model.BucketItem) error
}

type state interface{ isState() }

type idle struct{}

type editing struct {
	id    string
	draft model.Draft
}

func (idle) isState()    {}
func (editing) isState() {}

// Session is the edit state machine. The zero value is idle.
type Session struct {
	st state
}

func (s *Session) current() (editing, bool) {
	e, ok := s.st.(editing)
	return e, ok
}

// Active reports whether an item is being edited and which one.
func (s *Session) Active() (id string, ok bool) {
	e, ok := s.current()
	return e.id, ok
}

// Draft returns the buffered fields of the item being edited.
func (s *Session) Draft() (model.Draft, bool) {
	e, ok := s.current()
	return e.draft, ok
}

// Start begins editing it. Any previous draft is discarded.
func (s *Session) Start(it model.BucketItem) {
	s.st = editing{id: it.ID, draft: model.DraftOf(it)}
}

// UpdateField sets one draft field. The store is never touched.
func (s *Session) UpdateField(f Field, value string) error {
	e, ok := s.current()
	if !ok {
		return ErrNotEditing
	}
	switch f {
	case FieldTitle:
		e.draft.Title = value
	case FieldDescription:
		e.draft.Description = value
	case FieldLocation:
		e.draft.Location = value
	case FieldPriority:
		p, err := model.ParsePriority(value)
		if err != nil {
			return err
		}
		e.draft.Priority = p
	default:
		return fmt.Errorf("unknown field %q", f)
	}
	s.st = e
	return nil
}

// SetDraft replaces the whole draft buffer.
func (s *Session) SetDraft(d model.Draft) error {
	e, ok := s.current()
	if !ok {
		return ErrNotEditing
	}
	e.draft = d
	s.st = e
	return nil
}

// Commit writes the draft to t and returns to idle. The session clears even
// when the write is rejected: an empty title yields model.ErrEmptyTitle and a
// vanished item yields model.ErrNotFound, both without changing t.
func (s *Session) Commit(t Target) (model.BucketItem, error) {
	e, ok := s.current()
	if !ok {
		return model.BucketItem{}, ErrNotEditing
	}
	s.st = idle{}

	if err := e.draft.Validate(); err != nil {
		return model.BucketItem{}, err
	}
	cur, ok := t.Get(e.id)
	if !ok {
		return model.BucketItem{}, model.ErrNotFound
	}
	next := e.draft.Apply(cur)
	if err := t.Replace(e.id, next); err != nil {
		return model.BucketItem{}, err
	}
	got, _ := t.Get(e.id)
	return got, nil
}

// Cancel discards the draft.
func (s *Session) Cancel() {
	s.st = idle{}
}

// Forget cancels the edit if it targets id. Used when the item is removed.
func (s *Session) Forget(id string) {
	if e, ok := s.current(); ok && e.id == id {
		s.st = idle{}
	}
}

// Row is one line of the rendered list.
type Row struct {
	Item    model.BucketItem
	Editing bool
}

// Overlay pairs items with the session: the edited item is shown with its
// draft applied, all others as stored.
func (s *Session) Overlay(items []model.BucketItem) []Row {
	e, active := s.current()
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		if active && it.ID == e.id {
			rows = append(rows, Row{Item: e.draft.Apply(it), Editing: true})
			continue
		}
		rows = append(rows, Row{Item: it})
	}
	return rows
}
