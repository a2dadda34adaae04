package edit

import (
	"errors"
	"reflect"
	"testing"

	"github.com/idilsaglam/bucketlist/internal/model"
	"github.com/idilsaglam/bucketlist/internal/store"
)

func seeded(t *testing.T) (*store.Store, model.BucketItem, model.BucketItem) {
	t.Helper()
	s := store.New()
	a, err := s.Create(model.Draft{Title: "Visit the Northern Lights", Description: "Aurora", Location: "Iceland", Priority: model.PriorityHigh})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := s.Create(model.Draft{Title: "Learn to Scuba Dive"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return s, a, b
}

func TestZeroValueIsIdle(t *testing.T) {
	var sess Session
	if _, ok := sess.Active(); ok {
		t.Fatal("expected idle session")
	}
	if err := sess.UpdateField(FieldTitle, "x"); !errors.Is(err, ErrNotEditing) {
		t.Errorf("expected ErrNotEditing, got %v", err)
	}
	if _, err := sess.Commit(store.New()); !errors.Is(err, ErrNotEditing) {
		t.Errorf("expected ErrNotEditing, got %v", err)
	}
}

func TestStartThenCancel_LeavesStoreUnchanged(t *testing.T) {
	s, a, _ := seeded(t)
	before := s.Items()

	var sess Session
	sess.Start(a)
	sess.UpdateField(FieldTitle, "Changed")
	sess.UpdateField(FieldLocation, "Norway")
	sess.UpdateField(FieldPriority, "low")
	sess.Cancel()

	if _, ok := sess.Active(); ok {
		t.Error("expected session to be idle after cancel")
	}
	if !reflect.DeepEqual(before, s.Items()) {
		t.Error("expected store to be unchanged")
	}
}

func TestCommit_AppliesDraftOnly(t *testing.T) {
	s, a, b := seeded(t)

	var sess Session
	sess.Start(a)
	if err := sess.UpdateField(FieldTitle, "New Summit"); err != nil {
		t.Fatalf("UpdateField failed: %v", err)
	}

	got, err := sess.Commit(s)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if got.Title != "New Summit" {
		t.Errorf("expected committed title, got %q", got.Title)
	}

	stored, _ := s.Get(a.ID)
	want := a
	want.Title = "New Summit"
	if !reflect.DeepEqual(stored, want) {
		t.Errorf("expected only title to change:\nwant %+v\ngot  %+v", want, stored)
	}
	other, _ := s.Get(b.ID)
	if !reflect.DeepEqual(other, b) {
		t.Error("expected other item to be untouched")
	}
	if _, ok := sess.Active(); ok {
		t.Error("expected session to be idle after commit")
	}
}

func TestCommit_EmptyTitleRejectedAndCleared(t *testing.T) {
	s, a, _ := seeded(t)
	before := s.Items()

	var sess Session
	sess.Start(a)
	sess.UpdateField(FieldTitle, "   ")

	if _, err := sess.Commit(s); !errors.Is(err, model.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Items()) {
		t.Error("expected store to be unchanged")
	}
	if _, ok := sess.Active(); ok {
		t.Error("expected session to clear after rejected commit")
	}
}

func TestCommit_DeletedItem(t *testing.T) {
	s, a, _ := seeded(t)

	var sess Session
	sess.Start(a)
	sess.UpdateField(FieldTitle, "Still here?")
	s.Remove(a.ID)

	if _, err := sess.Commit(s); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
}

func TestStart_LastStartWins(t *testing.T) {
	s, a, b := seeded(t)

	var sess Session
	sess.Start(a)
	sess.UpdateField(FieldTitle, "Draft for A")
	sess.Start(b)

	id, ok := sess.Active()
	if !ok || id != b.ID {
		t.Fatalf("expected editing %s, got %s (%v)", b.ID, id, ok)
	}
	d, _ := sess.Draft()
	if d.Title != b.Title {
		t.Errorf("expected fresh draft of B, got %q", d.Title)
	}

	sess.Commit(s)
	stored, _ := s.Get(a.ID)
	if stored.Title != a.Title {
		t.Error("expected abandoned draft of A to never reach the store")
	}
}

func TestUpdateField_Errors(t *testing.T) {
	_, a, _ := seeded(t)
	var sess Session
	sess.Start(a)

	if err := sess.UpdateField(FieldPriority, "urgent"); !errors.Is(err, model.ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
	if err := sess.UpdateField("colour", "red"); err == nil {
		t.Error("expected error for unknown field")
	}
	d, _ := sess.Draft()
	if d.Priority != model.PriorityHigh {
		t.Errorf("expected draft priority unchanged, got %q", d.Priority)
	}
}

func TestOverlay(t *testing.T) {
	s, a, b := seeded(t)

	var sess Session
	rows := sess.Overlay(s.Items())
	for _, r := range rows {
		if r.Editing {
			t.Fatal("expected no editing rows while idle")
		}
	}

	sess.Start(a)
	sess.UpdateField(FieldTitle, "Draft title")
	rows = sess.Overlay(s.Items())

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].Editing || rows[0].Item.Title != "Draft title" {
		t.Errorf("expected edited row to show draft, got %+v", rows[0])
	}
	if rows[1].Editing || rows[1].Item.Title != b.Title {
		t.Errorf("expected other row as stored, got %+v", rows[1])
	}
	stored, _ := s.Get(a.ID)
	if stored.Title != a.Title {
		t.Error("expected overlay to leave the store alone")
	}
}

func TestForget(t *testing.T) {
	_, a, b := seeded(t)
	var sess Session
	sess.Start(a)

	sess.Forget(b.ID)
	if _, ok := sess.Active(); !ok {
		t.Fatal("expected edit of A to survive forgetting B")
	}
	sess.Forget(a.ID)
	if _, ok := sess.Active(); ok {
		t.Error("expected edit to end when its item is forgotten")
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Title ")
	if err != nil || f != FieldTitle {
		t.Errorf("expected title, got %q (%v)", f, err)
	}
	if _, err := ParseField("owner"); err == nil {
		t.Error("expected owner to be rejected")
	}
}
