package store

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/idilsaglam/bucketlist/internal/model"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	n := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return strconv.Itoa(n)
		}),
	}
	return New(append(base, opts...)...)
}

func TestCreate(t *testing.T) {
	s := setupStore(t, WithOwner("u1"))

	it, err := s.Create(model.Draft{Title: "  Visit the Northern Lights ", Location: "Iceland", Priority: model.PriorityHigh})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if it.ID == "" {
		t.Error("expected id to be set")
	}
	if it.Title != "Visit the Northern Lights" {
		t.Errorf("expected trimmed title, got %q", it.Title)
	}
	if !it.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected created_at %v, got %v", fixedNow, it.CreatedAt)
	}
	if it.Completed {
		t.Error("expected new item to be pending")
	}
	if it.Owner != "u1" {
		t.Errorf("expected owner u1, got %q", it.Owner)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
}

func TestCreate_DefaultPriority(t *testing.T) {
	s := setupStore(t)
	it, err := s.Create(model.Draft{Title: "Learn to Scuba Dive"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if it.Priority != model.PriorityMedium {
		t.Errorf("expected medium, got %q", it.Priority)
	}
}

func TestCreate_BlankTitleIsNoOp(t *testing.T) {
	s := setupStore(t)
	if _, err := s.Create(model.Draft{Title: "existing"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := s.Items()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(model.Draft{Title: title})
		if !errors.Is(err, model.ErrEmptyTitle) {
			t.Errorf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}

	if !reflect.DeepEqual(before, s.Items()) {
		t.Error("expected collection to be unchanged")
	}
}

func TestCreate_DistinctIDsInOrder(t *testing.T) {
	s := New()
	a, _ := s.Create(model.Draft{Title: "A"})
	b, _ := s.Create(model.Draft{Title: "B"})

	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	items := s.Items()
	if len(items) != 2 || items[0].ID != a.ID || items[1].ID != b.ID {
		t.Errorf("expected insertion order [A B], got %+v", items)
	}
}

func TestCreate_RetriesCollidingIDs(t *testing.T) {
	ids := []string{"x", "x", "", "y"}
	s := New(WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	a, _ := s.Create(model.Draft{Title: "A"})
	b, _ := s.Create(model.Draft{Title: "B"})

	if a.ID != "x" || b.ID != "y" {
		t.Errorf("expected ids x and y, got %q and %q", a.ID, b.ID)
	}
}

func TestRemove(t *testing.T) {
	s := setupStore(t)
	a, _ := s.Create(model.Draft{Title: "A"})
	b, _ := s.Create(model.Draft{Title: "B"})
	c, _ := s.Create(model.Draft{Title: "C"})

	if err := s.Remove(b.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	items := s.Items()
	if len(items) != 2 || items[0].ID != a.ID || items[1].ID != c.ID {
		t.Errorf("expected [A C], got %+v", items)
	}
	if _, ok := s.Get(b.ID); ok {
		t.Error("expected removed item to be gone")
	}
}

func TestRemove_MissingIsNoOp(t *testing.T) {
	s := setupStore(t)
	s.Create(model.Draft{Title: "A"})
	before := s.Items()

	if err := s.Remove("nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Items()) {
		t.Error("expected collection to be unchanged")
	}
}

func TestToggleCompleted_Involution(t *testing.T) {
	s := setupStore(t)
	a, _ := s.Create(model.Draft{Title: "A"})

	if err := s.ToggleCompleted(a.ID); err != nil {
		t.Fatalf("ToggleCompleted failed: %v", err)
	}
	got, _ := s.Get(a.ID)
	if !got.Completed {
		t.Fatal("expected item to be completed after one toggle")
	}

	s.ToggleCompleted(a.ID)
	got, _ = s.Get(a.ID)
	if got.Completed {
		t.Error("expected item to be pending after two toggles")
	}
}

func TestToggleCompleted_MissingLeavesCollectionUnchanged(t *testing.T) {
	s := setupStore(t)
	s.Create(model.Draft{Title: "A"})
	s.Create(model.Draft{Title: "B"})
	before := s.Items()

	if err := s.ToggleCompleted("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Items()) {
		t.Error("expected collection to be unchanged")
	}
}

func TestReplace_KeepsIdentity(t *testing.T) {
	s := setupStore(t, WithOwner("u1"))
	a, _ := s.Create(model.Draft{Title: "A"})

	repl := model.BucketItem{
		ID:        "forged",
		Title:     "New Summit",
		Priority:  model.PriorityHigh,
		CreatedAt: fixedNow.Add(time.Hour),
		Owner:     "someone-else",
	}
	if err := s.Replace(a.ID, repl); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, ok := s.Get(a.ID)
	if !ok {
		t.Fatal("expected item to keep its id")
	}
	if got.Title != "New Summit" || got.Priority != model.PriorityHigh {
		t.Errorf("expected replaced fields, got %+v", got)
	}
	if !got.CreatedAt.Equal(fixedNow) || got.Owner != "u1" {
		t.Errorf("expected created_at and owner to be kept, got %+v", got)
	}
}

func TestReplace_Rejections(t *testing.T) {
	s := setupStore(t)
	a, _ := s.Create(model.Draft{Title: "A"})
	before := s.Items()

	tests := []struct {
		name    string
		id      string
		item    model.BucketItem
		wantErr error
	}{
		{name: "missing id", id: "nope", item: model.BucketItem{Title: "X"}, wantErr: model.ErrNotFound},
		{name: "blank title", id: a.ID, item: model.BucketItem{Title: "  "}, wantErr: model.ErrEmptyTitle},
		{name: "bad priority", id: a.ID, item: model.BucketItem{Title: "X", Priority: "urgent"}, wantErr: model.ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Replace(tt.id, tt.item)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(before, s.Items()) {
				t.Error("expected collection to be unchanged")
			}
		})
	}
}

func TestSetImage(t *testing.T) {
	s := setupStore(t)
	a, _ := s.Create(model.Draft{Title: "A", Location: "Iceland"})

	if err := s.SetImage(a.ID, "file:///img/a.png"); err != nil {
		t.Fatalf("SetImage failed: %v", err)
	}
	got, _ := s.Get(a.ID)
	if got.ImageURL != "file:///img/a.png" {
		t.Errorf("expected image url, got %q", got.ImageURL)
	}
	if got.Title != "A" || got.Location != "Iceland" {
		t.Errorf("expected other fields untouched, got %+v", got)
	}

	if err := s.SetImage("missing", "x"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := setupStore(t)
	s.Create(model.Draft{Title: "A"})

	items := s.Items()
	items[0].Title = "mutated"

	got := s.Items()
	if got[0].Title != "A" {
		t.Error("expected store to be unaffected by caller mutation")
	}
}

func TestReset(t *testing.T) {
	s := setupStore(t)

	err := s.Reset([]model.BucketItem{{ID: "1", Title: "A"}, {ID: "2", Title: "B", Priority: model.PriorityLow}})
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	items := s.Items()
	if len(items) != 2 || items[0].Priority != model.PriorityMedium {
		t.Errorf("unexpected items after reset: %+v", items)
	}

	err = s.Reset([]model.BucketItem{{ID: "1", Title: "A"}, {ID: "1", Title: "B"}})
	if !errors.Is(err, model.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if s.Len() != 2 {
		t.Error("expected failed reset to keep previous collection")
	}
}
