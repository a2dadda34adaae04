package demo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestList_Samples(t *testing.T) {
	items, err := New(0).List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Error("expected distinct ids")
	}
	if items[0].Completed || !items[1].Completed {
		t.Error("expected one pending and one completed sample")
	}
	for _, it := range items {
		if it.Owner != "u1" {
			t.Errorf("expected owner u1, got %q", it.Owner)
		}
	}
}

func TestList_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := (&Source{Err: boom}).List(context.Background(), "u1")
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestList_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := New(time.Minute).List(ctx, "u1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
