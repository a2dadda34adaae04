package model

import (
	"errors"
	"testing"
	"time"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr error
	}{
		{
			name:    "empty title should fail",
			draft:   Draft{Title: "", Priority: PriorityMedium},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace title should fail",
			draft:   Draft{Title: "  \t ", Priority: PriorityMedium},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "unknown priority should fail",
			draft:   Draft{Title: "Climb", Priority: "urgent"},
			wantErr: ErrInvalidPriority,
		},
		{
			name:  "missing priority is allowed",
			draft: Draft{Title: "Climb"},
		},
		{
			name:  "valid draft should pass",
			draft: Draft{Title: "Climb", Priority: PriorityHigh},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDraftApply_KeepsIdentity(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	it := BucketItem{
		ID:        "1",
		Title:     "Old",
		Priority:  PriorityLow,
		Completed: true,
		ImageURL:  "file:///x.png",
		CreatedAt: created,
		Owner:     "u1",
	}

	got := Draft{Title: "  New Summit ", Location: "Nepal"}.Apply(it)

	if got.Title != "New Summit" {
		t.Errorf("expected trimmed title, got %q", got.Title)
	}
	if got.Priority != PriorityMedium {
		t.Errorf("expected default priority, got %q", got.Priority)
	}
	if got.ID != "1" || !got.CreatedAt.Equal(created) || got.Owner != "u1" {
		t.Errorf("identity fields changed: %+v", got)
	}
	if !got.Completed || got.ImageURL != "file:///x.png" {
		t.Errorf("non-draft fields changed: %+v", got)
	}
}

func TestNewDraft(t *testing.T) {
	d := NewDraft()
	if d.Title != "" || d.Priority != PriorityMedium {
		t.Errorf("unexpected blank draft: %+v", d)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{in: "high", want: PriorityHigh},
		{in: " LOW ", want: PriorityLow},
		{in: "", want: PriorityMedium},
		{in: "urgent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPriority) {
					t.Fatalf("expected ErrInvalidPriority, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPriority_NextCycles(t *testing.T) {
	p := PriorityLow
	seen := []Priority{p}
	for i := 0; i < 3; i++ {
		p = p.Next()
		seen = append(seen, p)
	}
	want := []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityLow}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected cycle %v, got %v", want, seen)
		}
	}
}

func TestPriority_Color(t *testing.T) {
	tests := map[Priority]string{
		PriorityHigh:   "#ff4757",
		PriorityMedium: "#ffa502",
		PriorityLow:    "#2ed573",
		"":             "#747d8c",
	}
	for p, want := range tests {
		if got := p.Color(); got != want {
			t.Errorf("%q: expected %s, got %s", p, want, got)
		}
	}
}
