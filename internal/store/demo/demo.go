// Package demo is a canned bucket-list source that answers after a fixed
// delay. It backs the --demo mode and doubles as a test source.
package demo

import (
	"context"
	"time"

	"github.com/idilsaglam/bucketlist/internal/model"
)

// Source returns Items after Delay. Err, when set, is returned instead.
type Source struct {
	Delay time.Duration
	Items []model.BucketItem
	Err   error
	Now   func() time.Time
}

// New returns the demo source with its two sample adventures.
func New(delay time.Duration) *Source {
	return &Source{Delay: delay}
}

func (s *Source) List(ctx context.Context, owner string) ([]model.BucketItem, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items != nil {
		out := make([]model.BucketItem, len(s.Items))
		copy(out, s.Items)
		return out, nil
	}
	return s.samples(owner), nil
}

func (s *Source) samples(owner string) []model.BucketItem {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}
	return []model.BucketItem{
		{
			ID:          "1",
			Title:       "Visit the Northern Lights",
			Description: "Experience the magical Aurora Borealis in Iceland",
			Location:    "Iceland",
			Priority:    model.PriorityHigh,
			Completed:   false,
			CreatedAt:   now,
			Owner:       owner,
		},
		{
			ID:          "2",
			Title:       "Learn to Scuba Dive",
			Description: "Get certified and explore underwater coral reefs",
			Location:    "Great Barrier Reef",
			Priority:    model.PriorityMedium,
			Completed:   true,
			CreatedAt:   now,
			Owner:       owner,
		},
	}
}
