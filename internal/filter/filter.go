// Package filter derives the displayed subset of items. Nothing here mutates
// its input.
package filter

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/bucketlist/internal/model"
)

// Tag selects which items are displayed.
type Tag string

const (
	All       Tag = "all"
	Pending   Tag = "pending"
	Completed Tag = "completed"
)

// Tags lists the filter tags in display order.
var Tags = []Tag{All, Pending, Completed}

// Parse accepts a tag name case-insensitively; "done" is an alias for
// completed. Empty means all.
func Parse(s string) (Tag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "pending":
		return Pending, nil
	case "completed", "done":
		return Completed, nil
	}
	return "", fmt.Errorf("unknown filter %q (expected all|pending|completed)", s)
}

// Next cycles all -> pending -> completed -> all.
func (t Tag) Next() Tag {
	switch t {
	case All:
		return Pending
	case Pending:
		return Completed
	}
	return All
}

// Label is the button text shown in the UI.
func (t Tag) Label() string {
	switch t {
	case Pending:
		return "Pending"
	case Completed:
		return "Completed"
	}
	return "All"
}

// Match reports whether it belongs to the subset selected by t.
func (t Tag) Match(it model.BucketItem) bool {
	switch t {
	case Pending:
		return !it.Completed
	case Completed:
		return it.Completed
	}
	return true
}

// Apply returns the items matching t in their original order.
func Apply(items []model.BucketItem, t Tag) []model.BucketItem {
	out := make([]model.BucketItem, 0, len(items))
	for _, it := range items {
		if t.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Counts holds the badge numbers for each tag.
type Counts struct {
	All       int
	Pending   int
	Completed int
}

// CountsOf counts items per tag using the same predicate as Apply.
func CountsOf(items []model.BucketItem) Counts {
	var c Counts
	for _, it := range items {
		if All.Match(it) {
			c.All++
		}
		if Pending.Match(it) {
			c.Pending++
		}
		if Completed.Match(it) {
			c.Completed++
		}
	}
	return c
}

// Of returns the count for t.
func (c Counts) Of(t Tag) int {
	switch t {
	case Pending:
		return c.Pending
	case Completed:
		return c.Completed
	}
	return c.All
}
