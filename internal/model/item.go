package model

import (
	"strings"
	"time"
)

// BucketItem is the domain model for a bucket-list entry.
type BucketItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Owner       string    `json:"owner,omitempty"`
}

// Draft holds the user-editable fields of an item. It is the input of
// create and the buffer of an edit session.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Priority    Priority `json:"priority"`
}

// NewDraft returns a blank draft with the default priority, the state the
// add form is reset to after a successful create.
func NewDraft() Draft {
	return Draft{Priority: PriorityMedium}
}

// DraftOf copies the editable fields of it.
func DraftOf(it BucketItem) Draft {
	return Draft{
		Title:       it.Title,
		Description: it.Description,
		Location:    it.Location,
		Priority:    it.Priority,
	}
}

// Validate checks the draft before it may reach the store.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Normalized trims the title and fills in the default priority.
func (d Draft) Normalized() Draft {
	d.Title = strings.TrimSpace(d.Title)
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}

// Apply returns a copy of it with the draft's fields written over it.
// Identity fields (ID, CreatedAt, Owner), Completed and ImageURL are kept.
func (d Draft) Apply(it BucketItem) BucketItem {
	d = d.Normalized()
	it.Title = d.Title
	it.Description = d.Description
	it.Location = d.Location
	it.Priority = d.Priority
	return it
}
