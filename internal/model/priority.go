package model

import (
	"fmt"
	"strings"
)

// Priority is one of low, medium or high.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the valid values in the order the UI cycles through them.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) String() string { return string(p) }

// Next cycles low -> medium -> high -> low. Unknown values go to medium.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh:
		return PriorityLow
	}
	return PriorityMedium
}

// Color is the badge colour used for the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "#ff4757"
	case PriorityMedium:
		return "#ffa502"
	case PriorityLow:
		return "#2ed573"
	default:
		return "#747d8c"
	}
}

// ParsePriority accepts the canonical names case-insensitively. The empty
// string parses as medium.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}
