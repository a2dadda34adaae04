package ui

import (
	"strings"

	"github.com/idilsaglam/bucketlist/internal/model"
)

// PriorityBadge renders "[high]" in the priority's colour.
func PriorityBadge(p model.Priority) string {
	return C(Hex(p.Color()), "["+p.String()+"]")
}

// Checkbox is the themed done/pending box, coloured by state.
func Checkbox(done bool) string {
	if done {
		return C(current.Success, current.BoxChecked)
	}
	return C(current.Muted, current.BoxUnchecked)
}

// Tabs joins labels, bracketing the active one.
func Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = C(current.Accent, "["+l+"]")
		} else {
			parts[i] = C(current.Muted, " "+l+" ")
		}
	}
	return strings.Join(parts, " ")
}
