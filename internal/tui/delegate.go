package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/bucketlist/internal/edit"
)

const dateLayout = "Jan 2, 2006"

// rowItem adapts an edit.Row to bubbles/list.Item.
type rowItem struct {
	edit.Row
	uploading bool
}

func (r rowItem) Title() string       { return r.Item.Title }
func (r rowItem) Description() string { return r.Item.Description }
func (r rowItem) FilterValue() string { return r.Item.Title }

// itemDelegate renders two lines per item: the title row and a detail row.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(rowItem)
	if !ok {
		return
	}
	it := r.Item

	box := mutedStyle.Render(boxUnchecked)
	title := it.Title
	if it.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	top := fmt.Sprintf("%s%s %s %s", prefix, box, title, badge(it.Priority))
	if r.Editing {
		top += " " + editingStyle.Render("(editing)")
	}

	var details []string
	if it.Location != "" {
		details = append(details, "⌖ "+it.Location)
	}
	if !it.CreatedAt.IsZero() {
		details = append(details, "Added "+it.CreatedAt.Local().Format(dateLayout))
	}
	switch {
	case r.uploading:
		details = append(details, "uploading image...")
	case it.ImageURL != "":
		details = append(details, "▣ image")
	}
	if it.Description != "" {
		details = append(details, it.Description)
	}
	bottom := "    " + mutedStyle.Render(strings.Join(details, "  ·  "))

	if width := m.Width(); width > 4 {
		top = xansi.Truncate(top, width, "…")
		bottom = xansi.Truncate(bottom, width, "…")
	}
	fmt.Fprintf(w, "%s\n%s", top, bottom)
}
