package cli

import (
	"fmt"

	"github.com/idilsaglam/bucketlist/internal/app"
	"github.com/idilsaglam/bucketlist/internal/filter"
	"github.com/idilsaglam/bucketlist/internal/model"
	"github.com/idilsaglam/bucketlist/internal/ui"
)

const (
	emptyTitle = "No adventures found"
	emptyHint  = "Start adding your dream destinations and experiences!"
	titleWidth = 60
)

// listLines renders the ls panel: header, filter counts, progress and the
// visible items numbered by their position in the whole list.
func listLines(st *app.App, group bool) []string {
	th := ui.Current()
	c := st.Counts()

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Bucket List"),
		ui.C(th.Success, th.SymDone), c.Completed,
		ui.C(th.Pending, th.SymUnchecked), c.Pending,
		ui.C(th.Accent, "Total"), c.All,
	)

	labels := make([]string, len(filter.Tags))
	active := 0
	for i, t := range filter.Tags {
		labels[i] = fmt.Sprintf("%s (%d)", t.Label(), c.Of(t))
		if t == st.Filter() {
			active = i
		}
	}

	lines := []string{
		ui.C(th.Muted, "Welcome, "+st.User()+"!"),
		header,
		ui.Tabs(labels, active),
		ui.C(th.Muted, ui.ProgressBar(c.Completed, c.All, 28)),
		"",
	}

	index := make(map[string]int, c.All)
	for i, it := range st.Items() {
		index[it.ID] = i + 1
	}
	var visible []model.BucketItem
	for _, r := range st.Visible() {
		visible = append(visible, r.Item)
	}

	switch {
	case len(visible) == 0:
		lines = append(lines, ui.C(th.Title, emptyTitle), ui.C(th.Muted, emptyHint))
	case group:
		lines = append(lines, groupLines(visible, index)...)
	default:
		lines = append(lines, itemLines(visible, index)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Muted, "Tip: add with `bucketlist add \"Run a marathon\" --priority high`"))
	return lines
}

func itemLines(items []model.BucketItem, index map[string]int) []string {
	th := ui.Current()
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%2d.", index[it.ID])
		title := it.Title
		if r := []rune(title); len(r) > titleWidth {
			title = string(r[:titleWidth-3]) + "..."
		}
		line := fmt.Sprintf("%s %s %s %s",
			ui.C(th.Muted, idx), ui.Checkbox(it.Completed), title, ui.PriorityBadge(it.Priority))
		if it.Location != "" {
			line += " " + ui.C(th.Muted, th.SymLocation+" "+it.Location)
		}
		if it.ImageURL != "" {
			line += " " + ui.C(th.Accent, th.SymImage)
		}
		out = append(out, line)
	}
	return out
}

func groupLines(items []model.BucketItem, index map[string]int) []string {
	th := ui.Current()
	pend := filter.Apply(items, filter.Pending)
	done := filter.Apply(items, filter.Completed)

	var lines []string
	lines = append(lines, ui.C(th.Accent, filter.Pending.Label()))
	if len(pend) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, itemLines(pend, index)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Accent, filter.Completed.Label()))
	if len(done) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, itemLines(done, index)...)
	}
	return lines
}
