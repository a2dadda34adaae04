package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idilsaglam/bucketlist/internal/model"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{done: 0, total: 0, width: 10, want: "░░░░░░░░░░   0%"},
		{done: 1, total: 2, width: 10, want: "█████░░░░░  50%"},
		{done: 3, total: 3, width: 5, want: "█████ 100%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d,%d,%d) = %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestPanel_AlignsColouredLines(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	Panel(&buf, []string{"\033[31mred\033[0m", "longer line"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "+-------------+" {
		t.Errorf("unexpected top border %q", lines[0])
	}
	for _, ln := range lines[1:3] {
		if visibleWidth(ln) != visibleWidth(lines[0]) {
			t.Errorf("line %q not aligned with border", ln)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex("#ff4757"); got != "\033[38;2;255;71;87m" {
		t.Errorf("unexpected escape %q", got)
	}
	if Hex("nope") != "" || Hex("#12345") != "" {
		t.Error("expected empty escape for bad input")
	}
}

func TestMessages(t *testing.T) {
	SetTheme("classic")
	SetColorForcing(false, true)
	defer SetTheme("classic")

	var buf bytes.Buffer
	OK(&buf, "added")
	Warn(&buf, "local-only mode")
	Hint(&buf, "run ls")
	Fail(&buf, "boom")

	want := "✔ added\n! local-only mode\nrun ls\n✖ boom\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPriorityBadge(t *testing.T) {
	SetTheme("classic")
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)

	if got, want := PriorityBadge(model.PriorityHigh), "\033[38;2;255;71;87m[high]\033[0m"; got != want {
		t.Errorf("PriorityBadge(high) = %q, want %q", got, want)
	}

	SetColorForcing(false, true)
	for _, p := range model.Priorities {
		if got := PriorityBadge(p); got != "["+p.String()+"]" {
			t.Errorf("PriorityBadge(%s) without colour = %q", p, got)
		}
	}
}

func TestCheckboxAndTabs(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	if Checkbox(true) != "[x]" || Checkbox(false) != "[ ]" {
		t.Errorf("unexpected boxes %q %q", Checkbox(true), Checkbox(false))
	}
	got := Tabs([]string{"All (3)", "Pending (2)", "Completed (1)"}, 1)
	if want := " All (3)  [Pending (2)]  Completed (1) "; got != want {
		t.Errorf("Tabs = %q, want %q", got, want)
	}
}
