package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/bucketlist/internal/model"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldLocation
	fieldPriority
	fieldCount
)

// form is the add/edit item form: three text inputs and a priority picker.
type form struct {
	inputs   [fieldPriority]textinput.Model
	priority model.Priority
	focus    int
	err      string
}

func newForm(d model.Draft) form {
	var f form
	placeholders := [fieldPriority]string{
		"What do you want to do?",
		"Description (optional)",
		"Location (optional)",
	}
	values := [fieldPriority]string{d.Title, d.Description, d.Location}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		ti.SetValue(values[i])
		ti.CursorEnd()
		f.inputs[i] = ti
	}
	f.priority = d.Priority
	if !f.priority.Valid() {
		f.priority = model.PriorityMedium
	}
	f.setFocus(fieldTitle)
	return f
}

func (f form) draft() model.Draft {
	return model.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Location:    f.inputs[fieldLocation].Value(),
		Priority:    f.priority,
	}
}

func (f *form) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// update handles focus movement and priority cycling, and forwards the rest
// to the focused input. changed reports whether the draft changed.
func (f form) update(msg tea.Msg) (form, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, false
		}
		if f.focus == fieldPriority {
			switch k.String() {
			case " ", "right", "l":
				f.priority = f.priority.Next()
				return f, nil, true
			case "left", "h":
				for range len(model.Priorities) - 1 {
					f.priority = f.priority.Next()
				}
				return f, nil, true
			}
			return f, nil, false
		}
	}
	if f.focus == fieldPriority {
		return f, nil, false
	}
	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, f.inputs[f.focus].Value() != before
}

func (f form) view(heading string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	if f.err != "" {
		b.WriteString("  " + errorStyle.Render(f.err))
	}
	b.WriteString("\n")
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	marker := "  "
	if f.focus == fieldPriority {
		marker = "> "
	}
	b.WriteString(marker + "Priority: " + badge(f.priority) + helpStyle.Render("  (space to change)"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter save · tab next field · esc cancel"))
	return b.String()
}
