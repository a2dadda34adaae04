// Package tui is the interactive Bubble Tea front end over app.App.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/bucketlist/internal/app"
	"github.com/idilsaglam/bucketlist/internal/attach"
	"github.com/idilsaglam/bucketlist/internal/filter"
	"github.com/idilsaglam/bucketlist/internal/model"
)

const (
	loadingText = "Loading your bucket list..."
	emptyTitle  = "No adventures found"
	emptyHint   = "Start adding your dream destinations and experiences!"
)

// Options configure the TUI.
type Options struct {
	// SignOut forgets the stored credentials. Nil hides the action.
	SignOut func() error
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeAttach
)

type loadedMsg struct{ res app.LoadResult }

type attachedMsg struct{ res app.AttachResult }

// Model is the Bubble Tea model. All App calls happen inside Update.
type Model struct {
	ctx  context.Context
	app  *app.App
	opts Options
	keys keyMap

	list    list.Model
	spinner spinner.Model
	mode    mode

	addForm  form
	editForm form
	path     textinput.Model
	attachID string

	uploading map[string]bool
	status    string
	statusErr bool

	width, height int
	signedOut     bool
}

// New returns a model over st. If st is still loading, Init starts the load.
func New(ctx context.Context, st *app.App, opts Options) Model {
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{}, 76, 18)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	path := textinput.New()
	path.Prompt = "> "
	path.Placeholder = "Path to an image file..."
	path.CharLimit = 1024

	if !opts.hasSignOut() {
		keys.SignOut.SetEnabled(false)
	}
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	m := Model{
		ctx:       ctx,
		app:       st,
		opts:      opts,
		keys:      keys,
		list:      l,
		spinner:   sp,
		addForm:   newForm(model.NewDraft()),
		path:      path,
		uploading: map[string]bool{},
		width:     80,
		height:    24,
	}
	m.refresh()
	return m
}

func (o Options) hasSignOut() bool { return o.SignOut != nil }

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, st *app.App, opts Options) error {
	applyColorProfile()
	p := tea.NewProgram(New(ctx, st, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.signedOut {
		fmt.Println(successStyle.Render("✔ signed out"))
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	if m.app.Phase() != app.PhaseLoading {
		return nil
	}
	fetch, err := m.app.BeginLoad()
	if err != nil {
		return nil
	}
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return loadedMsg{res: fetch(ctx)}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(m.width-4, 20), max(m.height-6, 4))
		return m, nil

	case loadedMsg:
		// failures are kept in LoadErr and shown by View
		_ = m.app.FinishLoad(msg.res)
		m.refresh()
		return m, nil

	case attachedMsg:
		delete(m.uploading, msg.res.ItemID)
		if err := m.app.FinishAttach(m.ctx, msg.res); err != nil {
			m.setErr("image upload failed", err)
		} else {
			m.afterWrite("image attached")
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.app.Phase() != app.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.app.Phase() != app.PhaseReady {
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	case modeAttach:
		return m.updateAttach(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(k, m.keys.Add):
		m.mode = modeAdd
		m.addForm.err = ""
		m.addForm.setFocus(fieldTitle)
		return m, textinput.Blink

	case key.Matches(k, m.keys.Edit):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.app.StartEdit(r.Item.ID); err != nil {
			m.setErr("edit", err)
			return m, nil
		}
		d, _ := m.app.Draft()
		m.editForm = newForm(d)
		m.mode = modeEdit
		m.refresh()
		return m, textinput.Blink

	case key.Matches(k, m.keys.Toggle):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.app.ToggleCompleted(m.ctx, r.Item.ID); err != nil {
			m.setErr("toggle", err)
			return m, nil
		}
		m.afterWrite("updated")
		m.refresh()
		return m, nil

	case key.Matches(k, m.keys.Delete):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.app.Remove(m.ctx, r.Item.ID); err != nil {
			m.setErr("delete", err)
			return m, nil
		}
		m.afterWrite("removed " + r.Item.Title)
		m.refresh()
		return m, nil

	case key.Matches(k, m.keys.Image):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.uploading[r.Item.ID] {
			m.setStatus("an upload is already running for this item")
			return m, nil
		}
		m.mode = modeAttach
		m.attachID = r.Item.ID
		m.path.SetValue("")
		m.path.Focus()
		return m, textinput.Blink

	case key.Matches(k, m.keys.Filter):
		return m.setFilter(m.app.Filter().Next())
	case key.Matches(k, m.keys.All):
		return m.setFilter(filter.All)
	case key.Matches(k, m.keys.Pending):
		return m.setFilter(filter.Pending)
	case key.Matches(k, m.keys.Completed):
		return m.setFilter(filter.Completed)

	case key.Matches(k, m.keys.SignOut):
		if err := m.opts.SignOut(); err != nil {
			m.setErr("sign out", err)
			return m, nil
		}
		m.signedOut = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			it, err := m.app.Create(m.ctx, m.addForm.draft())
			if err != nil {
				// keep what was typed
				m.addForm.err = describe(err)
				return m, nil
			}
			m.addForm = newForm(model.NewDraft())
			m.mode = modeBrowse
			m.afterWrite("added " + it.Title)
			m.refresh()
			m.selectID(it.ID)
			return m, nil
		case "esc":
			m.mode = modeBrowse
			m.addForm.err = ""
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.addForm, cmd, _ = m.addForm.update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.mode = modeBrowse
			it, err := m.app.CommitEdit(m.ctx)
			if err != nil {
				m.setErr("edit discarded", err)
			} else {
				m.afterWrite("updated " + it.Title)
			}
			m.refresh()
			return m, nil
		case "esc":
			m.app.CancelEdit()
			m.mode = modeBrowse
			m.refresh()
			return m, nil
		}
	}
	var (
		cmd     tea.Cmd
		changed bool
	)
	m.editForm, cmd, changed = m.editForm.update(msg)
	if changed {
		if err := m.app.SetDraft(m.editForm.draft()); err != nil {
			m.setErr("edit", err)
			m.mode = modeBrowse
		}
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateAttach(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.mode = modeBrowse
			m.path.Blur()
			f, err := attach.FromPath(strings.TrimSpace(m.path.Value()))
			if err != nil {
				m.setErr("image", err)
				return m, nil
			}
			upload, err := m.app.BeginAttach(m.attachID, f)
			if err != nil {
				m.setErr("image", err)
				return m, nil
			}
			m.uploading[m.attachID] = true
			m.setStatus("uploading " + f.Name + "...")
			m.refresh()
			ctx := m.ctx
			return m, func() tea.Msg {
				return attachedMsg{res: upload(ctx)}
			}
		case "esc":
			m.mode = modeBrowse
			m.path.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) setFilter(t filter.Tag) (tea.Model, tea.Cmd) {
	m.app.SetFilter(t)
	m.refresh()
	m.list.Select(0)
	return m, nil
}

// refresh rebuilds the list rows from the App.
func (m *Model) refresh() {
	if m.app.Phase() != app.PhaseReady {
		return
	}
	rows := m.app.Visible()
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, rowItem{Row: r, uploading: m.uploading[r.Item.ID]})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m Model) selected() (rowItem, bool) {
	r, ok := m.list.SelectedItem().(rowItem)
	return r, ok
}

func (m *Model) selectID(id string) {
	for i, it := range m.list.Items() {
		if r, ok := it.(rowItem); ok && r.Item.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setErr(what string, err error) {
	m.status, m.statusErr = what+": "+describe(err), true
}

// afterWrite reports a completed mutation, or the failure to save it.
func (m *Model) afterWrite(msg string) {
	if err := m.app.SyncErr(); err != nil {
		m.setErr("save failed", err)
		return
	}
	m.setStatus(msg)
}

func describe(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyTitle):
		return "Title cannot be empty"
	case errors.Is(err, model.ErrNotFound):
		return "Item no longer exists"
	}
	return err.Error()
}

func (m Model) View() string {
	switch m.app.Phase() {
	case app.PhaseLoading:
		return frameStyle.Render(m.spinner.View() + " " + loadingText)
	case app.PhaseError:
		return frameStyle.Render(strings.Join([]string{
			errorStyle.Render("Could not load your bucket list"),
			mutedStyle.Render(describe(m.app.LoadErr())),
			"",
			helpStyle.Render("q quit"),
		}, "\n"))
	}

	header := m.headerView()

	var footer string
	switch m.mode {
	case modeAdd:
		footer = m.addForm.view("Add new item")
	case modeEdit:
		footer = m.editForm.view("Edit item")
	case modeAttach:
		footer = titleStyle.Render("Attach image") + "\n" + m.path.View() + "\n" +
			helpStyle.Render("enter upload · esc cancel")
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render("✖ " + m.status)
		} else {
			status = successStyle.Render("✔ " + m.status)
		}
	}

	used := lipgloss.Height(header) + 2
	if footer != "" {
		used += lipgloss.Height(footer) + 1
	}
	if status != "" {
		used++
	}

	var body string
	if len(m.list.Items()) == 0 {
		body = titleStyle.Render(emptyTitle) + "\n" + mutedStyle.Render(emptyHint)
	} else {
		l := m.list
		l.SetSize(max(m.width-4, 20), max(m.height-used-2, 4))
		body = l.View()
	}

	parts := []string{header, body}
	if footer != "" {
		parts = append(parts, frameStyle.Render(footer))
	}
	if status != "" {
		parts = append(parts, status)
	}
	return frameStyle.Render(strings.Join(parts, "\n"))
}

func (m Model) headerView() string {
	c := m.app.Counts()

	welcome := titleStyle.Render("Welcome, " + m.app.User() + "!")
	if m.opts.hasSignOut() {
		welcome += "  " + helpStyle.Render("S sign out")
	}
	if !m.app.WriteThrough() {
		welcome += "  " + pendingStyle.Render("local-only")
	}

	tabs := make([]string, 0, len(filter.Tags))
	for _, t := range filter.Tags {
		label := fmt.Sprintf("%s (%d)", t.Label(), c.Of(t))
		if t == m.app.Filter() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	stats := fmt.Sprintf("%s %d  %s %d",
		successStyle.Render("✔"), c.Completed,
		pendingStyle.Render("•"), c.Pending,
	)
	return welcome + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "   " + stats
}
