// Package app is the state container behind every bucket-list surface.
//
// An App owns the item store, the active filter, the edit session and the
// load phase for one signed-in user. All mutations go through its methods;
// none of them may run before the initial load has completed.
//
// App is not safe for concurrent use. Blocking collaborator calls (the load
// and image uploads) are split into a Begin step that returns a function to
// run off the event loop and a Finish step that applies its result.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/bucketlist/internal/attach"
	"github.com/idilsaglam/bucketlist/internal/edit"
	"github.com/idilsaglam/bucketlist/internal/filter"
	"github.com/idilsaglam/bucketlist/internal/model"
	"github.com/idilsaglam/bucketlist/internal/retry"
	"github.com/idilsaglam/bucketlist/internal/store"
)

var (
	ErrNotReady      = errors.New("bucket list is not loaded")
	ErrAlreadyLoaded = errors.New("bucket list already loaded")
	ErrNoUploader    = errors.New("image uploads are not configured")
)

// Phase is the load state of an App.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// LoadError is the failure of the initial load.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return "load bucket list: " + e.Err.Error() }
func (e *LoadError) Unwrap() error { return e.Err }

// Source supplies the initial ordered collection for a user.
type Source interface {
	List(ctx context.Context, owner string) ([]model.BucketItem, error)
}

// Writer mirrors local mutations to persistent storage.
type Writer interface {
	Put(ctx context.Context, owner string, it model.BucketItem) error
	Delete(ctx context.Context, owner, id string) error
}

// Config wires an App to its collaborators. Writer nil runs local-only:
// mutations live for the session and are never written back.
type Config struct {
	User       string
	Source     Source
	Writer     Writer
	Binder     *attach.Binder
	LoadPolicy retry.Policy
	Logger     *zap.Logger
	Store      []store.Option
}

// App is the bucket-list state container.
type App struct {
	user       string
	src        Source
	writer     Writer
	binder     *attach.Binder
	loadPolicy retry.Policy
	log        *zap.Logger

	store       *store.Store
	filter      filter.Tag
	edit        edit.Session
	phase       Phase
	loadStarted bool
	loadErr     error
	syncErr     error
}

// New returns an App in the loading phase.
func New(cfg Config) (*App, error) {
	user := strings.TrimSpace(cfg.User)
	if user == "" {
		return nil, errors.New("app: user is required")
	}
	if cfg.Source == nil {
		return nil, errors.New("app: source is required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opts := append([]store.Option{store.WithOwner(user)}, cfg.Store...)
	return &App{
		user:       user,
		src:        cfg.Source,
		writer:     cfg.Writer,
		binder:     cfg.Binder,
		loadPolicy: cfg.LoadPolicy,
		log:        log.With(zap.String("user", user)),
		store:      store.New(opts...),
		filter:     filter.All,
		phase:      PhaseLoading,
	}, nil
}

func (a *App) User() string   { return a.user }
func (a *App) Phase() Phase   { return a.phase }
func (a *App) LoadErr() error { return a.loadErr }

// WriteThrough reports whether mutations are mirrored to storage.
func (a *App) WriteThrough() bool { return a.writer != nil }

// SyncErr is the most recent write-through failure, cleared by the next
// successful write.
func (a *App) SyncErr() error { return a.syncErr }

func (a *App) ready() error {
	if a.phase != PhaseReady {
		return ErrNotReady
	}
	return nil
}

// Items returns the whole collection in insertion order.
func (a *App) Items() []model.BucketItem { return a.store.Items() }

// Get returns one item by id.
func (a *App) Get(id string) (model.BucketItem, bool) { return a.store.Get(id) }

func (a *App) Filter() filter.Tag { return a.filter }

// SetFilter changes the displayed subset. The collection is not touched.
func (a *App) SetFilter(t filter.Tag) { a.filter = t }

// Counts returns the per-tag badge numbers.
func (a *App) Counts() filter.Counts { return filter.CountsOf(a.store.Items()) }

// Visible returns the rows to render: the filtered items with the edit draft
// shown in place of the item being edited.
func (a *App) Visible() []edit.Row {
	return a.edit.Overlay(filter.Apply(a.store.Items(), a.filter))
}

// Editing reports the id of the item being edited, if any.
func (a *App) Editing() (string, bool) { return a.edit.Active() }

// Draft returns the current edit buffer.
func (a *App) Draft() (model.Draft, bool) { return a.edit.Draft() }
