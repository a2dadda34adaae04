package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/idilsaglam/bucketlist/internal/app"
	"github.com/idilsaglam/bucketlist/internal/attach"
	"github.com/idilsaglam/bucketlist/internal/auth"
	"github.com/idilsaglam/bucketlist/internal/config"
	"github.com/idilsaglam/bucketlist/internal/store/demo"
	"github.com/idilsaglam/bucketlist/internal/store/jsonstore"
	"github.com/idilsaglam/bucketlist/internal/store/sqlitestore"
	"github.com/idilsaglam/bucketlist/internal/upload"
)

// demoUser signs in demo sessions that have no stored credentials.
const demoUser = "demo"

// identity returns the signed-in user. The demo backend falls back to a
// fixed user so it works without a token.
func (a *App) identity() (auth.Identity, error) {
	id, err := a.auth.Current()
	if err == nil {
		return id, nil
	}
	if a.cfg.Backend == config.BackendDemo && errors.Is(err, auth.ErrNotLoggedIn) {
		return auth.Identity{Username: demoUser, Source: "demo"}, nil
	}
	return auth.Identity{}, err
}

// backend opens the configured source and, when write-through is on, the
// matching writer.
func (a *App) backend() (app.Source, app.Writer, func() error, error) {
	noop := func() error { return nil }

	var (
		src     app.Source
		w       app.Writer
		closeFn = noop
	)
	switch a.cfg.Backend {
	case config.BackendDemo:
		src = demo.New(a.cfg.DemoDelay)
	case config.BackendSQLite:
		st, err := sqlitestore.Open(a.cfg.SQLitePath)
		if err != nil {
			return nil, nil, noop, err
		}
		src, w, closeFn = st, st, st.Close
	default:
		st := jsonstore.New(a.cfg.DataDir)
		src, w = st, st
	}
	if !a.cfg.WriteThrough {
		w = nil
	}
	return src, w, closeFn, nil
}

// openApp builds an App for user. The caller drives the load.
func (a *App) openApp(user string) (*app.App, func(), error) {
	src, w, closeFn, err := a.backend()
	if err != nil {
		return nil, func() {}, err
	}

	binder := attach.NewBinder(
		upload.Disk{Root: a.cfg.UploadDir},
		attach.WithRetry(a.cfg.UploadPolicy()),
		attach.WithMaxBytes(a.cfg.MaxImageBytes),
		attach.WithLogger(a.log),
	)

	st, err := app.New(app.Config{
		User:       user,
		Source:     src,
		Writer:     w,
		Binder:     binder,
		LoadPolicy: a.cfg.LoadPolicy(),
		Logger:     a.log,
	})
	if err != nil {
		_ = closeFn()
		return nil, func() {}, err
	}
	a.log.Debug("session opened",
		zap.String("backend", a.cfg.Backend),
		zap.Bool("write_through", st.WriteThrough()),
	)
	return st, func() {
		if err := closeFn(); err != nil {
			a.log.Warn("close backend", zap.Error(err))
		}
	}, nil
}

// loadApp opens and loads an App for the signed-in user, for the one-shot
// subcommands.
func (a *App) loadApp(ctx context.Context) (*app.App, func(), error) {
	id, err := a.identity()
	if err != nil {
		return nil, func() {}, err
	}
	st, closeFn, err := a.openApp(id.Username)
	if err != nil {
		return nil, closeFn, err
	}
	if err := st.Load(ctx); err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return st, closeFn, nil
}
