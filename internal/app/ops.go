package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/idilsaglam/bucketlist/internal/attach"
	"github.com/idilsaglam/bucketlist/internal/edit"
	"github.com/idilsaglam/bucketlist/internal/model"
)

// Create adds an item. A blank title returns model.ErrEmptyTitle and changes
// nothing.
func (a *App) Create(ctx context.Context, d model.Draft) (model.BucketItem, error) {
	if err := a.ready(); err != nil {
		return model.BucketItem{}, err
	}
	it, err := a.store.Create(d)
	if err != nil {
		return model.BucketItem{}, err
	}
	a.log.Debug("item created", zap.String("item_id", it.ID))
	a.put(ctx, it)
	return it, nil
}

// Remove deletes an item. It also ends an edit of that item.
func (a *App) Remove(ctx context.Context, id string) error {
	if err := a.ready(); err != nil {
		return err
	}
	if err := a.store.Remove(id); err != nil {
		return err
	}
	a.edit.Forget(id)
	a.log.Debug("item removed", zap.String("item_id", id))
	a.sync(a.deleteFn(ctx, id))
	return nil
}

// ToggleCompleted flips the completion flag.
func (a *App) ToggleCompleted(ctx context.Context, id string) error {
	if err := a.ready(); err != nil {
		return err
	}
	if err := a.store.ToggleCompleted(id); err != nil {
		return err
	}
	it, _ := a.store.Get(id)
	a.log.Debug("item toggled", zap.String("item_id", id), zap.Bool("completed", it.Completed))
	a.put(ctx, it)
	return nil
}

// StartEdit opens the edit session on an item, discarding any other draft.
func (a *App) StartEdit(id string) error {
	if err := a.ready(); err != nil {
		return err
	}
	it, ok := a.store.Get(id)
	if !ok {
		return model.ErrNotFound
	}
	a.edit.Start(it)
	return nil
}

// UpdateDraft changes one field of the edit buffer.
func (a *App) UpdateDraft(f edit.Field, value string) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.edit.UpdateField(f, value)
}

// SetDraft replaces the whole edit buffer.
func (a *App) SetDraft(d model.Draft) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.edit.SetDraft(d)
}

// CommitEdit writes the draft back and closes the session. The session
// closes even when the draft is rejected.
func (a *App) CommitEdit(ctx context.Context) (model.BucketItem, error) {
	if err := a.ready(); err != nil {
		return model.BucketItem{}, err
	}
	it, err := a.edit.Commit(a.store)
	if err != nil {
		return model.BucketItem{}, err
	}
	a.log.Debug("item edited", zap.String("item_id", it.ID))
	a.put(ctx, it)
	return it, nil
}

// CancelEdit discards the draft.
func (a *App) CancelEdit() { a.edit.Cancel() }

// AttachResult is the outcome of an upload started with BeginAttach.
type AttachResult struct {
	ItemID string
	Ref    string
	Err    error
}

// BeginAttach checks the item exists and returns the upload to run off the
// event loop.
func (a *App) BeginAttach(id string, f attach.File) (func(ctx context.Context) AttachResult, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	if a.binder == nil {
		return nil, ErrNoUploader
	}
	if _, ok := a.store.Get(id); !ok {
		return nil, model.ErrNotFound
	}
	binder, user := a.binder, a.user
	return func(ctx context.Context) AttachResult {
		ref, err := binder.Attach(ctx, user, id, f)
		return AttachResult{ItemID: id, Ref: ref, Err: err}
	}, nil
}

// FinishAttach stores the uploaded reference on the item. A failed upload
// leaves the item unchanged and returns the upload error.
func (a *App) FinishAttach(ctx context.Context, res AttachResult) error {
	if res.Err != nil {
		a.log.Warn("image attach failed", zap.String("item_id", res.ItemID), zap.Error(res.Err))
		return res.Err
	}
	if err := a.store.SetImage(res.ItemID, res.Ref); err != nil {
		return err
	}
	it, _ := a.store.Get(res.ItemID)
	a.put(ctx, it)
	return nil
}

// AttachImage uploads f and stores the reference, in one blocking call.
func (a *App) AttachImage(ctx context.Context, id string, f attach.File) (string, error) {
	upload, err := a.BeginAttach(id, f)
	if err != nil {
		return "", err
	}
	res := upload(ctx)
	if err := a.FinishAttach(ctx, res); err != nil {
		return "", err
	}
	return res.Ref, nil
}

func (a *App) put(ctx context.Context, it model.BucketItem) {
	if a.writer == nil {
		return
	}
	a.sync(func() error { return a.writer.Put(ctx, a.user, it) })
}

func (a *App) deleteFn(ctx context.Context, id string) func() error {
	if a.writer == nil {
		return nil
	}
	return func() error { return a.writer.Delete(ctx, a.user, id) }
}

// sync runs one write-through call. Failures are kept for the caller to
// surface; the local change stands.
func (a *App) sync(write func() error) {
	if write == nil {
		return
	}
	if err := write(); err != nil {
		a.syncErr = err
		a.log.Error("write-through failed", zap.Error(err))
		return
	}
	a.syncErr = nil
}
