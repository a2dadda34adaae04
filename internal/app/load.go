package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/idilsaglam/bucketlist/internal/model"
	"github.com/idilsaglam/bucketlist/internal/retry"
)

// LoadResult is the outcome of the initial fetch.
type LoadResult struct {
	Items []model.BucketItem
	Err   error
}

// BeginLoad marks the load as started and returns the fetch to run. The fetch
// only reads immutable configuration, so it may run on another goroutine.
// A second call returns ErrAlreadyLoaded.
func (a *App) BeginLoad() (func(ctx context.Context) LoadResult, error) {
	if a.loadStarted {
		return nil, ErrAlreadyLoaded
	}
	a.loadStarted = true

	src, user, policy, log := a.src, a.user, a.loadPolicy, a.log
	return func(ctx context.Context) LoadResult {
		items, err := retry.Do(ctx, policy, func(ctx context.Context) ([]model.BucketItem, error) {
			items, err := src.List(ctx, user)
			if err != nil {
				log.Warn("load attempt failed", zap.Error(err))
			}
			return items, err
		})
		return LoadResult{Items: items, Err: err}
	}, nil
}

// FinishLoad applies a fetch result. It is ignored unless the App is still
// loading. Items owned by another user are dropped; unowned items are
// stamped with the current user.
func (a *App) FinishLoad(res LoadResult) error {
	if a.phase != PhaseLoading {
		return ErrAlreadyLoaded
	}
	if res.Err != nil {
		return a.fail(res.Err)
	}

	items := make([]model.BucketItem, 0, len(res.Items))
	for _, it := range res.Items {
		switch it.Owner {
		case "":
			it.Owner = a.user
		case a.user:
		default:
			a.log.Warn("dropping item owned by another user",
				zap.String("item_id", it.ID),
				zap.String("owner", it.Owner),
			)
			continue
		}
		items = append(items, it)
	}
	if err := a.store.Reset(items); err != nil {
		return a.fail(err)
	}

	a.phase = PhaseReady
	a.log.Info("bucket list loaded", zap.Int("items", len(items)))
	return nil
}

func (a *App) fail(err error) error {
	a.phase = PhaseError
	a.loadErr = &LoadError{Err: err}
	a.log.Error("bucket list load failed", zap.Error(err))
	return a.loadErr
}

// Load runs BeginLoad and FinishLoad back to back, for callers without an
// event loop.
func (a *App) Load(ctx context.Context) error {
	fetch, err := a.BeginLoad()
	if err != nil {
		return err
	}
	return a.FinishLoad(fetch(ctx))
}
