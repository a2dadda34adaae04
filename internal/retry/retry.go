// Package retry wraps cenkalti/backoff with the knobs exposed in config.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy bounds how often and how long an operation is attempted.
// MaxTries <= 1 means a single attempt. Timeout 0 means no deadline.
type Policy struct {
	MaxTries        uint
	InitialInterval time.Duration
	Timeout         time.Duration
}

// Once is the policy with no retries and no deadline.
var Once = Policy{MaxTries: 1}

// Do runs op under p. Errors wrapped with Permanent stop retrying at once.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	tries := p.MaxTries
	if tries < 1 {
		tries = 1
	}
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	return backoff.Retry(ctx, func() (T, error) {
		return op(ctx)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(tries))
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
