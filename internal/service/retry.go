package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds a retried upstream call.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// retry runs op at most p.Attempts times with a constant delay. Errors wrapped
// with backoff.Permanent stop the loop and are returned unwrapped.
func retry[T any](ctx context.Context, p RetryPolicy, op func() (T, error)) (T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), uint64(attempts-1)),
		ctx,
	)
	return backoff.RetryWithData(op, policy)
}
