// Package retry wraps fallible provider calls with exponential backoff.
// Only throttling rejections are retried; every other error propagates
// immediately. Wrapped operations must be idempotent — this system only
// wraps read calls.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	awserrors "github.com/olusolaa/resource-warden/internal/adapters/platform/aws/errors"
)

const (
	defaultMaxAttempts     = 5
	defaultInitialInterval = 200 * time.Millisecond
	defaultMaxInterval     = 10 * time.Second
)

type Policy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	isRetryable     func(error) bool
}

type Option func(*Policy)

func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

func WithInitialInterval(d time.Duration) Option {
	return func(p *Policy) {
		if d > 0 {
			p.initialInterval = d
		}
	}
}

func WithMaxInterval(d time.Duration) Option {
	return func(p *Policy) {
		if d > 0 {
			p.maxInterval = d
		}
	}
}

// WithRetryable overrides the transient-error predicate. The default
// retries AWS throttling signatures only.
func WithRetryable(f func(error) bool) Option {
	return func(p *Policy) {
		if f != nil {
			p.isRetryable = f
		}
	}
}

func New(opts ...Option) *Policy {
	p := &Policy{
		maxAttempts:     defaultMaxAttempts,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		isRetryable:     awserrors.IsThrottle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute invokes op, retrying throttled failures with exponential backoff
// and jitter up to the attempt bound. After exhausting attempts the last
// error is returned. Backoff sleeps abort on context cancellation.
func (p *Policy) Execute(ctx context.Context, op func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.initialInterval
	eb.MaxInterval = p.maxInterval
	eb.MaxElapsedTime = 0 // bounded by attempt count, not wall clock

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !p.isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(p.maxAttempts-1)), ctx)
	return backoff.Retry(wrapped, b)
}
