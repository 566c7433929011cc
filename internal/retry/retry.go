package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type stopError struct {
	err error
}

func (e *stopError) Error() string { return e.err.Error() }
func (e *stopError) Unwrap() error { return e.err }

// Stop marks err as terminal: DoWithRetry returns it immediately without
// further attempts.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return &stopError{err: err}
}

// Backoff describes a retry schedule. The ceiling for attempt n is
// Base*2^n, capped at Max when Max is positive; the actual sleep is drawn
// uniformly from [0, ceiling) so concurrent callers spread out instead of
// colliding again.
type Backoff struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
}

// jitter returns a duration in [0, d).
var jitter = func(d time.Duration) time.Duration {
	return rand.N(d)
}

// DoWithRetry executes fn up to attempts times with jittered exponential
// backoff. It stops early if the context is canceled or fn returns an error
// wrapped with Stop. A non-positive baseDelay retries immediately.
func DoWithRetry(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	return Do(ctx, Backoff{Attempts: attempts, Base: baseDelay}, fn)
}

func Do(ctx context.Context, b Backoff, fn func() error) error {
	var err error
	ceiling := b.Base

	for i := 0; i < b.Attempts; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err = fn(); err == nil {
			return nil
		}

		var stop *stopError
		if errors.As(err, &stop) {
			return stop.err
		}

		if i == b.Attempts-1 {
			break
		}

		if ceiling <= 0 {
			continue
		}
		if sleep := jitter(ceiling); sleep > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}
		}
		ceiling *= 2
		if b.Max > 0 && ceiling > b.Max {
			ceiling = b.Max
		}
	}
	return err
}
