// Package retry provides a reusable retry-with-backoff helper for transient
// failures around persistence and network calls.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultDelays is the standard exponential backoff schedule.
var DefaultDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// Options configures retry behavior.
type Options struct {
	// Delays holds the wait before each retry. len(Delays) retries are
	// attempted after the initial call.
	Delays []time.Duration
	// OnRetry, if set, is called before each retry with the 1-based retry
	// number and the error that triggered it.
	OnRetry func(attempt int, err error)
}

// DefaultOptions returns the standard 3-retry schedule (1s/2s/4s).
func DefaultOptions() Options {
	return Options{Delays: DefaultDelays}
}

// PermanentError wraps an error that retrying cannot fix.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as not retryable. Do returns the wrapped error
// immediately, without the attempt-count wrapping.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Do runs fn, retrying on error per opts. The terminal error wraps the last
// failure and reports the total attempt count. Sleeps are context-aware;
// a cancelled context stops retrying immediately.
func Do(ctx context.Context, opts Options, fn func(ctx context.Context) error) error {
	attempts := len(opts.Delays) + 1

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if opts.OnRetry != nil {
				opts.OnRetry(attempt, lastErr)
			}
			select {
			case <-time.After(opts.Delays[attempt-1]):
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled after %d attempts: %w", attempt, ctx.Err())
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		var perm *PermanentError
		if errors.As(lastErr, &perm) {
			return perm.Err
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
