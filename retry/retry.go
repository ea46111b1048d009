// Package retry provides a generic resilience wrapper for fallible external
// calls: bounded attempts, exponential backoff with a cap, and per-attempt
// timeout racing. Classification of failures into transport-level categories
// is advisory only; it shapes user-facing messages and never decides whether
// an error is retried.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds the retry behavior of Do.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialDelay is the pause before the second attempt.
	InitialDelay time.Duration
	// MaxDelay caps the growing backoff delay.
	MaxDelay time.Duration
	// Multiplier grows the delay after each failed attempt.
	Multiplier float64
	// Timeout bounds a single attempt. Zero disables the per-attempt race.
	Timeout time.Duration
}

// DefaultPolicy returns conservative defaults suitable for network search
// capabilities.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     8 * time.Second,
		Multiplier:   2.0,
		Timeout:      30 * time.Second,
	}
}

// normalize fills zero fields with usable values so a partially specified
// policy still behaves.
func (p Policy) normalize() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 8 * time.Second
	}
	if p.Multiplier < 1 {
		p.Multiplier = 2.0
	}
	return p
}

// Error wraps the final failure after all attempts are exhausted.
type Error struct {
	// Attempts is the number of attempts actually made.
	Attempts int
	// Err is the last attempt's failure.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap exposes the last failure for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

type attemptResult[T any] struct {
	value T
	err   error
}

// Do runs op until it succeeds or the policy is exhausted. Each attempt is
// raced against the policy timeout; an attempt that exceeds it counts as
// failed, but the underlying call is not cancelled by force -- a late result
// is drained via the buffered channel and ignored. All failures are retried;
// callers wanting to shape the final message use Classify on the wrapped
// error.
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	policy = policy.normalize()

	delay := policy.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		value, err := runAttempt(ctx, policy.Timeout, op)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if attempt == policy.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, &Error{Attempts: attempt, Err: ctx.Err()}
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * policy.Multiplier)
		if delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}

	return zero, &Error{Attempts: policy.MaxAttempts, Err: lastErr}
}

// runAttempt executes one attempt, racing op against the timeout. The result
// channel is buffered so the op goroutine can always complete and exit even
// when its result arrives too late to matter.
func runAttempt[T any](ctx context.Context, timeout time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attemptCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	results := make(chan attemptResult[T], 1)
	go func() {
		value, err := op(attemptCtx)
		results <- attemptResult[T]{value: value, err: err}
	}()

	select {
	case res := <-results:
		return res.value, res.err
	case <-attemptCtx.Done():
		return zero, fmt.Errorf("attempt timed out: %w", attemptCtx.Err())
	}
}
