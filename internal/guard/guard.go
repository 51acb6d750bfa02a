// Package guard wraps tasks with a per-attempt deadline and bounded retries.
package guard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrExhausted is returned when every retry attempt has failed or timed out.
// Callers are expected to degrade to an empty or fallback result rather than
// propagate it.
var ErrExhausted = errors.New("guard: retries exhausted")

// Config bounds a guarded task.
type Config struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int
	// Timeout is the deadline for each individual attempt.
	Timeout time.Duration
	// BaseDelay is the unit of linear backoff: attempt n waits n*BaseDelay.
	BaseDelay time.Duration
}

// DefaultConfig matches the orchestrator's defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 2,
		Timeout:    30 * time.Second,
		BaseDelay:  time.Second,
	}
}

// Task is a unit of work raced against the attempt deadline.
type Task[T any] func(ctx context.Context) (T, error)

// Run executes task with per-attempt timeouts and linear backoff between
// attempts. A timed-out attempt is abandoned, not force-killed; its eventual
// result is discarded. Retries are sequential, never concurrent.
//
// The parent ctx cancels the whole run, including backoff sleeps.
func Run[T any](ctx context.Context, cfg Config, task Task[T]) (T, error) {
	var zero T
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultConfig().BaseDelay
	}

	attempts := cfg.MaxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			// Linear backoff: baseDelay * previous attempt index.
			delay := time.Duration(attempt-1) * cfg.BaseDelay
			slog.Debug("guard retrying", "attempt", attempt, "of", attempts, "backoff", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, err := runOnce(ctx, cfg.Timeout, task)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		lastErr = err
	}

	return zero, fmt.Errorf("%w after %d attempt(s): %v", ErrExhausted, attempts, lastErr)
}

type outcome[T any] struct {
	result T
	err    error
}

// runOnce races a single task invocation against the attempt deadline. The
// result channel is buffered so a late completion can still send and let the
// goroutine exit; nobody reads it after a timeout.
func runOnce[T any](ctx context.Context, timeout time.Duration, task Task[T]) (T, error) {
	var zero T

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		result, err := task(attemptCtx)
		done <- outcome[T]{result: result, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-attemptCtx.Done():
		return zero, attemptCtx.Err()
	}
}
