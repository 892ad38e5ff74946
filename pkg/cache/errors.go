package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache operations.
var (
	// ErrNotFound marks a key that does not exist in the backend.
	ErrNotFound = errors.New("not found")

	// ErrNetwork marks Redis backend failures (timeouts, refused
	// connections) during layout or artifact lookups.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss marks a lookup that found nothing; callers normally
	// re-solve rather than treat this as a failure.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a transient backend failure worth retrying. The
// Redis backend wraps its errors with it; the file backend never does,
// since local disk failures do not heal on retry.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is marked transient anywhere in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to 3 times, doubling the delay between
// attempts from one second. Only errors marked Retryable re-run; anything
// else, and the final failure, surface to the caller unchanged.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3

	var lastErr error
	delay := time.Second

	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
