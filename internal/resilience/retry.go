// Package resilience retries transient failures of network operations with
// exponential backoff.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Policy defines the retry behavior for an operation.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// UseJitter scales each delay by a random factor in [0.5, 1.5).
	UseJitter bool

	// OnRetry, if set, is called before sleeping with the failed attempt
	// number (starting at 1), the error and the upcoming delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultPolicy retries twice, starting at 500ms.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		UseJitter:  true,
	}
}

// ClientError is implemented by errors that carry a caller mistake, such as
// an HTTP 4xx status. Those are never retried.
type ClientError interface {
	error
	IsClientError() bool
}

// Retry runs fn until it succeeds, returns a non-retryable error, or the
// policy is exhausted. The last error is returned.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	var lastErr error
	attempts := max(p.MaxRetries, 0) + 1

	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == attempts-1 {
			return err
		}

		delay := Backoff(attempt, p.BaseDelay, p.MaxDelay, p.UseJitter)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// Backoff returns baseDelay * 2^attempt capped at maxDelay, optionally
// jittered. Non-positive delays fall back to 100ms and 30s.
func Backoff(attempt int, baseDelay, maxDelay time.Duration, useJitter bool) time.Duration {
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	delay := baseDelay
	for range attempt {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	if useJitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}
	return min(delay, maxDelay)
}

// IsRetryable reports whether err may succeed on another attempt.
// Context errors and client errors are final.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ce ClientError
	if errors.As(err, &ce) && ce.IsClientError() {
		return false
	}
	return true
}
