package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

type statusErr int

func (e statusErr) Error() string       { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) IsClientError() bool { return e >= 400 && e < 500 }

func fastPolicy(retries int) Policy {
	return Policy{MaxRetries: retries, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestRetry(t *testing.T) {
	transient := errors.New("connection reset")

	tests := []struct {
		name      string
		retries   int
		failures  int
		failWith  error
		wantCalls int32
		wantErr   error
	}{
		{"success", 3, 0, nil, 1, nil},
		{"eventual_success", 3, 2, transient, 3, nil},
		{"exhausted", 2, 10, transient, 3, transient},
		{"zero_retries", 0, 10, transient, 1, transient},
		{"negative_retries", -1, 10, transient, 1, transient},
		{"client_error_is_final", 3, 10, statusErr(404), 1, statusErr(404)},
		{"server_error_retried", 1, 10, statusErr(502), 2, statusErr(502)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var calls atomic.Int32
			err := Retry(context.Background(), fastPolicy(tt.retries), func() error {
				if int(calls.Add(1)) <= tt.failures {
					return tt.failWith
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Retry() error = %v, want %v", err, tt.wantErr)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}

func TestRetryOnRetryCallback(t *testing.T) {
	var attempts []int
	p := fastPolicy(2)
	p.OnRetry = func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
		if delay <= 0 {
			t.Errorf("delay = %v, want positive", delay)
		}
	}

	_ = Retry(context.Background(), p, func() error { return errors.New("fail") })

	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("OnRetry attempts = %v, want [1 2]", attempts)
	}
}

func TestRetryContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	p := Policy{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: time.Second}
	p.OnRetry = func(int, error, time.Duration) { cancel() }

	err := Retry(ctx, p, func() error {
		calls.Add(1)
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}

	if err := Retry(ctx, p, func() error { return nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context should stop before the first attempt, got %v", err)
	}
}

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt   int
		base, max time.Duration
		want      time.Duration
	}{
		{0, 100 * time.Millisecond, time.Second, 100 * time.Millisecond},
		{1, 100 * time.Millisecond, time.Second, 200 * time.Millisecond},
		{3, 100 * time.Millisecond, time.Second, 800 * time.Millisecond},
		{4, 100 * time.Millisecond, time.Second, time.Second},
		{20, 100 * time.Millisecond, time.Second, time.Second},
		{0, 0, 0, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := Backoff(tt.attempt, tt.base, tt.max, false); got != tt.want {
			t.Errorf("Backoff(%d, %v, %v) = %v, want %v", tt.attempt, tt.base, tt.max, got, tt.want)
		}
	}

	for range 50 {
		got := Backoff(2, 100*time.Millisecond, time.Second, true)
		if got < 200*time.Millisecond || got > 600*time.Millisecond {
			t.Fatalf("jittered backoff %v outside [200ms, 600ms]", got)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false},
		{statusErr(403), false},
		{fmt.Errorf("wrapped: %w", statusErr(404)), false},
		{statusErr(503), true},
		{errors.New("eof"), true},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}

	if p := DefaultPolicy(); p.MaxRetries != 2 || !p.UseJitter {
		t.Errorf("DefaultPolicy() = %+v", p)
	}
}
