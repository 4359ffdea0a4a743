package worker

import (
	"context"
	"math"
	"time"
)

// RetryPolicy defines backoff parameters. A BackoffFactor of 1 gives linear
// backoff (delay = InitialDelay × attempt), anything greater is exponential.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// LinearPolicy matches the guest-list fetch contract: maxRetries extra
// attempts with delays of delay, 2×delay, 3×delay, ...
func LinearPolicy(maxRetries int, delay time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxRetries:    maxRetries,
		InitialDelay:  delay,
		BackoffFactor: 1,
	}
}

// NextDelay returns the delay for a given attempt (1-based) with clamping.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = time.Second
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}

	var d time.Duration
	if r.BackoffFactor == 1 {
		d = time.Duration(attempt) * r.InitialDelay
	} else {
		d = time.Duration(float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1)))
	}
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

// Do runs fn once plus up to MaxRetries retries, sleeping NextDelay between
// attempts. The last error wins; context cancellation cuts the wait short.
func (r RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(r.NextDelay(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
