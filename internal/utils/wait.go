// Package utils holds small helpers shared by the network-facing packages.
package utils

import (
	"context"
	"time"
)

// WaitFor pauses for d or until ctx is done, whichever comes first. It returns
// the context error when the wait was cut short.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff doubles base for every attempt after the first, capped at limit.
// A non-positive limit disables the cap.
func Backoff(base time.Duration, attempt int, limit time.Duration) time.Duration {
	if base <= 0 || attempt < 0 {
		return 0
	}

	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if limit > 0 && delay >= limit {
			return limit
		}
	}
	if limit > 0 && delay > limit {
		return limit
	}
	return delay
}
